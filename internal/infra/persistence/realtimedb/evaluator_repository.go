package realtimedb

import (
	"context"
	"sort"

	"firebase.google.com/go/v4/db"
	"github.com/pkg/errors"

	"htga/internal/domain/entity"
	"htga/internal/domain/repository"
)

type evaluatorRepository struct {
	ref *db.Ref
}

// NewEvaluatorRepository creates a repository over "evaluators/{id}".
func NewEvaluatorRepository(client *db.Client) repository.EvaluatorRepository {
	return &evaluatorRepository{ref: client.NewRef(evaluatorsPath)}
}

func (r *evaluatorRepository) Create(ctx context.Context, evaluator *entity.Evaluator) error {
	var existing *entity.Evaluator
	if err := r.ref.Child(evaluator.ID).Get(ctx, &existing); err != nil {
		return errors.Wrap(err, "failed to check existing evaluator")
	}
	if existing != nil {
		return repository.ErrDuplicateEvaluator
	}

	if err := r.ref.Child(evaluator.ID).Set(ctx, evaluator); err != nil {
		return errors.Wrap(err, "failed to create evaluator")
	}

	return nil
}

func (r *evaluatorRepository) FindByID(ctx context.Context, id string) (*entity.Evaluator, error) {
	var evaluator *entity.Evaluator
	if err := r.ref.Child(id).Get(ctx, &evaluator); err != nil {
		return nil, errors.Wrap(err, "failed to get evaluator")
	}
	if evaluator == nil {
		return nil, repository.ErrEvaluatorNotFound
	}
	evaluator.ID = id

	return evaluator, nil
}

func (r *evaluatorRepository) FindByEmail(ctx context.Context, email string) (*entity.Evaluator, error) {
	results, err := r.ref.OrderByChild("email").EqualTo(email).GetOrdered(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query evaluator by email")
	}
	if len(results) == 0 {
		return nil, repository.ErrEvaluatorNotFound
	}

	return unmarshalNode(results[0])
}

func (r *evaluatorRepository) FindByResetToken(ctx context.Context, token string) (*entity.Evaluator, error) {
	results, err := r.ref.OrderByChild("resetToken").EqualTo(token).GetOrdered(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query evaluator by reset token")
	}
	if len(results) == 0 {
		return nil, repository.ErrEvaluatorNotFound
	}

	return unmarshalNode(results[0])
}

func (r *evaluatorRepository) FindByEnvelopeID(ctx context.Context, envelopeID string) (*entity.Evaluator, error) {
	// The envelope ID lives on a sub-record, so equality indexing uses the
	// nested child path.
	results, err := r.ref.OrderByChild("nda/envelopeId").EqualTo(envelopeID).GetOrdered(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query evaluator by envelope")
	}
	if len(results) == 0 {
		return nil, repository.ErrEvaluatorNotFound
	}

	return unmarshalNode(results[0])
}

func (r *evaluatorRepository) FindAll(ctx context.Context) ([]*entity.Evaluator, error) {
	var records map[string]*entity.Evaluator
	if err := r.ref.Get(ctx, &records); err != nil {
		return nil, errors.Wrap(err, "failed to list evaluators")
	}

	evaluators := make([]*entity.Evaluator, 0, len(records))
	for id, evaluator := range records {
		evaluator.ID = id
		evaluators = append(evaluators, evaluator)
	}
	sort.Slice(evaluators, func(i, j int) bool {
		return evaluators[i].ID < evaluators[j].ID
	})

	return evaluators, nil
}

func (r *evaluatorRepository) Update(ctx context.Context, evaluator *entity.Evaluator) error {
	if err := r.ref.Child(evaluator.ID).Set(ctx, evaluator); err != nil {
		return errors.Wrap(err, "failed to update evaluator")
	}

	return nil
}

func (r *evaluatorRepository) Delete(ctx context.Context, id string) error {
	if err := r.ref.Child(id).Delete(ctx); err != nil {
		return errors.Wrap(err, "failed to delete evaluator")
	}

	return nil
}

func unmarshalNode(node db.QueryNode) (*entity.Evaluator, error) {
	var evaluator entity.Evaluator
	if err := node.Unmarshal(&evaluator); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal evaluator")
	}
	evaluator.ID = node.Key()

	return &evaluator, nil
}
