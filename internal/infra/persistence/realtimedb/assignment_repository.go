package realtimedb

import (
	"context"
	"sort"

	"firebase.google.com/go/v4/db"
	"github.com/pkg/errors"

	"htga/internal/domain/entity"
	"htga/internal/domain/repository"
)

type assignmentRepository struct {
	ref *db.Ref
}

// NewAssignmentRepository creates a repository over "assignments/{key}".
func NewAssignmentRepository(client *db.Client) repository.AssignmentRepository {
	return &assignmentRepository{ref: client.NewRef(assignmentsPath)}
}

func (r *assignmentRepository) Create(ctx context.Context, assignment *entity.Assignment) (string, error) {
	record := *assignment
	record.ID = ""

	newRef, err := r.ref.Push(ctx, &record)
	if err != nil {
		return "", errors.Wrap(err, "failed to create assignment")
	}
	assignment.ID = newRef.Key

	return newRef.Key, nil
}

func (r *assignmentRepository) FindByID(ctx context.Context, id string) (*entity.Assignment, error) {
	var assignment *entity.Assignment
	if err := r.ref.Child(id).Get(ctx, &assignment); err != nil {
		return nil, errors.Wrap(err, "failed to get assignment")
	}
	if assignment == nil {
		return nil, repository.ErrAssignmentNotFound
	}
	assignment.ID = id

	return assignment, nil
}

func (r *assignmentRepository) FindAll(ctx context.Context) ([]*entity.Assignment, error) {
	var records map[string]*entity.Assignment
	if err := r.ref.Get(ctx, &records); err != nil {
		return nil, errors.Wrap(err, "failed to list assignments")
	}

	return sortedAssignments(records), nil
}

func (r *assignmentRepository) FindByEstablishment(ctx context.Context, establishmentID string) ([]*entity.Assignment, error) {
	results, err := r.ref.OrderByChild("establishmentId").EqualTo(establishmentID).GetOrdered(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query assignments by establishment")
	}

	assignments := make([]*entity.Assignment, 0, len(results))
	for _, node := range results {
		var assignment entity.Assignment
		if err := node.Unmarshal(&assignment); err != nil {
			return nil, errors.Wrap(err, "failed to unmarshal assignment")
		}
		assignment.ID = node.Key()
		assignments = append(assignments, &assignment)
	}

	return assignments, nil
}

func (r *assignmentRepository) Update(ctx context.Context, assignment *entity.Assignment) error {
	record := *assignment
	record.ID = ""
	if err := r.ref.Child(assignment.ID).Set(ctx, &record); err != nil {
		return errors.Wrap(err, "failed to update assignment")
	}

	return nil
}

func (r *assignmentRepository) Delete(ctx context.Context, id string) error {
	if err := r.ref.Child(id).Delete(ctx); err != nil {
		return errors.Wrap(err, "failed to delete assignment")
	}

	return nil
}

func (r *assignmentRepository) DeleteAll(ctx context.Context) error {
	if err := r.ref.Delete(ctx); err != nil {
		return errors.Wrap(err, "failed to clear assignments")
	}

	return nil
}

func sortedAssignments(records map[string]*entity.Assignment) []*entity.Assignment {
	assignments := make([]*entity.Assignment, 0, len(records))
	for id, assignment := range records {
		assignment.ID = id
		assignments = append(assignments, assignment)
	}
	sort.Slice(assignments, func(i, j int) bool {
		return assignments[i].ID < assignments[j].ID
	})

	return assignments
}
