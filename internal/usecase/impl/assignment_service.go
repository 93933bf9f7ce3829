package impl

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"htga/internal/domain/entity"
	domainerrors "htga/internal/domain/errors"
	"htga/internal/domain/identifier"
	"htga/internal/domain/repository"
	"htga/internal/domain/service"
	"htga/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// assignmentService implements the AssignmentUsecase interface.
type assignmentService struct {
	assignmentRepo    repository.AssignmentRepository
	evaluatorRepo     repository.EvaluatorRepository
	establishmentRepo repository.EstablishmentRepository
	counterRepo       repository.CounterRepository
	identitySvc       service.IdentityService
	mailSvc           service.MailService
	logger            *slog.Logger
}

// AssignmentServiceParams holds dependencies for assignmentService, injected by Fx.
type AssignmentServiceParams struct {
	fx.In

	AssignmentRepo    repository.AssignmentRepository
	EvaluatorRepo     repository.EvaluatorRepository
	EstablishmentRepo repository.EstablishmentRepository
	CounterRepo       repository.CounterRepository
	IdentitySvc       service.IdentityService
	MailSvc           service.MailService
	Logger            *slog.Logger
}

// NewAssignmentService is the constructor for assignmentService.
func NewAssignmentService(params AssignmentServiceParams) usecase.AssignmentUsecase {
	return &assignmentService{
		assignmentRepo:    params.AssignmentRepo,
		evaluatorRepo:     params.EvaluatorRepo,
		establishmentRepo: params.EstablishmentRepo,
		counterRepo:       params.CounterRepo,
		identitySvc:       params.IdentitySvc,
		mailSvc:           params.MailSvc,
		logger:            params.Logger,
	}
}

// AutoAssign runs the matching engine over a fresh snapshot of evaluators
// and establishments. The snapshot reads are independent and issued
// concurrently; the batch itself is a single synchronous pass.
func (srv *assignmentService) AutoAssign(ctx context.Context, clearExisting bool) (*usecase.AutoAssignSummary, error) {
	srv.logger.Info("Starting auto-assignment", slog.Bool("clearExisting", clearExisting))

	type listResult[T any] struct {
		items []T
		err   error
	}
	evaluatorCh := make(chan listResult[*entity.Evaluator], 1)
	establishmentCh := make(chan listResult[*entity.Establishment], 1)

	go func() {
		items, err := srv.evaluatorRepo.FindAll(ctx)
		evaluatorCh <- listResult[*entity.Evaluator]{items, err}
	}()
	go func() {
		items, err := srv.establishmentRepo.FindAll(ctx)
		establishmentCh <- listResult[*entity.Establishment]{items, err}
	}()

	evaluators := <-evaluatorCh
	establishments := <-establishmentCh
	if evaluators.err != nil {
		return nil, errors.Wrap(evaluators.err, "failed to load evaluators for matching")
	}
	if establishments.err != nil {
		return nil, errors.Wrap(establishments.err, "failed to load establishments for matching")
	}

	if clearExisting {
		if err := srv.assignmentRepo.DeleteAll(ctx); err != nil {
			return nil, errors.Wrap(err, "failed to clear existing assignments")
		}
	}

	outcome := runMatching(evaluators.items, establishments.items, time.Now().UTC())

	for _, assignment := range outcome.created {
		key, err := srv.assignmentRepo.Create(ctx, assignment)
		if err != nil {
			return nil, errors.Wrap(err, "failed to persist assignment")
		}
		assignment.ID = key
	}

	summary := outcome.summarize(establishments.items)
	srv.logger.Info("Auto-assignment finished",
		slog.Int("successful", summary.Successful),
		slog.Int("failed", summary.Failed),
	)

	return summary, nil
}

// Validate recomputes per-evaluator counts from persisted assignments, not
// from any in-memory batch state.
func (srv *assignmentService) Validate(ctx context.Context) (*usecase.ValidationReport, error) {
	assignments, err := srv.assignmentRepo.FindAll(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load assignments for validation")
	}
	establishments, err := srv.establishmentRepo.FindAll(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load establishments for validation")
	}

	report := &usecase.ValidationReport{
		EvaluatorCounts:          make(map[string]int),
		UncoveredEstablishments:  []string{},
		DuplicateSlotAssignments: []string{},
	}

	covered := make(map[string]bool, len(assignments))
	for _, assignment := range assignments {
		covered[assignment.EstablishmentID] = true
		for _, slot := range assignment.OccupiedSlots() {
			report.EvaluatorCounts[slot.EvaluatorID]++
		}
		if assignment.HasDuplicateEvaluators() {
			report.DuplicateSlotAssignments = append(report.DuplicateSlotAssignments, assignment.ID)
		}
	}

	for _, establishment := range establishments {
		if !covered[establishment.ID] {
			report.UncoveredEstablishments = append(report.UncoveredEstablishments, establishment.ID)
		}
	}

	return report, nil
}

func (srv *assignmentService) List(ctx context.Context) ([]*usecase.AssignmentView, error) {
	assignments, err := srv.assignmentRepo.FindAll(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load assignments")
	}

	return srv.buildViews(ctx, assignments)
}

func (srv *assignmentService) ListForEvaluator(ctx context.Context, evaluatorID string) ([]*usecase.AssignmentView, error) {
	assignments, err := srv.assignmentRepo.FindAll(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load assignments")
	}

	var owned []*entity.Assignment
	for _, assignment := range assignments {
		if assignment.HasEvaluator(evaluatorID) {
			owned = append(owned, assignment)
		}
	}

	return srv.buildViews(ctx, owned)
}

// Create performs a manual single-pair assignment. Unlike the batch path,
// the manual path rejects identical slots up front.
func (srv *assignmentService) Create(ctx context.Context, establishmentID, evaluator1ID, evaluator2ID string) (*entity.Assignment, error) {
	if evaluator1ID == "" || evaluator2ID == "" {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("both evaluator slots are required")
	}
	if evaluator1ID == evaluator2ID {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("evaluator slots must differ")
	}

	establishment, err := srv.establishmentRepo.FindByID(ctx, establishmentID)
	if err != nil {
		if errors.Is(err, repository.ErrEstablishmentNotFound) {
			return nil, domainerrors.ErrEstablishmentNotFound
		}

		return nil, errors.Wrap(err, "failed to load establishment")
	}

	for _, evaluatorID := range []string{evaluator1ID, evaluator2ID} {
		evaluator, err := srv.evaluatorRepo.FindByID(ctx, evaluatorID)
		if err != nil {
			if errors.Is(err, repository.ErrEvaluatorNotFound) {
				return nil, domainerrors.ErrEvaluatorNotFound.WithDetails(evaluatorID)
			}

			return nil, errors.Wrap(err, "failed to load evaluator")
		}
		if !evaluator.HasSpecialty(establishment.Category) {
			return nil, domainerrors.ErrValidationFailed.WithDetails(
				fmt.Sprintf("evaluator %s has no specialty %s", evaluatorID, establishment.Category))
		}
	}

	now := time.Now().UTC()
	assignment := &entity.Assignment{
		EstablishmentID: establishmentID,
		Status:          entity.AssignmentStatusPending,
		AssignedAt:      now,
		UpdatedAt:       now,
		Slots: [2]*entity.EvaluatorSlot{
			{EvaluatorID: evaluator1ID, Status: entity.SlotStatusPending, AssignedAt: now},
			{EvaluatorID: evaluator2ID, Status: entity.SlotStatusPending, AssignedAt: now},
		},
	}

	key, err := srv.assignmentRepo.Create(ctx, assignment)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create assignment")
	}
	assignment.ID = key

	return assignment, nil
}

// Candidates filters evaluators by the establishment's category; the slot-2
// list additionally excludes the current slot-1 occupant. This is an
// advisory filter for the admin UI, not a storage-level constraint.
func (srv *assignmentService) Candidates(ctx context.Context, assignmentID string) (*usecase.SlotCandidates, error) {
	assignment, err := srv.loadAssignment(ctx, assignmentID)
	if err != nil {
		return nil, err
	}

	establishment, err := srv.establishmentRepo.FindByID(ctx, assignment.EstablishmentID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load establishment")
	}

	evaluators, err := srv.evaluatorRepo.FindAll(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load evaluators")
	}

	candidates := &usecase.SlotCandidates{
		Slot1: []*entity.Evaluator{},
		Slot2: []*entity.Evaluator{},
	}
	var slot1Occupant string
	if assignment.Slots[0] != nil {
		slot1Occupant = assignment.Slots[0].EvaluatorID
	}
	for _, evaluator := range evaluators {
		if !evaluator.HasSpecialty(establishment.Category) {
			continue
		}
		stripCredentials(evaluator)
		candidates.Slot1 = append(candidates.Slot1, evaluator)
		if evaluator.ID != slot1Occupant {
			candidates.Slot2 = append(candidates.Slot2, evaluator)
		}
	}

	return candidates, nil
}

// UpdateSlots applies the admin reconciliation rule: both IDs empty deletes
// the assignment, otherwise each slot is replaced or cleared and updatedAt
// refreshed. Untouched slot fields are preserved.
func (srv *assignmentService) UpdateSlots(ctx context.Context, assignmentID, evaluator1ID, evaluator2ID string) (*entity.Assignment, bool, error) {
	assignment, err := srv.loadAssignment(ctx, assignmentID)
	if err != nil {
		return nil, false, err
	}

	if evaluator1ID == "" && evaluator2ID == "" {
		if err := srv.assignmentRepo.Delete(ctx, assignmentID); err != nil {
			return nil, false, errors.Wrap(err, "failed to delete assignment")
		}
		srv.logger.Info("Assignment deleted by slot reconciliation", slog.String("assignmentID", assignmentID))

		return nil, true, nil
	}

	now := time.Now().UTC()
	reconcileSlot(assignment, 0, evaluator1ID, now)
	reconcileSlot(assignment, 1, evaluator2ID, now)
	assignment.UpdatedAt = now

	if err := srv.assignmentRepo.Update(ctx, assignment); err != nil {
		return nil, false, errors.Wrap(err, "failed to update assignment")
	}

	return assignment, false, nil
}

// reconcileSlot replaces, keeps, or clears one slot. A changed occupant
// resets the slot's submission state; the same occupant keeps its fields.
func reconcileSlot(assignment *entity.Assignment, index int, evaluatorID string, now time.Time) {
	current := assignment.Slots[index]

	switch {
	case evaluatorID == "":
		assignment.Slots[index] = nil
	case current != nil && current.EvaluatorID == evaluatorID:
		// Unchanged; preserve submission state, receipt, and amount.
	default:
		assignment.Slots[index] = &entity.EvaluatorSlot{
			EvaluatorID: evaluatorID,
			Status:      entity.SlotStatusPending,
			AssignedAt:  now,
		}
	}
}

// SubmitClaim records the acting evaluator's submission on its slot. The
// slot lookup and the write happen on one record; an evaluator matching
// neither slot fails before anything is written. A first submission gets a
// "RQST-NN" tracking ID; a resubmission keeps the one it already has.
func (srv *assignmentService) SubmitClaim(ctx context.Context, input *usecase.SubmitClaimInput) (*entity.Assignment, error) {
	assignment, err := srv.loadAssignment(ctx, input.AssignmentID)
	if err != nil {
		return nil, err
	}

	index := assignment.SlotIndexFor(input.EvaluatorID)
	if index < 0 {
		return nil, domainerrors.ErrEvaluatorSlotMismatch
	}

	slot := assignment.Slots[index]
	if slot.ClaimID == "" {
		seq, err := srv.counterRepo.Next(ctx, repository.CounterRequests)
		if err != nil {
			return nil, errors.Wrap(err, "failed to allocate claim id")
		}
		slot.ClaimID = identifier.FormatSequenceID(identifier.RequestPrefix, seq)
	}

	now := time.Now().UTC()
	slot.Status = entity.SlotStatusSubmitted
	slot.ReceiptURL = input.ReceiptURL
	slot.AmountSpent = input.AmountSpent

	if assignment.AllSubmitted() {
		assignment.Status = entity.AssignmentStatusCompleted
		assignment.CompletedAt = &now
	} else {
		assignment.Status = entity.AssignmentStatusInProgress
	}
	assignment.UpdatedAt = now

	if err := srv.assignmentRepo.Update(ctx, assignment); err != nil {
		return nil, errors.Wrap(err, "failed to record claim submission")
	}

	return assignment, nil
}

// RequestReassignment marks the acting evaluator's slot reassigned and
// notifies admin accounts by email. The tracking ID comes from the atomic
// counter, so concurrent requests never collide.
func (srv *assignmentService) RequestReassignment(ctx context.Context, assignmentID, evaluatorID, reason string) (string, error) {
	assignment, err := srv.loadAssignment(ctx, assignmentID)
	if err != nil {
		return "", err
	}

	index := assignment.SlotIndexFor(evaluatorID)
	if index < 0 {
		return "", domainerrors.ErrEvaluatorSlotMismatch
	}

	seq, err := srv.counterRepo.Next(ctx, repository.CounterReassignments)
	if err != nil {
		return "", errors.Wrap(err, "failed to allocate reassignment id")
	}
	requestID := identifier.FormatSequenceID(identifier.ReassignmentPrefix, seq)

	assignment.Slots[index].Status = entity.SlotStatusReassigned
	assignment.UpdatedAt = time.Now().UTC()
	if err := srv.assignmentRepo.Update(ctx, assignment); err != nil {
		return "", errors.Wrap(err, "failed to record reassignment request")
	}

	srv.notifyAdminsOfReassignment(ctx, requestID, assignment, evaluatorID, reason)

	return requestID, nil
}

func (srv *assignmentService) Delete(ctx context.Context, assignmentID string) error {
	if _, err := srv.loadAssignment(ctx, assignmentID); err != nil {
		return err
	}

	if err := srv.assignmentRepo.Delete(ctx, assignmentID); err != nil {
		return errors.Wrap(err, "failed to delete assignment")
	}

	return nil
}

func (srv *assignmentService) loadAssignment(ctx context.Context, assignmentID string) (*entity.Assignment, error) {
	assignment, err := srv.assignmentRepo.FindByID(ctx, assignmentID)
	if err != nil {
		if errors.Is(err, repository.ErrAssignmentNotFound) {
			return nil, domainerrors.ErrAssignmentNotFound
		}

		return nil, errors.Wrap(err, "failed to load assignment")
	}

	return assignment, nil
}

// buildViews joins assignments with establishment and evaluator names so
// clients never need follow-up lookups. Both lookup tables are loaded once
// per call, not per assignment.
func (srv *assignmentService) buildViews(ctx context.Context, assignments []*entity.Assignment) ([]*usecase.AssignmentView, error) {
	establishments, err := srv.establishmentRepo.FindAll(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load establishments")
	}
	evaluators, err := srv.evaluatorRepo.FindAll(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load evaluators")
	}

	establishmentsByID := make(map[string]*entity.Establishment, len(establishments))
	for _, establishment := range establishments {
		establishmentsByID[establishment.ID] = establishment
	}
	evaluatorNames := make(map[string]string, len(evaluators))
	for _, evaluator := range evaluators {
		evaluatorNames[evaluator.ID] = evaluator.Name
	}

	views := make([]*usecase.AssignmentView, 0, len(assignments))
	for _, assignment := range assignments {
		view := &usecase.AssignmentView{Assignment: assignment}
		if establishment, ok := establishmentsByID[assignment.EstablishmentID]; ok {
			view.EstablishmentName = establishment.Name
			view.Category = establishment.Category
		}
		for i, slot := range assignment.Slots {
			if slot != nil {
				view.EvaluatorNames[i] = evaluatorNames[slot.EvaluatorID]
			}
		}
		views = append(views, view)
	}

	return views, nil
}

func (srv *assignmentService) notifyAdminsOfReassignment(ctx context.Context, requestID string, assignment *entity.Assignment, evaluatorID, reason string) {
	admins, err := srv.identitySvc.ListUsersByRole(ctx, service.RoleAdmin)
	if err != nil {
		srv.logger.Warn("Failed to list admins for reassignment notice", slog.Any("error", err))

		return
	}

	subject := fmt.Sprintf("Reassignment request %s", requestID)
	textBody := fmt.Sprintf(
		"Evaluator %s asked to be reassigned from assignment %s (establishment %s).\nReason: %s\nRequest ID: %s\n",
		evaluatorID, assignment.ID, assignment.EstablishmentID, reason, requestID)
	htmlBody := fmt.Sprintf(
		"<p>Evaluator <b>%s</b> asked to be reassigned from assignment <b>%s</b> (establishment %s).</p><p>Reason: %s</p><p>Request ID: %s</p>",
		evaluatorID, assignment.ID, assignment.EstablishmentID, reason, requestID)

	for _, admin := range admins {
		if admin.Email == "" {
			continue
		}
		if err := srv.mailSvc.Send(ctx, admin.Email, subject, htmlBody, textBody); err != nil {
			srv.logger.Warn("Failed to send reassignment notice",
				slog.String("email", admin.Email), slog.Any("error", err))
		}
	}
}
