package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"htga/internal/domain/entity"
	domainerrors "htga/internal/domain/errors"
	"htga/internal/domain/service"
	"htga/internal/mocks"
	"htga/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type assignmentServiceMocks struct {
	assignmentRepo    *mocks.AssignmentRepository
	evaluatorRepo     *mocks.EvaluatorRepository
	establishmentRepo *mocks.EstablishmentRepository
	counterRepo       *mocks.CounterRepository
	identitySvc       *mocks.IdentityService
	mailSvc           *mocks.MailService
}

func newAssignmentService(t *testing.T) (usecase.AssignmentUsecase, *assignmentServiceMocks) {
	t.Helper()
	m := &assignmentServiceMocks{
		assignmentRepo:    new(mocks.AssignmentRepository),
		evaluatorRepo:     new(mocks.EvaluatorRepository),
		establishmentRepo: new(mocks.EstablishmentRepository),
		counterRepo:       new(mocks.CounterRepository),
		identitySvc:       new(mocks.IdentityService),
		mailSvc:           new(mocks.MailService),
	}
	svc := NewAssignmentService(AssignmentServiceParams{
		AssignmentRepo:    m.assignmentRepo,
		EvaluatorRepo:     m.evaluatorRepo,
		EstablishmentRepo: m.establishmentRepo,
		CounterRepo:       m.counterRepo,
		IdentitySvc:       m.identitySvc,
		MailSvc:           m.mailSvc,
		Logger:            slog.New(slog.NewTextHandler(io.Discard, nil)),
	})

	return svc, m
}

func pendingAssignment(id, establishmentID, evaluator1, evaluator2 string) *entity.Assignment {
	now := time.Now().UTC()

	return &entity.Assignment{
		ID:              id,
		EstablishmentID: establishmentID,
		Status:          entity.AssignmentStatusPending,
		AssignedAt:      now,
		UpdatedAt:       now,
		Slots: [2]*entity.EvaluatorSlot{
			{EvaluatorID: evaluator1, Status: entity.SlotStatusPending, AssignedAt: now},
			{EvaluatorID: evaluator2, Status: entity.SlotStatusPending, AssignedAt: now},
		},
	}
}

func TestAutoAssignPersistsMatchesAndReportsSummary(t *testing.T) {
	svc, m := newAssignmentService(t)
	ctx := context.Background()

	m.evaluatorRepo.On("FindAll", mock.Anything).Return([]*entity.Evaluator{
		evaluatorWith("JEVA01", []string{"Bakery"}, 0),
		evaluatorWith("JEVA02", []string{"Bakery"}, 0),
	}, nil)
	m.establishmentRepo.On("FindAll", mock.Anything).Return([]*entity.Establishment{
		establishmentWith("est1", "Corner Bakery", "Bakery"),
		establishmentWith("est2", "Trattoria", "Italian"),
	}, nil)
	m.assignmentRepo.On("Create", mock.Anything, mock.AnythingOfType("*entity.Assignment")).
		Return("asg1", nil).Once()

	summary, err := svc.AutoAssign(ctx, false)

	require.NoError(t, err)
	assert.Equal(t, 1, summary.Successful)
	assert.Equal(t, 1, summary.Failed)
	require.Len(t, summary.Created, 1)
	assert.Equal(t, "asg1", summary.Created[0].ID)
	m.assignmentRepo.AssertNotCalled(t, "DeleteAll", mock.Anything)
}

func TestAutoAssignClearExistingWipesCollectionFirst(t *testing.T) {
	svc, m := newAssignmentService(t)
	ctx := context.Background()

	m.evaluatorRepo.On("FindAll", mock.Anything).Return([]*entity.Evaluator{}, nil)
	m.establishmentRepo.On("FindAll", mock.Anything).Return([]*entity.Establishment{}, nil)
	m.assignmentRepo.On("DeleteAll", mock.Anything).Return(nil).Once()

	summary, err := svc.AutoAssign(ctx, true)

	require.NoError(t, err)
	assert.Equal(t, 0, summary.Successful)
	m.assignmentRepo.AssertExpectations(t)
}

func TestValidateRecomputesFromPersistedAssignments(t *testing.T) {
	svc, m := newAssignmentService(t)
	ctx := context.Background()

	duplicate := pendingAssignment("asg2", "est2", "JEVA01", "JEVA01")
	m.assignmentRepo.On("FindAll", mock.Anything).Return([]*entity.Assignment{
		pendingAssignment("asg1", "est1", "JEVA01", "JEVA02"),
		duplicate,
	}, nil)
	m.establishmentRepo.On("FindAll", mock.Anything).Return([]*entity.Establishment{
		establishmentWith("est1", "Corner Bakery", "Bakery"),
		establishmentWith("est2", "Trattoria", "Italian"),
		establishmentWith("est3", "Noodle Bar", "Asian"),
	}, nil)

	report, err := svc.Validate(ctx)

	require.NoError(t, err)
	assert.Equal(t, 3, report.EvaluatorCounts["JEVA01"])
	assert.Equal(t, 1, report.EvaluatorCounts["JEVA02"])
	assert.Equal(t, []string{"est3"}, report.UncoveredEstablishments)
	assert.Equal(t, []string{"asg2"}, report.DuplicateSlotAssignments)
}

func TestUpdateSlotsBothEmptyDeletesAssignment(t *testing.T) {
	svc, m := newAssignmentService(t)
	ctx := context.Background()

	m.assignmentRepo.On("FindByID", mock.Anything, "asg1").
		Return(pendingAssignment("asg1", "est1", "JEVA01", "JEVA02"), nil)
	m.assignmentRepo.On("Delete", mock.Anything, "asg1").Return(nil).Once()

	assignment, deleted, err := svc.UpdateSlots(ctx, "asg1", "", "")

	require.NoError(t, err)
	assert.True(t, deleted)
	assert.Nil(t, assignment)
	m.assignmentRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestUpdateSlotsReplacesOneSlotAndPreservesTheOther(t *testing.T) {
	svc, m := newAssignmentService(t)
	ctx := context.Background()

	existing := pendingAssignment("asg1", "est1", "JEVA01", "JEVA02")
	existing.Slots[0].Status = entity.SlotStatusSubmitted
	existing.Slots[0].ReceiptURL = "https://receipts/r1.pdf"
	existing.Slots[0].AmountSpent = 42.50

	m.assignmentRepo.On("FindByID", mock.Anything, "asg1").Return(existing, nil)
	m.assignmentRepo.On("Update", mock.Anything, mock.AnythingOfType("*entity.Assignment")).Return(nil)

	assignment, deleted, err := svc.UpdateSlots(ctx, "asg1", "JEVA01", "JEVA03")

	require.NoError(t, err)
	assert.False(t, deleted)
	// Slot 1 unchanged: same occupant keeps its submission state.
	assert.Equal(t, entity.SlotStatusSubmitted, assignment.Slots[0].Status)
	assert.Equal(t, "https://receipts/r1.pdf", assignment.Slots[0].ReceiptURL)
	// Slot 2 replaced: fresh pending slot.
	assert.Equal(t, "JEVA03", assignment.Slots[1].EvaluatorID)
	assert.Equal(t, entity.SlotStatusPending, assignment.Slots[1].Status)
	assert.Empty(t, assignment.Slots[1].ReceiptURL)
}

func TestUpdateSlotsClearsOneSlot(t *testing.T) {
	svc, m := newAssignmentService(t)
	ctx := context.Background()

	m.assignmentRepo.On("FindByID", mock.Anything, "asg1").
		Return(pendingAssignment("asg1", "est1", "JEVA01", "JEVA02"), nil)
	m.assignmentRepo.On("Update", mock.Anything, mock.AnythingOfType("*entity.Assignment")).Return(nil)

	assignment, deleted, err := svc.UpdateSlots(ctx, "asg1", "JEVA01", "")

	require.NoError(t, err)
	assert.False(t, deleted)
	assert.Nil(t, assignment.Slots[1])
	require.NotNil(t, assignment.Slots[0])
	assert.Equal(t, "JEVA01", assignment.Slots[0].EvaluatorID)
}

func TestSubmitClaimRejectsEvaluatorOnNeitherSlot(t *testing.T) {
	svc, m := newAssignmentService(t)
	ctx := context.Background()

	m.assignmentRepo.On("FindByID", mock.Anything, "asg1").
		Return(pendingAssignment("asg1", "est1", "JEVA01", "JEVA02"), nil)

	_, err := svc.SubmitClaim(ctx, &usecase.SubmitClaimInput{
		AssignmentID: "asg1",
		EvaluatorID:  "JEVA99",
		ReceiptURL:   "https://receipts/r9.pdf",
		AmountSpent:  10,
	})

	assert.ErrorIs(t, err, domainerrors.ErrEvaluatorSlotMismatch)
	m.assignmentRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestSubmitClaimMarksInProgressUntilBothSubmitted(t *testing.T) {
	svc, m := newAssignmentService(t)
	ctx := context.Background()

	m.assignmentRepo.On("FindByID", mock.Anything, "asg1").
		Return(pendingAssignment("asg1", "est1", "JEVA01", "JEVA02"), nil)
	m.counterRepo.On("Next", mock.Anything, "requests").Return(int64(5), nil)
	m.assignmentRepo.On("Update", mock.Anything, mock.AnythingOfType("*entity.Assignment")).Return(nil)

	assignment, err := svc.SubmitClaim(ctx, &usecase.SubmitClaimInput{
		AssignmentID: "asg1",
		EvaluatorID:  "JEVA01",
		ReceiptURL:   "https://receipts/r1.pdf",
		AmountSpent:  25,
	})

	require.NoError(t, err)
	assert.Equal(t, entity.AssignmentStatusInProgress, assignment.Status)
	assert.Nil(t, assignment.CompletedAt)
	assert.Equal(t, entity.SlotStatusSubmitted, assignment.Slots[0].Status)
	assert.Equal(t, "RQST-05", assignment.Slots[0].ClaimID)
	assert.Equal(t, 25.0, assignment.Slots[0].AmountSpent)
}

func TestSubmitClaimStampsCompletionWhenLastSlotSubmits(t *testing.T) {
	svc, m := newAssignmentService(t)
	ctx := context.Background()

	existing := pendingAssignment("asg1", "est1", "JEVA01", "JEVA02")
	existing.Slots[0].Status = entity.SlotStatusSubmitted
	existing.Slots[0].ClaimID = "RQST-05"
	existing.Status = entity.AssignmentStatusInProgress

	m.assignmentRepo.On("FindByID", mock.Anything, "asg1").Return(existing, nil)
	m.counterRepo.On("Next", mock.Anything, "requests").Return(int64(6), nil)
	m.assignmentRepo.On("Update", mock.Anything, mock.AnythingOfType("*entity.Assignment")).Return(nil)

	assignment, err := svc.SubmitClaim(ctx, &usecase.SubmitClaimInput{
		AssignmentID: "asg1",
		EvaluatorID:  "JEVA02",
		ReceiptURL:   "https://receipts/r2.pdf",
		AmountSpent:  30,
	})

	require.NoError(t, err)
	assert.Equal(t, entity.AssignmentStatusCompleted, assignment.Status)
	require.NotNil(t, assignment.CompletedAt)
	assert.Equal(t, "RQST-05", assignment.Slots[0].ClaimID)
	assert.Equal(t, "RQST-06", assignment.Slots[1].ClaimID)
}

func TestSubmitClaimKeepsExistingClaimIDOnResubmission(t *testing.T) {
	svc, m := newAssignmentService(t)
	ctx := context.Background()

	existing := pendingAssignment("asg1", "est1", "JEVA01", "JEVA02")
	existing.Slots[0].Status = entity.SlotStatusSubmitted
	existing.Slots[0].ClaimID = "RQST-05"
	existing.Status = entity.AssignmentStatusInProgress

	m.assignmentRepo.On("FindByID", mock.Anything, "asg1").Return(existing, nil)
	m.assignmentRepo.On("Update", mock.Anything, mock.AnythingOfType("*entity.Assignment")).Return(nil)

	assignment, err := svc.SubmitClaim(ctx, &usecase.SubmitClaimInput{
		AssignmentID: "asg1",
		EvaluatorID:  "JEVA01",
		ReceiptURL:   "https://receipts/r1-fixed.pdf",
		AmountSpent:  27,
	})

	require.NoError(t, err)
	assert.Equal(t, "RQST-05", assignment.Slots[0].ClaimID)
	assert.Equal(t, "https://receipts/r1-fixed.pdf", assignment.Slots[0].ReceiptURL)
	m.counterRepo.AssertNotCalled(t, "Next", mock.Anything, mock.Anything)
}

func TestRequestReassignmentAllocatesTrackingIDAndNotifiesAdmins(t *testing.T) {
	svc, m := newAssignmentService(t)
	ctx := context.Background()

	m.assignmentRepo.On("FindByID", mock.Anything, "asg1").
		Return(pendingAssignment("asg1", "est1", "JEVA01", "JEVA02"), nil)
	m.counterRepo.On("Next", mock.Anything, "reassignments").Return(int64(3), nil)
	m.assignmentRepo.On("Update", mock.Anything, mock.AnythingOfType("*entity.Assignment")).Return(nil)
	m.identitySvc.On("ListUsersByRole", mock.Anything, "admin").Return([]*service.IdentityUser{
		{UID: "admin1", Email: "admin@example.com"},
	}, nil)
	m.mailSvc.On("Send", mock.Anything, "admin@example.com", mock.Anything, mock.Anything, mock.Anything).
		Return(nil).Once()

	requestID, err := svc.RequestReassignment(ctx, "asg1", "JEVA01", "schedule conflict")

	require.NoError(t, err)
	assert.Equal(t, "RASN-03", requestID)
	m.mailSvc.AssertExpectations(t)
}

func TestCreateRejectsIdenticalSlots(t *testing.T) {
	svc, _ := newAssignmentService(t)

	_, err := svc.Create(context.Background(), "est1", "JEVA01", "JEVA01")

	require.Error(t, err)
}

func TestCandidatesExcludesSlot1OccupantFromSlot2(t *testing.T) {
	svc, m := newAssignmentService(t)
	ctx := context.Background()

	m.assignmentRepo.On("FindByID", mock.Anything, "asg1").
		Return(pendingAssignment("asg1", "est1", "JEVA01", "JEVA02"), nil)
	m.establishmentRepo.On("FindByID", mock.Anything, "est1").
		Return(establishmentWith("est1", "Corner Bakery", "Bakery"), nil)
	m.evaluatorRepo.On("FindAll", mock.Anything).Return([]*entity.Evaluator{
		evaluatorWith("JEVA01", []string{"Bakery"}, 0),
		evaluatorWith("JEVA02", []string{"Bakery"}, 0),
		evaluatorWith("JEVA03", []string{"Sushi"}, 0),
	}, nil)

	candidates, err := svc.Candidates(ctx, "asg1")

	require.NoError(t, err)
	require.Len(t, candidates.Slot1, 2)
	require.Len(t, candidates.Slot2, 1)
	assert.Equal(t, "JEVA02", candidates.Slot2[0].ID)
}
