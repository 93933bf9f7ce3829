// Package mocks provides testify mocks for the repository and service
// interfaces used across the use case tests.
package mocks

import (
	"context"

	"htga/internal/domain/entity"

	"github.com/stretchr/testify/mock"
)

// EvaluatorRepository is a mock of repository.EvaluatorRepository.
type EvaluatorRepository struct {
	mock.Mock
}

func (m *EvaluatorRepository) Create(ctx context.Context, evaluator *entity.Evaluator) error {
	args := m.Called(ctx, evaluator)

	return args.Error(0)
}

func (m *EvaluatorRepository) FindByID(ctx context.Context, id string) (*entity.Evaluator, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.Evaluator), args.Error(1)
}

func (m *EvaluatorRepository) FindByEmail(ctx context.Context, email string) (*entity.Evaluator, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.Evaluator), args.Error(1)
}

func (m *EvaluatorRepository) FindByResetToken(ctx context.Context, token string) (*entity.Evaluator, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.Evaluator), args.Error(1)
}

func (m *EvaluatorRepository) FindByEnvelopeID(ctx context.Context, envelopeID string) (*entity.Evaluator, error) {
	args := m.Called(ctx, envelopeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.Evaluator), args.Error(1)
}

func (m *EvaluatorRepository) FindAll(ctx context.Context) ([]*entity.Evaluator, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*entity.Evaluator), args.Error(1)
}

func (m *EvaluatorRepository) Update(ctx context.Context, evaluator *entity.Evaluator) error {
	args := m.Called(ctx, evaluator)

	return args.Error(0)
}

func (m *EvaluatorRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)

	return args.Error(0)
}

// EstablishmentRepository is a mock of repository.EstablishmentRepository.
type EstablishmentRepository struct {
	mock.Mock
}

func (m *EstablishmentRepository) Create(ctx context.Context, establishment *entity.Establishment) (string, error) {
	args := m.Called(ctx, establishment)

	return args.String(0), args.Error(1)
}

func (m *EstablishmentRepository) FindByID(ctx context.Context, id string) (*entity.Establishment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.Establishment), args.Error(1)
}

func (m *EstablishmentRepository) FindAll(ctx context.Context) ([]*entity.Establishment, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*entity.Establishment), args.Error(1)
}

func (m *EstablishmentRepository) Update(ctx context.Context, establishment *entity.Establishment) error {
	args := m.Called(ctx, establishment)

	return args.Error(0)
}

func (m *EstablishmentRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)

	return args.Error(0)
}

// AssignmentRepository is a mock of repository.AssignmentRepository.
type AssignmentRepository struct {
	mock.Mock
}

func (m *AssignmentRepository) Create(ctx context.Context, assignment *entity.Assignment) (string, error) {
	args := m.Called(ctx, assignment)

	return args.String(0), args.Error(1)
}

func (m *AssignmentRepository) FindByID(ctx context.Context, id string) (*entity.Assignment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.Assignment), args.Error(1)
}

func (m *AssignmentRepository) FindAll(ctx context.Context) ([]*entity.Assignment, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*entity.Assignment), args.Error(1)
}

func (m *AssignmentRepository) FindByEstablishment(ctx context.Context, establishmentID string) ([]*entity.Assignment, error) {
	args := m.Called(ctx, establishmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*entity.Assignment), args.Error(1)
}

func (m *AssignmentRepository) Update(ctx context.Context, assignment *entity.Assignment) error {
	args := m.Called(ctx, assignment)

	return args.Error(0)
}

func (m *AssignmentRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)

	return args.Error(0)
}

func (m *AssignmentRepository) DeleteAll(ctx context.Context) error {
	args := m.Called(ctx)

	return args.Error(0)
}

// CounterRepository is a mock of repository.CounterRepository.
type CounterRepository struct {
	mock.Mock
}

func (m *CounterRepository) Next(ctx context.Context, name string) (int64, error) {
	args := m.Called(ctx, name)

	return args.Get(0).(int64), args.Error(1)
}

func (m *CounterRepository) EnsureAtLeast(ctx context.Context, name string, floor int64) error {
	args := m.Called(ctx, name, floor)

	return args.Error(0)
}
