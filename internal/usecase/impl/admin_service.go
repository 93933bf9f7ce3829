package impl

import (
	"context"
	"log/slog"

	domainerrors "htga/internal/domain/errors"
	"htga/internal/domain/repository"
	"htga/internal/domain/service"
	"htga/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// adminService implements the AdminUsecase interface. Admin accounts live
// entirely in the identity provider; there is no portal-side record.
type adminService struct {
	evaluatorRepo repository.EvaluatorRepository
	identitySvc   service.IdentityService
	logger        *slog.Logger
}

// AdminServiceParams holds dependencies for adminService, injected by Fx.
type AdminServiceParams struct {
	fx.In

	EvaluatorRepo repository.EvaluatorRepository
	IdentitySvc   service.IdentityService
	Logger        *slog.Logger
}

// NewAdminService is the constructor for adminService.
func NewAdminService(params AdminServiceParams) usecase.AdminUsecase {
	return &adminService{
		evaluatorRepo: params.EvaluatorRepo,
		identitySvc:   params.IdentitySvc,
		logger:        params.Logger,
	}
}

func (srv *adminService) CreateAdmin(ctx context.Context, email, password, name string) (*service.IdentityUser, error) {
	if _, err := srv.evaluatorRepo.FindByEmail(ctx, email); err == nil {
		return nil, domainerrors.ErrEmailAlreadyRegistered
	} else if !errors.Is(err, repository.ErrEvaluatorNotFound) {
		return nil, errors.Wrap(err, "failed to check email uniqueness")
	}
	existing, err := srv.identitySvc.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, errors.Wrap(err, "failed to check identity accounts")
	}
	if existing != nil {
		return nil, domainerrors.ErrEmailAlreadyRegistered
	}

	uid, err := srv.identitySvc.CreateUser(ctx, email, password, name, service.RoleAdmin)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create admin account")
	}

	srv.logger.Info("Admin account created", slog.String("uid", uid))

	return &service.IdentityUser{
		UID:   uid,
		Email: email,
		Name:  name,
		Role:  service.RoleAdmin,
	}, nil
}

func (srv *adminService) ListAdmins(ctx context.Context) ([]*service.IdentityUser, error) {
	admins, err := srv.identitySvc.ListUsersByRole(ctx, service.RoleAdmin)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list admin accounts")
	}

	return admins, nil
}

func (srv *adminService) SetAdminDisabled(ctx context.Context, uid string, disabled bool) error {
	if err := srv.identitySvc.SetDisabled(ctx, uid, disabled); err != nil {
		return errors.Wrap(err, "failed to update admin account")
	}

	srv.logger.Info("Admin account disabled state changed",
		slog.String("uid", uid), slog.Bool("disabled", disabled))

	return nil
}

func (srv *adminService) DeleteAdmin(ctx context.Context, uid string) error {
	if err := srv.identitySvc.DeleteUser(ctx, uid); err != nil {
		return errors.Wrap(err, "failed to delete admin account")
	}

	srv.logger.Info("Admin account deleted", slog.String("uid", uid))

	return nil
}
