// Package identity adapts the Firebase Auth identity provider to the
// domain's IdentityService interface.
package identity

import (
	"context"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"github.com/pkg/errors"
	"google.golang.org/api/iterator"

	"htga/internal/domain/service"
)

// roleClaim is the custom claim key carrying the portal role.
const roleClaim = "role"

type firebaseIdentity struct {
	client *auth.Client
}

// New creates the identity service from the shared Firebase app.
func New(ctx context.Context, app *firebase.App) (service.IdentityService, error) {
	client, err := app.Auth(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create auth client")
	}

	return &firebaseIdentity{client: client}, nil
}

func (s *firebaseIdentity) CreateUser(ctx context.Context, email, password, name, role string) (string, error) {
	params := (&auth.UserToCreate{}).
		Email(email).
		Password(password).
		DisplayName(name)

	record, err := s.client.CreateUser(ctx, params)
	if err != nil {
		return "", errors.Wrap(err, "failed to create identity account")
	}

	if err := s.client.SetCustomUserClaims(ctx, record.UID, map[string]any{roleClaim: role}); err != nil {
		return "", errors.Wrap(err, "failed to set role claim")
	}

	return record.UID, nil
}

func (s *firebaseIdentity) UpdatePassword(ctx context.Context, uid, password string) error {
	params := (&auth.UserToUpdate{}).Password(password)
	if _, err := s.client.UpdateUser(ctx, uid, params); err != nil {
		return errors.Wrap(err, "failed to update identity password")
	}

	return nil
}

func (s *firebaseIdentity) GetUserByEmail(ctx context.Context, email string) (*service.IdentityUser, error) {
	record, err := s.client.GetUserByEmail(ctx, email)
	if err != nil {
		if auth.IsUserNotFound(err) {
			return nil, nil
		}

		return nil, errors.Wrap(err, "failed to look up identity account")
	}

	return toIdentityUser(record), nil
}

func (s *firebaseIdentity) ListUsersByRole(ctx context.Context, role string) ([]*service.IdentityUser, error) {
	var users []*service.IdentityUser

	iter := s.client.Users(ctx, "")
	for {
		record, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "failed to iterate identity accounts")
		}

		user := toIdentityUser(record.UserRecord)
		if user.Role == role {
			users = append(users, user)
		}
	}

	return users, nil
}

func (s *firebaseIdentity) SetDisabled(ctx context.Context, uid string, disabled bool) error {
	params := (&auth.UserToUpdate{}).Disabled(disabled)
	if _, err := s.client.UpdateUser(ctx, uid, params); err != nil {
		return errors.Wrap(err, "failed to update identity account state")
	}

	return nil
}

func (s *firebaseIdentity) DeleteUser(ctx context.Context, uid string) error {
	if err := s.client.DeleteUser(ctx, uid); err != nil {
		return errors.Wrap(err, "failed to delete identity account")
	}

	return nil
}

func (s *firebaseIdentity) VerifyIDToken(ctx context.Context, idToken string) (*service.IdentityUser, error) {
	token, err := s.client.VerifyIDToken(ctx, idToken)
	if err != nil {
		return nil, errors.Wrap(err, "failed to verify id token")
	}

	role, _ := token.Claims[roleClaim].(string)
	email, _ := token.Claims["email"].(string)

	return &service.IdentityUser{
		UID:   token.UID,
		Email: email,
		Role:  role,
	}, nil
}

func toIdentityUser(record *auth.UserRecord) *service.IdentityUser {
	role, _ := record.CustomClaims[roleClaim].(string)

	return &service.IdentityUser{
		UID:      record.UID,
		Email:    record.Email,
		Name:     record.DisplayName,
		Disabled: record.Disabled,
		Role:     role,
	}
}
