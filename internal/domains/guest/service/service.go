// Package service resolves the lightweight guest identity that bookings are linked to.
// Guests are users with the guest role that can never log in.
package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"resort/infras/otel"
	roleModel "resort/internal/domains/role/model"
	roleRepo "resort/internal/domains/role/repository"
	userModel "resort/internal/domains/user/model"
	userRepo "resort/internal/domains/user/repository"
	"resort/shared"
	"resort/shared/constant"
	"resort/shared/failure"
	gModel "resort/shared/model"
	"resort/shared/password"
	"resort/shared/timezone"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

type Resolver interface {
	Resolve(ctx context.Context, email, mobile, name string) (userID string, err error)
}

type resolverImpl struct {
	userRepo userRepo.User
	roleRepo roleRepo.Role
	otel     otel.Otel
}

func New(userRepo userRepo.User, roleRepo roleRepo.Role, otel otel.Otel) Resolver {
	return &resolverImpl{
		userRepo: userRepo,
		roleRepo: roleRepo,
		otel:     otel,
	}
}

func (s *resolverImpl) Resolve(ctx context.Context, email, mobile, name string) (userID string, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".guest.Resolve")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	email = strings.TrimSpace(email)
	mobile = strings.TrimSpace(mobile)
	name = strings.TrimSpace(name)

	if email == constant.Empty && mobile == constant.Empty {
		return constant.Empty, failure.BadRequestFromString("guest email or mobile is required")
	}

	user, err := s.find(ctx, email, mobile)
	if err != nil {
		return constant.Empty, err
	}

	if user.ID != constant.Empty {
		if name != constant.Empty && (user.FullName == nil || *user.FullName != name) {
			fields := map[string]any{
				userModel.FieldFullName:  name,
				constant.FieldModifiedAt: timezone.Now(),
				constant.FieldModifiedBy: user.ID,
			}

			if err = s.userRepo.Update(ctx, fields, shared.FilterByID(user.ID, userModel.FieldID, userModel.TableName)); err != nil {
				log.Error().Err(err).Str("user_id", user.ID).Msg("failed to refresh guest name")

				return constant.Empty, fmt.Errorf("failed to refresh guest name: %w", err)
			}
		}

		return user.ID, nil
	}

	roleID, err := s.ensureGuestRole(ctx)
	if err != nil {
		return constant.Empty, err
	}

	hashed, err := password.Hash(uuid.NewString())
	if err != nil {
		return constant.Empty, fmt.Errorf("failed to hash placeholder credential: %w", err)
	}

	guest := userModel.User{
		ID:       uuid.NewString(),
		Email:    email,
		Password: hashed,
		RoleID:   &roleID,
		Level:    constant.RoleGuest,
		Active:   false,
		Metadata: gModel.NewMetadata(constant.RoleGuest, timezone.Now()),
	}

	if guest.Email == constant.Empty {
		guest.Email = PlaceholderEmail(mobile)
	}

	if mobile != constant.Empty {
		guest.Phone = &mobile
	}

	if name != constant.Empty {
		guest.FullName = &name
	}

	if err = s.userRepo.Insert(ctx, guest); err != nil {
		log.Error().Err(err).Msg("failed to create guest user")

		return constant.Empty, fmt.Errorf("failed to create guest user: %w", err)
	}

	log.Info().Str("user_id", guest.ID).Msg("guest user created")

	return guest.ID, nil
}

// PlaceholderEmail is the address stored for a guest who only left a phone number.
func PlaceholderEmail(mobile string) string {
	if mobile == constant.Empty {
		return fmt.Sprintf("guest_%d@temp.com", timezone.Now().UnixNano())
	}

	return fmt.Sprintf("guest_%s@temp.com", mobile)
}

func (s *resolverImpl) find(ctx context.Context, email, mobile string) (userModel.User, error) {
	if email != constant.Empty {
		user, err := s.userRepo.Get(ctx, userRepo.FilterByEmail(email))
		if err != nil {
			return user, fmt.Errorf("failed to find guest by email: %w", err)
		}

		if user.ID != constant.Empty {
			return user, nil
		}
	}

	if mobile != constant.Empty {
		user, err := s.userRepo.Get(ctx, userRepo.FilterByPhone(mobile))
		if err != nil {
			return user, fmt.Errorf("failed to find guest by phone: %w", err)
		}

		return user, nil
	}

	return userModel.User{}, nil
}

func (s *resolverImpl) ensureGuestRole(ctx context.Context) (string, error) {
	role, err := s.roleRepo.Get(ctx, roleRepo.FilterByName(constant.RoleGuest))
	if err != nil {
		return constant.Empty, fmt.Errorf("failed to get guest role: %w", err)
	}

	if role.ID != constant.Empty {
		return role.ID, nil
	}

	role = roleModel.Role{
		ID:          uuid.NewString(),
		Name:        constant.RoleGuest,
		Permissions: pq.StringArray{},
		Metadata:    gModel.NewMetadata(constant.RoleGuest, timezone.Now()),
	}

	if err = s.roleRepo.Insert(ctx, role); err != nil {
		return constant.Empty, fmt.Errorf("failed to create guest role: %w", err)
	}

	return role.ID, nil
}
