package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"mapadmin/internal/auth"
	apperrors "mapadmin/internal/errors"
	"mapadmin/internal/model"
	"mapadmin/internal/repository"
)

// CreateAdminInput carries the fields of a new admin.
type CreateAdminInput struct {
	FirstName       string
	LastName        string
	Email           string
	Phone           *string
	Password        string
	ConfirmPassword string
	Avatar          string
}

// UpdateAdminInput is AccountUpdate plus the password confirmation.
type UpdateAdminInput struct {
	AccountUpdate
	ConfirmPassword *string
}

// AdminService manages dashboard operator accounts.
type AdminService interface {
	List(ctx context.Context) ([]model.Admin, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Admin, error)
	Create(ctx context.Context, in CreateAdminInput) (*model.Admin, error)
	Update(ctx context.Context, id uuid.UUID, in UpdateAdminInput) (*model.Admin, error)
	Delete(ctx context.Context, id uuid.UUID) error
	SetAvatar(ctx context.Context, id uuid.UUID, avatar string) error
}

type adminService struct {
	repo repository.AdminRepository
	log  zerolog.Logger
}

// NewAdminService builds an AdminService.
func NewAdminService(repo repository.AdminRepository, log zerolog.Logger) AdminService {
	return &adminService{repo: repo, log: log.With().Str("service", "admin").Logger()}
}

func (s *adminService) List(ctx context.Context) ([]model.Admin, error) {
	admins, err := s.repo.List(ctx)
	if err != nil {
		return nil, storeError(s.log, "list admins", err)
	}
	return admins, nil
}

func (s *adminService) Get(ctx context.Context, id uuid.UUID) (*model.Admin, error) {
	admin, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(s.log, "find admin", err, apperrors.ErrAdminNotFound)
	}
	return admin, nil
}

func (s *adminService) Create(ctx context.Context, in CreateAdminInput) (*model.Admin, error) {
	in.Email = strings.TrimSpace(in.Email)
	if in.FirstName == "" || in.LastName == "" || in.Email == "" || in.Password == "" {
		return nil, apperrors.Invalid("first name, last name, email and password are required")
	}
	if in.Password != in.ConfirmPassword {
		return nil, apperrors.ErrPasswordMismatch
	}
	if err := ensureAdminUnique(ctx, s.repo, s.log, uuid.Nil, &in.Email, in.Phone); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	admin := &model.Admin{
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Email:        in.Email,
		Phone:        optionalPhone(in.Phone),
		PasswordHash: hash,
		Avatar:       in.Avatar,
		Role:         model.RoleAdmin,
	}
	if err := s.repo.Create(ctx, admin); err != nil {
		if isDuplicate(err) {
			return nil, apperrors.ErrAccountExists
		}
		return nil, storeError(s.log, "create admin", err)
	}
	return admin, nil
}

func (s *adminService) Update(ctx context.Context, id uuid.UUID, in UpdateAdminInput) (*model.Admin, error) {
	if in.Password != nil && *in.Password != "" {
		if in.ConfirmPassword == nil || *in.ConfirmPassword != *in.Password {
			return nil, apperrors.ErrPasswordMismatch
		}
	}

	admin, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(s.log, "find admin", err, apperrors.ErrAdminNotFound)
	}
	if err := applyAdminUpdate(ctx, s.repo, s.log, admin, in.AccountUpdate); err != nil {
		return nil, err
	}
	return admin, nil
}

func (s *adminService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return lookupError(s.log, "delete admin", err, apperrors.ErrAdminNotFound)
	}
	return nil
}

func (s *adminService) SetAvatar(ctx context.Context, id uuid.UUID, avatar string) error {
	if err := s.repo.UpdateAvatar(ctx, id, avatar); err != nil {
		return lookupError(s.log, "update admin avatar", err, apperrors.ErrAdminNotFound)
	}
	return nil
}
