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

// RegisterInput carries the fields of a dashboard sign-up.
type RegisterInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
	Phone     *string
}

// AccountUpdate lists the profile fields that may change; nil means "leave as is".
type AccountUpdate struct {
	FirstName *string
	LastName  *string
	Email     *string
	Phone     *string
	Password  *string
}

// AuthResult is a signed token with the account it was issued for.
type AuthResult struct {
	Token string
	Admin *model.Admin
}

// AuthService handles dashboard (admin) authentication operations.
type AuthService interface {
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	Register(ctx context.Context, in RegisterInput) (*model.Admin, error)
	Me(ctx context.Context, id uuid.UUID) (*model.Admin, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, in AccountUpdate) (*AuthResult, error)
}

type authService struct {
	admins repository.AdminRepository
	tokens auth.TokenIssuer
	log    zerolog.Logger
}

// NewAuthService creates a new authentication service.
func NewAuthService(admins repository.AdminRepository, tokens auth.TokenIssuer, log zerolog.Logger) AuthService {
	return &authService{
		admins: admins,
		tokens: tokens,
		log:    log.With().Str("service", "auth").Logger(),
	}
}

func adminIdentity(a *model.Admin) auth.Identity {
	return auth.Identity{
		ID:        a.ID.String(),
		Email:     a.Email,
		FirstName: a.FirstName,
		LastName:  a.LastName,
		Avatar:    a.Avatar,
		Role:      a.Role,
	}
}

// Login authenticates an admin by email and password.
func (s *authService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return nil, apperrors.Invalid("missing required params")
	}

	admin, err := s.admins.FindByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		return nil, lookupError(s.log, "find admin", err, apperrors.ErrAdminNotFound)
	}
	if !auth.CheckPassword(admin.PasswordHash, password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(adminIdentity(admin))
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, Admin: admin}, nil
}

// Register creates a new admin with a hashed password.
// A taken email is rejected before anything is written.
func (s *authService) Register(ctx context.Context, in RegisterInput) (*model.Admin, error) {
	in.Email = strings.TrimSpace(in.Email)
	if in.FirstName == "" || in.LastName == "" || in.Email == "" || in.Password == "" {
		return nil, apperrors.Invalid("first name, last name, email and password are required")
	}

	if err := ensureAdminUnique(ctx, s.admins, s.log, uuid.Nil, &in.Email, in.Phone); err != nil {
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
		Role:         model.RoleAdmin,
	}
	if err := s.admins.Create(ctx, admin); err != nil {
		if isDuplicate(err) {
			return nil, apperrors.ErrAccountExists
		}
		return nil, storeError(s.log, "create admin", err)
	}

	s.log.Info().Str("admin_id", admin.ID.String()).Msg("admin registered")
	return admin, nil
}

// Me returns the admin named by a verified token.
func (s *authService) Me(ctx context.Context, id uuid.UUID) (*model.Admin, error) {
	admin, err := s.admins.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(s.log, "find admin", err, apperrors.ErrAdminNotFound)
	}
	return admin, nil
}

// UpdateProfile applies the supplied fields to the caller's account and re-issues its token.
func (s *authService) UpdateProfile(ctx context.Context, id uuid.UUID, in AccountUpdate) (*AuthResult, error) {
	admin, err := s.admins.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(s.log, "find admin", err, apperrors.ErrAdminNotFound)
	}

	if err := applyAdminUpdate(ctx, s.admins, s.log, admin, in); err != nil {
		return nil, err
	}

	token, err := s.tokens.Issue(adminIdentity(admin))
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, Admin: admin}, nil
}

// ensureAdminUnique rejects an email or phone held by an admin other than self.
func ensureAdminUnique(ctx context.Context, repo repository.AdminRepository, log zerolog.Logger, self uuid.UUID, email, phone *string) error {
	if email != nil && *email != "" {
		existing, err := repo.FindByEmail(ctx, *email)
		switch {
		case err == nil && existing.ID != self:
			return apperrors.ErrEmailTaken
		case err != nil && !isNotFound(err):
			return storeError(log, "check admin email", err)
		}
	}
	if p := optionalPhone(phone); p != nil {
		existing, err := repo.FindByPhone(ctx, *p)
		switch {
		case err == nil && existing.ID != self:
			return apperrors.ErrPhoneTaken
		case err != nil && !isNotFound(err):
			return storeError(log, "check admin phone", err)
		}
	}
	return nil
}

// applyAdminUpdate changes only the supplied fields and saves the admin.
// Blank strings count as not supplied.
// A password equal to the stored one keeps the existing hash.
func applyAdminUpdate(ctx context.Context, repo repository.AdminRepository, log zerolog.Logger, admin *model.Admin, in AccountUpdate) error {
	if in.Email != nil {
		trimmed := strings.TrimSpace(*in.Email)
		in.Email = &trimmed
	}
	var email, phone *string
	if in.Email != nil && *in.Email != admin.Email {
		email = in.Email
	}
	if p := optionalPhone(in.Phone); p != nil && (admin.Phone == nil || *admin.Phone != *p) {
		phone = p
	}
	if err := ensureAdminUnique(ctx, repo, log, admin.ID, email, phone); err != nil {
		return err
	}

	setText(&admin.FirstName, in.FirstName)
	setText(&admin.LastName, in.LastName)
	setText(&admin.Email, in.Email)
	if p := optionalPhone(in.Phone); p != nil {
		admin.Phone = p
	}
	if in.Password != nil && *in.Password != "" {
		hash, changed, err := auth.ResolvePasswordHash(admin.PasswordHash, *in.Password)
		if err != nil {
			return err
		}
		if changed {
			admin.PasswordHash = hash
		}
	}

	if err := repo.Update(ctx, admin); err != nil {
		if isDuplicate(err) {
			return apperrors.ErrAccountExists
		}
		return storeError(log, "update admin", err)
	}
	return nil
}
