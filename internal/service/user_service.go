package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"mapadmin/internal/auth"
	apperrors "mapadmin/internal/errors"
	"mapadmin/internal/model"
	"mapadmin/internal/repository"
)

// CreateUserInput carries the fields of a new end user.
type CreateUserInput struct {
	FirstName             string
	LastName              string
	Email                 string
	Phone                 *string
	Password              string
	ConfirmPassword       string
	Avatar                string
	Location              string
	Status                string
	Type                  string
	SendInvite            bool
	RequirePasswordChange bool
}

// UpdateUserInput lists the user fields that may change; nil means "leave as is".
type UpdateUserInput struct {
	AccountUpdate
	Location              *string
	Status                *string
	Type                  *string
	SendInvite            *bool
	RequirePasswordChange *bool
	SubscriptionPlanName  *string
}

// UserLoginResult is a user token with the user it was issued for.
type UserLoginResult struct {
	Token string
	User  *model.User
}

// UserService manages end-user accounts and their subscriptions.
type UserService interface {
	List(ctx context.Context) ([]model.User, error)
	Get(ctx context.Context, id uuid.UUID) (*model.User, error)
	Create(ctx context.Context, in CreateUserInput) (*model.User, error)
	Update(ctx context.Context, id uuid.UUID, in UpdateUserInput) (*model.User, error)
	Delete(ctx context.Context, id uuid.UUID) error
	SetAvatar(ctx context.Context, id uuid.UUID, avatar string) error
	Login(ctx context.Context, email, password string) (*UserLoginResult, error)
}

type userService struct {
	users  repository.UserRepository
	plans  repository.PlanRepository
	tokens auth.TokenIssuer
	log    zerolog.Logger
	now    func() time.Time
}

// NewUserService creates a new user service.
func NewUserService(users repository.UserRepository, plans repository.PlanRepository, tokens auth.TokenIssuer, log zerolog.Logger) UserService {
	return &userService{
		users:  users,
		plans:  plans,
		tokens: tokens,
		log:    log.With().Str("service", "user").Logger(),
		now:    time.Now,
	}
}

func (s *userService) List(ctx context.Context) ([]model.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, storeError(s.log, "list users", err)
	}
	return users, nil
}

func (s *userService) Get(ctx context.Context, id uuid.UUID) (*model.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(s.log, "find user", err, apperrors.ErrUserNotFound)
	}
	return user, nil
}

// Create stores a user subscribed to the default plan.
// The plan is resolved first so a missing plan never leaves a user behind.
func (s *userService) Create(ctx context.Context, in CreateUserInput) (*model.User, error) {
	in.Email = strings.TrimSpace(in.Email)
	if in.Email == "" || in.Password == "" {
		return nil, apperrors.Invalid("email and password are required")
	}
	if in.Password != in.ConfirmPassword {
		return nil, apperrors.ErrPasswordMismatch
	}
	if err := s.ensureUnique(ctx, uuid.Nil, &in.Email, in.Phone); err != nil {
		return nil, err
	}

	plan, err := s.plans.FindByName(ctx, model.DefaultPlanName)
	if err != nil {
		if isNotFound(err) {
			s.log.Warn().Str("plan", model.DefaultPlanName).Msg("default plan missing")
			return nil, apperrors.ErrDefaultPlanMissing
		}
		return nil, storeError(s.log, "find default plan", err)
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		FirstName:             in.FirstName,
		LastName:              in.LastName,
		Email:                 in.Email,
		Phone:                 optionalPhone(in.Phone),
		PasswordHash:          hash,
		Avatar:                in.Avatar,
		Location:              in.Location,
		Status:                in.Status,
		Type:                  in.Type,
		Role:                  model.RoleUser,
		SendInvite:            in.SendInvite,
		RequirePasswordChange: in.RequirePasswordChange,
	}
	if err := s.users.CreateWithPlan(ctx, user, plan.ID, s.now()); err != nil {
		if isDuplicate(err) {
			return nil, apperrors.ErrAccountExists
		}
		return nil, storeError(s.log, "create user", err)
	}

	s.log.Info().Str("user_id", user.ID.String()).Str("plan", plan.Name).Msg("user created")
	return s.Get(ctx, user.ID)
}

func (s *userService) Update(ctx context.Context, id uuid.UUID, in UpdateUserInput) (*model.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(s.log, "find user", err, apperrors.ErrUserNotFound)
	}

	if in.Email != nil {
		trimmed := strings.TrimSpace(*in.Email)
		in.Email = &trimmed
	}
	var email, phone *string
	if in.Email != nil && *in.Email != user.Email {
		email = in.Email
	}
	if p := optionalPhone(in.Phone); p != nil && (user.Phone == nil || *user.Phone != *p) {
		phone = p
	}
	if err := s.ensureUnique(ctx, user.ID, email, phone); err != nil {
		return nil, err
	}

	var plan *model.Plan
	if in.SubscriptionPlanName != nil && *in.SubscriptionPlanName != "" {
		plan, err = s.plans.FindByName(ctx, *in.SubscriptionPlanName)
		if err != nil {
			if isNotFound(err) {
				return nil, apperrors.Invalid("failed to find the subscription plan: %s", *in.SubscriptionPlanName)
			}
			return nil, storeError(s.log, "find plan", err)
		}
	}

	setText(&user.FirstName, in.FirstName)
	setText(&user.LastName, in.LastName)
	setText(&user.Email, in.Email)
	if p := optionalPhone(in.Phone); p != nil {
		user.Phone = p
	}
	setText(&user.Location, in.Location)
	setText(&user.Status, in.Status)
	setText(&user.Type, in.Type)
	setBool(&user.SendInvite, in.SendInvite)
	setBool(&user.RequirePasswordChange, in.RequirePasswordChange)
	if in.Password != nil && *in.Password != "" {
		hash, changed, err := auth.ResolvePasswordHash(user.PasswordHash, *in.Password)
		if err != nil {
			return nil, err
		}
		if changed {
			user.PasswordHash = hash
		}
	}

	if err := s.users.Update(ctx, user); err != nil {
		if isDuplicate(err) {
			return nil, apperrors.ErrAccountExists
		}
		return nil, storeError(s.log, "update user", err)
	}
	if plan != nil {
		if err := s.users.AssignPlan(ctx, user.ID, plan.ID, s.now()); err != nil {
			return nil, storeError(s.log, "assign plan", err)
		}
	}

	return s.Get(ctx, user.ID)
}

func (s *userService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.users.Delete(ctx, id); err != nil {
		return lookupError(s.log, "delete user", err, apperrors.ErrUserNotFound)
	}
	return nil
}

func (s *userService) SetAvatar(ctx context.Context, id uuid.UUID, avatar string) error {
	if err := s.users.UpdateAvatar(ctx, id, avatar); err != nil {
		return lookupError(s.log, "update user avatar", err, apperrors.ErrUserNotFound)
	}
	return nil
}

// Login authenticates an end user. Unknown email and wrong password fail alike.
func (s *userService) Login(ctx context.Context, email, password string) (*UserLoginResult, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, apperrors.Invalid("email and password are required")
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, lookupError(s.log, "find user", err, apperrors.ErrInvalidCredentials)
	}
	if !auth.CheckPassword(user.PasswordHash, password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(auth.Identity{
		ID:        user.ID.String(),
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Avatar:    user.Avatar,
		Role:      model.RoleUser,
	})
	if err != nil {
		return nil, err
	}
	return &UserLoginResult{Token: token, User: user}, nil
}

func (s *userService) ensureUnique(ctx context.Context, self uuid.UUID, email, phone *string) error {
	if email != nil && *email != "" {
		existing, err := s.users.FindByEmail(ctx, *email)
		switch {
		case err == nil && existing.ID != self:
			return apperrors.ErrEmailTaken
		case err != nil && !isNotFound(err):
			return storeError(s.log, "check user email", err)
		}
	}
	if p := optionalPhone(phone); p != nil {
		existing, err := s.users.FindByPhone(ctx, *p)
		switch {
		case err == nil && existing.ID != self:
			return apperrors.ErrPhoneTaken
		case err != nil && !isNotFound(err):
			return storeError(s.log, "check user phone", err)
		}
	}
	return nil
}
