package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"mapadmin/internal/auth"
	apperrors "mapadmin/internal/errors"
	"mapadmin/internal/model"
)

func strPtr(s string) *string { return &s }

func hashFor(t *testing.T, password string) string {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), auth.BcryptCost)
	require.NoError(t, err)
	return string(hashed)
}

func storedAdmin(t *testing.T) *model.Admin {
	return &model.Admin{
		ID:           uuid.New(),
		FirstName:    "Ada",
		LastName:     "Lovelace",
		Email:        "ada@example.com",
		Phone:        strPtr("+20100000000"),
		PasswordHash: hashFor(t, "password123"),
		Avatar:       "/uploads/avatars/ada.png",
		Role:         model.RoleAdmin,
	}
}

func TestAuthService_Register(t *testing.T) {
	tests := []struct {
		name          string
		input         RegisterInput
		setupMock     func(*MockAdminRepository)
		expectedError error
	}{
		{
			name: "successful registration",
			input: RegisterInput{
				FirstName: "Test", LastName: "User", Email: "test@example.com", Password: "password123",
			},
			setupMock: func(m *MockAdminRepository) {
				m.On("FindByEmail", mock.Anything, "test@example.com").Return(nil, gorm.ErrRecordNotFound)
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.Admin")).Return(nil)
			},
		},
		{
			name: "email already registered",
			input: RegisterInput{
				FirstName: "Test", LastName: "User", Email: "existing@example.com", Password: "password123",
			},
			setupMock: func(m *MockAdminRepository) {
				m.On("FindByEmail", mock.Anything, "existing@example.com").
					Return(&model.Admin{ID: uuid.New(), Email: "existing@example.com"}, nil)
			},
			expectedError: apperrors.ErrEmailTaken,
		},
		{
			name: "phone already registered",
			input: RegisterInput{
				FirstName: "Test", LastName: "User", Email: "new@example.com", Password: "password123",
				Phone: strPtr("+1555"),
			},
			setupMock: func(m *MockAdminRepository) {
				m.On("FindByEmail", mock.Anything, "new@example.com").Return(nil, gorm.ErrRecordNotFound)
				m.On("FindByPhone", mock.Anything, "+1555").Return(&model.Admin{ID: uuid.New()}, nil)
			},
			expectedError: apperrors.ErrPhoneTaken,
		},
		{
			name: "race on unique index",
			input: RegisterInput{
				FirstName: "Test", LastName: "User", Email: "race@example.com", Password: "password123",
				Phone: strPtr("+1777"),
			},
			setupMock: func(m *MockAdminRepository) {
				m.On("FindByEmail", mock.Anything, "race@example.com").Return(nil, gorm.ErrRecordNotFound)
				m.On("FindByPhone", mock.Anything, "+1777").Return(nil, gorm.ErrRecordNotFound)
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.Admin")).Return(gorm.ErrDuplicatedKey)
			},
			expectedError: apperrors.ErrAccountExists,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockAdminRepository)
			tt.setupMock(mockRepo)

			service := NewAuthService(mockRepo, auth.NewJWTService("test-secret", 0), zerolog.Nop())
			admin, err := service.Register(context.Background(), tt.input)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, admin)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.input.Email, admin.Email)
				assert.Equal(t, model.RoleAdmin, admin.Role)
				assert.True(t, auth.CheckPassword(admin.PasswordHash, tt.input.Password))
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestAuthService_Register_DuplicateEmailDoesNotCreate(t *testing.T) {
	mockRepo := new(MockAdminRepository)
	mockRepo.On("FindByEmail", mock.Anything, "ada@example.com").Return(storedAdmin(t), nil)

	service := NewAuthService(mockRepo, auth.NewJWTService("test-secret", 0), zerolog.Nop())
	_, err := service.Register(context.Background(), RegisterInput{
		FirstName: "Other", LastName: "Person", Email: "ada@example.com", Password: "secret",
	})

	assert.ErrorIs(t, err, apperrors.ErrEmailTaken)
	mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	mockRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestAuthService_Register_MissingFields(t *testing.T) {
	service := NewAuthService(new(MockAdminRepository), auth.NewJWTService("test-secret", 0), zerolog.Nop())

	_, err := service.Register(context.Background(), RegisterInput{Email: "a@b.c", Password: "x"})

	var validationErr *apperrors.ValidationError
	assert.ErrorAs(t, err, &validationErr)
}

func TestAuthService_Login(t *testing.T) {
	admin := storedAdmin(t)

	tests := []struct {
		name          string
		email         string
		password      string
		setupMock     func(*MockAdminRepository)
		expectedError error
	}{
		{
			name:     "successful login",
			email:    admin.Email,
			password: "password123",
			setupMock: func(m *MockAdminRepository) {
				m.On("FindByEmail", mock.Anything, admin.Email).Return(admin, nil)
			},
		},
		{
			name:     "wrong password",
			email:    admin.Email,
			password: "password124",
			setupMock: func(m *MockAdminRepository) {
				m.On("FindByEmail", mock.Anything, admin.Email).Return(admin, nil)
			},
			expectedError: apperrors.ErrInvalidCredentials,
		},
		{
			name:     "unknown email",
			email:    "notfound@example.com",
			password: "password123",
			setupMock: func(m *MockAdminRepository) {
				m.On("FindByEmail", mock.Anything, "notfound@example.com").Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: apperrors.ErrAdminNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockAdminRepository)
			tt.setupMock(mockRepo)

			jwtService := auth.NewJWTService("test-secret", 0)
			service := NewAuthService(mockRepo, jwtService, zerolog.Nop())

			result, err := service.Login(context.Background(), tt.email, tt.password)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, result)
			} else {
				require.NoError(t, err)
				claims, err := jwtService.Verify(result.Token)
				require.NoError(t, err)
				assert.Equal(t, admin.ID.String(), claims.AccountID)
				assert.Equal(t, admin.Email, claims.Email)
				assert.Equal(t, admin.FirstName, claims.FirstName)
				assert.Equal(t, admin.LastName, claims.LastName)
				assert.Equal(t, admin.Avatar, claims.Avatar)
				assert.Equal(t, model.RoleAdmin, claims.Role)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestAuthService_UpdateProfile_SubsetLeavesOtherFields(t *testing.T) {
	admin := storedAdmin(t)
	original := *admin

	mockRepo := new(MockAdminRepository)
	mockRepo.On("FindByID", mock.Anything, admin.ID).Return(admin, nil)
	mockRepo.On("Update", mock.Anything, admin).Return(nil)

	jwtService := auth.NewJWTService("test-secret", 0)
	service := NewAuthService(mockRepo, jwtService, zerolog.Nop())

	result, err := service.UpdateProfile(context.Background(), admin.ID, AccountUpdate{FirstName: strPtr("Augusta")})
	require.NoError(t, err)

	assert.Equal(t, "Augusta", result.Admin.FirstName)
	assert.Equal(t, original.LastName, result.Admin.LastName)
	assert.Equal(t, original.Email, result.Admin.Email)
	assert.Equal(t, original.Phone, result.Admin.Phone)
	assert.Equal(t, original.PasswordHash, result.Admin.PasswordHash)
	assert.Equal(t, original.Avatar, result.Admin.Avatar)

	claims, err := jwtService.Verify(result.Token)
	require.NoError(t, err)
	assert.Equal(t, "Augusta", claims.FirstName)
	mockRepo.AssertExpectations(t)
}

func TestAuthService_UpdateProfile_BlankFieldsAreIgnored(t *testing.T) {
	tests := []struct {
		name  string
		input AccountUpdate
	}{
		{"empty first name", AccountUpdate{FirstName: strPtr("")}},
		{"blank last name", AccountUpdate{LastName: strPtr("   ")}},
		{"empty email", AccountUpdate{Email: strPtr("")}},
		{"empty phone", AccountUpdate{Phone: strPtr("")}},
		{"empty password", AccountUpdate{Password: strPtr("")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			admin := storedAdmin(t)
			original := *admin

			mockRepo := new(MockAdminRepository)
			mockRepo.On("FindByID", mock.Anything, admin.ID).Return(admin, nil)
			mockRepo.On("Update", mock.Anything, admin).Return(nil)

			service := NewAuthService(mockRepo, auth.NewJWTService("test-secret", 0), zerolog.Nop())
			result, err := service.UpdateProfile(context.Background(), admin.ID, tt.input)
			require.NoError(t, err)

			assert.Equal(t, original, *result.Admin)
			mockRepo.AssertNotCalled(t, "FindByEmail", mock.Anything, mock.Anything)
			mockRepo.AssertNotCalled(t, "FindByPhone", mock.Anything, mock.Anything)
		})
	}
}

func TestAuthService_UpdateProfile_Password(t *testing.T) {
	tests := []struct {
		name         string
		password     string
		wantSameHash bool
	}{
		{"same password keeps hash", "password123", true},
		{"new password rehashes", "new-password", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			admin := storedAdmin(t)
			before := admin.PasswordHash

			mockRepo := new(MockAdminRepository)
			mockRepo.On("FindByID", mock.Anything, admin.ID).Return(admin, nil)
			mockRepo.On("Update", mock.Anything, admin).Return(nil)

			service := NewAuthService(mockRepo, auth.NewJWTService("test-secret", 0), zerolog.Nop())
			result, err := service.UpdateProfile(context.Background(), admin.ID, AccountUpdate{Password: strPtr(tt.password)})
			require.NoError(t, err)

			if tt.wantSameHash {
				assert.Equal(t, before, result.Admin.PasswordHash)
			} else {
				assert.NotEqual(t, before, result.Admin.PasswordHash)
				assert.True(t, auth.CheckPassword(result.Admin.PasswordHash, tt.password))
			}
		})
	}
}

func TestAuthService_UpdateProfile_EmailTakenByAnother(t *testing.T) {
	admin := storedAdmin(t)

	mockRepo := new(MockAdminRepository)
	mockRepo.On("FindByID", mock.Anything, admin.ID).Return(admin, nil)
	mockRepo.On("FindByEmail", mock.Anything, "taken@example.com").Return(&model.Admin{ID: uuid.New()}, nil)

	service := NewAuthService(mockRepo, auth.NewJWTService("test-secret", 0), zerolog.Nop())
	_, err := service.UpdateProfile(context.Background(), admin.ID, AccountUpdate{Email: strPtr("taken@example.com")})

	assert.ErrorIs(t, err, apperrors.ErrEmailTaken)
	mockRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestAuthService_Me_NotFound(t *testing.T) {
	id := uuid.New()
	mockRepo := new(MockAdminRepository)
	mockRepo.On("FindByID", mock.Anything, id).Return(nil, gorm.ErrRecordNotFound)

	service := NewAuthService(mockRepo, auth.NewJWTService("test-secret", 0), zerolog.Nop())
	_, err := service.Me(context.Background(), id)

	assert.ErrorIs(t, err, apperrors.ErrAdminNotFound)
}

func TestAdminService_DeleteThenGet(t *testing.T) {
	id := uuid.New()
	mockRepo := new(MockAdminRepository)
	mockRepo.On("Delete", mock.Anything, id).Return(nil).Once()
	mockRepo.On("FindByID", mock.Anything, id).Return(nil, gorm.ErrRecordNotFound)

	service := NewAdminService(mockRepo, zerolog.Nop())
	require.NoError(t, service.Delete(context.Background(), id))

	_, err := service.Get(context.Background(), id)
	assert.ErrorIs(t, err, apperrors.ErrAdminNotFound)
	mockRepo.AssertExpectations(t)
}

func TestAdminService_Create_PasswordMismatch(t *testing.T) {
	mockRepo := new(MockAdminRepository)
	service := NewAdminService(mockRepo, zerolog.Nop())

	_, err := service.Create(context.Background(), CreateAdminInput{
		FirstName: "A", LastName: "B", Email: "a@b.c", Password: "one", ConfirmPassword: "two",
	})

	assert.ErrorIs(t, err, apperrors.ErrPasswordMismatch)
	mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAdminService_Update_RequiresConfirmation(t *testing.T) {
	mockRepo := new(MockAdminRepository)
	service := NewAdminService(mockRepo, zerolog.Nop())

	_, err := service.Update(context.Background(), uuid.New(), UpdateAdminInput{
		AccountUpdate: AccountUpdate{Password: strPtr("new-password")},
	})

	assert.ErrorIs(t, err, apperrors.ErrPasswordMismatch)
	mockRepo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
}
