package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"mapadmin/internal/external"
	"mapadmin/internal/model"
)

// MockAdminRepository is a mock implementation of AdminRepository.
type MockAdminRepository struct {
	mock.Mock
}

func (m *MockAdminRepository) Create(ctx context.Context, admin *model.Admin) error {
	args := m.Called(ctx, admin)
	return args.Error(0)
}

func (m *MockAdminRepository) Update(ctx context.Context, admin *model.Admin) error {
	args := m.Called(ctx, admin)
	return args.Error(0)
}

func (m *MockAdminRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Admin, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Admin), args.Error(1)
}

func (m *MockAdminRepository) FindByEmail(ctx context.Context, email string) (*model.Admin, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Admin), args.Error(1)
}

func (m *MockAdminRepository) FindByPhone(ctx context.Context, phone string) (*model.Admin, error) {
	args := m.Called(ctx, phone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Admin), args.Error(1)
}

func (m *MockAdminRepository) List(ctx context.Context) ([]model.Admin, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Admin), args.Error(1)
}

func (m *MockAdminRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockAdminRepository) UpdateAvatar(ctx context.Context, id uuid.UUID, avatar string) error {
	args := m.Called(ctx, id, avatar)
	return args.Error(0)
}

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) CreateWithPlan(ctx context.Context, user *model.User, planID uuid.UUID, start time.Time) error {
	args := m.Called(ctx, user, planID, start)
	return args.Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByPhone(ctx context.Context, phone string) (*model.User, error) {
	args := m.Called(ctx, phone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) List(ctx context.Context) ([]model.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.User), args.Error(1)
}

func (m *MockUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateAvatar(ctx context.Context, id uuid.UUID, avatar string) error {
	args := m.Called(ctx, id, avatar)
	return args.Error(0)
}

func (m *MockUserRepository) AssignPlan(ctx context.Context, userID, planID uuid.UUID, start time.Time) error {
	args := m.Called(ctx, userID, planID, start)
	return args.Error(0)
}

// MockPlanRepository is a mock implementation of PlanRepository.
type MockPlanRepository struct {
	mock.Mock
}

func (m *MockPlanRepository) Create(ctx context.Context, plan *model.Plan) error {
	args := m.Called(ctx, plan)
	return args.Error(0)
}

func (m *MockPlanRepository) Update(ctx context.Context, plan *model.Plan, features []model.PlanFeature) error {
	args := m.Called(ctx, plan, features)
	return args.Error(0)
}

func (m *MockPlanRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Plan, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Plan), args.Error(1)
}

func (m *MockPlanRepository) FindByName(ctx context.Context, name string) (*model.Plan, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Plan), args.Error(1)
}

func (m *MockPlanRepository) List(ctx context.Context) ([]model.Plan, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Plan), args.Error(1)
}

func (m *MockPlanRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockPlanRepository) Features(ctx context.Context, planID uuid.UUID) ([]model.PlanFeature, error) {
	args := m.Called(ctx, planID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.PlanFeature), args.Error(1)
}

// MockMapPinRepository is a mock implementation of MapPinRepository.
type MockMapPinRepository struct {
	mock.Mock
}

func (m *MockMapPinRepository) Create(ctx context.Context, pin *model.MapPin) error {
	args := m.Called(ctx, pin)
	return args.Error(0)
}

func (m *MockMapPinRepository) Update(ctx context.Context, pin *model.MapPin) error {
	args := m.Called(ctx, pin)
	return args.Error(0)
}

func (m *MockMapPinRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.MapPin, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.MapPin), args.Error(1)
}

func (m *MockMapPinRepository) List(ctx context.Context) ([]model.MapPin, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.MapPin), args.Error(1)
}

func (m *MockMapPinRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.MapPin, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.MapPin), args.Error(1)
}

func (m *MockMapPinRepository) DeleteForUser(ctx context.Context, userID, pinID uuid.UUID) (*model.MapPin, error) {
	args := m.Called(ctx, userID, pinID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.MapPin), args.Error(1)
}

func (m *MockMapPinRepository) DeleteAllForUser(ctx context.Context, userID uuid.UUID) ([]model.MapPin, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.MapPin), args.Error(1)
}

// MockMapControlRepository is a mock implementation of MapControlRepository.
type MockMapControlRepository struct {
	mock.Mock
}

func (m *MockMapControlRepository) Create(ctx context.Context, controls *model.MapControl) error {
	args := m.Called(ctx, controls)
	return args.Error(0)
}

func (m *MockMapControlRepository) Update(ctx context.Context, controls *model.MapControl) error {
	args := m.Called(ctx, controls)
	return args.Error(0)
}

func (m *MockMapControlRepository) FindByUser(ctx context.Context, userID uuid.UUID) (*model.MapControl, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.MapControl), args.Error(1)
}

func (m *MockMapControlRepository) List(ctx context.Context) ([]model.MapControl, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.MapControl), args.Error(1)
}

// MockTimezoneConfigRepository is a mock implementation of TimezoneConfigRepository.
type MockTimezoneConfigRepository struct {
	mock.Mock
}

func (m *MockTimezoneConfigRepository) Create(ctx context.Context, cfg *model.TimezoneConfiguration) error {
	args := m.Called(ctx, cfg)
	return args.Error(0)
}

func (m *MockTimezoneConfigRepository) Update(ctx context.Context, cfg *model.TimezoneConfiguration) error {
	args := m.Called(ctx, cfg)
	return args.Error(0)
}

func (m *MockTimezoneConfigRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.TimezoneConfiguration, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.TimezoneConfiguration), args.Error(1)
}

func (m *MockTimezoneConfigRepository) FindByUser(ctx context.Context, userID uuid.UUID) (*model.TimezoneConfiguration, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.TimezoneConfiguration), args.Error(1)
}

func (m *MockTimezoneConfigRepository) List(ctx context.Context) ([]model.TimezoneConfiguration, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.TimezoneConfiguration), args.Error(1)
}

func (m *MockTimezoneConfigRepository) Delete(ctx context.Context, id uuid.UUID) (*model.TimezoneConfiguration, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.TimezoneConfiguration), args.Error(1)
}

// MockFAQRepository is a mock implementation of FAQRepository.
type MockFAQRepository struct {
	mock.Mock
}

func (m *MockFAQRepository) Metadata(ctx context.Context) (*model.FAQMetadata, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.FAQMetadata), args.Error(1)
}

func (m *MockFAQRepository) Categories(ctx context.Context) ([]model.FAQCategory, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.FAQCategory), args.Error(1)
}

func (m *MockFAQRepository) Save(ctx context.Context, meta *model.FAQMetadata, categories []model.FAQCategory) error {
	args := m.Called(ctx, meta, categories)
	return args.Error(0)
}

func (m *MockFAQRepository) DeleteCategory(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockContactRepository is a mock implementation of ContactRepository.
type MockContactRepository struct {
	mock.Mock
}

func (m *MockContactRepository) First(ctx context.Context) (*model.ContactInfo, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ContactInfo), args.Error(1)
}

func (m *MockContactRepository) Create(ctx context.Context, info *model.ContactInfo) error {
	args := m.Called(ctx, info)
	return args.Error(0)
}

func (m *MockContactRepository) Save(ctx context.Context, info *model.ContactInfo) error {
	args := m.Called(ctx, info)
	return args.Error(0)
}

// MockHolidaySource is a mock implementation of HolidaySource.
type MockHolidaySource struct {
	mock.Mock
}

func (m *MockHolidaySource) Holidays(ctx context.Context, q external.HolidayQuery) ([]external.Holiday, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]external.Holiday), args.Error(1)
}

// MockTileSource is a mock implementation of TileSource.
type MockTileSource struct {
	mock.Mock
}

func (m *MockTileSource) Tile(ctx context.Context, q external.TileQuery) (*external.Tile, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*external.Tile), args.Error(1)
}

// MockSettingRepository is a mock implementation of repository.SettingRepository.
type MockSettingRepository struct {
	mock.Mock
}

func (m *MockSettingRepository) Get(ctx context.Context) (*model.Setting, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Setting), args.Error(1)
}

func (m *MockSettingRepository) FindByID(ctx context.Context, id uint) (*model.Setting, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Setting), args.Error(1)
}

func (m *MockSettingRepository) Create(ctx context.Context, setting *model.Setting) error {
	args := m.Called(ctx, setting)
	return args.Error(0)
}

func (m *MockSettingRepository) Save(ctx context.Context, setting *model.Setting) error {
	args := m.Called(ctx, setting)
	return args.Error(0)
}

func (m *MockSettingRepository) UpdateIcon(ctx context.Context, id uint, icon string) error {
	args := m.Called(ctx, id, icon)
	return args.Error(0)
}

// MockTimezoneRepository is a mock implementation of repository.TimezoneRepository.
type MockTimezoneRepository struct {
	mock.Mock
}

func (m *MockTimezoneRepository) List(ctx context.Context) ([]model.Timezone, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Timezone), args.Error(1)
}

func (m *MockTimezoneRepository) Seed(ctx context.Context, zones []model.Timezone) (int64, error) {
	args := m.Called(ctx, zones)
	return args.Get(0).(int64), args.Error(1)
}
