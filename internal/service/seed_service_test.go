package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"mapadmin/internal/auth"
	"mapadmin/internal/model"
)

type seedMocks struct {
	admins    *MockAdminRepository
	plans     *MockPlanRepository
	settings  *MockSettingRepository
	contact   *MockContactRepository
	faq       *MockFAQRepository
	timezones *MockTimezoneRepository
}

func newSeedMocks() seedMocks {
	return seedMocks{
		admins:    new(MockAdminRepository),
		plans:     new(MockPlanRepository),
		settings:  new(MockSettingRepository),
		contact:   new(MockContactRepository),
		faq:       new(MockFAQRepository),
		timezones: new(MockTimezoneRepository),
	}
}

func (m seedMocks) service() SeedService {
	return NewSeedService(SeedRepositories{
		Admins:    m.admins,
		Plans:     m.plans,
		Settings:  m.settings,
		Contact:   m.contact,
		FAQ:       m.faq,
		Timezones: m.timezones,
	}, zerolog.Nop())
}

func TestSeedService_Run_EmptyDatabase(t *testing.T) {
	m := newSeedMocks()
	m.plans.On("FindByName", mock.Anything, model.DefaultPlanName).Return(nil, gorm.ErrRecordNotFound)
	m.plans.On("Create", mock.Anything, mock.MatchedBy(func(p *model.Plan) bool {
		return p.Name == model.DefaultPlanName && p.Price.IsZero() && len(p.Features) > 0
	})).Return(nil)
	m.settings.On("FindByID", mock.Anything, model.SettingsRowID).Return(nil, gorm.ErrRecordNotFound)
	m.settings.On("Create", mock.Anything, mock.MatchedBy(func(s *model.Setting) bool {
		return s.ID == model.SettingsRowID
	})).Return(nil)
	m.contact.On("First", mock.Anything).Return(nil, gorm.ErrRecordNotFound)
	m.contact.On("Create", mock.Anything, mock.AnythingOfType("*model.ContactInfo")).Return(nil)
	m.faq.On("Metadata", mock.Anything).Return(nil, gorm.ErrRecordNotFound)
	m.faq.On("Save", mock.Anything, mock.AnythingOfType("*model.FAQMetadata"), []model.FAQCategory(nil)).Return(nil)
	m.timezones.On("Seed", mock.Anything, DefaultTimezones).Return(int64(len(DefaultTimezones)), nil)
	m.admins.On("FindByEmail", mock.Anything, "root@example.com").Return(nil, gorm.ErrRecordNotFound)

	var created *model.Admin
	m.admins.On("Create", mock.Anything, mock.AnythingOfType("*model.Admin")).
		Run(func(args mock.Arguments) { created = args.Get(1).(*model.Admin) }).
		Return(nil)

	report, err := m.service().Run(context.Background(), SeedInput{AdminEmail: "root@example.com", AdminPassword: "s3cret"})
	require.NoError(t, err)

	assert.Equal(t, []string{"plan", "settings", "contact", "faq", "timezones", "admin"}, report.Created)
	assert.Empty(t, report.Skipped)
	require.NotNil(t, created)
	assert.Equal(t, model.RoleSuperAdmin, created.Role)
	assert.True(t, auth.CheckPassword(created.PasswordHash, "s3cret"))
}

func TestSeedService_Run_IsIdempotent(t *testing.T) {
	m := newSeedMocks()
	m.plans.On("FindByName", mock.Anything, model.DefaultPlanName).Return(&model.Plan{Name: model.DefaultPlanName}, nil)
	m.settings.On("FindByID", mock.Anything, model.SettingsRowID).Return(&model.Setting{ID: model.SettingsRowID}, nil)
	existingContact := model.DefaultContactInfo()
	m.contact.On("First", mock.Anything).Return(&existingContact, nil)
	m.faq.On("Metadata", mock.Anything).Return(&model.FAQMetadata{Heading: "FAQ"}, nil)
	m.timezones.On("Seed", mock.Anything, DefaultTimezones).Return(int64(0), nil)

	report, err := m.service().Run(context.Background(), SeedInput{})
	require.NoError(t, err)

	assert.Empty(t, report.Created)
	assert.Equal(t, []string{"plan", "settings", "contact", "faq", "timezones", "admin"}, report.Skipped)
	m.plans.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	m.settings.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	m.admins.AssertNotCalled(t, "FindByEmail", mock.Anything, mock.Anything)
}

func TestSeedService_Run_AdminWithoutPassword(t *testing.T) {
	m := newSeedMocks()
	m.plans.On("FindByName", mock.Anything, model.DefaultPlanName).Return(&model.Plan{}, nil)
	m.settings.On("FindByID", mock.Anything, model.SettingsRowID).Return(&model.Setting{}, nil)
	m.contact.On("First", mock.Anything).Return(&model.ContactInfo{}, nil)
	m.faq.On("Metadata", mock.Anything).Return(&model.FAQMetadata{}, nil)
	m.timezones.On("Seed", mock.Anything, DefaultTimezones).Return(int64(0), nil)

	_, err := m.service().Run(context.Background(), SeedInput{AdminEmail: "root@example.com"})
	assert.Error(t, err)
	m.admins.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}
