package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"mapadmin/internal/auth"
	apperrors "mapadmin/internal/errors"
	"mapadmin/internal/model"
	"mapadmin/internal/repository"
)

// SeedInput names the optional bootstrap super admin.
type SeedInput struct {
	AdminEmail    string
	AdminPassword string
}

// SeedReport lists which default rows were created and which already existed.
type SeedReport struct {
	Created []string `json:"created"`
	Skipped []string `json:"skipped"`
}

func (r *SeedReport) record(item string, created bool) {
	if created {
		r.Created = append(r.Created, item)
		return
	}
	r.Skipped = append(r.Skipped, item)
}

// SeedRepositories groups the stores the seeder writes to.
type SeedRepositories struct {
	Admins    repository.AdminRepository
	Plans     repository.PlanRepository
	Settings  repository.SettingRepository
	Contact   repository.ContactRepository
	FAQ       repository.FAQRepository
	Timezones repository.TimezoneRepository
}

// SeedService installs the rows the dashboard expects to exist. Running it
// again leaves existing rows untouched.
type SeedService interface {
	Run(ctx context.Context, in SeedInput) (*SeedReport, error)
}

type seedService struct {
	repos SeedRepositories
	log   zerolog.Logger
}

// NewSeedService builds a SeedService.
func NewSeedService(repos SeedRepositories, log zerolog.Logger) SeedService {
	return &seedService{repos: repos, log: log.With().Str("service", "seed").Logger()}
}

// DefaultTimezones is the catalogue installed on first run.
var DefaultTimezones = []model.Timezone{
	{Name: "UTC", Abbreviation: "UTC", UTCOffset: "+00:00"},
	{Name: "Europe/London", Abbreviation: "GMT", UTCOffset: "+00:00", Country: "GB"},
	{Name: "Europe/Berlin", Abbreviation: "CET", UTCOffset: "+01:00", Country: "DE"},
	{Name: "Europe/Paris", Abbreviation: "CET", UTCOffset: "+01:00", Country: "FR"},
	{Name: "Africa/Cairo", Abbreviation: "EET", UTCOffset: "+02:00", Country: "EG"},
	{Name: "Europe/Moscow", Abbreviation: "MSK", UTCOffset: "+03:00", Country: "RU"},
	{Name: "Asia/Riyadh", Abbreviation: "AST", UTCOffset: "+03:00", Country: "SA"},
	{Name: "Asia/Dubai", Abbreviation: "GST", UTCOffset: "+04:00", Country: "AE"},
	{Name: "Asia/Kolkata", Abbreviation: "IST", UTCOffset: "+05:30", Country: "IN"},
	{Name: "Asia/Shanghai", Abbreviation: "CST", UTCOffset: "+08:00", Country: "CN"},
	{Name: "Asia/Tokyo", Abbreviation: "JST", UTCOffset: "+09:00", Country: "JP"},
	{Name: "Australia/Sydney", Abbreviation: "AEST", UTCOffset: "+10:00", Country: "AU"},
	{Name: "America/Sao_Paulo", Abbreviation: "BRT", UTCOffset: "-03:00", Country: "BR"},
	{Name: "America/New_York", Abbreviation: "EST", UTCOffset: "-05:00", Country: "US"},
	{Name: "America/Chicago", Abbreviation: "CST", UTCOffset: "-06:00", Country: "US"},
	{Name: "America/Los_Angeles", Abbreviation: "PST", UTCOffset: "-08:00", Country: "US"},
}

func defaultPlan() *model.Plan {
	return &model.Plan{
		Name:         model.DefaultPlanName,
		Description:  "Basic access to the live map.",
		Price:        decimal.Zero,
		BillingCycle: "monthly",
		Features: []model.PlanFeature{
			{Name: "Live map", Included: true},
			{Name: "Map pins", Included: true},
			{Name: "Weather overlay", Included: false},
		},
	}
}

func defaultSetting() *model.Setting {
	return &model.Setting{
		ID:                model.SettingsRowID,
		SiteName:          "Map Dashboard",
		Timezone:          "UTC",
		Language:          "en",
		DateFormat:        "YYYY-MM-DD",
		AllowRegistration: true,
	}
}

func (s *seedService) Run(ctx context.Context, in SeedInput) (*SeedReport, error) {
	report := &SeedReport{Created: []string{}, Skipped: []string{}}
	steps := []struct {
		name string
		run  func(context.Context) (bool, error)
	}{
		{"plan", s.seedPlan},
		{"settings", s.seedSettings},
		{"contact", s.seedContact},
		{"faq", s.seedFAQ},
		{"timezones", s.seedTimezones},
		{"admin", func(ctx context.Context) (bool, error) { return s.seedAdmin(ctx, in) }},
	}
	for _, step := range steps {
		created, err := step.run(ctx)
		if err != nil {
			return report, err
		}
		report.record(step.name, created)
	}

	s.log.Info().Strs("created", report.Created).Strs("skipped", report.Skipped).Msg("seed finished")
	return report, nil
}

func (s *seedService) seedPlan(ctx context.Context) (bool, error) {
	_, err := s.repos.Plans.FindByName(ctx, model.DefaultPlanName)
	if err == nil {
		return false, nil
	}
	if !isNotFound(err) {
		return false, storeError(s.log, "find default plan", err)
	}
	if err := s.repos.Plans.Create(ctx, defaultPlan()); err != nil {
		return false, storeError(s.log, "create default plan", err)
	}
	return true, nil
}

func (s *seedService) seedSettings(ctx context.Context) (bool, error) {
	_, err := s.repos.Settings.FindByID(ctx, model.SettingsRowID)
	if err == nil {
		return false, nil
	}
	if !isNotFound(err) {
		return false, storeError(s.log, "find settings", err)
	}
	if err := s.repos.Settings.Create(ctx, defaultSetting()); err != nil {
		return false, storeError(s.log, "create settings", err)
	}
	return true, nil
}

func (s *seedService) seedContact(ctx context.Context) (bool, error) {
	_, err := s.repos.Contact.First(ctx)
	if err == nil {
		return false, nil
	}
	if !isNotFound(err) {
		return false, storeError(s.log, "find contact info", err)
	}
	info := model.DefaultContactInfo()
	if err := s.repos.Contact.Create(ctx, &info); err != nil {
		return false, storeError(s.log, "create contact info", err)
	}
	return true, nil
}

func (s *seedService) seedFAQ(ctx context.Context) (bool, error) {
	_, err := s.repos.FAQ.Metadata(ctx)
	if err == nil {
		return false, nil
	}
	if !isNotFound(err) {
		return false, storeError(s.log, "find faq metadata", err)
	}
	meta := &model.FAQMetadata{
		Heading:           "Frequently Asked Questions",
		Subheading:        "Answers to common questions about the dashboard.",
		SearchPlaceholder: "Search questions...",
	}
	if err := s.repos.FAQ.Save(ctx, meta, nil); err != nil {
		return false, storeError(s.log, "create faq metadata", err)
	}
	return true, nil
}

func (s *seedService) seedTimezones(ctx context.Context) (bool, error) {
	added, err := s.repos.Timezones.Seed(ctx, DefaultTimezones)
	if err != nil {
		return false, storeError(s.log, "seed timezones", err)
	}
	return added > 0, nil
}

func (s *seedService) seedAdmin(ctx context.Context, in SeedInput) (bool, error) {
	email := strings.TrimSpace(in.AdminEmail)
	if email == "" {
		return false, nil
	}
	if in.AdminPassword == "" {
		return false, apperrors.Invalid("a password is required to seed admin %s", email)
	}

	_, err := s.repos.Admins.FindByEmail(ctx, email)
	if err == nil {
		return false, nil
	}
	if !isNotFound(err) {
		return false, storeError(s.log, "find seed admin", err)
	}

	hash, err := auth.HashPassword(in.AdminPassword)
	if err != nil {
		return false, err
	}
	admin := &model.Admin{
		FirstName:    "Super",
		LastName:     "Admin",
		Email:        email,
		PasswordHash: hash,
		Role:         model.RoleSuperAdmin,
	}
	if err := s.repos.Admins.Create(ctx, admin); err != nil {
		return false, storeError(s.log, "create seed admin", err)
	}
	return true, nil
}
