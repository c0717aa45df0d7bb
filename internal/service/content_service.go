package service

import (
	"context"

	"github.com/rs/zerolog"
	"gorm.io/datatypes"

	"mapadmin/internal/cache"
	apperrors "mapadmin/internal/errors"
	"mapadmin/internal/model"
	"mapadmin/internal/repository"
)

// SettingInput lists the settings fields that may change; nil means "leave as is".
type SettingInput struct {
	SiteName          *string
	SiteURL           *string
	SiteDescription   *string
	SiteIcon          *string
	AdminEmail        *string
	Timezone          *string
	Language          *string
	DateFormat        *string
	MaintenanceMode   *bool
	AllowRegistration *bool
}

func (in SettingInput) apply(s *model.Setting) {
	setString(&s.SiteName, in.SiteName)
	setString(&s.SiteURL, in.SiteURL)
	setString(&s.SiteDescription, in.SiteDescription)
	setString(&s.SiteIcon, in.SiteIcon)
	setString(&s.AdminEmail, in.AdminEmail)
	setString(&s.Timezone, in.Timezone)
	setString(&s.Language, in.Language)
	setString(&s.DateFormat, in.DateFormat)
	setBool(&s.MaintenanceMode, in.MaintenanceMode)
	setBool(&s.AllowRegistration, in.AllowRegistration)
}

// SettingService manages the single site settings row.
type SettingService interface {
	Get(ctx context.Context) (*model.Setting, error)
	Create(ctx context.Context, in SettingInput) (*model.Setting, error)
	Update(ctx context.Context, in SettingInput) (*model.Setting, error)
	SetIcon(ctx context.Context, icon string) error
}

type settingService struct {
	repo  repository.SettingRepository
	cache *cache.Client
	log   zerolog.Logger
}

// NewSettingService builds a SettingService. cache may be nil.
func NewSettingService(repo repository.SettingRepository, c *cache.Client, log zerolog.Logger) SettingService {
	return &settingService{repo: repo, cache: c, log: log.With().Str("service", "setting").Logger()}
}

func (s *settingService) Get(ctx context.Context) (*model.Setting, error) {
	var cached model.Setting
	if s.cache.GetJSON(ctx, settingsCacheKey, &cached) {
		return &cached, nil
	}

	setting, err := s.repo.Get(ctx)
	if err != nil {
		return nil, lookupError(s.log, "get settings", err, apperrors.ErrSettingsNotFound)
	}
	s.cache.SetJSON(ctx, settingsCacheKey, setting)
	return setting, nil
}

func (s *settingService) Create(ctx context.Context, in SettingInput) (*model.Setting, error) {
	setting := &model.Setting{ID: model.SettingsRowID}
	in.apply(setting)
	if err := s.repo.Create(ctx, setting); err != nil {
		if isDuplicate(err) {
			return nil, apperrors.Invalid("settings already exist")
		}
		return nil, storeError(s.log, "create settings", err)
	}
	_ = s.cache.Delete(ctx, settingsCacheKey)
	return setting, nil
}

func (s *settingService) Update(ctx context.Context, in SettingInput) (*model.Setting, error) {
	setting, err := s.repo.FindByID(ctx, model.SettingsRowID)
	if err != nil {
		return nil, lookupError(s.log, "find settings", err, apperrors.ErrSettingsNotFound)
	}
	in.apply(setting)
	if err := s.repo.Save(ctx, setting); err != nil {
		return nil, storeError(s.log, "update settings", err)
	}
	_ = s.cache.Delete(ctx, settingsCacheKey)
	return setting, nil
}

func (s *settingService) SetIcon(ctx context.Context, icon string) error {
	if err := s.repo.UpdateIcon(ctx, model.SettingsRowID, icon); err != nil {
		return lookupError(s.log, "update site icon", err, apperrors.ErrSettingsNotFound)
	}
	_ = s.cache.Delete(ctx, settingsCacheKey)
	return nil
}

// ContactInput lists the contact page fields that may change; nil means "leave as is".
type ContactInput struct {
	Heading           *string
	Subheading        *string
	FormHeading       *string
	FormSubheading    *string
	ContactHeading    *string
	ContactSubheading *string
	Emails            []string
	Phones            []string
	Address           *model.Address
	BusinessHours     *model.BusinessHours
}

func (in ContactInput) apply(c *model.ContactInfo) {
	setString(&c.Heading, in.Heading)
	setString(&c.Subheading, in.Subheading)
	setString(&c.FormHeading, in.FormHeading)
	setString(&c.FormSubheading, in.FormSubheading)
	setString(&c.ContactHeading, in.ContactHeading)
	setString(&c.ContactSubheading, in.ContactSubheading)
	if in.Emails != nil {
		c.Emails = datatypes.JSONSlice[string](in.Emails)
	}
	if in.Phones != nil {
		c.Phones = datatypes.JSONSlice[string](in.Phones)
	}
	if in.Address != nil {
		c.Address = datatypes.NewJSONType(*in.Address)
	}
	if in.BusinessHours != nil {
		c.BusinessHours = datatypes.NewJSONType(*in.BusinessHours)
	}
}

// ContactService manages the contact page content.
type ContactService interface {
	Get(ctx context.Context) (*model.ContactInfo, error)
	// Save updates the existing row or creates one; created reports which happened.
	Save(ctx context.Context, in ContactInput) (info *model.ContactInfo, created bool, err error)
	CreateDefault(ctx context.Context) (*model.ContactInfo, error)
}

type contactService struct {
	repo  repository.ContactRepository
	cache *cache.Client
	log   zerolog.Logger
}

// NewContactService builds a ContactService. cache may be nil.
func NewContactService(repo repository.ContactRepository, c *cache.Client, log zerolog.Logger) ContactService {
	return &contactService{repo: repo, cache: c, log: log.With().Str("service", "contact").Logger()}
}

func (s *contactService) Get(ctx context.Context) (*model.ContactInfo, error) {
	var cached model.ContactInfo
	if s.cache.GetJSON(ctx, contactCacheKey, &cached) {
		return &cached, nil
	}

	info, err := s.repo.First(ctx)
	if err != nil {
		return nil, lookupError(s.log, "get contact info", err, apperrors.ErrContactNotFound)
	}
	s.cache.SetJSON(ctx, contactCacheKey, info)
	return info, nil
}

func (s *contactService) Save(ctx context.Context, in ContactInput) (*model.ContactInfo, bool, error) {
	info, err := s.repo.First(ctx)
	if err != nil && !isNotFound(err) {
		return nil, false, storeError(s.log, "get contact info", err)
	}

	created := info == nil
	if created {
		info = &model.ContactInfo{}
		in.apply(info)
		err = s.repo.Create(ctx, info)
	} else {
		in.apply(info)
		err = s.repo.Save(ctx, info)
	}
	if err != nil {
		return nil, false, storeError(s.log, "save contact info", err)
	}

	_ = s.cache.Delete(ctx, contactCacheKey)
	return info, created, nil
}

func (s *contactService) CreateDefault(ctx context.Context) (*model.ContactInfo, error) {
	info := model.DefaultContactInfo()
	if err := s.repo.Create(ctx, &info); err != nil {
		return nil, storeError(s.log, "create contact info", err)
	}
	_ = s.cache.Delete(ctx, contactCacheKey)
	return &info, nil
}

// PrivacyService manages the privacy policy content.
type PrivacyService interface {
	Get(ctx context.Context) (*model.PrivacyPolicy, error)
	// Save updates the existing row or creates one; created reports which happened.
	Save(ctx context.Context, content, lastUpdated string) (policy *model.PrivacyPolicy, created bool, err error)
	Delete(ctx context.Context, id uint) error
}

type privacyService struct {
	repo  repository.PrivacyRepository
	cache *cache.Client
	log   zerolog.Logger
}

// NewPrivacyService builds a PrivacyService. cache may be nil.
func NewPrivacyService(repo repository.PrivacyRepository, c *cache.Client, log zerolog.Logger) PrivacyService {
	return &privacyService{repo: repo, cache: c, log: log.With().Str("service", "privacy").Logger()}
}

func (s *privacyService) Get(ctx context.Context) (*model.PrivacyPolicy, error) {
	var cached model.PrivacyPolicy
	if s.cache.GetJSON(ctx, privacyCacheKey, &cached) {
		return &cached, nil
	}

	policy, err := s.repo.First(ctx)
	if err != nil {
		return nil, lookupError(s.log, "get privacy policy", err, apperrors.ErrPrivacyNotFound)
	}
	s.cache.SetJSON(ctx, privacyCacheKey, policy)
	return policy, nil
}

func (s *privacyService) Save(ctx context.Context, content, lastUpdated string) (*model.PrivacyPolicy, bool, error) {
	policy, err := s.repo.First(ctx)
	if err != nil && !isNotFound(err) {
		return nil, false, storeError(s.log, "get privacy policy", err)
	}

	created := policy == nil
	if created {
		policy = &model.PrivacyPolicy{Content: content, LastUpdated: lastUpdated}
		err = s.repo.Create(ctx, policy)
	} else {
		policy.Content = content
		policy.LastUpdated = lastUpdated
		err = s.repo.Save(ctx, policy)
	}
	if err != nil {
		return nil, false, storeError(s.log, "save privacy policy", err)
	}

	_ = s.cache.Delete(ctx, privacyCacheKey)
	return policy, created, nil
}

func (s *privacyService) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return lookupError(s.log, "delete privacy policy", err, apperrors.ErrPrivacyNotFound)
	}
	_ = s.cache.Delete(ctx, privacyCacheKey)
	return nil
}
