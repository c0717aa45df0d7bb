package repository

import (
	"context"

	"gorm.io/gorm"

	"mapadmin/internal/model"
)

// SettingRepository persists the single site settings row.
type SettingRepository interface {
	Get(ctx context.Context) (*model.Setting, error)
	FindByID(ctx context.Context, id uint) (*model.Setting, error)
	Create(ctx context.Context, setting *model.Setting) error
	Save(ctx context.Context, setting *model.Setting) error
	UpdateIcon(ctx context.Context, id uint, icon string) error
}

type settingRepository struct {
	db *gorm.DB
}

// NewSettingRepository builds a GORM-backed repository.
func NewSettingRepository(db *gorm.DB) SettingRepository {
	return &settingRepository{db: db}
}

func (r *settingRepository) Get(ctx context.Context) (*model.Setting, error) {
	var setting model.Setting
	if err := r.db.WithContext(ctx).Order("id").First(&setting).Error; err != nil {
		return nil, err
	}
	return &setting, nil
}

func (r *settingRepository) FindByID(ctx context.Context, id uint) (*model.Setting, error) {
	var setting model.Setting
	if err := r.db.WithContext(ctx).First(&setting, id).Error; err != nil {
		return nil, err
	}
	return &setting, nil
}

func (r *settingRepository) Create(ctx context.Context, setting *model.Setting) error {
	return r.db.WithContext(ctx).Create(setting).Error
}

func (r *settingRepository) Save(ctx context.Context, setting *model.Setting) error {
	return r.db.WithContext(ctx).Save(setting).Error
}

func (r *settingRepository) UpdateIcon(ctx context.Context, id uint, icon string) error {
	return updateColumn(r.db.WithContext(ctx), &model.Setting{}, id, "site_icon", icon)
}

// ContactRepository persists the contact page row.
type ContactRepository interface {
	First(ctx context.Context) (*model.ContactInfo, error)
	Create(ctx context.Context, info *model.ContactInfo) error
	Save(ctx context.Context, info *model.ContactInfo) error
}

type contactRepository struct {
	db *gorm.DB
}

// NewContactRepository builds a GORM-backed repository.
func NewContactRepository(db *gorm.DB) ContactRepository {
	return &contactRepository{db: db}
}

func (r *contactRepository) First(ctx context.Context) (*model.ContactInfo, error) {
	var info model.ContactInfo
	if err := r.db.WithContext(ctx).Order("id").First(&info).Error; err != nil {
		return nil, err
	}
	return &info, nil
}

func (r *contactRepository) Create(ctx context.Context, info *model.ContactInfo) error {
	return r.db.WithContext(ctx).Create(info).Error
}

func (r *contactRepository) Save(ctx context.Context, info *model.ContactInfo) error {
	return r.db.WithContext(ctx).Save(info).Error
}

// PrivacyRepository persists the privacy policy row.
type PrivacyRepository interface {
	First(ctx context.Context) (*model.PrivacyPolicy, error)
	Create(ctx context.Context, policy *model.PrivacyPolicy) error
	Save(ctx context.Context, policy *model.PrivacyPolicy) error
	Delete(ctx context.Context, id uint) error
}

type privacyRepository struct {
	db *gorm.DB
}

// NewPrivacyRepository builds a GORM-backed repository.
func NewPrivacyRepository(db *gorm.DB) PrivacyRepository {
	return &privacyRepository{db: db}
}

func (r *privacyRepository) First(ctx context.Context) (*model.PrivacyPolicy, error) {
	var policy model.PrivacyPolicy
	if err := r.db.WithContext(ctx).Order("id").First(&policy).Error; err != nil {
		return nil, err
	}
	return &policy, nil
}

func (r *privacyRepository) Create(ctx context.Context, policy *model.PrivacyPolicy) error {
	return r.db.WithContext(ctx).Create(policy).Error
}

func (r *privacyRepository) Save(ctx context.Context, policy *model.PrivacyPolicy) error {
	return r.db.WithContext(ctx).Save(policy).Error
}

func (r *privacyRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&model.PrivacyPolicy{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
