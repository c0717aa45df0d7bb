package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"mapadmin/internal/model"
)

// AdminRepository defines admin persistence operations.
type AdminRepository interface {
	Create(ctx context.Context, admin *model.Admin) error
	Update(ctx context.Context, admin *model.Admin) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Admin, error)
	FindByEmail(ctx context.Context, email string) (*model.Admin, error)
	FindByPhone(ctx context.Context, phone string) (*model.Admin, error)
	List(ctx context.Context) ([]model.Admin, error)
	Delete(ctx context.Context, id uuid.UUID) error
	UpdateAvatar(ctx context.Context, id uuid.UUID, avatar string) error
}

type adminRepository struct {
	db *gorm.DB
}

// NewAdminRepository builds a GORM-backed repository.
func NewAdminRepository(db *gorm.DB) AdminRepository {
	return &adminRepository{db: db}
}

func (r *adminRepository) Create(ctx context.Context, admin *model.Admin) error {
	return r.db.WithContext(ctx).Create(admin).Error
}

func (r *adminRepository) Update(ctx context.Context, admin *model.Admin) error {
	return r.db.WithContext(ctx).Save(admin).Error
}

func (r *adminRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Admin, error) {
	var admin model.Admin
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&admin).Error; err != nil {
		return nil, err
	}
	return &admin, nil
}

func (r *adminRepository) FindByEmail(ctx context.Context, email string) (*model.Admin, error) {
	var admin model.Admin
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&admin).Error; err != nil {
		return nil, err
	}
	return &admin, nil
}

func (r *adminRepository) FindByPhone(ctx context.Context, phone string) (*model.Admin, error) {
	var admin model.Admin
	if err := r.db.WithContext(ctx).Where("phone = ?", phone).First(&admin).Error; err != nil {
		return nil, err
	}
	return &admin, nil
}

func (r *adminRepository) List(ctx context.Context) ([]model.Admin, error) {
	var admins []model.Admin
	if err := r.db.WithContext(ctx).Order("created_at").Find(&admins).Error; err != nil {
		return nil, err
	}
	return admins, nil
}

// Delete removes the admin; gorm.ErrRecordNotFound is returned when nothing matched.
func (r *adminRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Admin{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *adminRepository) UpdateAvatar(ctx context.Context, id uuid.UUID, avatar string) error {
	return updateColumn(r.db.WithContext(ctx), &model.Admin{}, id, "avatar", avatar)
}
