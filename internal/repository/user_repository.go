package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"mapadmin/internal/model"
)

// UserRepository defines persistence operations.
type UserRepository interface {
	CreateWithPlan(ctx context.Context, user *model.User, planID uuid.UUID, start time.Time) error
	Update(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByPhone(ctx context.Context, phone string) (*model.User, error)
	List(ctx context.Context) ([]model.User, error)
	Delete(ctx context.Context, id uuid.UUID) error
	UpdateAvatar(ctx context.Context, id uuid.UUID, avatar string) error
	AssignPlan(ctx context.Context, userID, planID uuid.UUID, start time.Time) error
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository builds a GORM-backed repository.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// CreateWithPlan inserts the user and its subscription in one transaction.
func (r *userRepository) CreateWithPlan(ctx context.Context, user *model.User, planID uuid.UUID, start time.Time) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(user).Error; err != nil {
			return err
		}
		sub := &model.UserSubscription{
			UserID:    user.ID,
			PlanID:    planID,
			StartDate: start,
			Status:    "active",
		}
		if err := tx.Create(sub).Error; err != nil {
			return err
		}
		user.Subscription = sub
		return nil
	})
}

func (r *userRepository) Update(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(user).Error
}

func (r *userRepository) withSubscription(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("Subscription.Plan")
}

func (r *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	var user model.User
	if err := r.withSubscription(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByPhone(ctx context.Context, phone string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("phone = ?", phone).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) List(ctx context.Context) ([]model.User, error) {
	var users []model.User
	if err := r.withSubscription(ctx).Order("created_at").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// Delete removes the user together with its subscription.
func (r *userRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", id).Delete(&model.UserSubscription{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&model.User{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (r *userRepository) UpdateAvatar(ctx context.Context, id uuid.UUID, avatar string) error {
	return updateColumn(r.db.WithContext(ctx), &model.User{}, id, "avatar", avatar)
}

// AssignPlan points the user's subscription at planID, creating the subscription when missing.
func (r *userRepository) AssignPlan(ctx context.Context, userID, planID uuid.UUID, start time.Time) error {
	sub := &model.UserSubscription{
		UserID:    userID,
		PlanID:    planID,
		StartDate: start,
		Status:    "active",
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"plan_id", "start_date"}),
	}).Create(sub).Error
}
