package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"mapadmin/internal/model"
)

// AuditLogRepository defines audit log persistence operations.
type AuditLogRepository interface {
	Create(ctx context.Context, log *model.AuditLog) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.AuditLog, error)
	List(ctx context.Context) ([]model.AuditLog, error)
}

type auditLogRepository struct {
	db *gorm.DB
}

// NewAuditLogRepository creates a new audit log repository.
func NewAuditLogRepository(db *gorm.DB) AuditLogRepository {
	return &auditLogRepository{db: db}
}

// Create creates a new audit log entry.
func (r *auditLogRepository) Create(ctx context.Context, log *model.AuditLog) error {
	return r.db.WithContext(ctx).Create(log).Error
}

// FindByID finds an audit log entry by ID.
func (r *auditLogRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.AuditLog, error) {
	var log model.AuditLog
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&log).Error; err != nil {
		return nil, err
	}
	return &log, nil
}

// List returns all audit log entries, newest first.
func (r *auditLogRepository) List(ctx context.Context) ([]model.AuditLog, error) {
	var logs []model.AuditLog
	if err := r.db.WithContext(ctx).Order("timestamp DESC").Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}

// UserLogRepository defines user log persistence operations.
type UserLogRepository interface {
	Create(ctx context.Context, log *model.UserLog) error
	List(ctx context.Context) ([]model.UserLog, error)
}

type userLogRepository struct {
	db *gorm.DB
}

// NewUserLogRepository creates a new user log repository.
func NewUserLogRepository(db *gorm.DB) UserLogRepository {
	return &userLogRepository{db: db}
}

// Create creates a new user log entry.
func (r *userLogRepository) Create(ctx context.Context, log *model.UserLog) error {
	return r.db.WithContext(ctx).Create(log).Error
}

// List returns all user log entries, newest first.
func (r *userLogRepository) List(ctx context.Context) ([]model.UserLog, error) {
	var logs []model.UserLog
	if err := r.db.WithContext(ctx).Order("timestamp DESC").Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}
