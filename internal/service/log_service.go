package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	apperrors "mapadmin/internal/errors"
	"mapadmin/internal/model"
	"mapadmin/internal/repository"
)

// Audit severities.
const (
	SeverityInfo    = "info"
	SeverityWarning = "warning"
	SeverityError   = "error"
)

// AuditInput describes an admin action to record.
type AuditInput struct {
	Admin     string
	Action    string
	Target    string
	IPAddress string
	Severity  string
}

// UserLogInput describes an end-user action to record.
type UserLogInput struct {
	UserID     uuid.UUID
	Action     string
	IPAddress  string
	DeviceType string
}

// LogService records and lists audit and user activity logs.
type LogService interface {
	AddAudit(ctx context.Context, in AuditInput) (*model.AuditLog, error)
	ListAudit(ctx context.Context) ([]model.AuditLog, error)
	GetAudit(ctx context.Context, id uuid.UUID) (*model.AuditLog, error)
	AddUserLog(ctx context.Context, in UserLogInput) (*model.UserLog, error)
	ListUserLogs(ctx context.Context) ([]model.UserLog, error)
}

type logService struct {
	audit repository.AuditLogRepository
	users repository.UserLogRepository
	log   zerolog.Logger
}

// NewLogService builds a LogService.
func NewLogService(audit repository.AuditLogRepository, users repository.UserLogRepository, log zerolog.Logger) LogService {
	return &logService{audit: audit, users: users, log: log.With().Str("service", "log").Logger()}
}

func (s *logService) AddAudit(ctx context.Context, in AuditInput) (*model.AuditLog, error) {
	if strings.TrimSpace(in.Admin) == "" || strings.TrimSpace(in.Action) == "" {
		return nil, apperrors.Invalid("admin and action are required")
	}
	switch in.Severity {
	case "":
		in.Severity = SeverityInfo
	case SeverityInfo, SeverityWarning, SeverityError:
	default:
		return nil, apperrors.Invalid("severity must be one of info, warning, error")
	}

	entry := &model.AuditLog{
		Admin:     in.Admin,
		Action:    in.Action,
		Target:    in.Target,
		IPAddress: in.IPAddress,
		Severity:  in.Severity,
	}
	if err := s.audit.Create(ctx, entry); err != nil {
		return nil, storeError(s.log, "create audit log", err)
	}
	return entry, nil
}

func (s *logService) ListAudit(ctx context.Context) ([]model.AuditLog, error) {
	logs, err := s.audit.List(ctx)
	if err != nil {
		return nil, storeError(s.log, "list audit logs", err)
	}
	return logs, nil
}

func (s *logService) GetAudit(ctx context.Context, id uuid.UUID) (*model.AuditLog, error) {
	entry, err := s.audit.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(s.log, "find audit log", err, apperrors.ErrLogNotFound)
	}
	return entry, nil
}

func (s *logService) AddUserLog(ctx context.Context, in UserLogInput) (*model.UserLog, error) {
	if in.UserID == uuid.Nil || in.Action == "" || in.IPAddress == "" || in.DeviceType == "" {
		return nil, apperrors.Invalid("all fields are required")
	}

	entry := &model.UserLog{
		UserID:     in.UserID,
		Action:     in.Action,
		IPAddress:  in.IPAddress,
		DeviceType: in.DeviceType,
	}
	if err := s.users.Create(ctx, entry); err != nil {
		return nil, storeError(s.log, "create user log", err)
	}
	return entry, nil
}

func (s *logService) ListUserLogs(ctx context.Context) ([]model.UserLog, error) {
	logs, err := s.users.List(ctx)
	if err != nil {
		return nil, storeError(s.log, "list user logs", err)
	}
	return logs, nil
}
