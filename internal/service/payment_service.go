package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	apperrors "mapadmin/internal/errors"
	"mapadmin/internal/model"
	"mapadmin/internal/repository"
)

const defaultCurrency = "USD"

// PaymentInput lists the payment fields; on update nil means "leave as is".
type PaymentInput struct {
	UserID    *uuid.UUID
	PlanID    *uuid.UUID
	Amount    *decimal.Decimal
	Currency  *string
	Method    *string
	Reference *string
	Status    *model.PaymentStatus
}

// PaymentService records subscription payments.
type PaymentService interface {
	List(ctx context.Context) ([]model.Payment, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Payment, error)
	Create(ctx context.Context, in PaymentInput) (*model.Payment, error)
	Update(ctx context.Context, id uuid.UUID, in PaymentInput) (*model.Payment, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type paymentService struct {
	repo repository.PaymentRepository
	log  zerolog.Logger
}

// NewPaymentService creates a new payment service.
func NewPaymentService(repo repository.PaymentRepository, log zerolog.Logger) PaymentService {
	return &paymentService{repo: repo, log: log.With().Str("service", "payment").Logger()}
}

func (in PaymentInput) validate() error {
	if in.Amount != nil && in.Amount.IsNegative() {
		return apperrors.Invalid("amount cannot be negative")
	}
	if in.Status != nil && !in.Status.Valid() {
		return apperrors.Invalid("invalid payment status: %s", *in.Status)
	}
	if in.Currency != nil && len(strings.TrimSpace(*in.Currency)) != 3 {
		return apperrors.Invalid("currency must be a three-letter code")
	}
	return nil
}

func (in PaymentInput) apply(p *model.Payment) {
	if in.UserID != nil {
		p.UserID = *in.UserID
	}
	if in.PlanID != nil {
		p.PlanID = in.PlanID
	}
	if in.Amount != nil {
		p.Amount = *in.Amount
	}
	if in.Currency != nil {
		p.Currency = strings.ToUpper(strings.TrimSpace(*in.Currency))
	}
	setString(&p.Method, in.Method)
	setString(&p.Reference, in.Reference)
	if in.Status != nil {
		p.Status = *in.Status
	}
}

func (s *paymentService) List(ctx context.Context) ([]model.Payment, error) {
	payments, err := s.repo.List(ctx)
	if err != nil {
		return nil, storeError(s.log, "list payments", err)
	}
	return payments, nil
}

func (s *paymentService) Get(ctx context.Context, id uuid.UUID) (*model.Payment, error) {
	payment, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(s.log, "find payment", err, apperrors.ErrPaymentNotFound)
	}
	return payment, nil
}

func (s *paymentService) Create(ctx context.Context, in PaymentInput) (*model.Payment, error) {
	if in.UserID == nil || *in.UserID == uuid.Nil || in.Amount == nil {
		return nil, apperrors.Invalid("user_id and amount are required")
	}
	if err := in.validate(); err != nil {
		return nil, err
	}

	payment := &model.Payment{Currency: defaultCurrency, Status: model.PaymentStatusPending}
	in.apply(payment)
	if err := s.repo.Create(ctx, payment); err != nil {
		return nil, storeError(s.log, "create payment", err)
	}

	s.log.Info().
		Str("payment_id", payment.ID.String()).
		Str("amount", payment.Amount.StringFixed(2)).
		Str("status", string(payment.Status)).
		Msg("payment recorded")
	return payment, nil
}

func (s *paymentService) Update(ctx context.Context, id uuid.UUID, in PaymentInput) (*model.Payment, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	payment, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(s.log, "find payment", err, apperrors.ErrPaymentNotFound)
	}
	in.apply(payment)
	if err := s.repo.Update(ctx, payment); err != nil {
		return nil, storeError(s.log, "update payment", err)
	}
	return payment, nil
}

func (s *paymentService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return lookupError(s.log, "delete payment", err, apperrors.ErrPaymentNotFound)
	}
	return nil
}
