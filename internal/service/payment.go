package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"olukosi-storefront/internal/dto"
	"olukosi-storefront/internal/metrics"
	"olukosi-storefront/internal/model"
	"olukosi-storefront/internal/repository"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type PaymentService interface {
	CreatePayment(ctx context.Context, orderID string, method model.PaymentMethod, amount float64, bankDetails *dto.BankDetails) (*model.Payment, error)
	UpdatePaymentStatus(ctx context.Context, paymentID string, newStatus model.PaymentStatus, adminID, notes string) (*model.Payment, error)
	GetPayment(ctx context.Context, paymentID string) (*model.Payment, error)
	GetOrderPayments(ctx context.Context, orderID string) ([]*model.Payment, error)
}

type paymentServiceImpl struct {
	db              *gorm.DB
	currency        string
	orderRepo       repository.OrderRepository
	paymentRepo     repository.PaymentRepository
	activityLogRepo repository.ActivityLogRepository
	logger          *zap.Logger
}

func NewPaymentService(
	db *gorm.DB,
	currency string,
	orderRepo repository.OrderRepository,
	paymentRepo repository.PaymentRepository,
	activityLogRepo repository.ActivityLogRepository,
	logger *zap.Logger,
) PaymentService {
	return &paymentServiceImpl{
		db:              db,
		currency:        currency,
		orderRepo:       orderRepo,
		paymentRepo:     paymentRepo,
		activityLogRepo: activityLogRepo,
		logger:          logger,
	}
}

// CreatePayment records an offline payment attempt against an order.
// Payments always start pending; funds are confirmed later by staff.
func (s *paymentServiceImpl) CreatePayment(ctx context.Context, orderID string, method model.PaymentMethod, amount float64, bankDetails *dto.BankDetails) (*model.Payment, error) {
	if !method.Valid() {
		return nil, fmt.Errorf("unknown payment method %q", method)
	}

	if _, err := s.orderRepo.FindByID(ctx, orderID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("order %s: %w", orderID, model.ErrOrderNotFound)
		}
		return nil, fmt.Errorf("load order %s: %w", orderID, err)
	}

	payment := &model.Payment{
		ID:            uuid.NewString(),
		OrderID:       orderID,
		PaymentMethod: method,
		Status:        model.PaymentPending,
		Amount:        amount,
		Currency:      s.currency,
	}
	if bankDetails != nil {
		payment.BankName = bankDetails.BankName
		payment.AccountNumber = bankDetails.AccountNumber
		payment.TransferReference = bankDetails.TransferReference
	}

	if err := s.paymentRepo.Create(ctx, s.db, payment); err != nil {
		return nil, fmt.Errorf("store payment for order %s: %w", orderID, err)
	}

	metrics.PaymentsRecorded.WithLabelValues(string(method)).Inc()

	return payment, nil
}

// UpdatePaymentStatus moves a payment through its lifecycle. Completing
// a payment also confirms the parent order; failing or refunding one
// leaves the order alone.
func (s *paymentServiceImpl) UpdatePaymentStatus(ctx context.Context, paymentID string, newStatus model.PaymentStatus, adminID, notes string) (*model.Payment, error) {
	if !newStatus.Valid() {
		return nil, fmt.Errorf("status %q: %w", newStatus, model.ErrInvalidTransition)
	}

	payment, err := s.GetPayment(ctx, paymentID)
	if err != nil {
		return nil, err
	}

	if !payment.Status.CanTransitionTo(newStatus) {
		return nil, fmt.Errorf("payment %s: %s -> %s: %w", paymentID, payment.Status, newStatus, model.ErrInvalidTransition)
	}

	now := time.Now()
	updates := map[string]interface{}{
		"status":     newStatus,
		"notes":      notes,
		"updated_at": now,
	}
	// system-driven transitions must not erase the admin who confirmed
	if adminID != "" {
		updates["processed_by"] = adminID
	}
	if newStatus == model.PaymentCompleted {
		updates["payment_date"] = now
	} else {
		updates["payment_date"] = nil
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		rows, err := s.paymentRepo.TransitionStatus(ctx, tx, paymentID, payment.Status, updates)
		if err != nil {
			return fmt.Errorf("update payment status: %w", err)
		}
		if rows == 0 {
			// lost the race against another confirmation
			return fmt.Errorf("payment %s: %s -> %s: %w", paymentID, payment.Status, newStatus, model.ErrInvalidTransition)
		}

		if newStatus == model.PaymentCompleted {
			rows, err := s.orderRepo.TransitionStatus(ctx, tx, payment.OrderID, model.OrderPending, map[string]interface{}{
				"status":     model.OrderConfirmed,
				"updated_at": now,
			})
			if err != nil {
				return fmt.Errorf("confirm order %s: %w", payment.OrderID, err)
			}
			if rows == 0 {
				// order already left pending, nothing to confirm
				s.logger.Warn("payment completed but order not pending",
					zap.String("payment_id", paymentID),
					zap.String("order_id", payment.OrderID))
			}
		}

		if adminID != "" {
			details, _ := json.Marshal(map[string]string{
				"new_status": string(newStatus),
				"notes":      notes,
			})
			entry := &model.AdminActivityLog{
				ID:           uuid.NewString(),
				AdminID:      adminID,
				Action:       "update_payment_status",
				ResourceType: "payment",
				ResourceID:   paymentID,
				Details:      string(details),
			}
			if err := s.activityLogRepo.Append(ctx, tx, entry); err != nil {
				return fmt.Errorf("append activity log: %w", err)
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.PaymentTransitions.WithLabelValues(string(newStatus)).Inc()
	s.logger.Info("payment status updated",
		zap.String("payment_id", paymentID),
		zap.String("order_id", payment.OrderID),
		zap.String("from", string(payment.Status)),
		zap.String("to", string(newStatus)))

	return s.GetPayment(ctx, paymentID)
}

func (s *paymentServiceImpl) GetPayment(ctx context.Context, paymentID string) (*model.Payment, error) {
	payment, err := s.paymentRepo.FindByID(ctx, paymentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("payment %s: %w", paymentID, model.ErrPaymentNotFound)
		}
		return nil, fmt.Errorf("load payment %s: %w", paymentID, err)
	}

	return payment, nil
}

func (s *paymentServiceImpl) GetOrderPayments(ctx context.Context, orderID string) ([]*model.Payment, error) {
	return s.paymentRepo.ListByOrder(ctx, orderID)
}
