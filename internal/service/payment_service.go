package service

import (
	"context"
	"math/rand"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/campushq/hostel-api/internal/models"
	appErrors "github.com/campushq/hostel-api/pkg/errors"
)

type paymentStore interface {
	Payments(ctx context.Context) ([]models.Payment, error)
	SavePayments(ctx context.Context, payments []models.Payment) error
}

// RecordPaymentRequest holds payload for recording a completed payment.
type RecordPaymentRequest struct {
	StudentID     string `json:"studentId" validate:"required"`
	Amount        int    `json:"amount" validate:"required,gt=0"`
	Method        string `json:"method" validate:"required"`
	TransactionID string `json:"transactionId"`
}

// PaymentService records rent payments against a mock payment gateway. Order
// creation never talks to a real provider.
type PaymentService struct {
	payments  paymentStore
	validator *validator.Validate
	logger    *zap.Logger
}

// NewPaymentService constructs the payment service.
func NewPaymentService(payments paymentStore, validate *validator.Validate, logger *zap.Logger) *PaymentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PaymentService{payments: payments, validator: validate, logger: logger}
}

// CreateOrder issues a mock gateway order. Amounts are converted to the
// smallest currency unit the way real gateways expect.
func (s *PaymentService) CreateOrder(amount int) *models.PaymentOrder {
	order := &models.PaymentOrder{
		ID:       "order_mock_" + strconv.Itoa(rand.Intn(1000000)),
		Currency: "INR",
		Amount:   amount * 100,
		Message:  "This is a mock order",
	}
	s.logger.Info("mock payment order created",
		zap.String("order_id", order.ID),
		zap.Int("amount", amount))
	return order
}

// List returns payments newest first, optionally filtered to one student.
func (s *PaymentService) List(ctx context.Context, studentID string) ([]models.Payment, error) {
	payments, err := s.payments.Payments(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list payments")
	}
	result := make([]models.Payment, 0, len(payments))
	for i := len(payments) - 1; i >= 0; i-- {
		if studentID != "" && payments[i].StudentID != studentID {
			continue
		}
		result = append(result, payments[i])
	}
	return result, nil
}

// Record stores a payment reported as successful by the frontend.
func (s *PaymentService) Record(ctx context.Context, req RecordPaymentRequest) (*models.Payment, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid payment payload")
	}

	now := time.Now()
	id := req.TransactionID
	if id == "" {
		id = "TXN" + strconv.FormatInt(now.UnixMilli(), 10)
	}
	payment := models.Payment{
		ID:        id,
		StudentID: req.StudentID,
		Date:      now.Format("02/01/2006"),
		Amount:    req.Amount,
		Method:    req.Method,
		Status:    models.PaymentStatusSuccess,
		Timestamp: now.UnixMilli(),
	}

	payments, err := s.payments.Payments(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load payments")
	}
	payments = append(payments, payment)
	if err := s.payments.SavePayments(ctx, payments); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save payment")
	}
	s.logger.Info("payment recorded",
		zap.String("payment_id", payment.ID),
		zap.String("student_id", payment.StudentID),
		zap.Int("amount", payment.Amount))
	return &payment, nil
}
