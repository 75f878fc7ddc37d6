package order

import (
	"context"
	"fmt"
	"io"

	"quiltshop-be/internal/logger"
	"quiltshop-be/internal/payment"

	"go.uber.org/zap"
)

type Service interface {
	Checkout(ctx context.Context, userID int64, input CheckoutInput) (*Order, error)
	CreatePaymentSession(ctx context.Context, userID int64, userEmail string, orderID int64) (string, error)
	ConfirmSession(ctx context.Context, userID int64, sessionID string) (Status, error)
	HandlePaymentCompleted(ctx context.Context, orderID int64) error
	ListMine(ctx context.Context, userID int64) ([]Order, error)
	List(ctx context.Context, opts ListOptions) (*ListResult, error)
	UpdateStatus(ctx context.Context, orderID int64, status Status, actorID int64) (*Order, error)
	SetTracking(ctx context.Context, orderID int64, carrier *string, trackingNo string, actorID int64) (*Order, error)
	ExportCSV(ctx context.Context, w io.Writer, status string) error
}

type service struct {
	repo    Repository
	gateway payment.Gateway
}

func NewService(repo Repository, gateway payment.Gateway) Service {
	return &service{repo: repo, gateway: gateway}
}

// Checkout is phase one: re-price the cart from the catalog and persist the
// order atomically. The payment handoff is a separate, independently-failable
// step.
func (s *service) Checkout(ctx context.Context, userID int64, input CheckoutInput) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Checkout"),
		zap.Int64("user_id", userID),
		zap.Int("item_count", len(input.Items)),
	)

	if len(input.Items) == 0 {
		return nil, ErrEmptyCart
	}

	o, err := s.repo.CreateOrder(ctx, userID, input)
	if err != nil {
		if err != ErrNoValidItems {
			log.Error("failed to materialize order", zap.Error(err))
		}
		return nil, err
	}

	log.Info("order created",
		zap.Int64("order_id", o.ID),
		zap.Int64("total_cents", o.TotalCents),
	)

	return o, nil
}

// CreatePaymentSession is phase two: hand the saved order to the provider.
// A provider failure leaves the already-committed order PENDING and
// retrievable.
func (s *service) CreatePaymentSession(ctx context.Context, userID int64, userEmail string, orderID int64) (string, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "CreatePaymentSession"),
		zap.Int64("order_id", orderID),
	)

	o, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return "", err
	}
	if o.UserID != userID {
		return "", ErrOrderNotFound
	}
	if o.Status != StatusPending {
		return "", ErrNotAwaitingPayment
	}

	items := make([]payment.LineItem, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, payment.LineItem{
			Title:     it.ProductTitle,
			UnitCents: it.UnitCents,
			Quantity:  it.Quantity,
			ImageURL:  it.ProductImage,
			ProductID: it.ProductID,
		})
	}

	sess, err := s.gateway.CreateCheckoutSession(ctx, o.ID, userEmail, items)
	if err != nil {
		log.Warn("payment session creation failed, order stays pending", zap.Error(err))
		return "", fmt.Errorf("failed to create payment session: %w", err)
	}

	if err := s.repo.SetPaymentSession(ctx, o.ID, sess.ID); err != nil {
		log.Error("failed to store payment session", zap.String("session_id", sess.ID), zap.Error(err))
		return "", err
	}

	return sess.URL, nil
}

func (s *service) ConfirmSession(ctx context.Context, userID int64, sessionID string) (Status, error) {
	o, err := s.repo.GetByPaymentSession(ctx, sessionID, userID)
	if err != nil {
		return "", err
	}
	return o.Status, nil
}

// HandlePaymentCompleted is idempotent: a re-delivered notification applies
// nothing and appends no duplicate audit row.
func (s *service) HandlePaymentCompleted(ctx context.Context, orderID int64) error {
	applied, err := s.repo.MarkPaid(ctx, orderID)
	if err != nil {
		return err
	}

	log := logger.FromCtx(ctx).With(zap.Int64("order_id", orderID))
	if applied {
		log.Info("order marked as paid")
	} else {
		log.Info("payment notification ignored, order not pending")
	}

	return nil
}

func (s *service) ListMine(ctx context.Context, userID int64) ([]Order, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *service) List(ctx context.Context, opts ListOptions) (*ListResult, error) {
	if opts.Take <= 0 {
		opts.Take = 20
	} else if opts.Take > 100 {
		opts.Take = 100
	}

	return s.repo.List(ctx, opts)
}

func (s *service) UpdateStatus(ctx context.Context, orderID int64, status Status, actorID int64) (*Order, error) {
	if !validStatus(status) {
		return nil, ErrInvalidStatus
	}

	return s.repo.UpdateStatus(ctx, orderID, status, actorID)
}

func (s *service) SetTracking(ctx context.Context, orderID int64, carrier *string, trackingNo string, actorID int64) (*Order, error) {
	if trackingNo == "" {
		return nil, ErrTrackingRequired
	}

	return s.repo.SetTracking(ctx, orderID, carrier, trackingNo, actorID)
}

// ExportCSV reuses the listing logic with a large page cap.
func (s *service) ExportCSV(ctx context.Context, w io.Writer, status string) error {
	res, err := s.repo.List(ctx, ListOptions{Status: status, Take: 1000})
	if err != nil {
		return err
	}

	return WriteCSV(w, res.Orders)
}
