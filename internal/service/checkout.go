package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"souqeats/internal/domain"
)

// CheckoutRequest carries the delivery form plus the optional payment
// proof file.
type CheckoutRequest struct {
	Name          string
	Phone         string
	Address       string
	PaymentMethod domain.PaymentMethod
	Proof         *FileUpload
}

// CheckoutService turns a session cart into a persisted order. The proof
// upload happens before any row is written, so a failed upload leaves no
// half-created order behind.
type CheckoutService struct {
	carts     *CartService
	orders    OrderRepository
	objects   ObjectStore
	publisher OrderPublisher
	qrEncoder QRGenerator
	now       func() time.Time
}

func NewCheckoutService(carts *CartService, orders OrderRepository, objects ObjectStore, publisher OrderPublisher, qr QRGenerator) *CheckoutService {
	return &CheckoutService{
		carts:     carts,
		orders:    orders,
		objects:   objects,
		publisher: publisher,
		qrEncoder: qr,
		now:       time.Now,
	}
}

func (s *CheckoutService) Checkout(ctx context.Context, sessionID string, req CheckoutRequest) (*domain.Order, error) {
	if req.Name == "" || req.Phone == "" || req.Address == "" {
		return nil, domain.ErrMissingContact
	}

	cart, err := s.carts.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if cart.Empty() {
		return nil, domain.ErrEmptyCart
	}

	if req.PaymentMethod.RequiresProof() && req.Proof == nil {
		return nil, domain.ErrProofRequired
	}

	proofURL := ""
	if req.Proof != nil {
		key := fmt.Sprintf("payment-proofs/%d-%s", s.now().UnixMilli(), req.Proof.Filename)
		proofURL, err = s.objects.Upload(ctx, key, req.Proof.ContentType, req.Proof.Body)
		if err != nil {
			return nil, fmt.Errorf("upload payment proof: %w", err)
		}
	}

	order := &domain.Order{
		CustomerName:    req.Name,
		CustomerPhone:   req.Phone,
		Address:         req.Address,
		Total:           cart.Total(),
		Status:          domain.StatusPaid,
		PaymentMethod:   req.PaymentMethod,
		PaymentProofURL: proofURL,
		Items:           cart.Items(),
	}
	if err := s.orders.CreateCustomerAndOrder(order); err != nil {
		return nil, err
	}

	if s.qrEncoder != nil {
		if qr, err := s.qrEncoder.Generate(order.ID); err == nil {
			_ = s.orders.SaveQRCode(order.ID, qr)
		}
	}

	if s.publisher != nil {
		event := domain.OrderEvent{
			Type:      domain.EventOrderCreated,
			OrderID:   order.ID,
			Status:    order.Status,
			Total:     order.Total,
			Timestamp: s.now(),
		}
		if err := s.publisher.PublishOrderEvent(ctx, event); err != nil {
			log.Printf("publish order created for order %d: %v", order.ID, err)
		}
	}

	// The cart survives any failure above; it is only emptied once the
	// order row exists.
	if err := s.carts.Clear(ctx, sessionID); err != nil {
		log.Printf("clear cart for session %s: %v", sessionID, err)
	}

	return order, nil
}
