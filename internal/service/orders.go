package service

import (
	"context"
	"log"
	"time"

	"souqeats/internal/auth"
	"souqeats/internal/domain"
)

// OrderService serves the back-office order board and the status workflow.
type OrderService struct {
	repo      OrderRepository
	publisher OrderPublisher
	qrEncoder QRGenerator
}

func NewOrderService(repo OrderRepository, publisher OrderPublisher, qr QRGenerator) *OrderService {
	return &OrderService{repo: repo, publisher: publisher, qrEncoder: qr}
}

func (s *OrderService) List(role domain.Role) ([]domain.Order, error) {
	if !auth.Can(role, auth.ActionViewOrders) {
		return nil, domain.ErrForbidden
	}
	return s.repo.ListOrders()
}

func (s *OrderService) Get(orderID int) (*domain.Order, error) {
	return s.repo.GetOrder(orderID)
}

// Advance moves an order to a later workflow stage. Skipping stages
// forward is allowed; moving backward or re-setting the current stage is
// rejected.
func (s *OrderService) Advance(ctx context.Context, role domain.Role, orderID int, target domain.OrderStatus) (*domain.Order, error) {
	if !auth.Can(role, auth.ActionAdvanceOrder) {
		return nil, domain.ErrForbidden
	}
	if !target.Valid() {
		return nil, domain.ErrUnknownStatus
	}

	order, err := s.repo.GetOrder(orderID)
	if err != nil {
		return nil, err
	}
	if !order.Status.CanAdvanceTo(target) {
		return nil, domain.ErrStatusNotForward
	}

	if err := s.repo.UpdateOrderStatus(orderID, target); err != nil {
		return nil, err
	}
	order.Status = target

	if s.publisher != nil {
		event := domain.OrderEvent{
			Type:      domain.EventStatusChanged,
			OrderID:   order.ID,
			Status:    target,
			Total:     order.Total,
			Timestamp: time.Now(),
		}
		if err := s.publisher.PublishOrderEvent(ctx, event); err != nil {
			log.Printf("publish status change for order %d: %v", order.ID, err)
		}
	}

	return order, nil
}

// GetQRCode returns the stored QR image for an order, regenerating it
// when the stored copy is missing.
func (s *OrderService) GetQRCode(orderID int) ([]byte, error) {
	qr, err := s.repo.GetQRCode(orderID)
	if err != nil {
		return nil, err
	}
	if len(qr) == 0 && s.qrEncoder != nil {
		if regenerated, err := s.qrEncoder.Generate(orderID); err == nil {
			_ = s.repo.SaveQRCode(orderID, regenerated)
			return regenerated, nil
		}
	}
	return qr, nil
}
