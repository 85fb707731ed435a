package tests

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"souqeats/internal/domain"
	"souqeats/internal/mocks"
	"souqeats/internal/service"
)

func seededCart() domain.Cart {
	cart := domain.Cart{}
	cart.Add(domain.Dish{ID: 10, Name: "Thieboudienne", Price: 4500})
	cart.Add(domain.Dish{ID: 10, Name: "Thieboudienne", Price: 4500})
	cart.Add(domain.Dish{ID: 20, Name: "Double burger", Price: 2500})
	return cart
}

func validRequest() service.CheckoutRequest {
	return service.CheckoutRequest{
		Name:          "Fatimetou",
		Phone:         "22233445",
		Address:       "Tevragh Zeina, Nouakchott",
		PaymentMethod: domain.PaymentCash,
	}
}

type closeTracker struct {
	io.Reader
	closed bool
}

func (c *closeTracker) Close() error {
	c.closed = true
	return nil
}

func TestFileUpload_Close(t *testing.T) {
	tracker := &closeTracker{Reader: strings.NewReader("png")}
	upload := &service.FileUpload{Filename: "logo.png", Body: tracker}
	upload.Close()
	assert.True(t, tracker.closed)

	// Handlers defer Close before knowing whether a file was attached.
	var missing *service.FileUpload
	missing.Close()
}

func TestCheckoutService_Checkout(t *testing.T) {
	ctx := context.Background()

	t.Run("cash order", func(t *testing.T) {
		store := mocks.NewCartStore(t)
		store.On("GetCart", ctx, "sess-1").Return(seededCart(), nil).Once()
		store.On("ClearCart", ctx, "sess-1").Return(nil).Once()

		orders := mocks.NewOrderRepository(t)
		orders.On("CreateCustomerAndOrder", mock.Anything).Run(func(args mock.Arguments) {
			order := args.Get(0).(*domain.Order)
			order.ID = 42
			assert.Equal(t, 11500, order.Total)
			assert.Equal(t, domain.StatusPaid, order.Status)
			assert.Len(t, order.Items, 2)
		}).Return(nil).Once()
		orders.On("SaveQRCode", 42, mock.Anything).Return(nil).Once()

		qrEncoder := mocks.NewQRGenerator(t)
		qrEncoder.On("Generate", 42).Return([]byte("png"), nil).Once()

		publisher := mocks.NewOrderPublisher(t)
		publisher.On("PublishOrderEvent", ctx, mock.MatchedBy(func(event domain.OrderEvent) bool {
			return event.Type == domain.EventOrderCreated && event.OrderID == 42
		})).Return(nil).Once()

		svc := service.NewCheckoutService(
			service.NewCartService(store, service.NewCatalogService(mocks.NewCatalogRepository(t))),
			orders, mocks.NewObjectStore(t), publisher, qrEncoder)

		order, err := svc.Checkout(ctx, "sess-1", validRequest())
		assert.NoError(t, err)
		assert.Equal(t, 42, order.ID)
	})

	t.Run("empty cart is rejected", func(t *testing.T) {
		store := mocks.NewCartStore(t)
		store.On("GetCart", ctx, "sess-1").Return(domain.Cart{}, nil).Once()

		svc := service.NewCheckoutService(
			service.NewCartService(store, service.NewCatalogService(mocks.NewCatalogRepository(t))),
			mocks.NewOrderRepository(t), mocks.NewObjectStore(t), mocks.NewOrderPublisher(t), mocks.NewQRGenerator(t))

		_, err := svc.Checkout(ctx, "sess-1", validRequest())
		assert.ErrorIs(t, err, domain.ErrEmptyCart)
	})

	t.Run("missing contact fields are rejected", func(t *testing.T) {
		svc := service.NewCheckoutService(
			service.NewCartService(mocks.NewCartStore(t), service.NewCatalogService(mocks.NewCatalogRepository(t))),
			mocks.NewOrderRepository(t), mocks.NewObjectStore(t), mocks.NewOrderPublisher(t), mocks.NewQRGenerator(t))

		req := validRequest()
		req.Phone = ""
		_, err := svc.Checkout(ctx, "sess-1", req)
		assert.ErrorIs(t, err, domain.ErrMissingContact)
	})

	t.Run("electronic payment without proof is rejected", func(t *testing.T) {
		store := mocks.NewCartStore(t)
		store.On("GetCart", ctx, "sess-1").Return(seededCart(), nil).Once()

		svc := service.NewCheckoutService(
			service.NewCartService(store, service.NewCatalogService(mocks.NewCatalogRepository(t))),
			mocks.NewOrderRepository(t), mocks.NewObjectStore(t), mocks.NewOrderPublisher(t), mocks.NewQRGenerator(t))

		req := validRequest()
		req.PaymentMethod = domain.PaymentElectronic
		_, err := svc.Checkout(ctx, "sess-1", req)
		assert.ErrorIs(t, err, domain.ErrProofRequired)
	})

	t.Run("electronic payment uploads proof before writing rows", func(t *testing.T) {
		store := mocks.NewCartStore(t)
		store.On("GetCart", ctx, "sess-1").Return(seededCart(), nil).Once()
		store.On("ClearCart", ctx, "sess-1").Return(nil).Once()

		objects := mocks.NewObjectStore(t)
		objects.On("Upload", ctx, mock.MatchedBy(func(key string) bool {
			return strings.HasPrefix(key, "payment-proofs/") && strings.HasSuffix(key, "-receipt.png")
		}), "image/png", mock.Anything).Return("https://cdn.example.com/payment-proofs/receipt.png", nil).Once()

		orders := mocks.NewOrderRepository(t)
		orders.On("CreateCustomerAndOrder", mock.MatchedBy(func(order *domain.Order) bool {
			return order.PaymentProofURL == "https://cdn.example.com/payment-proofs/receipt.png"
		})).Run(func(args mock.Arguments) {
			args.Get(0).(*domain.Order).ID = 43
		}).Return(nil).Once()
		orders.On("SaveQRCode", 43, mock.Anything).Return(nil).Once()

		qrEncoder := mocks.NewQRGenerator(t)
		qrEncoder.On("Generate", 43).Return([]byte("png"), nil).Once()

		publisher := mocks.NewOrderPublisher(t)
		publisher.On("PublishOrderEvent", ctx, mock.Anything).Return(nil).Once()

		svc := service.NewCheckoutService(
			service.NewCartService(store, service.NewCatalogService(mocks.NewCatalogRepository(t))),
			orders, objects, publisher, qrEncoder)

		req := validRequest()
		req.PaymentMethod = domain.PaymentElectronic
		req.Proof = &service.FileUpload{Filename: "receipt.png", ContentType: "image/png", Body: strings.NewReader("fake")}

		order, err := svc.Checkout(ctx, "sess-1", req)
		assert.NoError(t, err)
		assert.Equal(t, 43, order.ID)
	})

	t.Run("failed proof upload aborts before any row write", func(t *testing.T) {
		store := mocks.NewCartStore(t)
		store.On("GetCart", ctx, "sess-1").Return(seededCart(), nil).Once()

		objects := mocks.NewObjectStore(t)
		objects.On("Upload", ctx, mock.Anything, mock.Anything, mock.Anything).
			Return("", errors.New("bucket unreachable")).Once()

		// OrderRepository gets no expectations: any call would fail the test.
		svc := service.NewCheckoutService(
			service.NewCartService(store, service.NewCatalogService(mocks.NewCatalogRepository(t))),
			mocks.NewOrderRepository(t), objects, mocks.NewOrderPublisher(t), mocks.NewQRGenerator(t))

		req := validRequest()
		req.PaymentMethod = domain.PaymentElectronic
		req.Proof = &service.FileUpload{Filename: "receipt.png", ContentType: "image/png", Body: strings.NewReader("fake")}

		_, err := svc.Checkout(ctx, "sess-1", req)
		assert.Error(t, err)
	})

	t.Run("cart survives a failed order insert", func(t *testing.T) {
		store := mocks.NewCartStore(t)
		store.On("GetCart", ctx, "sess-1").Return(seededCart(), nil).Once()

		orders := mocks.NewOrderRepository(t)
		orders.On("CreateCustomerAndOrder", mock.Anything).Return(errors.New("db down")).Once()

		// ClearCart gets no expectation: the cart must not be touched.
		svc := service.NewCheckoutService(
			service.NewCartService(store, service.NewCatalogService(mocks.NewCatalogRepository(t))),
			orders, mocks.NewObjectStore(t), mocks.NewOrderPublisher(t), mocks.NewQRGenerator(t))

		_, err := svc.Checkout(ctx, "sess-1", validRequest())
		assert.Error(t, err)
	})
}
