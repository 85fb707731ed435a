package service

import (
	"context"
	"io"

	"souqeats/internal/domain"
)

type CatalogRepository interface {
	ListCatalog() ([]domain.Restaurant, error)
}

type RestaurantRepository interface {
	CreateRestaurant(rest *domain.Restaurant) error
	GetRestaurant(id int) (*domain.Restaurant, error)
	UpdateRestaurant(rest *domain.Restaurant) error
	DeleteRestaurant(id int) (int64, error)
	UpdateRestaurantImage(id int, imageURL string) error
	SetRestaurantOpen(id int, open bool) error
	ListRestaurantsByOwner(ownerID int) ([]domain.Restaurant, error)
}

type DishRepository interface {
	CreateDish(dish *domain.Dish) error
	UpdateDish(dish *domain.Dish) error
	DeleteDish(restaurantID, dishID int) (int64, error)
	UpdateDishImage(restaurantID, dishID int, imageURL string) error
}

type OrderRepository interface {
	CreateCustomerAndOrder(order *domain.Order) error
	GetOrder(orderID int) (*domain.Order, error)
	ListOrders() ([]domain.Order, error)
	UpdateOrderStatus(orderID int, status domain.OrderStatus) error
	SaveQRCode(orderID int, qr []byte) error
	GetQRCode(orderID int) ([]byte, error)
}

type AccountRepository interface {
	CreateAccount(account *domain.Account) error
	GetAccountByEmail(email string) (*domain.Account, error)
	GetProfile(userID int) (*domain.Profile, error)
}

// CartStore keeps per-session carts keyed by an opaque session id.
type CartStore interface {
	GetCart(ctx context.Context, sessionID string) (domain.Cart, error)
	SaveCart(ctx context.Context, sessionID string, cart domain.Cart) error
	ClearCart(ctx context.Context, sessionID string) error
}

// ObjectStore uploads files and returns their public URL.
type ObjectStore interface {
	Upload(ctx context.Context, key, contentType string, body io.Reader) (string, error)
}

type OrderPublisher interface {
	PublishOrderEvent(ctx context.Context, event domain.OrderEvent) error
}

type QRGenerator interface {
	Generate(orderID int) ([]byte, error)
}

// FileUpload is a multipart file handed down from a handler.
type FileUpload struct {
	Filename    string
	ContentType string
	Body        io.Reader
}

// Close releases the underlying file. Safe on a nil upload, so handlers
// can defer it unconditionally.
func (f *FileUpload) Close() {
	if f == nil {
		return
	}
	if closer, ok := f.Body.(io.Closer); ok {
		closer.Close()
	}
}
