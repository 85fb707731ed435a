package domain

import "time"

type Category string

const (
	CategoryAll         Category = "all"
	CategoryTraditional Category = "traditional"
	CategoryFastFood    Category = "fastfood"
	CategoryDesserts    Category = "desserts"
	CategoryBeverages   Category = "beverages"
)

type Role string

const (
	RoleCustomer Role = "customer"
	RoleOwner    Role = "owner"
	RoleAdmin    Role = "admin"
)

type PaymentMethod string

const (
	PaymentCash       PaymentMethod = "cash"
	PaymentElectronic PaymentMethod = "electronic"
)

// RequiresProof reports whether the payment method needs an uploaded
// proof-of-payment file before checkout may proceed.
func (m PaymentMethod) RequiresProof() bool {
	return m == PaymentElectronic
}

type Restaurant struct {
	ID           int       `json:"id"`
	Name         string    `json:"name"`
	Logo         string    `json:"logo"`
	ImageURL     string    `json:"image_url"`
	BgColor      string    `json:"bg_color"`
	Description  string    `json:"description"`
	Rating       float64   `json:"rating"`
	DeliveryTime string    `json:"delivery_time"`
	Category     Category  `json:"category"`
	IsOpen       bool      `json:"is_open"`
	OwnerID      int       `json:"owner_id,omitempty"`
	Menu         []Dish    `json:"menu"`
	CreatedAt    time.Time `json:"created_at"`
}

// PopularDish is a dish annotated with its restaurant's name, for the
// storefront carousel.
type PopularDish struct {
	Dish
	RestaurantName string `json:"restaurant_name"`
}

type Dish struct {
	ID           int       `json:"id"`
	RestaurantID int       `json:"restaurant_id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	Price        int       `json:"price"`
	Category     Category  `json:"category"`
	ImageURL     string    `json:"image_url"`
	CreatedAt    time.Time `json:"created_at"`
}

type Order struct {
	ID              int           `json:"id"`
	CustomerName    string        `json:"customer_name"`
	CustomerPhone   string        `json:"customer_phone"`
	Address         string        `json:"address"`
	Total           int           `json:"total"`
	Status          OrderStatus   `json:"status"`
	PaymentMethod   PaymentMethod `json:"payment_method"`
	PaymentProofURL string        `json:"payment_proof_url,omitempty"`
	QRCode          string        `json:"qr_code,omitempty"`
	CreatedAt       time.Time     `json:"created_at"`
	Items           []OrderItem   `json:"items"`
}

type OrderItem struct {
	DishID   int    `json:"dish_id"`
	DishName string `json:"dish_name"`
	Quantity int    `json:"quantity"`
	Price    int    `json:"price"`
}

// Account is a credentialed user. The password hash never leaves storage.
type Account struct {
	ID           int       `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

// Profile is the slice of an account the session gate cares about.
type Profile struct {
	UserID int    `json:"user_id"`
	Email  string `json:"email"`
	Role   Role   `json:"role"`
}

// OrderEvent is published to Kafka whenever an order is created or its
// status changes.
type OrderEvent struct {
	Type      string      `json:"type"`
	OrderID   int         `json:"order_id"`
	Status    OrderStatus `json:"status"`
	Total     int         `json:"total"`
	Timestamp time.Time   `json:"timestamp"`
}

const (
	EventOrderCreated  = "order_created"
	EventStatusChanged = "status_changed"
)
