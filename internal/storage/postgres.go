package storage

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"souqeats/internal/domain"
	"souqeats/internal/service"
)

type PostgresRepository struct {
	DB *sql.DB
}

var (
	_ service.CatalogRepository    = (*PostgresRepository)(nil)
	_ service.RestaurantRepository = (*PostgresRepository)(nil)
	_ service.DishRepository       = (*PostgresRepository)(nil)
	_ service.OrderRepository      = (*PostgresRepository)(nil)
	_ service.AccountRepository    = (*PostgresRepository)(nil)
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{DB: db}
}

// ListCatalog loads every restaurant with its full menu in two queries.
func (r *PostgresRepository) ListCatalog() ([]domain.Restaurant, error) {
	rows, err := r.DB.Query(`
		SELECT id, name, COALESCE(logo, ''), COALESCE(image_url, ''), COALESCE(bg_color, ''),
		       COALESCE(description, ''), rating, COALESCE(delivery_time, ''), category,
		       is_open, COALESCE(owner_id, 0), created_at
		FROM restaurants
		ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var restaurants []domain.Restaurant
	index := map[int]int{}
	for rows.Next() {
		var rest domain.Restaurant
		if err := rows.Scan(&rest.ID, &rest.Name, &rest.Logo, &rest.ImageURL, &rest.BgColor,
			&rest.Description, &rest.Rating, &rest.DeliveryTime, &rest.Category,
			&rest.IsOpen, &rest.OwnerID, &rest.CreatedAt); err != nil {
			continue
		}
		index[rest.ID] = len(restaurants)
		restaurants = append(restaurants, rest)
	}

	dishRows, err := r.DB.Query(`
		SELECT id, restaurant_id, name, COALESCE(description, ''), price, category, COALESCE(image_url, ''), created_at
		FROM dishes
		ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer dishRows.Close()

	for dishRows.Next() {
		var dish domain.Dish
		if err := dishRows.Scan(&dish.ID, &dish.RestaurantID, &dish.Name, &dish.Description,
			&dish.Price, &dish.Category, &dish.ImageURL, &dish.CreatedAt); err != nil {
			continue
		}
		if i, ok := index[dish.RestaurantID]; ok {
			restaurants[i].Menu = append(restaurants[i].Menu, dish)
		}
	}

	return restaurants, nil
}

func (r *PostgresRepository) CreateRestaurant(rest *domain.Restaurant) error {
	return r.DB.QueryRow(`
		INSERT INTO restaurants (name, logo, image_url, bg_color, description, rating, delivery_time, category, is_open, owner_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NULLIF($10, 0))
		RETURNING id, created_at`,
		rest.Name, rest.Logo, rest.ImageURL, rest.BgColor, rest.Description,
		rest.Rating, rest.DeliveryTime, rest.Category, rest.IsOpen, rest.OwnerID).
		Scan(&rest.ID, &rest.CreatedAt)
}

func (r *PostgresRepository) GetRestaurant(id int) (*domain.Restaurant, error) {
	var rest domain.Restaurant
	err := r.DB.QueryRow(`
		SELECT id, name, COALESCE(logo, ''), COALESCE(image_url, ''), COALESCE(bg_color, ''),
		       COALESCE(description, ''), rating, COALESCE(delivery_time, ''), category,
		       is_open, COALESCE(owner_id, 0), created_at
		FROM restaurants
		WHERE id = $1`, id).
		Scan(&rest.ID, &rest.Name, &rest.Logo, &rest.ImageURL, &rest.BgColor,
			&rest.Description, &rest.Rating, &rest.DeliveryTime, &rest.Category,
			&rest.IsOpen, &rest.OwnerID, &rest.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &rest, nil
}

// UpdateRestaurant rewrites the editable profile fields. The open flag
// only moves through SetRestaurantOpen and ownership is fixed at
// creation, so neither column is touched here.
func (r *PostgresRepository) UpdateRestaurant(rest *domain.Restaurant) error {
	err := r.DB.QueryRow(`
		UPDATE restaurants
		SET name=$1, logo=$2, bg_color=$3, description=$4, rating=$5, delivery_time=$6, category=$7
		WHERE id=$8
		RETURNING created_at`,
		rest.Name, rest.Logo, rest.BgColor, rest.Description, rest.Rating,
		rest.DeliveryTime, rest.Category, rest.ID).
		Scan(&rest.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrNotFound
	}
	return err
}

func (r *PostgresRepository) DeleteRestaurant(id int) (int64, error) {
	result, err := r.DB.Exec("DELETE FROM restaurants WHERE id=$1", id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (r *PostgresRepository) UpdateRestaurantImage(id int, imageURL string) error {
	_, err := r.DB.Exec("UPDATE restaurants SET image_url=$1 WHERE id=$2", imageURL, id)
	return err
}

func (r *PostgresRepository) SetRestaurantOpen(id int, open bool) error {
	result, err := r.DB.Exec("UPDATE restaurants SET is_open=$1 WHERE id=$2", open, id)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) ListRestaurantsByOwner(ownerID int) ([]domain.Restaurant, error) {
	rows, err := r.DB.Query(`
		SELECT id, name, COALESCE(logo, ''), COALESCE(image_url, ''), COALESCE(bg_color, ''),
		       COALESCE(description, ''), rating, COALESCE(delivery_time, ''), category,
		       is_open, COALESCE(owner_id, 0), created_at
		FROM restaurants
		WHERE owner_id = $1
		ORDER BY created_at DESC`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var restaurants []domain.Restaurant
	for rows.Next() {
		var rest domain.Restaurant
		if err := rows.Scan(&rest.ID, &rest.Name, &rest.Logo, &rest.ImageURL, &rest.BgColor,
			&rest.Description, &rest.Rating, &rest.DeliveryTime, &rest.Category,
			&rest.IsOpen, &rest.OwnerID, &rest.CreatedAt); err != nil {
			continue
		}
		restaurants = append(restaurants, rest)
	}
	return restaurants, nil
}

func (r *PostgresRepository) CreateDish(dish *domain.Dish) error {
	return r.DB.QueryRow(`
		INSERT INTO dishes (restaurant_id, name, description, price, category, image_url)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`,
		dish.RestaurantID, dish.Name, dish.Description, dish.Price, dish.Category, dish.ImageURL).
		Scan(&dish.ID, &dish.CreatedAt)
}

func (r *PostgresRepository) UpdateDish(dish *domain.Dish) error {
	result, err := r.DB.Exec(`
		UPDATE dishes
		SET name=$1, description=$2, price=$3, category=$4
		WHERE id=$5 AND restaurant_id=$6`,
		dish.Name, dish.Description, dish.Price, dish.Category, dish.ID, dish.RestaurantID)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) DeleteDish(restaurantID, dishID int) (int64, error) {
	result, err := r.DB.Exec("DELETE FROM dishes WHERE id=$1 AND restaurant_id=$2", dishID, restaurantID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (r *PostgresRepository) UpdateDishImage(restaurantID, dishID int, imageURL string) error {
	_, err := r.DB.Exec("UPDATE dishes SET image_url = $1 WHERE id = $2 AND restaurant_id = $3",
		imageURL, dishID, restaurantID)
	return err
}

// CreateCustomerAndOrder writes the customer, the order and its items in
// one transaction. Either every row lands or none do.
func (r *PostgresRepository) CreateCustomerAndOrder(order *domain.Order) error {
	tx, err := r.DB.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var customerID int
	if err := tx.QueryRow(`
		INSERT INTO customers (name, phone, address)
		VALUES ($1, $2, $3)
		RETURNING id
	`, order.CustomerName, order.CustomerPhone, order.Address).Scan(&customerID); err != nil {
		return err
	}

	if err := tx.QueryRow(`
		INSERT INTO orders (customer_id, total, status, payment_method, payment_proof_url)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''))
		RETURNING id, created_at
	`, customerID, order.Total, order.Status, order.PaymentMethod, order.PaymentProofURL).
		Scan(&order.ID, &order.CreatedAt); err != nil {
		return err
	}

	for _, item := range order.Items {
		if _, err := tx.Exec(`
			INSERT INTO order_items (order_id, dish_id, dish_name, quantity, price)
			VALUES ($1, $2, $3, $4, $5)
		`, order.ID, item.DishID, item.DishName, item.Quantity, item.Price); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *PostgresRepository) GetOrder(orderID int) (*domain.Order, error) {
	var order domain.Order
	err := r.DB.QueryRow(`
		SELECT o.id, c.name, c.phone, c.address, o.total, o.status, o.payment_method,
		       COALESCE(o.payment_proof_url, ''), o.created_at
		FROM orders o
		JOIN customers c ON o.customer_id = c.id
		WHERE o.id = $1`, orderID).
		Scan(&order.ID, &order.CustomerName, &order.CustomerPhone, &order.Address,
			&order.Total, &order.Status, &order.PaymentMethod, &order.PaymentProofURL, &order.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	items, err := r.listOrderItems(orderID)
	if err != nil {
		return nil, err
	}
	order.Items = items

	return &order, nil
}

func (r *PostgresRepository) ListOrders() ([]domain.Order, error) {
	rows, err := r.DB.Query(`
		SELECT o.id, c.name, c.phone, c.address, o.total, o.status, o.payment_method,
		       COALESCE(o.payment_proof_url, ''), o.created_at
		FROM orders o
		JOIN customers c ON o.customer_id = c.id
		ORDER BY o.created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		var order domain.Order
		if err := rows.Scan(&order.ID, &order.CustomerName, &order.CustomerPhone, &order.Address,
			&order.Total, &order.Status, &order.PaymentMethod, &order.PaymentProofURL, &order.CreatedAt); err != nil {
			continue
		}

		items, err := r.listOrderItems(order.ID)
		if err == nil {
			order.Items = items
		}

		orders = append(orders, order)
	}
	return orders, nil
}

func (r *PostgresRepository) listOrderItems(orderID int) ([]domain.OrderItem, error) {
	rows, err := r.DB.Query(`
		SELECT dish_id, dish_name, quantity, price
		FROM order_items
		WHERE order_id = $1`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.OrderItem
	for rows.Next() {
		var item domain.OrderItem
		if err := rows.Scan(&item.DishID, &item.DishName, &item.Quantity, &item.Price); err != nil {
			continue
		}
		items = append(items, item)
	}
	return items, nil
}

func (r *PostgresRepository) UpdateOrderStatus(orderID int, status domain.OrderStatus) error {
	result, err := r.DB.Exec("UPDATE orders SET status=$1 WHERE id=$2", status, orderID)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) SaveQRCode(orderID int, qr []byte) error {
	_, err := r.DB.Exec("UPDATE orders SET qr_code = $1 WHERE id = $2", qr, orderID)
	return err
}

func (r *PostgresRepository) GetQRCode(orderID int) ([]byte, error) {
	var qrCode []byte
	err := r.DB.QueryRow("SELECT qr_code FROM orders WHERE id = $1", orderID).Scan(&qrCode)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return qrCode, nil
}

func (r *PostgresRepository) CreateAccount(account *domain.Account) error {
	err := r.DB.QueryRow(`
		INSERT INTO accounts (email, password_hash, role)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`,
		account.Email, account.PasswordHash, account.Role).
		Scan(&account.ID, &account.CreatedAt)

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return domain.ErrEmailTaken
	}
	return err
}

func (r *PostgresRepository) GetAccountByEmail(email string) (*domain.Account, error) {
	var account domain.Account
	err := r.DB.QueryRow(`
		SELECT id, email, password_hash, role, created_at
		FROM accounts
		WHERE email = $1`, email).
		Scan(&account.ID, &account.Email, &account.PasswordHash, &account.Role, &account.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &account, nil
}

func (r *PostgresRepository) GetProfile(userID int) (*domain.Profile, error) {
	var profile domain.Profile
	err := r.DB.QueryRow("SELECT id, email, role FROM accounts WHERE id = $1", userID).
		Scan(&profile.UserID, &profile.Email, &profile.Role)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *PostgresRepository) EnsureSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS restaurants (
			id SERIAL PRIMARY KEY,
			name TEXT NOT NULL,
			logo TEXT,
			image_url TEXT,
			bg_color TEXT,
			description TEXT,
			rating NUMERIC(2,1) NOT NULL DEFAULT 0,
			delivery_time TEXT,
			category TEXT NOT NULL DEFAULT 'traditional',
			is_open BOOLEAN NOT NULL DEFAULT TRUE,
			owner_id INTEGER,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS dishes (
			id SERIAL PRIMARY KEY,
			restaurant_id INTEGER NOT NULL REFERENCES restaurants(id) ON DELETE CASCADE,
			name TEXT NOT NULL,
			description TEXT,
			price INTEGER NOT NULL DEFAULT 0,
			category TEXT NOT NULL DEFAULT 'traditional',
			image_url TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS customers (
			id SERIAL PRIMARY KEY,
			name TEXT NOT NULL,
			phone TEXT NOT NULL,
			address TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS orders (
			id SERIAL PRIMARY KEY,
			customer_id INTEGER NOT NULL REFERENCES customers(id),
			total INTEGER NOT NULL DEFAULT 0,
			status TEXT NOT NULL DEFAULT 'paid',
			payment_method TEXT NOT NULL DEFAULT 'cash',
			payment_proof_url TEXT,
			qr_code BYTEA,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS order_items (
			order_id INTEGER NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
			dish_id INTEGER NOT NULL,
			dish_name TEXT NOT NULL,
			quantity INTEGER NOT NULL,
			price INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS accounts (
			id SERIAL PRIMARY KEY,
			email TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			role TEXT NOT NULL DEFAULT 'customer',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
	}
	for _, stmt := range statements {
		if _, err := r.DB.Exec(stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
