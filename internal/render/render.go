// Package render turns typed state slices into HTML fragments. Every
// renderer is a pure function of its input: same state, same markup, no
// mutation anywhere.
package render

import (
	"bytes"
	"html/template"

	"souqeats/internal/domain"
)

var funcs = template.FuncMap{
	"price":        Price,
	"stars":        Stars,
	"categoryName": categoryName,
	"statusText":   statusText,
	"statusIcon":   statusIcon,
	"image":        restaurantImage,
	"glyph":        restaurantGlyph,
	"statuses":     func() []domain.OrderStatus { return domain.OrderStatuses },
	"add":          func(a, b int) int { return a + b },
	"sub":          func(a, b int) int { return a - b },
	"mul":          func(a, b int) int { return a * b },
}

var templates = template.Must(template.New("fragments").Funcs(funcs).Parse(`
{{define "restaurantGrid"}}
{{range .}}{{$r := .}}<div class="restaurant-card{{if not .IsOpen}} closed{{end}}" data-restaurant-id="{{.ID}}">
  <div class="cover">
    {{with image .}}<img src="{{.}}" alt="{{$r.Name}}">{{else}}<span class="logo">{{glyph $r}}</span>{{end}}
    {{if not .IsOpen}}<span class="overlay">Closed</span>{{end}}
  </div>
  <h3>{{.Name}}</h3>
  <span class="badge {{if .IsOpen}}open{{else}}closed{{end}}">{{if .IsOpen}}Open{{else}}Closed{{end}}</span>
  <div class="meta">
    <span class="stars">{{stars .Rating}}</span>
    <span>{{.Rating}}</span>
    <span>{{.DeliveryTime}}</span>
  </div>
  <p>{{.Description}}</p>
</div>
{{end}}{{end}}

{{define "popularDishes"}}
{{range .}}<div class="dish-card">
  {{if .ImageURL}}<img src="{{.ImageURL}}" alt="{{.Name}}">{{end}}
  <h4>{{.Name}}</h4>
  <p>{{.Description}}</p>
  <span class="restaurant">{{.RestaurantName}}</span>
  <span class="price">{{price .Price}}</span>
  <button data-action="add-to-cart" data-dish-id="{{.ID}}">Add</button>
</div>
{{end}}{{end}}

{{define "menu"}}
<div class="restaurant-header">
  {{with image .}}<img src="{{.}}" alt="{{$.Name}}">{{else}}<span class="logo">{{glyph .}}</span>{{end}}
  <h2>{{.Name}}</h2>
  <p>{{.Description}}</p>
  <div class="meta">
    <span class="stars">{{stars .Rating}}</span>
    <span>{{.Rating}}</span>
    <span>🕐 {{.DeliveryTime}}</span>
  </div>
</div>
<div class="menu-items">
{{range .Menu}}<div class="dish-card">
  {{if .ImageURL}}<img src="{{.ImageURL}}" alt="{{.Name}}">{{end}}
  <h4>{{.Name}}</h4>
  <p>{{.Description}}</p>
  <span class="price">{{price .Price}}</span>
  <button data-action="add-to-cart" data-dish-id="{{.ID}}">Add to cart</button>
</div>
{{end}}</div>
{{end}}

{{define "cart"}}
{{if .Empty}}<div class="cart-empty"><span>🛒</span><p>Your cart is empty</p></div>
<div class="cart-total">{{price 0}}</div>
{{else}}{{range .Lines}}<div class="cart-line" data-dish-id="{{.ID}}">
  <h5>{{.Name}}</h5>
  <span class="price">{{price .Price}}</span>
  <button data-action="set-quantity" data-dish-id="{{.ID}}" data-quantity="{{sub .Quantity 1}}">-</button>
  <span class="quantity">{{.Quantity}}</span>
  <button data-action="set-quantity" data-dish-id="{{.ID}}" data-quantity="{{add .Quantity 1}}">+</button>
</div>
{{end}}<div class="cart-total">{{price .Total}}</div>
{{end}}{{end}}

{{define "orders"}}
{{if not .}}<div class="orders-empty"><span>📝</span><h3>No orders yet</h3><p>New orders will show up here</p></div>
{{else}}{{range .}}<div class="order-card{{if eq .Status "delivered"}} delivered{{end}}">
  <h3>Order #{{.ID}}</h3>
  <p class="customer">{{.CustomerName}} • {{.CustomerPhone}}</p>
  <p class="address">{{.Address}}</p>
  <span class="total">{{price .Total}}</span>
  <div class="items">
  {{range .Items}}<div class="item"><span>{{.DishName}} x{{.Quantity}}</span><span>{{price (mul .Price .Quantity)}}</span></div>
  {{end}}</div>
  <div class="status-buttons">
  {{$order := .}}{{range statuses}}<button data-action="advance" data-order-id="{{$order.ID}}" data-status="{{.}}"
    class="status{{if $order.Status.Reached .}} reached{{end}}{{if eq $order.Status .}} current{{end}}"
    title="{{statusText .}}">{{statusIcon .}}</button>
  {{end}}</div>
  <span class="badge">{{statusText .Status}}</span>
</div>
{{end}}{{end}}{{end}}

{{define "restaurantManagement"}}
<div class="add-card" data-action="add-restaurant"><span>➕</span><h3>Add restaurant</h3></div>
{{range .}}{{$r := .}}<div class="manage-card" data-restaurant-id="{{.ID}}">
  <div class="avatar" style="background: {{.BgColor}};">{{with image .}}<img src="{{.}}" alt="{{$r.Name}}">{{else}}{{glyph $r}}{{end}}</div>
  <h3>{{.Name}}</h3>
  <p class="delivery">{{.DeliveryTime}}</p>
  <span class="badge {{if .IsOpen}}open{{else}}closed{{end}}">{{if .IsOpen}}Open{{else}}Closed{{end}}</span>
  <p>{{categoryName .Category}}: {{.Description}}</p>
  <button data-action="edit-restaurant" data-restaurant-id="{{.ID}}">Edit</button>
  <button data-action="delete-restaurant" data-restaurant-id="{{.ID}}">Delete</button>
</div>
{{end}}{{end}}

{{define "dishManagement"}}
{{if not .}}<div class="dishes-empty"><span>🍽️</span><p>Pick a restaurant to see its dishes</p></div>
{{else}}<div class="add-card" data-action="add-dish" data-restaurant-id="{{.ID}}"><span>➕</span><h3>Add dish</h3></div>
{{$r := .}}{{range .Menu}}<div class="manage-card" data-dish-id="{{.ID}}">
  <h3>{{.Name}}</h3>
  <span class="price">{{price .Price}}</span>
  <span class="badge">{{categoryName .Category}}</span>
  <p>{{.Description}}</p>
  <button data-action="edit-dish" data-restaurant-id="{{$r.ID}}" data-dish-id="{{.ID}}">Edit</button>
  <button data-action="delete-dish" data-restaurant-id="{{$r.ID}}" data-dish-id="{{.ID}}">Delete</button>
</div>
{{end}}{{end}}{{end}}

{{define "ownerStatus"}}
<div class="owner-status-card">
  <h3>{{.Name}}</h3>
  <p>Current restaurant status</p>
  <span class="state {{if .IsOpen}}open{{else}}closed{{end}}">{{if .IsOpen}}Open{{else}}Closed{{end}}</span>
  <input type="checkbox" {{if .IsOpen}}checked {{end}}data-action="toggle-open" data-restaurant-id="{{.ID}}">
</div>
{{end}}

{{define "restaurantOptions"}}
<option value="">Choose a restaurant</option>
{{range .}}<option value="{{.ID}}">{{.Name}}</option>
{{end}}{{end}}
`))

func execute(name string, data interface{}) (string, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// RestaurantGrid renders the customer-facing restaurant cards.
func RestaurantGrid(restaurants []domain.Restaurant) (string, error) {
	return execute("restaurantGrid", restaurants)
}

// PopularDishes renders the popular-dish carousel.
func PopularDishes(dishes []domain.PopularDish) (string, error) {
	return execute("popularDishes", dishes)
}

// Menu renders a single restaurant's header and dish list.
func Menu(restaurant domain.Restaurant) (string, error) {
	return execute("menu", restaurant)
}

// CartPanel renders the cart lines and total.
func CartPanel(cart domain.Cart) (string, error) {
	return execute("cart", &cart)
}

// Orders renders the back-office order list with status controls. Every
// stage up to and including the current one is marked reached; exactly the
// current stage carries the current class.
func Orders(orders []domain.Order) (string, error) {
	return execute("orders", orders)
}

// RestaurantManagement renders the admin restaurant list.
func RestaurantManagement(restaurants []domain.Restaurant) (string, error) {
	return execute("restaurantManagement", restaurants)
}

// DishManagement renders the admin dish list for one restaurant. A nil
// restaurant renders the pick-a-restaurant placeholder.
func DishManagement(restaurant *domain.Restaurant) (string, error) {
	return execute("dishManagement", restaurant)
}

// OwnerStatus renders the owner's open/closed toggle card.
func OwnerStatus(restaurant domain.Restaurant) (string, error) {
	return execute("ownerStatus", restaurant)
}

// RestaurantOptions renders the select options for the dish management view.
func RestaurantOptions(restaurants []domain.Restaurant) (string, error) {
	return execute("restaurantOptions", restaurants)
}
