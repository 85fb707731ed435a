package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"souqeats/internal/auth"
	"souqeats/internal/domain"
	"souqeats/internal/render"
	"souqeats/internal/service"
)

const maxUploadBytes = 10 << 20

type Handler struct {
	Catalog  *service.CatalogService
	Carts    *service.CartService
	Orders   *service.OrderService
	Checkout *service.CheckoutService
	Accounts *service.AccountService
	Admin    *service.AdminService
}

func NewHandler(catalog *service.CatalogService, carts *service.CartService, orders *service.OrderService, checkout *service.CheckoutService, accounts *service.AccountService, admin *service.AdminService) *Handler {
	return &Handler{
		Catalog:  catalog,
		Carts:    carts,
		Orders:   orders,
		Checkout: checkout,
		Accounts: accounts,
		Admin:    admin,
	}
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/health", h.healthCheck).Methods("GET")
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")

	r.HandleFunc("/views/restaurants", h.viewRestaurants).Methods("GET")
	r.HandleFunc("/views/popular", h.viewPopularDishes).Methods("GET")
	r.HandleFunc("/views/restaurants/{id}/menu", h.viewMenu).Methods("GET")
	r.HandleFunc("/views/cart", h.viewCart).Methods("GET")
	r.HandleFunc("/views/orders", h.viewOrders).Methods("GET")
	r.HandleFunc("/views/admin/restaurants", h.viewRestaurantManagement).Methods("GET")
	r.HandleFunc("/views/admin/restaurants/options", h.viewRestaurantOptions).Methods("GET")
	r.HandleFunc("/views/admin/restaurants/{id}/dishes", h.viewDishManagement).Methods("GET")
	r.HandleFunc("/views/owner/status", h.viewOwnerStatus).Methods("GET")

	r.HandleFunc("/api/auth/signup", h.signUp).Methods("POST")
	r.HandleFunc("/api/auth/signin", h.signIn).Methods("POST")
	r.HandleFunc("/api/auth/signout", h.signOut).Methods("POST")
	r.HandleFunc("/api/auth/me", h.me).Methods("GET")

	r.HandleFunc("/api/restaurants", h.listRestaurants).Methods("GET")

	r.HandleFunc("/api/cart", h.getCart).Methods("GET")
	r.HandleFunc("/api/cart/items", h.addCartItem).Methods("POST")
	r.HandleFunc("/api/cart/items/{dishId}", h.setCartQuantity).Methods("PUT")

	r.HandleFunc("/api/checkout", h.checkout).Methods("POST")

	r.HandleFunc("/api/orders", h.listOrders).Methods("GET")
	r.HandleFunc("/api/orders/{id}/status", h.advanceOrder).Methods("POST")
	r.HandleFunc("/api/orders/{id}/qrcode", h.getOrderQRCode).Methods("GET")

	r.HandleFunc("/api/admin/restaurants", h.createRestaurant).Methods("POST")
	r.HandleFunc("/api/admin/restaurants/{id}", h.updateRestaurant).Methods("PUT", "POST")
	r.HandleFunc("/api/admin/restaurants/{id}", h.deleteRestaurant).Methods("DELETE")
	r.HandleFunc("/api/admin/restaurants/{id}/open", h.setRestaurantOpen).Methods("POST")
	r.HandleFunc("/api/admin/restaurants/{restaurantId}/dishes", h.createDish).Methods("POST")
	r.HandleFunc("/api/admin/restaurants/{restaurantId}/dishes/{dishId}", h.updateDish).Methods("PUT", "POST")
	r.HandleFunc("/api/admin/restaurants/{restaurantId}/dishes/{dishId}", h.deleteDish).Methods("DELETE")

	r.HandleFunc("/api/owner/restaurants", h.ownedRestaurants).Methods("GET")
}

func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	response := map[string]interface{}{
		"status":    "healthy",
		"service":   "souqeats",
		"timestamp": time.Now().Format(time.RFC3339),
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func writeHTML(w http.ResponseWriter, markup string, err error) {
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(markup))
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrForbidden):
		http.Error(w, err.Error(), http.StatusForbidden)
	case errors.Is(err, domain.ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, domain.ErrInvalidCredentials):
		http.Error(w, err.Error(), http.StatusUnauthorized)
	case errors.Is(err, domain.ErrEmailTaken):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, domain.ErrEmptyCart),
		errors.Is(err, domain.ErrProofRequired),
		errors.Is(err, domain.ErrMissingContact),
		errors.Is(err, domain.ErrStatusNotForward),
		errors.Is(err, domain.ErrUnknownStatus):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) viewRestaurants(w http.ResponseWriter, r *http.Request) {
	category := domain.Category(r.URL.Query().Get("category"))
	query := r.URL.Query().Get("q")
	markup, err := render.RestaurantGrid(h.Catalog.Browse(category, query))
	writeHTML(w, markup, err)
}

func (h *Handler) viewPopularDishes(w http.ResponseWriter, r *http.Request) {
	markup, err := render.PopularDishes(h.Catalog.PopularDishes(6))
	writeHTML(w, markup, err)
}

func (h *Handler) viewMenu(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])
	restaurant, ok := h.Catalog.FindRestaurant(id)
	if !ok {
		http.Error(w, "Restaurant not found", http.StatusNotFound)
		return
	}
	markup, err := render.Menu(restaurant)
	writeHTML(w, markup, err)
}

func (h *Handler) viewCart(w http.ResponseWriter, r *http.Request) {
	cart, err := h.Carts.Get(r.Context(), sessionID(r))
	if err != nil {
		writeError(w, err)
		return
	}
	markup, err := render.CartPanel(cart)
	writeHTML(w, markup, err)
}

func (h *Handler) viewOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.Orders.List(profileFrom(r).Role)
	if err != nil {
		writeError(w, err)
		return
	}
	markup, err := render.Orders(orders)
	writeHTML(w, markup, err)
}

func (h *Handler) viewRestaurantManagement(w http.ResponseWriter, r *http.Request) {
	if !auth.Can(profileFrom(r).Role, auth.ActionViewAdmin) {
		http.Error(w, domain.ErrForbidden.Error(), http.StatusForbidden)
		return
	}
	markup, err := render.RestaurantManagement(h.Catalog.Restaurants())
	writeHTML(w, markup, err)
}

func (h *Handler) viewRestaurantOptions(w http.ResponseWriter, r *http.Request) {
	if !auth.Can(profileFrom(r).Role, auth.ActionViewAdmin) {
		http.Error(w, domain.ErrForbidden.Error(), http.StatusForbidden)
		return
	}
	markup, err := render.RestaurantOptions(h.Catalog.Restaurants())
	writeHTML(w, markup, err)
}

func (h *Handler) viewDishManagement(w http.ResponseWriter, r *http.Request) {
	if !auth.Can(profileFrom(r).Role, auth.ActionViewAdmin) {
		http.Error(w, domain.ErrForbidden.Error(), http.StatusForbidden)
		return
	}

	id, _ := strconv.Atoi(mux.Vars(r)["id"])
	var selected *domain.Restaurant
	if restaurant, ok := h.Catalog.FindRestaurant(id); ok {
		selected = &restaurant
	}
	markup, err := render.DishManagement(selected)
	writeHTML(w, markup, err)
}

func (h *Handler) viewOwnerStatus(w http.ResponseWriter, r *http.Request) {
	profile := profileFrom(r)
	restaurants, err := h.Admin.OwnedRestaurants(profile.Role, profile.UserID)
	if err != nil {
		writeError(w, err)
		return
	}

	var markup strings.Builder
	for _, restaurant := range restaurants {
		card, err := render.OwnerStatus(restaurant)
		if err != nil {
			writeError(w, err)
			return
		}
		markup.WriteString(card)
	}
	writeHTML(w, markup.String(), nil)
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// homeFor picks the landing page for a role after sign-in.
func homeFor(role domain.Role) string {
	switch role {
	case domain.RoleAdmin:
		return "/admin.html"
	case domain.RoleOwner:
		return "/owner.html"
	default:
		return "/"
	}
}

func setTokenCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     tokenCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int((24 * time.Hour).Seconds()),
	})
}

func (h *Handler) signUp(w http.ResponseWriter, r *http.Request) {
	var creds credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if creds.Email == "" || creds.Password == "" {
		http.Error(w, "email and password are required", http.StatusBadRequest)
		return
	}

	profile, token, err := h.Accounts.SignUp(creds.Email, creds.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	setTokenCookie(w, token)
	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"profile":  profile,
		"token":    token,
		"redirect": homeFor(profile.Role),
	})
}

func (h *Handler) signIn(w http.ResponseWriter, r *http.Request) {
	var creds credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	profile, token, err := h.Accounts.SignIn(creds.Email, creds.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	setTokenCookie(w, token)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"profile":  profile,
		"token":    token,
		"redirect": homeFor(profile.Role),
	})
}

func (h *Handler) signOut(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     tokenCookie,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, profileFrom(r))
}

func (h *Handler) listRestaurants(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Catalog.Restaurants())
}

func (h *Handler) getCart(w http.ResponseWriter, r *http.Request) {
	cart, err := h.Carts.Get(r.Context(), sessionID(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cart)
}

func (h *Handler) addCartItem(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		DishID int `json:"dish_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	cart, err := h.Carts.AddItem(r.Context(), sessionID(r), payload.DishID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cart)
}

func (h *Handler) setCartQuantity(w http.ResponseWriter, r *http.Request) {
	dishID, _ := strconv.Atoi(mux.Vars(r)["dishId"])
	var payload struct {
		Quantity int `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	cart, err := h.Carts.SetQuantity(r.Context(), sessionID(r), dishID, payload.Quantity)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cart)
}

func (h *Handler) checkout(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		http.Error(w, "File too large", http.StatusBadRequest)
		return
	}

	req := service.CheckoutRequest{
		Name:          r.FormValue("name"),
		Phone:         r.FormValue("phone"),
		Address:       r.FormValue("address"),
		PaymentMethod: domain.PaymentMethod(r.FormValue("payment_method")),
	}

	if file, header, err := r.FormFile("proof"); err == nil {
		defer file.Close()
		req.Proof = &service.FileUpload{
			Filename:    header.Filename,
			ContentType: header.Header.Get("Content-Type"),
			Body:        file,
		}
	}

	order, err := h.Checkout.Checkout(r.Context(), sessionID(r), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, order)
}

func (h *Handler) listOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.Orders.List(profileFrom(r).Role)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, orders)
}

func (h *Handler) advanceOrder(w http.ResponseWriter, r *http.Request) {
	orderID, _ := strconv.Atoi(mux.Vars(r)["id"])
	var payload struct {
		Status domain.OrderStatus `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	order, err := h.Orders.Advance(r.Context(), profileFrom(r).Role, orderID, payload.Status)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

func (h *Handler) getOrderQRCode(w http.ResponseWriter, r *http.Request) {
	orderID, _ := strconv.Atoi(mux.Vars(r)["id"])
	qrCode, err := h.Orders.GetQRCode(orderID)
	if err != nil {
		writeError(w, err)
		return
	}
	if len(qrCode) == 0 {
		http.Error(w, "QR code not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.WriteHeader(http.StatusOK)
	w.Write(qrCode)
}

// restaurantFromForm reads the multipart fields shared by the create and
// update endpoints. The open flag and ownership are not part of the edit
// form: open/closed moves through the owner toggle and the owner is
// assigned at creation.
func restaurantFromForm(r *http.Request) domain.Restaurant {
	rating, _ := strconv.ParseFloat(r.FormValue("rating"), 64)
	return domain.Restaurant{
		Name:         r.FormValue("name"),
		Logo:         r.FormValue("logo"),
		BgColor:      r.FormValue("bg_color"),
		Description:  r.FormValue("description"),
		Rating:       rating,
		DeliveryTime: r.FormValue("delivery_time"),
		Category:     domain.Category(r.FormValue("category")),
	}
}

func imageFromForm(r *http.Request) *service.FileUpload {
	file, header, err := r.FormFile("image")
	if err != nil {
		return nil
	}
	return &service.FileUpload{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Body:        file,
	}
}

func (h *Handler) createRestaurant(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		http.Error(w, "File too large", http.StatusBadRequest)
		return
	}

	rest := restaurantFromForm(r)
	rest.IsOpen = true
	rest.OwnerID, _ = strconv.Atoi(r.FormValue("owner_id"))
	if rest.Name == "" {
		http.Error(w, "name is required", http.StatusBadRequest)
		return
	}

	image := imageFromForm(r)
	defer image.Close()
	if err := h.Admin.SaveRestaurant(r.Context(), profileFrom(r).Role, &rest, image); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, rest)
}

func (h *Handler) updateRestaurant(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		http.Error(w, "File too large", http.StatusBadRequest)
		return
	}

	rest := restaurantFromForm(r)
	rest.ID, _ = strconv.Atoi(mux.Vars(r)["id"])

	image := imageFromForm(r)
	defer image.Close()
	if err := h.Admin.SaveRestaurant(r.Context(), profileFrom(r).Role, &rest, image); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rest)
}

func (h *Handler) deleteRestaurant(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])
	if err := h.Admin.DeleteRestaurant(profileFrom(r).Role, id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) setRestaurantOpen(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])
	var payload struct {
		Open bool `json:"open"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	profile := profileFrom(r)
	if err := h.Admin.SetOpen(profile.Role, profile.UserID, id, payload.Open); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"is_open": payload.Open})
}

func dishFromForm(r *http.Request) domain.Dish {
	price, _ := strconv.Atoi(r.FormValue("price"))
	return domain.Dish{
		Name:        r.FormValue("name"),
		Description: r.FormValue("description"),
		Price:       price,
		Category:    domain.Category(r.FormValue("category")),
	}
}

func (h *Handler) createDish(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		http.Error(w, "File too large", http.StatusBadRequest)
		return
	}

	dish := dishFromForm(r)
	dish.RestaurantID, _ = strconv.Atoi(mux.Vars(r)["restaurantId"])
	if dish.Name == "" {
		http.Error(w, "name is required", http.StatusBadRequest)
		return
	}

	image := imageFromForm(r)
	defer image.Close()
	if err := h.Admin.SaveDish(r.Context(), profileFrom(r).Role, &dish, image); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, dish)
}

func (h *Handler) updateDish(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		http.Error(w, "File too large", http.StatusBadRequest)
		return
	}

	dish := dishFromForm(r)
	dish.RestaurantID, _ = strconv.Atoi(mux.Vars(r)["restaurantId"])
	dish.ID, _ = strconv.Atoi(mux.Vars(r)["dishId"])

	image := imageFromForm(r)
	defer image.Close()
	if err := h.Admin.SaveDish(r.Context(), profileFrom(r).Role, &dish, image); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dish)
}

func (h *Handler) deleteDish(w http.ResponseWriter, r *http.Request) {
	restaurantID, _ := strconv.Atoi(mux.Vars(r)["restaurantId"])
	dishID, _ := strconv.Atoi(mux.Vars(r)["dishId"])
	if err := h.Admin.DeleteDish(profileFrom(r).Role, restaurantID, dishID); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) ownedRestaurants(w http.ResponseWriter, r *http.Request) {
	profile := profileFrom(r)
	restaurants, err := h.Admin.OwnedRestaurants(profile.Role, profile.UserID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, restaurants)
}
