package tests

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	httpapi "souqeats/internal/api/http"
	"souqeats/internal/auth"
	"souqeats/internal/domain"
	"souqeats/internal/mocks"
	"souqeats/internal/service"
)

type testEnv struct {
	router   http.Handler
	catalog  *mocks.CatalogRepository
	store    *mocks.CartStore
	orders   *mocks.OrderRepository
	accounts *mocks.AccountRepository
	objects  *mocks.ObjectStore
	rests    *mocks.RestaurantRepository
	dishes   *mocks.DishRepository
}

func newTestEnv(t *testing.T) *testEnv {
	env := &testEnv{
		catalog:  mocks.NewCatalogRepository(t),
		store:    mocks.NewCartStore(t),
		orders:   mocks.NewOrderRepository(t),
		accounts: mocks.NewAccountRepository(t),
		objects:  mocks.NewObjectStore(t),
		rests:    mocks.NewRestaurantRepository(t),
		dishes:   mocks.NewDishRepository(t),
	}

	env.catalog.On("ListCatalog").Return(catalogFixture(), nil).Once()

	catalog := service.NewCatalogService(env.catalog)
	assert.NoError(t, catalog.Load())

	carts := service.NewCartService(env.store, catalog)
	orderSvc := service.NewOrderService(env.orders, nil, nil)
	checkout := service.NewCheckoutService(carts, env.orders, env.objects, nil, nil)
	accountSvc := service.NewAccountService(env.accounts)
	admin := service.NewAdminService(env.rests, env.dishes, env.objects, catalog)

	handler := httpapi.NewHandler(catalog, carts, orderSvc, checkout, accountSvc, admin)
	env.router = httpapi.NewRouter(handler, accountSvc)
	return env
}

func (env *testEnv) do(req *http.Request) *httptest.ResponseRecorder {
	recorder := httptest.NewRecorder()
	env.router.ServeHTTP(recorder, req)
	return recorder
}

// staffToken returns a cookie carrying a valid token whose profile lookup
// resolves to the given role.
func (env *testEnv) staffToken(t *testing.T, userID int, role domain.Role) *http.Cookie {
	token, err := auth.GenerateToken(userID, "staff@example.com", role)
	assert.NoError(t, err)
	env.accounts.On("GetProfile", userID).
		Return(&domain.Profile{UserID: userID, Email: "staff@example.com", Role: role}, nil)
	return &http.Cookie{Name: "session_token", Value: token}
}

func TestHandler_viewRestaurants(t *testing.T) {
	env := newTestEnv(t)

	recorder := env.do(httptest.NewRequest("GET", "/views/restaurants", nil))
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, recorder.Body.String(), "Dar El Berka")
	assert.Contains(t, recorder.Body.String(), "Sweet Oasis")

	recorder = env.do(httptest.NewRequest("GET", "/views/restaurants?category=fastfood", nil))
	assert.Contains(t, recorder.Body.String(), "Burger Corner")
	assert.NotContains(t, recorder.Body.String(), "Dar El Berka")

	recorder = env.do(httptest.NewRequest("GET", "/views/restaurants?q=lamb", nil))
	assert.Contains(t, recorder.Body.String(), "Dar El Berka")
	assert.NotContains(t, recorder.Body.String(), "Burger Corner")
}

func TestHandler_viewMenu(t *testing.T) {
	env := newTestEnv(t)

	recorder := env.do(httptest.NewRequest("GET", "/views/restaurants/1/menu", nil))
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "Thieboudienne")
	assert.Contains(t, recorder.Body.String(), "4,500 MRU")

	recorder = env.do(httptest.NewRequest("GET", "/views/restaurants/99/menu", nil))
	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestHandler_cartFlow(t *testing.T) {
	env := newTestEnv(t)
	session := &http.Cookie{Name: "session_id", Value: "sess-1"}

	env.store.On("GetCart", mock.Anything, "sess-1").Return(domain.Cart{}, nil).Once()
	env.store.On("SaveCart", mock.Anything, "sess-1", mock.Anything).Return(nil).Once()

	req := httptest.NewRequest("POST", "/api/cart/items", bytes.NewBufferString(`{"dish_id":10}`))
	req.AddCookie(session)
	recorder := env.do(req)
	assert.Equal(t, http.StatusOK, recorder.Code)

	var cart domain.Cart
	json.NewDecoder(recorder.Body).Decode(&cart)
	assert.Equal(t, 1, cart.Count())

	// Zero quantity removes the line.
	seeded := domain.Cart{}
	seeded.Add(domain.Dish{ID: 10, Name: "Thieboudienne", Price: 4500})
	env.store.On("GetCart", mock.Anything, "sess-1").Return(seeded, nil).Once()
	env.store.On("SaveCart", mock.Anything, "sess-1", mock.Anything).Return(nil).Once()

	req = httptest.NewRequest("PUT", "/api/cart/items/10", bytes.NewBufferString(`{"quantity":0}`))
	req.AddCookie(session)
	recorder = env.do(req)
	assert.Equal(t, http.StatusOK, recorder.Code)

	cart = domain.Cart{Lines: []domain.CartLine{{Quantity: 1}}}
	json.NewDecoder(recorder.Body).Decode(&cart)
	assert.True(t, cart.Empty())
}

func TestHandler_checkoutRequiresProof(t *testing.T) {
	env := newTestEnv(t)
	session := &http.Cookie{Name: "session_id", Value: "sess-1"}

	env.store.On("GetCart", mock.Anything, "sess-1").Return(seededCart(), nil).Once()

	var body bytes.Buffer
	form := multipart.NewWriter(&body)
	form.WriteField("name", "Fatimetou")
	form.WriteField("phone", "22233445")
	form.WriteField("address", "Tevragh Zeina")
	form.WriteField("payment_method", "electronic")
	form.Close()

	req := httptest.NewRequest("POST", "/api/checkout", &body)
	req.Header.Set("Content-Type", form.FormDataContentType())
	req.AddCookie(session)

	recorder := env.do(req)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "payment proof")
}

func TestHandler_checkoutCash(t *testing.T) {
	env := newTestEnv(t)
	session := &http.Cookie{Name: "session_id", Value: "sess-1"}

	env.store.On("GetCart", mock.Anything, "sess-1").Return(seededCart(), nil).Once()
	env.store.On("ClearCart", mock.Anything, "sess-1").Return(nil).Once()
	env.orders.On("CreateCustomerAndOrder", mock.Anything).Run(func(args mock.Arguments) {
		args.Get(0).(*domain.Order).ID = 42
	}).Return(nil).Once()

	var body bytes.Buffer
	form := multipart.NewWriter(&body)
	form.WriteField("name", "Fatimetou")
	form.WriteField("phone", "22233445")
	form.WriteField("address", "Tevragh Zeina")
	form.WriteField("payment_method", "cash")
	form.Close()

	req := httptest.NewRequest("POST", "/api/checkout", &body)
	req.Header.Set("Content-Type", form.FormDataContentType())
	req.AddCookie(session)

	recorder := env.do(req)
	assert.Equal(t, http.StatusCreated, recorder.Code)

	var order domain.Order
	json.NewDecoder(recorder.Body).Decode(&order)
	assert.Equal(t, 42, order.ID)
	assert.Equal(t, domain.StatusPaid, order.Status)
}

func TestHandler_viewOrdersGate(t *testing.T) {
	env := newTestEnv(t)

	// Anonymous callers are customers and get turned away.
	recorder := env.do(httptest.NewRequest("GET", "/views/orders", nil))
	assert.Equal(t, http.StatusForbidden, recorder.Code)

	cookie := env.staffToken(t, 3, domain.RoleOwner)
	env.orders.On("ListOrders").Return([]domain.Order{
		{ID: 1, CustomerName: "Fatimetou", Status: domain.StatusPreparing, Total: 7300},
	}, nil).Once()

	req := httptest.NewRequest("GET", "/views/orders", nil)
	req.AddCookie(cookie)
	recorder = env.do(req)
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "Order #1")
}

func TestHandler_advanceOrder(t *testing.T) {
	env := newTestEnv(t)
	cookie := env.staffToken(t, 3, domain.RoleOwner)

	env.orders.On("GetOrder", 1).Return(&domain.Order{ID: 1, Status: domain.StatusPaid}, nil).Once()
	env.orders.On("UpdateOrderStatus", 1, domain.StatusReady).Return(nil).Once()

	req := httptest.NewRequest("POST", "/api/orders/1/status", bytes.NewBufferString(`{"status":"ready"}`))
	req.AddCookie(cookie)
	recorder := env.do(req)
	assert.Equal(t, http.StatusOK, recorder.Code)

	// Backward move is rejected.
	env.orders.On("GetOrder", 1).Return(&domain.Order{ID: 1, Status: domain.StatusReady}, nil).Once()

	req = httptest.NewRequest("POST", "/api/orders/1/status", bytes.NewBufferString(`{"status":"paid"}`))
	req.AddCookie(cookie)
	recorder = env.do(req)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)

	// Anonymous callers cannot advance anything.
	req = httptest.NewRequest("POST", "/api/orders/1/status", bytes.NewBufferString(`{"status":"ready"}`))
	recorder = env.do(req)
	assert.Equal(t, http.StatusForbidden, recorder.Code)
}

func TestHandler_adminGate(t *testing.T) {
	env := newTestEnv(t)

	// Owners can see the back office but not the admin views.
	cookie := env.staffToken(t, 3, domain.RoleOwner)
	for _, path := range []string{
		"/views/admin/restaurants",
		"/views/admin/restaurants/options",
		"/views/admin/restaurants/1/dishes",
	} {
		req := httptest.NewRequest("GET", path, nil)
		req.AddCookie(cookie)
		recorder := env.do(req)
		assert.Equal(t, http.StatusForbidden, recorder.Code, path)
	}

	admin := env.staffToken(t, 1, domain.RoleAdmin)
	req := httptest.NewRequest("GET", "/views/admin/restaurants/options", nil)
	req.AddCookie(admin)
	recorder := env.do(req)
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "Dar El Berka")
}

func TestHandler_updateRestaurantKeepsOpenStateAndOwner(t *testing.T) {
	env := newTestEnv(t)
	cookie := env.staffToken(t, 1, domain.RoleAdmin)

	// Only UpdateRestaurant may fire; an edit that omits is_open must not
	// reopen a closed restaurant or reassign its owner, so any
	// SetRestaurantOpen call here fails the test.
	env.rests.On("UpdateRestaurant", mock.MatchedBy(func(rest *domain.Restaurant) bool {
		return rest.ID == 3 && rest.Name == "Sweet Oasis"
	})).Return(nil).Once()
	env.catalog.On("ListCatalog").Return(catalogFixture(), nil).Once()

	var body bytes.Buffer
	form := multipart.NewWriter(&body)
	form.WriteField("name", "Sweet Oasis")
	form.WriteField("category", "desserts")
	form.Close()

	req := httptest.NewRequest("PUT", "/api/admin/restaurants/3", &body)
	req.Header.Set("Content-Type", form.FormDataContentType())
	req.AddCookie(cookie)

	recorder := env.do(req)
	assert.Equal(t, http.StatusOK, recorder.Code)
}

func TestHandler_createRestaurant(t *testing.T) {
	env := newTestEnv(t)
	cookie := env.staffToken(t, 1, domain.RoleAdmin)

	env.rests.On("CreateRestaurant", mock.MatchedBy(func(rest *domain.Restaurant) bool {
		return rest.Name == "Chez Mariem" && rest.Category == domain.CategoryTraditional
	})).Return(nil).Once()
	env.catalog.On("ListCatalog").Return(catalogFixture(), nil).Once()

	var body bytes.Buffer
	form := multipart.NewWriter(&body)
	form.WriteField("name", "Chez Mariem")
	form.WriteField("category", "traditional")
	form.WriteField("rating", "4.5")
	form.WriteField("delivery_time", "20-30 min")
	form.Close()

	req := httptest.NewRequest("POST", "/api/admin/restaurants", &body)
	req.Header.Set("Content-Type", form.FormDataContentType())
	req.AddCookie(cookie)

	recorder := env.do(req)
	assert.Equal(t, http.StatusCreated, recorder.Code)
}

func TestHandler_createRestaurantForbiddenForOwner(t *testing.T) {
	env := newTestEnv(t)
	cookie := env.staffToken(t, 3, domain.RoleOwner)

	var body bytes.Buffer
	form := multipart.NewWriter(&body)
	form.WriteField("name", "Chez Mariem")
	form.Close()

	req := httptest.NewRequest("POST", "/api/admin/restaurants", &body)
	req.Header.Set("Content-Type", form.FormDataContentType())
	req.AddCookie(cookie)

	recorder := env.do(req)
	assert.Equal(t, http.StatusForbidden, recorder.Code)
}

func TestHandler_signIn(t *testing.T) {
	env := newTestEnv(t)

	hash, err := auth.HashPassword("s3cret")
	assert.NoError(t, err)
	env.accounts.On("GetAccountByEmail", "admin@example.com").
		Return(&domain.Account{ID: 1, Email: "admin@example.com", PasswordHash: hash, Role: domain.RoleAdmin}, nil).Once()

	req := httptest.NewRequest("POST", "/api/auth/signin", bytes.NewBufferString(`{"email":"admin@example.com","password":"s3cret"}`))
	recorder := env.do(req)
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"redirect":"/admin.html"`)

	cookies := recorder.Result().Cookies()
	found := false
	for _, cookie := range cookies {
		if cookie.Name == "session_token" && cookie.Value != "" {
			found = true
		}
	}
	assert.True(t, found, "sign-in must set the session token cookie")
}

func TestHandler_signInWrongPassword(t *testing.T) {
	env := newTestEnv(t)

	hash, err := auth.HashPassword("s3cret")
	assert.NoError(t, err)
	env.accounts.On("GetAccountByEmail", "admin@example.com").
		Return(&domain.Account{ID: 1, PasswordHash: hash}, nil).Once()

	req := httptest.NewRequest("POST", "/api/auth/signin", bytes.NewBufferString(`{"email":"admin@example.com","password":"wrong"}`))
	recorder := env.do(req)
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestHandler_health(t *testing.T) {
	env := newTestEnv(t)

	recorder := env.do(httptest.NewRequest("GET", "/health", nil))
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"status":"healthy"`)
}
