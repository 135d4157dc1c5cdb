package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"star-burger/internal/domain"
	"star-burger/internal/service"

	"github.com/gorilla/mux"
)

type Handler struct {
	Orders  service.OrderServiceInterface
	Catalog service.CatalogServiceInterface
}

func NewHandler(orders service.OrderServiceInterface, catalog service.CatalogServiceInterface) *Handler {
	return &Handler{Orders: orders, Catalog: catalog}
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/health", h.healthCheck).Methods("GET")
	r.HandleFunc("/api/banners", h.getBanners).Methods("GET")

	r.HandleFunc("/api/products", h.getProducts).Methods("GET")
	r.HandleFunc("/api/products", h.createProduct).Methods("POST")

	r.HandleFunc("/api/order", h.registerOrder).Methods("POST")
	r.HandleFunc("/api/orders", h.getOrders).Methods("GET")
	r.HandleFunc("/api/orders/{id}", h.getOrder).Methods("GET")
	r.HandleFunc("/api/orders/{id}/qrcode", h.getOrderQRCode).Methods("GET")

	r.HandleFunc("/api/restaurants", h.createRestaurant).Methods("POST")
	r.HandleFunc("/api/restaurants", h.getRestaurants).Methods("GET")
	r.HandleFunc("/api/restaurants/{id}", h.getRestaurant).Methods("GET")
	r.HandleFunc("/api/restaurants/{id}", h.updateRestaurant).Methods("PUT")
	r.HandleFunc("/api/restaurants/{id}", h.deleteRestaurant).Methods("DELETE")
	r.HandleFunc("/api/restaurants/{id}/menu", h.setMenuItem).Methods("PUT")
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, err error) {
	var validationErr *domain.ValidationError
	switch {
	case errors.As(err, &validationErr):
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{"error": validationErr})
	case errors.Is(err, service.ErrProductNotFound),
		errors.Is(err, service.ErrRestaurantNotFound),
		errors.Is(err, service.ErrOrderNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
	default:
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
}

func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"service":   "star-burger",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

// TODO: serve banners from the database once the admin can edit them.
func (h *Handler) getBanners(w http.ResponseWriter, r *http.Request) {
	banners := []map[string]string{
		{"title": "Burger", "src": "/static/burger.jpg", "text": "Tasty Burger at your door step"},
		{"title": "Spices", "src": "/static/food.jpg", "text": "All Cuisines"},
		{"title": "New York", "src": "/static/tasty.jpg", "text": "Food is incomplete without a tasty dessert"},
	}
	writeJSON(w, http.StatusOK, banners)
}

func (h *Handler) getProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.Catalog.ListAvailableProducts()
	if err != nil {
		writeError(w, err)
		return
	}
	if products == nil {
		products = []domain.Product{}
	}
	writeJSON(w, http.StatusOK, products)
}

func (h *Handler) createProduct(w http.ResponseWriter, r *http.Request) {
	var product domain.Product
	if err := json.NewDecoder(r.Body).Decode(&product); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	if err := h.Catalog.CreateProduct(&product); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, product)
}

func (h *Handler) registerOrder(w http.ResponseWriter, r *http.Request) {
	var req service.RegisterOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON payload"})
		return
	}

	order, err := h.Orders.Register(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, order)
}

func (h *Handler) getOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.Orders.ListWithRestaurants(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, orders)
}

func (h *Handler) getOrder(w http.ResponseWriter, r *http.Request) {
	orderID, _ := strconv.Atoi(mux.Vars(r)["id"])
	order, err := h.Orders.Get(orderID)
	if err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "Order not found"})
		return
	}
	writeJSON(w, http.StatusOK, order)
}

func (h *Handler) getOrderQRCode(w http.ResponseWriter, r *http.Request) {
	orderID, _ := strconv.Atoi(mux.Vars(r)["id"])
	qr, err := h.Orders.QRCode(orderID)
	if err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "Order not found"})
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.WriteHeader(http.StatusOK)
	w.Write(qr)
}

func (h *Handler) createRestaurant(w http.ResponseWriter, r *http.Request) {
	var restaurant domain.Restaurant
	if err := json.NewDecoder(r.Body).Decode(&restaurant); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	if err := h.Catalog.CreateRestaurant(r.Context(), &restaurant); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, restaurant)
}

func (h *Handler) getRestaurants(w http.ResponseWriter, r *http.Request) {
	restaurants, err := h.Catalog.ListRestaurants()
	if err != nil {
		writeError(w, err)
		return
	}
	if restaurants == nil {
		restaurants = []domain.Restaurant{}
	}
	writeJSON(w, http.StatusOK, restaurants)
}

func (h *Handler) getRestaurant(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])
	restaurant, err := h.Catalog.GetRestaurant(id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, restaurant)
}

func (h *Handler) updateRestaurant(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	var restaurant domain.Restaurant
	if err := json.NewDecoder(r.Body).Decode(&restaurant); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	restaurant.ID = id

	if err := h.Catalog.UpdateRestaurant(r.Context(), &restaurant); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, restaurant)
}

func (h *Handler) deleteRestaurant(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])
	if err := h.Catalog.DeleteRestaurant(id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) setMenuItem(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	var payload struct {
		Product      int  `json:"product"`
		Availability bool `json:"availability"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	if err := h.Catalog.SetMenuItem(id, payload.Product, payload.Availability); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
