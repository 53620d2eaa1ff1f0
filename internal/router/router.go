package router

import (
	"net/http"
	"strings"

	"shopcart/internal/handler"
	"shopcart/internal/middleware"

	"github.com/rs/zerolog"
)

// New creates a new HTTP router with all routes and middleware configured.
func New(
	productHandler *handler.ProductHandler,
	cartHandler *handler.CartHandler,
	orderHandler *handler.OrderHandler,
	apiKey string,
	logger zerolog.Logger,
) http.Handler {
	mux := http.NewServeMux()

	// Health check endpoint (no authentication required)
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy"}`))
	})

	// Product handler function
	productRouteHandler := func(w http.ResponseWriter, r *http.Request) {
		// Check if this is a request for a specific product ID
		if r.URL.Path != "/api/products" && r.URL.Path != "/api/products/" {
			productHandler.GetByID(w, r)
			return
		}
		productHandler.GetAll(w, r)
	}

	// Register product routes (both with and without trailing slash)
	mux.HandleFunc("/api/products", productRouteHandler)
	mux.HandleFunc("/api/products/", productRouteHandler)

	// Cart handler function
	cartRouteHandler := func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/carts" || r.URL.Path == "/api/carts/" {
			cartHandler.Create(w, r)
			return
		}

		// Item sub-resource: /api/carts/{id}/items[/{productId}]
		if strings.Contains(r.URL.Path, "/items") {
			switch {
			case r.Method == http.MethodPost:
				cartHandler.AddItem(w, r)
			case r.Method == http.MethodPut:
				cartHandler.UpdateItem(w, r)
			case r.Method == http.MethodDelete:
				cartHandler.RemoveItem(w, r)
			case r.Method == http.MethodGet:
				cartHandler.GetItem(w, r)
			default:
				http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			}
			return
		}

		// Derived total: /api/carts/{id}/total
		if strings.HasSuffix(r.URL.Path, "/total") {
			cartHandler.GetTotal(w, r)
			return
		}

		// Cart aggregate: /api/carts/{id}
		switch r.Method {
		case http.MethodGet:
			cartHandler.Get(w, r)
		case http.MethodDelete:
			cartHandler.Clear(w, r)
		default:
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		}
	}

	// Register cart routes (both with and without trailing slash)
	mux.HandleFunc("/api/carts", cartRouteHandler)
	mux.HandleFunc("/api/carts/", cartRouteHandler)

	// Order handler function
	orderRouteHandler := func(w http.ResponseWriter, r *http.Request) {
		// Route based on method and path
		if r.Method == http.MethodPost && (r.URL.Path == "/api/orders" || r.URL.Path == "/api/orders/") {
			orderHandler.Place(w, r)
			return
		}

		// Listing by user: /api/orders?userId=N
		if r.Method == http.MethodGet && (r.URL.Path == "/api/orders" || r.URL.Path == "/api/orders/") {
			orderHandler.GetByUser(w, r)
			return
		}

		// Check if this is a request for a specific order ID
		if strings.HasPrefix(r.URL.Path, "/api/orders/") && r.URL.Path != "/api/orders/" {
			orderHandler.GetByID(w, r)
			return
		}

		http.Error(w, "not found", http.StatusNotFound)
	}

	// Register order routes (both with and without trailing slash)
	mux.HandleFunc("/api/orders", orderRouteHandler)
	mux.HandleFunc("/api/orders/", orderRouteHandler)

	// Apply middleware in order: Recovery -> Logging -> CORS -> APIKeyAuth
	var handler http.Handler = mux
	handler = middleware.APIKeyAuth(apiKey, logger)(handler)
	handler = middleware.CORS(handler)
	handler = middleware.Logging(logger)(handler)
	handler = middleware.Recovery(logger)(handler)

	return handler
}
