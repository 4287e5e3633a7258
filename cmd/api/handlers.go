package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"restaurantdb/pkg/customer"
	"restaurantdb/pkg/docstore"
	"restaurantdb/pkg/events"
	"restaurantdb/pkg/feedback"
	"restaurantdb/pkg/logger"
	"restaurantdb/pkg/menu"
	"restaurantdb/pkg/order"
	"restaurantdb/pkg/otel"
	"restaurantdb/pkg/session"
)

type ctxKey int

const userKey ctxKey = 1

type api struct {
	menu      *menu.Store
	customers *customer.Store
	orders    *order.Store
	feedback  *feedback.Store
	sessions  *session.Store
	events    events.Publisher
	log       *logger.Logger
	tracer    trace.Tracer

	corsOrigins []string
}

func (a *api) routes() http.Handler {
	r := mux.NewRouter()
	r.Use(a.traceMiddleware)
	r.HandleFunc("/health", a.healthHandler).Methods(http.MethodGet)
	r.HandleFunc("/login", a.loginHandler).Methods(http.MethodPost)

	res := r.NewRoute().Subrouter()
	res.Use(a.authMiddleware)

	res.HandleFunc("/menu-items", a.createMenuItemHandler).Methods(http.MethodPost)
	res.HandleFunc("/menu-items/{name}", a.getMenuItemHandler).Methods(http.MethodGet)
	res.HandleFunc("/menu-items/{name}", a.updateMenuItemHandler).Methods(http.MethodPatch)
	res.HandleFunc("/menu-items/{name}", a.deleteMenuItemHandler).Methods(http.MethodDelete)

	res.HandleFunc("/customers", a.createCustomerHandler).Methods(http.MethodPost)
	res.HandleFunc("/customers/{id}", a.getCustomerHandler).Methods(http.MethodGet)
	res.HandleFunc("/customers/{id}", a.updateCustomerHandler).Methods(http.MethodPatch)
	res.HandleFunc("/customers/{id}", a.deleteCustomerHandler).Methods(http.MethodDelete)

	res.HandleFunc("/orders", a.createOrderHandler).Methods(http.MethodPost)
	res.HandleFunc("/orders/{id}", a.getOrderHandler).Methods(http.MethodGet)
	res.HandleFunc("/orders/{id}", a.updateOrderHandler).Methods(http.MethodPatch)
	res.HandleFunc("/orders/{id}", a.deleteOrderHandler).Methods(http.MethodDelete)

	res.HandleFunc("/feedback", a.createFeedbackHandler).Methods(http.MethodPost)
	res.HandleFunc("/feedback/{id}", a.getFeedbackHandler).Methods(http.MethodGet)
	res.HandleFunc("/feedback/{id}", a.deleteFeedbackHandler).Methods(http.MethodDelete)

	r.PathPrefix("/swagger/").Handler(httpSwagger.WrapHandler)

	return cors.New(cors.Options{
		AllowedOrigins:   a.corsOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodHead},
		AllowedHeaders:   []string{"Content-Type"},
		AllowCredentials: true,
	}).Handler(r)
}

// healthHandler reports that the service is up.
// @Summary Health check
// @Produce json
// @Success 200
// @Router /health [get]
func (a *api) healthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "service": serviceName})
}

// loginHandler handles user login and session creation.
// @Summary Login
// @Description Authenticates user and sets session cookie
// @Accept json
// @Produce json
// @Param creds body loginRequest true "Credentials"
// @Success 200
// @Router /login [post]
func (a *api) loginHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "loginHandler")
	defer span.End()

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Username == "" {
		http.Error(w, "invalid credentials", http.StatusBadRequest)
		return
	}
	sid, err := a.sessions.Create(ctx, req.Username)
	if err != nil {
		a.log.Error(ctx, "create session", "error", err)
		http.Error(w, "session error", http.StatusInternalServerError)
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     "session_id",
		Value:    sid,
		Path:     "/",
		Expires:  time.Now().Add(a.sessions.TTL()),
		HttpOnly: true,
	})
	w.WriteHeader(http.StatusOK)
}

// authMiddleware ensures a valid session exists.
func (a *api) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c, err := r.Cookie("session_id")
		if err != nil {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		user, err := a.sessions.Lookup(r.Context(), c.Value)
		if err != nil {
			if !errors.Is(err, session.ErrNoSession) {
				a.log.Error(r.Context(), "lookup session", "error", err)
			}
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		ctx := context.WithValue(r.Context(), userKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (a *api) traceMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := otel.InjectTracing(r.Context(), a.tracer)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// createMenuItemHandler adds a menu item.
// @Summary Create menu item
// @Accept json
// @Produce json
// @Param item body menu.MenuItem true "Menu item"
// @Success 201 {object} menu.MenuItem
// @Security ApiKeyAuth
// @Router /menu-items [post]
func (a *api) createMenuItemHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "createMenuItemHandler")
	defer span.End()

	var item menu.MenuItem
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := a.menu.Add(ctx, item); err != nil {
		a.fail(ctx, w, "add menu item", err)
		return
	}
	writeJSON(w, http.StatusCreated, item.Normalized())
}

// getMenuItemHandler retrieves a menu item by name.
// @Summary Get menu item
// @Produce json
// @Param name path string true "Menu item name"
// @Success 200 {object} menu.MenuItem
// @Failure 404
// @Security ApiKeyAuth
// @Router /menu-items/{name} [get]
func (a *api) getMenuItemHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "getMenuItemHandler")
	defer span.End()

	name := mux.Vars(r)["name"]
	item, found, err := a.menu.View(ctx, name)
	if err != nil {
		a.fail(ctx, w, "view menu item", err)
		return
	}
	if !found {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

// updateMenuItemHandler changes the supplied fields of a menu item.
// @Summary Update menu item
// @Accept json
// @Param name path string true "Menu item name"
// @Param item body menu.Update true "Fields to change"
// @Success 204
// @Failure 404
// @Security ApiKeyAuth
// @Router /menu-items/{name} [patch]
func (a *api) updateMenuItemHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "updateMenuItemHandler")
	defer span.End()

	name := mux.Vars(r)["name"]
	var u menu.Update
	if err := json.NewDecoder(r.Body).Decode(&u); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	matched, err := a.menu.Update(ctx, name, u)
	if err != nil {
		a.fail(ctx, w, "update menu item", err)
		return
	}
	if !matched {
		http.NotFound(w, r)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// deleteMenuItemHandler removes a menu item.
// @Summary Delete menu item
// @Param name path string true "Menu item name"
// @Success 204
// @Security ApiKeyAuth
// @Router /menu-items/{name} [delete]
func (a *api) deleteMenuItemHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "deleteMenuItemHandler")
	defer span.End()

	name := mux.Vars(r)["name"]
	if _, err := a.menu.Delete(ctx, name); err != nil {
		a.fail(ctx, w, "delete menu item", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// createCustomerHandler registers a customer.
// @Summary Create customer
// @Accept json
// @Produce json
// @Param customer body customerRequest true "Customer"
// @Success 201 {object} customer.Customer
// @Security ApiKeyAuth
// @Router /customers [post]
func (a *api) createCustomerHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "createCustomerHandler")
	defer span.End()

	var req customerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	c, err := a.customers.Add(ctx, req.Name, req.PhoneNumber, req.Email)
	if err != nil {
		a.fail(ctx, w, "add customer", err)
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

// getCustomerHandler retrieves a customer by ID.
// @Summary Get customer
// @Produce json
// @Param id path string true "Customer ID"
// @Success 200 {object} customer.Customer
// @Failure 404
// @Security ApiKeyAuth
// @Router /customers/{id} [get]
func (a *api) getCustomerHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "getCustomerHandler")
	defer span.End()

	id := mux.Vars(r)["id"]
	c, found, err := a.customers.View(ctx, id)
	if err != nil {
		a.fail(ctx, w, "view customer", err)
		return
	}
	if !found {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

// updateCustomerHandler changes the supplied fields of a customer.
// @Summary Update customer
// @Accept json
// @Param id path string true "Customer ID"
// @Param customer body customer.Update true "Fields to change"
// @Success 204
// @Failure 404
// @Security ApiKeyAuth
// @Router /customers/{id} [patch]
func (a *api) updateCustomerHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "updateCustomerHandler")
	defer span.End()

	id := mux.Vars(r)["id"]
	var u customer.Update
	if err := json.NewDecoder(r.Body).Decode(&u); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	matched, err := a.customers.Update(ctx, id, u)
	if err != nil {
		a.fail(ctx, w, "update customer", err)
		return
	}
	if !matched {
		http.NotFound(w, r)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// deleteCustomerHandler removes a customer. Their orders and feedback are
// left in place.
// @Summary Delete customer
// @Param id path string true "Customer ID"
// @Success 204
// @Security ApiKeyAuth
// @Router /customers/{id} [delete]
func (a *api) deleteCustomerHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "deleteCustomerHandler")
	defer span.End()

	id := mux.Vars(r)["id"]
	if _, err := a.customers.Delete(ctx, id); err != nil {
		a.fail(ctx, w, "delete customer", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// createOrderHandler places a new order.
// @Summary Create order
// @Accept json
// @Produce json
// @Param order body orderRequest true "Order"
// @Success 201 {object} order.Order
// @Security ApiKeyAuth
// @Router /orders [post]
func (a *api) createOrderHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "createOrderHandler")
	defer span.End()

	var req orderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	o, err := a.orders.Add(ctx, req.CustomerID, req.Items)
	if err != nil {
		a.fail(ctx, w, "add order", err)
		return
	}
	a.publish(ctx, events.Event{
		Type:       events.OrderCreated,
		ID:         o.ID,
		CustomerID: o.CustomerID,
		Status:     string(o.Status),
		Timestamp:  o.Date,
	})
	writeJSON(w, http.StatusCreated, o)
}

// getOrderHandler retrieves an order by ID.
// @Summary Get order
// @Produce json
// @Param id path string true "Order ID"
// @Success 200 {object} order.Order
// @Failure 404
// @Security ApiKeyAuth
// @Router /orders/{id} [get]
func (a *api) getOrderHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "getOrderHandler")
	defer span.End()

	id := mux.Vars(r)["id"]
	o, found, err := a.orders.View(ctx, id)
	if err != nil {
		a.fail(ctx, w, "view order", err)
		return
	}
	if !found {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, o)
}

// updateOrderHandler changes the status or items of an order.
// @Summary Update order
// @Accept json
// @Param id path string true "Order ID"
// @Param order body order.Update true "Fields to change"
// @Success 204
// @Failure 404
// @Security ApiKeyAuth
// @Router /orders/{id} [patch]
func (a *api) updateOrderHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "updateOrderHandler")
	defer span.End()

	id := mux.Vars(r)["id"]
	var u order.Update
	if err := json.NewDecoder(r.Body).Decode(&u); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	matched, err := a.orders.Update(ctx, id, u)
	if err != nil {
		a.fail(ctx, w, "update order", err)
		return
	}
	if !matched {
		http.NotFound(w, r)
		return
	}
	if status, ok := u.Status.Get(); ok {
		e := events.Event{Type: events.OrderStatusChanged, ID: id, Status: string(status), Timestamp: time.Now().UTC()}
		if o, found, err := a.orders.View(ctx, id); err == nil && found {
			e.CustomerID = o.CustomerID
		}
		a.publish(ctx, e)
	}
	w.WriteHeader(http.StatusNoContent)
}

// deleteOrderHandler removes an order.
// @Summary Delete order
// @Param id path string true "Order ID"
// @Success 204
// @Security ApiKeyAuth
// @Router /orders/{id} [delete]
func (a *api) deleteOrderHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "deleteOrderHandler")
	defer span.End()

	id := mux.Vars(r)["id"]
	if _, err := a.orders.Delete(ctx, id); err != nil {
		a.fail(ctx, w, "delete order", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// createFeedbackHandler records customer feedback.
// @Summary Create feedback
// @Accept json
// @Produce json
// @Param feedback body feedbackRequest true "Feedback"
// @Success 201 {object} feedback.Feedback
// @Security ApiKeyAuth
// @Router /feedback [post]
func (a *api) createFeedbackHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "createFeedbackHandler")
	defer span.End()

	var req feedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	f, err := a.feedback.Add(ctx, req.CustomerID, req.Rating, req.Comment)
	if err != nil {
		a.fail(ctx, w, "add feedback", err)
		return
	}
	if !f.InExpectedRange() {
		a.log.Warn(ctx, "rating outside expected range", "feedback_id", f.ID, "rating", f.Rating)
	}
	a.publish(ctx, events.Event{
		Type:       events.FeedbackCreated,
		ID:         f.ID,
		CustomerID: f.CustomerID,
		Rating:     &f.Rating,
		Timestamp:  f.Date,
	})
	writeJSON(w, http.StatusCreated, f)
}

// getFeedbackHandler retrieves feedback by ID.
// @Summary Get feedback
// @Produce json
// @Param id path string true "Feedback ID"
// @Success 200 {object} feedback.Feedback
// @Failure 404
// @Security ApiKeyAuth
// @Router /feedback/{id} [get]
func (a *api) getFeedbackHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "getFeedbackHandler")
	defer span.End()

	id := mux.Vars(r)["id"]
	f, found, err := a.feedback.View(ctx, id)
	if err != nil {
		a.fail(ctx, w, "view feedback", err)
		return
	}
	if !found {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, f)
}

// deleteFeedbackHandler removes feedback.
// @Summary Delete feedback
// @Param id path string true "Feedback ID"
// @Success 204
// @Security ApiKeyAuth
// @Router /feedback/{id} [delete]
func (a *api) deleteFeedbackHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "deleteFeedbackHandler")
	defer span.End()

	id := mux.Vars(r)["id"]
	if _, err := a.feedback.Delete(ctx, id); err != nil {
		a.fail(ctx, w, "delete feedback", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// publish sends e and logs failures. Store writes are never rolled back
// because of a lost event.
func (a *api) publish(ctx context.Context, e events.Event) {
	ctx, span := otel.AddSpan(ctx, "publish", attribute.String("event.type", e.Type))
	defer span.End()

	if err := a.events.Publish(ctx, e); err != nil {
		a.log.Warn(ctx, "publish event", "type", e.Type, "id", e.ID, "error", err)
	}
}

// fail maps err to a status code and writes it.
func (a *api) fail(ctx context.Context, w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, menu.ErrInvalid),
		errors.Is(err, customer.ErrInvalid),
		errors.Is(err, order.ErrInvalid),
		errors.Is(err, feedback.ErrInvalid):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, docstore.ErrUnavailable):
		a.log.Error(ctx, op, "error", err)
		http.Error(w, "store unavailable", http.StatusServiceUnavailable)
	default:
		a.log.Error(ctx, op, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// loginRequest represents login credentials.
type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// customerRequest is the body of a customer registration.
type customerRequest struct {
	Name        string `json:"name"`
	PhoneNumber string `json:"phone_number"`
	Email       string `json:"email"`
}

// orderRequest is the body of a new order.
type orderRequest struct {
	CustomerID string       `json:"customer_id"`
	Items      []order.Item `json:"order_items"`
}

// feedbackRequest is the body of new feedback.
type feedbackRequest struct {
	CustomerID string  `json:"customer_id"`
	Rating     float64 `json:"rating"`
	Comment    string  `json:"comment"`
}
