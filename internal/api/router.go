package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-RentalService/internal/api/handlers/availability"
	"github.com/m04kA/SMC-RentalService/internal/api/handlers/cancel_booking"
	"github.com/m04kA/SMC-RentalService/internal/api/handlers/create_booking"
	"github.com/m04kA/SMC-RentalService/internal/api/handlers/get_booking"
	"github.com/m04kA/SMC-RentalService/internal/api/handlers/get_resource_bookings"
	"github.com/m04kA/SMC-RentalService/internal/api/handlers/get_user_bookings"
	"github.com/m04kA/SMC-RentalService/internal/api/handlers/health"
	"github.com/m04kA/SMC-RentalService/internal/api/handlers/insurance"
	"github.com/m04kA/SMC-RentalService/internal/api/handlers/renters"
	"github.com/m04kA/SMC-RentalService/internal/api/handlers/reschedule_booking"
	"github.com/m04kA/SMC-RentalService/internal/api/handlers/resources"
	"github.com/m04kA/SMC-RentalService/internal/api/handlers/update_booking_status"
	"github.com/m04kA/SMC-RentalService/internal/api/middleware"
)

// Handlers все HTTP обработчики сервиса
type Handlers struct {
	Health              *health.Handler
	Renters             *renters.Handler
	Resources           *resources.Handler
	Availability        *availability.Handler
	CreateBooking       *create_booking.Handler
	GetBooking          *get_booking.Handler
	GetUserBookings     *get_user_bookings.Handler
	RescheduleBooking   *reschedule_booking.Handler
	UpdateBookingStatus *update_booking_status.Handler
	CancelBooking       *cancel_booking.Handler
	GetResourceBookings *get_resource_bookings.Handler
	Insurance           *insurance.Handler
}

// Options необязательные части роутера
type Options struct {
	Metrics        middleware.HTTPMetrics // nil отключает HTTP метрики
	MetricsPath    string
	MetricsHandler http.Handler
	Logger         middleware.Logger // nil отключает лог запросов
}

// NewRouter собирает маршруты /api/v1
func NewRouter(h Handlers, opts Options) *mux.Router {
	r := mux.NewRouter()
	r.Use(middleware.RequestID)

	if opts.Metrics != nil {
		r.Use(middleware.MetricsMiddleware(opts.Metrics))
	}
	if opts.Logger != nil {
		r.Use(middleware.Logging(opts.Logger))
	}

	// Служебные маршруты без аутентификации
	if opts.MetricsHandler != nil && opts.MetricsPath != "" {
		r.Handle(opts.MetricsPath, opts.MetricsHandler).Methods(http.MethodGet)
	}
	r.HandleFunc("/health", h.Health.Handle).Methods(http.MethodGet)

	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	api.HandleFunc("/resources", h.Resources.List).Methods(http.MethodGet)
	// /resources/available регистрируется раньше /resources/{resourceId}
	api.HandleFunc("/resources/available", h.Resources.ListAvailable).Methods(http.MethodGet)
	api.HandleFunc("/resources/{resourceId:[0-9]+}", h.Resources.Get).Methods(http.MethodGet)
	api.HandleFunc("/resources/{resourceId:[0-9]+}/availability", h.Availability.List).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Профиль арендатора ---
	protected.HandleFunc("/renters/me", h.Renters.GetMine).Methods(http.MethodGet)
	protected.HandleFunc("/renters/me", h.Renters.Create).Methods(http.MethodPost)
	protected.HandleFunc("/renters/me", h.Renters.UpdateDocuments).Methods(http.MethodPut)
	protected.HandleFunc("/renters/{userId}/verify", h.Renters.Verify).Methods(http.MethodPost)

	// --- Ресурсы ---
	protected.HandleFunc("/resources", h.Resources.Create).Methods(http.MethodPost)
	protected.HandleFunc("/resources/{resourceId:[0-9]+}", h.Resources.Update).Methods(http.MethodPut)
	protected.HandleFunc("/resources/{resourceId:[0-9]+}", h.Resources.Deactivate).Methods(http.MethodDelete)
	protected.HandleFunc("/resources/{resourceId:[0-9]+}/availability", h.Availability.Add).Methods(http.MethodPost)
	protected.HandleFunc("/resources/{resourceId:[0-9]+}/bookings", h.GetResourceBookings.Handle).Methods(http.MethodGet)

	// --- Бронирования ---
	protected.HandleFunc("/bookings", h.CreateBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings", h.GetUserBookings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}", h.GetBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}", h.RescheduleBooking.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/bookings/{bookingId}", h.CancelBooking.Handle).Methods(http.MethodDelete)
	protected.HandleFunc("/bookings/{bookingId}/status", h.UpdateBookingStatus.Handle).Methods(http.MethodPatch)

	// --- Страховки ---
	protected.HandleFunc("/insurances", h.Insurance.Purchase).Methods(http.MethodPost)
	protected.HandleFunc("/insurances", h.Insurance.List).Methods(http.MethodGet)
	protected.HandleFunc("/insurances/{insuranceId}", h.Insurance.Update).Methods(http.MethodPut)
	protected.HandleFunc("/insurances/{insuranceId}", h.Insurance.Delete).Methods(http.MethodDelete)

	return r
}
