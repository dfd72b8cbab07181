package http

import (
	"net/http"

	"vetclinic-booking/internal/delivery/http/handler"
	"vetclinic-booking/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
)

type Router struct {
	router              *mux.Router
	authHandler         *handler.AuthHandler
	profileHandler      *handler.ProfileHandler
	petHandler          *handler.PetHandler
	visitTypeHandler    *handler.VisitTypeHandler
	branchHandler       *handler.BranchHandler
	doctorHandler       *handler.DoctorHandler
	scheduleHandler     *handler.ScheduleHandler
	availabilityHandler *handler.AvailabilityHandler
	bookingHandler      *handler.BookingHandler
	userAdminHandler    *handler.UserAdminHandler
	auditLogHandler     *handler.AuditLogHandler
	authMiddleware      *middleware.AuthMiddleware
	corsMiddleware      *middleware.CORSMiddleware
}

func NewRouter(
	authHandler *handler.AuthHandler,
	profileHandler *handler.ProfileHandler,
	petHandler *handler.PetHandler,
	visitTypeHandler *handler.VisitTypeHandler,
	branchHandler *handler.BranchHandler,
	doctorHandler *handler.DoctorHandler,
	scheduleHandler *handler.ScheduleHandler,
	availabilityHandler *handler.AvailabilityHandler,
	bookingHandler *handler.BookingHandler,
	userAdminHandler *handler.UserAdminHandler,
	auditLogHandler *handler.AuditLogHandler,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
) *Router {
	return &Router{
		router:              mux.NewRouter(),
		authHandler:         authHandler,
		profileHandler:      profileHandler,
		petHandler:          petHandler,
		visitTypeHandler:    visitTypeHandler,
		branchHandler:       branchHandler,
		doctorHandler:       doctorHandler,
		scheduleHandler:     scheduleHandler,
		availabilityHandler: availabilityHandler,
		bookingHandler:      bookingHandler,
		userAdminHandler:    userAdminHandler,
		auditLogHandler:     auditLogHandler,
		authMiddleware:      authMiddleware,
		corsMiddleware:      corsMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Auth routes (public)
	auth := api.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/register", r.authHandler.Register).Methods(http.MethodPost)
	auth.HandleFunc("/login", r.authHandler.Login).Methods(http.MethodPost)
	auth.HandleFunc("/refresh-token", r.authHandler.RefreshToken).Methods(http.MethodPost)
	auth.HandleFunc("/forgot-password", r.authHandler.ForgotPassword).Methods(http.MethodPost)
	auth.HandleFunc("/reset-password", r.authHandler.ResetPassword).Methods(http.MethodPost)

	// Auth routes (protected)
	authProtected := api.PathPrefix("/auth").Subrouter()
	authProtected.Use(r.authMiddleware.Authenticate)
	authProtected.HandleFunc("/logout", r.authHandler.Logout).Methods(http.MethodPost)
	authProtected.HandleFunc("/me", r.authHandler.GetCurrentUser).Methods(http.MethodGet)

	// Public catalog
	api.HandleFunc("/branches", r.branchHandler.ListBranches).Methods(http.MethodGet)
	api.HandleFunc("/branches/{id}", r.branchHandler.GetBranch).Methods(http.MethodGet)
	api.HandleFunc("/visit-types", r.visitTypeHandler.ListVisitTypes).Methods(http.MethodGet)
	api.HandleFunc("/visit-types/{id}", r.visitTypeHandler.GetVisitType).Methods(http.MethodGet)
	api.HandleFunc("/doctors", r.doctorHandler.ListDoctors).Methods(http.MethodGet)
	api.HandleFunc("/doctors/{id}", r.doctorHandler.GetDoctor).Methods(http.MethodGet)

	// Availability (public browsing)
	api.HandleFunc("/availability/slots", r.availabilityHandler.GetDaySlots).Methods(http.MethodGet)
	api.HandleFunc("/availability/doctors", r.availabilityHandler.GetSlotDoctors).Methods(http.MethodGet)

	// Profile (any authenticated user)
	me := api.PathPrefix("/me").Subrouter()
	me.Use(r.authMiddleware.Authenticate)
	me.HandleFunc("/profile", r.profileHandler.UpdateProfile).Methods(http.MethodPut)

	// Pets (clients)
	pets := api.PathPrefix("/pets").Subrouter()
	pets.Use(r.authMiddleware.Authenticate)
	pets.Use(middleware.RequireClient)
	pets.HandleFunc("", r.petHandler.CreatePet).Methods(http.MethodPost)
	pets.HandleFunc("", r.petHandler.GetMyPets).Methods(http.MethodGet)
	pets.HandleFunc("/{id}", r.petHandler.GetPet).Methods(http.MethodGet)
	pets.HandleFunc("/{id}", r.petHandler.UpdatePet).Methods(http.MethodPut)
	pets.HandleFunc("/{id}", r.petHandler.DeletePet).Methods(http.MethodDelete)

	// Bookings (clients create/cancel/list; doctors and admins cancel via the same route)
	bookings := api.PathPrefix("/bookings").Subrouter()
	bookings.Use(r.authMiddleware.Authenticate)
	bookings.HandleFunc("", r.bookingHandler.CreateBooking).Methods(http.MethodPost)
	bookings.HandleFunc("/my", r.bookingHandler.GetMyBookings).Methods(http.MethodGet)
	bookings.HandleFunc("/{id}", r.bookingHandler.CancelBooking).Methods(http.MethodDelete)

	// Doctor's own calendar
	doctorArea := api.PathPrefix("/doctor").Subrouter()
	doctorArea.Use(r.authMiddleware.Authenticate)
	doctorArea.Use(middleware.RequireDoctor)
	doctorArea.HandleFunc("/bookings", r.bookingHandler.GetDoctorBookings).Methods(http.MethodGet)

	// Doctor schedules (read for any authenticated user, write for admins)
	schedules := api.PathPrefix("/doctors").Subrouter()
	schedules.Use(r.authMiddleware.Authenticate)
	schedules.HandleFunc("/{doctorId}/schedule", r.scheduleHandler.GetSchedule).Methods(http.MethodGet)

	// Admin routes
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(r.authMiddleware.Authenticate)
	admin.Use(middleware.RequireAdmin)

	// User management (admin)
	admin.HandleFunc("/users", r.userAdminHandler.ListUsers).Methods(http.MethodGet)
	admin.HandleFunc("/users/{id}/block", r.userAdminHandler.BlockUser).Methods(http.MethodPost)
	admin.HandleFunc("/users/{id}/unblock", r.userAdminHandler.UnblockUser).Methods(http.MethodPost)
	admin.HandleFunc("/users/{id}/role", r.userAdminHandler.ChangeRole).Methods(http.MethodPut)
	admin.HandleFunc("/users/{id}/bookings", r.bookingHandler.GetUserBookings).Methods(http.MethodGet)
	admin.HandleFunc("/users/{id}/pets", r.petHandler.GetUserPets).Methods(http.MethodGet)

	// Doctor management (admin)
	admin.HandleFunc("/doctors", r.doctorHandler.CreateDoctor).Methods(http.MethodPost)
	admin.HandleFunc("/doctors/{id}", r.doctorHandler.UpdateDoctor).Methods(http.MethodPut)
	admin.HandleFunc("/doctors/{id}", r.doctorHandler.DeleteDoctor).Methods(http.MethodDelete)
	admin.HandleFunc("/doctors/{doctorId}/schedule", r.scheduleHandler.ReplaceSchedule).Methods(http.MethodPut)

	// Visit type catalog (admin)
	admin.HandleFunc("/visit-types", r.visitTypeHandler.CreateVisitType).Methods(http.MethodPost)
	admin.HandleFunc("/visit-types/{id}", r.visitTypeHandler.UpdateVisitType).Methods(http.MethodPut)
	admin.HandleFunc("/visit-types/{id}", r.visitTypeHandler.DeleteVisitType).Methods(http.MethodDelete)

	// Audit trail (admin)
	admin.HandleFunc("/audit-logs", r.auditLogHandler.ListAuditLogs).Methods(http.MethodGet)

	// Add CORS middleware
	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
