package routes

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/MrRexos/wisdom-booking-api/internal/config"
	"github.com/MrRexos/wisdom-booking-api/internal/events"
	"github.com/MrRexos/wisdom-booking-api/internal/handlers"
	infraRepo "github.com/MrRexos/wisdom-booking-api/internal/infra/repository"
	"github.com/MrRexos/wisdom-booking-api/internal/lock"
	"github.com/MrRexos/wisdom-booking-api/internal/middleware"
	"github.com/MrRexos/wisdom-booking-api/internal/payments"
	ucBooking "github.com/MrRexos/wisdom-booking-api/internal/usecase/booking"
)

// Deps são os singletons de infraestrutura montados no main.
type Deps struct {
	DB      *gorm.DB
	Gateway payments.Gateway
	Locks   *lock.BookingLocker
	Log     *zap.Logger
}

func RegisterRoutes(r *gin.Engine, cfg *config.Config, d Deps) *ucBooking.Sweeper {

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	bookingRepo := infraRepo.NewBookingGormRepository(d.DB)

	eventStore := events.NewStore(d.DB)
	dispatcher := events.NewDispatcher(eventStore, d.Log, events.LogSink{Log: d.Log})

	settlement := ucBooking.NewSettlement(d.Gateway, d.Log)

	// ======================================================
	// USE CASES — BOOKINGS
	// ======================================================
	createUC := ucBooking.NewCreateBooking(bookingRepo, dispatcher, settlement, d.Log)
	acceptUC := ucBooking.NewAcceptBooking(bookingRepo, dispatcher, d.Locks, d.Log)
	rejectUC := ucBooking.NewRejectBooking(bookingRepo, dispatcher, settlement, d.Locks, d.Log)
	cancelUC := ucBooking.NewCancelBooking(bookingRepo, dispatcher, settlement, d.Locks, d.Log)
	completeUC := ucBooking.NewCompleteBooking(bookingRepo, dispatcher, settlement, d.Locks, d.Log)
	finalPriceUC := ucBooking.NewSetFinalPrice(bookingRepo, settlement, d.Locks, d.Log)
	durationUC := ucBooking.NewSetActualDuration(bookingRepo, settlement, d.Locks, d.Log)
	retryUC := ucBooking.NewRetryPayment(bookingRepo, settlement, d.Locks, d.Log)

	sweeper := ucBooking.NewSweeper(bookingRepo, completeUC, cfg.SweepInterval, d.Log)

	// ======================================================
	// HANDLERS
	// ======================================================
	bookingHandler := handlers.NewBookingHandler(
		bookingRepo,
		createUC,
		acceptUC,
		rejectUC,
		cancelUC,
		completeUC,
		finalPriceUC,
		durationUC,
		retryUC,
	)
	serviceHandler := handlers.NewServiceHandler(bookingRepo)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	secured := api.Group("/")
	secured.Use(middleware.AuthMiddleware(cfg))
	{
		// ------------------------------
		// SERVICES (read-only)
		// ------------------------------
		secured.GET("/services", serviceHandler.List)
		secured.GET("/services/:id", serviceHandler.Get)

		// ------------------------------
		// BOOKINGS
		// ------------------------------
		secured.POST("/bookings",
			middleware.RequireRole(middleware.RoleClient), bookingHandler.Create)
		secured.GET("/bookings", bookingHandler.List)
		secured.GET("/bookings/:id", bookingHandler.Get)
		secured.DELETE("/bookings/:id", bookingHandler.Delete)

		secured.POST("/bookings/:id/accept",
			middleware.RequireRole(middleware.RoleProfessional), bookingHandler.Accept)
		secured.POST("/bookings/:id/reject",
			middleware.RequireRole(middleware.RoleProfessional), bookingHandler.Reject)
		secured.POST("/bookings/:id/cancel", bookingHandler.Cancel)
		secured.POST("/bookings/:id/complete", bookingHandler.Complete)

		secured.PATCH("/bookings/:id/final-price",
			middleware.RequireRole(middleware.RoleProfessional), bookingHandler.SetFinalPrice)
		secured.PATCH("/bookings/:id/duration",
			middleware.RequireRole(middleware.RoleProfessional), bookingHandler.SetDuration)

		secured.POST("/bookings/:id/retry-payment",
			middleware.RequireRole(middleware.RoleClient), bookingHandler.RetryPayment)
	}

	return sweeper
}
