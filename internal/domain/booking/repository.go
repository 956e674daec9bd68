package booking

import (
	"context"

	"github.com/MrRexos/wisdom-booking-api/internal/models"
)

type Repository interface {
	// -------- Service (read-only reference) --------
	GetService(
		ctx context.Context,
		id uint,
	) (*models.Service, error)

	ListServices(
		ctx context.Context,
	) ([]models.Service, error)

	// -------- User --------
	GetUser(
		ctx context.Context,
		id uint,
	) (*models.User, error)

	// -------- Booking (create / read) --------
	CreateBooking(
		ctx context.Context,
		bk *models.Booking,
	) error

	GetBooking(
		ctx context.Context,
		id string,
	) (*models.Booking, error)

	GetBookingForParty(
		ctx context.Context,
		id string,
		userID uint,
		role Role,
	) (*models.Booking, error)

	ListBookingsForParty(
		ctx context.Context,
		userID uint,
		role Role,
	) ([]models.Booking, error)

	// -------- Booking (state change) --------
	UpdateBooking(
		ctx context.Context,
		bk *models.Booking,
	) error

	DeleteBooking(
		ctx context.Context,
		id string,
	) error

	// -------- Reconciliation sweep --------
	ListDueForCompletion(
		ctx context.Context,
		nowNaive string,
	) ([]models.Booking, error)
}
