package repository

import (
	"context"

	"gorm.io/gorm"

	domain "github.com/MrRexos/wisdom-booking-api/internal/domain/booking"
	"github.com/MrRexos/wisdom-booking-api/internal/models"
)

type BookingGormRepository struct {
	db *gorm.DB
}

func NewBookingGormRepository(db *gorm.DB) *BookingGormRepository {
	return &BookingGormRepository{db: db}
}

// --------------------------------------------------
// Service (read-only reference)
// --------------------------------------------------

func (r *BookingGormRepository) GetService(
	ctx context.Context,
	id uint,
) (*models.Service, error) {

	var svc models.Service
	if err := r.db.WithContext(ctx).First(&svc, id).Error; err != nil {
		return nil, err
	}
	return &svc, nil
}

func (r *BookingGormRepository) ListServices(
	ctx context.Context,
) ([]models.Service, error) {

	var svcs []models.Service
	if err := r.db.WithContext(ctx).
		Where("active = ?", true).
		Order("name ASC").
		Find(&svcs).Error; err != nil {
		return nil, err
	}
	return svcs, nil
}

// --------------------------------------------------
// User
// --------------------------------------------------

func (r *BookingGormRepository) GetUser(
	ctx context.Context,
	id uint,
) (*models.User, error) {

	var u models.User
	if err := r.db.WithContext(ctx).First(&u, id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

// --------------------------------------------------
// Booking
// --------------------------------------------------

func (r *BookingGormRepository) CreateBooking(
	ctx context.Context,
	bk *models.Booking,
) error {
	return r.db.WithContext(ctx).Create(bk).Error
}

func (r *BookingGormRepository) GetBooking(
	ctx context.Context,
	id string,
) (*models.Booking, error) {

	var bk models.Booking
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&bk).Error; err != nil {
		return nil, err
	}
	return &bk, nil
}

func (r *BookingGormRepository) GetBookingForParty(
	ctx context.Context,
	id string,
	userID uint,
	role domain.Role,
) (*models.Booking, error) {

	q := r.db.WithContext(ctx).Where("id = ?", id)
	if role == domain.RoleProfessional {
		q = q.Where("professional_id = ?", userID)
	} else {
		q = q.Where("client_id = ?", userID)
	}

	var bk models.Booking
	if err := q.First(&bk).Error; err != nil {
		return nil, err
	}
	return &bk, nil
}

func (r *BookingGormRepository) ListBookingsForParty(
	ctx context.Context,
	userID uint,
	role domain.Role,
) ([]models.Booking, error) {

	q := r.db.WithContext(ctx).Preload("Service")
	if role == domain.RoleProfessional {
		q = q.Where("professional_id = ?", userID)
	} else {
		q = q.Where("client_id = ?", userID)
	}

	var bks []models.Booking
	if err := q.Order("created_at DESC").Find(&bks).Error; err != nil {
		return nil, err
	}
	return bks, nil
}

func (r *BookingGormRepository) UpdateBooking(
	ctx context.Context,
	bk *models.Booking,
) error {
	return r.db.WithContext(ctx).Save(bk).Error
}

func (r *BookingGormRepository) DeleteBooking(
	ctx context.Context,
	id string,
) error {
	return r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&models.Booking{}).Error
}

// --------------------------------------------------
// Reconciliation sweep
// --------------------------------------------------

func (r *BookingGormRepository) ListDueForCompletion(
	ctx context.Context,
	nowNaive string,
) ([]models.Booking, error) {

	var bks []models.Booking
	if err := r.db.WithContext(ctx).
		Where(
			"status = 'accepted' AND end_at IS NOT NULL AND end_at <= ?",
			nowNaive,
		).
		Order("end_at ASC").
		Find(&bks).Error; err != nil {
		return nil, err
	}
	return bks, nil
}

// Compile-time check
var _ domain.Repository = (*BookingGormRepository)(nil)
