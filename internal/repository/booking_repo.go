package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"staybook/internal/domain"
)

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

type bookingModel struct {
	ID         string    `gorm:"column:id;primaryKey"`
	PropertyID string    `gorm:"column:property_id;not null;uniqueIndex:idx_no_double_booking,priority:2"`
	UserID     string    `gorm:"column:user_id;not null;index;uniqueIndex:idx_no_double_booking,priority:1"`
	CheckIn    string    `gorm:"column:check_in;not null;uniqueIndex:idx_no_double_booking,priority:3"`
	CheckOut   string    `gorm:"column:check_out;not null"`
	Status     string    `gorm:"column:status;not null"`
	CreatedAt  time.Time `gorm:"column:created_at"`
	UpdatedAt  time.Time `gorm:"column:updated_at"`
}

func (bookingModel) TableName() string { return "bookings" }

func toDomainBooking(m bookingModel) domain.Booking {
	return domain.Booking{
		ID:         m.ID,
		PropertyID: m.PropertyID,
		UserID:     m.UserID,
		CheckIn:    m.CheckIn,
		CheckOut:   m.CheckOut,
		Status:     domain.BookingStatus(m.Status),
	}
}

func toBookingModel(b domain.Booking) bookingModel {
	return bookingModel{
		ID:         b.ID,
		PropertyID: b.PropertyID,
		UserID:     b.UserID,
		CheckIn:    b.CheckIn,
		CheckOut:   b.CheckOut,
		Status:     string(b.Status),
	}
}

// List returns bookings in creation order, only userID's when it is set.
func (r *BookingRepository) List(ctx context.Context, userID string) ([]domain.Booking, error) {
	q := r.db.WithContext(ctx).Model(&bookingModel{})
	if userID != "" {
		q = q.Where("user_id = ?", userID)
	}

	var rows []bookingModel
	if err := q.Order("created_at, id").Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]domain.Booking, 0, len(rows))
	for _, m := range rows {
		out = append(out, toDomainBooking(m))
	}
	return out, nil
}

func (r *BookingRepository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	var m bookingModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		return nil, err
	}
	b := toDomainBooking(m)
	return &b, nil
}

// Create inserts b and records its id on the owner's profile in the same
// transaction. A second booking of the same property by the same user with
// the same check-in returns ErrDuplicate.
func (r *BookingRepository) Create(ctx context.Context, b domain.Booking) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		m := toBookingModel(b)
		if err := tx.Create(&m).Error; err != nil {
			if isUniqueViolation(err) {
				return ErrDuplicate
			}
			return err
		}
		return editBookings(tx, b.UserID, appendID(b.ID))
	})
}

// Update writes the non-nil patch fields of booking id and returns the result.
func (r *BookingRepository) Update(ctx context.Context, id string, patch domain.BookingPatch) (*domain.Booking, error) {
	updates := map[string]any{}
	if patch.Status != nil {
		updates["status"] = string(*patch.Status)
	}
	if patch.CheckIn != nil {
		updates["check_in"] = *patch.CheckIn
	}
	if patch.CheckOut != nil {
		updates["check_out"] = *patch.CheckOut
	}
	if patch.Property != nil {
		updates["property_id"] = patch.Property.ID
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var m bookingModel
		if err := tx.Where("id = ?", id).First(&m).Error; err != nil {
			return err
		}
		if len(updates) == 0 {
			return nil
		}
		if err := tx.Model(&m).Updates(updates).Error; err != nil {
			if isUniqueViolation(err) {
				return ErrDuplicate
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

// Delete removes booking id and unlinks it from the owner's profile.
func (r *BookingRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var m bookingModel
		if err := tx.Where("id = ?", id).First(&m).Error; err != nil {
			return err
		}
		if err := tx.Delete(&bookingModel{}, "id = ?", id).Error; err != nil {
			return err
		}
		return editBookings(tx, m.UserID, dropID(id))
	})
}
