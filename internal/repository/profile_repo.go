package repository

import (
	"context"
	"errors"
	"slices"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"staybook/internal/domain"
	"staybook/internal/pkg/utils"
)

type ProfileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

type profileModel struct {
	ID       string `gorm:"column:id;primaryKey"`
	Name     string `gorm:"column:name"`
	Email    string `gorm:"column:email;uniqueIndex"`
	Bookings string `gorm:"column:bookings;type:text"`
}

func (profileModel) TableName() string { return "profiles" }

func toDomainProfile(m profileModel) domain.UserProfile {
	return domain.UserProfile{
		ID:       m.ID,
		Name:     m.Name,
		Email:    m.Email,
		Bookings: utils.StringToList(m.Bookings),
	}
}

func (r *ProfileRepository) GetByID(ctx context.Context, id string) (*domain.UserProfile, error) {
	var m profileModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		return nil, err
	}
	p := toDomainProfile(m)
	return &p, nil
}

func (r *ProfileRepository) Upsert(ctx context.Context, p domain.UserProfile) error {
	m := profileModel{ID: p.ID, Name: p.Name, Email: p.Email, Bookings: utils.ListToString(p.Bookings)}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"name", "email", "bookings"}),
		}).
		Create(&m).Error
}

// editBookings rewrites the booking id list of userID. Users without a
// profile row are left alone.
func editBookings(tx *gorm.DB, userID string, edit func([]string) []string) error {
	var m profileModel
	err := tx.Where("id = ?", userID).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	ids := edit(utils.StringToList(m.Bookings))
	return tx.Model(&profileModel{}).Where("id = ?", userID).
		Update("bookings", utils.ListToString(ids)).Error
}

func appendID(id string) func([]string) []string {
	return func(ids []string) []string {
		if slices.Contains(ids, id) {
			return ids
		}
		return append(ids, id)
	}
}

func dropID(id string) func([]string) []string {
	return func(ids []string) []string {
		return slices.DeleteFunc(ids, func(s string) bool { return s == id })
	}
}
