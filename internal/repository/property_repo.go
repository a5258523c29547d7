package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"staybook/internal/domain"
	"staybook/internal/pkg/utils"
)

type PropertyRepository struct {
	db *gorm.DB
}

func NewPropertyRepository(db *gorm.DB) *PropertyRepository {
	return &PropertyRepository{db: db}
}

type propertyModel struct {
	ID        string    `gorm:"column:id;primaryKey"`
	Title     string    `gorm:"column:title;not null"`
	Price     float64   `gorm:"column:price"`
	Address   string    `gorm:"column:address"`
	City      string    `gorm:"column:city;index"`
	State     string    `gorm:"column:state"`
	Country   string    `gorm:"column:country"`
	Latitude  float64   `gorm:"column:latitude"`
	Longitude float64   `gorm:"column:longitude"`
	Features  string    `gorm:"column:features;type:text"`
	Images    string    `gorm:"column:images;type:text"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (propertyModel) TableName() string { return "properties" }

func toDomainProperty(m propertyModel) domain.Property {
	return domain.Property{
		ID:    m.ID,
		Title: m.Title,
		Price: m.Price,
		Location: domain.Location{
			Address: m.Address,
			City:    m.City,
			State:   m.State,
			Country: m.Country,
			Coordinates: domain.Coordinates{
				Latitude:  m.Latitude,
				Longitude: m.Longitude,
			},
		},
		Features: utils.StringToList(m.Features),
		Images:   utils.StringToList(m.Images),
	}
}

func toPropertyModel(p domain.Property) propertyModel {
	return propertyModel{
		ID:        p.ID,
		Title:     p.Title,
		Price:     p.Price,
		Address:   p.Location.Address,
		City:      p.Location.City,
		State:     p.Location.State,
		Country:   p.Location.Country,
		Latitude:  p.Location.Coordinates.Latitude,
		Longitude: p.Location.Coordinates.Longitude,
		Features:  utils.ListToString(p.Features),
		Images:    utils.ListToString(p.Images),
	}
}

// List returns all properties in insertion order.
func (r *PropertyRepository) List(ctx context.Context) ([]domain.Property, error) {
	var rows []propertyModel
	if err := r.db.WithContext(ctx).Order("created_at, id").Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]domain.Property, 0, len(rows))
	for _, m := range rows {
		out = append(out, toDomainProperty(m))
	}
	return out, nil
}

// GetByID fetches a property by its ID
func (r *PropertyRepository) GetByID(ctx context.Context, id string) (*domain.Property, error) {
	var m propertyModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		return nil, err
	}
	p := toDomainProperty(m)
	return &p, nil
}

// Upsert inserts p or overwrites the row with the same ID.
func (r *PropertyRepository) Upsert(ctx context.Context, p domain.Property) error {
	m := toPropertyModel(p)
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"title", "price", "address", "city", "state", "country", "latitude", "longitude", "features", "images"}),
		}).
		Create(&m).Error
}
