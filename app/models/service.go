package models

import (
	"time"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

// Service is a category of contracted work providers can register for.
// Static reference data, seeded by migration.
type Service struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	Name         string         `gorm:"type:varchar(150);uniqueIndex" json:"name" validate:"required,min=2,max=150"`
	Description  string         `gorm:"type:text;default:null" json:"description"`
	DefaultPrice float64        `gorm:"type:decimal(10,2);default:0" json:"default_price"`
	Active       bool           `gorm:"default:true;index" json:"active"`
	CreatedAt    time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

func (s *Service) Validate() error {
	v := validator.New()

	return v.Struct(s)
}
