package models

import (
	"time"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

// ServiceProvider is the provider profile, 1:1 with a user account.
type ServiceProvider struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	UserID       uint           `gorm:"uniqueIndex;not null" json:"user_id"`
	User         User           `gorm:"foreignKey:UserID" json:"user,omitempty"`
	CompanyName  string         `gorm:"type:varchar(200)" json:"company_name" validate:"required,min=2,max=200"`
	TaxID        string         `gorm:"type:varchar(64);default:null" json:"tax_id"`
	ContactName  string         `gorm:"type:varchar(150);default:null" json:"contact_name"`
	ContactPhone string         `gorm:"type:varchar(50);default:null" json:"contact_phone"`
	ContactEmail string         `gorm:"type:varchar(200);default:null" json:"contact_email" validate:"omitempty,email"`
	CreatedAt    time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

func (p *ServiceProvider) Validate() error {
	v := validator.New()

	return v.Struct(p)
}
