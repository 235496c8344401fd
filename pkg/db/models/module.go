package models

import (
	"time"

	"github.com/google/uuid"
)

// Module is a storefront vertical (food, grocery, pharmacy) that vendors
// and products hang off.
type Module struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name      string    `gorm:"column:name;not null"`
	Active    bool      `gorm:"column:active;not null;default:true"`
	Image     string    `gorm:"column:image;not null;default:''"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
