package models

import (
	"time"

	"github.com/google/uuid"
)

// BusinessSettings is keyed by the business id itself: one row per tenant.
type BusinessSettings struct {
	BusinessID   uuid.UUID `json:"business_id" db:"business_id"`
	BusinessName string    `json:"business_name" db:"business_name"`
	Address      string    `json:"address" db:"address"`
	Phone        string    `json:"phone" db:"phone"`
	LogoKey      *string   `json:"-" db:"logo_key"`
	LogoURL      string    `json:"logo_url,omitempty" db:"-"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}
