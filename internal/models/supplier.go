package models

import (
	"time"

	"github.com/google/uuid"
)

type Supplier struct {
	ID            uuid.UUID `json:"id" db:"id"`
	BusinessID    uuid.UUID `json:"business_id" db:"business_id"`
	Name          string    `json:"name" db:"name"`
	ContactPerson *string   `json:"contact_person" db:"contact_person"`
	Email         string    `json:"email" db:"email"`
	Phone         *string   `json:"phone" db:"phone"`
	Address       *string   `json:"address" db:"address"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`
}
