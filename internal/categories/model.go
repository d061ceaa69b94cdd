package categories

import "time"

// Category is a named, colored tag owned by exactly one user. The owner is
// set at creation and never reassigned.
type Category struct {
	ID        int64     `json:"id" db:"id"`
	Label     string    `json:"label" db:"label"`
	Color     string    `json:"color" db:"color"`
	OwnerID   int64     `json:"owner_id" db:"owner_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
