package db

import (
	"time"

	"gorm.io/datatypes"
)

// Session is a bounded window of drink-logging activity owned by one
// user. A user has at most one active session at a time in normal use,
// though the schema does not enforce that.
type Session struct {
	ID string `gorm:"primaryKey;size:36" json:"id"`

	CreatedAt time.Time `json:"createdAt"`

	// UserID is the owner of the session. Every query against this
	// table is scoped by it.
	UserID string `gorm:"index;size:36;not null" json:"userId"`

	Name string `gorm:"size:128;not null" json:"name"`

	StartTime time.Time `gorm:"index;not null" json:"startTime"`

	// EndTime is nil while the session is open. Ending the session sets
	// it; resuming clears it again.
	EndTime *time.Time `json:"endTime,omitempty"`

	IsActive bool `gorm:"index;default:true" json:"isActive"`

	Drinks []Drink `gorm:"foreignKey:SessionID" json:"drinks"`
}

// Drink is a single logged drink inside a session.
type Drink struct {
	ID string `gorm:"primaryKey;size:36" json:"id"`

	CreatedAt time.Time `json:"createdAt"`

	SessionID string `gorm:"index;size:36;not null" json:"sessionId"`
	UserID    string `gorm:"index;size:36;not null" json:"userId"`

	// Units is the normalized alcohol content of the drink. Always > 0;
	// validated at the handler layer.
	Units float64 `gorm:"not null" json:"units"`

	// BuzzLevel is the self-reported 0-10 intoxication rating, clamped
	// before insert.
	BuzzLevel int `gorm:"not null" json:"buzzLevel"`

	// DrinkName is an optional label, usually one of the catalog entries.
	DrinkName string `gorm:"size:128" json:"drinkName,omitempty"`

	// Attributes holds arbitrary key/value pairs for this drink (e.g.
	// volume, abv from the catalog) so clients can attach detail
	// without schema changes.
	Attributes datatypes.JSONMap `gorm:"type:json" json:"attributes,omitempty"`

	// Timestamp is when the drink was consumed. Drinks within a session
	// are always read back in ascending Timestamp order.
	Timestamp time.Time `gorm:"index;not null" json:"timestamp"`
}
