package postgres

import (
	"time"
)

/*
 * 'User' is the account row every other table hangs from. Authentication data
 * lives with the auth service; matching only needs the id and the username.
 */
type User struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	Username  string    `gorm:"size:50;not null;uniqueIndex"`
	Email     string    `gorm:"size:100;not null;uniqueIndex"`
	CreatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP"`

	// Relationships
	Profile UserProfile `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Games   []UserGame  `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}
