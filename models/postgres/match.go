package postgres

import (
	"errors"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ErrSelfMatch is returned when both sides of a match are the same user.
var ErrSelfMatch = errors.New("a match needs two different users")

/*
 * 'Match' is a scored pairing between two users. The pair is unordered:
 * rows are stored with UserAID < UserBID so (A,B) and (B,A) hit the same
 * unique index entry.
 */
type Match struct {
	ID             int64          `gorm:"primaryKey;autoIncrement"`
	UserAID        int64          `gorm:"column:user_a_id;not null;uniqueIndex:idx_matches_pair;check:chk_matches_pair_order,user_a_id < user_b_id"`
	UserBID        int64          `gorm:"column:user_b_id;not null;uniqueIndex:idx_matches_pair;index"`
	InitiatorID    int64          `gorm:"not null"`
	MatchScore     int            `gorm:"not null;default:0"`
	ScoreBreakdown datatypes.JSON `gorm:"type:jsonb;default:'{}'"`
	Status         MatchStatus    `gorm:"type:varchar(16);not null;default:'pending';index"`
	CreatedAt      time.Time
	UpdatedAt      time.Time

	// Relationships
	UserA User `gorm:"foreignKey:UserAID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	UserB User `gorm:"foreignKey:UserBID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

// OrderedPair returns the two ids in storage order.
func OrderedPair(a, b int64) (int64, int64) {
	if a > b {
		return b, a
	}
	return a, b
}

// HasParticipant reports whether userID is one of the two users.
func (m *Match) HasParticipant(userID int64) bool {
	return m.UserAID == userID || m.UserBID == userID
}

// GORM hook: reject self matches and keep the pair in storage order
func (m *Match) BeforeSave(tx *gorm.DB) error {
	if m.UserAID == m.UserBID {
		return ErrSelfMatch
	}
	m.UserAID, m.UserBID = OrderedPair(m.UserAID, m.UserBID)
	return nil
}
