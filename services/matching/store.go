package matching

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	models "Squadup/models/postgres"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// UpsertResult tells which row now represents the pair and in which state.
type UpsertResult struct {
	ID      int64              `gorm:"column:id"`
	Status  models.MatchStatus `gorm:"column:status"`
	Created bool               `gorm:"column:created"`
}

// MatchView is a match as seen by one of its participants: the row joined to
// the counterpart's profile and game names.
type MatchView struct {
	MatchID        int64              `gorm:"column:match_id" json:"match_id"`
	MatchScore     int                `gorm:"column:match_score" json:"match_score"`
	Status         models.MatchStatus `gorm:"column:status" json:"status"`
	ScoreBreakdown datatypes.JSON     `gorm:"column:score_breakdown" json:"score_breakdown,omitempty"`
	CreatedAt      time.Time          `gorm:"column:created_at" json:"created_at"`
	UpdatedAt      time.Time          `gorm:"column:updated_at" json:"updated_at"`
	UserID         int64              `gorm:"column:user_id" json:"user_id"`
	Username       string             `gorm:"column:username" json:"username"`
	AvatarURL      string             `gorm:"column:avatar_url" json:"avatar_url"`
	Bio            string             `gorm:"column:bio" json:"bio"`
	SkillLevel     string             `gorm:"column:skill_level" json:"skill_level"`
	LookingFor     string             `gorm:"column:looking_for" json:"looking_for"`
	Timezone       string             `gorm:"column:timezone" json:"timezone"`
	Region         string             `gorm:"column:region" json:"region"`
	Games          string             `gorm:"column:games" json:"games"`
}

// MatchStore is the only writer of the matches table.
type MatchStore struct {
	DB *gorm.DB
}

// NewMatchStore creates a MatchStore.
func NewMatchStore(db *gorm.DB) *MatchStore {
	return &MatchStore{DB: db}
}

// The conflict target is the unique (user_a_id, user_b_id) index. Terminal
// rows are left untouched, so RETURNING yields nothing for them.
const upsertQuery = `
	INSERT INTO matches (user_a_id, user_b_id, initiator_id, match_score, score_breakdown, status, created_at, updated_at)
	VALUES (?, ?, ?, ?, CAST(? AS jsonb), 'pending', NOW(), NOW())
	ON CONFLICT (user_a_id, user_b_id) DO UPDATE
	SET match_score = EXCLUDED.match_score,
		score_breakdown = EXCLUDED.score_breakdown,
		updated_at = NOW()
	WHERE matches.status = 'pending'
	RETURNING id, status, (xmax = 0) AS created`

const pairQuery = `
	SELECT id, status, false AS created
	FROM matches
	WHERE user_a_id = ? AND user_b_id = ?`

// Upsert creates the pending match between initiatorID and otherID, or
// refreshes its score if it is still pending. Accepted and rejected rows keep
// their status and score; their id is returned unchanged.
func (s *MatchStore) Upsert(ctx context.Context, initiatorID, otherID int64, score Score) (UpsertResult, error) {
	if initiatorID <= 0 || otherID <= 0 {
		return UpsertResult{}, ErrInvalidUser
	}
	if initiatorID == otherID {
		return UpsertResult{}, models.ErrSelfMatch
	}

	breakdown, err := json.Marshal(score.Breakdown)
	if err != nil {
		return UpsertResult{}, fmt.Errorf("error encoding score breakdown: %w", err)
	}

	a, b := models.OrderedPair(initiatorID, otherID)
	var result UpsertResult
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var rows []UpsertResult
		if err := tx.Raw(upsertQuery, a, b, initiatorID, score.Total, string(breakdown)).Scan(&rows).Error; err != nil {
			return err
		}
		if len(rows) > 0 {
			result = rows[0]
			return nil
		}

		if err := tx.Raw(pairQuery, a, b).Scan(&rows).Error; err != nil {
			return err
		}
		if len(rows) == 0 {
			return fmt.Errorf("match %d-%d vanished during upsert", a, b)
		}
		result = rows[0]
		return nil
	})
	if err != nil {
		return UpsertResult{}, fmt.Errorf("error upserting match %d-%d: %w", a, b, err)
	}
	return result, nil
}

const listQuery = `
	SELECT
		m.id AS match_id,
		m.match_score,
		m.status,
		COALESCE(m.score_breakdown, '{}'::jsonb) AS score_breakdown,
		m.created_at,
		m.updated_at,
		u.id AS user_id,
		u.username,
		COALESCE(p.avatar_url, '') AS avatar_url,
		COALESCE(p.bio, '') AS bio,
		COALESCE(p.skill_level, '') AS skill_level,
		COALESCE(p.looking_for, '') AS looking_for,
		COALESCE(p.timezone, '') AS timezone,
		COALESCE(p.region, '') AS region,
		COALESCE(string_agg(DISTINCT g.name, ', ' ORDER BY g.name), '') AS games
	FROM matches m
	JOIN users u ON u.id = CASE WHEN m.user_a_id = ? THEN m.user_b_id ELSE m.user_a_id END
	LEFT JOIN user_profiles p ON p.user_id = u.id
	LEFT JOIN user_games ug ON ug.user_id = u.id
	LEFT JOIN games g ON g.id = ug.game_id
	WHERE (m.user_a_id = ? OR m.user_b_id = ?)
		AND m.status IN ('pending', 'accepted')
	GROUP BY m.id, u.id, p.user_id
	ORDER BY CASE m.status WHEN 'pending' THEN 0 ELSE 1 END, m.match_score DESC, m.created_at DESC`

// ListForUser returns the pending and accepted matches of userID, pending
// first, then by descending score.
func (s *MatchStore) ListForUser(ctx context.Context, userID int64) ([]MatchView, error) {
	if userID <= 0 {
		return nil, ErrInvalidUser
	}
	var views []MatchView
	if err := s.DB.WithContext(ctx).Raw(listQuery, userID, userID, userID).Scan(&views).Error; err != nil {
		return nil, fmt.Errorf("error listing matches of user %d: %w", userID, err)
	}
	return views, nil
}

const transitionQuery = `
	UPDATE matches
	SET status = ?, updated_at = NOW()
	WHERE id = ? AND (user_a_id = ? OR user_b_id = ?) AND status = 'pending'`

// Accept moves a pending match to accepted on behalf of one of its
// participants.
func (s *MatchStore) Accept(ctx context.Context, matchID, userID int64) error {
	return s.transition(ctx, matchID, userID, models.MatchAccepted)
}

// Reject moves a pending match to rejected on behalf of one of its
// participants.
func (s *MatchStore) Reject(ctx context.Context, matchID, userID int64) error {
	return s.transition(ctx, matchID, userID, models.MatchRejected)
}

// transition is a single conditional UPDATE, so two concurrent calls on the
// same match cannot both succeed.
func (s *MatchStore) transition(ctx context.Context, matchID, userID int64, to models.MatchStatus) error {
	if matchID <= 0 || userID <= 0 {
		return ErrMatchNotFound
	}
	if !models.MatchPending.CanTransition(to) {
		return fmt.Errorf("invalid match transition to %q", to)
	}

	res := s.DB.WithContext(ctx).Exec(transitionQuery, string(to), matchID, userID, userID)
	if res.Error != nil {
		return fmt.Errorf("error updating match %d: %w", matchID, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrMatchNotFound
	}
	return nil
}
