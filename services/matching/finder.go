package matching

import (
	"context"
	"fmt"

	models "Squadup/models/postgres"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// DefaultFetchLimit bounds how many candidates are pulled from the database
// before scoring.
const DefaultFetchLimit = 50

// Candidate is a user eligible to be scored against the requester. Games is
// the comma separated list of shared game names, for display only.
type Candidate struct {
	UserID     int64  `gorm:"column:user_id" json:"user_id"`
	Username   string `gorm:"column:username" json:"username"`
	AvatarURL  string `gorm:"column:avatar_url" json:"avatar_url"`
	Bio        string `gorm:"column:bio" json:"bio"`
	SkillLevel string `gorm:"column:skill_level" json:"skill_level"`
	LookingFor string `gorm:"column:looking_for" json:"looking_for"`
	Timezone   string `gorm:"column:timezone" json:"timezone"`
	Region     string `gorm:"column:region" json:"region"`
	Games      string `gorm:"column:games" json:"games"`
}

// Profile returns the fields the scorer needs.
func (c Candidate) Profile() Profile {
	return Profile{
		SkillLevel: c.SkillLevel,
		LookingFor: c.LookingFor,
		Region:     c.Region,
		Timezone:   c.Timezone,
	}
}

// CandidateFinder reads profiles, game lists and candidates from PostgreSQL.
type CandidateFinder struct {
	DB         *gorm.DB
	FetchLimit int
}

// NewCandidateFinder creates a finder with the default fetch ceiling.
func NewCandidateFinder(db *gorm.DB) *CandidateFinder {
	return &CandidateFinder{DB: db, FetchLimit: DefaultFetchLimit}
}

const profileQuery = `
	SELECT
		COALESCE(skill_level, '') AS skill_level,
		COALESCE(looking_for, '') AS looking_for,
		COALESCE(region, '') AS region,
		COALESCE(timezone, '') AS timezone
	FROM user_profiles
	WHERE user_id = ?`

// RequesterProfile loads the scoring profile of userID. A user without a
// profile row gets an empty Profile, which the scorer fills with defaults.
func (f *CandidateFinder) RequesterProfile(ctx context.Context, userID int64) (Profile, error) {
	var rows []Profile
	err := f.DB.WithContext(ctx).Raw(profileQuery, userID).Scan(&rows).Error
	if err != nil {
		return Profile{}, fmt.Errorf("error loading profile of user %d: %w", userID, err)
	}
	if len(rows) == 0 {
		return Profile{}, nil
	}
	return rows[0], nil
}

const userGamesQuery = `
	SELECT game_id, COALESCE(skill_level, '') AS skill_level
	FROM user_games
	WHERE user_id = ?
	ORDER BY game_id`

// UserGames loads the game list of a single user.
func (f *CandidateFinder) UserGames(ctx context.Context, userID int64) ([]GameEntry, error) {
	var games []GameEntry
	err := f.DB.WithContext(ctx).Raw(userGamesQuery, userID).Scan(&games).Error
	if err != nil {
		return nil, fmt.Errorf("error loading games of user %d: %w", userID, err)
	}
	return games, nil
}

const gamesByUserQuery = `
	SELECT user_id, game_id, COALESCE(skill_level, '') AS skill_level
	FROM user_games
	WHERE user_id = ANY(?)
	ORDER BY user_id, game_id`

type userGameRow struct {
	UserID     int64  `gorm:"column:user_id"`
	GameID     int64  `gorm:"column:game_id"`
	SkillLevel string `gorm:"column:skill_level"`
}

// GamesByUser loads the game lists of several users in one round trip.
func (f *CandidateFinder) GamesByUser(ctx context.Context, userIDs []int64) (map[int64][]GameEntry, error) {
	out := make(map[int64][]GameEntry, len(userIDs))
	if len(userIDs) == 0 {
		return out, nil
	}

	var rows []userGameRow
	err := f.DB.WithContext(ctx).Raw(gamesByUserQuery, pq.Array(userIDs)).Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("error loading candidate games: %w", err)
	}
	for _, r := range rows {
		out[r.UserID] = append(out[r.UserID], GameEntry{GameID: r.GameID, SkillLevel: r.SkillLevel})
	}
	return out, nil
}

// Candidates share at least one game with the requester, are not private and
// have no pending or accepted match with the requester. Rejected pairs may
// come back.
const candidatesQuery = `
	SELECT
		u.id AS user_id,
		u.username,
		COALESCE(p.avatar_url, '') AS avatar_url,
		COALESCE(p.bio, '') AS bio,
		COALESCE(p.skill_level, '') AS skill_level,
		COALESCE(p.looking_for, '') AS looking_for,
		COALESCE(p.timezone, '') AS timezone,
		COALESCE(p.region, '') AS region,
		string_agg(DISTINCT g.name, ', ' ORDER BY g.name) AS games
	FROM users u
	JOIN user_profiles p ON p.user_id = u.id
	JOIN user_games ug ON ug.user_id = u.id
	JOIN games g ON g.id = ug.game_id
	WHERE u.id <> ?
		AND (p.profile_visibility IS NULL OR p.profile_visibility <> ?)
		AND ug.game_id IN (SELECT game_id FROM user_games WHERE user_id = ?)
		AND u.id <> ALL(?)
		AND NOT EXISTS (
			SELECT 1 FROM matches m
			WHERE m.user_a_id = LEAST(u.id, ?)
				AND m.user_b_id = GREATEST(u.id, ?)
				AND m.status IN ('pending', 'accepted')
		)
	GROUP BY u.id, u.username, p.avatar_url, p.bio, p.skill_level,
		p.looking_for, p.timezone, p.region
	ORDER BY COUNT(DISTINCT ug.game_id) DESC, u.id ASC
	LIMIT ?`

// FindCandidates returns up to FetchLimit users sharing a game with userID.
// Ids in excluded are never returned.
func (f *CandidateFinder) FindCandidates(ctx context.Context, userID int64, excluded []int64) ([]Candidate, error) {
	if userID <= 0 {
		return nil, ErrInvalidUser
	}
	limit := f.FetchLimit
	if limit <= 0 {
		limit = DefaultFetchLimit
	}
	if excluded == nil {
		excluded = []int64{}
	}

	var candidates []Candidate
	err := f.DB.WithContext(ctx).
		Raw(candidatesQuery, userID, string(models.VisibilityPrivate), userID, pq.Array(excluded), userID, userID, limit).
		Scan(&candidates).Error
	if err != nil {
		return nil, fmt.Errorf("error finding candidates for user %d: %w", userID, err)
	}
	return candidates, nil
}
