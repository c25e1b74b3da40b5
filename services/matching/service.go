package matching

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"Squadup/logging"
	"Squadup/metrics"
	models "Squadup/models/postgres"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	// DefaultLimit is the number of suggestions returned when the caller does
	// not ask for a specific amount.
	DefaultLimit = 10
	// MaxLimit is the server-side ceiling, whatever the caller asks for.
	MaxLimit = 20
)

// Messages returned alongside an empty suggestion list.
const (
	NoGamesMessage      = "Add games to your profile to find matches"
	NoCandidatesMessage = "No new matches found right now, check back later"
)

// CandidateSource is the read side the orchestrator needs.
type CandidateSource interface {
	RequesterProfile(ctx context.Context, userID int64) (Profile, error)
	UserGames(ctx context.Context, userID int64) ([]GameEntry, error)
	FindCandidates(ctx context.Context, userID int64, excluded []int64) ([]Candidate, error)
	GamesByUser(ctx context.Context, userIDs []int64) (map[int64][]GameEntry, error)
}

// MatchRepository persists matches and their transitions.
type MatchRepository interface {
	Upsert(ctx context.Context, initiatorID, otherID int64, score Score) (UpsertResult, error)
	ListForUser(ctx context.Context, userID int64) ([]MatchView, error)
	Accept(ctx context.Context, matchID, userID int64) error
	Reject(ctx context.Context, matchID, userID int64) error
}

// SuggestedMatch is one ranked candidate, with the id of the match row that
// now represents the pair.
type SuggestedMatch struct {
	Candidate
	MatchScore       int                `json:"match_score"`
	MatchID          int64              `json:"match_id"`
	Status           models.MatchStatus `json:"status"`
	ScoreBreakdown   Breakdown          `json:"score_breakdown"`
	CommonGamesCount int                `json:"common_games_count"`
}

// FindResult is the outcome of a search. Message is set only when Matches is
// empty for a legitimate reason.
type FindResult struct {
	Matches []SuggestedMatch `json:"matches"`
	Message string           `json:"message,omitempty"`
}

// Service runs the search-score-rank-persist pipeline and the accept/reject
// transitions.
type Service struct {
	Finder CandidateSource
	Store  MatchRepository
}

// NewService wires a Service over PostgreSQL.
func NewService(db *gorm.DB) *Service {
	return &Service{
		Finder: NewCandidateFinder(db),
		Store:  NewMatchStore(db),
	}
}

// ClampLimit applies the default and the ceiling to a caller-supplied limit.
func ClampLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}

// FindMatches returns up to limit ranked suggestions for userID and makes sure
// each one is backed by a match row.
//
// On a persistence failure it stops, and returns the suggestions already
// persisted together with the error.
func (s *Service) FindMatches(ctx context.Context, userID int64, limit int) (*FindResult, error) {
	start := time.Now()
	log := logging.Ctx(ctx)
	limit = ClampLimit(limit)

	if userID <= 0 {
		return nil, ErrInvalidUser
	}

	myGames, err := s.Finder.UserGames(ctx, userID)
	if err != nil {
		metrics.RecordSearch(metrics.SearchError, 0, time.Since(start))
		return nil, err
	}
	if len(myGames) == 0 {
		metrics.RecordSearch(metrics.SearchNoGames, 0, time.Since(start))
		return &FindResult{Matches: []SuggestedMatch{}, Message: NoGamesMessage}, nil
	}

	profile, err := s.Finder.RequesterProfile(ctx, userID)
	if err != nil {
		metrics.RecordSearch(metrics.SearchError, 0, time.Since(start))
		return nil, err
	}

	candidates, err := s.Finder.FindCandidates(ctx, userID, nil)
	if err != nil {
		metrics.RecordSearch(metrics.SearchError, 0, time.Since(start))
		return nil, err
	}
	if len(candidates) == 0 {
		metrics.RecordSearch(metrics.SearchNoMatches, 0, time.Since(start))
		return &FindResult{Matches: []SuggestedMatch{}, Message: NoCandidatesMessage}, nil
	}

	ids := make([]int64, len(candidates))
	for i, c := range candidates {
		ids[i] = c.UserID
	}
	gamesByUser, err := s.Finder.GamesByUser(ctx, ids)
	if err != nil {
		metrics.RecordSearch(metrics.SearchError, 0, time.Since(start))
		return nil, err
	}

	ranked := rank(profile, myGames, candidates, gamesByUser)
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}

	out := make([]SuggestedMatch, 0, len(ranked))
	for _, m := range ranked {
		if err := ctx.Err(); err != nil {
			metrics.RecordSearch(metrics.SearchError, len(candidates), time.Since(start))
			return &FindResult{Matches: out}, err
		}

		score := Score{Total: m.MatchScore, Breakdown: m.ScoreBreakdown, CommonGameCount: m.CommonGamesCount}
		res, err := s.Store.Upsert(ctx, userID, m.UserID, score)
		if err != nil {
			log.Error().Err(err).
				Int64("candidate_id", m.UserID).
				Int("persisted", len(out)).
				Msg("Match search aborted while persisting matches")
			metrics.RecordSearch(metrics.SearchError, len(candidates), time.Since(start))
			return &FindResult{Matches: out}, err
		}
		m.MatchID = res.ID
		m.Status = res.Status
		out = append(out, m)
	}

	metrics.RecordSearch(metrics.SearchOK, len(candidates), time.Since(start))
	log.Debug().
		Int("candidates", len(candidates)).
		Int("returned", len(out)).
		Dur("took", time.Since(start)).
		Msg("Match search done")

	return &FindResult{Matches: out}, nil
}

// rank scores every candidate and orders them by descending score, then by
// ascending user id.
func rank(profile Profile, myGames []GameEntry, candidates []Candidate, gamesByUser map[int64][]GameEntry) []SuggestedMatch {
	ranked := make([]SuggestedMatch, 0, len(candidates))
	for _, c := range candidates {
		score := ComputeScore(profile, myGames, c.Profile(), gamesByUser[c.UserID])
		ranked = append(ranked, SuggestedMatch{
			Candidate:        c,
			MatchScore:       score.Total,
			Status:           models.MatchPending,
			ScoreBreakdown:   score.Breakdown,
			CommonGamesCount: score.CommonGameCount,
		})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].MatchScore != ranked[j].MatchScore {
			return ranked[i].MatchScore > ranked[j].MatchScore
		}
		return ranked[i].UserID < ranked[j].UserID
	})
	return ranked
}

// ListMatches returns the pending and accepted matches of userID.
func (s *Service) ListMatches(ctx context.Context, userID int64) ([]MatchView, error) {
	views, err := s.Store.ListForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if views == nil {
		views = []MatchView{}
	}
	for i := range views {
		if len(views[i].ScoreBreakdown) == 0 {
			views[i].ScoreBreakdown = datatypes.JSON("{}")
		}
	}
	return views, nil
}

// AcceptMatch accepts a pending match userID takes part in.
func (s *Service) AcceptMatch(ctx context.Context, matchID, userID int64) error {
	return s.transition(ctx, "accept", matchID, userID, s.Store.Accept)
}

// RejectMatch rejects a pending match userID takes part in.
func (s *Service) RejectMatch(ctx context.Context, matchID, userID int64) error {
	return s.transition(ctx, "reject", matchID, userID, s.Store.Reject)
}

func (s *Service) transition(ctx context.Context, action string, matchID, userID int64, apply func(context.Context, int64, int64) error) error {
	err := apply(ctx, matchID, userID)
	switch {
	case err == nil:
		metrics.RecordTransition(action, "ok")
		logging.Ctx(ctx).Info().Int64("match_id", matchID).Str("action", action).Msg("Match updated")
		return nil
	case errors.Is(err, ErrMatchNotFound):
		metrics.RecordTransition(action, "not_found")
		return err
	default:
		metrics.RecordTransition(action, "error")
		return fmt.Errorf("error trying to %s match %d: %w", action, matchID, err)
	}
}
