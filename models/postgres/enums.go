package postgres

import "strings"

// SkillLevel is the self-declared level of a player, either globally on the
// profile or per game in user_games.
type SkillLevel string

const (
	SkillBeginner     SkillLevel = "beginner"
	SkillIntermediate SkillLevel = "intermediate"
	SkillAdvanced     SkillLevel = "advanced"
	SkillExpert       SkillLevel = "expert"
)

// SkillLevels lists every accepted skill level, lowest first.
var SkillLevels = []SkillLevel{SkillBeginner, SkillIntermediate, SkillAdvanced, SkillExpert}

// ParseSkillLevel normalizes free text into a SkillLevel. ok is false when the
// value is not one of the known levels.
func ParseSkillLevel(s string) (level SkillLevel, ok bool) {
	level = SkillLevel(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range SkillLevels {
		if level == known {
			return level, true
		}
	}
	return level, false
}

// LookingFor is what kind of play a user wants from a match.
type LookingFor string

const (
	LookingCasual      LookingFor = "casual"
	LookingCompetitive LookingFor = "competitive"
	LookingBoth        LookingFor = "both"
)

// LookingForValues lists every accepted looking_for value.
var LookingForValues = []LookingFor{LookingCasual, LookingCompetitive, LookingBoth}

// ParseLookingFor normalizes free text into a LookingFor value.
func ParseLookingFor(s string) (value LookingFor, ok bool) {
	value = LookingFor(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range LookingForValues {
		if value == known {
			return value, true
		}
	}
	return value, false
}

// ProfileVisibility controls who can see a profile. Private profiles are never
// surfaced as match candidates.
type ProfileVisibility string

const (
	VisibilityPublic  ProfileVisibility = "public"
	VisibilityFriends ProfileVisibility = "friends"
	VisibilityPrivate ProfileVisibility = "private"
)

// MatchStatus is the lifecycle state of a Match row.
//
//	pending -> accepted
//	pending -> rejected
//
// accepted and rejected are terminal.
type MatchStatus string

const (
	MatchPending  MatchStatus = "pending"
	MatchAccepted MatchStatus = "accepted"
	MatchRejected MatchStatus = "rejected"
)

// Terminal reports whether no further transition is allowed out of s.
func (s MatchStatus) Terminal() bool {
	return s == MatchAccepted || s == MatchRejected
}

// CanTransition reports whether the state machine allows moving from s to next.
func (s MatchStatus) CanTransition(next MatchStatus) bool {
	return s == MatchPending && next.Terminal()
}
