package matching

import (
	"math"
	"strconv"
	"strings"

	models "Squadup/models/postgres"
)

// Scoring weights. Each component is capped before summation.
const (
	commonGameWeight  = 30.0
	commonGameCap     = 60.0
	gameSkillWeight   = 10.0
	gameSkillCap      = 30.0
	skillWeight       = 20.0
	regionWeight      = 15.0
	timezoneWeight    = 10.0
	timezoneMaxDiff   = 2
	timezoneDecay     = 0.3
	lookingForWeight  = 15.0
	fallbackAffinity  = 0.5
	maxCompatibility  = 100
	defaultSkill      = models.SkillIntermediate
	defaultLookingFor = models.LookingBoth
)

var skillCompatibility = map[[2]models.SkillLevel]float64{
	{models.SkillBeginner, models.SkillBeginner}:         1.0,
	{models.SkillBeginner, models.SkillIntermediate}:     0.7,
	{models.SkillBeginner, models.SkillAdvanced}:         0.3,
	{models.SkillBeginner, models.SkillExpert}:           0.1,
	{models.SkillIntermediate, models.SkillIntermediate}: 1.0,
	{models.SkillIntermediate, models.SkillAdvanced}:     0.8,
	{models.SkillIntermediate, models.SkillExpert}:       0.4,
	{models.SkillAdvanced, models.SkillAdvanced}:         1.0,
	{models.SkillAdvanced, models.SkillExpert}:           0.8,
	{models.SkillExpert, models.SkillExpert}:             1.0,
}

var lookingForCompatibility = map[[2]models.LookingFor]float64{
	{models.LookingCasual, models.LookingCasual}:           1.0,
	{models.LookingCasual, models.LookingCompetitive}:      0.3,
	{models.LookingCasual, models.LookingBoth}:             0.7,
	{models.LookingCompetitive, models.LookingCompetitive}: 1.0,
	{models.LookingCompetitive, models.LookingBoth}:        0.8,
	{models.LookingBoth, models.LookingBoth}:               1.0,
}

// Profile is the part of a user profile the scorer looks at. Empty strings
// mean "not set".
type Profile struct {
	SkillLevel string
	LookingFor string
	Region     string
	Timezone   string
}

// GameEntry is one row of a user's game list.
type GameEntry struct {
	GameID     int64  `gorm:"column:game_id"`
	SkillLevel string `gorm:"column:skill_level"`
}

// CommonGamesScore is the shared-games component of a Breakdown.
type CommonGamesScore struct {
	Count int     `json:"count"`
	Score float64 `json:"score"`
}

// Breakdown holds the points awarded per dimension, before rounding.
type Breakdown struct {
	CommonGames     CommonGamesScore `json:"common_games"`
	GameSkillMatch  float64          `json:"game_skill_match"`
	SkillMatch      float64          `json:"skill_match"`
	RegionMatch     float64          `json:"region_match"`
	TimezoneMatch   float64          `json:"timezone_match"`
	LookingForMatch float64          `json:"looking_for_match"`
}

// Sum adds every component.
func (b Breakdown) Sum() float64 {
	return b.CommonGames.Score + b.GameSkillMatch + b.SkillMatch +
		b.RegionMatch + b.TimezoneMatch + b.LookingForMatch
}

// Score is the result of comparing two users.
type Score struct {
	Total           int       `json:"total_score"`
	Breakdown       Breakdown `json:"breakdown"`
	CommonGameCount int       `json:"common_games_count"`
}

// SkillCompatibility returns the affinity between two skill levels in [0,1].
// Empty levels count as intermediate; anything unknown gets 0.5.
func SkillCompatibility(a, b string) float64 {
	la := normalizeSkill(a)
	lb := normalizeSkill(b)
	if v, ok := skillCompatibility[[2]models.SkillLevel{la, lb}]; ok {
		return v
	}
	if v, ok := skillCompatibility[[2]models.SkillLevel{lb, la}]; ok {
		return v
	}
	return fallbackAffinity
}

// LookingForCompatibility returns the affinity between two looking_for values.
// Empty values count as "both"; anything unknown gets 0.5.
func LookingForCompatibility(a, b string) float64 {
	la := normalizeLookingFor(a)
	lb := normalizeLookingFor(b)
	if v, ok := lookingForCompatibility[[2]models.LookingFor{la, lb}]; ok {
		return v
	}
	if v, ok := lookingForCompatibility[[2]models.LookingFor{lb, la}]; ok {
		return v
	}
	return fallbackAffinity
}

// ComputeScore compares a requester with a candidate. It never fails: missing
// or unknown values fall back to fixed defaults.
func ComputeScore(requester Profile, requesterGames []GameEntry, candidate Profile, candidateGames []GameEntry) Score {
	var b Breakdown

	mine := make(map[int64]string, len(requesterGames))
	for _, g := range requesterGames {
		mine[g.GameID] = g.SkillLevel
	}
	theirs := make(map[int64]string, len(candidateGames))
	for _, g := range candidateGames {
		theirs[g.GameID] = g.SkillLevel
	}

	common := 0
	gameSkill := 0.0
	for id, skill := range mine {
		other, ok := theirs[id]
		if !ok {
			continue
		}
		common++
		gameSkill += gameSkillWeight * SkillCompatibility(skill, other)
	}

	b.CommonGames = CommonGamesScore{
		Count: common,
		Score: math.Min(float64(common)*commonGameWeight, commonGameCap),
	}
	b.GameSkillMatch = math.Min(gameSkill, gameSkillCap)
	b.SkillMatch = skillWeight * SkillCompatibility(requester.SkillLevel, candidate.SkillLevel)
	b.RegionMatch = regionScore(requester.Region, candidate.Region)
	b.TimezoneMatch = timezoneScore(requester.Timezone, candidate.Timezone)
	b.LookingForMatch = lookingForWeight * LookingForCompatibility(requester.LookingFor, candidate.LookingFor)

	return Score{Total: roundScore(b.Sum()), Breakdown: b, CommonGameCount: common}
}

// roundScore rounds half to even and clamps to [0, 100].
func roundScore(raw float64) int {
	total := int(math.RoundToEven(raw))
	if total > maxCompatibility {
		return maxCompatibility
	}
	if total < 0 {
		return 0
	}
	return total
}

func normalizeSkill(s string) models.SkillLevel {
	if strings.TrimSpace(s) == "" {
		return defaultSkill
	}
	level, _ := models.ParseSkillLevel(s)
	return level
}

func normalizeLookingFor(s string) models.LookingFor {
	if strings.TrimSpace(s) == "" {
		return defaultLookingFor
	}
	value, _ := models.ParseLookingFor(s)
	return value
}

func regionScore(a, b string) float64 {
	a, b = strings.TrimSpace(a), strings.TrimSpace(b)
	if a == "" || b == "" {
		return 0
	}
	if strings.EqualFold(a, b) {
		return regionWeight
	}
	return 0
}

func timezoneScore(a, b string) float64 {
	if strings.TrimSpace(a) == "" || strings.TrimSpace(b) == "" {
		return 0
	}
	if a == b {
		return timezoneWeight
	}
	ta, ok := parseUTCOffset(a)
	if !ok {
		return 0
	}
	tb, ok := parseUTCOffset(b)
	if !ok {
		return 0
	}
	diff := ta - tb
	if diff < 0 {
		diff = -diff
	}
	if diff > timezoneMaxDiff {
		return 0
	}
	return timezoneWeight * (1 - float64(diff)*timezoneDecay)
}

// parseUTCOffset reads whole-hour offsets such as "UTC+1", "UTC-5", "+3",
// "2" or a bare "UTC" (zero). Whatever is left after dropping "UTC" and "+"
// must be a number: "UTC " does not parse.
func parseUTCOffset(tz string) (int, bool) {
	s := strings.ReplaceAll(tz, "UTC", "")
	s = strings.ReplaceAll(s, "+", "")
	if s == "" {
		return 0, true
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}
