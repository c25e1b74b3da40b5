package matching

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var candidateColumns = []string{
	"user_id", "username", "avatar_url", "bio", "skill_level",
	"looking_for", "timezone", "region", "games",
}

func TestFindCandidates(t *testing.T) {
	db, mock := newMockDB(t)
	finder := NewCandidateFinder(db)

	mock.ExpectQuery(`(?s)FROM users u.*profile_visibility <> \$2.*NOT EXISTS.*LIMIT \$7`).
		WithArgs(int64(1), "private", int64(1), sqlmock.AnyArg(), int64(1), int64(1), DefaultFetchLimit).
		WillReturnRows(sqlmock.NewRows(candidateColumns).
			AddRow(4, "nova", "", "", "advanced", "competitive", "UTC+1", "EU", "Dota 2, Valorant").
			AddRow(2, "kite", "https://cdn/k.png", "hi", "", "", "", "", "Valorant"))

	candidates, err := finder.FindCandidates(context.Background(), 1, nil)

	require.NoError(t, err)
	require.Len(t, candidates, 2)
	assert.Equal(t, int64(4), candidates[0].UserID)
	assert.Equal(t, "Dota 2, Valorant", candidates[0].Games)
	assert.Equal(t, Profile{SkillLevel: "advanced", LookingFor: "competitive", Region: "EU", Timezone: "UTC+1"}, candidates[0].Profile())
	assert.Equal(t, "https://cdn/k.png", candidates[1].AvatarURL)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindCandidatesUsesFetchLimit(t *testing.T) {
	db, mock := newMockDB(t)
	finder := &CandidateFinder{DB: db, FetchLimit: 5}

	mock.ExpectQuery(`FROM users u`).
		WithArgs(int64(1), "private", int64(1), sqlmock.AnyArg(), int64(1), int64(1), 5).
		WillReturnRows(sqlmock.NewRows(candidateColumns))

	candidates, err := finder.FindCandidates(context.Background(), 1, []int64{9})

	require.NoError(t, err)
	assert.Empty(t, candidates)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindCandidatesError(t *testing.T) {
	db, mock := newMockDB(t)
	finder := NewCandidateFinder(db)

	mock.ExpectQuery(`FROM users u`).WillReturnError(errors.New("too many connections"))

	_, err := finder.FindCandidates(context.Background(), 1, nil)
	assert.ErrorContains(t, err, "too many connections")

	_, err = finder.FindCandidates(context.Background(), 0, nil)
	assert.ErrorIs(t, err, ErrInvalidUser)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRequesterProfile(t *testing.T) {
	db, mock := newMockDB(t)
	finder := NewCandidateFinder(db)

	mock.ExpectQuery(`FROM user_profiles\s+WHERE user_id = \$1`).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"skill_level", "looking_for", "region", "timezone"}).
			AddRow("expert", "casual", "EU", "UTC+2"))
	mock.ExpectQuery(`FROM user_profiles`).
		WithArgs(int64(2)).
		WillReturnRows(sqlmock.NewRows([]string{"skill_level", "looking_for", "region", "timezone"}))

	p, err := finder.RequesterProfile(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, Profile{SkillLevel: "expert", LookingFor: "casual", Region: "EU", Timezone: "UTC+2"}, p)

	p, err = finder.RequesterProfile(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, Profile{}, p)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserGames(t *testing.T) {
	db, mock := newMockDB(t)
	finder := NewCandidateFinder(db)

	mock.ExpectQuery(`FROM user_games\s+WHERE user_id = \$1`).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"game_id", "skill_level"}).
			AddRow(1, "beginner").
			AddRow(3, ""))

	got, err := finder.UserGames(context.Background(), 1)

	require.NoError(t, err)
	assert.Equal(t, []GameEntry{{GameID: 1, SkillLevel: "beginner"}, {GameID: 3, SkillLevel: ""}}, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGamesByUser(t *testing.T) {
	db, mock := newMockDB(t)
	finder := NewCandidateFinder(db)

	mock.ExpectQuery(`WHERE user_id = ANY\(\$1\)`).
		WithArgs(sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "game_id", "skill_level"}).
			AddRow(2, 1, "expert").
			AddRow(2, 4, "beginner").
			AddRow(5, 1, ""))

	got, err := finder.GamesByUser(context.Background(), []int64{2, 5, 6})

	require.NoError(t, err)
	assert.Len(t, got[2], 2)
	assert.Equal(t, []GameEntry{{GameID: 1}}, got[5])
	assert.Empty(t, got[6])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGamesByUserWithoutIDs(t *testing.T) {
	db, mock := newMockDB(t)

	got, err := NewCandidateFinder(db).GamesByUser(context.Background(), nil)

	require.NoError(t, err)
	assert.Empty(t, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}
