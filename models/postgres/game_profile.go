package postgres

import "time"

/*
 * 'UserProfile' holds the public-facing player card. Matching reads
 * region, timezone, skill_level, looking_for and profile_visibility.
 */
type UserProfile struct {
	UserID            int64             `gorm:"primaryKey"`
	AvatarURL         string            `gorm:"size:500"`
	Bio               string            `gorm:"size:1000"`
	Region            string            `gorm:"size:100"`
	Timezone          string            `gorm:"size:50"`
	SkillLevel        SkillLevel        `gorm:"type:varchar(20);default:'beginner'"`
	LookingFor        LookingFor        `gorm:"type:varchar(20);default:'both'"`
	ProfileVisibility ProfileVisibility `gorm:"type:varchar(20);default:'public';index"`
	UpdatedAt         time.Time
}

// Game is a catalog entry users can add to their profile.
type Game struct {
	ID       int64  `gorm:"primaryKey;autoIncrement"`
	Name     string `gorm:"size:255;not null;uniqueIndex"`
	Category string `gorm:"size:100"`
	IconURL  string `gorm:"size:500"`
}

/*
 * 'UserGame' links a user to a game with a per-game skill level.
 * (user_id, game_id) is unique.
 */
type UserGame struct {
	ID          int64      `gorm:"primaryKey;autoIncrement"`
	UserID      int64      `gorm:"not null;uniqueIndex:idx_user_games_pair"`
	GameID      int64      `gorm:"not null;uniqueIndex:idx_user_games_pair;index"`
	SkillLevel  SkillLevel `gorm:"type:varchar(20);default:'beginner'"`
	GameRank    string     `gorm:"size:100"`
	HoursPlayed int        `gorm:"default:0"`
	IsFavorite  bool       `gorm:"default:false"`

	Game Game `gorm:"foreignKey:GameID;constraint:OnDelete:CASCADE"`
}
