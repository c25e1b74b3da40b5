package postgres

import (
	"database/sql"
	"fmt"
	"net/url"
	"os"
	"time"

	"Squadup/logging"
	models "Squadup/models/postgres"

	_ "github.com/lib/pq"
	pgdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Config holds the PostgreSQL connection settings.
type Config struct {
	User     string
	Password string
	Host     string
	Port     string
	Database string
	// Verbose logs every statement through the application logger.
	Verbose bool
}

// FromEnv reads POSTGRES_* and VERBOSE_POSTGRES.
func FromEnv() Config {
	port := os.Getenv("POSTGRES_PORT")
	if port == "" {
		port = "5432"
	}
	return Config{
		User:     os.Getenv("POSTGRES_USER"),
		Password: os.Getenv("POSTGRES_PASSWORD"),
		Host:     os.Getenv("POSTGRES_HOST"),
		Port:     port,
		Database: os.Getenv("POSTGRES_DATABASE"),
		Verbose:  os.Getenv("VERBOSE_POSTGRES") == "true",
	}
}

// DSN builds the lib/pq connection URL.
func (c Config) DSN() string {
	u := url.URL{
		Scheme: "postgresql",
		User:   url.UserPassword(c.User, c.Password),
		Host:   c.Host + ":" + c.Port,
		Path:   "/" + c.Database,
	}
	return u.String()
}

// ConnectGORM returns a GORM DB instance connected to PostgreSQL
func ConnectGORM(cfg Config) (*gorm.DB, error) {
	log := logging.WithComponent("postgres")

	// NOTE: See https://github.com/go-gorm/gorm/issues/5409
	sqlDB, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("error opening PostgreSQL connection: %w", err)
	}

	gormConfig := &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)}
	if cfg.Verbose {
		gormConfig.Logger = logger.New(
			&log, // zerolog.Logger implements Printf
			logger.Config{
				SlowThreshold:             time.Second,
				LogLevel:                  logger.Info,
				IgnoreRecordNotFoundError: false,
				Colorful:                  false,
			},
		)
	}

	db, err := gorm.Open(pgdriver.New(pgdriver.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), gormConfig)
	if err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("error connecting to PostgreSQL with GORM: %w", err)
	}

	// Verify connection
	if err := sqlDB.Ping(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("error pinging PostgreSQL: %w", err)
	}

	// Set connection pool settings
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	log.Info().Str("host", cfg.Host).Str("database", cfg.Database).Msg("Connected to PostgreSQL")
	return db, nil
}

// MigrateDatabase migrates the GORM models to the PostgreSQL database.
// The pair order check on matches comes from the model's check tag.
func MigrateDatabase(db *gorm.DB) error {
	// NOTE: needs postgres driver v1.4.0, later versions break AutoMigrate on
	// existing tables (https://github.com/pilinux/gorest/issues/167)
	err := db.AutoMigrate(
		&models.User{},
		&models.UserProfile{},
		&models.Game{},
		&models.UserGame{},
		&models.Match{},
	)
	if err != nil {
		return fmt.Errorf("auto migration failed: %w", err)
	}
	logging.Info().Msg("PostgreSQL database migrated successfully")
	return nil
}
