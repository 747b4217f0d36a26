package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/Nixie-Tech-LLC/athan/internal/calendar"
	"github.com/Nixie-Tech-LLC/athan/internal/loader"
)

// Generation describes one calendar run.
type Generation struct {
	Year          int
	WeekStart     time.Weekday
	InputDir      string
	InputFormat   loader.Format
	EventsFile    string
	HadithFile    string
	OutputDir     string
	OutputVersion string
	Granularities calendar.Granularity
}

func (g Generation) Source() loader.Source {
	return loader.Source{
		Dir:        g.InputDir,
		Format:     g.InputFormat,
		EventsFile: g.EventsFile,
		HadithFile: g.HadithFile,
	}
}

// Validate checks the fields a run cannot start without.
func (g Generation) Validate() error {
	if g.Year < calendar.MinYear || g.Year > calendar.MaxYear {
		return fmt.Errorf("year %d out of range %d..%d", g.Year, calendar.MinYear, calendar.MaxYear)
	}
	if g.InputDir == "" {
		return fmt.Errorf("input directory is required")
	}
	if g.Granularities == 0 {
		return fmt.Errorf("at least one granularity is required")
	}
	return nil
}

// Config holds environment-based settings
type Config struct {
	Generation Generation

	LogLevel       string
	ServerAddress  string
	DatabaseURL    string
	MigrationsPath string

	RedisAddress  string
	RedisUsername string
	RedisPassword string

	MQTTBrokerURL string
	MQTTClientID  string

	UseSpaces       bool
	SpacesEndpoint  string
	SpacesRegion    string
	SpacesBucket    string
	SpacesCDNURL    string
	SpacesAccessKey string
	SpacesSecretKey string

	JWTSecret         string
	AdminPasswordHash string
	RegenerateCron    string
	City              string
}

// Load reads configuration from environment variables. Only malformed values
// are errors; required-ness is checked by the command that needs the value.
func Load() (*Config, error) {
	cfg := &Config{
		LogLevel:          getenv("LOG_LEVEL", "info"),
		ServerAddress:     getenv("SERVER_ADDRESS", ":8080"),
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		MigrationsPath:    getenv("MIGRATIONS_PATH", "./migrations"),
		RedisAddress:      os.Getenv("REDIS_ADDRESS"),
		RedisUsername:     os.Getenv("REDIS_USERNAME"),
		RedisPassword:     os.Getenv("REDIS_PASSWORD"),
		MQTTBrokerURL:     os.Getenv("MQTT_BROKER_URL"),
		MQTTClientID:      getenv("MQTT_CLIENT_ID", "athan-generator"),
		UseSpaces:         os.Getenv("USE_SPACES") == "true",
		SpacesEndpoint:    os.Getenv("SPACES_ENDPOINT"),
		SpacesRegion:      os.Getenv("SPACES_REGION"),
		SpacesBucket:      os.Getenv("SPACES_BUCKET"),
		SpacesCDNURL:      os.Getenv("SPACES_CDN_URL"),
		SpacesAccessKey:   os.Getenv("SPACES_ACCESS_KEY"),
		SpacesSecretKey:   os.Getenv("SPACES_SECRET_KEY"),
		JWTSecret:         os.Getenv("JWT_SECRET"),
		AdminPasswordHash: os.Getenv("ADMIN_PASSWORD_HASH"),
		RegenerateCron:    os.Getenv("REGENERATE_CRON"),
		City:              os.Getenv("ATHAN_CITY"),
	}

	gen := Generation{
		InputDir:      os.Getenv("ATHAN_INPUT_DIR"),
		EventsFile:    os.Getenv("ATHAN_EVENTS_FILE"),
		HadithFile:    os.Getenv("ATHAN_HADITH_FILE"),
		OutputDir:     getenv("ATHAN_OUTPUT_DIR", "./output"),
		OutputVersion: getenv("ATHAN_OUTPUT_VERSION", "v1"),
	}

	if v := os.Getenv("ATHAN_YEAR"); v != "" {
		year, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return nil, fmt.Errorf("ATHAN_YEAR: %w", err)
		}
		gen.Year = year
	} else {
		gen.Year = time.Now().Year()
	}

	var err error
	if gen.WeekStart, err = calendar.ParseWeekday(getenv("ATHAN_WEEK_START", "saturday")); err != nil {
		return nil, fmt.Errorf("ATHAN_WEEK_START: %w", err)
	}
	if gen.InputFormat, err = loader.ParseFormat(os.Getenv("ATHAN_INPUT_FORMAT")); err != nil {
		return nil, fmt.Errorf("ATHAN_INPUT_FORMAT: %w", err)
	}
	if gen.Granularities, err = calendar.ParseGranularities(os.Getenv("ATHAN_GRANULARITIES")); err != nil {
		return nil, fmt.Errorf("ATHAN_GRANULARITIES: %w", err)
	}
	cfg.Generation = gen

	if cfg.UseSpaces && (cfg.SpacesBucket == "" || cfg.SpacesEndpoint == "") {
		return nil, fmt.Errorf("USE_SPACES requires SPACES_ENDPOINT and SPACES_BUCKET")
	}
	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
