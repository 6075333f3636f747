package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port            int
	DatabaseURL     string
	DatabaseType    string
	DataFile        string
	Latency         time.Duration
	BackgroundImage string
	LogLevel        slog.Level
}

type EditorConfig struct {
	APIURL          string
	BackgroundImage string
	WindowScale     float64
	LogLevel        slog.Level
}

// Defaults
const (
	DefaultPort           = 3318
	DefaultDatabaseURL    = "file:polygons.db"
	DefaultDatabaseType   = "sqlite"
	DefaultDataFile       = "data/polygons.json"
	DefaultAPIURL         = "http://localhost:3318"
	DefaultEditorBackdrop = "https://picsum.photos/1920/1080"
	DefaultWindowScale    = 1.0
	defaultEnvFile        = ".env"
)

// ParseFlags parses server flags. Unset flags fall back to environment
// variables (including those loaded from the .env file), then defaults.
func ParseFlags(args []string) (Config, error) {
	var cfg Config
	var envFile, latency, level string

	fs := flag.NewFlagSet("polycanvas", flag.ContinueOnError)

	// Network config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite or postgres)")

	// Storage and behaviour
	fs.StringVar(&cfg.DataFile, "data-file", "", "JSON fallback store path")
	fs.StringVar(&latency, "latency", "", "Simulated latency per polygon operation (e.g. 5s)")
	fs.StringVar(&cfg.BackgroundImage, "background", "", "Background image path or URL for previews")
	fs.StringVar(&level, "log-level", "", "Log level (debug, info, warn, error)")
	fs.StringVar(&envFile, "env-file", defaultEnvFile, "Dotenv file to load")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if err := loadEnvFile(envFile); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = DefaultPort
		}
	}
	if cfg.Port <= 0 || cfg.Port > 65535 {
		return Config{}, fmt.Errorf("port %d out of range", cfg.Port)
	}

	cfg.DatabaseURL = firstNonEmpty(cfg.DatabaseURL, os.Getenv("DATABASE_URL"), DefaultDatabaseURL)
	cfg.DatabaseType = firstNonEmpty(cfg.DatabaseType, os.Getenv("DATABASE_TYPE"), DefaultDatabaseType)
	if cfg.DatabaseType != "sqlite" && cfg.DatabaseType != "postgres" {
		return Config{}, fmt.Errorf("unsupported database type %q", cfg.DatabaseType)
	}

	cfg.DataFile = firstNonEmpty(cfg.DataFile, os.Getenv("DATA_FILE"), DefaultDataFile)
	cfg.BackgroundImage = firstNonEmpty(cfg.BackgroundImage, os.Getenv("BACKGROUND_IMAGE"))

	latency = firstNonEmpty(latency, os.Getenv("POLYGON_LATENCY"), "0s")
	d, err := time.ParseDuration(latency)
	if err != nil || d < 0 {
		return Config{}, fmt.Errorf("invalid latency %q", latency)
	}
	cfg.Latency = d

	cfg.LogLevel, err = parseLevel(firstNonEmpty(level, os.Getenv("LOG_LEVEL")))
	if err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// ParseEditorFlags parses flags for the desktop editor.
func ParseEditorFlags(args []string) (EditorConfig, error) {
	var cfg EditorConfig
	var envFile, level string

	fs := flag.NewFlagSet("polyedit", flag.ContinueOnError)

	fs.StringVar(&cfg.APIURL, "api", "", "Polygon API base URL")
	fs.StringVar(&cfg.BackgroundImage, "background", "", "Background image path or URL")
	fs.Float64Var(&cfg.WindowScale, "scale", 0, "Window scale relative to the 960x540 canvas")
	fs.StringVar(&level, "log-level", "", "Log level (debug, info, warn, error)")
	fs.StringVar(&envFile, "env-file", defaultEnvFile, "Dotenv file to load")

	if err := fs.Parse(args); err != nil {
		return EditorConfig{}, err
	}

	if err := loadEnvFile(envFile); err != nil {
		return EditorConfig{}, err
	}

	cfg.APIURL = firstNonEmpty(cfg.APIURL, os.Getenv("API_URL"), DefaultAPIURL)
	cfg.BackgroundImage = firstNonEmpty(cfg.BackgroundImage, os.Getenv("BACKGROUND_IMAGE"), DefaultEditorBackdrop)

	if cfg.WindowScale == 0 {
		if s := os.Getenv("WINDOW_SCALE"); s != "" {
			scale, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return EditorConfig{}, errors.New("invalid WINDOW_SCALE env variable")
			}
			cfg.WindowScale = scale
		} else {
			cfg.WindowScale = DefaultWindowScale
		}
	}
	if cfg.WindowScale <= 0 {
		return EditorConfig{}, fmt.Errorf("window scale must be positive, got %v", cfg.WindowScale)
	}

	var err error
	cfg.LogLevel, err = parseLevel(firstNonEmpty(level, os.Getenv("LOG_LEVEL")))
	if err != nil {
		return EditorConfig{}, err
	}

	return cfg, nil
}

// SetupLogging installs a text handler on stderr as the default logger.
func SetupLogging(level slog.Level) {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

// loadEnvFile loads variables that are not already set. A missing file is
// not an error.
func loadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	err := godotenv.Load(path)
	if err == nil || errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return fmt.Errorf("failed to load %s: %w", path, err)
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if s == "" {
		return slog.LevelInfo, nil
	}
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log level %q", s)
	}
	return level, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
