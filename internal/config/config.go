package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/riskibarqy/sports-dw/internal/platform/logging"
)

// Config stores runtime configuration for the ETL and fetch commands.
type Config struct {
	AppEnv                        string
	ServiceName                   string
	ServiceVersion                string
	LogLevel                      logging.Level
	DBURL                         string
	DBDisablePreparedBinary       bool
	MigrationsDir                 string
	MongoURI                      string
	MongoDB                       string
	MongoTimeout                  time.Duration
	ETLSports                     []string
	APISportsKey                  string
	APISportsTimeout              time.Duration
	APISportsMaxRetries           int
	APISportsCircuitEnabled       bool
	APISportsCircuitFailureCount  int
	APISportsCircuitOpenTimeout   time.Duration
	APISportsCircuitHalfOpenMaxRq int
	FetchSports                   []string
	FetchMaxWorkers               int
	SoccerLeagueID                int64
	SoccerSeason                  int
	BasketballLeagueID            int64
	BasketballSeason              string
	BasketballTeamID              int64
	F1Season                      int
	ScheduleCron                  string
	UptraceEnabled                bool
	UptraceDSN                    string
	PyroscopeEnabled              bool
	PyroscopeServerAddress        string
	PyroscopeAppName              string
	PyroscopeAuthToken            string
	PyroscopeUploadRate           time.Duration
}

// LoadDotEnv reads .env files into the process environment without
// overriding variables that are already set. Missing files are ignored.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, file := range files {
		if err := godotenv.Load(file); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("load %s: %w", file, err)
		}
	}
	return nil
}

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	dbDisablePreparedBinary, err := strconv.ParseBool(getEnv("DB_DISABLE_PREPARED_BINARY_RESULT", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse DB_DISABLE_PREPARED_BINARY_RESULT: %w", err)
	}

	mongoTimeout, err := time.ParseDuration(getEnv("MONGO_TIMEOUT", "10s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse MONGO_TIMEOUT: %w", err)
	}
	if mongoTimeout <= 0 {
		return Config{}, fmt.Errorf("MONGO_TIMEOUT must be > 0")
	}
	mongoDB := strings.TrimSpace(getEnv("MONGO_DB", "sports_db"))

	etlSports := splitCSV(getEnv("ETL_SPORTS", "soccer,basketball,f1"))
	if len(etlSports) == 0 {
		return Config{}, fmt.Errorf("ETL_SPORTS cannot be empty")
	}

	apiSportsTimeout, err := time.ParseDuration(getEnv("APISPORTS_TIMEOUT", "20s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APISPORTS_TIMEOUT: %w", err)
	}
	if apiSportsTimeout <= 0 {
		return Config{}, fmt.Errorf("APISPORTS_TIMEOUT must be > 0")
	}
	apiSportsMaxRetries, err := getEnvAsInt("APISPORTS_MAX_RETRIES", 1)
	if err != nil {
		return Config{}, fmt.Errorf("parse APISPORTS_MAX_RETRIES: %w", err)
	}
	if apiSportsMaxRetries < 0 {
		return Config{}, fmt.Errorf("APISPORTS_MAX_RETRIES must be >= 0")
	}
	apiSportsCircuitEnabled, err := strconv.ParseBool(getEnv("APISPORTS_CIRCUIT_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APISPORTS_CIRCUIT_ENABLED: %w", err)
	}
	apiSportsCircuitFailureCount, err := getEnvAsInt("APISPORTS_CIRCUIT_FAILURE_COUNT", 5)
	if err != nil {
		return Config{}, fmt.Errorf("parse APISPORTS_CIRCUIT_FAILURE_COUNT: %w", err)
	}
	if apiSportsCircuitFailureCount < 1 {
		return Config{}, fmt.Errorf("APISPORTS_CIRCUIT_FAILURE_COUNT must be >= 1")
	}
	apiSportsCircuitOpenTimeout, err := time.ParseDuration(getEnv("APISPORTS_CIRCUIT_OPEN_TIMEOUT", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APISPORTS_CIRCUIT_OPEN_TIMEOUT: %w", err)
	}
	if apiSportsCircuitOpenTimeout <= 0 {
		return Config{}, fmt.Errorf("APISPORTS_CIRCUIT_OPEN_TIMEOUT must be > 0")
	}
	apiSportsCircuitHalfOpenMaxReq, err := getEnvAsInt("APISPORTS_CIRCUIT_HALF_OPEN_MAX_REQ", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse APISPORTS_CIRCUIT_HALF_OPEN_MAX_REQ: %w", err)
	}
	if apiSportsCircuitHalfOpenMaxReq < 1 {
		return Config{}, fmt.Errorf("APISPORTS_CIRCUIT_HALF_OPEN_MAX_REQ must be >= 1")
	}

	fetchSports := splitCSV(getEnv("FETCH_SPORTS", "soccer,basketball,f1"))
	if len(fetchSports) == 0 {
		return Config{}, fmt.Errorf("FETCH_SPORTS cannot be empty")
	}
	fetchMaxWorkers, err := getEnvAsInt("FETCH_MAX_WORKERS", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse FETCH_MAX_WORKERS: %w", err)
	}
	if fetchMaxWorkers <= 0 {
		return Config{}, fmt.Errorf("FETCH_MAX_WORKERS must be > 0")
	}

	soccerLeagueID, err := getEnvAsInt64("SOCCER_LEAGUE_ID", 39)
	if err != nil {
		return Config{}, fmt.Errorf("parse SOCCER_LEAGUE_ID: %w", err)
	}
	soccerSeason, err := getEnvAsInt("SOCCER_SEASON", 2023)
	if err != nil {
		return Config{}, fmt.Errorf("parse SOCCER_SEASON: %w", err)
	}
	basketballLeagueID, err := getEnvAsInt64("BASKETBALL_LEAGUE_ID", 12)
	if err != nil {
		return Config{}, fmt.Errorf("parse BASKETBALL_LEAGUE_ID: %w", err)
	}
	basketballTeamID, err := getEnvAsInt64("BASKETBALL_TEAM_ID", 1)
	if err != nil {
		return Config{}, fmt.Errorf("parse BASKETBALL_TEAM_ID: %w", err)
	}
	f1Season, err := getEnvAsInt("F1_SEASON", 2023)
	if err != nil {
		return Config{}, fmt.Errorf("parse F1_SEASON: %w", err)
	}

	uptraceEnabled, err := strconv.ParseBool(getEnv("UPTRACE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_ENABLED: %w", err)
	}
	uptraceDSN := strings.TrimSpace(getEnv("UPTRACE_DSN", ""))
	if uptraceDSN == "" {
		uptraceDSN = parseUptraceDSNFromOTLPHeaders(getEnv("OTEL_EXPORTER_OTLP_HEADERS", ""))
	}
	if uptraceEnabled && uptraceDSN == "" {
		return Config{}, fmt.Errorf("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	}

	pyroscopeEnabled, err := strconv.ParseBool(getEnv("PYROSCOPE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_ENABLED: %w", err)
	}
	pyroscopeServerAddress := strings.TrimSpace(getEnv("PYROSCOPE_SERVER_ADDRESS", ""))
	if pyroscopeEnabled && pyroscopeServerAddress == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_SERVER_ADDRESS is required when PYROSCOPE_ENABLED=true")
	}
	pyroscopeUploadRate, err := time.ParseDuration(getEnv("PYROSCOPE_UPLOAD_RATE", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_UPLOAD_RATE: %w", err)
	}
	if pyroscopeUploadRate <= 0 {
		return Config{}, fmt.Errorf("PYROSCOPE_UPLOAD_RATE must be > 0")
	}

	cfg := Config{
		AppEnv:                        appEnv,
		ServiceName:                   getEnv("APP_SERVICE_NAME", "sports-dw"),
		ServiceVersion:                getEnv("APP_SERVICE_VERSION", "dev"),
		LogLevel:                      logging.ParseLevel(getEnv("APP_LOG_LEVEL", "info")),
		DBURL:                         resolveDBURL(),
		DBDisablePreparedBinary:       dbDisablePreparedBinary,
		MigrationsDir:                 getEnv("MIGRATIONS_DIR", "./db/migrations"),
		MongoURI:                      getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:                       mongoDB,
		MongoTimeout:                  mongoTimeout,
		ETLSports:                     etlSports,
		APISportsKey:                  strings.TrimSpace(getEnv("APISPORTS_KEY", getEnv("API_KEY", ""))),
		APISportsTimeout:              apiSportsTimeout,
		APISportsMaxRetries:           apiSportsMaxRetries,
		APISportsCircuitEnabled:       apiSportsCircuitEnabled,
		APISportsCircuitFailureCount:  apiSportsCircuitFailureCount,
		APISportsCircuitOpenTimeout:   apiSportsCircuitOpenTimeout,
		APISportsCircuitHalfOpenMaxRq: apiSportsCircuitHalfOpenMaxReq,
		FetchSports:                   fetchSports,
		FetchMaxWorkers:               fetchMaxWorkers,
		SoccerLeagueID:                soccerLeagueID,
		SoccerSeason:                  soccerSeason,
		BasketballLeagueID:            basketballLeagueID,
		BasketballSeason:              strings.TrimSpace(getEnv("BASKETBALL_SEASON", "2023-2024")),
		BasketballTeamID:              basketballTeamID,
		F1Season:                      f1Season,
		ScheduleCron:                  strings.TrimSpace(getEnv("SCHEDULE_CRON", "@every 6h")),
		UptraceEnabled:                uptraceEnabled,
		UptraceDSN:                    uptraceDSN,
		PyroscopeEnabled:              pyroscopeEnabled,
		PyroscopeServerAddress:        pyroscopeServerAddress,
		PyroscopeAuthToken:            strings.TrimSpace(getEnv("PYROSCOPE_AUTH_TOKEN", "")),
		PyroscopeUploadRate:           pyroscopeUploadRate,
	}
	cfg.PyroscopeAppName = strings.TrimSpace(getEnv("PYROSCOPE_APP_NAME", cfg.ServiceName))
	if cfg.MongoDB == "" {
		return Config{}, fmt.Errorf("MONGO_DB cannot be empty")
	}

	return cfg, nil
}

// resolveDBURL prefers DB_URL and otherwise assembles a URL from the PG_*
// variables.
func resolveDBURL() string {
	if raw := strings.TrimSpace(os.Getenv("DB_URL")); raw != "" {
		return raw
	}

	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(getEnv("PG_USER", "postgres"), getEnv("PG_PASS", "postgres")),
		Host:     getEnv("PG_HOST", "localhost") + ":" + getEnv("PG_PORT", "5432"),
		Path:     "/" + getEnv("PG_DB", "sports_dw"),
		RawQuery: "sslmode=" + getEnv("PG_SSLMODE", "disable"),
	}
	return u.String()
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}

	return value
}

func getEnvAsInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}

	return out, nil
}

func getEnvAsInt64(key string, fallback int64) (int64, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	return strconv.ParseInt(value, 10, 64)
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}
		out = append(out, item)
	}

	return out
}

func parseUptraceDSNFromOTLPHeaders(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}

	items := strings.Split(raw, ",")
	for _, item := range items {
		parts := strings.SplitN(strings.TrimSpace(item), "=", 2)
		if len(parts) != 2 {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(parts[0]), "uptrace-dsn") {
			value := strings.TrimSpace(parts[1])
			return strings.Trim(value, "\"'")
		}
	}

	return ""
}

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}
