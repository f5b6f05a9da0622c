package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"

	"github.com/ChocooDEV/aurory-elite-hunter/internal/domain/scoring"
	"github.com/ChocooDEV/aurory-elite-hunter/internal/platform/logging"
)

// Config stores runtime configuration for the service.
type Config struct {
	AppEnv                     string
	ServiceName                string
	ServiceVersion             string
	HTTPAddr                   string
	DBURL                      string
	DBDisablePreparedBinary    bool
	CORSAllowedOrigins         []string
	ReadTimeout                time.Duration
	WriteTimeout               time.Duration
	PprofEnabled               bool
	PprofAddr                  string
	UptraceEnabled             bool
	UptraceDSN                 string
	UptraceLogsEnabled         bool
	PyroscopeEnabled           bool
	PyroscopeServerAddress     string
	PyroscopeAppName           string
	PyroscopeAuthToken         string
	PyroscopeBasicAuthUser     string
	PyroscopeBasicAuthPassword string
	PyroscopeUploadRate        time.Duration
	AuroryBaseURL              string
	AuroryEventTag             string
	AuroryTimeout              time.Duration
	AuroryMaxRetries           int
	AuroryPageDelay            time.Duration
	AuroryDescending           bool
	AuroryCircuitEnabled       bool
	AuroryCircuitFailureCount  int
	AuroryCircuitOpenTimeout   time.Duration
	AuroryCircuitHalfOpenMax   int
	ProfileTimeout             time.Duration
	DefaultAvatarURL           string
	AdminPassword              string
	InternalJobToken           string
	JobUpdateInterval          time.Duration
	JobWindowLead              time.Duration
	BadgeWorkers               int
	BonusWindows               scoring.Schedule
	LogLevel                   logging.Level
}

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
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
	uptraceLogsEnabled, err := strconv.ParseBool(getEnv("UPTRACE_LOGS_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_LOGS_ENABLED: %w", err)
	}

	pprofEnabled, err := strconv.ParseBool(getEnv("PPROF_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PPROF_ENABLED: %w", err)
	}
	pprofAddr := strings.TrimSpace(getEnv("PPROF_ADDR", ":6060"))
	if pprofEnabled && pprofAddr == "" {
		return Config{}, fmt.Errorf("PPROF_ADDR is required when PPROF_ENABLED=true")
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

	auroryTimeout, err := time.ParseDuration(getEnv("AURORY_TIMEOUT", "20s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse AURORY_TIMEOUT: %w", err)
	}
	if auroryTimeout <= 0 {
		return Config{}, fmt.Errorf("AURORY_TIMEOUT must be > 0")
	}
	auroryMaxRetries, err := getEnvAsInt("AURORY_MAX_RETRIES", 3)
	if err != nil {
		return Config{}, fmt.Errorf("parse AURORY_MAX_RETRIES: %w", err)
	}
	if auroryMaxRetries < 0 {
		return Config{}, fmt.Errorf("AURORY_MAX_RETRIES must be >= 0")
	}
	auroryPageDelay, err := time.ParseDuration(getEnv("AURORY_PAGE_DELAY", "500ms"))
	if err != nil {
		return Config{}, fmt.Errorf("parse AURORY_PAGE_DELAY: %w", err)
	}
	if auroryPageDelay < 0 {
		return Config{}, fmt.Errorf("AURORY_PAGE_DELAY must be >= 0")
	}
	auroryDescending, err := strconv.ParseBool(getEnv("AURORY_DESCENDING", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse AURORY_DESCENDING: %w", err)
	}
	auroryCircuitEnabled, err := strconv.ParseBool(getEnv("AURORY_CIRCUIT_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse AURORY_CIRCUIT_ENABLED: %w", err)
	}
	auroryCircuitFailureCount, err := getEnvAsInt("AURORY_CIRCUIT_FAILURE_COUNT", 5)
	if err != nil {
		return Config{}, fmt.Errorf("parse AURORY_CIRCUIT_FAILURE_COUNT: %w", err)
	}
	if auroryCircuitFailureCount < 1 {
		return Config{}, fmt.Errorf("AURORY_CIRCUIT_FAILURE_COUNT must be >= 1")
	}
	auroryCircuitOpenTimeout, err := time.ParseDuration(getEnv("AURORY_CIRCUIT_OPEN_TIMEOUT", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse AURORY_CIRCUIT_OPEN_TIMEOUT: %w", err)
	}
	if auroryCircuitOpenTimeout <= 0 {
		return Config{}, fmt.Errorf("AURORY_CIRCUIT_OPEN_TIMEOUT must be > 0")
	}
	auroryCircuitHalfOpenMax, err := getEnvAsInt("AURORY_CIRCUIT_HALF_OPEN_MAX_REQ", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse AURORY_CIRCUIT_HALF_OPEN_MAX_REQ: %w", err)
	}
	if auroryCircuitHalfOpenMax < 1 {
		return Config{}, fmt.Errorf("AURORY_CIRCUIT_HALF_OPEN_MAX_REQ must be >= 1")
	}

	profileTimeout, err := time.ParseDuration(getEnv("AURORY_PROFILE_TIMEOUT", "5s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse AURORY_PROFILE_TIMEOUT: %w", err)
	}
	if profileTimeout <= 0 {
		return Config{}, fmt.Errorf("AURORY_PROFILE_TIMEOUT must be > 0")
	}

	jobUpdateInterval, err := time.ParseDuration(getEnv("JOB_UPDATE_INTERVAL", "1h"))
	if err != nil {
		return Config{}, fmt.Errorf("parse JOB_UPDATE_INTERVAL: %w", err)
	}
	if jobUpdateInterval <= 0 {
		return Config{}, fmt.Errorf("JOB_UPDATE_INTERVAL must be > 0")
	}
	jobWindowLead, err := time.ParseDuration(getEnv("JOB_WINDOW_LEAD", "5m"))
	if err != nil {
		return Config{}, fmt.Errorf("parse JOB_WINDOW_LEAD: %w", err)
	}
	if jobWindowLead <= 0 {
		return Config{}, fmt.Errorf("JOB_WINDOW_LEAD must be > 0")
	}

	badgeWorkers, err := getEnvAsInt("BADGE_WORKERS", 8)
	if err != nil {
		return Config{}, fmt.Errorf("parse BADGE_WORKERS: %w", err)
	}
	if badgeWorkers < 1 {
		return Config{}, fmt.Errorf("BADGE_WORKERS must be >= 1")
	}

	bonusWindows, err := parseBonusWindows(getEnv("BONUS_WINDOWS", ""))
	if err != nil {
		return Config{}, fmt.Errorf("parse BONUS_WINDOWS: %w", err)
	}

	readTimeout, err := time.ParseDuration(getEnv("APP_READ_TIMEOUT", "10s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APP_READ_TIMEOUT: %w", err)
	}
	writeTimeout, err := time.ParseDuration(getEnv("APP_WRITE_TIMEOUT", "30s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APP_WRITE_TIMEOUT: %w", err)
	}

	dbDisablePreparedBinary, err := strconv.ParseBool(getEnv("DB_DISABLE_PREPARED_BINARY_RESULT", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse DB_DISABLE_PREPARED_BINARY_RESULT: %w", err)
	}

	cfg := Config{
		AppEnv:                     appEnv,
		ServiceName:                getEnv("APP_SERVICE_NAME", "elite-hunter-api"),
		ServiceVersion:             getEnv("APP_SERVICE_VERSION", "dev"),
		HTTPAddr:                   getEnv("APP_HTTP_ADDR", ":8080"),
		DBURL:                      strings.TrimSpace(getEnv("DB_URL", "")),
		DBDisablePreparedBinary:    dbDisablePreparedBinary,
		CORSAllowedOrigins:         splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		ReadTimeout:                readTimeout,
		WriteTimeout:               writeTimeout,
		PprofEnabled:               pprofEnabled,
		PprofAddr:                  pprofAddr,
		UptraceEnabled:             uptraceEnabled,
		UptraceDSN:                 uptraceDSN,
		UptraceLogsEnabled:         uptraceLogsEnabled,
		PyroscopeEnabled:           pyroscopeEnabled,
		PyroscopeServerAddress:     pyroscopeServerAddress,
		PyroscopeAuthToken:         strings.TrimSpace(getEnv("PYROSCOPE_AUTH_TOKEN", "")),
		PyroscopeBasicAuthUser:     strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_USER", "")),
		PyroscopeBasicAuthPassword: strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_PASSWORD", "")),
		PyroscopeUploadRate:        pyroscopeUploadRate,
		AuroryBaseURL:              strings.TrimSpace(getEnv("AURORY_BASE_URL", "https://aggregator-api.live.aurory.io/v1")),
		AuroryEventTag:             strings.TrimSpace(getEnv("AURORY_EVENT_TAG", "")),
		AuroryTimeout:              auroryTimeout,
		AuroryMaxRetries:           auroryMaxRetries,
		AuroryPageDelay:            auroryPageDelay,
		AuroryDescending:           auroryDescending,
		AuroryCircuitEnabled:       auroryCircuitEnabled,
		AuroryCircuitFailureCount:  auroryCircuitFailureCount,
		AuroryCircuitOpenTimeout:   auroryCircuitOpenTimeout,
		AuroryCircuitHalfOpenMax:   auroryCircuitHalfOpenMax,
		ProfileTimeout:             profileTimeout,
		DefaultAvatarURL:           strings.TrimSpace(getEnv("DEFAULT_AVATAR_URL", "https://images.cdn.aurory.io/items/default_avatar.png")),
		AdminPassword:              strings.TrimSpace(getEnv("ADMIN_PASSWORD", "")),
		InternalJobToken:           strings.TrimSpace(getEnv("INTERNAL_JOB_TOKEN", "")),
		JobUpdateInterval:          jobUpdateInterval,
		JobWindowLead:              jobWindowLead,
		BadgeWorkers:               badgeWorkers,
		BonusWindows:               bonusWindows,
		LogLevel:                   parseLogLevel(getEnv("APP_LOG_LEVEL", "info")),
	}
	cfg.PyroscopeAppName = strings.TrimSpace(getEnv("PYROSCOPE_APP_NAME", cfg.ServiceName))
	if cfg.PyroscopeEnabled && cfg.PyroscopeAppName == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_APP_NAME cannot be empty when PYROSCOPE_ENABLED=true")
	}
	if len(cfg.CORSAllowedOrigins) == 0 {
		return Config{}, fmt.Errorf("CORS_ALLOWED_ORIGINS cannot be empty")
	}
	if cfg.AppEnv == EnvProd && cfg.InternalJobToken == "" {
		return Config{}, fmt.Errorf("INTERNAL_JOB_TOKEN is required when APP_ENV=prod")
	}

	return cfg, nil
}

// parseBonusWindows decodes a JSON object of competitor name to window list,
// e.g. {"VIP862924621":[{"start":"2026-03-01T00:00:00Z","end":"2026-03-02T00:00:00Z"}]}.
func parseBonusWindows(raw string) (scoring.Schedule, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return scoring.Schedule{}, nil
	}

	var out scoring.Schedule
	if err := sonic.Unmarshal([]byte(raw), &out); err != nil {
		return nil, err
	}
	for name, windows := range out {
		for _, w := range windows {
			if !w.End.After(w.Start) {
				return nil, fmt.Errorf("window for %q ends before it starts", name)
			}
		}
	}
	return out, nil
}

func parseLogLevel(v string) logging.Level {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "debug":
		return logging.LevelDebug
	case "warn", "warning":
		return logging.LevelWarn
	case "error":
		return logging.LevelError
	default:
		return logging.LevelInfo
	}
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
