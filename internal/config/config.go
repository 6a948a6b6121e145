package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/glovework/keeper-stats/internal/platform/logging"
)

// Config stores runtime configuration for the service.
type Config struct {
	AppEnv                         string
	ServiceName                    string
	ServiceVersion                 string
	HTTPAddr                       string
	APIToken                       string
	DBURL                          string
	DBDisablePreparedBinary        bool
	CacheEnabled                   bool
	CacheTTL                       time.Duration
	CORSAllowedOrigins             []string
	ReadTimeout                    time.Duration
	WriteTimeout                   time.Duration
	PprofEnabled                   bool
	PprofAddr                      string
	SwaggerEnabled                 bool
	UptraceEnabled                 bool
	UptraceDSN                     string
	PyroscopeEnabled               bool
	PyroscopeServerAddress         string
	PyroscopeAppName               string
	PyroscopeAuthToken             string
	PyroscopeBasicAuthUser         string
	PyroscopeBasicAuthPassword     string
	PyroscopeUploadRate            time.Duration
	BlobstoreBaseURL               string
	BlobstorePublicBaseURL         string
	BlobstoreTimeout               time.Duration
	BlobstoreCircuitEnabled        bool
	BlobstoreCircuitFailureCount   int
	BlobstoreCircuitOpenTimeout    time.Duration
	BlobstoreCircuitHalfOpenMaxReq int
	VisionBaseURL                  string
	VisionAPIKey                   string
	VisionModel                    string
	VisionTimeout                  time.Duration
	VisionMaxRetries               int
	VisionCircuitEnabled           bool
	VisionCircuitFailureCount      int
	VisionCircuitOpenTimeout       time.Duration
	VisionCircuitHalfOpenMaxReq    int
	UploadMaxBytes                 int64
	JobMaxWorkers                  int
	JobMaxLifetime                 time.Duration
	LogLevel                       logging.Level
}

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	swaggerDefault := "true"
	if appEnv == EnvProd {
		swaggerDefault = "false"
	}

	swaggerEnabled, err := strconv.ParseBool(getEnv("SWAGGER_ENABLED", swaggerDefault))
	if err != nil {
		return Config{}, fmt.Errorf("parse SWAGGER_ENABLED: %w", err)
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

	blobstoreTimeout, err := time.ParseDuration(getEnv("BLOBSTORE_TIMEOUT", "60s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse BLOBSTORE_TIMEOUT: %w", err)
	}
	if blobstoreTimeout <= 0 {
		return Config{}, fmt.Errorf("BLOBSTORE_TIMEOUT must be > 0")
	}
	blobstoreCircuitEnabled, err := strconv.ParseBool(getEnv("BLOBSTORE_CIRCUIT_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse BLOBSTORE_CIRCUIT_ENABLED: %w", err)
	}
	blobstoreCircuitFailureCount, err := getEnvAsInt("BLOBSTORE_CIRCUIT_FAILURE_COUNT", 5)
	if err != nil {
		return Config{}, fmt.Errorf("parse BLOBSTORE_CIRCUIT_FAILURE_COUNT: %w", err)
	}
	if blobstoreCircuitFailureCount < 1 {
		return Config{}, fmt.Errorf("BLOBSTORE_CIRCUIT_FAILURE_COUNT must be >= 1")
	}
	blobstoreCircuitOpenTimeout, err := time.ParseDuration(getEnv("BLOBSTORE_CIRCUIT_OPEN_TIMEOUT", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse BLOBSTORE_CIRCUIT_OPEN_TIMEOUT: %w", err)
	}
	if blobstoreCircuitOpenTimeout <= 0 {
		return Config{}, fmt.Errorf("BLOBSTORE_CIRCUIT_OPEN_TIMEOUT must be > 0")
	}
	blobstoreCircuitHalfOpenMaxReq, err := getEnvAsInt("BLOBSTORE_CIRCUIT_HALF_OPEN_MAX_REQ", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse BLOBSTORE_CIRCUIT_HALF_OPEN_MAX_REQ: %w", err)
	}
	if blobstoreCircuitHalfOpenMaxReq < 1 {
		return Config{}, fmt.Errorf("BLOBSTORE_CIRCUIT_HALF_OPEN_MAX_REQ must be >= 1")
	}
	blobstoreBaseURL := strings.TrimSpace(getEnv("BLOBSTORE_BASE_URL", "http://localhost:9000/keeper-stats"))
	blobstorePublicBaseURL := strings.TrimSpace(getEnv("BLOBSTORE_PUBLIC_BASE_URL", ""))

	visionTimeout, err := time.ParseDuration(getEnv("VISION_TIMEOUT", "120s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse VISION_TIMEOUT: %w", err)
	}
	if visionTimeout <= 0 {
		return Config{}, fmt.Errorf("VISION_TIMEOUT must be > 0")
	}
	visionMaxRetries, err := getEnvAsInt("VISION_MAX_RETRIES", 1)
	if err != nil {
		return Config{}, fmt.Errorf("parse VISION_MAX_RETRIES: %w", err)
	}
	if visionMaxRetries < 0 {
		return Config{}, fmt.Errorf("VISION_MAX_RETRIES must be >= 0")
	}
	visionCircuitEnabled, err := strconv.ParseBool(getEnv("VISION_CIRCUIT_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse VISION_CIRCUIT_ENABLED: %w", err)
	}
	visionCircuitFailureCount, err := getEnvAsInt("VISION_CIRCUIT_FAILURE_COUNT", 5)
	if err != nil {
		return Config{}, fmt.Errorf("parse VISION_CIRCUIT_FAILURE_COUNT: %w", err)
	}
	if visionCircuitFailureCount < 1 {
		return Config{}, fmt.Errorf("VISION_CIRCUIT_FAILURE_COUNT must be >= 1")
	}
	visionCircuitOpenTimeout, err := time.ParseDuration(getEnv("VISION_CIRCUIT_OPEN_TIMEOUT", "30s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse VISION_CIRCUIT_OPEN_TIMEOUT: %w", err)
	}
	if visionCircuitOpenTimeout <= 0 {
		return Config{}, fmt.Errorf("VISION_CIRCUIT_OPEN_TIMEOUT must be > 0")
	}
	visionCircuitHalfOpenMaxReq, err := getEnvAsInt("VISION_CIRCUIT_HALF_OPEN_MAX_REQ", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse VISION_CIRCUIT_HALF_OPEN_MAX_REQ: %w", err)
	}
	if visionCircuitHalfOpenMaxReq < 1 {
		return Config{}, fmt.Errorf("VISION_CIRCUIT_HALF_OPEN_MAX_REQ must be >= 1")
	}
	visionBaseURL := strings.TrimSpace(getEnv("VISION_BASE_URL", "https://generativelanguage.googleapis.com/v1beta"))
	visionAPIKey := strings.TrimSpace(getEnv("VISION_API_KEY", ""))
	visionModel := strings.TrimSpace(getEnv("VISION_MODEL", "gemini-2.0-flash"))

	uploadMaxBytes, err := getEnvAsInt64("UPLOAD_MAX_BYTES", 100<<20)
	if err != nil {
		return Config{}, fmt.Errorf("parse UPLOAD_MAX_BYTES: %w", err)
	}
	if uploadMaxBytes <= 0 {
		return Config{}, fmt.Errorf("UPLOAD_MAX_BYTES must be > 0")
	}

	jobMaxWorkers, err := getEnvAsInt("JOB_MAX_WORKERS", 4)
	if err != nil {
		return Config{}, fmt.Errorf("parse JOB_MAX_WORKERS: %w", err)
	}
	if jobMaxWorkers < 1 {
		return Config{}, fmt.Errorf("JOB_MAX_WORKERS must be >= 1")
	}

	jobMaxLifetime, err := time.ParseDuration(getEnv("JOB_MAX_LIFETIME", "5m"))
	if err != nil {
		return Config{}, fmt.Errorf("parse JOB_MAX_LIFETIME: %w", err)
	}
	if jobMaxLifetime <= 0 {
		return Config{}, fmt.Errorf("JOB_MAX_LIFETIME must be > 0")
	}

	cfg := Config{
		AppEnv:                         appEnv,
		ServiceName:                    getEnv("APP_SERVICE_NAME", "keeper-stats-api"),
		ServiceVersion:                 getEnv("APP_SERVICE_VERSION", "dev"),
		HTTPAddr:                       getEnv("APP_HTTP_ADDR", ":8080"),
		APIToken:                       strings.TrimSpace(getEnv("APP_API_TOKEN", "")),
		DBURL:                          getEnv("DB_URL", ""),
		DBDisablePreparedBinary:        true,
		CORSAllowedOrigins:             splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		PprofEnabled:                   pprofEnabled,
		PprofAddr:                      pprofAddr,
		SwaggerEnabled:                 swaggerEnabled,
		UptraceEnabled:                 uptraceEnabled,
		UptraceDSN:                     uptraceDSN,
		PyroscopeEnabled:               pyroscopeEnabled,
		PyroscopeServerAddress:         pyroscopeServerAddress,
		PyroscopeAuthToken:             strings.TrimSpace(getEnv("PYROSCOPE_AUTH_TOKEN", "")),
		PyroscopeBasicAuthUser:         strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_USER", "")),
		PyroscopeBasicAuthPassword:     strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_PASSWORD", "")),
		PyroscopeUploadRate:            pyroscopeUploadRate,
		BlobstoreBaseURL:               blobstoreBaseURL,
		BlobstorePublicBaseURL:         blobstorePublicBaseURL,
		BlobstoreTimeout:               blobstoreTimeout,
		BlobstoreCircuitEnabled:        blobstoreCircuitEnabled,
		BlobstoreCircuitFailureCount:   blobstoreCircuitFailureCount,
		BlobstoreCircuitOpenTimeout:    blobstoreCircuitOpenTimeout,
		BlobstoreCircuitHalfOpenMaxReq: blobstoreCircuitHalfOpenMaxReq,
		VisionBaseURL:                  visionBaseURL,
		VisionAPIKey:                   visionAPIKey,
		VisionModel:                    visionModel,
		VisionTimeout:                  visionTimeout,
		VisionMaxRetries:               visionMaxRetries,
		VisionCircuitEnabled:           visionCircuitEnabled,
		VisionCircuitFailureCount:      visionCircuitFailureCount,
		VisionCircuitOpenTimeout:       visionCircuitOpenTimeout,
		VisionCircuitHalfOpenMaxReq:    visionCircuitHalfOpenMaxReq,
		UploadMaxBytes:                 uploadMaxBytes,
		JobMaxWorkers:                  jobMaxWorkers,
		JobMaxLifetime:                 jobMaxLifetime,
	}
	cfg.PyroscopeAppName = strings.TrimSpace(getEnv("PYROSCOPE_APP_NAME", cfg.ServiceName))
	if cfg.PyroscopeEnabled && cfg.PyroscopeAppName == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_APP_NAME cannot be empty when PYROSCOPE_ENABLED=true")
	}
	if len(cfg.CORSAllowedOrigins) == 0 {
		return Config{}, fmt.Errorf("CORS_ALLOWED_ORIGINS cannot be empty")
	}

	dbDisablePreparedBinary, err := strconv.ParseBool(getEnv("DB_DISABLE_PREPARED_BINARY_RESULT", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse DB_DISABLE_PREPARED_BINARY_RESULT: %w", err)
	}
	cfg.DBDisablePreparedBinary = dbDisablePreparedBinary

	cacheEnabled, err := strconv.ParseBool(getEnv("CACHE_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse CACHE_ENABLED: %w", err)
	}
	cacheTTL, err := time.ParseDuration(getEnv("CACHE_TTL", "60s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse CACHE_TTL: %w", err)
	}
	if cacheTTL <= 0 {
		return Config{}, fmt.Errorf("CACHE_TTL must be > 0")
	}
	cfg.CacheEnabled = cacheEnabled
	cfg.CacheTTL = cacheTTL

	readTimeout, err := time.ParseDuration(getEnv("APP_READ_TIMEOUT", "10s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APP_READ_TIMEOUT: %w", err)
	}

	// Uploads stream up to UPLOAD_MAX_BYTES through the request body, so the
	// write deadline is generous compared to the teacher-sized JSON API.
	writeTimeout, err := time.ParseDuration(getEnv("APP_WRITE_TIMEOUT", "120s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APP_WRITE_TIMEOUT: %w", err)
	}

	logLevel := parseLogLevel(getEnv("APP_LOG_LEVEL", "info"))

	cfg.ReadTimeout = readTimeout
	cfg.WriteTimeout = writeTimeout
	cfg.LogLevel = logLevel

	return cfg, nil
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

func getEnvAsInt64(key string, fallback int64) (int64, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.ParseInt(value, 10, 64)
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
