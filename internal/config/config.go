package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// Config holds runtime configuration for the transcription service.
// Every field has an environment default so the service starts with
// nothing but Google credentials configured.
type Config struct {
	Port       string
	UploadsDir string

	// Scratch bucket for long-running recognition jobs
	GCSBucket string

	// Sample clip used by the /test endpoint
	SampleAudioURI string

	// Audio beyond either threshold is routed through the
	// long-running recognition path
	LongAudioSeconds float64
	LongAudioBytes   int64

	FFmpegPath string

	// Optional integrations, disabled when empty
	MongoURI      string
	MongoDatabase string
	GeminiAPIKey  string
	JWTSecret     string
	APIKey        string
}

const (
	defaultPort           = "5000"
	defaultMockPort       = "5002"
	defaultBucket         = "stt-audio-files-demo"
	defaultSampleAudioURI = "gs://cloud-samples-data/speech/brooklyn_bridge.raw"
)

// Load reads .env if present and builds the configuration from the
// environment
func Load(logger *zap.Logger) *Config {
	if err := godotenv.Load(); err != nil {
		logger.Info("No .env file found, using environment variables")
	}

	cfg := &Config{
		Port:             getEnv("PORT", defaultPort),
		UploadsDir:       getEnv("UPLOADS_DIR", os.TempDir()),
		GCSBucket:        getEnv("GCS_BUCKET", defaultBucket),
		SampleAudioURI:   getEnv("SAMPLE_AUDIO_URI", defaultSampleAudioURI),
		LongAudioSeconds: getEnvFloat("LONG_AUDIO_SECONDS", 60),
		LongAudioBytes:   getEnvInt64("LONG_AUDIO_BYTES", 1<<20),
		FFmpegPath:       getEnv("FFMPEG_PATH", "ffmpeg"),
		MongoURI:         os.Getenv("MONGODB_URI"),
		MongoDatabase:    getEnv("MONGODB_DATABASE", "voxscribe"),
		GeminiAPIKey:     os.Getenv("GEMINI_API_KEY"),
		JWTSecret:        os.Getenv("JWT_SECRET"),
		APIKey:           os.Getenv("API_KEY"),
	}

	return cfg
}

// LoadMock builds the configuration for the mock variant, which listens
// on its own default port and needs no cloud configuration
func LoadMock(logger *zap.Logger) *Config {
	cfg := Load(logger)
	if os.Getenv("PORT") == "" {
		cfg.Port = defaultMockPort
	}
	return cfg
}

// AuthEnabled reports whether bearer-token protection is configured
func (c *Config) AuthEnabled() bool {
	return c.JWTSecret != ""
}

// HistoryEnabled reports whether transcription history persistence is
// configured
func (c *Config) HistoryEnabled() bool {
	return c.MongoURI != ""
}

// CleanupEnabled reports whether the LLM transcript cleanup pass is
// configured
func (c *Config) CleanupEnabled() bool {
	return c.GeminiAPIKey != ""
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvInt64(key string, fallback int64) int64 {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return fallback
	}
	return parsed
}
