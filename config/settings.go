package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Settings is the environment-driven configuration shared by the catalog
// server and the CLI
type Settings struct {
	Port  string
	Debug bool

	// Catalog source. DataURL wins over S3Bucket, which wins over DataDir.
	DataDir      string
	DataURL      string
	ManifestName string

	S3Bucket       string
	S3Prefix       string
	S3Region       string
	S3Profile      string
	S3UsePathStyle bool

	// Redis cache; disabled when RedisAddr is empty
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	CacheTTL      time.Duration

	// Kafka invalidation consumer; disabled when KafkaBrokers is empty
	KafkaBrokers []string
	KafkaTopic   string
	KafkaGroupID string

	// PrefsPath stores the dark mode preference
	PrefsPath string
}

// Load reads .env if present, then the process environment
func Load() Settings {
	// Non-fatal if missing
	_ = godotenv.Load()

	s := Settings{
		Port:           getEnvOrDefault("PORT", "8080"),
		Debug:          getEnvBool("ADAM_DEBUG"),
		DataDir:        getEnvOrDefault("ADAM_DATA_DIR", DefaultDataDir),
		DataURL:        strings.TrimRight(strings.TrimSpace(os.Getenv("ADAM_DATA_URL")), "/"),
		ManifestName:   getEnvOrDefault("ADAM_MANIFEST", ManifestName),
		S3Bucket:       strings.TrimSpace(os.Getenv("S3_BUCKET")),
		S3Prefix:       normalizePrefix(os.Getenv("S3_PREFIX")),
		S3Region:       strings.TrimSpace(os.Getenv("S3_REGION")),
		S3Profile:      strings.TrimSpace(os.Getenv("S3_PROFILE")),
		S3UsePathStyle: getEnvBool("S3_USE_PATH_STYLE"),
		RedisAddr:      strings.TrimSpace(os.Getenv("REDIS_ADDR")),
		RedisPassword:  os.Getenv("REDIS_PASS"),
		CacheTTL:       DefaultCacheTTL,
		KafkaTopic:     getEnvOrDefault("KAFKA_CATALOG_TOPIC", DefaultCatalogTopic),
		KafkaGroupID:   getEnvOrDefault("KAFKA_GROUP_ID", DefaultGroupID),
		PrefsPath:      getEnvOrDefault("ADAM_PREFS", defaultPrefsPath()),
	}

	if v := os.Getenv("REDIS_DB"); v != "" {
		if db, err := strconv.Atoi(v); err == nil && db >= 0 {
			s.RedisDB = db
		}
	}
	if v := os.Getenv("CATALOG_CACHE_TTL_SECONDS"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
			s.CacheTTL = time.Duration(secs) * time.Second
		}
	}
	if v := os.Getenv("KAFKA_BOOTSTRAP_SERVERS"); v != "" {
		for _, b := range strings.Split(v, ",") {
			if b = strings.TrimSpace(b); b != "" {
				s.KafkaBrokers = append(s.KafkaBrokers, b)
			}
		}
	}

	return s
}

func getEnvOrDefault(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getEnvBool(key string) bool {
	b, err := strconv.ParseBool(strings.TrimSpace(os.Getenv(key)))
	return err == nil && b
}

func normalizePrefix(prefix string) string {
	prefix = strings.Trim(strings.TrimSpace(prefix), "/")
	if prefix == "" {
		return ""
	}
	return prefix + "/"
}

func defaultPrefsPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".adam-prefs.yaml"
	}
	return filepath.Join(dir, "adam", "prefs.yaml")
}
