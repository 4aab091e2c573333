package config

import (
	"errors"
	"fmt"
	"log"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/Skotchmaster/job_tracker/internal/storage"
)

const (
	defaultPort          = "8080"
	defaultEnv           = "development"
	defaultAccessMinutes = 30
	// seven days
	defaultRefreshMinutes = 60 * 24 * 7
)

type Config struct {
	Port     string
	Env      string
	LogLevel string

	DatabaseURL string

	JWTAccessSecret  []byte
	JWTRefreshSecret []byte
	JWTAlgorithm     string
	AccessTTL        time.Duration
	RefreshTTL       time.Duration

	KafkaBrokers []string

	S3 storage.S3Config
}

type missing []string

func (m *missing) must(name string) string {
	v := os.Getenv(name)
	if v == "" {
		*m = append(*m, name)
	}
	return v
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func minutes(key string, def int) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return time.Duration(def) * time.Minute, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%s must be a positive number of minutes, got %q", key, raw)
	}
	return time.Duration(n) * time.Minute, nil
}

func splitCSV(raw string) []string {
	var out []string
	for _, p := range strings.Split(raw, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// databaseURL prefers DATABASE_URL and otherwise assembles a postgres DSN
// from the DATABASE_* parts, all of which are then required.
func databaseURL(m *missing) string {
	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		return dsn
	}

	user := m.must("DATABASE_USERNAME")
	password := m.must("DATABASE_PASSWORD")
	host := m.must("DATABASE_HOST")
	port := m.must("DATABASE_PORT")
	name := m.must("DATABASE_NAME")
	if user == "" || host == "" || port == "" || name == "" {
		return ""
	}

	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(user, password),
		Host:     net.JoinHostPort(host, port),
		Path:     "/" + name,
		RawQuery: "sslmode=" + getenv("DATABASE_SSLMODE", "disable"),
	}
	return u.String()
}

func Load() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Notice: .env file not found: %v. Using system environment variables", err)
	}

	var m missing
	cfg := &Config{
		Port:             getenv("SERVER_PORT", defaultPort),
		Env:              getenv("API_ENV", defaultEnv),
		LogLevel:         getenv("LOG_LEVEL", "info"),
		JWTAccessSecret:  []byte(m.must("JWT_SECRET_KEY")),
		JWTRefreshSecret: []byte(m.must("JWT_REFRESH_SECRET_KEY")),
		JWTAlgorithm:     getenv("JWT_ALGORITHM", "HS256"),
		KafkaBrokers:     splitCSV(os.Getenv("KAFKA_BROKERS")),
		S3: storage.S3Config{
			Endpoint:  os.Getenv("S3_ENDPOINT"),
			Region:    getenv("S3_REGION", "us-east-1"),
			Bucket:    os.Getenv("S3_BUCKET"),
			AccessKey: os.Getenv("S3_ACCESS_KEY"),
			SecretKey: os.Getenv("S3_SECRET_KEY"),
		},
	}
	cfg.DatabaseURL = databaseURL(&m)

	if len(m) > 0 {
		return nil, fmt.Errorf("missing required env: %s", strings.Join(m, ", "))
	}

	var err error
	if cfg.AccessTTL, err = minutes("ACCESS_TOKEN_EXPIRE_MINUTES", defaultAccessMinutes); err != nil {
		return nil, err
	}
	if cfg.RefreshTTL, err = minutes("REFRESH_TOKEN_EXPIRE_MINUTES", defaultRefreshMinutes); err != nil {
		return nil, err
	}

	if cfg.JWTAlgorithm != "HS256" {
		return nil, fmt.Errorf("JWT_ALGORITHM %q is not supported, only HS256", cfg.JWTAlgorithm)
	}
	if string(cfg.JWTAccessSecret) == string(cfg.JWTRefreshSecret) {
		return nil, errors.New("JWT_SECRET_KEY and JWT_REFRESH_SECRET_KEY must differ")
	}
	return cfg, nil
}
