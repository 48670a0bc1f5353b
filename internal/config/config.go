package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type PasswordPolicy struct {
	MinLength      int
	RequireDigit   bool
	RequireLower   bool
	RequireUpper   bool
	RequireSpecial bool
}

type Config struct {
	DBDSN      string
	ServerPort string

	JWTSecret   string
	JWTIssuer   string
	JWTAudience string
	TokenTTL    time.Duration

	Password PasswordPolicy
}

func Load() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		DBDSN:       os.Getenv("DB_DSN"),
		ServerPort:  os.Getenv("SERVER_PORT"),
		JWTSecret:   os.Getenv("JWT_SECRET"),
		JWTIssuer:   os.Getenv("JWT_ISSUER"),
		JWTAudience: os.Getenv("JWT_AUDIENCE"),
		Password: PasswordPolicy{
			MinLength:      envInt("PASSWORD_MIN_LENGTH", 5),
			RequireDigit:   envBool("PASSWORD_REQUIRE_DIGIT", true),
			RequireLower:   envBool("PASSWORD_REQUIRE_LOWER", true),
			RequireUpper:   envBool("PASSWORD_REQUIRE_UPPER", true),
			RequireSpecial: envBool("PASSWORD_REQUIRE_SPECIAL", false),
		},
	}

	if cfg.DBDSN == "" {
		log.Fatal("DB_DSN is not set")
	}
	if cfg.ServerPort == "" {
		cfg.ServerPort = "8080"
	}
	// tokens without a signing secret would be unverifiable, refuse to start
	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET is not set")
	}
	if cfg.JWTIssuer == "" {
		cfg.JWTIssuer = "auth-api"
	}
	if cfg.JWTAudience == "" {
		cfg.JWTAudience = "auth-api-clients"
	}

	ttl := os.Getenv("TOKEN_TTL")
	if ttl == "" {
		cfg.TokenTTL = 24 * time.Hour
	} else {
		d, err := time.ParseDuration(ttl)
		if err != nil {
			log.Fatalf("invalid TOKEN_TTL %q: %v", ttl, err)
		}
		cfg.TokenTTL = d
	}

	return cfg
}

func envInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Fatalf("invalid %s %q: %v", key, v, err)
	}
	return n
}

func envBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		log.Fatalf("invalid %s %q: %v", key, v, err)
	}
	return b
}
