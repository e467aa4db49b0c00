package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/joho/godotenv"
	"github.com/labstack/gommon/log"
)

const (
	defaultEnv       = "development"
	defaultSSMPrefix = "/stickynotes/prod/"
	defaultRegion    = "us-east-2"
)

var ErrMissingSecret = errors.New("JWT_SECRET is required")

type Config struct {
	Env          string
	Port         string
	DatabasePath string
	JWTSecret    string
	JWTTTL       time.Duration
	NodeID       int64
	BodyLimit    string
	AllowOrigins []string
	LogLevel     log.Lvl
}

// IsProduction reports whether GO_ENV is "production".
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Load exports the environment for the current GO_ENV and reads it. In
// production the parameters come from AWS SSM Parameter Store, otherwise
// from an optional .env file.
func Load(ctx context.Context) (*Config, error) {
	current := Config{Env: getEnv("GO_ENV", defaultEnv)}
	if current.IsProduction() {
		if err := loadProdEnv(ctx); err != nil {
			return nil, err
		}
	} else if err := godotenv.Load(); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("unable to load .env: %w", err)
		}
		log.Warn("no .env file found, using process environment")
	}
	return FromEnv()
}

// FromEnv reads the configuration from the process environment only.
func FromEnv() (*Config, error) {
	ttl, err := time.ParseDuration(getEnv("JWT_EXPIRATION", "24h"))
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_EXPIRATION: %w", err)
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("invalid JWT_EXPIRATION: must be positive, got %s", ttl)
	}

	nodeID, err := strconv.ParseInt(getEnv("NODE_ID", "1"), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid NODE_ID: %w", err)
	}

	level, err := parseLevel(getEnv("LOG_LEVEL", "info"))
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Env:          getEnv("GO_ENV", defaultEnv),
		Port:         getEnv("PORT", "7070"),
		DatabasePath: getEnv("DATABASE_PATH", "database.db"),
		JWTSecret:    os.Getenv("JWT_SECRET"),
		JWTTTL:       ttl,
		NodeID:       nodeID,
		BodyLimit:    getEnv("BODY_LIMIT", "1M"),
		AllowOrigins: splitList(getEnv("CORS_ORIGINS", "*")),
		LogLevel:     level,
	}

	if strings.TrimSpace(cfg.JWTSecret) == "" {
		return nil, ErrMissingSecret
	}
	return cfg, nil
}

func loadProdEnv(ctx context.Context) error {
	prefix := getEnv("SSM_PREFIX", defaultSSMPrefix)
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(getEnv("AWS_REGION", defaultRegion)))
	if err != nil {
		return fmt.Errorf("unable to load SDK config: %w", err)
	}

	client := ssm.NewFromConfig(cfg)
	paginator := ssm.NewGetParametersByPathPaginator(client, &ssm.GetParametersByPathInput{
		Path:           aws.String(prefix),
		WithDecryption: aws.Bool(true),
		Recursive:      aws.Bool(true),
	})

	count := 0
	for paginator.HasMorePages() {
		out, err := paginator.NextPage(ctx)
		if err != nil {
			return fmt.Errorf("unable to load prod environment: %w", err)
		}

		// Export vars
		for _, param := range out.Parameters {
			key := strings.TrimPrefix(aws.ToString(param.Name), prefix)
			if err := os.Setenv(key, aws.ToString(param.Value)); err != nil {
				return fmt.Errorf("unable to set environment variable %s: %w", key, err)
			}
			count++
		}
	}

	log.Debugf("loaded %d prod environment variables", count)
	return nil
}

func parseLevel(level string) (log.Lvl, error) {
	switch strings.ToLower(level) {
	case "debug":
		return log.DEBUG, nil
	case "info":
		return log.INFO, nil
	case "warn":
		return log.WARN, nil
	case "error":
		return log.ERROR, nil
	case "off":
		return log.OFF, nil
	default:
		return 0, fmt.Errorf("invalid LOG_LEVEL: %q", level)
	}
}

func splitList(value string) []string {
	var out []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}
