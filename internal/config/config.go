package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

const (
	DefaultAddr         = "127.0.0.1:8754"
	DefaultResourceDir  = "res"
	DefaultGridScale    = 0.7
	DefaultBoardScale   = 0.4
	DefaultBoardColumns = 18

	maxScale = 4
)

type Config struct {
	Addr        string
	ResourceDir string

	GridScale    float64
	BoardScale   float64
	BoardColumns int

	AppEnv                string
	WSAllowedOrigins      []string
	DevWebSocketsAllowAll bool
	TracesExport          string
}

func Default() Config {
	return Config{
		Addr:         DefaultAddr,
		ResourceDir:  DefaultResourceDir,
		GridScale:    DefaultGridScale,
		BoardScale:   DefaultBoardScale,
		BoardColumns: DefaultBoardColumns,
		AppEnv:       "development",
		TracesExport: "none",
	}
}

func (c Config) IsDev() bool { return c.AppEnv == "development" }

// LoadFromEnv starts from Default and applies the environment. Unparseable
// values are reported through log and ignored.
func LoadFromEnv(log *zap.Logger) (Config, error) {
	if log == nil {
		log = zap.NewNop()
	}
	cfg := Default()

	if v := strings.TrimSpace(os.Getenv("CARDVIZ_ADDR")); v != "" {
		cfg.Addr = v
	} else if port := strings.TrimSpace(os.Getenv("PORT")); port != "" {
		// Accept a bare port or host:port.
		if strings.Contains(port, ":") {
			cfg.Addr = port
		} else {
			cfg.Addr = "127.0.0.1:" + port
		}
	}
	if v := strings.TrimSpace(os.Getenv("CARDVIZ_RES_DIR")); v != "" {
		cfg.ResourceDir = v
	}

	cfg.GridScale = floatEnv(log, "CARDVIZ_GRID_SCALE", cfg.GridScale)
	cfg.BoardScale = floatEnv(log, "CARDVIZ_BOARD_SCALE", cfg.BoardScale)
	if v := strings.TrimSpace(os.Getenv("CARDVIZ_BOARD_COLUMNS")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.BoardColumns = n
		} else {
			log.Warn("invalid env value, using default",
				zap.String("key", "CARDVIZ_BOARD_COLUMNS"), zap.String("value", v), zap.Int("default", cfg.BoardColumns))
		}
	}

	if v := strings.TrimSpace(os.Getenv("APP_ENV")); v != "" {
		cfg.AppEnv = v
	}
	if v := os.Getenv("WS_ALLOWED_ORIGINS"); v != "" {
		for _, p := range strings.Split(v, ",") {
			p = strings.TrimSpace(p)
			if p != "" {
				cfg.WSAllowedOrigins = append(cfg.WSAllowedOrigins, p)
			}
		}
	}
	if v := strings.TrimSpace(os.Getenv("DEV_WEBSOCKETS_ALLOW_ALL")); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.DevWebSocketsAllowAll = b
		}
	}
	if v := strings.TrimSpace(os.Getenv("OTEL_TRACES_EXPORTER")); v != "" {
		cfg.TracesExport = v
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func floatEnv(log *zap.Logger, key string, def float64) float64 {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || !validScale(f) {
		log.Warn("invalid env value, using default",
			zap.String("key", key), zap.String("value", v), zap.Float64("default", def))
		return def
	}
	return f
}

func validScale(f float64) bool {
	return f > 0 && f <= maxScale && !math.IsNaN(f)
}

// Validate checks values that may also come from command-line flags.
func (c Config) Validate() error {
	var problems []string
	if strings.TrimSpace(c.Addr) == "" {
		problems = append(problems, "addr is empty")
	}
	if !validScale(c.GridScale) {
		problems = append(problems, fmt.Sprintf("grid scale %v not in (0, %d]", c.GridScale, maxScale))
	}
	if !validScale(c.BoardScale) {
		problems = append(problems, fmt.Sprintf("board scale %v not in (0, %d]", c.BoardScale, maxScale))
	}
	if c.BoardColumns <= 0 {
		problems = append(problems, fmt.Sprintf("board columns %d must be positive", c.BoardColumns))
	}
	if len(problems) > 0 {
		return errors.New("invalid config: " + strings.Join(problems, ", "))
	}
	return nil
}
