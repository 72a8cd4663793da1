package storefront

import (
	"os"
	"path/filepath"
	"time"

	"github.com/dmitrymomot/storefront/integration/database/redis"
)

// Config is loaded from the environment by NewApp.
type Config struct {
	Redis redis.Config

	AppName  string `env:"APP_NAME" envDefault:"storefront"`
	Env      string `env:"APP_ENV" envDefault:"development"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	APIURL     string        `env:"API_URL" envDefault:"http://127.0.0.1:8000/api"`
	APITimeout time.Duration `env:"API_TIMEOUT" envDefault:"30s"`

	// TokenStore selects where the bearer token lives: file, memory or redis.
	TokenStore     string        `env:"TOKEN_STORE" envDefault:"file"`
	TokenFile      string        `env:"TOKEN_FILE"`
	TokenTTL       time.Duration `env:"TOKEN_TTL" envDefault:"0s"`
	RedisKeyPrefix string        `env:"REDIS_KEY_PREFIX" envDefault:"storefront:session:"`
}

// TokenFilePath returns TokenFile or a per-user default under the config directory.
func (c Config) TokenFilePath() string {
	if c.TokenFile != "" {
		return c.TokenFile
	}
	name := c.AppName
	if name == "" {
		name = "storefront"
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "." + name + "-session.json"
	}
	return filepath.Join(dir, name, "session.json")
}
