package internal

import (
	"fmt"
	"time"
)

// Config is unmarshalled from the environment at startup. Everything without
// a required marker has a usable zero value.
type Config struct {
	Host string `env:"HOST,required=true"`
	Port int    `env:"PORT,required=true"`

	PacksDir  string `env:"PACKS_DIR,required=true"`
	MediaDir  string `env:"MEDIA_DIR"`
	PublicDir string `env:"PUBLIC_DIR"`

	BadgerFilepath string `env:"BADGER_FILEPATH,required=true"`
	BlugeFilepath  string `env:"BLUGE_FILEPATH,required=true"`
	LogLevel       string `env:"LOG_LEVEL,required=true"`

	// OperatorKeyHash is the argon2id hash of the shared operator key, never
	// the key itself.
	OperatorKeyHash   string        `env:"OPERATOR_KEY_HASH,required=true"`
	TokenSigningKey   string        `env:"TOKEN_SIGNING_KEY,required=true"`
	AuthTokenDuration time.Duration `env:"AUTH_TOKEN_DURATION,required=true"`

	ShowTitle string `env:"SHOW_TITLE"`

	HistoryLimit int `env:"HISTORY_LIMIT,required=true"`
	SearchLimit  int `env:"SEARCH_LIMIT,required=true"`

	SessionIdleTTL  time.Duration `env:"SESSION_IDLE_TTL,required=true"`
	JanitorInterval time.Duration `env:"JANITOR_INTERVAL,required=true"`
	RestartInterval time.Duration `env:"RESTART_INTERVAL,required=true"`

	WriteTimeout time.Duration `env:"WRITE_TIMEOUT,required=true"`
	PongTimeout  time.Duration `env:"PONG_TIMEOUT,required=true"`
}

// Addr is the listen address of the public HTTP/WebSocket server.
func (c Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Title falls back to the default show name when SHOW_TITLE is unset.
func (c Config) Title() string {
	if c.ShowTitle == "" {
		return "Новогодняя викторина"
	}
	return c.ShowTitle
}
