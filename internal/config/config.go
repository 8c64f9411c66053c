// /internal/config/config.go
package config

import (
	"log"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

func init() {
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found, falling back to system environment variables")
	}
}

type Config struct {
	ServerURL   string   `env:"SHOWDOWN_SERVER" envDefault:"wss://sim3.psim.us/showdown/websocket"`
	LoginServer string   `env:"LOGIN_SERVER" envDefault:"https://play.pokemonshowdown.com/action.php"`
	Nick        string   `env:"BOT_NICK,required"`
	Password    string   `env:"BOT_PASSWORD"`
	Rooms       []string `env:"BOT_ROOMS" envSeparator:","`
	StoragePath string   `env:"STORAGE_PATH" envDefault:"data/cmd-parser.json"`
	LogPath     string   `env:"LOG_PATH" envDefault:"logs/bot.log"`
	Debug       bool     `env:"DEBUG"`

	// Tokens are the literal command prefixes, checked in order.
	Tokens []string `env:"CMD_TOKENS" envSeparator:"," envDefault:"."`
	// Groups is the rank order of the server, lowest first.
	Groups []string `env:"CMD_GROUPS" envSeparator:"," envDefault:"+,%,@,*,#,&,~"`
	// Language applies to PMs and rooms without an override; RoomLanguages
	// overrides it per room ("lobby:spanish,anime:german").
	Language         string            `env:"BOT_LANGUAGE" envDefault:"english"`
	RoomLanguages    map[string]string `env:"ROOM_LANGUAGES" envSeparator:"," envKeyValSeparator:":"`
	MaxMessageLength int               `env:"MAX_MESSAGE_LENGTH" envDefault:"300"`
}

// NamedGroups maps configuration-friendly rank names onto the group
// symbols in Groups. Permission tables may use either form.
func (c *Config) NamedGroups() map[string]string {
	return map[string]string{
		"voice":  "+",
		"driver": "%",
		"mod":    "@",
		"bot":    "*",
		"owner":  "#",
		"leader": "&",
		"admin":  "~",
	}
}

func New() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
