package config

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/CIDgravity/snakelet"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

// environment variables holding the upstream token, first non empty wins
var tokenEnvVars = []string{"PERSONAL_ACCESS_TOKEN", "GITHUB_TOKEN"}

// config structure
type Config struct {
	API    APIConfig    `mapstructure:"API"`
	Tasks  TasksConfig  `mapstructure:"TASKS"`
	Logs   LogsConfig   `mapstructure:"LOGS"`
	Github GithubConfig `mapstructure:"GITHUB"`
	Badge  BadgeConfig  `mapstructure:"BADGE"`
}

type APIConfig struct {
	ListenPort string `mapstructure:"ListenPort"`
}

type TasksConfig struct {
	MaxParallelTasksAllowed int `mapstructure:"MaxParallelTasksAllowed"`
}

type LogsConfig struct {
	Level            string `mapstructure:"Level"` // error | warn | info | debug - case insensitive
	OutputLogsAsJSON bool   `mapstructure:"OutputLogsAsJSON"`
}

type GithubConfig struct {
	Token   string `mapstructure:"Token"`   // overridden by PERSONAL_ACCESS_TOKEN / GITHUB_TOKEN
	BaseURL string `mapstructure:"BaseURL"` // empty means https://api.github.com/
	PerPage int    `mapstructure:"PerPage"` // only the first page is fetched, 30 is the GitHub API default
}

type BadgeConfig struct {
	DefaultUsername string `mapstructure:"DefaultUsername"`
	DefaultCount    int    `mapstructure:"DefaultCount"`
	CacheMaxAge     int    `mapstructure:"CacheMaxAge"` // seconds, sent as s-maxage
}

// Load reads config/config.toml (next to the binary, or from the working directory)
// a missing file is not an error, the default configuration is used instead
// the upstream token is always taken from the environment (or a .env file) when present
func Load() (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	configFilePath, err := findConfigFile()
	if err != nil {
		return nil, err
	}

	cfg := GetDefault()

	if configFilePath == "" {
		log.Warn("no config file found, will use default configuration")
	} else if _, err := snakelet.InitAndLoad(cfg, configFilePath); err != nil {
		return nil, err
	}

	ApplyEnv(cfg)
	return cfg, nil
}

// ApplyEnv overrides the configuration with values coming from the environment
func ApplyEnv(cfg *Config) {
	for _, name := range tokenEnvVars {
		if token := os.Getenv(name); token != "" {
			cfg.Github.Token = token
			return
		}
	}
}

func findConfigFile() (string, error) {
	dir, err := filepath.Abs(filepath.Dir(os.Args[0]))

	if err != nil {
		return "", err
	}

	for _, path := range []string{dir + "/config/config.toml", "config/config.toml"} {
		if _, err := os.Stat(path); err == nil {
			return path, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", err
		}
	}

	return "", nil
}

// GetDefault
func GetDefault() *Config {
	return &Config{
		API: APIConfig{
			ListenPort: "5000",
		},
		Tasks: TasksConfig{
			MaxParallelTasksAllowed: 8,
		},
		Logs: LogsConfig{
			Level:            "debug",
			OutputLogsAsJSON: false,
		},
		Github: GithubConfig{
			PerPage: 30,
		},
		Badge: BadgeConfig{
			DefaultUsername: "navneetlal",
			DefaultCount:    6,
			CacheMaxAge:     60 * 60 * 24, // 1 day
		},
	}
}
