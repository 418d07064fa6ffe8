// Load envs from .env
// Load YAML config
// Validate config
// Provide default values

package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	//Search criteria
	Query    string `yaml:"query"`
	Location string `yaml:"location"`
	Limit    int    `yaml:"limit"`
	Pages    int    `yaml:"pages"`

	//Source chain: tried in listed order under the given policy
	Sources []string `yaml:"sources"`
	Policy  string   `yaml:"policy"` //first-success | accumulate-all

	//Pause window between scrape requests / navigations
	DelayMinMs int `yaml:"delay_min_ms"`
	DelayMaxMs int `yaml:"delay_max_ms"`

	//JSearch API
	JSearchBaseURL string `yaml:"jsearch_base_url"`
	JSearchAPIKey  string `yaml:"jsearch_api_key" env:"RAPIDAPI_KEY"`

	//Scrape sources
	IndeedBaseURL    string `yaml:"indeed_base_url"`
	JobStreetBaseURL string `yaml:"jobstreet_base_url"`
	ShowBrowser      bool   `yaml:"show_browser"`

	//Paths
	TaxonomyPath string `yaml:"taxonomy_path"`
	OutputPath   string `yaml:"output_path"`

	//Optional Telegram report
	TelegramToken  string `yaml:"telegram_token" env:"TELEGRAM_BOT_TOKEN"`
	TelegramChatID int64  `yaml:"telegram_chat_id" env:"TELEGRAM_CHAT_ID"`
}

func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("could not read %s: %w", path, err)
		}
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("error parsing %s: %w", path, err)
	}

	//Override with env vars
	if key := os.Getenv("RAPIDAPI_KEY"); key != "" {
		cfg.JSearchAPIKey = key
	}
	if token := os.Getenv("TELEGRAM_BOT_TOKEN"); token != "" {
		cfg.TelegramToken = token
	}
	if chatID := os.Getenv("TELEGRAM_CHAT_ID"); chatID != "" {
		id, err := strconv.ParseInt(chatID, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid TELEGRAM_CHAT_ID: %w", err)
		}
		cfg.TelegramChatID = id
	}

	cfg.applyDefaults()

	//Validate required fields
	for _, src := range cfg.Sources {
		switch src {
		case "jsearch":
			if cfg.JSearchAPIKey == "" {
				return nil, fmt.Errorf("RAPIDAPI_KEY is required when the jsearch source is configured")
			}
		case "indeed", "jobstreet", "browser":
		default:
			return nil, fmt.Errorf("unknown source %q", src)
		}
	}
	if cfg.DelayMaxMs < cfg.DelayMinMs {
		return nil, fmt.Errorf("delay_max_ms must be >= delay_min_ms")
	}

	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Query == "" {
		c.Query = "frontend developer"
	}
	if c.Limit == 0 {
		c.Limit = 50
	}
	if c.Pages == 0 {
		c.Pages = 2
	}
	if len(c.Sources) == 0 {
		c.Sources = []string{"jsearch", "indeed", "jobstreet"}
	}
	if c.Policy == "" {
		c.Policy = "accumulate-all"
	}
	if c.DelayMinMs == 0 && c.DelayMaxMs == 0 {
		c.DelayMinMs = 500
		c.DelayMaxMs = 1500
	}
	if c.TaxonomyPath == "" {
		c.TaxonomyPath = "configs/taxonomy.json"
	}
	if c.OutputPath == "" {
		c.OutputPath = "tech_trends.csv"
	}
}

// Delay returns the configured pause window between scrape requests.
func (c *Config) Delay() (min, max time.Duration) {
	return time.Duration(c.DelayMinMs) * time.Millisecond,
		time.Duration(c.DelayMaxMs) * time.Millisecond
}
