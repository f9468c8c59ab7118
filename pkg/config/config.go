package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/blankbits/reup/pkg/questdb"
)

// Config represents the application configuration.
type Config struct {
	App         AppConfig         `envPrefix:"APP_"`
	ObjectStore ObjectStoreConfig `envPrefix:"OBJECT_STORE_"`
	QuestDB     questdb.Config    `envPrefix:"QUESTDB_"`
	JobKafka    JobKafkaConfig    `envPrefix:"JOB_KAFKA_"`
	Market      MarketConfig      `envPrefix:"MARKET_"`
	Features    FeaturesConfig    `envPrefix:"FEATURES_"`
}

// AppConfig represents the application configuration.
type AppConfig struct {
	Name        string `env:"NAME" envDefault:"reup"`
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
}

// ObjectStoreConfig locates the artifact store. Keys follow the layout
// <prefix>/<date>/<symbol>/<filename>.
type ObjectStoreConfig struct {
	RootDir string `env:"ROOT_DIR" envDefault:"./data"`
	Prefix  string `env:"PREFIX" envDefault:"reup"`
}

// JobKafkaConfig represents the job topic Kafka configuration.
type JobKafkaConfig struct {
	Brokers       []string `env:"BROKERS" envSeparator:"," envDefault:"localhost:9092"`
	Topic         string   `env:"TOPIC" envDefault:"reup-jobs"`
	ConsumerGroup string   `env:"CONSUMER_GROUP" envDefault:"reup-worker"`
	MaxRetries    int      `env:"MAX_RETRIES" envDefault:"3"`
}

// MarketConfig holds market session parameters and the trade conditions to
// drop before resampling.
type MarketConfig struct {
	OpenTime               string   `env:"OPEN_TIME" envDefault:"09:30:00"`
	CloseTime              string   `env:"CLOSE_TIME" envDefault:"16:00:00"`
	TimeZone               string   `env:"TIME_ZONE" envDefault:"America/New_York"`
	DiscardTradeConditions []string `env:"DISCARD_TRADE_CONDITIONS" envSeparator:"," envDefault:"37,53"`
}

// FeaturesConfig holds the trailing window lengths, in seconds.
type FeaturesConfig struct {
	TimeWindows []int `env:"TIME_WINDOWS" envSeparator:"," envDefault:"30,60,120,300,600"`
}

// Load loads the configuration from the environment.
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return cfg, nil
}

// DiscardConditionSet returns the discard codes as a set keyed by code. The
// values are free-form descriptions kept for debugging parity with logs.
func (m MarketConfig) DiscardConditionSet() map[string]string {
	set := make(map[string]string, len(m.DiscardTradeConditions))
	for _, code := range m.DiscardTradeConditions {
		set[code] = ""
	}
	return set
}

// SessionTimestamps returns the configured open and close instants for the
// given YYYY-MM-DD date as epoch seconds, along with the weekday (Monday=0).
func (m MarketConfig) SessionTimestamps(date string) (open, close float64, weekday int, err error) {
	loc, err := time.LoadLocation(m.TimeZone)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("failed to load time zone: %w", err)
	}

	openAt, err := time.ParseInLocation("2006-01-02 15:04:05", date+" "+m.OpenTime, loc)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("failed to parse open time: %w", err)
	}
	closeAt, err := time.ParseInLocation("2006-01-02 15:04:05", date+" "+m.CloseTime, loc)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("failed to parse close time: %w", err)
	}

	// time.Weekday has Sunday=0; shift to Monday=0.
	weekday = (int(openAt.Weekday()) + 6) % 7

	return float64(openAt.Unix()), float64(closeAt.Unix()), weekday, nil
}
