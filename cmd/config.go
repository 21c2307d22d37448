package cmd

import (
	"errors"
	"fmt"
	"strings"

	portfolio "github.com/etnz/modelfolio"
	"github.com/etnz/modelfolio/date"
	"github.com/spf13/viper"
)

// Config is the mpf configuration.
//
// Values come, by increasing priority, from the defaults, the optional
// mpf.yaml file and the MPF_* environment variables (MPF_FEED_BASE_URL for
// feed.base_url).
type Config struct {
	Name        string     `mapstructure:"name"`
	LedgerFile  string     `mapstructure:"ledger_file"`
	PriceFile   string     `mapstructure:"price_file"`
	Benchmark   string     `mapstructure:"benchmark"`
	Currency    string     `mapstructure:"currency"`
	Inception   string     `mapstructure:"inception"`
	PricePolicy string     `mapstructure:"price_policy"`
	LogLevel    string     `mapstructure:"log_level"`
	Environment string     `mapstructure:"environment"`
	Feed        FeedConfig `mapstructure:"feed"`
}

// FeedConfig configures the price feed.
type FeedConfig struct {
	BaseURL  string `mapstructure:"base_url"`
	CacheDir string `mapstructure:"cache_dir"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("name", "")
	v.SetDefault("ledger_file", "transactions.jsonl")
	v.SetDefault("price_file", "prices.jsonl")
	v.SetDefault("benchmark", "NIFTY")
	v.SetDefault("currency", portfolio.DefaultCurrency)
	v.SetDefault("inception", "")
	v.SetDefault("price_policy", "fallback")
	v.SetDefault("log_level", "warn")
	v.SetDefault("environment", "development")

	v.SetDefault("feed.base_url", "https://query1.finance.yahoo.com")
	v.SetDefault("feed.cache_dir", ".mpf-cache")
}

// LoadConfig reads the configuration, looking for mpf.yaml in 'dirs'.
func LoadConfig(dirs ...string) (*Config, error) {
	v := viper.New()
	v.SetConfigName("mpf")
	v.SetConfigType("yaml")
	for _, dir := range dirs {
		v.AddConfigPath(dir)
	}

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	v.SetEnvPrefix("MPF")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	if err := config.validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

func (c *Config) validate() error {
	c.Currency = strings.ToUpper(strings.TrimSpace(c.Currency))
	if err := portfolio.ValidateCurrency(c.Currency); err != nil {
		return fmt.Errorf("invalid currency: %w", err)
	}
	if _, err := c.policy(); err != nil {
		return err
	}
	if _, err := c.inception(); err != nil {
		return err
	}
	if c.LedgerFile == "" {
		return errors.New("ledger_file is required")
	}
	return nil
}

func (c *Config) policy() (portfolio.PricePolicy, error) {
	return portfolio.ParsePricePolicy(c.PricePolicy)
}

func (c *Config) inception() (date.Date, error) {
	if c.Inception == "" {
		return date.Date{}, nil
	}
	d, err := date.Parse(c.Inception)
	if err != nil {
		return date.Date{}, fmt.Errorf("invalid inception date: %w", err)
	}
	return d, nil
}

// Portfolio returns the portfolio metadata.
func (c *Config) Portfolio() portfolio.Portfolio {
	policy, _ := c.policy()
	inception, _ := c.inception()
	return portfolio.Portfolio{
		Name:      c.Name,
		Benchmark: c.Benchmark,
		Currency:  c.Currency,
		Inception: inception,
		Policy:    policy,
	}
}
