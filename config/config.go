package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const configFileEnvName = "PRODUCT_SERVICE_CONFIG_FILE"

const (
	defaultStockTimeout       = 2 * time.Second
	defaultLookupConcurrency  = 8
	defaultListBudget         = 5 * time.Second
	defaultHTTPRequestTimeout = 10 * time.Second
	defaultServiceName        = "product-service"
)

type stock struct {
	BaseURL           string        `mapstructure:"base_url"`
	Timeout           time.Duration `mapstructure:"timeout"`
	LookupConcurrency int           `mapstructure:"lookup_concurrency"`
	ListBudget        time.Duration `mapstructure:"list_budget"`
}

type topics struct {
	ProductEvents string `mapstructure:"product_events"`
}

type broker struct {
	SeedBrokers        []string `mapstructure:"seed_brokers"`
	SchemaRegistryURLs []string `mapstructure:"schema_registry_urls"`
	Topics             topics   `mapstructure:"topics"`
}

type tracing struct {
	Endpoint    string `mapstructure:"endpoint"`
	Insecure    bool   `mapstructure:"insecure"`
	ServiceName string `mapstructure:"service_name"`
}

type Config struct {
	LogLevel           slog.Level    `mapstructure:"log_level"`
	HTTPServerAddr     string        `mapstructure:"http_server_addr"`
	HTTPRequestTimeout time.Duration `mapstructure:"http_request_timeout"`
	SQLDB              string        `mapstructure:"sql_db"`
	Stock              stock         `mapstructure:"stock"`
	Broker             broker        `mapstructure:"broker"`
	Tracing            tracing       `mapstructure:"tracing"`
}

// EventsEnabled reports whether product lifecycle events are published.
func (c Config) EventsEnabled() bool {
	return len(c.Broker.SeedBrokers) != 0
}

func Load() Config {
	cfg, err := LoadFile(getConfigFilepath())
	if err != nil {
		die(err)
	}
	return cfg
}

func LoadFile(path string) (Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return Config{}, err
	}

	var cfg Config
	hook := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.TextUnmarshallerHookFunc(),
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	))
	if err := v.UnmarshalExact(&cfg, hook); err != nil {
		return Config{}, err
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log_level", "info")
	v.SetDefault("http_request_timeout", defaultHTTPRequestTimeout)
	v.SetDefault("stock.timeout", defaultStockTimeout)
	v.SetDefault("stock.lookup_concurrency", defaultLookupConcurrency)
	v.SetDefault("stock.list_budget", defaultListBudget)
	v.SetDefault("tracing.service_name", defaultServiceName)
}

func (c Config) validate() error {
	switch {
	case c.HTTPServerAddr == "":
		return fmt.Errorf("http_server_addr: required")
	case c.SQLDB == "":
		return fmt.Errorf("sql_db: required")
	case c.Stock.BaseURL == "":
		return fmt.Errorf("stock.base_url: required")
	case c.Stock.Timeout <= 0:
		return fmt.Errorf("stock.timeout: must be positive")
	case c.Stock.Timeout >= c.HTTPRequestTimeout:
		return fmt.Errorf("stock.timeout: must be less than http_request_timeout")
	case c.Stock.LookupConcurrency <= 0:
		return fmt.Errorf("stock.lookup_concurrency: must be positive")
	case c.Stock.ListBudget <= 0:
		return fmt.Errorf("stock.list_budget: must be positive")
	case c.Stock.ListBudget >= c.HTTPRequestTimeout:
		return fmt.Errorf("stock.list_budget: must be less than http_request_timeout")
	case c.EventsEnabled() && len(c.Broker.SchemaRegistryURLs) == 0:
		return fmt.Errorf("broker.schema_registry_urls: required with seed_brokers")
	case c.EventsEnabled() && c.Broker.Topics.ProductEvents == "":
		return fmt.Errorf("broker.topics.product_events: required with seed_brokers")
	}
	return nil
}

func getConfigFilepath() string {
	cmdLine := pflag.NewFlagSet(os.Args[0], pflag.ExitOnError)
	arg := cmdLine.String("config", "/config.yaml", "config file")
	_ = cmdLine.Parse(os.Args[1:])
	env, ok := os.LookupEnv(configFileEnvName)
	if ok {
		return env
	}
	return *arg
}

func die(err error) {
	fmt.Printf("failed to load config file: %v\n", err)
	os.Exit(2)
}

func (c Config) Print() {
	tamplate := `
	General:
	LogLevel=%q
	HTTPServerAddr=%q
	HTTPRequestTimeout=%q
	SQLDB=%q

	Stock:
	BaseURL=%q
	Timeout=%q
	LookupConcurrency=%d
	ListBudget=%q

	BrokerConfig:
	SeedBrokers=%q
	SchemaRegistryURLs=%q
	Topics:
		ProductEvents=%q

	Tracing:
	Endpoint=%q
	Insecure=%t
	ServiceName=%q

`
	fmt.Println("Loaded config:")
	fmt.Printf(
		strings.TrimLeft(tamplate, "\n"),
		c.LogLevel,
		c.HTTPServerAddr,
		c.HTTPRequestTimeout,
		c.SQLDB,
		c.Stock.BaseURL,
		c.Stock.Timeout,
		c.Stock.LookupConcurrency,
		c.Stock.ListBudget,
		c.Broker.SeedBrokers,
		c.Broker.SchemaRegistryURLs,
		c.Broker.Topics.ProductEvents,
		c.Tracing.Endpoint,
		c.Tracing.Insecure,
		c.Tracing.ServiceName,
	)
}
