package config

import (
	"errors"
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cast"
	"gopkg.in/yaml.v2"
)

const (
	DefaultConfigPath = "./config.yml"
	ConfigPathEnv     = "DAOFIN_APP_ENV"
)

type Config struct {
	Env struct {
		Network  string `yaml:"network"`
		LogLevel string `yaml:"log_level"`
		Debug    bool   `yaml:"debug"`
	} `yaml:"env"`

	Dao struct {
		Address       string `yaml:"address"`
		PluginAddress string `yaml:"plugin_address"`
	} `yaml:"dao"`

	Endpoints struct {
		Subgraph string        `yaml:"subgraph"`
		IPFS     string        `yaml:"ipfs"`
		RPC      string        `yaml:"rpc"`
		Timeout  time.Duration `yaml:"timeout"`
	} `yaml:"endpoints"`

	Cache struct {
		TTL       time.Duration `yaml:"ttl"`
		RedisAddr string        `yaml:"redis_addr"`
		RedisDb   int           `yaml:"redis_db"`
		RedisPass string        `yaml:"redis_passwd"`
	} `yaml:"cache"`

	Deposit struct {
		ConfirmRetries  uint          `yaml:"confirm_retries"`
		ConfirmInterval time.Duration `yaml:"confirm_interval"`
	} `yaml:"deposit"`
}

func Default() *Config {
	c := &Config{}
	c.Env.Network = "apothem"
	c.Env.LogLevel = "info"
	c.Endpoints.Timeout = 10 * time.Second
	c.Cache.TTL = 30 * time.Minute
	c.Deposit.ConfirmRetries = 10
	c.Deposit.ConfirmInterval = 2 * time.Second
	return c
}

// LoadConfig reads filename over the defaults. A missing file is not an
// error; the defaults and the environment still apply.
func LoadConfig(filename string) (*Config, error) {
	config := Default()

	data, err := os.ReadFile(filename)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, err
	default:
		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, err
		}
	}

	config.applyEnv()
	return config, nil
}

// Load resolves the config path from DAOFIN_APP_ENV and loads .env first.
func Load(path string) (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	if path == "" {
		path = os.Getenv(ConfigPathEnv)
	}
	if path == "" {
		path = DefaultConfigPath
	}
	return LoadConfig(path)
}

func (c *Config) applyEnv() {
	setString(&c.Env.Network, "NETWORK")
	setString(&c.Env.LogLevel, "LOG_LEVEL")
	setString(&c.Dao.Address, "DAO_ADDRESS")
	setString(&c.Dao.PluginAddress, "PLUGIN_ADDRESS")
	setString(&c.Endpoints.Subgraph, "SUBGRAPH_URL")
	setString(&c.Endpoints.IPFS, "IPFS_API_URL")
	setString(&c.Endpoints.RPC, "RPC_URL")
	setString(&c.Cache.RedisAddr, "REDIS_ADDR")
	setString(&c.Cache.RedisPass, "REDIS_PASSWD")

	if v := os.Getenv("REDIS_DB"); v != "" {
		c.Cache.RedisDb = cast.ToInt(v)
	}
	if v := os.Getenv("DEBUG"); v != "" {
		c.Env.Debug = cast.ToBool(v)
	}
	if v := os.Getenv("HTTP_TIMEOUT"); v != "" {
		if d, err := cast.ToDurationE(v); err == nil {
			c.Endpoints.Timeout = d
		}
	}
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}
