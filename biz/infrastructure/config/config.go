package config

import (
	"errors"
	"os"
	"time"

	"edu-platform/biz/infrastructure/util/log"

	"github.com/joho/godotenv"
	"github.com/zeromicro/go-zero/core/conf"
	"github.com/zeromicro/go-zero/core/service"
	"github.com/zeromicro/go-zero/core/stores/cache"
	"github.com/zeromicro/go-zero/core/stores/redis"
)

const defaultConfigPath = "etc/config.yaml"

var config *Config

type Auth struct {
	SecretKey    string
	PublicKey    string
	AccessExpire int64 `json:",default=604800"`
}

type Config struct {
	service.ServiceConf
	ListenOn string `json:",default=0.0.0.0:8080"`
	State    string `json:",default=dev"`
	Auth     Auth
	Mongo    struct {
		URL string
		DB  string
	}
	MySQL struct {
		DSN string `json:",optional"`
	}
	Cache     cache.CacheConf
	Redis     *redis.RedisConf
	RateLimit RateLimitConf
	Storage   StorageConf
	Metrics   MetricsConf
	Server    ServerConf
	Relay     RelayConf
	Reconcile ReconcileConf
	Api       API
	AccessLog LogConfig
}

type LogConfig struct {
	NoLogPaths []string `json:",optional"`
}

type RateLimitConf struct {
	Period int `json:",default=900"`
	Quota  int `json:",default=100"`
}

type StorageConf struct {
	Endpoint      string `json:",optional"`
	Region        string `json:",default=us-east-1"`
	Bucket        string `json:",optional"`
	AccessKey     string `json:",optional"`
	SecretKey     string `json:",optional"`
	PresignExpire int64  `json:",default=900"`
}

type MetricsConf struct {
	Addr string `json:",default=:9091"`
	Path string `json:",default=/metrics"`
}

type ServerConf struct {
	RequestTimeout time.Duration `json:",default=10s"`
}

type RelayConf struct {
	SendBuffer int `json:",default=64"`
}

type ReconcileConf struct {
	Interval time.Duration `json:",default=30s"`
}

type API struct {
	ChatURL string `json:",optional"`
}

func NewConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Error("NewConfig load .env failed: %v", err)
	}

	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = defaultConfigPath
	}
	log.Info("NewConfig load config from path: %s", path)

	c := new(Config)
	if err := conf.Load(path, c); err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if err := c.SetUp(); err != nil {
		return nil, err
	}
	config = c
	return c, nil
}

// Validate rejects configurations the server cannot start with.
func (c *Config) Validate() error {
	if c.Auth.SecretKey == "" || c.Auth.PublicKey == "" {
		return errors.New("config: Auth.SecretKey and Auth.PublicKey are required")
	}
	if c.Auth.AccessExpire <= 0 {
		return errors.New("config: Auth.AccessExpire must be positive")
	}
	if c.Mongo.URL == "" || c.Mongo.DB == "" {
		return errors.New("config: Mongo.URL and Mongo.DB are required")
	}
	if c.Redis == nil || c.Redis.Host == "" {
		return errors.New("config: Redis.Host is required")
	}
	return nil
}

func (s StorageConf) Enabled() bool {
	return s.Bucket != ""
}

func GetConfig() *Config {
	return config
}
