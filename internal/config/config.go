// Package config предоставялет структуры и функцию для парсинга и загрузки конфига клиента
package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config общая структура для хранения настроек
type Config struct {
	Env             string `yaml:"env" env-default:"local"`
	API             `yaml:"api"`
	SessionStore    `yaml:"session_store"`
	RedisConnection `yaml:"redis_connection"`
	HTTPServer      `yaml:"http_server"`
	Notifications   `yaml:"notifications"`
	Events          `yaml:"events"`
}

// API настройки REST API маркетплейса
type API struct {
	BaseURL    string        `yaml:"base_url" env-required:"true"`
	TimeoutAPI time.Duration `yaml:"timeout" env-default:"10s"`
}

// SessionStore настройки долговременного хранилища сессии (ключи token и user).
// Driver: file, redis или memory.
type SessionStore struct {
	Driver    string `yaml:"driver" env-default:"file"`
	Path      string `yaml:"path" env-default:"./session.json"`
	KeyPrefix string `yaml:"key_prefix" env-default:"fitplanhub:"`
}

// RedisConnection структура для настройки подключения к redis
type RedisConnection struct {
	AddressRedis string        `yaml:"addressredis"`
	Password     string        `yaml:"password"`
	User         string        `yaml:"user"`
	DB           int           `yaml:"db"`
	MaxRetries   int           `yaml:"max_retries"`
	DialTimeout  time.Duration `yaml:"dial_timeout"`
	TimeoutRedis time.Duration `yaml:"timeoutredis"`
}

// HTTPServer структура для настройки локального фронтенда
type HTTPServer struct {
	AddressHTTP string        `yaml:"addresshttp" env-default:"127.0.0.1:8090"`
	TimeoutHTTP time.Duration `yaml:"timeouthttp" env-default:"30s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env-default:"60s"`
	RateLimit   float64       `yaml:"rate_limit" env-default:"5"`
	RateBurst   int           `yaml:"rate_burst" env-default:"10"`
}

// Notifications настройки всплывающих уведомлений
type Notifications struct {
	TTL time.Duration `yaml:"ttl" env-default:"5s"`
}

// Events настройки публикации событий сессии в RabbitMQ.
// Пустой AMQPURL отключает публикацию.
type Events struct {
	AMQPURL    string        `yaml:"amqp_url"`
	Exchange   string        `yaml:"exchange" env-default:"fitplanhub.events"`
	Retries    int           `yaml:"retries" env-default:"3"`
	RetryDelay time.Duration `yaml:"retry_delay" env-default:"2s"`
}

// MustLoad функция для загрузки конфига, путь берётся из CONFIG_PATH
func MustLoad() *Config {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		log.Fatal("CONFIG_PATH is not set")
	}
	cfg, err := Load(configPath)
	if err != nil {
		log.Fatal(err)
	}
	return cfg
}

// Load читает конфиг из файла и применяет значения по умолчанию.
func Load(configPath string) (*Config, error) {
	const op = "config.Load"
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("%s: file: %s - does not exist", op, configPath)
	}
	var cfg Config

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		return nil, fmt.Errorf("%s: cannot read config: %w", op, err)
	}
	return &cfg, nil
}

func (c *Config) String() string {
	return fmt.Sprintf(
		"Env: %s\n"+
			"API:\n"+
			"  BaseURL: %s\n"+
			"  Timeout: %s\n"+
			"SessionStore:\n"+
			"  Driver: %s\n"+
			"  Path: %s\n"+
			"RedisConnection:\n"+
			"  Addr: %s\n"+
			"  DB: %d\n"+
			"HTTPServer:\n"+
			"  Address: %s\n"+
			"  Timeout: %s\n"+
			"Notifications:\n"+
			"  TTL: %s\n"+
			"Events:\n"+
			"  Enabled: %t\n",
		c.Env,
		c.BaseURL,
		c.TimeoutAPI,
		c.Driver,
		c.Path,
		c.AddressRedis,
		c.DB,
		c.AddressHTTP,
		c.TimeoutHTTP,
		c.TTL,
		c.AMQPURL != "",
	)
}
