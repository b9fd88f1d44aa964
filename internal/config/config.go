package config

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type AppConfig struct {
	Env            string        `yaml:"env" env:"APP_ENV" env-default:"dev"`
	APIURL         string        `yaml:"api_url" env:"API_URL"`
	ClientVersion  string        `yaml:"client_version" env:"CLIENT_VERSION"`
	RequestTimeout time.Duration `yaml:"request_timeout" env:"REQUEST_TIMEOUT" env-default:"30s"`

	// Host и PagePath определяют скоуп локального кэша: один и тот же хост
	// может отдавать разные игры на разных путях
	Host     string        `yaml:"host" env:"GAME_HOST" env-default:"localhost"`
	PagePath string        `yaml:"page_path" env:"GAME_PAGE_PATH" env-default:"/"`
	Storage  StorageConfig `yaml:"storage"`
}

type StorageConfig struct {
	Backend       string `yaml:"backend" env:"STORAGE_BACKEND" env-default:"file"`
	Dir           string `yaml:"dir" env:"STORAGE_DIR" env-default:"./session-data"`
	RedisAddr     string `yaml:"redis_addr" env:"REDIS_ADDR" env-default:"localhost:6379"`
	RedisPassword string `yaml:"redis_password" env:"REDIS_PASSWORD"`
	RedisDB       int    `yaml:"redis_db" env:"REDIS_DB" env-default:"0"`
}

// Load читает настройки из yaml-файла (если задан) и переменных окружения
func Load() (*AppConfig, error) {
	var cfg AppConfig

	path := fetchConfigPath()
	if path != "" {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("ошибка загрузки конфига %s: %w", path, err)
		}
	} else {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("ошибка чтения окружения: %w", err)
		}
	}

	if cfg.APIURL == "" || cfg.ClientVersion == "" {
		return nil, fmt.Errorf("API_URL и CLIENT_VERSION должны быть заданы")
	}
	cfg.APIURL = strings.TrimRight(cfg.APIURL, "/")

	return &cfg, nil
}

// fetchConfigPath fetches config path from command line flag or environment variable.
// Priority: flag > env > default.
// Default value is empty string.
func fetchConfigPath() string {
	var res string

	flag.StringVar(&res, "config", "", "path to config file")
	flag.Parse()

	if res == "" {
		res = os.Getenv("CONFIG_PATH")
	}
	return res
}
