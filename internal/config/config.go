// config - источник загрузки конфигурации для icebreaker-frame.
//
// Источники (по убыванию приоритета):
//  1. явный путь --config;
//  2. CONFIG_PATH;
//  3. ./local.yaml;
//  4. только ENV (cleanenv).
package config

import (
	"fmt"
	"net"
	"os"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Значения analytics.sink.
const (
	SinkNone    = "none"
	SinkPostHog = "posthog"
	SinkAMQP    = "amqp"
)

type Config struct {
	Env       string          `yaml:"env" env:"ENV" env-default:"local"`
	HTTP      HTTPConfig      `yaml:"http"`
	Metrics   MetricsConfig   `yaml:"metrics"`
	Timeouts  TimeoutConfig   `yaml:"timeouts"`
	Frame     FrameConfig     `yaml:"frame"`
	Directory DirectoryConfig `yaml:"directory"`
	Cache     CacheConfig     `yaml:"cache"`
	Analytics AnalyticsConfig `yaml:"analytics"`
}

// TimeoutConfig — общий дедлайн запроса и дедлайн одного вызова каталога.
type TimeoutConfig struct {
	Service  time.Duration `yaml:"service"  env:"SERVICE"          env-default:"15s"`
	Upstream time.Duration `yaml:"upstream" env:"TIMEOUT_UPSTREAM" env-default:"5s"`
}

// HTTPConfig — публичный сервер фрейма.
type HTTPConfig struct {
	Host string `yaml:"host" env:"HTTP_HOST" env-default:"0.0.0.0"`
	Port string `yaml:"port" env:"HTTP_PORT" env-default:"5173"`
}

func (h HTTPConfig) Addr() string { return net.JoinHostPort(h.Host, h.Port) }

// MetricsConfig — отдельный HTTP для Prometheus и health-проб.
type MetricsConfig struct {
	Host string `yaml:"host" env:"METRICS_HOST" env-default:"0.0.0.0"`
	Port string `yaml:"port" env:"METRICS_PORT" env-default:"50085"`
}

func (m MetricsConfig) Addr() string { return net.JoinHostPort(m.Host, m.Port) }

// FrameConfig — публичные адреса фрейма и внешних приложений.
type FrameConfig struct {
	// PublicURL — внешний адрес сервиса (FRAME_URL), из него строятся post/target/image URL.
	PublicURL string `yaml:"public_url" env:"FRAME_URL" env-default:"http://localhost:5173"`
	// BasePath — префикс всех маршрутов фрейма.
	BasePath string `yaml:"base_path" env:"FRAME_BASE_PATH" env-default:"/api"`
	// AppURL — веб-приложение Icebreaker (ссылки на профиль).
	AppURL string `yaml:"app_url" env:"FRAME_APP_URL" env-default:"https://app.icebreaker.xyz"`
	// WarpcastURL — клиент, принимающий deep link'и на cast/composer actions.
	WarpcastURL string `yaml:"warpcast_url" env:"FRAME_WARPCAST_URL" env-default:"https://warpcast.com"`
	Title       string `yaml:"title" env:"FRAME_TITLE" env-default:"Icebreaker Lookup Frame"`
}

// DirectoryConfig — апстрим каталога профилей.
type DirectoryConfig struct {
	BaseURL string `yaml:"base_url" env:"DIRECTORY_BASE_URL" env-default:"https://app.icebreaker.xyz/api/v1"`
}

// CacheConfig — опциональный Redis-кэш ответов каталога. Пустой URL — кэш выключен.
type CacheConfig struct {
	RedisURL string        `yaml:"redis_url" env:"CACHE_REDIS_URL"`
	Prefix   string        `yaml:"prefix"    env:"CACHE_PREFIX" env-default:"icebreaker:profile:"`
	TTL      time.Duration `yaml:"ttl"       env:"CACHE_TTL"    env-default:"1m"`
}

// AnalyticsConfig — куда уходят события просмотров/поиска.
type AnalyticsConfig struct {
	Sink         string `yaml:"sink"          env:"ANALYTICS_SINK"  env-default:"none"`
	PostHogKey   string `yaml:"posthog_key"   env:"POSTHOG_KEY"`
	PostHogHost  string `yaml:"posthog_host"  env:"POSTHOG_HOST"`
	AMQPURL      string `yaml:"amqp_url"      env:"ANALYTICS_AMQP_URL"`
	AMQPExchange string `yaml:"amqp_exchange" env:"ANALYTICS_AMQP_EXCHANGE" env-default:"frame.events"`
	// Detached — не ждать доставки события перед ответом.
	Detached bool `yaml:"detached" env:"ANALYTICS_DETACHED" env-default:"false"`
}

// MustLoad — паника при ошибке загрузки.
func MustLoad(path string) *Config {
	cfg, err := Load(path)

	if err != nil {
		panic(err)
	}

	return cfg
}

func Load(path string) (*Config, error) {
	var cfg Config

	tryRead := func(p string) (*Config, error) {
		if p == "" {
			return nil, fmt.Errorf("empty config path")
		}

		if _, err := os.Stat(p); err != nil {
			return nil, fmt.Errorf("config file %q stat failed: %w", p, err)
		}

		if err := cleanenv.ReadConfig(p, &cfg); err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}

		return validated(&cfg)
	}

	// 1) --config
	if path != "" {
		return tryRead(path)
	}

	// 2) CONFIG_PATH
	if envPath := os.Getenv("CONFIG_PATH"); envPath != "" {
		return tryRead(envPath)
	}

	// 3) ./local.yaml
	if _, err := os.Stat("local.yaml"); err == nil {
		if err := cleanenv.ReadConfig("local.yaml", &cfg); err != nil {
			return nil, fmt.Errorf("failed to read local.yaml: %w", err)
		}

		return validated(&cfg)
	}

	// 4) только ENV
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config not found: provide --config, CONFIG_PATH, local.yaml or env vars: %w", err)
	}

	return validated(&cfg)
}

// validated нормализует URL'ы (без завершающего '/') и проверяет перечислимые поля.
// cleanenv.ReadConfig уже накладывает ENV поверх файла.
func validated(cfg *Config) (*Config, error) {
	cfg.Frame.PublicURL = strings.TrimRight(cfg.Frame.PublicURL, "/")
	cfg.Frame.AppURL = strings.TrimRight(cfg.Frame.AppURL, "/")
	cfg.Frame.WarpcastURL = strings.TrimRight(cfg.Frame.WarpcastURL, "/")
	cfg.Directory.BaseURL = strings.TrimRight(cfg.Directory.BaseURL, "/")

	if cfg.Frame.BasePath != "" && !strings.HasPrefix(cfg.Frame.BasePath, "/") {
		cfg.Frame.BasePath = "/" + cfg.Frame.BasePath
	}
	cfg.Frame.BasePath = strings.TrimRight(cfg.Frame.BasePath, "/")

	switch cfg.Analytics.Sink {
	case SinkNone, SinkPostHog, SinkAMQP:
	case "":
		cfg.Analytics.Sink = SinkNone
	default:
		return nil, fmt.Errorf("unknown analytics sink %q", cfg.Analytics.Sink)
	}

	return cfg, nil
}
