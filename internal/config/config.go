// Package config содержит логику чтения конфигурации сервиса баллов.
package config

import (
	"flag"
	"fmt"
	"strconv"
	"strings"

	"github.com/caarlos0/env/v11"
)

// Config содержит параметры конфигурации сервиса баллов.
type Config struct {
	RunAddress     string `env:"RUN_ADDRESS"`
	ReadLatencyMS  int    `env:"READ_LATENCY_MS"`
	WriteLatencyMS int    `env:"WRITE_LATENCY_MS"`
	CapTotal       bool   `env:"CAP_TOTAL"`
	SeedPoint      string `env:"SEED_POINT"`
}

// Parse считывает конфигурацию из флагов командной строки и переменных
// окружения. Переменные окружения имеют приоритет над флагами.
func Parse() (*Config, error) {
	cfg := &Config{}

	flag.StringVar(&cfg.RunAddress, "a", "localhost:8080", "address and port for HTTP server")
	flag.IntVar(&cfg.ReadLatencyMS, "r", 200, "balance read latency ceiling, milliseconds")
	flag.IntVar(&cfg.WriteLatencyMS, "w", 300, "balance write latency ceiling, milliseconds")
	flag.BoolVar(&cfg.CapTotal, "c", false, "reject charges pushing the balance over the maximum")
	flag.StringVar(&cfg.SeedPoint, "s", "", "balance to seed at startup, id:point")

	flag.Parse()

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if cfg.RunAddress == "" {
		cfg.RunAddress = "localhost:8080"
	}

	return cfg, nil
}

// Seed разбирает строку вида "id:point" со стартовым балансом.
// Пустая строка означает, что стартовый баланс не задан.
func (c *Config) Seed() (id, point int64, ok bool, err error) {
	if c.SeedPoint == "" {
		return 0, 0, false, nil
	}

	parts := strings.SplitN(c.SeedPoint, ":", 2)
	if len(parts) != 2 {
		return 0, 0, false, fmt.Errorf("seed %q: want id:point", c.SeedPoint)
	}

	id, err = strconv.ParseInt(parts[0], 10, 64)
	if err != nil || id <= 0 {
		return 0, 0, false, fmt.Errorf("seed %q: invalid user id", c.SeedPoint)
	}

	point, err = strconv.ParseInt(parts[1], 10, 64)
	if err != nil || point < 0 {
		return 0, 0, false, fmt.Errorf("seed %q: invalid point amount", c.SeedPoint)
	}

	return id, point, true, nil
}
