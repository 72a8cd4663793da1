// Package config loads typed configuration from environment variables using
// Go generics. Each configuration type is parsed once and cached.
//
// A .env file in the working directory is loaded on first use when present.
// Parsing is done by caarlos0/env, so struct tags follow its syntax:
//
//	type APIConfig struct {
//		URL     string        `env:"API_URL" envDefault:"http://127.0.0.1:8000/api"`
//		Timeout time.Duration `env:"API_TIMEOUT" envDefault:"30s"`
//	}
//
//	var cfg APIConfig
//	if err := config.Load(&cfg); err != nil {
//		return err
//	}
//
//	// or, at process start:
//	config.MustLoad(&cfg)
//
// Later calls for the same type return the cached value without reading the
// environment again. Reset drops the cache; tests use it after t.Setenv.
package config
