// Package config loads typed configuration from environment variables.
//
// Struct fields are mapped with github.com/caarlos0/env/v11 tags, and a .env
// file in the working directory is read through github.com/joho/godotenv
// before the first Load. Each configuration type is parsed once and cached;
// Parse skips the cache, and ResetCache clears it between tests.
//
//	type Config struct {
//	    Addr   string `env:"HTTP_ADDR" envDefault:":8080"`
//	    Locale string `env:"NUMSTR_LOCALE" envDefault:"en"`
//	}
//
//	var cfg Config
//	if err := config.Load(&cfg); err != nil {
//	    return err
//	}
package config
