package config

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// configCache keeps one parsed copy per configuration type.
type configCache struct {
	mu     sync.RWMutex
	values map[string]any
	onces  map[string]*sync.Once
}

var (
	globalCache = &configCache{
		values: make(map[string]any),
		onces:  make(map[string]*sync.Once),
	}

	defaultEnvLoaded sync.Once
)

// Load fills v from the environment. The default .env file is read once if
// present. Each configuration type is parsed only once per process; later
// calls receive the cached copy.
//
//	type ServerConfig struct {
//		Addr string `env:"HTTP_ADDR" envDefault:":8080"`
//	}
//
//	var cfg ServerConfig
//	if err := config.Load(&cfg); err != nil {
//		return err
//	}
func Load[T any](v *T) error {
	defaultEnvLoaded.Do(func() {
		// a missing .env file is fine
		_ = godotenv.Load()
	})
	if v == nil {
		return ErrNilPointer
	}

	typeName := getTypeName[T]()

	if cached, ok := globalCache.get(typeName); ok {
		*v = cached.(T)
		return nil
	}

	globalCache.mu.Lock()
	once, exists := globalCache.onces[typeName]
	if !exists {
		once = new(sync.Once)
		globalCache.onces[typeName] = once
	}
	globalCache.mu.Unlock()

	var err error
	once.Do(func() {
		var parsed T
		if err = Parse(&parsed); err != nil {
			// allow a retry once the environment is fixed
			globalCache.mu.Lock()
			delete(globalCache.onces, typeName)
			globalCache.mu.Unlock()
			return
		}
		globalCache.mu.Lock()
		globalCache.values[typeName] = parsed
		globalCache.mu.Unlock()
	})
	if err != nil {
		return err
	}

	if cached, ok := globalCache.get(typeName); ok {
		*v = cached.(T)
		return nil
	}
	return ErrConfigNotLoaded
}

// Parse fills v from the current environment without caching.
func Parse[T any](v *T) error {
	if v == nil {
		return ErrNilPointer
	}
	if err := env.Parse(v); err != nil {
		return errors.Join(ErrParsingConfig, err)
	}
	return nil
}

// MustLoad is like Load but panics on failure.
func MustLoad[T any](v *T) {
	if err := Load(v); err != nil {
		panic(fmt.Sprintf("failed to load required configuration: %v", err))
	}
}

// LoadEnv reads the given .env files into the process environment.
// Variables that are already set are not overridden.
func LoadEnv(files ...string) error {
	if len(files) == 0 {
		return nil
	}
	if err := godotenv.Load(files...); err != nil {
		return errors.Join(ErrLoadingEnvFile, err)
	}
	return nil
}

// ResetCache forgets every cached configuration. Intended for tests.
func ResetCache() {
	globalCache.mu.Lock()
	defer globalCache.mu.Unlock()
	globalCache.values = make(map[string]any)
	globalCache.onces = make(map[string]*sync.Once)
}

func (c *configCache) get(typeName string) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.values[typeName]
	return v, ok
}

func getTypeName[T any]() string {
	return reflect.TypeFor[T]().String()
}
