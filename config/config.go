// Package config loads typed configuration from environment variables,
// with .env file support for local development. Each configuration type
// is parsed once and cached for subsequent calls.
package config

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

var (
	mu      sync.Mutex
	cache   = make(map[reflect.Type]any)
	envOnce sync.Once
)

// Load populates cfg from the environment. cfg must be a non-nil pointer
// to a struct. The first call in the process also loads a .env file from
// the working directory if one exists; a missing .env is not an error.
//
// Results are cached per concrete type, so repeated loads of the same
// type observe the values from the first call.
func Load(cfg any) error {
	v := reflect.ValueOf(cfg)
	if v.Kind() != reflect.Pointer || v.IsNil() || v.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("config: Load requires a non-nil struct pointer, got %T", cfg)
	}

	envOnce.Do(func() {
		// Best effort. Real deployments set variables directly.
		_ = godotenv.Load()
	})

	mu.Lock()
	defer mu.Unlock()

	t := v.Elem().Type()
	if cached, ok := cache[t]; ok {
		v.Elem().Set(reflect.ValueOf(cached))
		return nil
	}

	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("config: parse %s: %w", t, err)
	}
	cache[t] = v.Elem().Interface()
	return nil
}

// MustLoad is Load that panics on failure. Intended for application
// startup where a bad environment should abort immediately.
func MustLoad(cfg any) {
	if err := Load(cfg); err != nil {
		panic(err)
	}
}
