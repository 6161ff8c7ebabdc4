package config

import (
	"os"
	"path/filepath"

	"github.com/gorewood/tsdl-install/internal/envfile"
)

// Environ answers environment lookups from the process environment first,
// then from .env layers in the order they were added.
type Environ struct {
	lookup func(string) (string, bool)
	layers []map[string]string
}

// NewEnviron returns an Environ backed by the process environment only.
func NewEnviron() *Environ {
	return &Environ{lookup: os.LookupEnv}
}

// DefaultEnviron layers .env files beneath the process environment.
//
// Resolution order:
//  1. process environment
//  2. $CWD/.env.local
//  3. $CWD/.env
//  4. <config dir>/env
//
// Unreadable files are skipped.
func DefaultEnviron() *Environ {
	env := NewEnviron()
	_ = env.AddFile(".env.local")
	_ = env.AddFile(".env")
	if dir := Dir(); dir != "" {
		_ = env.AddFile(filepath.Join(dir, "env"))
	}
	return env
}

// AddFile appends a .env file as the lowest-priority layer.
func (e *Environ) AddFile(path string) error {
	values, err := envfile.Read(path)
	if err != nil {
		return err
	}
	e.AddLayer(values)
	return nil
}

// AddLayer appends values as the lowest-priority layer.
func (e *Environ) AddLayer(values map[string]string) {
	if len(values) > 0 {
		e.layers = append(e.layers, values)
	}
}

// Lookup returns the value for key and whether any layer defines it.
func (e *Environ) Lookup(key string) (string, bool) {
	if e.lookup != nil {
		if v, ok := e.lookup(key); ok {
			return v, true
		}
	}
	for _, layer := range e.layers {
		if v, ok := layer[key]; ok {
			return v, true
		}
	}
	return "", false
}

// Get returns the value for key, or "" when unset.
func (e *Environ) Get(key string) string {
	v, _ := e.Lookup(key)
	return v
}
