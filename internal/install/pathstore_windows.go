//go:build windows

package install

import (
	"errors"
	"fmt"

	"golang.org/x/sys/windows/registry"
)

// userEnvironmentKey is HKCU\Environment, where the per-user PATH lives.
const userEnvironmentKey = `Environment`

// registryPathStore reads and writes HKCU\Environment\PATH.
type registryPathStore struct{}

func defaultPathStore() PathStore {
	return registryPathStore{}
}

// Read returns the user PATH, or "" when the value does not exist.
func (registryPathStore) Read() (string, error) {
	key, err := registry.OpenKey(registry.CURRENT_USER, userEnvironmentKey, registry.QUERY_VALUE)
	if err != nil {
		return "", fmt.Errorf("opening HKCU\\%s: %w", userEnvironmentKey, err)
	}
	defer key.Close() //nolint:errcheck // read-only handle

	value, _, err := key.GetStringValue("PATH")
	if errors.Is(err, registry.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("reading PATH: %w", err)
	}
	return value, nil
}

// Write stores value as REG_EXPAND_SZ so %VAR% references keep expanding.
func (registryPathStore) Write(value string) error {
	key, err := registry.OpenKey(registry.CURRENT_USER, userEnvironmentKey, registry.SET_VALUE)
	if err != nil {
		return fmt.Errorf("opening HKCU\\%s: %w", userEnvironmentKey, err)
	}
	defer key.Close() //nolint:errcheck // closed after a single write

	if err := key.SetExpandStringValue("PATH", value); err != nil {
		return fmt.Errorf("writing PATH: %w", err)
	}
	return nil
}
