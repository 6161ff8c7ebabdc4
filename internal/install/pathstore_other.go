//go:build !windows

package install

// defaultPathStore has no persisted user PATH to offer off Windows.
func defaultPathStore() PathStore {
	return nil
}
