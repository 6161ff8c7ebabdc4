package install

import "strings"

// Platform is the installation variant, selected once per Installer.
type Platform int

const (
	PlatformUnix Platform = iota
	PlatformWindows
)

// DetectPlatform maps a GOOS value to a Platform. Everything that is not
// Windows installs the Unix way (Linux, macOS, BSDs, Termux).
func DetectPlatform(goos string) Platform {
	if strings.HasPrefix(strings.ToLower(goos), "windows") {
		return PlatformWindows
	}
	return PlatformUnix
}

// String returns "unix" or "windows".
func (p Platform) String() string {
	if p == PlatformWindows {
		return "windows"
	}
	return "unix"
}

// MarshalText lets Platform appear by name in JSON output.
func (p Platform) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}
