package output

import (
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
)

// Color modes accepted by the --color flag.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// ResolveColorMode determines whether styled output is enabled for the given
// --color value. Unknown values behave like "auto". NO_COLOR, when set to a
// non-empty value, turns "auto" off.
func ResolveColorMode(colorMode string, isTTY bool) bool {
	switch strings.ToLower(colorMode) {
	case ColorNever:
		return false
	case ColorAlways:
		return true
	default:
		if os.Getenv("NO_COLOR") != "" {
			return false
		}
		return isTTY
	}
}

// IsTTY reports whether writer is a terminal, including Cygwin and MSYS
// ptys such as Git Bash's mintty.
func IsTTY(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(file.Fd()) || isatty.IsCygwinTerminal(file.Fd())
}
