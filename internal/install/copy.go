package install

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/gorewood/tsdl-install/internal/output"
)

// errSourceMissing marks a copy that failed because the artifact is absent.
var errSourceMissing = errors.New("source artifact not found")

// copyExecutable copies src to dst through a temporary file in dst's
// directory. The mode is applied before the rename, so dst is either the old
// file or a complete new one. With strictMode false a chmod failure is
// ignored (Windows has no executable bit).
func copyExecutable(fsys afero.Fs, src, dst string, mode os.FileMode, strictMode bool) (err error) {
	in, err := fsys.Open(src)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s", errSourceMissing, src)
		}
		return fmt.Errorf("opening %s: %w", src, err)
	}
	defer in.Close() //nolint:errcheck // read-only

	info, err := in.Stat()
	if err != nil {
		return fmt.Errorf("inspecting %s: %w", src, err)
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory, not an artifact", src)
	}

	tmp, err := afero.TempFile(fsys, filepath.Dir(dst), "."+filepath.Base(dst)+".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temporary file in %s: %w", filepath.Dir(dst), err)
	}
	tmpName := tmp.Name()
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = fsys.Remove(tmpName)
		}
	}()

	if _, err = io.Copy(tmp, in); err != nil {
		return fmt.Errorf("copying %s to %s: %w", src, dst, err)
	}
	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("syncing %s: %w", tmpName, err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", tmpName, err)
	}

	if chmodErr := fsys.Chmod(tmpName, mode); chmodErr != nil && strictMode {
		err = fmt.Errorf("setting mode on %s: %w", dst, chmodErr)
		return err
	}

	if err = fsys.Rename(tmpName, dst); err != nil {
		return fmt.Errorf("moving %s into place: %w", dst, err)
	}
	return nil
}

// copyFailure converts a copy error into an ExitError. A missing source is
// the user's problem; anything else is a system failure.
func copyFailure(message string, err error) *output.ExitError {
	if errors.Is(err, errSourceMissing) {
		return output.NewUserErrorWithCause(message, err)
	}
	return output.NewSystemErrorWithCause(message, err)
}

// fileExists reports whether path exists as a regular file.
func fileExists(fsys afero.Fs, path string) bool {
	info, err := fsys.Stat(path)
	return err == nil && !info.IsDir()
}
