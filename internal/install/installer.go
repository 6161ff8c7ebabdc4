package install

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/gorewood/tsdl-install/internal/output"
)

const (
	// ArtifactName is the file installed, read from the source directory.
	ArtifactName = "tsdl"

	// WrapperName is the Windows launcher written next to the artifact.
	WrapperName = "tsdl.cmd"

	// WindowsDirName is created under %LOCALAPPDATA%.
	WindowsDirName = "tsdl-tool"

	// DefaultUnixPrefix is used when neither --prefix nor $PREFIX is set.
	DefaultUnixPrefix = "/usr/local"

	// SandboxMarker is set by Termux, whose sandbox has no sudo.
	SandboxMarker = "TERMUX_VERSION"

	// EscalatedMarker is set for the elevated child so it never re-escalates.
	EscalatedMarker = "TSDL_INSTALL_ESCALATED"

	// DefaultEscalator is the privilege-escalation helper.
	DefaultEscalator = "sudo"
)

// Options configure an Installer. Zero values select the real system.
type Options struct {
	// GOOS selects the platform variant (default runtime.GOOS).
	GOOS string

	// Source is the artifact path. Empty means <WorkDir>/tsdl; relative
	// paths resolve against WorkDir.
	Source string

	// WorkDir defaults to the process working directory.
	WorkDir string

	// HomeDir is used for the ~/bin fallback (default os.UserHomeDir).
	HomeDir string

	// Prefix overrides $PREFIX on Unix.
	Prefix string

	// ConfigPrefix is used when neither Prefix nor $PREFIX is set.
	ConfigPrefix string

	// Env supplies PREFIX, LOCALAPPDATA, TERMUX_VERSION and PATH.
	Env Env

	// Fs is the filesystem written to (default afero.NewOsFs()).
	Fs afero.Fs

	// Writable reports whether dir (or its nearest existing ancestor) is
	// writable by this process. Defaults to an access(2) probe.
	Writable func(dir string) bool

	// IsRoot reports whether escalation is pointless (default euid == 0).
	IsRoot func() bool

	// PathStore holds the Windows user PATH (default: the registry on
	// Windows, nil elsewhere).
	PathStore PathStore

	// SkipPathUpdate disables the Windows PATH update.
	SkipPathUpdate bool

	// Escalator re-runs the installer elevated. Nil disables escalation.
	Escalator Escalator

	// Escalated marks the process as the elevated child.
	Escalated bool

	// ChildArgs are extra flags forwarded to the elevated child.
	ChildArgs []string

	Logger *zap.Logger
}

// Installer performs installation for a single platform variant.
type Installer struct {
	opts     Options
	platform Platform
	fs       afero.Fs
	log      *zap.Logger
}

// Plan is the resolved installation, computed without touching the disk.
type Plan struct {
	Platform        Platform `json:"platform"`
	Source          string   `json:"source"`
	Dir             string   `json:"dir"`
	Target          string   `json:"target"`
	Wrapper         string   `json:"wrapper,omitempty"`
	Fallback        bool     `json:"fallback,omitempty"`
	NeedsEscalation bool     `json:"needs_escalation,omitempty"`
	UpdatePath      bool     `json:"update_path,omitempty"`

	// prefix is forwarded to an elevated child, whose environment may
	// not carry $PREFIX.
	prefix string
}

// Result describes a completed Install call.
type Result struct {
	Plan          *Plan  `json:"plan"`
	PathUpdated   bool   `json:"path_updated,omitempty"`
	PathWarning   string `json:"path_warning,omitempty"`
	Escalated     bool   `json:"escalated,omitempty"`
	ChildExitCode int    `json:"child_exit_code,omitempty"`
}

// New builds an Installer, filling defaults for unset options.
func New(opts Options) (*Installer, error) {
	if opts.GOOS == "" {
		opts.GOOS = runtime.GOOS
	}
	if opts.WorkDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, output.NewSystemErrorWithCause("failed to determine working directory", err)
		}
		opts.WorkDir = wd
	}
	if opts.Env == nil {
		opts.Env = MapEnv{}
	}
	if opts.Fs == nil {
		opts.Fs = afero.NewOsFs()
	}
	if opts.Writable == nil {
		opts.Writable = dirWritable
	}
	if opts.IsRoot == nil {
		opts.IsRoot = func() bool { return os.Geteuid() == 0 }
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if hasenv(opts.Env, EscalatedMarker) {
		opts.Escalated = true
	}

	platform := DetectPlatform(opts.GOOS)
	if opts.PathStore == nil && platform == PlatformWindows {
		opts.PathStore = defaultPathStore()
	}

	return &Installer{
		opts:     opts,
		platform: platform,
		fs:       opts.Fs,
		log:      opts.Logger,
	}, nil
}

// Platform returns the variant chosen at construction.
func (i *Installer) Platform() Platform {
	return i.platform
}

// Plan resolves source, destination and intended actions.
func (i *Installer) Plan() (*Plan, error) {
	if i.platform == PlatformWindows {
		return i.planWindows(), nil
	}
	return i.planUnix()
}

// Install detects the platform and dispatches to InstallWindows or InstallUnix.
func (i *Installer) Install(ctx context.Context) (*Result, error) {
	if i.platform == PlatformWindows {
		return i.InstallWindows(ctx)
	}
	return i.InstallUnix(ctx)
}

// sourcePath resolves the artifact location.
func (i *Installer) sourcePath() string {
	src := i.opts.Source
	if src == "" {
		return filepath.Join(i.opts.WorkDir, ArtifactName)
	}
	if !filepath.IsAbs(src) {
		return filepath.Join(i.opts.WorkDir, src)
	}
	return src
}

// homeDir resolves the user's home for the ~/bin fallback.
func (i *Installer) homeDir() (string, error) {
	if i.opts.HomeDir != "" {
		return i.opts.HomeDir, nil
	}
	if home := getenv(i.opts.Env, "HOME"); home != "" {
		return home, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return home, nil
}

// pathUpdateEnabled reports whether InstallWindows should touch the user PATH.
func (i *Installer) pathUpdateEnabled() bool {
	return i.opts.PathStore != nil && !i.opts.SkipPathUpdate
}
