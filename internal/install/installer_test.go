package install

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gorewood/tsdl-install/internal/output"
)

const artifactBody = "#!/bin/sh\necho tsdl\n"

// fakeEscalator records invocations and returns a canned exit code.
type fakeEscalator struct {
	code  int
	err   error
	calls [][]string
}

func (f *fakeEscalator) Run(_ context.Context, args []string) (int, error) {
	f.calls = append(f.calls, args)
	return f.code, f.err
}

func (f *fakeEscalator) Name() string { return "sudo" }

// newMemInstaller builds an installer over an in-memory filesystem with the
// artifact present in /work.
func newMemInstaller(t *testing.T, opts Options) (*Installer, afero.Fs) {
	t.Helper()
	fsys := afero.NewMemMapFs()
	require.NoError(t, fsys.MkdirAll("/work", 0o755))
	require.NoError(t, afero.WriteFile(fsys, "/work/tsdl", []byte(artifactBody), 0o644))

	opts.Fs = fsys
	if opts.WorkDir == "" {
		opts.WorkDir = "/work"
	}
	if opts.HomeDir == "" {
		opts.HomeDir = "/home/user"
	}
	if opts.Writable == nil {
		opts.Writable = func(string) bool { return true }
	}
	if opts.IsRoot == nil {
		opts.IsRoot = func() bool { return false }
	}
	inst, err := New(opts)
	require.NoError(t, err)
	return inst, fsys
}

func TestDetectPlatform(t *testing.T) {
	assert.Equal(t, PlatformWindows, DetectPlatform("windows"))
	assert.Equal(t, PlatformUnix, DetectPlatform("linux"))
	assert.Equal(t, PlatformUnix, DetectPlatform("darwin"))
	assert.Equal(t, PlatformUnix, DetectPlatform("android"))
	assert.Equal(t, "windows", PlatformWindows.String())
	assert.Equal(t, "unix", PlatformUnix.String())
}

func TestPlan_UnixDefaultPrefix(t *testing.T) {
	inst, _ := newMemInstaller(t, Options{GOOS: "linux"})

	plan, err := inst.Plan()
	require.NoError(t, err)
	assert.Equal(t, filepath.FromSlash("/usr/local/bin"), plan.Dir)
	assert.Equal(t, filepath.FromSlash("/usr/local/bin/tsdl"), plan.Target)
	assert.Equal(t, filepath.FromSlash("/work/tsdl"), plan.Source)
	assert.False(t, plan.NeedsEscalation)
	assert.False(t, plan.Fallback)
	assert.Empty(t, plan.Wrapper)
}

func TestPlan_UnixPrefixPrecedence(t *testing.T) {
	tests := []struct {
		name   string
		opts   Options
		wantIn string
	}{
		{name: "env PREFIX", opts: Options{Env: MapEnv{"PREFIX": "/data/termux/usr"}}, wantIn: "/data/termux/usr/bin"},
		{name: "flag beats env", opts: Options{Prefix: "/opt", Env: MapEnv{"PREFIX": "/env"}}, wantIn: "/opt/bin"},
		{name: "env beats config", opts: Options{ConfigPrefix: "/cfg", Env: MapEnv{"PREFIX": "/env"}}, wantIn: "/env/bin"},
		{name: "config when env unset", opts: Options{ConfigPrefix: "/cfg"}, wantIn: "/cfg/bin"},
		{name: "empty PREFIX ignored", opts: Options{Env: MapEnv{"PREFIX": ""}}, wantIn: "/usr/local/bin"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.opts.GOOS = "linux"
			inst, _ := newMemInstaller(t, tt.opts)
			plan, err := inst.Plan()
			require.NoError(t, err)
			assert.Equal(t, filepath.FromSlash(tt.wantIn), plan.Dir)
		})
	}
}

func TestPlan_UnixSandboxFallback(t *testing.T) {
	inst, _ := newMemInstaller(t, Options{
		GOOS:     "linux",
		Env:      MapEnv{SandboxMarker: "0.118.0"},
		Writable: func(string) bool { return false },
	})

	plan, err := inst.Plan()
	require.NoError(t, err)
	assert.True(t, plan.Fallback)
	assert.False(t, plan.NeedsEscalation)
	assert.Equal(t, filepath.FromSlash("/home/user/bin"), plan.Dir)
}

func TestPlan_UnixNeedsEscalation(t *testing.T) {
	inst, _ := newMemInstaller(t, Options{
		GOOS:     "linux",
		Writable: func(string) bool { return false },
	})

	plan, err := inst.Plan()
	require.NoError(t, err)
	assert.True(t, plan.NeedsEscalation)
	assert.Equal(t, filepath.FromSlash("/usr/local/bin"), plan.Dir)
}

func TestPlan_SourceOverride(t *testing.T) {
	inst, _ := newMemInstaller(t, Options{GOOS: "linux", Source: "build/tsdl"})
	plan, err := inst.Plan()
	require.NoError(t, err)
	assert.Equal(t, filepath.FromSlash("/work/build/tsdl"), plan.Source)

	inst, _ = newMemInstaller(t, Options{GOOS: "linux", Source: "/abs/tsdl"})
	plan, err = inst.Plan()
	require.NoError(t, err)
	assert.Equal(t, filepath.FromSlash("/abs/tsdl"), plan.Source)
}

func TestInstallUnix_CopiesWithMode(t *testing.T) {
	inst, fsys := newMemInstaller(t, Options{GOOS: "linux"})

	result, err := inst.Install(context.Background())
	require.NoError(t, err)
	assert.False(t, result.Escalated)

	data, err := afero.ReadFile(fsys, "/usr/local/bin/tsdl")
	require.NoError(t, err)
	assert.Equal(t, artifactBody, string(data))

	info, err := fsys.Stat("/usr/local/bin/tsdl")
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o755), info.Mode().Perm())
}

func TestInstallUnix_SandboxFallbackCreatesHomeBin(t *testing.T) {
	inst, fsys := newMemInstaller(t, Options{
		GOOS:     "linux",
		Env:      MapEnv{SandboxMarker: "0.118.0"},
		Writable: func(string) bool { return false },
	})

	result, err := inst.Install(context.Background())
	require.NoError(t, err)
	assert.True(t, result.Plan.Fallback)
	assert.True(t, fileExists(fsys, "/home/user/bin/tsdl"))
}

func TestInstallUnix_MissingSource(t *testing.T) {
	inst, fsys := newMemInstaller(t, Options{GOOS: "linux", Source: "/nowhere/tsdl"})

	_, err := inst.Install(context.Background())
	require.Error(t, err)
	assert.Equal(t, output.ExitUserError, output.GetExitCode(err))
	assert.Contains(t, err.Error(), "installation failed on Unix")
	assert.ErrorIs(t, err, errSourceMissing)

	assert.False(t, fileExists(fsys, "/usr/local/bin/tsdl"))
	entries, _ := afero.ReadDir(fsys, "/usr/local/bin")
	assert.Empty(t, entries, "no temporary or partial file may remain")
}

func TestInstallUnix_Idempotent(t *testing.T) {
	inst, fsys := newMemInstaller(t, Options{GOOS: "linux"})

	_, err := inst.Install(context.Background())
	require.NoError(t, err)
	_, err = inst.Install(context.Background())
	require.NoError(t, err)

	entries, err := afero.ReadDir(fsys, "/usr/local/bin")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, ArtifactName, entries[0].Name())

	data, err := afero.ReadFile(fsys, "/usr/local/bin/tsdl")
	require.NoError(t, err)
	assert.Equal(t, artifactBody, string(data))
}

func TestInstallUnix_EscalatesAndStops(t *testing.T) {
	esc := &fakeEscalator{}
	inst, fsys := newMemInstaller(t, Options{
		GOOS:      "linux",
		Writable:  func(string) bool { return false },
		Escalator: esc,
		ChildArgs: []string{"--json"},
	})

	result, err := inst.Install(context.Background())
	require.NoError(t, err)
	assert.True(t, result.Escalated)
	require.Len(t, esc.calls, 1)
	assert.Equal(t,
		[]string{"--source", filepath.FromSlash("/work/tsdl"), "--prefix", "/usr/local", "--escalated", "--json"},
		esc.calls[0])

	// The parent does no work of its own.
	assert.False(t, fileExists(fsys, "/usr/local/bin/tsdl"))
}

func TestInstallUnix_EscalatedChildFailurePropagates(t *testing.T) {
	esc := &fakeEscalator{code: 4}
	inst, _ := newMemInstaller(t, Options{
		GOOS:      "linux",
		Writable:  func(string) bool { return false },
		Escalator: esc,
	})

	result, err := inst.Install(context.Background())
	require.Error(t, err)
	assert.Equal(t, 4, output.GetExitCode(err))
	assert.Equal(t, 4, result.ChildExitCode)
}

func TestInstallUnix_EscalatorStartFailure(t *testing.T) {
	esc := &fakeEscalator{code: -1, err: errors.New("sudo: not found")}
	inst, _ := newMemInstaller(t, Options{
		GOOS:      "linux",
		Writable:  func(string) bool { return false },
		Escalator: esc,
	})

	_, err := inst.Install(context.Background())
	require.Error(t, err)
	assert.Equal(t, output.ExitSystemError, output.GetExitCode(err))
}

func TestInstallUnix_NoSecondEscalation(t *testing.T) {
	tests := []struct {
		name string
		opts Options
	}{
		{name: "escalated flag", opts: Options{Escalated: true}},
		{name: "escalated env marker", opts: Options{Env: MapEnv{EscalatedMarker: "1"}}},
		{name: "already root", opts: Options{IsRoot: func() bool { return true }}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			esc := &fakeEscalator{}
			tt.opts.GOOS = "linux"
			tt.opts.Writable = func(string) bool { return false }
			tt.opts.Escalator = esc
			inst, _ := newMemInstaller(t, tt.opts)

			_, err := inst.Install(context.Background())
			require.Error(t, err)
			assert.Equal(t, output.ExitPermission, output.GetExitCode(err))
			assert.Empty(t, esc.calls)
		})
	}
}

func TestInstallUnix_NoEscalator(t *testing.T) {
	inst, _ := newMemInstaller(t, Options{
		GOOS:     "linux",
		Writable: func(string) bool { return false },
	})

	_, err := inst.Install(context.Background())
	require.Error(t, err)
	assert.Equal(t, output.ExitPermission, output.GetExitCode(err))
}

func TestInstallUnix_RealFilesystem(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("unix permission bits")
	}

	work := t.TempDir()
	prefix := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(work, ArtifactName), []byte(artifactBody), 0o600))

	inst, err := New(Options{GOOS: runtime.GOOS, WorkDir: work, Prefix: prefix})
	require.NoError(t, err)

	_, err = inst.Install(context.Background())
	require.NoError(t, err)

	info, err := os.Stat(filepath.Join(prefix, "bin", ArtifactName))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o755), info.Mode().Perm())

	data, err := os.ReadFile(filepath.Join(prefix, "bin", ArtifactName))
	require.NoError(t, err)
	assert.Equal(t, artifactBody, string(data))
}
