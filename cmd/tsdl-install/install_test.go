package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

func skipUnlessUnix(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("installs into the user registry PATH on Windows")
	}
}

func TestInstall_CopiesIntoPrefix(t *testing.T) {
	skipUnlessUnix(t)
	work := setupWorkDir(t)
	prefix := t.TempDir()

	runInDir(t, work, func() {
		out, err := execute(t, "--prefix", prefix)
		if err != nil {
			t.Fatalf("install failed: %v\n%s", err, out)
		}

		target := filepath.Join(prefix, "bin", "tsdl")
		if !strings.Contains(out, "tsdl successfully installed to "+target) {
			t.Errorf("unexpected output: %q", out)
		}

		info, err := os.Stat(target)
		if err != nil {
			t.Fatalf("target missing: %v", err)
		}
		if info.Mode().Perm() != 0o755 {
			t.Errorf("mode = %v, want 0755", info.Mode().Perm())
		}
	})
}

func TestInstall_PrefixFromEnvironment(t *testing.T) {
	skipUnlessUnix(t)
	work := setupWorkDir(t)
	prefix := t.TempDir()
	t.Setenv("PREFIX", prefix)

	runInDir(t, work, func() {
		if out, err := execute(t); err != nil {
			t.Fatalf("install failed: %v\n%s", err, out)
		}
		if _, err := os.Stat(filepath.Join(prefix, "bin", "tsdl")); err != nil {
			t.Errorf("target missing: %v", err)
		}
	})
}

func TestInstall_PrefixFromDotEnv(t *testing.T) {
	skipUnlessUnix(t)
	work := setupWorkDir(t)
	prefix := t.TempDir()
	if err := os.WriteFile(filepath.Join(work, ".env"), []byte("PREFIX="+prefix+"\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	runInDir(t, work, func() {
		if out, err := execute(t); err != nil {
			t.Fatalf("install failed: %v\n%s", err, out)
		}
		if _, err := os.Stat(filepath.Join(prefix, "bin", "tsdl")); err != nil {
			t.Errorf("target missing: %v", err)
		}
	})
}

func TestInstall_ConfigFile(t *testing.T) {
	skipUnlessUnix(t)
	work := setupWorkDir(t)
	prefix := t.TempDir()

	if err := os.Rename(filepath.Join(work, "tsdl"), filepath.Join(work, "tsdl-build")); err != nil {
		t.Fatal(err)
	}
	cfg := "source: tsdl-build\nprefix: " + prefix + "\n"
	cfgPath := filepath.Join(os.Getenv("TSDL_INSTALL_CONFIG_HOME"), "config.yaml")
	if err := os.WriteFile(cfgPath, []byte(cfg), 0o600); err != nil {
		t.Fatal(err)
	}

	runInDir(t, work, func() {
		if out, err := execute(t); err != nil {
			t.Fatalf("install failed: %v\n%s", err, out)
		}
		if _, err := os.Stat(filepath.Join(prefix, "bin", "tsdl")); err != nil {
			t.Errorf("target missing: %v", err)
		}
	})
}

func TestInstall_InvalidConfigFile(t *testing.T) {
	work := setupWorkDir(t)
	cfgPath := filepath.Join(os.Getenv("TSDL_INSTALL_CONFIG_HOME"), "config.yaml")
	if err := os.WriteFile(cfgPath, []byte("prefix: [unclosed\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	runInDir(t, work, func() {
		out, err := execute(t, "--dry-run")
		if err == nil {
			t.Fatalf("expected error for invalid config, got output %q", out)
		}
		if !strings.Contains(out, "invalid config file") {
			t.Errorf("unexpected output: %q", out)
		}
	})
}

func TestInstall_MissingSource(t *testing.T) {
	skipUnlessUnix(t)
	work := setupWorkDir(t)
	prefix := t.TempDir()

	runInDir(t, work, func() {
		out, err := execute(t, "--prefix", prefix, "--source", "nope")
		if err == nil {
			t.Fatal("expected error for missing source")
		}
		if !strings.Contains(out, "installation failed on Unix") {
			t.Errorf("unexpected output: %q", out)
		}
		if _, statErr := os.Stat(filepath.Join(prefix, "bin", "tsdl")); !os.IsNotExist(statErr) {
			t.Errorf("target should not exist, stat err = %v", statErr)
		}
	})
}

func TestInstall_JSON(t *testing.T) {
	skipUnlessUnix(t)
	work := setupWorkDir(t)
	prefix := t.TempDir()

	runInDir(t, work, func() {
		out, err := execute(t, "--prefix", prefix, "--json")
		if err != nil {
			t.Fatalf("install failed: %v\n%s", err, out)
		}

		var result struct {
			Plan struct {
				Platform string `json:"platform"`
				Target   string `json:"target"`
			} `json:"plan"`
		}
		if err := json.Unmarshal([]byte(out), &result); err != nil {
			t.Fatalf("output should be JSON: %v\n%s", err, out)
		}
		if result.Plan.Platform != "unix" {
			t.Errorf("platform = %q, want unix", result.Plan.Platform)
		}
		if result.Plan.Target != filepath.Join(prefix, "bin", "tsdl") {
			t.Errorf("target = %q", result.Plan.Target)
		}
	})
}

func TestInstall_DryRun(t *testing.T) {
	skipUnlessUnix(t)
	work := setupWorkDir(t)
	prefix := t.TempDir()

	runInDir(t, work, func() {
		out, err := execute(t, "--prefix", prefix, "--dry-run")
		if err != nil {
			t.Fatalf("dry run failed: %v\n%s", err, out)
		}
		target := filepath.Join(prefix, "bin", "tsdl")
		if !strings.Contains(out, target) {
			t.Errorf("dry run should show target %q: %q", target, out)
		}
		if _, err := os.Stat(filepath.Join(prefix, "bin")); !os.IsNotExist(err) {
			t.Errorf("dry run must not create the destination, stat err = %v", err)
		}
	})
}
