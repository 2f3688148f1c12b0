package version

import (
	"strings"
	"testing"
)

func stashGlobals(t *testing.T) {
	t.Helper()
	origVersion, origCommit, origBuildTime := Version, GitCommit, BuildTime
	t.Cleanup(func() {
		Version, GitCommit, BuildTime = origVersion, origCommit, origBuildTime
	})
}

func TestGet_Defaults(t *testing.T) {
	stashGlobals(t)
	Version, GitCommit, BuildTime = "dev", "", ""

	info := Get()
	if info.Version != "dev" {
		t.Errorf("expected dev, got %q", info.Version)
	}
	if info.IsRelease {
		t.Error("dev must not be a release")
	}
}

func TestGet_Release(t *testing.T) {
	stashGlobals(t)
	Version, GitCommit, BuildTime = "1.2.0", "abc1234", "2026-01-15T10:30:00Z"

	info := Get()
	if !info.IsRelease {
		t.Error("1.2.0 should be a release")
	}
	if info.GitCommit != "abc1234" {
		t.Errorf("expected abc1234, got %q", info.GitCommit)
	}
	if info.BuildDate.Year() != 2026 {
		t.Errorf("expected build year 2026, got %d", info.BuildDate.Year())
	}
}

func TestShort(t *testing.T) {
	stashGlobals(t)
	Version, GitCommit, BuildTime = "1.2.0", "abc1234", ""

	if sv := Short(); !strings.HasPrefix(sv, "1.2.0-abc1234") {
		t.Errorf("unexpected short version %q", sv)
	}
}

func TestFull_IncludesBuildDate(t *testing.T) {
	stashGlobals(t)
	Version, GitCommit, BuildTime = "1.2.0", "abc1234", "2026-01-15T10:30:00Z"

	fv := Full()
	if !strings.Contains(fv, "1.2.0") || !strings.Contains(fv, "built") {
		t.Errorf("unexpected full version %q", fv)
	}
}
