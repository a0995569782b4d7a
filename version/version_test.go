package version

import (
	"runtime/debug"
	"testing"
)

func saveAndRestore() func() {
	origVersion, origCommit, origBuildTime := Version, GitCommit, BuildTime
	return func() {
		Version = origVersion
		GitCommit = origCommit
		BuildTime = origBuildTime
	}
}

func TestGetDefaults(t *testing.T) {
	defer saveAndRestore()()
	Version, GitCommit, BuildTime = "dev", "", ""

	info := Get()
	if info.Version != "dev" {
		t.Errorf("expected version 'dev', got %q", info.Version)
	}
	if info.IsRelease {
		t.Error("dev should not be a release")
	}
}

func TestGetRelease(t *testing.T) {
	defer saveAndRestore()()
	Version, GitCommit, BuildTime = "1.2.0", "abc1234", "2024-01-15T10:30:00Z"

	info := Get()
	if !info.IsRelease {
		t.Error("1.2.0 should be a release")
	}
	if info.GitCommit != "abc1234" || info.BuildTime != "2024-01-15T10:30:00Z" {
		t.Errorf("ldflags values must win, got %+v", info)
	}

	Version = "1.2.0-dirty"
	if Get().IsRelease {
		t.Error("dirty build should not be a release")
	}
}

func TestApplyBuildInfo(t *testing.T) {
	info := Info{Version: "dev"}
	applyBuildInfo(&info, &debug.BuildInfo{
		GoVersion: "go1.26.0",
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "0123456789abcdef"},
			{Key: "vcs.modified", Value: "true"},
			{Key: "vcs.time", Value: "2026-01-02T03:04:05Z"},
		},
	})
	want := Info{
		Version:   "dev",
		GitCommit: "0123456",
		BuildTime: "2026-01-02T03:04:05Z",
		GoVersion: "go1.26.0",
		IsDirty:   true,
	}
	if info != want {
		t.Errorf("expected %+v, got %+v", want, info)
	}
}

func TestInfoStrings(t *testing.T) {
	tests := []struct {
		name  string
		info  Info
		short string
		full  string
	}{
		{"bare", Info{Version: "dev"}, "dev", "bundlegen dev"},
		{"commit", Info{Version: "1.0.0", GitCommit: "abc1234"}, "1.0.0-abc1234", "bundlegen 1.0.0-abc1234"},
		{
			"dirty with build",
			Info{Version: "1.0.0", GitCommit: "abc1234", IsDirty: true, GoVersion: "go1.26.0", BuildTime: "2024-01-15T10:30:00Z"},
			"1.0.0-abc1234-dirty",
			"bundlegen 1.0.0-abc1234-dirty go1.26.0 (built 2024-01-15T10:30:00Z)",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.info.Short(); got != tc.short {
				t.Errorf("Short() = %q, want %q", got, tc.short)
			}
			if got := tc.info.String(); got != tc.full {
				t.Errorf("String() = %q, want %q", got, tc.full)
			}
		})
	}
}
