package version

import (
	"runtime/debug"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFromBuildInfo(t *testing.T) {
	tests := []struct {
		name        string
		start       BuildInfo
		bi          *debug.BuildInfo
		wantVersion string
		wantCommit  string
		wantDirty   bool
	}{
		{
			name:  "module version wins over dev",
			start: BuildInfo{Version: "dev", GitCommit: "unknown"},
			bi: &debug.BuildInfo{
				Main:     debug.Module{Version: "v1.4.0"},
				Settings: []debug.BuildSetting{{Key: "vcs.revision", Value: "abcdef1234567"}},
			},
			wantVersion: "v1.4.0",
			wantCommit:  "abcdef1234567",
		},
		{
			name:  "devel build uses the revision",
			start: BuildInfo{Version: "dev", GitCommit: "unknown"},
			bi: &debug.BuildInfo{
				Main: debug.Module{Version: "(devel)"},
				Settings: []debug.BuildSetting{
					{Key: "vcs.revision", Value: "1234567890"},
					{Key: "vcs.modified", Value: "true"},
				},
			},
			wantVersion: "dev-1234567",
			wantCommit:  "1234567890",
			wantDirty:   true,
		},
		{
			name:        "ldflags win",
			start:       BuildInfo{Version: "v2.0.0", GitCommit: "feedfacecafe"},
			bi:          &debug.BuildInfo{Settings: []debug.BuildSetting{{Key: "vcs.revision", Value: "0000000"}}},
			wantVersion: "v2.0.0",
			wantCommit:  "feedfacecafe",
		},
		{
			name:        "nothing known",
			start:       BuildInfo{Version: "dev", GitCommit: "unknown"},
			bi:          &debug.BuildInfo{},
			wantVersion: "dev",
			wantCommit:  "unknown",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := tt.start
			fromBuildInfo(&info, tt.bi)
			assert.Equal(t, tt.wantVersion, info.Version)
			assert.Equal(t, tt.wantCommit, info.GitCommit)
			assert.Equal(t, tt.wantDirty, info.Dirty)
		})
	}
}

func TestShortAndRelease(t *testing.T) {
	assert.Equal(t, "v1.0.0 (abcdef1)", BuildInfo{Version: "v1.0.0", GitCommit: "abcdef1234"}.Short())
	assert.Equal(t, "dev-abcdef1", BuildInfo{Version: "dev-abcdef1", GitCommit: "abcdef1234"}.Short())
	assert.Equal(t, "dev", BuildInfo{Version: "dev", GitCommit: "unknown"}.Short())

	assert.True(t, BuildInfo{Version: "v1.0.0"}.IsRelease())
	assert.False(t, BuildInfo{Version: "dev-abcdef1"}.IsRelease())
	assert.False(t, BuildInfo{Version: "dev"}.IsRelease())
}

func TestDetailed(t *testing.T) {
	out := BuildInfo{
		Version:   "v1.0.0",
		GitCommit: "abcdef1234",
		BuildTime: time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC),
		GoVersion: "go1.24.4",
		Platform:  "linux/amd64",
		Dirty:     true,
	}.Detailed()

	assert.Equal(t, "Version: v1.0.0\nCommit: abcdef1234\nBuilt: 2025-01-02T03:04:05Z\nGo: go1.24.4\nPlatform: linux/amd64\nWorking directory: dirty", out)
}

func TestParseTime(t *testing.T) {
	assert.True(t, parseTime("unknown").IsZero())
	assert.True(t, parseTime("yesterday").IsZero())
	assert.Equal(t, 2025, parseTime("2025-06-01T10:00:00Z").Year())
	assert.Equal(t, 2025, parseTime("2025-06-01 10:00:00").Year())
}
