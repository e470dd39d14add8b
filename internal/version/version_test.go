package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func withBuild(t *testing.T, v, built, commit string) {
	t.Helper()
	oldV, oldB, oldC := Version, BuildTime, GitCommit
	Version, BuildTime, GitCommit = v, built, commit
	t.Cleanup(func() { Version, BuildTime, GitCommit = oldV, oldB, oldC })
}

func TestInfo(t *testing.T) {
	tests := []struct {
		name  string
		built string
		want  string
	}{
		{"development", "unknown", "v1.2.3 (development build)"},
		{"rfc3339", "2024-05-01T12:30:00Z", "v1.2.3 (built 2024-05-01 12:30:00 UTC)"},
		{"unparsable", "yesterday", "v1.2.3 (built yesterday)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			withBuild(t, "v1.2.3", tt.built, "unknown")
			assert.Equal(t, tt.want, Info())
		})
	}
}

func TestShortCommit(t *testing.T) {
	withBuild(t, "dev", "unknown", "0123456789abcdef")
	assert.Equal(t, "0123456", ShortCommit())

	withBuild(t, "dev", "unknown", "abc")
	assert.Equal(t, "abc", ShortCommit())
}

func TestGetBuildInfo(t *testing.T) {
	withBuild(t, "v2.0.0", "unknown", "deadbeef")
	info := GetBuildInfo()
	assert.Equal(t, "v2.0.0", info.Version)
	assert.Equal(t, "deadbeef", info.GitCommit)
	assert.NotEmpty(t, info.GoVersion)
	assert.Contains(t, info.Platform, "/")
}
