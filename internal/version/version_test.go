package version

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGet(t *testing.T) {
	info := Get()
	assert.NotEmpty(t, info.Version)
	assert.NotEmpty(t, info.GoVersion)
	assert.Contains(t, info.Platform, "/")
}

func TestShort_StampedBuild(t *testing.T) {
	origVersion, origCommit := Version, GitCommit
	t.Cleanup(func() { Version, GitCommit = origVersion, origCommit })

	Version = "1.4.0"
	GitCommit = "0123456789abcdef"
	assert.Equal(t, "1.4.0 (0123456)", Short())
}

func TestShort_UnstampedBuild(t *testing.T) {
	origVersion, origCommit := Version, GitCommit
	t.Cleanup(func() { Version, GitCommit = origVersion, origCommit })

	Version = "dev"
	GitCommit = "unknown"
	assert.True(t, strings.HasPrefix(Short(), "dev"))
}
