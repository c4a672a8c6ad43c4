package argus_err

import (
	"testing"

	cerr "github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
)

func TestExpectedUserError(t *testing.T) {
	assert.Nil(t, NewExpectedError(nil))

	err := NewExpectedError(cerr.New("bad flag"))
	assert.True(t, IsExpectedUserError(err))
	assert.Equal(t, "bad flag", err.Error())

	wrapped := cerr.Wrap(err, "while parsing")
	assert.True(t, IsExpectedUserError(wrapped), "marker survives wrapping")

	assert.False(t, IsExpectedUserError(cerr.New("boom")))
}

func TestGetExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, 0},
		{"expected user error", NewExpectedError(cerr.New("oops")), 0},
		{"unclassified", cerr.New("boom"), 1},
		{"validation", NewValidationError("bad input"), 2},
		{"dependency", NewDependencyError("systemctl", "service management"), 1},
		{"filesystem", NewFilesystemError("conf missing", nil), 1},
		{"network", NewNetworkError("unreachable", nil), 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GetExitCode(tt.err))
		})
	}
}

func TestClassifiedErrorMessage(t *testing.T) {
	err := NewValidationError("agent version is invalid",
		"Use a release line such as 6.0",
		"Check https://repo.zabbix.com for published versions")

	msg := err.Error()
	assert.Contains(t, msg, "agent version is invalid")
	assert.Contains(t, msg, "How to fix:")
	assert.Contains(t, msg, "1. Use a release line such as 6.0")
}

func TestExtractSummary(t *testing.T) {
	out := "Reading package lists...\nE: Failed to fetch https://repo.zabbix.com/ 404 Not Found\nDone\n"
	assert.Equal(t, "E: Failed to fetch https://repo.zabbix.com/ 404 Not Found", ExtractSummary(out, 2))

	assert.Equal(t, "No output provided.", ExtractSummary("  \n ", 2))
	assert.Equal(t, "plain first line", ExtractSummary("plain first line\nsecond", 2))
}
