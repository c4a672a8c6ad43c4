package agentconfig

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseLines(lines ...string) *Document {
	return Parse([]byte(strings.Join(lines, "\n") + "\n"))
}

func TestUpsertIdempotence(t *testing.T) {
	doc := parseLines("# comment", "Server=old", "OtherKey=1")

	changed := doc.Upsert("Server", "172.20.7.58")
	require.True(t, changed)
	first := string(doc.Bytes())

	changed = doc.Upsert("Server", "172.20.7.58")
	assert.False(t, changed, "second identical upsert must be a no-op")
	assert.Equal(t, first, string(doc.Bytes()))
}

func TestUpsertConvergence(t *testing.T) {
	doc := parseLines("Server=", "# Server=stale", "Server=dup")

	doc.Upsert("Server", "v1")
	doc.Upsert("Server", "v2")

	var uncommented []string
	for _, line := range doc.Lines() {
		if strings.HasPrefix(line, "Server=") {
			uncommented = append(uncommented, line)
		}
	}
	require.Len(t, uncommented, 3, "all matching lines rewritten in place")
	for _, line := range uncommented {
		assert.Equal(t, "Server=v2", line)
	}
	assert.NotContains(t, string(doc.Bytes()), "v1")
}

func TestUpsertPositionPreservation(t *testing.T) {
	doc := parseLines("A=1", "# Server=foo", "B=2")

	doc.Upsert("Server", "bar")

	lines := doc.Lines()
	require.Len(t, lines, 3)
	assert.Equal(t, "A=1", lines[0])
	assert.Equal(t, "Server=bar", lines[1], "rewritten line stays at its index")
	assert.Equal(t, "B=2", lines[2])
}

func TestUpsertCommentedKeyActivation(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"hash no space", "#Server=foo"},
		{"hash with space", "# Server=foo"},
		{"double hash", "## Server=foo"},
		{"leading whitespace", "  # Server=foo"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := parseLines(tt.in)
			doc.Upsert("Server", "bar")
			assert.Equal(t, []string{"Server=bar"}, doc.Lines())
		})
	}
}

func TestUpsertAppendCase(t *testing.T) {
	doc := parseLines("# comment", "Server=10.0.0.1")

	changed := doc.Upsert("Hostname", "myhost")
	require.True(t, changed)

	lines := doc.Lines()
	assert.Equal(t, "Hostname=myhost", lines[len(lines)-1], "new key appended as last line")
}

func TestUpsertEndToEndScenario(t *testing.T) {
	doc := parseLines("# comment", "Server=", "OtherKey=1")

	doc.Upsert("Server", "172.20.7.58")

	assert.Equal(t, []string{"# comment", "Server=172.20.7.58", "OtherKey=1"}, doc.Lines())
}

func TestUpsertDoesNotMatchPrefixKeys(t *testing.T) {
	doc := parseLines("ServerActive=a", "Server=b")

	doc.Upsert("Server", "new")

	lines := doc.Lines()
	assert.Equal(t, "ServerActive=a", lines[0], "longer key must not match the shorter one")
	assert.Equal(t, "Server=new", lines[1])
}

func TestParseRoundTripsUntouchedContent(t *testing.T) {
	raw := "# Zabbix agent configuration\n\nPidFile=/run/zabbix/zabbix_agentd.pid\n\t# indented comment\nServer=10.0.0.1\n"
	doc := Parse([]byte(raw))
	assert.Equal(t, raw, string(doc.Bytes()), "byte-identical without mutation")

	t.Run("no trailing newline", func(t *testing.T) {
		doc := Parse([]byte("A=1"))
		assert.Equal(t, "A=1", string(doc.Bytes()))
	})

	t.Run("empty document grows a key", func(t *testing.T) {
		doc := Parse(nil)
		doc.Upsert("Hostname", "myhost")
		assert.Equal(t, "Hostname=myhost\n", string(doc.Bytes()))
	})
}

func TestGet(t *testing.T) {
	doc := parseLines("# Server=commented", "Server=10.0.0.1", "Server=10.0.0.2")

	value, ok := doc.Get("Server")
	require.True(t, ok)
	assert.Equal(t, "10.0.0.2", value, "last uncommented directive wins")

	_, ok = doc.Get("Hostname")
	assert.False(t, ok)
}
