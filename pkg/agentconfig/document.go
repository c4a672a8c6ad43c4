// pkg/agentconfig/document.go

package agentconfig

import "strings"

// Managed keys upserted during enrollment.
const (
	KeyServer       = "Server"
	KeyServerActive = "ServerActive"
	KeyHostname     = "Hostname"
)

// lineKind classifies one physical line of the agent configuration.
type lineKind int

const (
	// lineOpaque is passed through verbatim: blank lines, prose comments,
	// directives we do not manage.
	lineOpaque lineKind = iota
	// lineKeyValue is an uncommented key=value directive.
	lineKeyValue
	// lineCommentedKey is a key=value directive behind one or more '#'.
	lineCommentedKey
)

type line struct {
	kind lineKind
	raw  string
	key  string
}

// Document is an ordered sequence of configuration lines. Untouched lines
// round-trip byte-for-byte.
type Document struct {
	lines           []line
	trailingNewline bool
}

// Parse builds a Document from raw file content.
func Parse(data []byte) *Document {
	text := string(data)
	doc := &Document{trailingNewline: strings.HasSuffix(text, "\n")}
	if doc.trailingNewline {
		text = strings.TrimSuffix(text, "\n")
	}
	if text == "" && doc.trailingNewline {
		// A file containing only "\n" is one empty opaque line.
		doc.lines = append(doc.lines, classify(""))
		return doc
	}
	if text == "" {
		return doc
	}
	for _, raw := range strings.Split(text, "\n") {
		doc.lines = append(doc.lines, classify(raw))
	}
	return doc
}

func classify(raw string) line {
	rest := strings.TrimLeft(raw, "# \t")
	commented := len(rest) != len(raw) && strings.ContainsAny(raw[:len(raw)-len(rest)], "#")

	eq := strings.IndexByte(rest, '=')
	if eq <= 0 {
		return line{kind: lineOpaque, raw: raw}
	}
	key := rest[:eq]
	if strings.ContainsAny(key, " \t#") {
		return line{kind: lineOpaque, raw: raw}
	}
	if commented {
		return line{kind: lineCommentedKey, raw: raw, key: key}
	}
	return line{kind: lineKeyValue, raw: raw, key: key}
}

// Upsert rewrites every line matching the key, commented or not, to the
// canonical uncommented form, preserving position. Rewriting all matches
// rather than the first is deliberate: repeated upserts converge to one
// semantic value even when stray duplicates exist. When no line matches,
// key=value is appended as the last line. Returns true when the document
// changed.
func (d *Document) Upsert(key, value string) bool {
	canonical := key + "=" + value
	matched := false
	changed := false

	for i := range d.lines {
		if d.lines[i].key != key || d.lines[i].kind == lineOpaque {
			continue
		}
		matched = true
		if d.lines[i].raw != canonical {
			d.lines[i] = line{kind: lineKeyValue, raw: canonical, key: key}
			changed = true
		}
	}

	if !matched {
		d.lines = append(d.lines, line{kind: lineKeyValue, raw: canonical, key: key})
		d.trailingNewline = true
		changed = true
	}
	return changed
}

// Get returns the value of the last uncommented directive for key.
func (d *Document) Get(key string) (string, bool) {
	value := ""
	found := false
	for _, l := range d.lines {
		if l.kind == lineKeyValue && l.key == key {
			value = strings.SplitN(l.raw, "=", 2)[1]
			found = true
		}
	}
	return value, found
}

// Lines returns the raw lines in order, for inspection and tests.
func (d *Document) Lines() []string {
	out := make([]string, len(d.lines))
	for i, l := range d.lines {
		out[i] = l.raw
	}
	return out
}

// Bytes serializes the document, byte-identical for untouched content.
func (d *Document) Bytes() []byte {
	var sb strings.Builder
	for i, l := range d.lines {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(l.raw)
	}
	if d.trailingNewline {
		sb.WriteByte('\n')
	}
	return []byte(sb.String())
}
