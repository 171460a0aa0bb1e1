package main

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTableHeaderAndRows(t *testing.T) {
	var b strings.Builder
	table := NewTable(&b, []string{"id", "name", "email"}, 12)
	table.Write([]map[string]string{
		{"id": "1", "name": "anonymous", "email": "anonymous@anonymous.com"},
		{"id": "2", "name": "guest", "email": "guest@guest.com"},
	})

	lines := strings.Split(strings.TrimRight(b.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "id          name        email       ", lines[0])
	assert.Equal(t, "1           anonymous   anonymous@anonymous.com", lines[1])
	assert.Equal(t, "2           guest       guest@guest.com", lines[2])
}

func TestTableTrimsLongValues(t *testing.T) {
	var b strings.Builder
	table := NewTable(&b, []string{"id", "title", "body", "author_id"}, 12)
	table.AddTrimmer("title", 10)
	table.Write([]map[string]string{
		{"id": "1", "title": "a title well over ten characters", "body": "short", "author_id": "3"},
	})

	lines := strings.Split(strings.TrimRight(b.String(), "\n"), "\n")
	require.Len(t, lines, 2)

	// Trimmed to ten characters plus the marker, left-justified in a
	// twelve-wide column.
	assert.Equal(t, "a title we..", lines[1][12:24])
	assert.Equal(t, "1           ", lines[1][:12])
}

func TestTableShortValuesUntrimmed(t *testing.T) {
	var b strings.Builder
	table := NewTable(&b, []string{"title"}, 12)
	table.AddTrimmer("title", 10)
	table.Write([]map[string]string{{"title": "short"}})

	lines := strings.Split(strings.TrimRight(b.String(), "\n"), "\n")
	assert.Equal(t, "short       ", lines[1])
}

func TestTableTrimsMultibyteValues(t *testing.T) {
	var b strings.Builder
	table := NewTable(&b, []string{"title"}, 12)
	table.AddTrimmer("title", 10)
	table.Write([]map[string]string{{"title": "日本語のタイトルです長い"}})

	lines := strings.Split(strings.TrimRight(b.String(), "\n"), "\n")
	require.Len(t, lines, 2)

	// Cut at ten runes, not ten bytes.
	assert.Equal(t, "日本語のタイトルです..", lines[1])
	assert.True(t, utf8.ValidString(lines[1]))
}

func TestTablePadsMultibyteValuesByRuneCount(t *testing.T) {
	var b strings.Builder
	table := NewTable(&b, []string{"name"}, 6)
	table.Write([]map[string]string{{"name": "日本"}})

	lines := strings.Split(strings.TrimRight(b.String(), "\n"), "\n")
	assert.Equal(t, "日本    ", lines[1])
}

func TestTrimmerDefaultsToSpacing(t *testing.T) {
	var b strings.Builder
	table := NewTable(&b, []string{"body"}, 6)
	table.AddTrimmer("body", 0)
	table.Write([]map[string]string{{"body": "longer than six"}})

	lines := strings.Split(strings.TrimRight(b.String(), "\n"), "\n")
	assert.Equal(t, "longer..", lines[1])
}
