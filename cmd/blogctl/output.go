package main

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

const trimMarker = ".."

// Table prints rows as fixed-width columns: one header row of column
// names, then one row per entity, every cell left-justified and padded to
// the configured spacing.
type Table struct {
	columns  []string
	spacing  int
	trimmers map[string]int
	out      io.Writer
}

// NewTable creates a table for the given columns
func NewTable(out io.Writer, columns []string, spacing int) *Table {
	return &Table{
		columns:  columns,
		spacing:  spacing,
		trimmers: make(map[string]int),
		out:      out,
	}
}

// AddTrimmer truncates the named column to trimLen characters, suffixed
// with the trim marker. A non-positive trimLen falls back to the spacing.
func (t *Table) AddTrimmer(column string, trimLen int) {
	if trimLen <= 0 {
		trimLen = t.spacing
	}
	t.trimmers[column] = trimLen
}

// Write prints the header and the given rows.
func (t *Table) Write(rows []map[string]string) {
	header := make([]string, len(t.columns))
	copy(header, t.columns)
	fmt.Fprintln(t.out, t.rowify(header))

	for _, row := range rows {
		cells := make([]string, 0, len(t.columns))
		for _, column := range t.columns {
			cells = append(cells, t.trim(column, row[column]))
		}
		fmt.Fprintln(t.out, t.rowify(cells))
	}
}

// Cells are measured in runes, not bytes, so non-ASCII values neither lose
// padding nor get sliced mid-rune.
func (t *Table) rowify(cells []string) string {
	var b strings.Builder
	for _, cell := range cells {
		b.WriteString(cell)
		if pad := t.spacing - utf8.RuneCountInString(cell); pad > 0 {
			b.WriteString(strings.Repeat(" ", pad))
		}
	}
	return b.String()
}

func (t *Table) trim(column, value string) string {
	trimLen, ok := t.trimmers[column]
	if !ok || utf8.RuneCountInString(value) <= trimLen {
		return value
	}
	runes := []rune(value)
	return string(runes[:trimLen]) + trimMarker
}

func userRow(user User) map[string]string {
	return map[string]string{
		"id":    user.ID,
		"name":  user.Name,
		"email": user.Email,
	}
}

func postRow(post Post) map[string]string {
	return map[string]string{
		"id":        post.ID,
		"title":     post.Title,
		"body":      post.Body,
		"author_id": post.AuthorID,
	}
}
