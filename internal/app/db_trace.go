package app

import (
	"regexp"
	"strings"
)

const maxTracedQueryLength = 512

var (
	sqlLineComment = regexp.MustCompile(`--[^\n]*`)
	sqlWhitespace  = regexp.MustCompile(`\s+`)
)

// formatDBQueryForTrace flattens a query onto one line for the db.statement
// span attribute.
func formatDBQueryForTrace(query string) string {
	query = strings.TrimSpace(sqlLineComment.ReplaceAllString(query, " "))
	if query == "" {
		return query
	}

	flat := sqlWhitespace.ReplaceAllString(query, " ")
	if len(flat) <= maxTracedQueryLength {
		return flat
	}

	return flat[:maxTracedQueryLength] + "..."
}
