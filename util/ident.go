// Package util provides shared identifier helpers.
package util

import (
	"regexp"
	"strings"
)

var invalidIdentChars = regexp.MustCompile(`[^A-Z0-9_$]`)

// RoleName derives the default access-role identifier for an agent.
// It uppercases, replaces spaces with underscores, strips characters
// that are not legal in an unquoted identifier, and appends the
// _USER_ROLE suffix.
func RoleName(agentName string) string {
	s := strings.ToUpper(strings.TrimSpace(agentName))
	s = strings.ReplaceAll(s, " ", "_")
	s = invalidIdentChars.ReplaceAllString(s, "")
	return s + "_USER_ROLE"
}

// Segment returns the i-th dot-separated segment of a qualified name,
// or "" when the name has fewer segments. Mirrors SPLIT_PART semantics:
// out-of-range access is empty, never an error.
func Segment(qualified string, i int) string {
	if qualified == "" {
		return ""
	}
	parts := strings.Split(qualified, ".")
	if i < 0 || i >= len(parts) {
		return ""
	}
	return parts[i]
}

// QualifySchema joins a database and schema into the db.schema form
// used for schema-level grants.
func QualifySchema(database, schema string) string {
	return database + "." + schema
}
