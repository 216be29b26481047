package library

import "strings"

const maxQueryLength = 100

// SanitizeFTSQuery escapes FTS5 operators and wraps the input in quotes so it
// is matched as a literal phrase. FTS5 interprets AND/OR/NOT, *, NEAR(), :,
// and " even inside parameterized queries.
func SanitizeFTSQuery(input string) string {
	input = strings.TrimSpace(input)
	if len(input) > maxQueryLength {
		input = input[:maxQueryLength]
	}
	if input == "" {
		return ""
	}

	input = strings.ReplaceAll(input, `"`, `""`)

	return `"` + input + `"`
}

// BuildPrefixQuery creates an FTS5 query for typeahead search: the sanitized
// phrase with a trailing prefix wildcard.
func BuildPrefixQuery(userInput string) string {
	sanitized := SanitizeFTSQuery(userInput)
	if sanitized == "" {
		return ""
	}
	return sanitized + "*"
}
