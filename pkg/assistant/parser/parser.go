// Package parser turns free-text model replies into structured values.
// Every function tolerates malformed input and never returns an error.
package parser

import (
	"strings"
	"unicode/utf8"
)

// ParseKeywords splits a comma separated reply into lower-cased, trimmed terms.
func ParseKeywords(reply string) []string {
	parts := strings.Split(reply, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		term := strings.ToLower(strings.Trim(strings.TrimSpace(p), "\"'`.*-"))
		term = strings.TrimSpace(term)
		if term == "" {
			continue
		}
		out = append(out, term)
	}
	return out
}

// QueryTokens is the lower-cased whitespace split of the raw query.
func QueryTokens(query string) []string {
	return strings.Fields(strings.ToLower(query))
}

// MergeTerms returns the ordered union of the given lists, first occurrence wins.
func MergeTerms(lists ...[]string) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, list := range lists {
		for _, term := range list {
			if _, ok := seen[term]; ok {
				continue
			}
			seen[term] = struct{}{}
			out = append(out, term)
		}
	}
	return out
}

// SearchableTerms drops terms shorter than minLen runes.
func SearchableTerms(terms []string, minLen int) []string {
	out := make([]string, 0, len(terms))
	for _, term := range terms {
		if utf8.RuneCountInString(term) >= minLen {
			out = append(out, term)
		}
	}
	return out
}

// ParseIDList reads an ordered id list separated by commas or newlines.
// Quotes, brackets and markdown fences around ids are stripped.
func ParseIDList(reply string) []string {
	fields := strings.FieldsFunc(reply, func(r rune) bool {
		return r == ',' || r == '\n' || r == '\r'
	})
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		id := strings.Trim(strings.TrimSpace(f), "\"'`[] ")
		if id == "" {
			continue
		}
		out = append(out, id)
	}
	return out
}

// ReorderByIDs returns the items named by ids, in that order, at most limit of them.
// Repeated ids are taken once and unknown ids are skipped.
func ReorderByIDs[T any](items []T, idOf func(T) string, ids []string, limit int) []T {
	byID := make(map[string]T, len(items))
	for _, item := range items {
		byID[idOf(item)] = item
	}

	out := make([]T, 0, min(limit, len(items)))
	for _, id := range ids {
		if len(out) >= limit {
			break
		}
		item, ok := byID[id]
		if !ok {
			continue
		}
		out = append(out, item)
		delete(byID, id)
	}
	return out
}

// WantsFilter reports whether the relevance check asked for filtering.
func WantsFilter(reply string) bool {
	return strings.Contains(reply, "FILTER")
}

// CleanLabel trims the classifier reply. The label itself is not validated.
func CleanLabel(reply string) string {
	return strings.TrimSpace(reply)
}

// Truncate cuts s to max runes, appending suffix only when something was cut.
func Truncate(s string, max int, suffix string) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	r := []rune(s)
	return string(r[:max]) + suffix
}

// Snippet cuts s to max runes and always appends suffix.
func Snippet(s string, max int, suffix string) string {
	r := []rune(s)
	if len(r) > max {
		r = r[:max]
	}
	return string(r) + suffix
}
