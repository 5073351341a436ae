package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/harvest"
)

// encodeJSON encodes a structured field for storage.
func encodeJSON(v any) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// decodeJSON decodes a stored field. NULL, empty and malformed values all
// decode to the zero value.
func decodeJSON[T any](s sql.NullString) T {
	var v T
	if !s.Valid || strings.TrimSpace(s.String) == "" {
		return v
	}
	if err := json.Unmarshal([]byte(s.String), &v); err != nil {
		var zero T
		return zero
	}
	return v
}

func decodeSlice[E any](s sql.NullString) []E {
	if v := decodeJSON[[]E](s); v != nil {
		return v
	}
	return []E{}
}

func decodeMap[V any](s sql.NullString) map[string]V {
	if v := decodeJSON[map[string]V](s); v != nil {
		return v
	}
	return map[string]V{}
}

func decodeHeaders(s sql.NullString) map[string][]string {
	headers := decodeMap[[]string](s)
	for _, level := range harvest.HeaderLevels {
		if headers[level] == nil {
			headers[level] = []string{}
		}
	}
	return headers
}

func decodeContactInfo(s sql.NullString) harvest.ContactInfo {
	ci := decodeJSON[harvest.ContactInfo](s)
	return normalizeContactInfo(ci)
}

func normalizeContactInfo(ci harvest.ContactInfo) harvest.ContactInfo {
	return harvest.ContactInfo{
		Emails:    nonNil(ci.Emails),
		Phones:    nonNil(ci.Phones),
		Addresses: nonNil(ci.Addresses),
	}
}

func nonNil[E any](s []E) []E {
	if s == nil {
		return []E{}
	}
	return s
}

func nonNilMap[V any](m map[string]V) map[string]V {
	if m == nil {
		return map[string]V{}
	}
	return m
}

// hashContent computes the xxHash of content as a hex string.
func hashContent(content string) string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(content))
}
