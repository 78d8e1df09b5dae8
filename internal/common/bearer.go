package common

import "strings"

// ExtractBearer returns the token carried in an Authorization-style value.
// Both "Bearer <token>" and the bare token are accepted. An empty or blank
// value yields "", which callers treat exactly like an invalid token.
func ExtractBearer(value string) string {
	value = strings.TrimSpace(value)
	if len(value) >= len(BearerPrefix) && strings.EqualFold(value[:len(BearerPrefix)], BearerPrefix) {
		value = strings.TrimSpace(value[len(BearerPrefix):])
	}
	return value
}
