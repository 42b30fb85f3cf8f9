package cache

import "fmt"

const keyPrefix = "readiness"

// ReadinessKey caches the ReadinessResult of a user.
func ReadinessKey(userID string) string {
	return fmt.Sprintf("%s:result:%s", keyPrefix, userID)
}

// BreakdownKey caches the per-topic breakdown of a user.
func BreakdownKey(userID string) string {
	return fmt.Sprintf("%s:breakdown:%s", keyPrefix, userID)
}

// VersionKey holds a token that changes whenever a user's activity changes.
// A computation started under an older token must not be cached.
func VersionKey(userID string) string {
	return fmt.Sprintf("%s:version:%s", keyPrefix, userID)
}

// UserKeys lists every cached value of a user.
func UserKeys(userID string) []string {
	return []string{ReadinessKey(userID), BreakdownKey(userID)}
}
