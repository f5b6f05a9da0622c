package match

import (
	"strings"
	"time"
)

// Identity computes the canonical match ID for a match between two
// competitors at a given upstream creation time. The participant names are
// sorted lexicographically before joining, so observing the same match from
// the opposing side collides with the original record.
func Identity(nameA, nameB string, playedAt time.Time) string {
	first, second := strings.TrimSpace(nameA), strings.TrimSpace(nameB)
	if second < first {
		first, second = second, first
	}
	return first + "-vs-" + second + "-" + playedAt.UTC().Format(time.RFC3339)
}

// LegacyIdentity reproduces the ID scheme an earlier version of the system
// wrote: perspective-dependent elite-opponent-timestamp. Rows stored under
// this scheme are honored during dedup so history is never reprocessed, but
// new records are always written under the canonical Identity.
func LegacyIdentity(eliteName, opponentRef string, playedAt time.Time) string {
	return strings.TrimSpace(eliteName) + "-" + strings.TrimSpace(opponentRef) + "-" + playedAt.UTC().Format(time.RFC3339)
}
