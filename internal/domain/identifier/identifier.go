// Package identifier generates the portal's human-readable identifiers:
// evaluator IDs ("JEVA01") and request-tracking sequence IDs ("RQST-01",
// "RASN-01").
package identifier

import (
	"fmt"
	"strconv"
	"strings"
)

// EvaluatorPrefix is the fixed prefix of every evaluator ID.
const EvaluatorPrefix = "JEVA"

// Sequence prefixes for request-tracking identifiers.
const (
	RequestPrefix      = "RQST"
	ReassignmentPrefix = "RASN"
)

// NextEvaluatorID returns the next evaluator ID given all existing IDs:
// the maximum numeric suffix among JEVA-prefixed IDs plus one, zero-padded
// to two digits. Non-conforming IDs are ignored; an empty set yields
// "JEVA01".
//
// This scan is not atomic against concurrent callers. Live registration
// goes through the store's counter instead; this form is kept for seeding
// and backfill over a known snapshot.
func NextEvaluatorID(existing []string) string {
	return FormatEvaluatorID(MaxEvaluatorSuffix(existing) + 1)
}

// MaxEvaluatorSuffix returns the highest numeric suffix among JEVA-prefixed
// IDs, or 0 when none conform. Seeding uses it to advance the store's
// evaluator counter past every scan-allocated ID, so counter-based
// registration never reissues a seeded ID.
func MaxEvaluatorSuffix(existing []string) int {
	max := 0
	for _, id := range existing {
		suffix, ok := strings.CutPrefix(id, EvaluatorPrefix)
		if !ok || suffix == "" {
			continue
		}
		n, err := strconv.Atoi(suffix)
		if err != nil || n < 0 {
			continue
		}
		if n > max {
			max = n
		}
	}

	return max
}

// FormatEvaluatorID renders an evaluator ID from its numeric suffix.
func FormatEvaluatorID(n int) string {
	return fmt.Sprintf("%s%02d", EvaluatorPrefix, n)
}

// FormatSequenceID renders a request-tracking ID such as "RQST-01" from a
// counter value.
func FormatSequenceID(prefix string, n int64) string {
	return fmt.Sprintf("%s-%02d", prefix, n)
}
