package keys

import "strings"

// LabelKey canonicalizes a classification label for cache lookups and
// deduplication: lowercase, trimmed, inner whitespace collapsed to single
// underscores. "  Fire   Dragon " and "fire dragon" share one key.
func LabelKey(label string) string {
	fields := strings.Fields(strings.ToLower(label))
	return strings.Join(fields, "_")
}
