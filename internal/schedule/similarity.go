package schedule

import (
	"sort"
	"strings"
)

// Fingerprint reduces a day to the sorted, comma-joined set of its
// non-generic item identities. Block and order do not participate, so two
// days with the same items arranged differently fingerprint the same.
func Fingerprint(items []Item) string {
	seen := map[string]bool{}
	keys := make([]string, 0, len(items))
	for _, it := range items {
		if it.IsGeneric() {
			continue
		}
		key := it.Ref.String()
		if seen[key] {
			continue
		}
		seen[key] = true
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return strings.Join(keys, ",")
}

// FindSimilarDays returns the "<week>-<day>" keys of every day in the
// schedule, excluding excludeKey, whose fingerprint equals that of the
// reference items. A reference with no identifiable content matches nothing.
func FindSimilarDays(s Schedule, excludeKey string, referenceItems []Item) []string {
	fp := Fingerprint(referenceItems)
	if fp == "" {
		return nil
	}
	var matches []string
	for _, w := range s.WeekNumbers() {
		week := s[w]
		days := make([]int, 0, len(week))
		for d := range week {
			days = append(days, d)
		}
		sort.Ints(days)
		for _, d := range days {
			key := DayKey(w, d)
			if key == excludeKey {
				continue
			}
			if Fingerprint(week[d].Items) == fp {
				matches = append(matches, key)
			}
		}
	}
	return matches
}
