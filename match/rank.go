package match

import (
	"sort"

	"github.com/poiesic/grantmatch/core"
)

// SortByDeadline returns the grants ordered by deadline ascending, with
// grants lacking a deadline sorted to the end. This is the default ordering,
// used whenever no similarity score is present. The input slice is not
// modified; ties keep their corpus order. Nil entries are dropped.
func SortByDeadline(grants []*core.Grant) []*core.Grant {
	sorted := make([]*core.Grant, 0, len(grants))
	for _, grant := range grants {
		if grant != nil {
			sorted = append(sorted, grant)
		}
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		di, dj := sorted[i].Deadline, sorted[j].Deadline
		switch {
		case di == nil:
			return false
		case dj == nil:
			return true
		default:
			return di.Before(*dj)
		}
	})
	return sorted
}

// truncate cuts a result list to the window size. Truncation always happens
// after sorting, never before.
func truncate(results []*core.MatchResult, limit int) []*core.MatchResult {
	if limit > 0 && len(results) > limit {
		return results[:limit]
	}
	return results
}
