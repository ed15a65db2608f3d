package cleaner

import (
	"errors"
	"sort"
)

// ErrNegativeKeep is returned by Evaluate for a negative retention count.
var ErrNegativeKeep = errors.New("cleaner: keep versions must be >= 0")

// Plan is the outcome of one retention evaluation.
//
// Keep and Delete are disjoint digest sets; every digest present in the
// input records lands in exactly one of them. Groups carries per-group
// accounting for reporting, ordered by key.
type Plan struct {
	Keep   Set
	Delete Set
	Groups []GroupSummary
}

// GroupSummary reports how one retention group was partitioned.
type GroupSummary struct {
	Key   GroupKey
	Total int
	Kept  int
}

// Evaluate partitions records into retention groups and marks the
// keepVersions most recent digests of each group for retention, the rest
// for deletion.
//
// Grouping is by (environment, client, name). Within a group, records are
// ordered by build timestamp, newest first; timestamp ties are broken by
// digest ascending, so evaluation is deterministic. keepVersions = 0
// retains nothing. Contributions are accumulated globally and then
// reconciled: a digest kept by any group is removed from the delete set,
// so the same content referenced from several tags is never deleted while
// one of them is still inside a keep window.
//
// Evaluate performs no I/O and does not mutate records.
func Evaluate(records []ImageRecord, keepVersions int) (Plan, error) {
	if keepVersions < 0 {
		return Plan{}, ErrNegativeKeep
	}

	groups := make(map[GroupKey][]ImageRecord)
	for _, r := range records {
		k := r.Group()
		groups[k] = append(groups[k], r)
	}

	plan := Plan{
		Keep:   make(Set),
		Delete: make(Set),
		Groups: make([]GroupSummary, 0, len(groups)),
	}

	for key, group := range groups {
		sort.Slice(group, func(i, j int) bool {
			if !group[i].Date.Equal(group[j].Date) {
				return group[i].Date.After(group[j].Date)
			}
			return group[i].Digest < group[j].Digest
		})

		n := keepVersions
		if n > len(group) {
			n = len(group)
		}

		for _, r := range group[:n] {
			plan.Keep.Add(r.Digest)
		}
		for _, r := range group[n:] {
			plan.Delete.Add(r.Digest)
		}

		plan.Groups = append(plan.Groups, GroupSummary{
			Key:   key,
			Total: len(group),
			Kept:  n,
		})
	}

	// Reconcile globally: keep wins over delete across groups.
	for d := range plan.Keep {
		plan.Delete.Remove(d)
	}

	sort.Slice(plan.Groups, func(i, j int) bool {
		a, b := plan.Groups[i].Key, plan.Groups[j].Key
		if a.Environment != b.Environment {
			return a.Environment < b.Environment
		}
		if a.Client != b.Client {
			return a.Client < b.Client
		}
		return a.Name < b.Name
	})

	return plan, nil
}
