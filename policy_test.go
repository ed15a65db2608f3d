package cleaner

import (
	"errors"
	"reflect"
	"testing"
)

// rec builds a record for one retention group test.
func rec(name, client, env, day, digest string) ImageRecord {
	return ImageRecord{
		Name:        name,
		Hash:        "abcdef1",
		Date:        date(day),
		Client:      client,
		Environment: env,
		Digest:      digest,
	}
}

func TestEvaluate_KeepNewest(t *testing.T) {
	t.Parallel()

	// Five builds of one group, d5 the most recent.
	records := []ImageRecord{
		rec("svc", ClientNone, "prod", "2025-01-03-00-00-00", "d3"),
		rec("svc", ClientNone, "prod", "2025-01-01-00-00-00", "d1"),
		rec("svc", ClientNone, "prod", "2025-01-05-00-00-00", "d5"),
		rec("svc", ClientNone, "prod", "2025-01-02-00-00-00", "d2"),
		rec("svc", ClientNone, "prod", "2025-01-04-00-00-00", "d4"),
	}

	plan, err := Evaluate(records, 2)
	if err != nil {
		t.Fatal(err)
	}

	if got, want := plan.Keep.Sorted(), []string{"d4", "d5"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("keep = %v; want %v", got, want)
	}
	if got, want := plan.Delete.Sorted(), []string{"d1", "d2", "d3"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("delete = %v; want %v", got, want)
	}
}

func TestEvaluate_GroupsAreIndependent(t *testing.T) {
	t.Parallel()

	records := []ImageRecord{
		rec("svc", ClientNone, "prod", "2025-01-01-00-00-00", "p1"),
		rec("svc", ClientNone, "prod", "2025-01-02-00-00-00", "p2"),
		rec("svc", ClientNone, "staging", "2025-01-01-00-00-00", "s1"),
		rec("svc", "acme", "prod", "2025-01-01-00-00-00", "a1"),
		rec("other", ClientNone, "prod", "2025-01-01-00-00-00", "o1"),
	}

	plan, err := Evaluate(records, 1)
	if err != nil {
		t.Fatal(err)
	}

	// Each group keeps its own newest; only the older prod build goes.
	if got, want := plan.Keep.Sorted(), []string{"a1", "o1", "p2", "s1"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("keep = %v; want %v", got, want)
	}
	if got, want := plan.Delete.Sorted(), []string{"p1"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("delete = %v; want %v", got, want)
	}

	wantGroups := []GroupSummary{
		{Key: GroupKey{"prod", "N/A", "other"}, Total: 1, Kept: 1},
		{Key: GroupKey{"prod", "N/A", "svc"}, Total: 2, Kept: 1},
		{Key: GroupKey{"prod", "acme", "svc"}, Total: 1, Kept: 1},
		{Key: GroupKey{"staging", "N/A", "svc"}, Total: 1, Kept: 1},
	}
	if !reflect.DeepEqual(plan.Groups, wantGroups) {
		t.Fatalf("groups = %+v; want %+v", plan.Groups, wantGroups)
	}
}

func TestEvaluate_SharedDigestReconciliation(t *testing.T) {
	t.Parallel()

	// The same content digest is the newest build of prod but an old build
	// of staging: it must survive.
	records := []ImageRecord{
		rec("svc", ClientNone, "prod", "2025-01-02-00-00-00", "shared"),
		rec("svc", ClientNone, "prod", "2025-01-01-00-00-00", "old"),
		rec("svc", ClientNone, "staging", "2025-01-05-00-00-00", "s2"),
		rec("svc", ClientNone, "staging", "2025-01-01-00-00-00", "shared"),
	}

	plan, err := Evaluate(records, 1)
	if err != nil {
		t.Fatal(err)
	}

	if !plan.Keep.Has("shared") {
		t.Fatalf("keep = %v; shared digest missing", plan.Keep.Sorted())
	}
	if plan.Delete.Has("shared") {
		t.Fatalf("delete = %v; shared digest must not be deleted", plan.Delete.Sorted())
	}
	if got, want := plan.Delete.Sorted(), []string{"old"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("delete = %v; want %v", got, want)
	}
}

func TestEvaluate_SetsAreDisjointAndComplete(t *testing.T) {
	t.Parallel()

	records := []ImageRecord{
		rec("a", ClientNone, "prod", "2025-01-01-00-00-00", "d1"),
		rec("a", ClientNone, "prod", "2025-01-02-00-00-00", "d2"),
		rec("a", ClientNone, "prod", "2025-01-03-00-00-00", "d3"),
		rec("b", "acme", "qa", "2025-01-01-00-00-00", "d3"),
		rec("b", "acme", "qa", "2025-01-02-00-00-00", "d4"),
	}

	plan, err := Evaluate(records, 1)
	if err != nil {
		t.Fatal(err)
	}

	for d := range plan.Keep {
		if plan.Delete.Has(d) {
			t.Fatalf("digest %q in both sets", d)
		}
	}
	for _, r := range records {
		if !plan.Keep.Has(r.Digest) && !plan.Delete.Has(r.Digest) {
			t.Fatalf("digest %q dropped from both sets", r.Digest)
		}
	}
}

func TestEvaluate_KeepZeroAndOversized(t *testing.T) {
	t.Parallel()

	records := []ImageRecord{
		rec("svc", ClientNone, "prod", "2025-01-01-00-00-00", "d1"),
		rec("svc", ClientNone, "prod", "2025-01-02-00-00-00", "d2"),
	}

	// keepVersions = 0: nothing is retained.
	plan, err := Evaluate(records, 0)
	if err != nil {
		t.Fatal(err)
	}
	if plan.Keep.Len() != 0 {
		t.Fatalf("keep = %v; want empty", plan.Keep.Sorted())
	}
	if got, want := plan.Delete.Sorted(), []string{"d1", "d2"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("delete = %v; want %v", got, want)
	}

	// keepVersions beyond group size: everything is retained.
	plan, err = Evaluate(records, 10)
	if err != nil {
		t.Fatal(err)
	}
	if got, want := plan.Keep.Sorted(), []string{"d1", "d2"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("keep = %v; want %v", got, want)
	}
	if plan.Delete.Len() != 0 {
		t.Fatalf("delete = %v; want empty", plan.Delete.Sorted())
	}
}

func TestEvaluate_TimestampTieBreak(t *testing.T) {
	t.Parallel()

	// Identical timestamps: digest ascending decides, so "a" is kept.
	records := []ImageRecord{
		rec("svc", ClientNone, "prod", "2025-01-01-00-00-00", "b"),
		rec("svc", ClientNone, "prod", "2025-01-01-00-00-00", "a"),
	}

	plan, err := Evaluate(records, 1)
	if err != nil {
		t.Fatal(err)
	}

	if got, want := plan.Keep.Sorted(), []string{"a"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("keep = %v; want %v", got, want)
	}
	if got, want := plan.Delete.Sorted(), []string{"b"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("delete = %v; want %v", got, want)
	}
}

func TestEvaluate_NegativeKeep(t *testing.T) {
	t.Parallel()

	_, err := Evaluate(nil, -1)
	if !errors.Is(err, ErrNegativeKeep) {
		t.Fatalf("err = %v; want ErrNegativeKeep", err)
	}
}

func TestEvaluate_Empty(t *testing.T) {
	t.Parallel()

	plan, err := Evaluate(nil, 3)
	if err != nil {
		t.Fatal(err)
	}
	if plan.Keep.Len() != 0 || plan.Delete.Len() != 0 || len(plan.Groups) != 0 {
		t.Fatalf("non-empty plan for empty input: %+v", plan)
	}
}
