/*
Package cleaner decides which container image digests to keep and which to
delete under a keep-N-most-recent retention policy.

The package is network-agnostic: it operates purely on listing entries
(tag + digest pairs) already fetched from a registry. Typical flow:

 1. Fetch raw image IDs elsewhere (e.g., via ECR ListImages).
 2. Call Collect to validate entries into ImageRecords.
 3. Call Evaluate with the retention count to get a Plan.
 4. Hand Plan.Delete to a deletion sink.

Tag grammar:

	<name>-<hash>-<date>[-<client>]-<environment>

where hash is exactly 7 lowercase hex characters, date is a strict
YYYY-MM-DD-HH-MM-SS build timestamp, client is optional free text (the
record carries the "N/A" sentinel when it is absent), and environment is
a trailing letters-only token. Name and client are matched non-greedily,
so the hash and the environment anchor their boundaries; parsing is a
pure function of the string.

Retention notes:
  - Records are grouped by (environment, client, name); each group keeps
    its N most recent records by build timestamp.
  - Decisions are made per digest, not per tag. A digest kept by any group
    is never deleted, even if another tag for the same content falls
    outside the keep window elsewhere (Plan sets are disjoint).
  - Records with identical timestamps are ordered by digest, so evaluation
    is deterministic.

Usage example:

	entries, _ := client.ListImages(ctx, "my-repo")

	records, rejected := cleaner.Collect(entries)
	for _, e := range rejected {
		log.Debug("ignored", "tag", e.Tag)
	}

	plan, err := cleaner.Evaluate(records, 3)
	if err != nil {
		return err
	}

	fmt.Println(plan.Delete.Sorted()) // digests eligible for deletion
*/
package cleaner
