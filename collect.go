package cleaner

// Collect validates raw listing entries into ImageRecords.
//
// Entries without a digest and entries whose tag does not match the
// grammar come back in rejected, in input order; the caller decides how
// to report them. A bad entry never affects any other entry, and Collect
// never fails as a whole.
func Collect(entries []ListEntry) (records []ImageRecord, rejected []ListEntry) {
	for _, e := range entries {
		if e.Digest == "" {
			rejected = append(rejected, e)
			continue
		}

		r, ok := ParseTag(e.Tag)
		if !ok {
			rejected = append(rejected, e)
			continue
		}

		r.Digest = e.Digest
		records = append(records, r)
	}

	return records, rejected
}
