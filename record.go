package cleaner

import "time"

// ClientNone is the sentinel stored in ImageRecord.Client when the tag
// carries no client segment.
const ClientNone = "N/A"

// dateLayout is the build timestamp layout embedded in tags.
const dateLayout = "2006-01-02-15-04-05"

// ListEntry is one raw item from a registry listing: an optional tag plus
// the content digest it points at. Several entries may carry the same
// digest (multiple tags on identical image content).
type ListEntry struct {
	Tag    string
	Digest string
}

// ImageRecord is the validated, parsed form of one tagged image.
// Records are immutable value data: the engine only reads them.
type ImageRecord struct {
	// Name is the project name, the non-greedy prefix of the tag.
	Name string

	// Hash is the 7-char lowercase hex build hash.
	Hash string

	// Date is the build timestamp parsed from the tag.
	Date time.Time

	// Client is the tenant qualifier, or ClientNone if the tag had none.
	Client string

	// Environment is the trailing letters-only deployment environment.
	Environment string

	// Digest identifies the underlying image content. It comes from the
	// listing envelope, not the tag; ParseTag leaves it empty.
	Digest string
}

// GroupKey identifies the retention group a record belongs to.
// Grouping has no significance beyond this triple.
type GroupKey struct {
	Environment string
	Client      string
	Name        string
}

// Group returns the record's retention group key.
func (r ImageRecord) Group() GroupKey {
	return GroupKey{
		Environment: r.Environment,
		Client:      r.Client,
		Name:        r.Name,
	}
}

// Tag renders the record back into canonical tag form. The client segment
// is omitted when Client is ClientNone, so ParseTag(r.Tag()) round-trips.
func (r ImageRecord) Tag() string {
	s := r.Name + "-" + r.Hash + "-" + r.Date.Format(dateLayout)
	if r.Client != ClientNone && r.Client != "" {
		s += "-" + r.Client
	}

	return s + "-" + r.Environment
}
