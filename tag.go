package cleaner

import (
	"regexp"
	"time"
)

// Tag grammar: <name>-<hash>-<date>[-<client>]-<environment>, anchored to
// the whole string. Name and client are non-greedy: the 7-hex hash bounds
// the name, the trailing letters-only environment bounds the client.
var tagRe = regexp.MustCompile(
	`^(?P<name>.+?)-` +
		`(?P<hash>[a-f0-9]{7})-` +
		`(?P<date>\d{4}-\d{2}-\d{2}-\d{2}-\d{2}-\d{2})` +
		`(?:-(?P<client>.+?))?-` +
		`(?P<environment>[A-Za-z]+)$`,
)

// ParseTag parses a raw image tag into an ImageRecord.
//
// The whole string must match the grammar; partial matches are rejected,
// never partially populated. A date that matches the shape but is not a
// real calendar moment (month 13, minute 61) rejects the whole tag.
// Digest is left empty: it belongs to the listing envelope (see Collect).
func ParseTag(tag string) (ImageRecord, bool) {
	m := tagRe.FindStringSubmatch(tag)
	if m == nil {
		return ImageRecord{}, false
	}

	date, err := time.Parse(dateLayout, m[3])
	if err != nil {
		return ImageRecord{}, false
	}

	client := m[4]
	if client == "" {
		client = ClientNone
	}

	return ImageRecord{
		Name:        m[1],
		Hash:        m[2],
		Date:        date,
		Client:      client,
		Environment: m[5],
	}, true
}
