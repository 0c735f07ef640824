package apihelper

import "strings"

// MultigetMode distinguishes a single-record lookup from a batch one. The
// two shapes differ in how not-found is surfaced and how the response body
// is framed, so handlers branch on it.
type MultigetMode int

const (
	ModeSingle MultigetMode = iota
	ModeBatch
)

// MultigetQuery is a bounded batch-lookup instruction.
type MultigetQuery struct {
	Mode MultigetMode
	IDs  []string
}

// Multiget splits a comma-separated id parameter, keeping at most maxCount
// ids (excess is silently dropped). An empty parameter yields a single
// lookup for the empty id; the collection resolves that to not-found and
// the handler turns it into a 404.
func Multiget(raw string, maxCount int) MultigetQuery {
	ids := strings.Split(raw, ",")
	if maxCount > 0 && len(ids) > maxCount {
		ids = ids[:maxCount]
	}
	mode := ModeSingle
	if len(ids) > 1 {
		mode = ModeBatch
	}
	return MultigetQuery{Mode: mode, IDs: ids}
}

// IsBatchRequest reports whether the raw id parameter names more than one
// id. It looks at the untruncated value: a request for twelve ids capped at
// ten is still a batch request by client intent.
func IsBatchRequest(raw string) bool {
	return strings.Contains(raw, ",")
}
