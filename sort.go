package apihelper

import (
	"regexp"
	"strings"
)

var sortStripRe = regexp.MustCompile(`[^A-Za-z0-9\-_,]`)

// ResolveSort parses the sort parameter (alias sort_by) into ordered sort
// keys, left-to-right = primary-to-tertiary, and stores them in the context.
//
// When the parameter is absent the caller's default order is returned
// verbatim. When present, characters outside [A-Za-z0-9-_,] are stripped
// before splitting, so a malformed value can never produce a parse error; a
// leading dash marks a descending key.
func (rc *RequestContext) ResolveSort(p Params, defaults []SortField) []SortField {
	if !p.SortSet {
		rc.sortOrder = append([]SortField(nil), defaults...)
		return rc.sortOrder
	}

	cleaned := sortStripRe.ReplaceAllString(p.Sort, "")
	var order []SortField
	for _, token := range strings.Split(cleaned, ",") {
		dir := Asc
		if strings.HasPrefix(token, "-") {
			dir = Desc
			token = strings.TrimPrefix(token, "-")
		}
		if token == "" {
			continue
		}
		order = append(order, SortField{Field: token, Direction: dir})
	}

	rc.sortOrder = order
	return order
}
