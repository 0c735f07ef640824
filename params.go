package apihelper

import (
	"net/url"
	"sort"
	"strings"
)

// ScopedParam is a query parameter that arrives either as a plain scalar
// (?fields=a,b) or scoped per resource (?fields[user]=a,b). The two forms
// are mutually exclusive on the wire; when both appear the scoped form wins.
type ScopedParam struct {
	Value     string
	Set       bool // plain form present, even if empty
	Resources map[string]string
}

// For returns the raw value for a resource and whether the client supplied
// one at all. The scoped form is keyed by resource name; the plain form only
// applies to the endpoint's default resource. An explicitly supplied empty
// string still counts as specified.
func (p ScopedParam) For(resource string, isDefault bool) (string, bool) {
	if v, ok := p.Resources[resource]; ok {
		return v, true
	}
	if isDefault && p.Set {
		return p.Value, true
	}
	return "", false
}

// FilterParam is one filter[<field>]=<condition> pair.
type FilterParam struct {
	Field     string
	Condition string
}

// Params is the normalized view of a request's query parameters. All keys
// and values are plain strings regardless of how the framework decoded them;
// every component consumes this instead of touching url.Values directly.
type Params struct {
	Fields  ScopedParam
	Include ScopedParam
	// Filters are ordered by field name so predicate composition is
	// deterministic (AND semantics, order does not change the result set).
	Filters []FilterParam
	Sort    string
	SortSet bool
	Page    string
	PerPage string

	values url.Values
}

// ParseParams normalizes raw query parameters. It never fails: unrecognized
// parameters are kept reachable via Get but otherwise ignored.
func ParseParams(values url.Values) Params {
	p := Params{values: values}

	for key := range values {
		switch {
		case key == "fields":
			p.Fields.Value = values.Get(key)
			p.Fields.Set = true
		case key == "include":
			p.Include.Value = values.Get(key)
			p.Include.Set = true
		default:
			if res, ok := scopeOf(key, "fields"); ok {
				if p.Fields.Resources == nil {
					p.Fields.Resources = map[string]string{}
				}
				p.Fields.Resources[res] = values.Get(key)
			} else if res, ok := scopeOf(key, "include"); ok {
				if p.Include.Resources == nil {
					p.Include.Resources = map[string]string{}
				}
				p.Include.Resources[res] = values.Get(key)
			} else if field, ok := scopeOf(key, "filter"); ok && field != "" {
				p.Filters = append(p.Filters, FilterParam{Field: field, Condition: values.Get(key)})
			}
		}
	}
	sort.Slice(p.Filters, func(i, j int) bool { return p.Filters[i].Field < p.Filters[j].Field })

	if _, ok := values["sort"]; ok {
		p.Sort = values.Get("sort")
		p.SortSet = true
	} else if _, ok := values["sort_by"]; ok {
		p.Sort = values.Get("sort_by")
		p.SortSet = true
	}

	p.Page = values.Get("page")
	p.PerPage = values.Get("per_page")

	return p
}

// Get returns a raw query parameter by name (used for the configurable
// multiget id parameter).
func (p Params) Get(name string) string {
	return p.values.Get(name)
}

// scopeOf extracts <res> from keys shaped like root[<res>].
func scopeOf(key, root string) (string, bool) {
	if !strings.HasPrefix(key, root+"[") || !strings.HasSuffix(key, "]") {
		return "", false
	}
	return key[len(root)+1 : len(key)-1], true
}

// splitList splits a comma-separated parameter value into its items. An
// empty input yields nil, not [""].
func splitList(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ",")
}
