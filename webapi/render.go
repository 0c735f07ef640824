package webapi

import (
	"encoding/json"

	apihelper "github.com/zetavg/api-helper"
)

// Record is one resource instance in output shape.
type Record map[string]any

// ToRecord flattens a model value into a Record through its JSON encoding,
// so gorm models render under their json tags.
func ToRecord(v any) Record {
	raw, err := json.Marshal(v)
	if err != nil {
		return Record{}
	}
	var rec Record
	if err := json.Unmarshal(raw, &rec); err != nil {
		return Record{}
	}
	return rec
}

// RenderRecord shapes one record for output: only fields of the resolved
// fieldset survive (all fields when none was resolved), and registered
// relations collapse to their bare foreign key unless included.
func RenderRecord(rc *apihelper.RequestContext, resource string, rec Record) Record {
	out := make(Record)
	if fields := rc.Fieldset(resource); len(fields) > 0 {
		for _, f := range fields {
			renderField(rc, resource, rec, f, out)
		}
		return out
	}
	// Without a fieldset every key passes through, except foreign keys whose
	// relation is being rendered inline.
	inlined := map[string]bool{}
	for name, d := range rc.Relations(resource) {
		if rc.IsIncluded(resource, name) {
			inlined[d.IDField] = true
		}
	}
	for k := range rec {
		if inlined[k] {
			continue
		}
		renderField(rc, resource, rec, k, out)
	}
	return out
}

func renderField(rc *apihelper.RequestContext, resource string, rec Record, f string, out Record) {
	if d, ok := rc.Relation(resource, f); ok {
		if rc.IsIncluded(resource, f) {
			if v, ok := rec[f]; ok {
				out[f] = v
			}
		} else if v, ok := rec[d.IDField]; ok {
			out[d.IDField] = v
		}
		return
	}
	if v, ok := rec[f]; ok {
		out[f] = v
	}
}

// RenderList shapes a page of models. The result is never nil so an empty
// page encodes as [] rather than null.
func RenderList[T any](rc *apihelper.RequestContext, resource string, items []T) []Record {
	out := make([]Record, 0, len(items))
	for i := range items {
		out = append(out, RenderRecord(rc, resource, ToRecord(items[i])))
	}
	return out
}
