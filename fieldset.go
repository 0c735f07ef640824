package apihelper

// FieldsetConfig declares, per resource, which fields a request may select
// and which apply when it selects none.
type FieldsetConfig struct {
	// Permitted is the whitelist; empty means any requested field passes.
	Permitted []string
	// Defaults apply when the request carries no usable fields value.
	Defaults []string
	// DefaultsToPermitted substitutes the full Permitted list when the
	// resolved fieldset comes out empty.
	DefaultsToPermitted bool
}

// ResolveFieldset computes the fieldset for one resource and stores it in
// the context (subsequent calls for the same resource overwrite).
//
// The request value is read from fields[<resource>] when the scoped form is
// present, or from the plain fields parameter when this is the endpoint's
// default resource. A non-empty value is split on commas; otherwise the
// configured defaults apply. With a non-empty whitelist the list is
// intersected with it preserving request order, and an empty outcome falls
// back to the whitelist verbatim when DefaultsToPermitted is set. Unlike the
// inclusion resolver, this fallback applies whether or not the client
// supplied an explicit value.
func (rc *RequestContext) ResolveFieldset(p Params, resource string, isDefault bool, cfg FieldsetConfig) []string {
	raw, specified := p.Fields.For(resource, isDefault)

	var list []string
	if specified && raw != "" {
		list = splitList(raw)
	} else {
		list = append([]string(nil), cfg.Defaults...)
	}

	if len(cfg.Permitted) > 0 {
		list = intersect(list, NewFieldSet(cfg.Permitted...))
		if len(list) == 0 && cfg.DefaultsToPermitted {
			list = append([]string(nil), cfg.Permitted...)
		}
	}

	rc.fieldsets[resource] = list
	return list
}

// intersect keeps the items of list that are in keep, preserving list order.
func intersect(list []string, keep FieldSet) []string {
	out := make([]string, 0, len(list))
	for _, f := range list {
		if keep.Has(f) {
			out = append(out, f)
		}
	}
	return out
}
