package apihelper

// InclusionConfig declares, per resource, which relations a request may ask
// to have expanded and which apply when it asks for none.
type InclusionConfig struct {
	Permitted []string
	Defaults  []string
	// DefaultsToPermitted substitutes the full Permitted list when the
	// resolved set comes out empty and the client did not explicitly
	// supply an include value.
	DefaultsToPermitted bool
}

// ResolveInclusion computes the inclusion set for one resource and stores it
// in the context.
//
// Reading the include parameter mirrors ResolveFieldset. The difference is
// how "explicit" is tracked: an explicitly supplied value, even an empty
// string, suppresses both the configured defaults and the
// DefaultsToPermitted fallback. A client that sends include[user]= gets
// exactly nothing included, while one that omits the parameter gets the
// defaults.
//
// When a non-empty fieldset was already resolved for the same resource the
// result is additionally intersected with it: an included relation occupies
// a slot in the parent's field list, so it must also be a selected field.
// Resolve fieldsets before inclusions.
func (rc *RequestContext) ResolveInclusion(p Params, resource string, isDefault bool, cfg InclusionConfig) FieldSet {
	raw, specified := p.Include.For(resource, isDefault)
	rc.inclusionSpecified[resource] = specified

	var list []string
	if specified {
		list = splitList(raw)
	} else {
		list = append([]string(nil), cfg.Defaults...)
	}

	if len(cfg.Permitted) > 0 {
		list = intersect(list, NewFieldSet(cfg.Permitted...))
		if len(list) == 0 && cfg.DefaultsToPermitted && !specified {
			list = append([]string(nil), cfg.Permitted...)
		}
	}

	if fs := rc.fieldsets[resource]; len(fs) > 0 {
		list = intersect(list, NewFieldSet(fs...))
	}

	set := NewFieldSet(list...)
	rc.inclusions[resource] = set
	return set
}

// InclusionSpecified reports whether the client explicitly supplied an
// include value for the resource, independent of what it resolved to.
func (rc *RequestContext) InclusionSpecified(resource string) bool {
	return rc.inclusionSpecified[resource]
}
