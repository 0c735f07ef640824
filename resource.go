package apihelper

// Resource is the static, per-endpoint configuration the HTTP glue feeds to
// the resolvers on every request. Zero values are usable: no whitelists, no
// defaults, id parameter "id".
type Resource struct {
	Name string
	// IsDefault marks the endpoint's primary resource, the one the plain
	// fields/include parameters (without a [resource] scope) apply to.
	IsDefault bool
	// IDParam is the request parameter carrying the multiget id list.
	IDParam string
	// MaxMultigetIDs caps a batch lookup; 0 means unbounded.
	MaxMultigetIDs int

	Fieldset  FieldsetConfig
	Inclusion InclusionConfig
	// FilterableFields whitelists fields for the filter grammar; empty
	// lets the schema collaborator decide alone.
	FilterableFields []string
	DefaultSort      []SortField
	Pagination       PaginationConfig
	Relations        []RelationDescriptor
}

// IDParamName returns the configured id parameter, defaulting to "id".
func (r Resource) IDParamName() string {
	if r.IDParam == "" {
		return "id"
	}
	return r.IDParam
}

// Resolve runs the whole per-request pipeline except filtering and
// pagination, which need the schema and item count: fieldset, inclusion,
// relation registration and sort order.
func (r Resource) Resolve(rc *RequestContext, p Params) {
	rc.ResolveFieldset(p, r.Name, r.IsDefault, r.Fieldset)
	rc.ResolveInclusion(p, r.Name, r.IsDefault, r.Inclusion)
	for _, d := range r.Relations {
		rc.RegisterRelation(r.Name, d)
	}
	rc.ResolveSort(p, r.DefaultSort)
}
