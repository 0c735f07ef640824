package apihelper

// FieldSet is a set of field or relation names.
type FieldSet map[string]struct{}

func NewFieldSet(fields ...string) FieldSet {
	m := make(FieldSet, len(fields))
	for _, f := range fields {
		m[f] = struct{}{}
	}
	return m
}

func (fs FieldSet) Has(f string) bool {
	_, ok := fs[f]
	return ok
}

// RelationDescriptor tells the rendering layer how a named relation maps to
// an id field and a child resource: render the nested sub-resource when the
// relation is included, the bare foreign key otherwise.
type RelationDescriptor struct {
	Relation string
	IDField  string
	Resource string // child resource name
	URL      string // child resource URL
}

// Direction of one sort key.
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// SortField is one (field, direction) sort key.
type SortField struct {
	Field     string
	Direction Direction
}

// PaginationState is the resolved pagination for one request. CurrentPage is
// always within [1, PagesCount] and PagesCount is at least 1.
type PaginationState struct {
	CurrentPage int
	PerPage     int
	ItemsCount  int
	PagesCount  int
}

// RequestContext carries per-request resolution state: resolved fieldsets,
// inclusions, registered relations, sort order and pagination. One context
// is created at the start of request handling and discarded at its end;
// nothing is shared between requests. Entries are populated lazily by the
// Resolve* calls, and the inclusion resolver reads the fieldset entries of
// the same context for its cross-check, so resolve fieldsets first.
type RequestContext struct {
	fieldsets          map[string][]string
	inclusionSpecified map[string]bool
	inclusions         map[string]FieldSet
	relations          map[string]map[string]RelationDescriptor
	sortOrder          []SortField
	pagination         *PaginationState
}

func NewRequestContext() *RequestContext {
	return &RequestContext{
		fieldsets:          map[string][]string{},
		inclusionSpecified: map[string]bool{},
		inclusions:         map[string]FieldSet{},
		relations:          map[string]map[string]RelationDescriptor{},
	}
}

// Fieldset returns the resolved fieldset for a resource, nil when none was
// resolved. Unknown resources are not an error.
func (rc *RequestContext) Fieldset(resource string) []string {
	return rc.fieldsets[resource]
}

// HasField reports whether a field made it into the resource's resolved
// fieldset. False for unknown resources and fields alike.
func (rc *RequestContext) HasField(resource, field string) bool {
	for _, f := range rc.fieldsets[resource] {
		if f == field {
			return true
		}
	}
	return false
}

// Inclusion returns the resolved inclusion set for a resource, nil when none
// was resolved.
func (rc *RequestContext) Inclusion(resource string) FieldSet {
	return rc.inclusions[resource]
}

// IsIncluded reports whether a relation should be expanded in output. When a
// fieldset exists for the resource the relation must also appear there; this
// repeats the resolution-time intersection for callers that never resolved
// an inclusion.
func (rc *RequestContext) IsIncluded(resource, relation string) bool {
	if fs, ok := rc.fieldsets[resource]; ok && len(fs) > 0 && !rc.HasField(resource, relation) {
		return false
	}
	return rc.inclusions[resource].Has(relation)
}

// RegisterRelation records a RelationDescriptor for the rendering layer.
// Re-registering the same relation overwrites.
func (rc *RequestContext) RegisterRelation(resource string, d RelationDescriptor) {
	m, ok := rc.relations[resource]
	if !ok {
		m = map[string]RelationDescriptor{}
		rc.relations[resource] = m
	}
	m[d.Relation] = d
}

// Relation returns a registered descriptor by name.
func (rc *RequestContext) Relation(resource, relation string) (RelationDescriptor, bool) {
	d, ok := rc.relations[resource][relation]
	return d, ok
}

// Relations returns all registered descriptors for a resource.
func (rc *RequestContext) Relations(resource string) map[string]RelationDescriptor {
	return rc.relations[resource]
}

// SortOrder returns the resolved sort keys, primary first.
func (rc *RequestContext) SortOrder() []SortField {
	return rc.sortOrder
}

// Pagination returns the resolved pagination state, nil before Paginate.
func (rc *RequestContext) Pagination() *PaginationState {
	return rc.pagination
}
