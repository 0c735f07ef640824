package apihelper

import (
	"testing"

	"github.com/go-playground/assert/v2"
)

func TestResolveInclusion_Basic(t *testing.T) {
	p := paramsFor("include[user]=posts,comments")
	rc := NewRequestContext()

	got := rc.ResolveInclusion(p, "user", true, InclusionConfig{})
	assert.Equal(t, true, got.Has("posts"))
	assert.Equal(t, true, got.Has("comments"))
	assert.Equal(t, true, rc.IsIncluded("user", "posts"))
}

func TestResolveInclusion_DefaultsWhenAbsent(t *testing.T) {
	p := paramsFor("")
	rc := NewRequestContext()

	got := rc.ResolveInclusion(p, "user", true, InclusionConfig{Defaults: []string{"posts"}})
	assert.Equal(t, true, got.Has("posts"))
	assert.Equal(t, false, rc.InclusionSpecified("user"))
}

func TestResolveInclusion_ExplicitEmptySuppressesDefaults(t *testing.T) {
	// include[user]= present but empty: the client asked for nothing, so
	// the defaults must not sneak back in.
	p := paramsFor("include[user]=")
	rc := NewRequestContext()

	got := rc.ResolveInclusion(p, "user", true, InclusionConfig{Defaults: []string{"posts"}})
	assert.Equal(t, 0, len(got))
	assert.Equal(t, true, rc.InclusionSpecified("user"))
}

func TestResolveInclusion_ExplicitSuppressesPermittedFallback(t *testing.T) {
	// An explicit value that filtered down to empty stays empty, unlike the
	// fieldset resolver's unconditional fallback.
	p := paramsFor("include[user]=bogus")
	rc := NewRequestContext()

	got := rc.ResolveInclusion(p, "user", true, InclusionConfig{
		Permitted:           []string{"posts"},
		DefaultsToPermitted: true,
	})
	assert.Equal(t, 0, len(got))
}

func TestResolveInclusion_PermittedFallbackWhenUnspecified(t *testing.T) {
	p := paramsFor("")
	rc := NewRequestContext()

	got := rc.ResolveInclusion(p, "user", true, InclusionConfig{
		Permitted:           []string{"posts", "comments"},
		DefaultsToPermitted: true,
	})
	assert.Equal(t, true, got.Has("posts"))
	assert.Equal(t, true, got.Has("comments"))
}

func TestResolveInclusion_IntersectedWithFieldset(t *testing.T) {
	p := paramsFor("fields[user]=id,name,posts&include[user]=posts,comments")
	rc := NewRequestContext()

	rc.ResolveFieldset(p, "user", true, FieldsetConfig{})
	got := rc.ResolveInclusion(p, "user", true, InclusionConfig{
		Permitted: []string{"posts", "comments"},
	})

	// comments is permitted but occupies no slot in the fieldset
	assert.Equal(t, true, got.Has("posts"))
	assert.Equal(t, false, got.Has("comments"))

	// subset invariant
	for rel := range got {
		assert.Equal(t, true, rc.HasField("user", rel))
	}
}

func TestIsIncluded_FieldsetShortCircuit(t *testing.T) {
	// Inclusion resolved before the fieldset existed; the getter still
	// refuses relations outside the fieldset.
	p := paramsFor("include[user]=posts")
	rc := NewRequestContext()

	rc.ResolveInclusion(p, "user", true, InclusionConfig{})
	assert.Equal(t, true, rc.IsIncluded("user", "posts"))

	rc.ResolveFieldset(paramsFor("fields[user]=id,name"), "user", true, FieldsetConfig{})
	assert.Equal(t, false, rc.IsIncluded("user", "posts"))
}

func TestRegisterRelation(t *testing.T) {
	rc := NewRequestContext()
	d := RelationDescriptor{
		Relation: "author",
		IDField:  "author_id",
		Resource: "user",
		URL:      "/users",
	}
	rc.RegisterRelation("post", d)

	got, ok := rc.Relation("post", "author")
	assert.Equal(t, true, ok)
	assert.Equal(t, d, got)

	// overwrite by key
	d.URL = "/people"
	rc.RegisterRelation("post", d)
	got, _ = rc.Relation("post", "author")
	assert.Equal(t, "/people", got.URL)

	_, ok = rc.Relation("post", "nope")
	assert.Equal(t, false, ok)
}
