package apihelper

import (
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/go-playground/assert/v2"
)

const boundaryItems = 1201 // 61 pages at 20 per page

var boundaryCfg = PaginationConfig{DefaultPerPage: 20, MaxPerPage: 100}

func TestPaginate_Defaults(t *testing.T) {
	rc := NewRequestContext()
	st := rc.Paginate(paramsFor(""), boundaryItems, boundaryCfg)

	assert.Equal(t, PaginationState{
		CurrentPage: 1,
		PerPage:     20,
		ItemsCount:  boundaryItems,
		PagesCount:  61,
	}, st)
	assert.Equal(t, &st, rc.Pagination())
}

func TestPaginate_PerPageClamped(t *testing.T) {
	rc := NewRequestContext()

	st := rc.Paginate(paramsFor("per_page=500"), boundaryItems, boundaryCfg)
	assert.Equal(t, 100, st.PerPage)
	assert.Equal(t, 13, st.PagesCount)

	st = rc.Paginate(paramsFor("per_page=0"), boundaryItems, boundaryCfg)
	assert.Equal(t, 1, st.PerPage)

	st = rc.Paginate(paramsFor("per_page=-3"), boundaryItems, boundaryCfg)
	assert.Equal(t, 1, st.PerPage)
}

func TestPaginate_EmptyCollectionHasOnePage(t *testing.T) {
	rc := NewRequestContext()
	st := rc.Paginate(paramsFor(""), 0, boundaryCfg)
	assert.Equal(t, 1, st.PagesCount)
	assert.Equal(t, 1, st.CurrentPage)
	assert.Equal(t, 0, st.ItemsCount)

	st = rc.Paginate(paramsFor(""), -5, boundaryCfg)
	assert.Equal(t, 0, st.ItemsCount)
}

func TestPaginate_CurrentPageClamped(t *testing.T) {
	rc := NewRequestContext()

	st := rc.Paginate(paramsFor("page=0"), boundaryItems, boundaryCfg)
	assert.Equal(t, 1, st.CurrentPage)

	st = rc.Paginate(paramsFor("page=62"), boundaryItems, boundaryCfg)
	assert.Equal(t, 61, st.CurrentPage)
}

func mustURL(t *testing.T, raw string) *url.URL {
	t.Helper()
	u, err := url.Parse(raw)
	if err != nil {
		t.Fatal(err)
	}
	return u
}

func TestLinkHeader_FirstPage(t *testing.T) {
	rc := NewRequestContext()
	st := rc.Paginate(paramsFor("page=1"), boundaryItems, boundaryCfg)
	u := mustURL(t, "http://api.test/users?page=1")

	link := LinkHeader(u, st)
	assert.Equal(t,
		`<http://api.test/users?page=2>; rel="next", <http://api.test/users?page=61>; rel="last"`,
		link)
	assert.Equal(t, false, strings.Contains(link, `rel="first"`))
	assert.Equal(t, false, strings.Contains(link, `rel="prev"`))
}

func TestLinkHeader_LastPage(t *testing.T) {
	rc := NewRequestContext()
	st := rc.Paginate(paramsFor("page=61"), boundaryItems, boundaryCfg)
	u := mustURL(t, "http://api.test/users?page=61")

	link := LinkHeader(u, st)
	assert.Equal(t,
		`<http://api.test/users?page=1>; rel="first", <http://api.test/users?page=60>; rel="prev"`,
		link)
}

func TestLinkHeader_OutOfRangePageBehavesLikeLast(t *testing.T) {
	rc := NewRequestContext()
	st := rc.Paginate(paramsFor("page=62"), boundaryItems, boundaryCfg)
	u := mustURL(t, "http://api.test/users?page=62")

	// prev computed from the clamped page: 60, not 61
	link := LinkHeader(u, st)
	assert.Equal(t,
		`<http://api.test/users?page=1>; rel="first", <http://api.test/users?page=60>; rel="prev"`,
		link)
}

func TestLinkHeader_MiddlePageKeepsOtherParams(t *testing.T) {
	rc := NewRequestContext()
	st := rc.Paginate(paramsFor("page=3&per_page=20"), boundaryItems, boundaryCfg)
	u := mustURL(t, "http://api.test/users?page=3&per_page=20&filter%5Bname%5D=bob")

	link := LinkHeader(u, st)
	assert.Equal(t, true, strings.Contains(link, `<http://api.test/users?filter%5Bname%5D=bob&page=2&per_page=20>; rel="prev"`))
	assert.Equal(t, true, strings.Contains(link, `rel="first"`))
	assert.Equal(t, true, strings.Contains(link, `rel="next"`))
	assert.Equal(t, true, strings.Contains(link, `rel="last"`))
}

func TestWritePaginationHeaders(t *testing.T) {
	rc := NewRequestContext()
	st := rc.Paginate(paramsFor("page=2"), boundaryItems, boundaryCfg)
	u := mustURL(t, "http://api.test/users?page=2")

	h := http.Header{}
	WritePaginationHeaders(h, u, st)

	assert.Equal(t, "1201", h.Get(HeaderItemsCount))
	assert.Equal(t, "61", h.Get(HeaderPagesCount))
	assert.Equal(t, true, strings.Contains(h.Get(HeaderLink), `rel="next"`))
}

func TestLinkHeader_SinglePageEmitsNothing(t *testing.T) {
	rc := NewRequestContext()
	st := rc.Paginate(paramsFor(""), 5, boundaryCfg)
	assert.Equal(t, "", LinkHeader(mustURL(t, "http://api.test/users"), st))
}
