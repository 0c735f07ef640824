package apihelper

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// Response headers carrying pagination metadata.
const (
	HeaderLink       = "Link"
	HeaderItemsCount = "X-Items-Count"
	HeaderPagesCount = "X-Pages-Count"
)

// PaginationConfig declares the per-endpoint page size bounds.
type PaginationConfig struct {
	DefaultPerPage int
	MaxPerPage     int
}

// Paginate computes page bounds from the item count and the page/per_page
// parameters and stores the state in the context.
//
// Out-of-range input clamps, it never errors: per_page into
// [1, MaxPerPage], the item count to >= 0, the page count to >= 1 (an empty
// collection still reports one page) and the current page into
// [1, PagesCount].
func (rc *RequestContext) Paginate(p Params, itemsCount int, cfg PaginationConfig) PaginationState {
	perPage := cfg.DefaultPerPage
	if n, err := strconv.Atoi(p.PerPage); err == nil && p.PerPage != "" {
		perPage = n
	}
	if cfg.MaxPerPage > 0 && perPage > cfg.MaxPerPage {
		perPage = cfg.MaxPerPage
	}
	if perPage < 1 {
		perPage = 1
	}

	if itemsCount < 0 {
		itemsCount = 0
	}

	pagesCount := (itemsCount + perPage - 1) / perPage
	if pagesCount < 1 {
		pagesCount = 1
	}

	currentPage := 1
	if n, err := strconv.Atoi(p.Page); err == nil && p.Page != "" {
		currentPage = n
	}
	if currentPage < 1 {
		currentPage = 1
	}
	if currentPage > pagesCount {
		currentPage = pagesCount
	}

	st := PaginationState{
		CurrentPage: currentPage,
		PerPage:     perPage,
		ItemsCount:  itemsCount,
		PagesCount:  pagesCount,
	}
	rc.pagination = &st
	return st
}

// LinkHeader builds the RFC 5988 Link header value for a paginated request.
// first/prev appear past page one, next/last before the final page, in that
// fixed order. Each target is the request URL with its page parameter
// swapped for the target page; other parameters are carried over.
func LinkHeader(requestURL *url.URL, st PaginationState) string {
	var links []string
	add := func(page int, rel string) {
		links = append(links, fmt.Sprintf("<%s>; rel=%q", pageURL(requestURL, page), rel))
	}

	if st.CurrentPage > 1 {
		add(1, "first")
		add(st.CurrentPage-1, "prev")
	}
	if st.CurrentPage < st.PagesCount {
		add(st.CurrentPage+1, "next")
		add(st.PagesCount, "last")
	}

	return strings.Join(links, ", ")
}

// WritePaginationHeaders emits the Link header (when any relation applies)
// plus the item and page counts.
func WritePaginationHeaders(h http.Header, requestURL *url.URL, st PaginationState) {
	if link := LinkHeader(requestURL, st); link != "" {
		h.Set(HeaderLink, link)
	}
	h.Set(HeaderItemsCount, strconv.Itoa(st.ItemsCount))
	h.Set(HeaderPagesCount, strconv.Itoa(st.PagesCount))
}

func pageURL(u *url.URL, page int) string {
	cp := *u
	q := cp.Query()
	q.Set("page", strconv.Itoa(page))
	cp.RawQuery = q.Encode()
	return cp.String()
}
