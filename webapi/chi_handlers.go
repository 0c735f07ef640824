// Package webapi ties the api-helper pipeline to gin and chi handlers:
// parse parameters, resolve fieldsets/inclusions/sort, compile filters,
// count, paginate with Link headers, fetch and render.
package webapi

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"gorm.io/gorm"

	apihelper "github.com/zetavg/api-helper"
	"github.com/zetavg/api-helper/gormquery"
)

// ChiList serves the collection endpoint: filter, sort, paginate, render.
func ChiList[T any](res apihelper.Resource, col *gormquery.Collection[T]) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		p := apihelper.ParseParams(req.URL.Query())
		rc := apihelper.NewRequestContext()
		res.Resolve(rc, p)

		ops := apihelper.CompileFilter(p.Filters, res.FilterableFields, col.FieldType)

		total, err := col.Count(req.Context(), ops)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		st := rc.Paginate(p, total, res.Pagination)
		apihelper.WritePaginationHeaders(w.Header(), req.URL, st)

		items, err := col.List(req.Context(), ops, rc.SortOrder(), st)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		WriteJSON(w, http.StatusOK, RenderList(rc, res.Name, items))
	}
}

// ChiShow serves the member endpoint, single or multiget: /things/1 renders
// one object, /things/1,4,2 renders an array. Only the single form can 404.
func ChiShow[T any](res apihelper.Resource, col *gormquery.Collection[T]) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		p := apihelper.ParseParams(req.URL.Query())
		rc := apihelper.NewRequestContext()
		res.Resolve(rc, p)

		raw := chi.URLParam(req, res.IDParamName())
		q := apihelper.Multiget(raw, res.MaxMultigetIDs)

		if q.Mode == apihelper.ModeSingle {
			item, err := col.FindOne(req.Context(), q.IDs[0])
			if errors.Is(err, gorm.ErrRecordNotFound) {
				writeError(w, http.StatusNotFound, "not found")
				return
			}
			if err != nil {
				writeError(w, http.StatusInternalServerError, err.Error())
				return
			}
			WriteJSON(w, http.StatusOK, RenderRecord(rc, res.Name, ToRecord(item)))
			return
		}

		items, err := col.FindMany(req.Context(), q.IDs)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		WriteJSON(w, http.StatusOK, RenderList(rc, res.Name, items))
	}
}

// ChiRoutes mounts the collection and member endpoints on a chi router.
func ChiRoutes[T any](r chi.Router, res apihelper.Resource, col *gormquery.Collection[T]) {
	r.Get("/", ChiList(res, col))
	r.Get("/{"+res.IDParamName()+"}", ChiShow(res, col))
}
