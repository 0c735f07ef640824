package webapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	apihelper "github.com/zetavg/api-helper"
	"github.com/zetavg/api-helper/gormquery"
)

// GinList serves the collection endpoint on gin.
func GinList[T any](res apihelper.Resource, col *gormquery.Collection[T]) gin.HandlerFunc {
	return func(c *gin.Context) {
		p := apihelper.ParseParams(c.Request.URL.Query())
		rc := apihelper.NewRequestContext()
		res.Resolve(rc, p)

		ops := apihelper.CompileFilter(p.Filters, res.FilterableFields, col.FieldType)

		total, err := col.Count(c.Request.Context(), ops)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		st := rc.Paginate(p, total, res.Pagination)
		apihelper.WritePaginationHeaders(c.Writer.Header(), c.Request.URL, st)

		items, err := col.List(c.Request.Context(), ops, rc.SortOrder(), st)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, RenderList(rc, res.Name, items))
	}
}

// GinShow serves the member endpoint on gin, single or multiget.
func GinShow[T any](res apihelper.Resource, col *gormquery.Collection[T]) gin.HandlerFunc {
	return func(c *gin.Context) {
		p := apihelper.ParseParams(c.Request.URL.Query())
		rc := apihelper.NewRequestContext()
		res.Resolve(rc, p)

		raw := c.Param(res.IDParamName())
		q := apihelper.Multiget(raw, res.MaxMultigetIDs)

		if q.Mode == apihelper.ModeSingle {
			item, err := col.FindOne(c.Request.Context(), q.IDs[0])
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "not found"})
				return
			}
			if err != nil {
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			c.JSON(http.StatusOK, RenderRecord(rc, res.Name, ToRecord(item)))
			return
		}

		items, err := col.FindMany(c.Request.Context(), q.IDs)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, RenderList(rc, res.Name, items))
	}
}

// GinRoutes mounts the collection and member endpoints on a gin group.
func GinRoutes[T any](rg *gin.RouterGroup, res apihelper.Resource, col *gormquery.Collection[T]) {
	rg.GET("/", GinList(res, col))
	rg.GET("/:"+res.IDParamName(), GinShow(res, col))
}
