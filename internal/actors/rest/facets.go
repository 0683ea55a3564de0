package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *handlers) years(c *gin.Context) {
	years, err := h.facets.Years(c.Request.Context())
	respond(c, years, err)
}

func (h *handlers) months(c *gin.Context) {
	months, err := h.facets.Months(c.Request.Context())
	respond(c, months, err)
}

func (h *handlers) categories(c *gin.Context) {
	categories, err := h.facets.Categories(c.Request.Context())
	respond(c, categories, err)
}

func (h *handlers) locations(c *gin.Context) {
	locations, err := h.facets.Locations(c.Request.Context())
	respond(c, locations, err)
}

func (h *handlers) allFacets(c *gin.Context) {
	facets, err := h.facets.All(c.Request.Context())
	respond(c, facets, err)
}

// respond writes body with 200 unless err is set.
func respond(c *gin.Context, body any, err error) {
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, body)
}
