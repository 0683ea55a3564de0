package rest

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/okruhlystol/catalog/internal/core/model"
)

func (h *handlers) listEvents(c *gin.Context) {
	filter := model.FilterRequest{
		Year:      c.Query("year"),
		Month:     c.Query("month"),
		EventType: c.Query("event_type"),
		Location:  c.Query("location"),
		Search:    c.Query("search"),
	}
	page, err := h.events.ListEvents(c.Request.Context(), filter, model.ParsePageRequest(c.Query("page"), c.Query("limit")))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *handlers) getEvent(c *gin.Context) {
	// ids are positive integers, anything else cannot exist
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		writeError(c, model.ErrNotFound)
		return
	}
	event, err := h.events.GetEvent(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, event)
}

func (h *handlers) createEvent(c *gin.Context) {
	var args model.CreateEventArgs
	if err := c.ShouldBindJSON(&args); err != nil {
		badRequest(c, "invalid body")
		return
	}
	event, err := h.events.CreateEvent(c.Request.Context(), args)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, event)
}
