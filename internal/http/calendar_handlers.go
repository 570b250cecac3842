package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nurpe/employeehub/internal/service"
)

type eventRequest struct {
	Title     string `json:"title"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Group     string `json:"group"`
}

func (r eventRequest) input() service.EventInput {
	return service.EventInput{Title: r.Title, StartTime: r.StartTime, EndTime: r.EndTime, Group: r.Group}
}

// listEvents returns a bare array, the shape calendar widgets fetch.
func (h *Handler) listEvents(c *gin.Context) {
	events, err := h.calendar.Feed(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, events)
}

func (h *Handler) listGroups(c *gin.Context) {
	groups, err := h.calendar.Groups(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"groups": groups})
}

func (h *Handler) createEvent(c *gin.Context) {
	var req eventRequest
	if !h.bindJSON(c, &req) {
		return
	}
	event, err := h.calendar.Create(c.Request.Context(), req.input())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, event)
}

func (h *Handler) updateEvent(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req eventRequest
	if !h.bindJSON(c, &req) {
		return
	}
	event, err := h.calendar.Update(c.Request.Context(), id, req.input())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, event)
}

func (h *Handler) deleteEvent(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.calendar.Delete(c.Request.Context(), id); err != nil {
		h.handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
