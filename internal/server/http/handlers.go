package internalhttp

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lomoval/famboard/internal/app"
	"github.com/lomoval/famboard/internal/hubapi"
	"github.com/lomoval/famboard/internal/model"
	"github.com/lomoval/famboard/internal/view"
)

const defaultGranularityMinutes = 30

type handlers struct {
	dashboard *app.App
}

// parseFilter reads the user-controlled filter state from query params.
// List params are comma-separated; an absent param means no restriction.
func parseFilter(c *gin.Context) view.Filter {
	f := view.Filter{
		FamilyIDs:         splitList(c.Query("familyIds")),
		ShowPastEvents:    c.Query("showPastEvents") == "true",
		ShowPrivateEvents: c.Query("showPrivateEvents") == "true",
		SearchQuery:       c.Query("search"),
	}
	for _, t := range splitList(c.Query("eventTypes")) {
		f.EventTypes = append(f.EventTypes, model.EventType(t))
	}
	for _, p := range splitList(c.Query("priorities")) {
		f.Priorities = append(f.Priorities, model.Priority(p))
	}
	return f
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	result := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			result = append(result, p)
		}
	}
	return result
}

// parseNow lets tests and widgets pin the reference time; everyone else
// gets the server clock.
func parseNow(c *gin.Context) (time.Time, error) {
	raw := c.Query("now")
	if raw == "" {
		return time.Now(), nil
	}
	return time.Parse(time.RFC3339, raw)
}

func (h handlers) listEvents(c *gin.Context) {
	mode, err := view.ParseMode(c.Query("mode"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	now, err := parseNow(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid now timestamp"})
		return
	}

	events, stats, err := h.dashboard.Events(parseFilter(c), mode, now)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"events": events, "stats": stats})
}

func (h handlers) stats(c *gin.Context) {
	mode, err := view.ParseMode(c.Query("mode"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	now, err := parseNow(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid now timestamp"})
		return
	}

	_, stats, err := h.dashboard.Events(parseFilter(c), mode, now)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (h handlers) listFamilies(c *gin.Context) {
	families, err := h.dashboard.Families()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"families": families})
}

func (h handlers) listFamilyMembers(c *gin.Context) {
	members, err := h.dashboard.FamilyMembers(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"members": members})
}

func (h handlers) availability(c *gin.Context) {
	familyID := c.Query("familyId")
	if familyID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "familyId is required"})
		return
	}
	start, err := time.Parse(time.RFC3339, c.Query("startDate"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid startDate"})
		return
	}
	end, err := time.Parse(time.RFC3339, c.Query("endDate"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid endDate"})
		return
	}
	granularity := defaultGranularityMinutes
	if raw := c.Query("granularityMinutes"); raw != "" {
		granularity, err = strconv.Atoi(raw)
		if err != nil || granularity <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid granularityMinutes"})
			return
		}
	}

	days, err := h.dashboard.Availability(c.Request.Context(), familyID, start, end, granularity)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"days": days})
}

func (h handlers) createEvent(c *gin.Context) {
	var e model.CalendarEvent
	if err := c.ShouldBindJSON(&e); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	created, err := h.dashboard.CreateEvent(c.Request.Context(), e)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h handlers) updateEvent(c *gin.Context) {
	var e model.CalendarEvent
	if err := c.ShouldBindJSON(&e); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.dashboard.UpdateEvent(c.Request.Context(), c.Param("id"), e); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h handlers) removeEvent(c *gin.Context) {
	if err := h.dashboard.RemoveEvent(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, app.ErrNotReady):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "snapshot not loaded yet, retry shortly"})
	case errors.Is(err, app.ErrPermissionDenied):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, app.ErrNotFoundEvent), errors.Is(err, hubapi.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, hubapi.ErrUnauthorized):
		c.JSON(http.StatusBadGateway, gin.H{"error": "hub rejected dashboard credentials"})
	default:
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
	}
}
