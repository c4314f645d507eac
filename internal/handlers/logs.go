package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"heater_relay/internal/models"
	"heater_relay/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	errFromInvalid  = "invalid 'from' time; use RFC3339, 'YYYY-MM-DD HH:MM:SS' or YYYY-MM-DD"
	errToInvalid    = "invalid 'to' time; use RFC3339, 'YYYY-MM-DD HH:MM:SS' or YYYY-MM-DD"
	errRangeInvalid = "'from' must be <= 'to'"
	errTypeInvalid  = "unknown event type or category"
	errModeInvalid  = "unknown mode; use MANUAL_ON, MANUAL_OFF or AUTO"
	errLimitInvalid = "limit must be a non-negative integer"
	errLoadLogs     = "failed to load logs"

	layoutDateTime = "2006-01-02 15:04:05"
	layoutDate     = "2006-01-02"
)

// filterError is a query parameter the client got wrong.
type filterError string

func (e filterError) Error() string { return string(e) }

// parseLogFilter reads from, to, type, mode and limit. A date-only 'to'
// covers that whole day.
func parseLogFilter(c *gin.Context) (service.LogFilter, error) {
	var f service.LogFilter
	if qs := c.Query("from"); qs != "" {
		t, _, ok := parseQueryTime(qs)
		if !ok {
			return f, filterError(errFromInvalid)
		}
		f.From = t
	}
	if qs := c.Query("to"); qs != "" {
		t, dateOnly, ok := parseQueryTime(qs)
		if !ok {
			return f, filterError(errToInvalid)
		}
		if dateOnly {
			t = t.Add(24*time.Hour - time.Nanosecond)
		}
		f.To = t
	}
	if !f.From.IsZero() && !f.To.IsZero() && f.From.After(f.To) {
		return f, filterError(errRangeInvalid)
	}

	f.Type = strings.ToUpper(strings.TrimSpace(c.Query("type")))
	if _, ok := models.ExpandEventType(f.Type); !ok {
		return f, filterError(errTypeInvalid)
	}
	if qs := strings.ToUpper(strings.TrimSpace(c.Query("mode"))); qs != "" {
		m, ok := models.ParseMode(qs)
		if !ok {
			return f, filterError(errModeInvalid)
		}
		f.Mode = m
	}
	if qs := c.Query("limit"); qs != "" {
		n, err := strconv.Atoi(qs)
		if err != nil || n < 0 {
			return f, filterError(errLimitInvalid)
		}
		f.Limit = n
	}
	return f, nil
}

// parseQueryTime accepts RFC3339, a UTC date-time or a bare UTC date. The
// second result reports a bare date, the third success.
func parseQueryTime(s string) (time.Time, bool, bool) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), false, true
	}
	if t, err := time.Parse(layoutDateTime, s); err == nil {
		return t, false, true
	}
	if t, err := time.Parse(layoutDate, s); err == nil {
		return t, true, true
	}
	return time.Time{}, false, false
}

// badFilter answers 400 for client mistakes, caught here or by the service.
func (h *Handler) badFilter(c *gin.Context, err error) bool {
	var fe filterError
	switch {
	case errors.As(err, &fe):
		c.JSON(http.StatusBadRequest, gin.H{"error": fe.Error()})
	case errors.Is(err, service.ErrInvalidFilter):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		return false
	}
	return true
}

// @Summary      List journal entries
// @Description  Heater journal, oldest first. 'type' takes an event type or a category (SWITCHING, FAULTS, LIFECYCLE). 'mode' keeps entries recorded under that mode. A date-only 'to' covers the whole day.
// @Tags         logs
// @Produce      json
// @Param        from   query  string  false  "Start of range (RFC3339, 'YYYY-MM-DD HH:MM:SS' or 'YYYY-MM-DD')"  example(2026-10-01)
// @Param        to     query  string  false  "End of range, inclusive"  example(2026-10-31)
// @Param        type   query  string  false  "Event type or category"  Enums(START,STOP,MODE_CHANGE,HEATER_ON,HEATER_OFF,SENSOR_FAULT,ACTUATOR_FAULT,SWITCHING,FAULTS,LIFECYCLE)
// @Param        mode   query  string  false  "Mode in force"  Enums(MANUAL_ON,MANUAL_OFF,AUTO)
// @Param        limit  query  int     false  "Keep only the most recent N entries"
// @Success      200  {object}  map[string]interface{}  "count, events"
// @Failure      400  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/logs [get]
func (h *Handler) getLogs(c *gin.Context) {
	f, err := parseLogFilter(c)
	if err == nil {
		var events []models.HeaterEvent
		events, err = h.services.EventLog.List(c.Request.Context(), f)
		if err == nil {
			c.JSON(http.StatusOK, gin.H{"count": len(events), "events": events})
			return
		}
	}
	if h.badFilter(c, err) {
		return
	}
	h.logAndJSONError(c, http.StatusInternalServerError, errLoadLogs, "logs_list_failed", err,
		"from", f.From, "to", f.To, "type", f.Type, "mode", f.Mode)
}

// @Summary      Summarise the journal
// @Description  Switch count, faults and relay on-time over [from, to]. Open 'to' ends now.
// @Tags         logs
// @Produce      json
// @Param        from  query  string  false  "Start of range"  example(2026-10-16)
// @Param        to    query  string  false  "End of range, inclusive"  example(2026-10-16)
// @Success      200  {object}  models.JournalSummary
// @Failure      400  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/logs/summary [get]
func (h *Handler) getLogSummary(c *gin.Context) {
	f, err := parseLogFilter(c)
	if err == nil {
		var sum models.JournalSummary
		sum, err = h.services.EventLog.Summarize(c.Request.Context(), f)
		if err == nil {
			c.JSON(http.StatusOK, sum)
			return
		}
	}
	if h.badFilter(c, err) {
		return
	}
	h.logAndJSONError(c, http.StatusInternalServerError, errLoadLogs, "logs_summary_failed", err,
		"from", f.From, "to", f.To)
}
