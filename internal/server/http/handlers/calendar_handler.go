package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/andinaft/bakeryd/internal/domain/model"
	"github.com/andinaft/bakeryd/internal/server/http/dto"
)

// CalendarHandler serves availability reads and admin closures.
type CalendarHandler struct {
	facade CalendarFacade
}

// NewCalendarHandler constructs CalendarHandler.
func NewCalendarHandler(facade CalendarFacade) *CalendarHandler {
	return &CalendarHandler{facade: facade}
}

// List handles GET /api/calendar. Without query parameters it returns every
// blocked day from today on; from/to narrow the range.
func (h *CalendarHandler) List(c *gin.Context) {
	fromRaw := c.Query("from")
	toRaw := c.Query("to")

	var (
		dates []model.ClosedDate
		err   error
	)
	if fromRaw == "" && toRaw == "" {
		dates, err = h.facade.CalendarUpcoming(c.Request.Context(), time.Now())
	} else {
		from, parseErr := parseDate(fromRaw)
		if parseErr != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid from"})
			return
		}
		to, parseErr := parseDate(toRaw)
		if parseErr != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid to"})
			return
		}
		dates, err = h.facade.CalendarBetween(c.Request.Context(), from, to)
	}
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]dto.ClosedDateResponse, 0, len(dates))
	for _, d := range dates {
		response = append(response, dto.ClosedDateResponse{
			Date:   d.Date.Format(dateLayout),
			Type:   string(d.Type),
			Reason: d.Reason,
		})
	}
	c.JSON(http.StatusOK, response)
}

// Close handles POST /api/calendar/close.
func (h *CalendarHandler) Close(c *gin.Context) {
	actor := CurrentActor(c)

	var req dto.CloseDateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}
	date, err := parseDate(req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date"})
		return
	}

	if err := h.facade.CloseDate(c.Request.Context(), actor, date, req.Reason); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusCreated)
}

// Open handles POST /api/calendar/open.
func (h *CalendarHandler) Open(c *gin.Context) {
	actor := CurrentActor(c)

	var req dto.OpenDateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}
	date, err := parseDate(req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date"})
		return
	}

	if err := h.facade.OpenDate(c.Request.Context(), actor, date); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusOK)
}
