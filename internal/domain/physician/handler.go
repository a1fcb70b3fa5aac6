package physician

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/conrad/backoffice/internal/platform/auth"
	"github.com/conrad/backoffice/pkg/pagination"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	role := auth.RequireRole("admin", "accounting")
	api.GET("/physicians", h.ListPhysicians, role)
}

// ListPhysicians returns the roster with referral stats for [start, end].
// Dates are yyyy-mm-dd; defaults to the current month.
func (h *Handler) ListPhysicians(c echo.Context) error {
	now := time.Now().UTC()
	from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0).Add(-time.Second)

	if s := c.QueryParam("start"); s != "" {
		parsed, err := time.Parse("2006-01-02", s)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid start date")
		}
		from = parsed
	}
	if e := c.QueryParam("end"); e != "" {
		parsed, err := time.Parse("2006-01-02", e)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid end date")
		}
		// End of day, so the range stays inclusive.
		to = parsed.Add(24*time.Hour - time.Second)
	}
	if to.Before(from) {
		return echo.NewHTTPError(http.StatusBadRequest, "end date before start date")
	}

	entries, err := h.svc.Roster(c.Request().Context(), from, to)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	pg := pagination.FromContext(c)
	start, end := pg.Page(len(entries))
	return c.JSON(http.StatusOK, echo.Map{
		"start":      from.Format("2006-01-02"),
		"end":        to.Format("2006-01-02"),
		"physicians": pagination.NewResponse(entries[start:end], len(entries), pg.Limit, pg.Offset),
	})
}
