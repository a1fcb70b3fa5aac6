package commission

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/conrad/backoffice/internal/platform/auth"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	role := auth.RequireRole("admin", "accounting")
	api.GET("/reports/commissions", h.PreviewCommissions, role)
}

// PreviewCommissions returns the range's commission summaries as JSON so the
// operator can review and deselect physicians before exporting. Dates are
// yyyy-mm-dd; the range defaults to the current month.
func (h *Handler) PreviewCommissions(c echo.Context) error {
	from, to, err := ParseDateRange(c.QueryParam("start"), c.QueryParam("end"))
	if err != nil {
		return err
	}
	summaries, err := h.svc.Summaries(c.Request().Context(), from, to)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{
		"start":     from.Format("2006-01-02"),
		"end":       to.Format("2006-01-02"),
		"summaries": summaries,
	})
}

// ParseDateRange resolves the operator-selected commission period. Either
// bound may be omitted; missing bounds fall back to the current month. The
// end bound is pushed to the last second of its day so the range stays
// inclusive.
func ParseDateRange(start, end string) (time.Time, time.Time, error) {
	now := time.Now().UTC()
	from, to := MonthWindow(now.Year(), now.Month())

	if start != "" {
		parsed, err := time.Parse("2006-01-02", start)
		if err != nil {
			return time.Time{}, time.Time{}, echo.NewHTTPError(http.StatusBadRequest, "invalid start date")
		}
		from = parsed
	}
	if end != "" {
		parsed, err := time.Parse("2006-01-02", end)
		if err != nil {
			return time.Time{}, time.Time{}, echo.NewHTTPError(http.StatusBadRequest, "invalid end date")
		}
		to = parsed.Add(24*time.Hour - time.Second)
	}
	if to.Before(from) {
		return time.Time{}, time.Time{}, echo.NewHTTPError(http.StatusBadRequest, "end date before start date")
	}
	return from, to, nil
}
