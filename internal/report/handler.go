package report

import (
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
	"github.com/xuri/excelize/v2"

	"github.com/conrad/backoffice/internal/domain/commission"
	"github.com/conrad/backoffice/internal/domain/settlement"
	"github.com/conrad/backoffice/internal/platform/auth"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Handler serves the xlsx export endpoints. A single mutex guards both
// exports: workbook generation is memory-heavy and the back office has no
// reason to run two at once, so a concurrent request gets 409 instead of
// queueing.
type Handler struct {
	commissions *commission.Service
	settlements *settlement.Service
	brand       Brand

	exporting sync.Mutex
}

func NewHandler(commissions *commission.Service, settlements *settlement.Service, brand Brand) *Handler {
	return &Handler{commissions: commissions, settlements: settlements, brand: brand}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	role := auth.RequireRole("admin", "accounting")
	api.POST("/reports/commissions/export", h.ExportCommissions, role)
	api.POST("/reports/settlements/export", h.ExportSettlements, role)
}

type commissionExportRequest struct {
	StartDate    string      `json:"start_date"`
	EndDate      string      `json:"end_date"`
	PhysicianIDs []uuid.UUID `json:"physician_ids"`
}

// ExportCommissions regenerates the range's summaries and streams the
// commission workbook. Dates are yyyy-mm-dd and default to the current month.
// When physician_ids is non-empty, only those summaries are exported; the
// category columns shrink accordingly.
func (h *Handler) ExportCommissions(c echo.Context) error {
	var req commissionExportRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	from, to, err := commission.ParseDateRange(req.StartDate, req.EndDate)
	if err != nil {
		return err
	}

	if !h.exporting.TryLock() {
		return echo.NewHTTPError(http.StatusConflict, "an export is already running")
	}
	defer h.exporting.Unlock()

	summaries, err := h.commissions.Summaries(c.Request().Context(), from, to)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if len(req.PhysicianIDs) > 0 {
		selected := make(map[uuid.UUID]bool, len(req.PhysicianIDs))
		for _, id := range req.PhysicianIDs {
			selected[id] = true
		}
		for _, s := range summaries {
			s.Included = selected[s.PhysicianID]
		}
	}

	f, err := BuildCommissionWorkbook(summaries, from, to, h.brand)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return h.sendWorkbook(c, f, CommissionFilename(from, h.brand.Name))
}

type settlementExportRequest struct {
	Year  int `json:"year"`
	Month int `json:"month"`
	Half  int `json:"half"`
}

// ExportSettlements streams the half-month statement workbook. An empty
// window is reported as 404 so the client can tell "nothing to settle" apart
// from a failure.
func (h *Handler) ExportSettlements(c echo.Context) error {
	var req settlementExportRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	year, month, err := validatePeriod(req.Year, req.Month)
	if err != nil {
		return err
	}
	if req.Half != int(settlement.FirstHalf) && req.Half != int(settlement.SecondHalf) {
		return echo.NewHTTPError(http.StatusBadRequest, "half must be 1 or 2")
	}
	half := settlement.Half(req.Half)

	if !h.exporting.TryLock() {
		return echo.NewHTTPError(http.StatusConflict, "an export is already running")
	}
	defer h.exporting.Unlock()

	groups, err := h.settlements.PeriodGroups(c.Request().Context(), year, month, half)
	if errors.Is(err, settlement.ErrNoRecords) {
		return echo.NewHTTPError(http.StatusNotFound,
			fmt.Sprintf("no records for %s", settlement.PeriodLabel(year, month, half)))
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	f, err := BuildSettlementWorkbook(groups, year, month, half, h.brand)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return h.sendWorkbook(c, f, SettlementFilename(year, month, half))
}

func (h *Handler) sendWorkbook(c echo.Context, f *excelize.File, filename string) error {
	buf, err := f.WriteToBuffer()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	log.Info().Str("filename", filename).Int("bytes", buf.Len()).Msg("workbook exported")
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf(`attachment; filename=%q`, filename))
	return c.Blob(http.StatusOK, xlsxContentType, buf.Bytes())
}

func validatePeriod(year, month int) (int, time.Month, error) {
	if year < 2000 || year > 2200 {
		return 0, 0, echo.NewHTTPError(http.StatusBadRequest, "invalid year")
	}
	if month < 1 || month > 12 {
		return 0, 0, echo.NewHTTPError(http.StatusBadRequest, "invalid month")
	}
	return year, time.Month(month), nil
}
