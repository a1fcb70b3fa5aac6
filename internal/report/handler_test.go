package report

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/conrad/backoffice/internal/domain/billing"
	"github.com/conrad/backoffice/internal/domain/commission"
	"github.com/conrad/backoffice/internal/domain/settlement"
)

type fakeRecordRepo struct {
	commission []*billing.Record
	settlement []*billing.Record
	err        error
}

func (f *fakeRecordRepo) ListCommissionCandidates(ctx context.Context, from, to time.Time) ([]*billing.Record, error) {
	return f.commission, f.err
}

func (f *fakeRecordRepo) ListSettlementCandidates(ctx context.Context, from, to time.Time) ([]*billing.Record, error) {
	return f.settlement, f.err
}

func newTestHandler(repo billing.RecordRepository) *Handler {
	return NewHandler(commission.NewService(repo), settlement.NewService(repo), testBrand)
}

func postJSON(path, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestExportCommissionsReturnsWorkbook(t *testing.T) {
	repo := &fakeRecordRepo{}
	h := newTestHandler(repo)
	c, rec := postJSON("/api/v1/reports/commissions/export", `{"start_date":"2024-03-01","end_date":"2024-03-31"}`)

	if err := h.ExportCommissions(c); err != nil {
		t.Fatalf("ExportCommissions: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if ct := rec.Header().Get(echo.HeaderContentType); ct != xlsxContentType {
		t.Errorf("content type = %q", ct)
	}
	cd := rec.Header().Get(echo.HeaderContentDisposition)
	if !strings.Contains(cd, "Comisiones_Medicas_2024-03_CONRAD.xlsx") {
		t.Errorf("content disposition = %q", cd)
	}
	if rec.Body.Len() == 0 {
		t.Error("empty workbook body")
	}
}

func TestExportCommissionsRejectsBadRange(t *testing.T) {
	h := newTestHandler(&fakeRecordRepo{})
	for _, body := range []string{
		`{"start_date":"31/03/2024"}`,
		`{"start_date":"2024-04-01","end_date":"2024-03-01"}`,
	} {
		c, _ := postJSON("/api/v1/reports/commissions/export", body)
		err := h.ExportCommissions(c)
		httpErr, ok := err.(*echo.HTTPError)
		if !ok || httpErr.Code != http.StatusBadRequest {
			t.Fatalf("body %s: got %v, want 400", body, err)
		}
	}
}

func TestExportCommissionsMidMonthRangeInFilename(t *testing.T) {
	h := newTestHandler(&fakeRecordRepo{})
	c, rec := postJSON("/api/v1/reports/commissions/export", `{"start_date":"2024-03-10","end_date":"2024-04-05"}`)

	if err := h.ExportCommissions(c); err != nil {
		t.Fatalf("ExportCommissions: %v", err)
	}
	cd := rec.Header().Get(echo.HeaderContentDisposition)
	if !strings.Contains(cd, "Comisiones_Medicas_2024-03_CONRAD.xlsx") {
		t.Errorf("content disposition = %q", cd)
	}
}

func TestExportSettlementsEmptyPeriodIs404(t *testing.T) {
	h := newTestHandler(&fakeRecordRepo{})
	c, _ := postJSON("/api/v1/reports/settlements/export", `{"year":2024,"month":3,"half":1}`)

	err := h.ExportSettlements(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusNotFound {
		t.Fatalf("got %v, want 404", err)
	}
}

func TestExportSettlementsRejectsBadHalf(t *testing.T) {
	h := newTestHandler(&fakeRecordRepo{})
	c, _ := postJSON("/api/v1/reports/settlements/export", `{"year":2024,"month":3,"half":3}`)

	err := h.ExportSettlements(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusBadRequest {
		t.Fatalf("got %v, want 400", err)
	}
}

func TestExportConflictsWhileAnotherRuns(t *testing.T) {
	h := newTestHandler(&fakeRecordRepo{})
	h.exporting.Lock()
	defer h.exporting.Unlock()

	c, _ := postJSON("/api/v1/reports/commissions/export", `{"start_date":"2024-03-01","end_date":"2024-03-31"}`)
	err := h.ExportCommissions(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusConflict {
		t.Fatalf("got %v, want 409", err)
	}

	c, _ = postJSON("/api/v1/reports/settlements/export", `{"year":2024,"month":3,"half":1}`)
	err = h.ExportSettlements(c)
	httpErr, ok = err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusConflict {
		t.Fatalf("got %v, want 409", err)
	}
}

func TestExportSettlementsStreamsWorkbook(t *testing.T) {
	patient := "Juan Pérez"
	repo := &fakeRecordRepo{settlement: []*billing.Record{{
		VisitDate:            time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC),
		Mode:                 billing.ModeAccountReceivable,
		RecommendedPhysician: &patient,
		PatientName:          &patient,
		Items:                []billing.LineItem{{Price: 100, Category: billing.StudyCategory{Name: "USG"}}},
	}}}
	h := newTestHandler(repo)
	c, rec := postJSON("/api/v1/reports/settlements/export", `{"year":2024,"month":3,"half":1}`)

	if err := h.ExportSettlements(c); err != nil {
		t.Fatalf("ExportSettlements: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	cd := rec.Header().Get(echo.HeaderContentDisposition)
	if !strings.Contains(cd, "Cuadre_Quincenal_1Q_Marzo_2024.xlsx") {
		t.Errorf("content disposition = %q", cd)
	}
	if rec.Body.Len() == 0 {
		t.Error("empty workbook body")
	}
}
