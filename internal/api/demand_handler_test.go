package api

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"hirePortal/internal/database"
	"hirePortal/internal/talent"
)

type fakeDemandStore struct {
	demands []talent.Demand
}

func (s *fakeDemandStore) ListAll(context.Context) ([]talent.Demand, error) {
	out := make([]talent.Demand, len(s.demands))
	copy(out, s.demands)
	return out, nil
}

func (s *fakeDemandStore) GetByID(_ context.Context, id int) (talent.Demand, error) {
	for _, d := range s.demands {
		if d.ID == id {
			return d, nil
		}
	}
	return talent.Demand{}, database.ErrNotFound
}

func (s *fakeDemandStore) Create(_ context.Context, row database.Demand) (talent.Demand, error) {
	maxID := 0
	for _, d := range s.demands {
		if d.ID > maxID {
			maxID = d.ID
		}
	}
	demand := talent.Demand{
		ID:          maxID + 1,
		ClientName:  row.ClientName,
		CreatedDate: row.CreatedDate,
		JobPriority: row.JobPriority,
		Status:      row.Status,
	}
	s.demands = append(s.demands, demand)
	return demand, nil
}

func (s *fakeDemandStore) Update(_ context.Context, id int, fields map[string]any) (talent.Demand, error) {
	for i, d := range s.demands {
		if d.ID == id {
			if status, ok := fields["status"].(string); ok {
				d.Status = status
			}
			s.demands[i] = d
			return d, nil
		}
	}
	return talent.Demand{}, database.ErrNotFound
}

func (s *fakeDemandStore) Delete(_ context.Context, id int) (bool, error) {
	for i, d := range s.demands {
		if d.ID == id {
			s.demands = append(s.demands[:i], s.demands[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func newDemandRouter(store database.DemandStore, now time.Time) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewDemandHandler(store, nil, slog.Default())
	h.now = func() time.Time { return now }

	router := gin.New()
	router.GET("/api/demand", h.List)
	router.GET("/api/demand/export/csv", h.ExportCSV)
	router.POST("/api/demand", h.Create)
	router.GET("/api/demand/:id", h.Get)
	router.PUT("/api/demand/:id", h.Update)
	router.DELETE("/api/demand/:id", h.Delete)
	return router
}

func TestListDemands_AnnotatesAgeing(t *testing.T) {
	now := time.Date(2025, 6, 22, 12, 0, 0, 0, time.UTC)
	store := &fakeDemandStore{demands: []talent.Demand{
		{ID: 1, ClientName: "Acme", CreatedDate: "2025-06-01", Status: "Active"},
	}}
	router := newDemandRouter(store, now)

	w, body := doJSON(t, router, http.MethodGet, "/api/demand", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	data, ok := body["data"].([]any)
	if !ok || len(data) != 1 {
		t.Fatalf("expected one demand, got %v", body["data"])
	}
	row := data[0].(map[string]any)
	if row["ageingWeeks"] != float64(3) {
		t.Fatalf("expected 3 ageing weeks, got %v", row["ageingWeeks"])
	}
}

func TestCreateDemand_Defaults(t *testing.T) {
	now := time.Date(2025, 6, 22, 12, 0, 0, 0, time.UTC)
	router := newDemandRouter(&fakeDemandStore{}, now)

	w, body := doJSON(t, router, http.MethodPost, "/api/demand", map[string]any{"clientName": "Acme"})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %v", w.Code, body)
	}

	data := body["data"].(map[string]any)
	if data["createdDate"] != "2025-06-22" {
		t.Fatalf("expected createdDate defaulting to today, got %v", data["createdDate"])
	}
	if data["jobPriority"] != "Medium" || data["status"] != "Active" {
		t.Fatalf("expected default priority and status, got %v", data)
	}
}

func TestCreateDemand_RequiresClientName(t *testing.T) {
	router := newDemandRouter(&fakeDemandStore{}, time.Now())

	w, _ := doJSON(t, router, http.MethodPost, "/api/demand", map[string]any{"country": "India"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without clientName, got %d", w.Code)
	}
}

func TestExportDemandsCSV(t *testing.T) {
	now := time.Date(2025, 6, 22, 12, 0, 0, 0, time.UTC)
	store := &fakeDemandStore{demands: []talent.Demand{
		{ID: 7, ClientName: "Acme", CreatedDate: "2025-06-01", ExpFrom: 3, ExpTo: 5, JobPriority: "High", Status: "Active"},
	}}
	router := newDemandRouter(store, now)

	req := httptest.NewRequest(http.MethodGet, "/api/demand/export/csv", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if contentType := w.Header().Get("Content-Type"); !strings.HasPrefix(contentType, "text/csv") {
		t.Fatalf("expected csv content type, got %q", contentType)
	}

	lines := strings.Split(strings.TrimSpace(w.Body.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected header plus one row, got %d lines", len(lines))
	}
	if !strings.HasPrefix(lines[0], "S.No,RR No,Client") {
		t.Fatalf("unexpected header: %q", lines[0])
	}
	if !strings.Contains(lines[1], "RR007") {
		t.Fatalf("expected formatted RR number, got %q", lines[1])
	}
	if !strings.Contains(lines[1], "3-5 yrs") {
		t.Fatalf("expected experience range, got %q", lines[1])
	}
	if !strings.Contains(lines[1], ",3,") {
		t.Fatalf("expected ageing weeks column, got %q", lines[1])
	}
}

func TestDemandNotFound(t *testing.T) {
	router := newDemandRouter(&fakeDemandStore{}, time.Now())

	w, _ := doJSON(t, router, http.MethodGet, "/api/demand/5", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}
