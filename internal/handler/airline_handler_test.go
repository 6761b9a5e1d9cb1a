package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/alixtron0/tour-backoffice/internal/domain"
	"github.com/alixtron0/tour-backoffice/internal/dto"
	"github.com/alixtron0/tour-backoffice/internal/response"
	"github.com/alixtron0/tour-backoffice/internal/service"
	"github.com/alixtron0/tour-backoffice/internal/spreadsheet"
)

// MockAirlineService is a mock implementation of AirlineService for testing
type MockAirlineService struct {
	CreateFunc  func(ctx context.Context, req *dto.CreateAirlineRequest) (*domain.Airline, error)
	GetByIDFunc func(ctx context.Context, id string) (*domain.Airline, error)
	ListFunc    func(ctx context.Context) ([]*domain.Airline, error)
	UpdateFunc  func(ctx context.Context, id string, req *dto.UpdateAirlineRequest) (*domain.Airline, error)
	DeleteFunc  func(ctx context.Context, id string) error
	ExportFunc  func(ctx context.Context) ([]byte, error)
}

func (m *MockAirlineService) Create(ctx context.Context, req *dto.CreateAirlineRequest) (*domain.Airline, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, req)
	}
	return nil, nil
}

func (m *MockAirlineService) GetByID(ctx context.Context, id string) (*domain.Airline, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockAirlineService) List(ctx context.Context) ([]*domain.Airline, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return nil, nil
}

func (m *MockAirlineService) Update(ctx context.Context, id string, req *dto.UpdateAirlineRequest) (*domain.Airline, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, id, req)
	}
	return nil, nil
}

func (m *MockAirlineService) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *MockAirlineService) Export(ctx context.Context) ([]byte, error) {
	if m.ExportFunc != nil {
		return m.ExportFunc(ctx)
	}
	return nil, nil
}

func setupAirlineRouter(handler *AirlineHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	airlines := router.Group("/airlines")
	{
		airlines.GET("", handler.List)
		airlines.GET("/export", handler.Export)
		airlines.GET("/:id", handler.Get)
		airlines.POST("", handler.Create)
		airlines.PUT("/:id", handler.Update)
		airlines.DELETE("/:id", handler.Delete)
	}
	return router
}

func storedAirlines() []*domain.Airline {
	return []*domain.Airline{
		{ID: "a-1", Name: "ماهان", EnglishName: "Mahan Air", Code: "W5", Country: "Iran", IsActive: true},
		{ID: "a-2", Name: "ترکیش", EnglishName: "Turkish Airlines", Code: "TK", Country: "Turkey", IsActive: true},
		{ID: "a-3", Name: "قشم ایر", EnglishName: "Qeshm Air", Code: "QB", Country: "Iran", IsActive: false},
	}
}

func TestAirlineHandler_List_SearchAndFilter(t *testing.T) {
	handler := NewAirlineHandler(&MockAirlineService{
		ListFunc: func(ctx context.Context) ([]*domain.Airline, error) {
			return storedAirlines(), nil
		},
	})
	router := setupAirlineRouter(handler)

	tests := []struct {
		name     string
		query    string
		expected int
	}{
		{"no filters", "", 3},
		{"search by english name", "?search=mahan", 1},
		{"search by code", "?search=tk", 1},
		{"active only", "?is_active=true", 2},
		{"inactive only", "?is_active=false", 1},
		{"country filter", "?country=Iran", 2},
		{"country plus active", "?country=Iran&is_active=true", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/airlines"+tt.query, nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != http.StatusOK {
				t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
			}
			envelope := decodeEnvelope(t, w.Body)
			meta, _ := envelope.Meta.(map[string]interface{})
			if meta == nil {
				t.Fatalf("expected pagination meta, got %+v", envelope)
			}
			if total := meta["total"]; total != float64(tt.expected) {
				t.Errorf("expected %d matches, got %v", tt.expected, total)
			}
		})
	}
}

func TestAirlineHandler_List_SortsByName(t *testing.T) {
	handler := NewAirlineHandler(&MockAirlineService{
		ListFunc: func(ctx context.Context) ([]*domain.Airline, error) {
			return storedAirlines(), nil
		},
	})
	router := setupAirlineRouter(handler)

	req := httptest.NewRequest(http.MethodGet, "/airlines?sort_by=code&sort_order=asc", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	var envelope struct {
		Data []struct {
			Code string `json:"code"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	codes := make([]string, 0, len(envelope.Data))
	for _, a := range envelope.Data {
		codes = append(codes, a.Code)
	}
	want := []string{"QB", "TK", "W5"}
	for i := range want {
		if codes[i] != want[i] {
			t.Fatalf("expected order %v, got %v", want, codes)
		}
	}
}

func TestAirlineHandler_Create_Conflict(t *testing.T) {
	handler := NewAirlineHandler(&MockAirlineService{
		CreateFunc: func(ctx context.Context, req *dto.CreateAirlineRequest) (*domain.Airline, error) {
			return nil, service.ErrAirlineCodeExists
		},
	})
	router := setupAirlineRouter(handler)

	payload, _ := json.Marshal(dto.CreateAirlineRequest{Name: "ماهان", Code: "W5"})
	req := httptest.NewRequest(http.MethodPost, "/airlines", bytes.NewBuffer(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusConflict {
		t.Fatalf("expected status 409, got %d", w.Code)
	}
	envelope := decodeEnvelope(t, w.Body)
	if envelope.Error == nil || envelope.Error.Code != response.ErrCodeConflict {
		t.Errorf("expected conflict code, got %+v", envelope.Error)
	}
}

func TestAirlineHandler_Create_BadCode(t *testing.T) {
	handler := NewAirlineHandler(&MockAirlineService{})
	router := setupAirlineRouter(handler)

	payload, _ := json.Marshal(dto.CreateAirlineRequest{Name: "ماهان", Code: "TOOLONG"})
	req := httptest.NewRequest(http.MethodPost, "/airlines", bytes.NewBuffer(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", w.Code)
	}
}

func TestAirlineHandler_Delete_InUse(t *testing.T) {
	handler := NewAirlineHandler(&MockAirlineService{
		DeleteFunc: func(ctx context.Context, id string) error {
			return service.ErrAirlineInUse
		},
	})
	router := setupAirlineRouter(handler)

	req := httptest.NewRequest(http.MethodDelete, "/airlines/a-1", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusConflict {
		t.Fatalf("expected status 409, got %d", w.Code)
	}
}

func TestAirlineHandler_Export(t *testing.T) {
	handler := NewAirlineHandler(&MockAirlineService{
		ExportFunc: func(ctx context.Context) ([]byte, error) {
			return []byte("workbook-bytes"), nil
		},
	})
	router := setupAirlineRouter(handler)

	req := httptest.NewRequest(http.MethodGet, "/airlines/export", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != spreadsheet.MIMEXLSX {
		t.Errorf("expected xlsx content type, got %s", ct)
	}
	if cd := w.Header().Get("Content-Disposition"); cd == "" {
		t.Error("expected a content disposition header")
	}
}

func TestAirlineHandler_Get_ServerErrorHidesCause(t *testing.T) {
	handler := NewAirlineHandler(&MockAirlineService{
		GetByIDFunc: func(ctx context.Context, id string) (*domain.Airline, error) {
			return nil, errors.New("connect to 10.0.0.5:5432 refused")
		},
	})
	router := setupAirlineRouter(handler)

	req := httptest.NewRequest(http.MethodGet, "/airlines/a1", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", w.Code)
	}
	resp := decodeEnvelope(t, w.Body)
	if resp.Error == nil || resp.Error.Code != response.ErrCodeInternal {
		t.Fatalf("expected %s error code, got %+v", response.ErrCodeInternal, resp.Error)
	}
	if strings.Contains(w.Body.String(), "10.0.0.5") {
		t.Errorf("response leaks internal error detail: %s", w.Body.String())
	}
	if resp.Error.Message != "An unexpected error occurred" {
		t.Errorf("expected generic message, got %q", resp.Error.Message)
	}
}
