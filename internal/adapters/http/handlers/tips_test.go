package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finbits/tips-service/internal/adapters/http/dto"
	"github.com/finbits/tips-service/internal/app"
	"github.com/finbits/tips-service/internal/domain"
)

// fakeTipRepo is an in-memory repository for handler testing.
type fakeTipRepo struct {
	tips      []domain.Tip
	nextID    int64
	createErr error
	listErr   error
}

func (f *fakeTipRepo) Create(_ context.Context, tip *domain.Tip) error {
	if f.createErr != nil {
		return f.createErr
	}

	f.nextID++
	tip.ID = f.nextID
	f.tips = append(f.tips, *tip)

	return nil
}

func (f *fakeTipRepo) List(_ context.Context) ([]domain.Tip, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}

	out := make([]domain.Tip, len(f.tips))
	copy(out, f.tips)

	return out, nil
}

// setupTipHandler creates a TipHandler backed by the given fake repository.
func setupTipHandler(t *testing.T, repo *fakeTipRepo) *TipHandler {
	t.Helper()

	service := app.NewTipService(app.TipServiceConfig{
		Repository: repo,
		Logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	})

	return NewTipHandler(service)
}

func TestNewTipHandler(t *testing.T) {
	handler := setupTipHandler(t, &fakeTipRepo{})

	require.NotNil(t, handler)
}

func TestToTipListResponse(t *testing.T) {
	tests := []struct {
		name     string
		input    []domain.Tip
		expected TipListResponse
	}{
		{
			name: "tips in creation order",
			input: []domain.Tip{
				{ID: 1, Text: "Track every expense"},
				{ID: 2, Text: "Pay yourself first"},
			},
			expected: TipListResponse{Tips: []string{"Track every expense", "Pay yourself first"}},
		},
		{
			name:     "no tips yields empty slice",
			input:    nil,
			expected: TipListResponse{Tips: []string{}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := toTipListResponse(tt.input)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestTipHandler_ListTips(t *testing.T) {
	tests := []struct {
		name           string
		repo           *fakeTipRepo
		expectedStatus int
		checkResponse  func(*testing.T, *httptest.ResponseRecorder)
	}{
		{
			name: "empty store returns empty array",
			repo: &fakeTipRepo{},

			expectedStatus: http.StatusOK,
			checkResponse: func(t *testing.T, w *httptest.ResponseRecorder) {
				t.Helper()
				assert.JSONEq(t, `{"tips": []}`, w.Body.String())
			},
		},
		{
			name: "tips returned in insertion order",
			repo: &fakeTipRepo{
				tips: []domain.Tip{
					{ID: 1, Text: "A"},
					{ID: 2, Text: "B"},
				},
				nextID: 2,
			},
			expectedStatus: http.StatusOK,
			checkResponse: func(t *testing.T, w *httptest.ResponseRecorder) {
				t.Helper()
				var resp TipListResponse
				err := json.Unmarshal(w.Body.Bytes(), &resp)
				require.NoError(t, err)
				assert.Equal(t, []string{"A", "B"}, resp.Tips)
			},
		},
		{
			name: "store failure returns internal error",
			repo: &fakeTipRepo{listErr: errors.New("disk gone")},

			expectedStatus: http.StatusInternalServerError,
			checkResponse: func(t *testing.T, w *httptest.ResponseRecorder) {
				t.Helper()
				var resp dto.ErrorResponse
				err := json.Unmarshal(w.Body.Bytes(), &resp)
				require.NoError(t, err)
				assert.Equal(t, dto.ErrorCodeInternal, resp.Error.Code)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := setupTipHandler(t, tt.repo)

			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/tips", nil)

			handler.ListTips(c)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.checkResponse != nil {
				tt.checkResponse(t, w)
			}
		})
	}
}

func TestTipHandler_AddTip(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		repo           *fakeTipRepo
		expectedStatus int
		expectedStored int
		checkResponse  func(*testing.T, *httptest.ResponseRecorder)
	}{
		{
			name:           "valid tip is stored",
			body:           `{"tip": "Build an emergency fund"}`,
			repo:           &fakeTipRepo{},
			expectedStatus: http.StatusCreated,
			expectedStored: 1,
			checkResponse: func(t *testing.T, w *httptest.ResponseRecorder) {
				t.Helper()
				var resp AddTipResponse
				err := json.Unmarshal(w.Body.Bytes(), &resp)
				require.NoError(t, err)
				assert.Equal(t, "Tip added!", resp.Message)
				assert.Equal(t, int64(1), resp.ID)
			},
		},
		{
			name:           "malformed JSON is rejected",
			body:           `this is not json`,
			repo:           &fakeTipRepo{},
			expectedStatus: http.StatusBadRequest,
			expectedStored: 0,
			checkResponse: func(t *testing.T, w *httptest.ResponseRecorder) {
				t.Helper()
				var resp dto.ErrorResponse
				err := json.Unmarshal(w.Body.Bytes(), &resp)
				require.NoError(t, err)
				assert.Equal(t, dto.ErrorCodeBadRequest, resp.Error.Code)
			},
		},
		{
			name:           "missing tip field is rejected",
			body:           `{}`,
			repo:           &fakeTipRepo{},
			expectedStatus: http.StatusBadRequest,
			expectedStored: 0,
			checkResponse: func(t *testing.T, w *httptest.ResponseRecorder) {
				t.Helper()
				var resp dto.ErrorResponse
				err := json.Unmarshal(w.Body.Bytes(), &resp)
				require.NoError(t, err)
				assert.Equal(t, dto.ErrorCodeValidation, resp.Error.Code)
				assert.Contains(t, resp.Error.Details, "tip")
			},
		},
		{
			name:           "empty tip field is rejected",
			body:           `{"tip": ""}`,
			repo:           &fakeTipRepo{},
			expectedStatus: http.StatusBadRequest,
			expectedStored: 0,
			checkResponse: func(t *testing.T, w *httptest.ResponseRecorder) {
				t.Helper()
				var resp dto.ErrorResponse
				err := json.Unmarshal(w.Body.Bytes(), &resp)
				require.NoError(t, err)
				assert.Equal(t, dto.ErrorCodeValidation, resp.Error.Code)
			},
		},
		{
			name:           "wrong field type is rejected",
			body:           `{"tip": 42}`,
			repo:           &fakeTipRepo{},
			expectedStatus: http.StatusBadRequest,
			expectedStored: 0,
			checkResponse: func(t *testing.T, w *httptest.ResponseRecorder) {
				t.Helper()
				var resp dto.ErrorResponse
				err := json.Unmarshal(w.Body.Bytes(), &resp)
				require.NoError(t, err)
				assert.Equal(t, dto.ErrorCodeBadRequest, resp.Error.Code)
			},
		},
		{
			name:           "store failure does not report success",
			body:           `{"tip": "Diversify your savings"}`,
			repo:           &fakeTipRepo{createErr: errors.New("database is locked")},
			expectedStatus: http.StatusInternalServerError,
			expectedStored: 0,
			checkResponse: func(t *testing.T, w *httptest.ResponseRecorder) {
				t.Helper()
				var resp dto.ErrorResponse
				err := json.Unmarshal(w.Body.Bytes(), &resp)
				require.NoError(t, err)
				assert.Equal(t, dto.ErrorCodeInternal, resp.Error.Code)
				assert.NotContains(t, w.Body.String(), "Tip added!")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := setupTipHandler(t, tt.repo)

			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodPost, "/tips", strings.NewReader(tt.body))
			c.Request.Header.Set("Content-Type", "application/json")

			handler.AddTip(c)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Len(t, tt.repo.tips, tt.expectedStored)
			if tt.checkResponse != nil {
				tt.checkResponse(t, w)
			}
		})
	}
}

func TestTipHandler_AddThenList(t *testing.T) {
	repo := &fakeTipRepo{}
	handler := setupTipHandler(t, repo)

	add := func(text string) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		body := `{"tip": "` + text + `"}`
		c.Request = httptest.NewRequest(http.MethodPost, "/tips", strings.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")

		handler.AddTip(c)
		require.Equal(t, http.StatusCreated, w.Code)
	}

	add("A")
	add("B")

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/tips", nil)

	handler.ListTips(c)

	require.Equal(t, http.StatusOK, w.Code)

	var resp TipListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, []string{"A", "B"}, resp.Tips)
}

func TestTipHandler_RegisterTipRoutes(t *testing.T) {
	handler := setupTipHandler(t, &fakeTipRepo{})

	router := gin.New()
	root := router.Group("")
	handler.RegisterTipRoutes(root)

	routes := router.Routes()

	expectedRoutes := []string{
		"GET /tips",
		"POST /tips",
	}

	routeMap := make(map[string]bool)
	for _, r := range routes {
		routeMap[r.Method+" "+r.Path] = true
	}

	for _, expected := range expectedRoutes {
		assert.True(t, routeMap[expected], "missing route: %s", expected)
	}
}
