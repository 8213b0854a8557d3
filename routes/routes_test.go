package routes

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/LovationAdmin/finance-tracker-api/config"
	"github.com/LovationAdmin/finance-tracker-api/middleware"
	"github.com/LovationAdmin/finance-tracker-api/models"
	"github.com/LovationAdmin/finance-tracker-api/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const frontendOrigin = "http://localhost:5173"

func newTestRouter(t *testing.T, limiter *middleware.RateLimiter) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	cfg := config.Config{AllowedOrigins: []string{frontendOrigin}}
	return NewRouter(cfg, Deps{Store: services.NewTransactionStore(), Limiter: limiter})
}

func do(router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func create(t *testing.T, router http.Handler, body string) models.Transaction {
	t.Helper()
	w := do(router, http.MethodPost, "/transactions", body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decode[models.Transaction](t, w)
}

func txBody(title string, amount float64, txType, date string) string {
	b, _ := json.Marshal(map[string]interface{}{
		"title":    title,
		"amount":   amount,
		"type":     txType,
		"category": "General",
		"date":     date,
	})
	return string(b)
}

func TestCreateTransaction(t *testing.T) {
	router := newTestRouter(t, nil)

	tx := create(t, router, `{"title":"Coffee","amount":3.5,"type":"expense","category":"Food","date":"2024-04-02","note":null}`)

	assert.NotEmpty(t, tx.ID)
	assert.NotEmpty(t, tx.CreatedAt)
	assert.Equal(t, "Coffee", tx.Title)
	assert.Nil(t, tx.Note)

	_, err := time.Parse(time.RFC3339, tx.CreatedAt)
	assert.NoError(t, err)
}

func TestCreateTransaction_MissingFields(t *testing.T) {
	router := newTestRouter(t, nil)
	full := map[string]interface{}{
		"title":    "Coffee",
		"amount":   3.5,
		"type":     "expense",
		"category": "Food",
		"date":     "2024-04-02",
	}

	for field := range full {
		t.Run(field, func(t *testing.T) {
			body := map[string]interface{}{}
			for k, v := range full {
				if k != field {
					body[k] = v
				}
			}
			raw, err := json.Marshal(body)
			require.NoError(t, err)

			w := do(router, http.MethodPost, "/transactions", string(raw))

			require.Equal(t, http.StatusBadRequest, w.Code)
			resp := decode[map[string][]string](t, w)
			require.Len(t, resp["errors"], 1)
			assert.True(t, strings.HasPrefix(resp["errors"][0], field+":"), resp["errors"][0])
		})
	}
}

func TestCreateTransaction_NotAnObject(t *testing.T) {
	router := newTestRouter(t, nil)

	w := do(router, http.MethodPost, "/transactions", `[1,2,3]`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"errors":["body: must be a JSON object"]}`, w.Body.String())
}

func TestListTransactions_Empty(t *testing.T) {
	router := newTestRouter(t, nil)

	w := do(router, http.MethodGet, "/transactions", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestListTransactions_SortedByDateDescending(t *testing.T) {
	router := newTestRouter(t, nil)
	for _, date := range []string{"2024-02-01", "2024-05-01", "2023-11-20", "2024-03-15"} {
		create(t, router, txBody("t", 1, "expense", date))
	}

	w := do(router, http.MethodGet, "/transactions", "")
	require.Equal(t, http.StatusOK, w.Code)

	var dates []string
	for _, tx := range decode[[]models.Transaction](t, w) {
		dates = append(dates, tx.Date)
	}
	assert.Equal(t, []string{"2024-05-01", "2024-03-15", "2024-02-01", "2023-11-20"}, dates)
}

func TestGetTransaction(t *testing.T) {
	router := newTestRouter(t, nil)
	created := create(t, router, txBody("Rent", 900, "expense", "2024-01-01"))

	w := do(router, http.MethodGet, "/transactions/"+created.ID, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, created, decode[models.Transaction](t, w))

	w = do(router, http.MethodGet, "/transactions/nope", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"Transaction 'nope' not found"}`, w.Body.String())
}

func TestUpdateTransaction_PreservesIDAndCreatedAt(t *testing.T) {
	router := newTestRouter(t, nil)
	created := create(t, router, txBody("Rent", 900, "expense", "2024-01-01"))

	w := do(router, http.MethodPatch, "/transactions/"+created.ID,
		`{"id":"other","createdAt":"2000-01-01T00:00:00.000Z","amount":950,"category":"Housing"}`)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	updated := decode[models.Transaction](t, w)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
	assert.Equal(t, 950.0, updated.Amount)
	assert.Equal(t, "Housing", updated.Category)
	assert.Equal(t, "Rent", updated.Title)
}

func TestUpdateTransaction_Errors(t *testing.T) {
	router := newTestRouter(t, nil)
	created := create(t, router, txBody("Rent", 900, "expense", "2024-01-01"))

	w := do(router, http.MethodPatch, "/transactions/"+created.ID, `{"amount":-5}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"errors":["amount: must be a positive number"]}`, w.Body.String())

	w = do(router, http.MethodPatch, "/transactions/missing", `{"amount":5}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"Transaction 'missing' not found"}`, w.Body.String())
}

func TestDeleteTransaction(t *testing.T) {
	router := newTestRouter(t, nil)
	created := create(t, router, txBody("Rent", 900, "expense", "2024-01-01"))

	w := do(router, http.MethodDelete, "/transactions/"+created.ID, "")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())

	w = do(router, http.MethodGet, "/transactions/"+created.ID, "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(router, http.MethodDelete, "/transactions/"+created.ID, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSummary(t *testing.T) {
	router := newTestRouter(t, nil)
	create(t, router, txBody("Pay", 100, "income", "2024-01-01"))
	create(t, router, txBody("Food", 40, "expense", "2024-01-02"))

	w := do(router, http.MethodGet, "/summary", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"totalIncome":100,"totalExpenses":40,"netBalance":60}`, w.Body.String())
}

func TestSummary_RoundsFloatingInputs(t *testing.T) {
	router := newTestRouter(t, nil)
	create(t, router, txBody("a", 0.1, "income", "2024-01-01"))
	create(t, router, txBody("b", 0.2, "income", "2024-01-01"))

	w := do(router, http.MethodGet, "/summary", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "0.30000000000000004")
	assert.JSONEq(t, `{"totalIncome":0.3,"totalExpenses":0,"netBalance":0.3}`, w.Body.String())
}

func TestCategorySummary(t *testing.T) {
	router := newTestRouter(t, nil)
	create(t, router, txBody("a", 10, "expense", "2024-01-01"))
	create(t, router, txBody("b", 15, "expense", "2024-01-01"))

	w := do(router, http.MethodGet, "/summary/categories", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[{"category":"General","type":"expense","total":25,"count":2}]`, w.Body.String())
}

func TestSuggestCategory(t *testing.T) {
	router := newTestRouter(t, nil)

	w := do(router, http.MethodGet, "/categories/suggest?title=Spotify+Premium", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"title":"Spotify Premium","category":"Entertainment"}`, w.Body.String())

	w = do(router, http.MethodGet, "/categories/suggest", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUnmatchedRoute(t *testing.T) {
	router := newTestRouter(t, nil)

	w := do(router, http.MethodGet, "/nowhere", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"Route GET /nowhere not found"}`, w.Body.String())

	w = do(router, http.MethodPut, "/transactions/abc", `{}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"Route PUT /transactions/abc not found"}`, w.Body.String())
}

func TestHealth(t *testing.T) {
	router := newTestRouter(t, nil)
	create(t, router, txBody("a", 10, "expense", "2024-01-01"))

	w := do(router, http.MethodGet, "/health", "")

	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[map[string]interface{}](t, w)
	assert.Equal(t, "healthy", resp["status"])
	assert.Equal(t, Version, resp["version"])
	assert.Equal(t, 1.0, resp["transactions"])
}

func TestRateLimit(t *testing.T) {
	router := newTestRouter(t, middleware.NewRateLimiter(2, time.Minute))

	assert.Equal(t, http.StatusOK, do(router, http.MethodGet, "/transactions", "").Code)
	assert.Equal(t, http.StatusOK, do(router, http.MethodGet, "/summary", "").Code)

	w := do(router, http.MethodGet, "/transactions", "")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Contains(t, w.Body.String(), "Rate limit exceeded")
}

func defaultConfig(t *testing.T) config.Config {
	t.Helper()
	for _, key := range []string{"FRONTEND_URL", "CORS_ALLOWED_ORIGINS", "RATE_LIMIT_REQUESTS", "RATE_LIMIT_WINDOW", "GIN_MODE"} {
		t.Setenv(key, "")
	}
	cfg, err := config.Load()
	require.NoError(t, err)
	return cfg
}

func TestDefaultConfig_NoRateLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := defaultConfig(t)
	router := NewRouter(cfg, Deps{
		Store:   services.NewTransactionStore(),
		Limiter: middleware.NewRateLimiter(cfg.RateLimit, cfg.RateWindow),
	})

	for i := 0; i < 250; i++ {
		w := do(router, http.MethodGet, "/transactions", "")
		require.Equal(t, http.StatusOK, w.Code, "request %d: %s", i+1, w.Body.String())
	}
}

func TestDefaultConfig_AllowsAnyOrigin(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := NewRouter(defaultConfig(t), Deps{Store: services.NewTransactionStore()})

	req := httptest.NewRequest(http.MethodGet, "/transactions", nil)
	req.Header.Set("Origin", "https://anywhere.example.org")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORSPreflight(t *testing.T) {
	router := newTestRouter(t, nil)

	req := httptest.NewRequest(http.MethodOptions, "/transactions", nil)
	req.Header.Set("Origin", frontendOrigin)
	req.Header.Set("Access-Control-Request-Method", http.MethodPatch)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, frontendOrigin, w.Header().Get("Access-Control-Allow-Origin"))
}
