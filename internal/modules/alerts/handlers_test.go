package alerts

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockwatch/internal/cache"
)

func newTestRouter(t *testing.T, c cache.Cache) (chi.Router, *SQLiteConditionStore) {
	t.Helper()

	store := newTestStore(t)
	handlers := NewHandlers(store, c, zerolog.Nop())

	router := chi.NewRouter()
	handlers.RegisterRoutes(router)
	return router, store
}

func TestHandleHealth(t *testing.T) {
	router, _ := newTestRouter(t, cache.NewMemory())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Alert Management Service Running", rec.Body.String())
}

func TestHandleListTriggered(t *testing.T) {
	ctx := context.Background()
	c := cache.NewMemory()
	router, _ := newTestRouter(t, c)

	live := TriggeredAlert{
		AlertID:     "a1",
		StockSymbol: "AAPL",
		Price:       150.0,
		Condition:   ConditionAbove,
		Threshold:   140.0,
	}
	payload, err := json.Marshal(live)
	require.NoError(t, err)
	require.NoError(t, c.Set(ctx, cache.AlertKey("a1"), payload, time.Minute))

	// Expired entries disappear from the listing
	require.NoError(t, c.Set(ctx, cache.AlertKey("a2"), payload, time.Millisecond))
	time.Sleep(5 * time.Millisecond)

	// Keys outside the alert namespace are never listed
	require.NoError(t, c.Set(ctx, cache.PriceKey("AAPL"), []byte("150.0"), time.Minute))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/alerts", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var alerts []TriggeredAlert
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &alerts))
	require.Len(t, alerts, 1)
	assert.Equal(t, live, alerts[0])
}

func TestHandleListTriggered_Empty(t *testing.T) {
	router, _ := newTestRouter(t, cache.NewMemory())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/alerts", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())
}

func TestHandleCreateCondition(t *testing.T) {
	router, store := newTestRouter(t, cache.NewMemory())

	body := `{"alert_id":"a1","stock_symbol":"AAPL","condition_type":"above","threshold":140.0}`
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/alert", bytes.NewBufferString(body)))

	require.Equal(t, http.StatusCreated, rec.Code)
	var resp struct {
		Message string         `json:"message"`
		Alert   AlertCondition `json:"alert"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Alert condition created", resp.Message)
	assert.Equal(t, "a1", resp.Alert.AlertID)

	conditions, err := store.List(context.Background())
	require.NoError(t, err)
	require.Len(t, conditions, 1)
	assert.Equal(t, "AAPL", conditions[0].StockSymbol)
}

func TestHandleCreateCondition_Invalid(t *testing.T) {
	router, _ := newTestRouter(t, cache.NewMemory())

	cases := []struct {
		name string
		body string
	}{
		{"malformed JSON", `{not json`},
		{"missing alert_id", `{"stock_symbol":"AAPL","condition_type":"above","threshold":140.0}`},
		{"missing symbol", `{"alert_id":"a1","condition_type":"above","threshold":140.0}`},
		{"unknown condition type", `{"alert_id":"a1","stock_symbol":"AAPL","condition_type":"crosses","threshold":140.0}`},
	}
	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/alert", bytes.NewBufferString(tt.body)))

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			var resp map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.NotEmpty(t, resp["error"])
		})
	}
}

func TestHandleListConditions(t *testing.T) {
	router, store := newTestRouter(t, cache.NewMemory())

	require.NoError(t, store.Put(context.Background(), AlertCondition{
		AlertID: "a1", StockSymbol: "AAPL", ConditionType: ConditionAbove, Threshold: 140.0,
	}))
	require.NoError(t, store.Put(context.Background(), AlertCondition{
		AlertID: "a2", StockSymbol: "MSFT", ConditionType: ConditionBelow, Threshold: 300.0,
	}))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/alert", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var conditions []AlertCondition
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &conditions))
	assert.Len(t, conditions, 2)
}

func TestHandleDeleteCondition(t *testing.T) {
	router, store := newTestRouter(t, cache.NewMemory())

	require.NoError(t, store.Put(context.Background(), AlertCondition{
		AlertID: "a1", StockSymbol: "AAPL", ConditionType: ConditionAbove, Threshold: 140.0,
	}))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/alert?alert_id=a1", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	conditions, err := store.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, conditions)
}

func TestHandleDeleteCondition_MissingID(t *testing.T) {
	router, _ := newTestRouter(t, cache.NewMemory())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/alert", nil))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "alert_id is required", resp["error"])
}
