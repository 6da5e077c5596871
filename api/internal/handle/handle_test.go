package handle

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"viz-proxy/api/internal/engine"
	"viz-proxy/api/internal/store"
	"viz-proxy/api/internal/viz"
)

func testHandle() (*Handle, *store.MemStore) {
	mem := store.NewMemStore()
	h := New(engine.New(1), func(string) engine.KeyValueStore { return mem })
	return h, mem
}

func postJSON(t *testing.T, fn http.HandlerFunc, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	rec := httptest.NewRecorder()
	fn(rec, req)
	return rec
}

func TestProcessEndpoint(t *testing.T) {
	h, _ := testHandle()
	rec := postJSON(t, h.Process, `{"user_query":"monthly sales","response":"January: 45\nFebruary: 52"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	var res viz.Result
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, viz.SourceTime, res.Source)
	assert.Len(t, res.Records, 2)
}

func TestProcessRejectsBadRequests(t *testing.T) {
	h, _ := testHandle()

	rec := postJSON(t, h.Process, `not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = postJSON(t, h.Process, `{"user_query":"q"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	long := strings.Repeat("x", maxQueryLen+1)
	rec = postJSON(t, h.Process, `{"user_query":"`+long+`","response":"\"hi\""}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	h.Process(w, req)
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestChartsEndpointPersists(t *testing.T) {
	h, mem := testHandle()
	rec := postJSON(t, h.Charts, `{"user_query":"q","response":"Alpha: 1\nBeta: 2","session_id":"s1"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	var out ChartsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.True(t, out.Status.IsValid)
	assert.NotEmpty(t, out.Result.Records)

	assert.Len(t, mem.Keys(), len(viz.AllChartTypes)+1)
}

func TestChartsGetRoundTrip(t *testing.T) {
	h, _ := testHandle()

	// Nothing persisted yet.
	req := httptest.NewRequest(http.MethodGet, "/?chart=Bar", nil)
	rec := httptest.NewRecorder()
	h.Charts(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// Missing chart parameter.
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	rec = httptest.NewRecorder()
	h.Charts(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Persist, then read one projection back from the in-process cache.
	rec = postJSON(t, h.Charts, `{"user_query":"q","response":"Alpha: 1\nBeta: 2"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/?chart=Bar", nil)
	rec = httptest.NewRecorder()
	h.Charts(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var payload engine.ChartPayload
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.Equal(t, "Extracted Data", payload.Title)
	assert.NotNil(t, payload.Data)
}

func TestRecommendEndpoint(t *testing.T) {
	h, _ := testHandle()
	rec := postJSON(t, h.Recommend, `{"user_query":"market share breakdown","response":"A: 60%, B: 40%"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	var picks []viz.Recommendation
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &picks))
	require.Len(t, picks, 4)
	assert.Equal(t, viz.ChartDonut, picks[0].Chart)
	assert.Equal(t, viz.ChartWordCloud, picks[3].Chart)
}

func TestColorsEndpoint(t *testing.T) {
	h, _ := testHandle()
	req := httptest.NewRequest(http.MethodGet, "/?source="+strings.ReplaceAll(viz.SourceCurrency, " ", "%20"), nil)
	rec := httptest.NewRecorder()
	h.Colors(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var out struct {
		Source string   `json:"source"`
		Colors []string `json:"colors"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Equal(t, viz.SourceCurrency, out.Source)
	assert.Equal(t, viz.ColorScheme(viz.SourceCurrency), out.Colors)
}
