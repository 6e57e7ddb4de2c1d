package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	orchestron "github.com/orchestron-dev/orchestron"
	"github.com/orchestron-dev/orchestron/internal/testutils"
	"github.com/orchestron-dev/orchestron/pkg/domain"
	"github.com/orchestron-dev/orchestron/pkg/observability"
)

func newTestHandler(t *testing.T) (http.Handler, *testutils.StubNode) {
	t.Helper()

	node := testutils.NewStub("echo", []domain.ParameterSpec{
		{Name: "msg", Type: domain.TypeString, Required: true},
	}, []string{"msg"})
	node.Result = domain.Success(map[string]any{"msg": "hi"})

	chain := domain.ChainSpec{
		Name:  "echo_once",
		Steps: []domain.ChainStep{{Node: "echo", Inputs: map[string]domain.Input{
			"msg": {Literal: "hi"},
		}}},
	}

	fw, err := orchestron.New(
		orchestron.WithNodes(node),
		orchestron.WithChains(map[string]domain.ChainSpec{"echo_once": chain}),
	)
	require.NoError(t, err)

	return NewHandler(fw), node
}

func TestGetHealth(t *testing.T) {
	handler, _ := newTestHandler(t)

	req := httptest.NewRequest("GET", "/healthz", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp["status"])
	assert.NotEmpty(t, resp["version"])
}

func TestListNodes(t *testing.T) {
	handler, _ := newTestHandler(t)

	req := httptest.NewRequest("GET", "/api/nodes", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var resp struct {
		Nodes []domain.Descriptor `json:"nodes"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.Len(t, resp.Nodes, 1)
	assert.Equal(t, "echo", resp.Nodes[0].Name)
}

func TestGetNode(t *testing.T) {
	handler, _ := newTestHandler(t)

	req := httptest.NewRequest("GET", "/api/nodes/echo", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)

	req = httptest.NewRequest("GET", "/api/nodes/ghost", nil)
	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestRunNode(t *testing.T) {
	handler, node := newTestHandler(t)

	req := httptest.NewRequest("POST", "/api/nodes/echo/run", strings.NewReader(`{"msg":"hi"}`))
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, 1, node.Calls())

	var resp struct {
		OK      bool           `json:"ok"`
		Payload map[string]any `json:"payload"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.True(t, resp.OK)
	assert.Equal(t, "hi", resp.Payload["msg"])
}

func TestRunNodeValidationFailure(t *testing.T) {
	handler, node := newTestHandler(t)

	req := httptest.NewRequest("POST", "/api/nodes/echo/run", strings.NewReader(`{}`))
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	assert.Equal(t, 0, node.Calls())

	var resp map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, false, resp["ok"])
	assert.Equal(t, string(domain.KindValidation), resp["kind"])
}

func TestRunNodeUnknown(t *testing.T) {
	handler, _ := newTestHandler(t)

	req := httptest.NewRequest("POST", "/api/nodes/ghost/run", strings.NewReader(`{}`))
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestRunNodeBadBody(t *testing.T) {
	handler, _ := newTestHandler(t)

	req := httptest.NewRequest("POST", "/api/nodes/echo/run", strings.NewReader(`{not json`))
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestRunChain(t *testing.T) {
	handler, _ := newTestHandler(t)

	req := httptest.NewRequest("POST", "/api/chains/echo_once/run", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var resp struct {
		Status    string         `json:"status"`
		Aggregate map[string]any `json:"aggregate"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "succeeded", resp.Status)
	assert.Equal(t, "success", resp.Aggregate["status"])
}

func TestRunChainUnknown(t *testing.T) {
	handler, _ := newTestHandler(t)

	req := httptest.NewRequest("POST", "/api/chains/ghost/run", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := observability.NewMetrics(reg)

	node := testutils.NewStub("m", nil, nil)
	fw, err := orchestron.New(
		orchestron.WithNodes(node),
		orchestron.WithMetrics(metrics),
	)
	require.NoError(t, err)

	handler := NewHandler(fw, WithGatherer(reg))

	req := httptest.NewRequest("POST", "/api/nodes/m/run", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)

	req = httptest.NewRequest("GET", "/metrics", nil)
	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "orchestron_node_executions_total")
}
