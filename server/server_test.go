package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestServer builds a Server and serves its handler from an httptest
// listener, so no fixed port is needed.
func newTestServer(t *testing.T, opts Options) (*Server, *httptest.Server) {
	t.Helper()
	if opts.Addr == "" {
		opts.Addr = "127.0.0.1:0"
	}
	srv, err := New(opts)
	require.NoError(t, err)

	ts := httptest.NewServer(srv.httpServer.Handler)
	t.Cleanup(ts.Close)
	return srv, ts
}

func postRPC(t *testing.T, url, token, payload string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(http.MethodPost, url+"/rpc", strings.NewReader(payload))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func decodeRPC(t *testing.T, resp *http.Response) JSONRPCResponse {
	t.Helper()
	defer resp.Body.Close()

	var jsonResp JSONRPCResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&jsonResp))
	return jsonResp
}

func errorMap(t *testing.T, jsonResp JSONRPCResponse) map[string]interface{} {
	t.Helper()
	require.NotNil(t, jsonResp.Error, "Expected error in response")

	m, ok := jsonResp.Error.(map[string]interface{})
	require.True(t, ok, "Expected error to be map, got %T", jsonResp.Error)
	return m
}

func TestNewNormalizesAddr(t *testing.T) {
	srv, err := New(Options{Addr: "12001"})
	require.NoError(t, err)
	assert.Equal(t, ":12001", srv.httpServer.Addr)

	srv, err = New(Options{Addr: "localhost:9000"})
	require.NoError(t, err)
	assert.Equal(t, "localhost:9000", srv.httpServer.Addr)

	_, err = New(Options{Addr: "not-a-port"})
	assert.Error(t, err)
}

func TestRootEndpoint(t *testing.T) {
	_, ts := newTestServer(t, Options{})

	resp, err := http.Get(ts.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, 200, resp.StatusCode)

	var data map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&data))
	assert.Equal(t, "ok", data["status"])
}

func TestRPCRejectsGet(t *testing.T) {
	_, ts := newTestServer(t, Options{})

	resp, err := http.Get(ts.URL + "/rpc")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, 405, resp.StatusCode)
}

func TestJSONRPCValidation(t *testing.T) {
	_, ts := newTestServer(t, Options{})

	tests := []struct {
		name         string
		payload      string
		expectedCode float64
		expectedData string
	}{
		{
			name:         "empty body returns parse error",
			payload:      "",
			expectedCode: float64(ErrCodeParseError),
			expectedData: "expecting jsonrpc payload",
		},
		{
			name:         "invalid json returns parse error",
			payload:      `{invalid json}`,
			expectedCode: float64(ErrCodeParseError),
			expectedData: "expecting jsonrpc payload",
		},
		{
			name:         "wrong jsonrpc version",
			payload:      `{"jsonrpc":"1.0","method":"devices","id":1}`,
			expectedCode: float64(ErrCodeInvalidRequest),
			expectedData: "'jsonrpc' must be '2.0'",
		},
		{
			name:         "missing id field",
			payload:      `{"jsonrpc":"2.0","method":"devices"}`,
			expectedCode: float64(ErrCodeInvalidRequest),
			expectedData: "'id' field is required",
		},
		{
			name:         "missing method field",
			payload:      `{"jsonrpc":"2.0","id":1}`,
			expectedCode: float64(ErrCodeInvalidRequest),
			expectedData: "'method' is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := postRPC(t, ts.URL, "", tt.payload)
			assert.Equal(t, 200, resp.StatusCode)

			jsonResp := decodeRPC(t, resp)
			assert.Equal(t, "2.0", jsonResp.JSONRPC)

			errMap := errorMap(t, jsonResp)
			assert.Equal(t, tt.expectedCode, errMap["code"])
			assert.Equal(t, tt.expectedData, errMap["data"])
		})
	}
}

func TestMethodNotFound(t *testing.T) {
	_, ts := newTestServer(t, Options{})

	resp := postRPC(t, ts.URL, "", `{"jsonrpc":"2.0","method":"unknown_method","id":1}`)
	jsonResp := decodeRPC(t, resp)

	errMap := errorMap(t, jsonResp)
	assert.Equal(t, float64(ErrCodeMethodNotFound), errMap["code"])
}

func TestInvalidParamsOverHTTP(t *testing.T) {
	_, ts := newTestServer(t, Options{})

	// apps_install validates before touching any device
	resp := postRPC(t, ts.URL, "", `{"jsonrpc":"2.0","method":"apps_install","params":{},"id":7}`)
	jsonResp := decodeRPC(t, resp)

	assert.Equal(t, float64(7), jsonResp.ID)
	errMap := errorMap(t, jsonResp)
	assert.Equal(t, float64(ErrCodeInvalidParams), errMap["code"])
}

func TestTokenAuth(t *testing.T) {
	_, ts := newTestServer(t, Options{Token: "sekrit"})

	t.Run("banner stays open", func(t *testing.T) {
		resp, err := http.Get(ts.URL)
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, 200, resp.StatusCode)
	})

	t.Run("rpc without token is rejected", func(t *testing.T) {
		resp := postRPC(t, ts.URL, "", `{"jsonrpc":"2.0","method":"unknown","id":1}`)
		defer resp.Body.Close()
		assert.Equal(t, 401, resp.StatusCode)
	})

	t.Run("rpc with wrong token is rejected", func(t *testing.T) {
		resp := postRPC(t, ts.URL, "wrong", `{"jsonrpc":"2.0","method":"unknown","id":1}`)
		defer resp.Body.Close()
		assert.Equal(t, 401, resp.StatusCode)
	})

	t.Run("rpc with token reaches dispatch", func(t *testing.T) {
		resp := postRPC(t, ts.URL, "sekrit", `{"jsonrpc":"2.0","method":"unknown","id":1}`)
		jsonResp := decodeRPC(t, resp)

		errMap := errorMap(t, jsonResp)
		assert.Equal(t, float64(ErrCodeMethodNotFound), errMap["code"])
	})
}

func TestShutdownMethod(t *testing.T) {
	_, ts := newTestServer(t, Options{})

	resp := postRPC(t, ts.URL, "", `{"jsonrpc":"2.0","method":"server.shutdown","id":1}`)
	jsonResp := decodeRPC(t, resp)

	require.Nil(t, jsonResp.Error)
	resultMap, ok := jsonResp.Result.(map[string]interface{})
	require.True(t, ok, "Expected result to be map, got %T", jsonResp.Result)
	assert.Equal(t, "ok", resultMap["status"])
}

func TestErrCodeFor(t *testing.T) {
	assert.Equal(t, ErrCodeInvalidParams, errCodeFor(invalidParams("'path' is required")))
	assert.Equal(t, ErrCodeServerError, errCodeFor(errors.New("device not found")))
}

// TestHandlerParamValidation calls handlers directly with bad params; each
// one must fail before any device is contacted.
func TestHandlerParamValidation(t *testing.T) {
	tests := []struct {
		name    string
		handler HandlerFunc
		params  string
	}{
		{"install without path", handleAppsInstall, `{}`},
		{"install without params", handleAppsInstall, ``},
		{"uninstall without package", handleAppsUninstall, `{"device":"x"}`},
		{"launch without package", handleAppsLaunch, `{}`},
		{"terminate without package", handleAppsTerminate, `{}`},
		{"cleardata without package", handleAppsClearData, `{}`},
		{"shell without command", handleShell, `{"device":"x"}`},
		{"push without paths", handlePush, `{"local":"a.txt"}`},
		{"pull without remote", handlePull, `{}`},
		{"workflow run without name", handleWorkflowRun, `{}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.handler(context.Background(), json.RawMessage(tt.params))
			require.Error(t, err)
			assert.Equal(t, ErrCodeInvalidParams, errCodeFor(err))
		})
	}
}

func TestSendBanner(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	w := httptest.NewRecorder()

	sendBanner(w, req)

	resp := w.Result()
	defer resp.Body.Close()

	assert.Equal(t, 200, resp.StatusCode)

	var data map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&data))
	assert.Equal(t, "ok", data["status"])
}

func TestSendJSONRPCResponse(t *testing.T) {
	w := httptest.NewRecorder()
	testData := map[string]string{"test": "data"}

	sendJSONRPCResponse(w, 123, testData)

	resp := w.Result()
	defer resp.Body.Close()

	var jsonResp JSONRPCResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&jsonResp))

	assert.Equal(t, "2.0", jsonResp.JSONRPC)
	assert.Equal(t, float64(123), jsonResp.ID)

	resultMap, ok := jsonResp.Result.(map[string]interface{})
	require.True(t, ok, "Expected result to be map, got %T", jsonResp.Result)
	assert.Equal(t, "data", resultMap["test"])
}

func TestSendJSONRPCError(t *testing.T) {
	w := httptest.NewRecorder()

	sendJSONRPCError(w, 456, ErrCodeMethodNotFound, "Method not found", "Test method")

	resp := w.Result()
	defer resp.Body.Close()

	var jsonResp JSONRPCResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&jsonResp))

	assert.Equal(t, "2.0", jsonResp.JSONRPC)
	assert.Equal(t, float64(456), jsonResp.ID)

	errMap := errorMap(t, jsonResp)
	assert.Equal(t, float64(ErrCodeMethodNotFound), errMap["code"])
	assert.Equal(t, "Method not found", errMap["message"])
	assert.Equal(t, "Test method", errMap["data"])
}

func TestCORSMiddleware(t *testing.T) {
	testHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("test"))
	})

	corsHandler := corsMiddleware(testHandler)

	tests := []struct {
		name   string
		method string
	}{
		{"GET request", "GET"},
		{"POST request", "POST"},
		{"OPTIONS request", "OPTIONS"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/", nil)
			w := httptest.NewRecorder()

			corsHandler.ServeHTTP(w, req)

			resp := w.Result()
			defer resp.Body.Close()

			assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
			assert.Equal(t, "POST, GET, OPTIONS", resp.Header.Get("Access-Control-Allow-Methods"))

			if tt.method == "OPTIONS" {
				assert.Equal(t, 200, resp.StatusCode)
			}
		})
	}
}
