package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func wsURL(ts *httptest.Server) string {
	return "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
}

func dialWS(t *testing.T, ts *httptest.Server, header http.Header) *websocket.Conn {
	t.Helper()
	conn, resp, err := websocket.DefaultDialer.Dial(wsURL(ts), header)
	require.NoError(t, err)
	if resp != nil {
		resp.Body.Close()
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readRPC(t *testing.T, conn *websocket.Conn) JSONRPCResponse {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))

	var jsonResp JSONRPCResponse
	require.NoError(t, conn.ReadJSON(&jsonResp))
	return jsonResp
}

func TestWebSocketEnvelopeValidation(t *testing.T) {
	_, ts := newTestServer(t, Options{})
	conn := dialWS(t, ts, nil)

	tests := []struct {
		name         string
		payload      string
		expectedCode float64
	}{
		{"invalid json", `{not json}`, float64(ErrCodeParseError)},
		{"wrong version", `{"jsonrpc":"1.0","method":"devices","id":1}`, float64(ErrCodeInvalidRequest)},
		{"missing id", `{"jsonrpc":"2.0","method":"devices"}`, float64(ErrCodeInvalidRequest)},
		{"missing method", `{"jsonrpc":"2.0","id":1}`, float64(ErrCodeInvalidRequest)},
		{"unknown method", `{"jsonrpc":"2.0","method":"nope","id":1}`, float64(ErrCodeMethodNotFound)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(tt.payload)))

			jsonResp := readRPC(t, conn)
			errMap := errorMap(t, jsonResp)
			assert.Equal(t, tt.expectedCode, errMap["code"])
		})
	}
}

func TestWebSocketRejectsBinaryMessages(t *testing.T) {
	_, ts := newTestServer(t, Options{})
	conn := dialWS(t, ts, nil)

	require.NoError(t, conn.WriteMessage(websocket.BinaryMessage, []byte{0x01, 0x02}))

	jsonResp := readRPC(t, conn)
	errMap := errorMap(t, jsonResp)
	assert.Equal(t, float64(ErrCodeInvalidRequest), errMap["code"])
	assert.Equal(t, "only text messages accepted for requests", errMap["data"])
}

func TestWebSocketInvalidParams(t *testing.T) {
	_, ts := newTestServer(t, Options{})
	conn := dialWS(t, ts, nil)

	require.NoError(t, conn.WriteMessage(websocket.TextMessage,
		[]byte(`{"jsonrpc":"2.0","method":"apps_install","params":{},"id":3}`)))

	jsonResp := readRPC(t, conn)
	assert.Equal(t, float64(3), jsonResp.ID)

	errMap := errorMap(t, jsonResp)
	assert.Equal(t, float64(ErrCodeInvalidParams), errMap["code"])
}

func TestWebSocketAuth(t *testing.T) {
	_, ts := newTestServer(t, Options{Token: "sekrit"})

	t.Run("without token handshake fails", func(t *testing.T) {
		conn, resp, err := websocket.DefaultDialer.Dial(wsURL(ts), nil)
		require.Error(t, err)
		if resp != nil {
			assert.Equal(t, 401, resp.StatusCode)
			resp.Body.Close()
		}
		if conn != nil {
			conn.Close()
		}
	})

	t.Run("with token handshake succeeds", func(t *testing.T) {
		header := http.Header{"Authorization": []string{"Bearer sekrit"}}
		conn := dialWS(t, ts, header)

		require.NoError(t, conn.WriteMessage(websocket.TextMessage,
			[]byte(`{"jsonrpc":"2.0","method":"nope","id":1}`)))

		jsonResp := readRPC(t, conn)
		errMap := errorMap(t, jsonResp)
		assert.Equal(t, float64(ErrCodeMethodNotFound), errMap["code"])
	})
}

func TestShutdownDrainsWebSocketConnections(t *testing.T) {
	srv, ts := newTestServer(t, Options{})
	conn := dialWS(t, ts, nil)

	// round-trip once so the server side is past connection tracking
	require.NoError(t, conn.WriteMessage(websocket.TextMessage,
		[]byte(`{"jsonrpc":"2.0","method":"nope","id":1}`)))
	readRPC(t, conn)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, srv.Shutdown(ctx))

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, _, err := conn.ReadMessage()
	assert.Error(t, err, "Expected connection to be closed by server")
}

func TestIsSameOrigin(t *testing.T) {
	tests := []struct {
		name   string
		origin string
		host   string
		want   bool
	}{
		{"no origin header", "", "example.com", true},
		{"same host", "http://example.com", "example.com", true},
		{"different host", "http://evil.com", "example.com", false},
		{"unparseable origin", "://bad", "example.com", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/ws", nil)
			req.Host = tt.host
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}

			assert.Equal(t, tt.want, isSameOrigin(req))
		})
	}
}
