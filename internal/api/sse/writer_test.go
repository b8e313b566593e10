package sse_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/selectchat/chat-service/internal/api/sse"
)

// noFlushWriter wraps a ResponseWriter to hide the Flusher interface.
type noFlushWriter struct {
	http.ResponseWriter
}

func newTestWriter(t *testing.T) (*sse.Writer, *httptest.ResponseRecorder) {
	t.Helper()
	rec := httptest.NewRecorder()
	w, err := sse.NewWriter(rec)
	require.NoError(t, err)
	return w, rec
}

// parseSingleEvent decodes the data payload of the only event in the body.
func parseSingleEvent(t *testing.T, body string) (eventType string, msg sse.StreamMessage) {
	t.Helper()
	lines := strings.Split(strings.TrimSpace(body), "\n")
	require.Len(t, lines, 2)
	eventType = strings.TrimPrefix(lines[0], "event: ")
	require.NoError(t, json.Unmarshal([]byte(strings.TrimPrefix(lines[1], "data: ")), &msg))
	return eventType, msg
}

func TestNewWriterSetsSSEHeaders(t *testing.T) {
	// Arrange / Act
	_, rec := newTestWriter(t)

	// Assert
	assert.Equal(t, "text/event-stream", rec.Header().Get("Content-Type"))
	assert.Equal(t, "no-cache", rec.Header().Get("Cache-Control"))
	assert.Equal(t, "keep-alive", rec.Header().Get("Connection"))
	assert.Equal(t, "no", rec.Header().Get("X-Accel-Buffering"))
}

func TestNewWriterRequiresFlusher(t *testing.T) {
	_, err := sse.NewWriter(noFlushWriter{httptest.NewRecorder()})

	assert.Error(t, err)
}

func TestWriteEventFraming(t *testing.T) {
	// Arrange
	w, rec := newTestWriter(t)

	// Act
	require.NoError(t, w.WriteEvent(sse.EventMessage, `{"hello":"world"}`))

	// Assert
	assert.Equal(t, "event: message\ndata: {\"hello\":\"world\"}\n\n", rec.Body.String())
}

func TestWriteStreamStartCarriesFeatureID(t *testing.T) {
	// Arrange
	w, rec := newTestWriter(t)

	// Act
	require.NoError(t, w.WriteStreamStart("summarize"))

	// Assert
	eventType, msg := parseSingleEvent(t, rec.Body.String())
	assert.Equal(t, "message", eventType)
	assert.Equal(t, sse.StreamTypeStart, msg.Type)
	assert.Equal(t, "summarize", msg.Config["featureId"])
}

func TestWriteSnapshotCarriesPayload(t *testing.T) {
	// Arrange
	w, rec := newTestWriter(t)
	payload := map[string]interface{}{"isLoading": true}

	// Act
	require.NoError(t, w.WriteSnapshot(payload))

	// Assert
	_, msg := parseSingleEvent(t, rec.Body.String())
	assert.Equal(t, sse.StreamTypeSnapshot, msg.Type)
	data, ok := msg.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, true, data["isLoading"])
}

func TestWriteStreamEnd(t *testing.T) {
	// Arrange
	w, rec := newTestWriter(t)

	// Act
	require.NoError(t, w.WriteStreamEnd())

	// Assert
	_, msg := parseSingleEvent(t, rec.Body.String())
	assert.Equal(t, sse.StreamTypeEnd, msg.Type)
}

func TestWriteStreamError(t *testing.T) {
	// Arrange
	w, rec := newTestWriter(t)

	// Act
	require.NoError(t, w.WriteStreamError("UPSTREAM_ERROR", "provider unavailable", "dial timeout"))

	// Assert
	_, msg := parseSingleEvent(t, rec.Body.String())
	assert.Equal(t, sse.StreamTypeError, msg.Type)
	assert.Equal(t, "UPSTREAM_ERROR", msg.Config["code"])
	assert.Equal(t, "provider unavailable", msg.Config["message"])
}

func TestWriteErrorEvent(t *testing.T) {
	// Arrange
	w, rec := newTestWriter(t)

	// Act
	require.NoError(t, w.WriteError("BAD_REQUEST", "invalid payload", ""))

	// Assert
	body := rec.Body.String()
	assert.True(t, strings.HasPrefix(body, "event: error\n"))
	assert.Contains(t, body, `"code":"BAD_REQUEST"`)
}

func TestWriteDone(t *testing.T) {
	// Arrange
	w, rec := newTestWriter(t)

	// Act
	require.NoError(t, w.WriteDone())

	// Assert
	assert.Equal(t, "event: done\ndata: stream completed\n\n", rec.Body.String())
}
