package util

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/contrib/propagators/b3"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"
)

func TestChat(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		_ = json.NewEncoder(w).Encode(map[string]string{"response": "echo: " + body["message"]})
	}))
	defer srv.Close()

	answer, err := NewHttpClient().Chat(context.Background(), srv.URL, "what is 2+2", "mathematics")
	require.NoError(t, err)
	assert.Equal(t, "echo: what is 2+2", answer)
}

func TestChatUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := NewHttpClient().Chat(context.Background(), srv.URL, "hi", "")
	assert.Error(t, err)
}

func TestChatMissingResponseField(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"other":1}`))
	}))
	defer srv.Close()

	_, err := NewHttpClient().Chat(context.Background(), srv.URL, "hi", "")
	assert.Error(t, err)
}

func TestChatRecordsOneClientSpan(t *testing.T) {
	prevTP, prevProp := otel.GetTracerProvider(), otel.GetTextMapPropagator()
	t.Cleanup(func() {
		otel.SetTracerProvider(prevTP)
		otel.SetTextMapPropagator(prevProp)
	})
	recorder := tracetest.NewSpanRecorder()
	otel.SetTracerProvider(sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder)))
	otel.SetTextMapPropagator(b3.New())

	var traceHeaders []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceHeaders = r.Header.Values("b3")
		_, _ = w.Write([]byte(`{"response":"ok"}`))
	}))
	defer srv.Close()

	_, err := NewHttpClient().Chat(context.Background(), srv.URL, "hi", "")
	require.NoError(t, err)

	clientSpans := 0
	for _, s := range recorder.Ended() {
		if s.SpanKind() == trace.SpanKindClient {
			clientSpans++
		}
	}
	assert.Equal(t, 1, clientSpans)
	assert.Len(t, traceHeaders, 1)
}
