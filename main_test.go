package main

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.opentelemetry.io/contrib/propagators/b3"
	"go.opentelemetry.io/otel"
)

func TestInitPropagationLeavesDefaultTransport(t *testing.T) {
	prev := otel.GetTextMapPropagator()
	t.Cleanup(func() { otel.SetTextMapPropagator(prev) })

	initPropagation()
	assert.IsType(t, &http.Transport{}, http.DefaultTransport)
	assert.IsType(t, b3.New(), otel.GetTextMapPropagator())
}
