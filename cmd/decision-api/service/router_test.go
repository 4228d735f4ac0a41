// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/linuxfoundation/lfx-v2-decision-service/pkg/constants"
)

func TestRouter_SpanNamesFollowRoutes(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })

	api := newTestAPI(t)
	handler := otelhttp.NewHandler(api.router, constants.ServiceName,
		otelhttp.WithTracerProvider(provider),
		otelhttp.WithSpanNameFormatter(SpanName),
	)

	tests := []struct {
		method   string
		path     string
		expected string
	}{
		{method: http.MethodGet, path: "/livez", expected: "GET /livez"},
		{method: http.MethodGet, path: "/decisions/7/tally", expected: "GET /decisions/:position/tally"},
		{method: http.MethodGet, path: "/decisions/42/tally", expected: "GET /decisions/:position/tally"},
		{method: http.MethodPost, path: "/decisions/17/votes", expected: "POST /decisions/:position/votes"},
		{method: http.MethodGet, path: "/nowhere", expected: "GET unmatched"},
	}

	for _, tt := range tests {
		req := httptest.NewRequest(tt.method, tt.path, nil)
		handler.ServeHTTP(httptest.NewRecorder(), req)
	}

	spans := recorder.Ended()
	require.Len(t, spans, len(tests))
	for i, tt := range tests {
		assert.Equal(t, tt.expected, spans[i].Name(), tt.path)
	}
}
