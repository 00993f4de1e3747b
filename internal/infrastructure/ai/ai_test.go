package ai

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"json puro", `{"vendor":"X"}`, `{"vendor":"X"}`},
		{"bloque markdown", "```json\n{\"vendor\":\"X\"}\n```", `{"vendor":"X"}`},
		{"texto alrededor", `Aquí está: {"vendor":"X"} listo`, `{"vendor":"X"}`},
		{"sin json", "no pude leer la imagen", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, extractJSON(tt.in))
		})
	}
}

func TestParseInvoiceJSON_MontosComoTexto(t *testing.T) {
	g, err := parseInvoiceJSON(`{"vendor":"Colmado","amount":"RD$ 1,000.00","tax":180,"total":"1,180.00","date":"2026-03-01","category":"Alimentación"}`)
	require.NoError(t, err)
	assert.Equal(t, "Colmado", g.Vendor)
	assert.Equal(t, "1000.00", g.Amount.StringFixed(2))
	assert.Equal(t, "180.00", g.Tax.StringFixed(2))
	assert.Equal(t, "1180.00", g.Total.StringFixed(2))

	g, err = parseInvoiceJSON(`{"vendor":"X","total":"ilegible","tax":null}`)
	require.NoError(t, err)
	assert.True(t, g.Total.IsZero())
	assert.True(t, g.Tax.IsZero())

	// 0.1 + 0.2 suma exactamente 0.3.
	g, err = parseInvoiceJSON(`{"amount":0.1,"tax":0.2}`)
	require.NoError(t, err)
	assert.True(t, g.Amount.Add(g.Tax).Equal(decimal.RequireFromString("0.3")))

	_, err = parseInvoiceJSON("lo siento")
	assert.Error(t, err)
}

func TestGeminiExtractor(t *testing.T) {
	var got geminiRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1beta/models/gemini-2.0-flash:generateContent", r.URL.Path)
		assert.Equal(t, "k", r.Header.Get("x-goog-api-key"))
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &got))
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"{\"vendor\":\"Uber\",\"amount\":10,\"tax\":1.8,\"total\":11.8,\"date\":\"2026-03-02\",\"category\":\"Transporte\"}"}]}}]}`))
	}))
	defer srv.Close()

	g, err := NewGeminiExtractor("k", "gemini-2.0-flash").WithBaseURL(srv.URL).
		ExtractInvoice(context.Background(), []byte("img"), "image/png")
	require.NoError(t, err)
	assert.Equal(t, "Uber", g.Vendor)
	assert.Equal(t, "11.8", g.Total.String())

	require.Len(t, got.Contents, 1)
	require.Len(t, got.Contents[0].Parts, 2)
	require.NotNil(t, got.Contents[0].Parts[1].InlineData)
	assert.Equal(t, "image/png", got.Contents[0].Parts[1].InlineData.MimeType)
	assert.Equal(t, "aW1n", got.Contents[0].Parts[1].InlineData.Data)
	assert.Equal(t, "application/json", got.GenerationConfig.ResponseMIMEType)
}

func TestGeminiExtractor_ErrorDeAPI(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"code":429,"message":"quota"}}`))
	}))
	defer srv.Close()

	_, err := NewGeminiExtractor("k", "m").WithBaseURL(srv.URL).ExtractInvoice(context.Background(), []byte("x"), "image/jpeg")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "quota")

	_, err = NewGeminiExtractor("", "m").ExtractInvoice(context.Background(), []byte("x"), "image/jpeg")
	assert.True(t, errors.Is(err, ErrNoAPIKey))
}

func TestAnthropicExtractor(t *testing.T) {
	var got anthropicRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/messages", r.URL.Path)
		assert.Equal(t, anthropicVersion, r.Header.Get("anthropic-version"))
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &got))
		_, _ = w.Write([]byte(`{"content":[{"type":"text","text":"` + "```json\\n{\\\"vendor\\\":\\\"Farmacia\\\",\\\"total\\\":50}\\n```" + `"}]}`))
	}))
	defer srv.Close()

	g, err := NewAnthropicExtractor("k", "claude").WithBaseURL(srv.URL).
		ExtractInvoice(context.Background(), []byte("img"), "image/jpeg")
	require.NoError(t, err)
	assert.Equal(t, "Farmacia", g.Vendor)
	assert.True(t, g.Total.Equal(decimal.NewFromInt(50)))

	require.Len(t, got.Messages, 1)
	require.NotEmpty(t, got.Messages[0].Content)
	assert.Equal(t, "image", got.Messages[0].Content[0].Type)
	assert.Equal(t, "image/jpeg", got.Messages[0].Content[0].Source.MediaType)
}

func TestGeminiExtractor_Cancelacion(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err := NewGeminiExtractor("k", "m").WithBaseURL(srv.URL).ExtractInvoice(ctx, []byte("x"), "image/jpeg")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
