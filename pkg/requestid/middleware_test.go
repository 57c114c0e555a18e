package requestid_test

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/numstr/pkg/logger"
	"github.com/dmitrymomot/numstr/pkg/requestid"
)

func serve(t *testing.T, incoming string) (seen string, echoed string) {
	t.Helper()
	handler := requestid.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = requestid.FromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	req := httptest.NewRequest(http.MethodPost, "/v1/validate", nil)
	if incoming != "" {
		req.Header.Set(requestid.Header, incoming)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusNoContent, rec.Code)
	return seen, rec.Header().Get(requestid.Header)
}

func TestMiddleware(t *testing.T) {
	t.Parallel()

	t.Run("generates an id", func(t *testing.T) {
		t.Parallel()
		seen, echoed := serve(t, "")
		assert.Equal(t, seen, echoed)
		_, err := uuid.Parse(seen)
		assert.NoError(t, err)
	})

	t.Run("keeps a valid incoming id", func(t *testing.T) {
		t.Parallel()
		seen, echoed := serve(t, "client-id_123")
		assert.Equal(t, "client-id_123", seen)
		assert.Equal(t, "client-id_123", echoed)
	})

	for name, id := range map[string]string{
		"invalid characters": "id@host",
		"spaces":             "some id",
		"slashes":            "a/b",
		"too long":           strings.Repeat("a", 129),
	} {
		t.Run("replaces "+name, func(t *testing.T) {
			t.Parallel()
			seen, echoed := serve(t, id)
			assert.NotEqual(t, id, seen)
			assert.Equal(t, seen, echoed)
			_, err := uuid.Parse(seen)
			assert.NoError(t, err)
		})
	}

	t.Run("accepts the maximum length", func(t *testing.T) {
		t.Parallel()
		id := strings.Repeat("a", 128)
		seen, _ := serve(t, id)
		assert.Equal(t, id, seen)
	})
}

func TestFromContext(t *testing.T) {
	t.Parallel()
	assert.Empty(t, requestid.FromContext(context.Background()))
	assert.Equal(t, "abc", requestid.FromContext(requestid.WithContext(context.Background(), "abc")))
}

func TestLogExtractor(t *testing.T) {
	t.Parallel()
	buf := &bytes.Buffer{}
	log := logger.New(logger.WithOutput(buf), logger.WithContextExtractors(requestid.LogExtractor()))

	log.InfoContext(context.Background(), "without id")
	assert.NotContains(t, buf.String(), "request_id")

	buf.Reset()
	log.InfoContext(requestid.WithContext(context.Background(), "abc"), "with id")
	assert.Contains(t, buf.String(), `"request_id":"abc"`)
}

func TestGenerate(t *testing.T) {
	t.Parallel()
	a, b := requestid.Generate(), requestid.Generate()
	assert.NotEqual(t, a, b)
	assert.Len(t, a, 36)
}
