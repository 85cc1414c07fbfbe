package notify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendDigest(t *testing.T) {
	var received Digest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := NewWebhookClient(srv.URL)
	err := client.SendDigest(context.Background(), Digest{
		Subject: "Venue results for March 2025",
		Lines:   []string{"Total revenue: $2,445"},
	})
	require.NoError(t, err)

	assert.Equal(t, "Venue results for March 2025", received.Subject)
	require.Len(t, received.Lines, 1)
	assert.Equal(t, "Total revenue: $2,445", received.Lines[0])
}

func TestSendDigestErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusForbidden)
	}))
	defer srv.Close()

	client := NewWebhookClient(srv.URL)
	err := client.SendDigest(context.Background(), Digest{Subject: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status=403")
}
