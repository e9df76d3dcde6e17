package mail

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewClient_RequiresCredentials(t *testing.T) {
	_, err := NewClient("", "reports@example.com", zap.NewNop())
	assert.Error(t, err)

	_, err = NewClient("re_test", "", zap.NewNop())
	assert.Error(t, err)

	client, err := NewClient("re_test", "reports@example.com", zap.NewNop())
	require.NoError(t, err)
	assert.NotNil(t, client)
}

func TestSendReportEmail_PostsAttachment(t *testing.T) {
	var payload map[string]interface{}
	var auth string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client, err := NewClient("re_test", "reports@example.com", zap.NewNop())
	require.NoError(t, err)
	client.endpoint = srv.URL

	attachment := []byte("spreadsheet bytes")
	err = client.SendReportEmail(context.Background(), "owner@example.com", "SALES", attachment, "SalesReport_20260829.xlsx")
	require.NoError(t, err)

	assert.Equal(t, "Bearer re_test", auth)
	assert.Equal(t, "reports@example.com", payload["from"])
	assert.Equal(t, "owner@example.com", payload["to"])
	assert.Contains(t, payload["subject"], "SALES Report")

	attachments := payload["attachments"].([]interface{})
	require.Len(t, attachments, 1)
	first := attachments[0].(map[string]interface{})
	assert.Equal(t, "SalesReport_20260829.xlsx", first["filename"])

	decoded, err := base64.StdEncoding.DecodeString(first["content"].(string))
	require.NoError(t, err)
	assert.Equal(t, attachment, decoded)
}

func TestSendReportEmail_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
	}))
	defer srv.Close()

	client, err := NewClient("re_test", "reports@example.com", zap.NewNop())
	require.NoError(t, err)
	client.endpoint = srv.URL

	err = client.SendReportEmail(context.Background(), "owner@example.com", "SALES", nil, "report.xlsx")
	assert.ErrorIs(t, err, ErrDeliveryFailed)
}
