package infrastructure

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trackerdash/internal/domain"
	"trackerdash/pkg/config"
	"trackerdash/pkg/logger"
	"trackerdash/pkg/metrics"
)

func newTestClient(t *testing.T, handler http.Handler) *BackendClient {
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewBackendClient(config.BackendConfig{
		APIURL:         server.URL,
		AccessToken:    "access-1",
		RefreshToken:   "refresh-1",
		RequestTimeout: 5 * time.Second,
	}, logger.Discard(), metrics.New(prometheus.NewRegistry()))
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func TestBackendClient_FetchInstalls(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/install/app-tracker/t1", r.URL.Path)
		assert.Equal(t, "Bearer access-1", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"ok":true,"message":"","data":[{"id":"i1","created_at":"2024-03-05T10:00:00Z","platform":"ios","privacy_att_status":true}]}`)
	}))

	installs, err := client.FetchInstalls(context.Background(), "t1")

	require.NoError(t, err)
	require.Len(t, installs, 1)
	assert.Equal(t, "ios", installs[0].Platform)
	assert.True(t, installs[0].PrivacyATTStatus)
}

func TestBackendClient_FetchSubscriptionsDecodesProceeds(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/webhooks/superwall/app-tracker/t1", r.URL.Path)
		_, _ = io.WriteString(w, `{"ok":true,"data":[{"id":"s1","store":"app_store","proceeds":9.99,"price":"12.99"}]}`)
	}))

	subs, err := client.FetchSubscriptions(context.Background(), "t1")

	require.NoError(t, err)
	require.Len(t, subs, 1)
	assert.Equal(t, "9.99", subs[0].Proceeds.String())
	assert.Equal(t, "12.99", subs[0].Price.String())
}

func TestBackendClient_NullDataIsEmpty(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"ok":true,"data":null}`)
	}))

	trackers, err := client.ListTrackers(context.Background())

	require.NoError(t, err)
	assert.NotNil(t, trackers)
	assert.Empty(t, trackers)
}

func TestBackendClient_RefreshesOnceOn401(t *testing.T) {
	var refreshes atomic.Int32
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == refreshTokenPath {
			refreshes.Add(1)
			var body map[string]string
			_ = json.NewDecoder(r.Body).Decode(&body)
			assert.Equal(t, "refresh-1", body["refreshToken"])
			writeJSON(w, http.StatusOK, map[string]any{
				"ok":   true,
				"data": map[string]string{"access_token": "access-2", "refresh_token": "refresh-2"},
			})
			return
		}
		if r.Header.Get("Authorization") != "Bearer access-2" {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "expired"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"ok": true, "data": []domain.AppTracker{{ID: "t1", AppName: "Demo"}}})
	}))

	trackers, err := client.ListTrackers(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "Demo", trackers[0].AppName)
	assert.Equal(t, int32(1), refreshes.Load())
	assert.Equal(t, "access-2", client.currentToken())
}

func TestBackendClient_SecondUnauthorizedFails(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == refreshTokenPath {
			writeJSON(w, http.StatusOK, map[string]any{"data": map[string]string{"access_token": "access-2"}})
			return
		}
		w.WriteHeader(http.StatusUnauthorized)
	}))

	_, err := client.ListTrackers(context.Background())

	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestBackendClient_RejectedRefresh(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == refreshTokenPath {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "refresh token revoked"})
			return
		}
		w.WriteHeader(http.StatusUnauthorized)
	}))

	_, err := client.FetchInstalls(context.Background(), "t1")

	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestBackendClient_APIError(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "tracker not found"})
	}))

	_, err := client.FetchInstalls(context.Background(), "missing")

	var apiErr *domain.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Equal(t, "tracker not found", apiErr.Message)
}

func TestBackendClient_APIErrorWithoutBody(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))

	_, err := client.ListTrackers(context.Background())

	var apiErr *domain.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "Bad Gateway", apiErr.Message)
}

func TestBackendClient_TrackingLinks(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/app-tracker/t1/tracking-links":
			writeJSON(w, http.StatusOK, []domain.TrackingLink{{ID: "l1", LinkName: "spring"}})
		case r.Method == http.MethodPost && r.URL.Path == "/app-tracker/t1/tracking-links":
			var req domain.CreateTrackingLinkRequest
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
			writeJSON(w, http.StatusCreated, domain.TrackingLink{ID: "l2", AppTrackerID: "t1", LinkName: req.LinkName})
		case r.Method == http.MethodPatch && r.URL.Path == "/tracking-links/l2":
			var req map[string]any
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, map[string]any{"link_name": "summer"}, req)
			writeJSON(w, http.StatusOK, domain.TrackingLink{ID: "l2", LinkName: "summer"})
		case r.Method == http.MethodDelete && r.URL.Path == "/tracking-links/l2":
			w.WriteHeader(http.StatusNoContent)
		default:
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
			w.WriteHeader(http.StatusTeapot)
		}
	}))
	ctx := context.Background()

	links, err := client.ListTrackingLinks(ctx, "t1")
	require.NoError(t, err)
	assert.Equal(t, "spring", links[0].LinkName)

	created, err := client.CreateTrackingLink(ctx, "t1", domain.CreateTrackingLinkRequest{LinkName: "autumn"})
	require.NoError(t, err)
	assert.Equal(t, "autumn", created.LinkName)

	name := "summer"
	updated, err := client.UpdateTrackingLink(ctx, "l2", domain.UpdateTrackingLinkRequest{LinkName: &name})
	require.NoError(t, err)
	assert.Equal(t, "summer", updated.LinkName)

	assert.NoError(t, client.DeleteTrackingLink(ctx, "l2"))
}

func TestBackendClient_HonorsContext(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"data": []any{}})
	}))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.ListTrackers(ctx)

	assert.ErrorIs(t, err, context.Canceled)
}
