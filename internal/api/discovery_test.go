package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBridgeURL(t *testing.T) {
	tests := []struct {
		ip   string
		port int
		want string
	}{
		{"10.0.0.5", 443, "https://10.0.0.5"},
		{"10.0.0.5", 80, "http://10.0.0.5:80"},
		{"192.168.1.2", 8080, "http://192.168.1.2:8080"},
		{"192.168.1.2", 0, "http://192.168.1.2:0"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, bridgeURL(tt.ip, tt.port))
	}
}

func newDiscoveryServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestCloudDiscovery_MapsPorts(t *testing.T) {
	srv := newDiscoveryServer(t, http.StatusOK, `[
		{"id":"X","internalipaddress":"10.0.0.5","port":443},
		{"id":"Y","internalipaddress":"10.0.0.6","port":80}
	]`)

	bridges, err := CloudDiscovery{Endpoint: srv.URL}.Discover(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []DiscoveredBridge{
		{ID: "X", URL: "https://10.0.0.5"},
		{ID: "Y", URL: "http://10.0.0.6:80"},
	}, bridges)
}

func TestCloudDiscovery_NonSuccessStatus(t *testing.T) {
	srv := newDiscoveryServer(t, http.StatusTooManyRequests, `rate limited`)

	_, err := CloudDiscovery{Endpoint: srv.URL}.Discover(context.Background())

	var reqErr *RequestError
	require.True(t, errors.As(err, &reqErr))
	assert.Equal(t, http.StatusTooManyRequests, reqErr.StatusCode)
}

func TestCloudDiscovery_MalformedBody(t *testing.T) {
	srv := newDiscoveryServer(t, http.StatusOK, `not json`)

	_, err := CloudDiscovery{Endpoint: srv.URL}.Discover(context.Background())

	var reqErr *RequestError
	require.True(t, errors.As(err, &reqErr))
	assert.Zero(t, reqErr.StatusCode)
}

func TestDiscoverOne_FirstFound(t *testing.T) {
	srv := newDiscoveryServer(t, http.StatusOK, `[{"id":"X","internalipaddress":"10.0.0.5","port":443}]`)

	bridge, err := DiscoverOne(context.Background(), CloudDiscovery{Endpoint: srv.URL})

	require.NoError(t, err)
	assert.Equal(t, DiscoveredBridge{ID: "X", URL: "https://10.0.0.5"}, bridge)
	assert.Equal(t, "https://10.0.0.5", bridge.Bridge().URL())
}

func TestDiscoverOne_NoBridge(t *testing.T) {
	srv := newDiscoveryServer(t, http.StatusOK, `[]`)

	_, err := DiscoverOne(context.Background(), CloudDiscovery{Endpoint: srv.URL})

	assert.ErrorIs(t, err, ErrNoBridgeFound)
}

// staticDiscoverer returns a fixed result
type staticDiscoverer struct {
	bridges []DiscoveredBridge
	err     error
}

func (s staticDiscoverer) Discover(context.Context) ([]DiscoveredBridge, error) {
	return s.bridges, s.err
}

func TestDiscoverOne_KeepsSourceOrder(t *testing.T) {
	d := staticDiscoverer{bridges: []DiscoveredBridge{
		{ID: "b", URL: "https://10.0.0.9"},
		{ID: "a", URL: "https://10.0.0.1"},
	}}

	bridge, err := DiscoverOne(context.Background(), d)

	require.NoError(t, err)
	assert.Equal(t, "b", bridge.ID)
}

func TestDiscoverAll_MergesByID(t *testing.T) {
	cloud := staticDiscoverer{bridges: []DiscoveredBridge{
		{ID: "001788FFFE123456", URL: "https://10.0.0.5"},
	}}
	mdns := staticDiscoverer{bridges: []DiscoveredBridge{
		{ID: "001788fffe123456", URL: "https://10.0.0.5"},
		{URL: "http://10.0.0.7:80"},
	}}

	bridges, err := DiscoverAll(context.Background(), cloud, mdns)

	require.NoError(t, err)
	assert.Len(t, bridges, 2)
	assert.Equal(t, "001788FFFE123456", bridges[0].ID)
	assert.Equal(t, "http://10.0.0.7:80", bridges[1].URL)
}

func TestDiscoverAll_ErrorOnlyWhenNothingFound(t *testing.T) {
	failing := staticDiscoverer{err: errors.New("offline")}
	found := staticDiscoverer{bridges: []DiscoveredBridge{{ID: "X", URL: "https://10.0.0.5"}}}

	bridges, err := DiscoverAll(context.Background(), failing, found)
	require.NoError(t, err)
	assert.Len(t, bridges, 1)

	_, err = DiscoverAll(context.Background(), failing, staticDiscoverer{})
	assert.EqualError(t, err, "offline")
}
