package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/angristan/philipshue/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordedRequest is what the fake bridge saw
type recordedRequest struct {
	Method    string
	Path      string
	Body      string
	UserAgent string
}

// fakeBridge serves canned responses per "METHOD /path"
type fakeBridge struct {
	mu        sync.Mutex
	responses map[string]string
	requests  []recordedRequest
}

func newFakeBridge(responses map[string]string) *fakeBridge {
	return &fakeBridge{responses: responses}
}

func (f *fakeBridge) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)

	f.mu.Lock()
	f.requests = append(f.requests, recordedRequest{
		Method:    r.Method,
		Path:      r.URL.Path,
		Body:      string(body),
		UserAgent: r.Header.Get("User-Agent"),
	})
	resp, ok := f.responses[r.Method+" "+r.URL.Path]
	f.mu.Unlock()

	if !ok {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = io.WriteString(w, resp)
}

func (f *fakeBridge) lastRequest(t *testing.T) recordedRequest {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	require.NotEmpty(t, f.requests)
	return f.requests[len(f.requests)-1]
}

func startFakeBridge(t *testing.T, responses map[string]string) (*fakeBridge, *Bridge) {
	t.Helper()
	fake := newFakeBridge(responses)
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)
	return fake, NewBridge(srv.URL)
}

const lightsBody = `{
	"1": {"name": "Lamp", "type": "Extended color light", "state": {"on": true, "bri": 200, "alert": "none", "mode": "homeautomation", "reachable": true}},
	"2": {"name": "Plug", "type": "On/Off plug-in unit", "state": {"on": false, "alert": "none", "mode": "homeautomation", "reachable": true}}
}`

func TestNewBridge_TrimsTrailingSlash(t *testing.T) {
	assert.Equal(t, "https://10.0.0.5", NewBridge("https://10.0.0.5/").URL())
}

func TestTransport_AcceptsSelfSignedCertificate(t *testing.T) {
	fake := newFakeBridge(map[string]string{
		"GET /api/config": `{"name":"Philips hue","bridgeid":"001788FFFE123456","modelid":"BSB002","apiversion":"1.65.0"}`,
	})
	srv := httptest.NewTLSServer(fake)
	t.Cleanup(srv.Close)

	cfg, err := NewBridge(srv.URL).Config(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "001788FFFE123456", cfg.BridgeID)
	assert.Equal(t, "BSB002", cfg.ModelID)
	assert.Equal(t, UserAgent, fake.lastRequest(t).UserAgent)
}

func TestLogin_Success(t *testing.T) {
	fake, bridge := startFakeBridge(t, map[string]string{
		"POST /api": `[{"success":{"username":"abc"}}]`,
	})

	hue, err := bridge.Login(context.Background(), NewDeviceType("testdevice"))

	require.NoError(t, err)
	assert.Equal(t, "abc", hue.Username())
	assert.Same(t, bridge, hue.Bridge())

	req := fake.lastRequest(t)
	assert.Equal(t, http.MethodPost, req.Method)
	assert.JSONEq(t, `{"devicetype":"testdevice"}`, req.Body)
	assert.Equal(t, "philipshue/"+Version, req.UserAgent)
}

func TestLogin_LinkButtonNotPressed(t *testing.T) {
	_, bridge := startFakeBridge(t, map[string]string{
		"POST /api": `[{"error":{"type":101,"address":"","description":"link button not pressed"}}]`,
	})

	hue, err := bridge.Login(context.Background(), NewDeviceType("testdevice"))

	assert.Nil(t, hue)
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, 101, apiErr.Type)
	assert.True(t, IsLinkButtonNotPressed(err))

	var reqErr *RequestError
	assert.False(t, errors.As(err, &reqErr), "api error must not look like a transport error")
}

func TestLogin_OtherAPIErrorPropagates(t *testing.T) {
	_, bridge := startFakeBridge(t, map[string]string{
		"POST /api": `[{"error":{"type":7,"address":"/devicetype","description":"invalid value"}}]`,
	})

	_, err := bridge.LoginWithResponse(context.Background(), NewDeviceType(""))

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, 7, apiErr.Type)
	assert.Equal(t, "/devicetype", apiErr.Address)
	assert.False(t, IsLinkButtonNotPressed(err))
}

func TestLogin_EmptyEnvelope(t *testing.T) {
	_, bridge := startFakeBridge(t, map[string]string{
		"POST /api": `[]`,
	})

	_, err := bridge.Login(context.Background(), NewDeviceType("testdevice"))

	assert.ErrorIs(t, err, ErrNoData)
}

func TestLogin_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := NewBridge(url).Login(context.Background(), NewDeviceType("testdevice"))

	var reqErr *RequestError
	require.True(t, errors.As(err, &reqErr))
	assert.Equal(t, http.MethodPost, reqErr.Method)
	assert.Zero(t, reqErr.StatusCode)
}

func TestLights(t *testing.T) {
	fake, bridge := startFakeBridge(t, map[string]string{
		"GET /api/abc/lights": lightsBody,
	})

	lights, err := New(bridge, "abc").Lights(context.Background())

	require.NoError(t, err)
	require.Contains(t, lights, "1")
	assert.Equal(t, "Lamp", lights["1"].Name)
	assert.True(t, lights["1"].State.On)
	assert.False(t, lights["2"].State.On)
	assert.Nil(t, lights["2"].State.Bri)
	assert.Equal(t, http.MethodGet, fake.lastRequest(t).Method)
}

func TestLight(t *testing.T) {
	_, bridge := startFakeBridge(t, map[string]string{
		"GET /api/abc/lights/1": `{"name": "Lamp", "state": {"on": true, "bri": 200, "alert": "none", "mode": "homeautomation", "reachable": true}}`,
	})

	light, err := New(bridge, "abc").Light(context.Background(), "1")

	require.NoError(t, err)
	assert.Equal(t, "Lamp", light.Name)
	require.NotNil(t, light.State.Bri)
	assert.Equal(t, uint8(200), *light.State.Bri)
}

func TestLight_UnknownID(t *testing.T) {
	_, bridge := startFakeBridge(t, map[string]string{})

	_, err := New(bridge, "abc").Light(context.Background(), "42")

	var reqErr *RequestError
	require.True(t, errors.As(err, &reqErr))
	assert.Equal(t, http.StatusNotFound, reqErr.StatusCode)
}

func TestSetLightState_SendsOnlySetFields(t *testing.T) {
	fake, bridge := startFakeBridge(t, map[string]string{
		"PUT /api/abc/lights/1/state": `[{"success":{"/lights/1/state/hue":10}}]`,
	})

	err := New(bridge, "abc").SetLightState(context.Background(), "1", models.NewStateChange().Hue(10))

	require.NoError(t, err)
	req := fake.lastRequest(t)
	assert.Equal(t, http.MethodPut, req.Method)

	var body map[string]any
	require.NoError(t, json.Unmarshal([]byte(req.Body), &body))
	assert.Equal(t, map[string]any{"hue": float64(10)}, body)
}

func TestSetLightState_EmptyChangeSendsEmptyObject(t *testing.T) {
	fake, bridge := startFakeBridge(t, map[string]string{
		"PUT /api/abc/lights/1/state": `[{"success":{}}]`,
	})

	err := New(bridge, "abc").SetLightState(context.Background(), "1", models.NewStateChange())

	require.NoError(t, err)
	assert.JSONEq(t, `{}`, fake.lastRequest(t).Body)
}

func TestSetLightState_APIError(t *testing.T) {
	_, bridge := startFakeBridge(t, map[string]string{
		"PUT /api/abc/lights/1/state": `[{"error":{"type":201,"address":"/lights/1/state/bri","description":"parameter, bri, is not modifiable. Device is set to off."}}]`,
	})

	err := New(bridge, "abc").SetLightState(context.Background(), "1", models.NewStateChange().Bri(100))

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, 201, apiErr.Type)
}

func TestSetLightState_MalformedResponse(t *testing.T) {
	_, bridge := startFakeBridge(t, map[string]string{
		"PUT /api/abc/lights/1/state": `<html>oops</html>`,
	})

	err := New(bridge, "abc").SetLightState(context.Background(), "1", models.NewStateChange().On(true))

	var reqErr *RequestError
	require.True(t, errors.As(err, &reqErr))
	assert.Equal(t, http.MethodPut, reqErr.Method)
}

func TestHue_ConcurrentUse(t *testing.T) {
	_, bridge := startFakeBridge(t, map[string]string{
		"GET /api/abc/lights": lightsBody,
	})
	hue := New(bridge, "abc")

	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := hue.Lights(context.Background())
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		assert.NoError(t, err)
	}
}
