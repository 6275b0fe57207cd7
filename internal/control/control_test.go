package control

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"math"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/supby/relay2mqtt/internal/devconfig"
	"github.com/supby/relay2mqtt/internal/logger"
)

type fakeCore struct {
	config    devconfig.Config
	status    Status
	saveErr   error
	saved     []devconfig.Config
	restarts  int
	onRestart func()
}

func newFakeCore() *fakeCore {
	cfg := devconfig.Default()
	cfg.NetworkName = "Home"
	cfg.NetworkSecret = "pw"

	return &fakeCore{
		config: cfg,
		status: Status{
			Temperature:     21.5,
			NetworkState:    "Joined",
			NetworkMode:     "WiFi Client",
			BrokerState:     "Connected",
			BrokerConnected: true,
			BootID:          "boot-1",
		},
	}
}

func (c *fakeCore) Configuration() devconfig.Config { return c.config }

func (c *fakeCore) Status(now time.Time) Status { return c.status }

func (c *fakeCore) Apply(values url.Values) []string { return c.config.Apply(values) }

func (c *fakeCore) Replace(cfg devconfig.Config) { c.config = cfg }

func (c *fakeCore) Save() error {
	if c.saveErr != nil {
		return c.saveErr
	}
	c.saved = append(c.saved, c.config)
	return nil
}

func (c *fakeCore) Restart() {
	c.restarts++
	if c.onRestart != nil {
		c.onRestart()
	}
}

func testLogger() logger.Logger {
	return logger.New(io.Discard, "[control]", logger.LogLevelDebug)
}

var now = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// roundTrip submits one request and services it the way the scheduler would.
func roundTrip(t *testing.T, iface *Interface, core Core, route string, args url.Values) Response {
	t.Helper()

	type result struct {
		resp Response
		err  error
	}
	results := make(chan result, 1)
	go func() {
		resp, err := iface.Submit(context.Background(), route, args)
		results <- result{resp, err}
	}()

	deadline := time.Now().Add(5 * time.Second)
	for !iface.Service(now, core) {
		require.True(t, time.Now().Before(deadline), "request never arrived")
		time.Sleep(time.Millisecond)
	}

	r := <-results
	require.NoError(t, r.err)
	return r.resp
}

func TestServiceWithoutRequests(t *testing.T) {
	iface := New(4, testLogger())
	assert.False(t, iface.Service(now, newFakeCore()))
}

func TestServiceHandlesOneRequestPerCall(t *testing.T) {
	iface := New(4, testLogger())
	core := newFakeCore()

	for i := 0; i < 2; i++ {
		iface.queue <- &Request{Route: RouteData, reply: make(chan Response, 1)}
	}

	assert.True(t, iface.Service(now, core))
	assert.Len(t, iface.queue, 1)
	assert.True(t, iface.Service(now, core))
	assert.False(t, iface.Service(now, core))
}

func TestData(t *testing.T) {
	iface := New(4, testLogger())
	core := newFakeCore()

	resp := roundTrip(t, iface, core, RouteData, nil)

	assert.Equal(t, 200, resp.Status)
	assert.JSONEq(t, `{"temp":21.5,"wifimode":"WiFi Client","mqttconnected":true}`, string(resp.Body))
}

func TestDataInvalidTemperature(t *testing.T) {
	iface := New(4, testLogger())
	core := newFakeCore()
	core.status.Temperature = math.NaN()
	core.status.BrokerConnected = false
	core.status.NetworkMode = "Access Point"

	resp := roundTrip(t, iface, core, RouteData, nil)

	assert.JSONEq(t, `{"temp":null,"wifimode":"Access Point","mqttconnected":false}`, string(resp.Body))
}

func TestStatusPageHidesSecrets(t *testing.T) {
	iface := New(4, testLogger())
	core := newFakeCore()

	for _, route := range []string{RouteRoot, RouteIndex} {
		resp := roundTrip(t, iface, core, route, nil)

		page := StatusPage{}
		require.NoError(t, json.Unmarshal(resp.Body, &page))
		assert.Equal(t, "Joined", page.Network)
		assert.Equal(t, "Connected", page.Broker)
		assert.Equal(t, "boot-1", page.Boot)
		assert.Equal(t, "Home", page.Settings[devconfig.FieldNetworkName])
		assert.NotContains(t, page.Settings, devconfig.FieldNetworkSecret)
		assert.NotContains(t, page.Settings, devconfig.FieldBrokerSecret)
	}
}

func TestForms(t *testing.T) {
	iface := New(4, testLogger())
	core := newFakeCore()

	wifi := FormPage{}
	require.NoError(t, json.Unmarshal(roundTrip(t, iface, core, RouteWiFiConfig, nil).Body, &wifi))
	assert.Equal(t, "1", wifi.Reboot)
	require.Len(t, wifi.Fields, 3)
	assert.Equal(t, FormField{Name: "ssid", Value: "Home", MaxLength: 32}, wifi.Fields[0])
	assert.True(t, wifi.Fields[1].Secret)

	broker := FormPage{}
	require.NoError(t, json.Unmarshal(roundTrip(t, iface, core, RouteBrokerConfig, nil).Body, &broker))
	assert.Equal(t, "0", broker.Reboot)
	require.Len(t, broker.Fields, 6)
	assert.Equal(t, FormField{Name: "port", Value: "1883", MaxLength: 5}, broker.Fields[1])
	assert.Equal(t, "/Relay", broker.Fields[5].Value)
}

func TestStoreAppliesAndSaves(t *testing.T) {
	iface := New(4, testLogger())
	core := newFakeCore()

	resp := roundTrip(t, iface, core, RouteStore, url.Values{
		"server": {"10.0.0.5"},
		"port":   {"abc"},
		"gpio":   {"2"},
		"reboot": {"1"},
	})

	result := StoreResult{}
	require.NoError(t, json.Unmarshal(resp.Body, &result))
	assert.Equal(t, 200, resp.Status)
	assert.True(t, result.Stored)
	assert.True(t, result.RebootRequired)
	assert.ElementsMatch(t, []string{"gpio", "port"}, result.Ignored)

	require.Len(t, core.saved, 1)
	assert.Equal(t, "10.0.0.5", core.saved[0].BrokerAddress)
	assert.Equal(t, uint16(1883), core.saved[0].BrokerPort)
	assert.Equal(t, 0, core.restarts)
}

func TestStoreFailureRestoresConfiguration(t *testing.T) {
	iface := New(4, testLogger())
	core := newFakeCore()
	core.saveErr = errors.New("flash write failed")

	resp := roundTrip(t, iface, core, RouteStore, url.Values{"ssid": {"Other"}})

	assert.Equal(t, 500, resp.Status)
	result := StoreResult{}
	require.NoError(t, json.Unmarshal(resp.Body, &result))
	assert.False(t, result.Stored)
	assert.Contains(t, result.Error, "flash write failed")
	assert.Equal(t, "Home", core.config.NetworkName)
}

func TestRebootRespondsBeforeRestart(t *testing.T) {
	iface := New(4, testLogger())
	core := newFakeCore()

	req := &Request{Route: RouteReboot, reply: make(chan Response, 1)}
	core.onRestart = func() {
		assert.Len(t, req.reply, 1, "restart before response")
	}
	iface.queue <- req

	require.True(t, iface.Service(now, core))

	assert.Equal(t, 1, core.restarts)
	resp := <-req.reply
	assert.Equal(t, "Rebooting...", string(resp.Body))
}

func TestUnknownRoute(t *testing.T) {
	iface := New(4, testLogger())

	resp := roundTrip(t, iface, newFakeCore(), "/update", nil)

	assert.Equal(t, 404, resp.Status)
	assert.Equal(t, "FileNotFound", string(resp.Body))
}

func TestSubmitCancelled(t *testing.T) {
	iface := New(1, testLogger())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	iface.queue <- &Request{Route: RouteData, reply: make(chan Response, 1)}
	_, err := iface.Submit(ctx, RouteData, nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestHTTPServer(t *testing.T) {
	iface := New(4, testLogger())
	core := newFakeCore()
	server := NewServer("127.0.0.1:0", iface, testLogger())

	ts := httptest.NewServer(server.Handler())
	defer ts.Close()

	stop := make(chan struct{})
	defer close(stop)
	go func() {
		for {
			select {
			case <-stop:
				return
			default:
				iface.Service(now, core)
				time.Sleep(time.Millisecond)
			}
		}
	}()

	resp, err := http.Get(ts.URL + "/data")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
	assert.JSONEq(t, `{"temp":21.5,"wifimode":"WiFi Client","mqttconnected":true}`, string(body))

	resp, err = http.Post(ts.URL+"/store", "application/x-www-form-urlencoded", strings.NewReader("topic=%2FKitchen"))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, 200, resp.StatusCode)

	resp, err = http.Get(ts.URL + "/nothing")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, 404, resp.StatusCode)

	req, _ := http.NewRequest(http.MethodDelete, ts.URL+"/data", nil)
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}
