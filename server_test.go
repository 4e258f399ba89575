package fleettracker

import (
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theoremus-urban-solutions/fleet-tracker/config"
	"github.com/theoremus-urban-solutions/fleet-tracker/converter"
	"github.com/theoremus-urban-solutions/fleet-tracker/gtfsrt"
	"github.com/theoremus-urban-solutions/fleet-tracker/internal"
	"github.com/theoremus-urban-solutions/fleet-tracker/phonebook"
	"github.com/theoremus-urban-solutions/fleet-tracker/siri"
	"github.com/theoremus-urban-solutions/fleet-tracker/tracking"
	"github.com/theoremus-urban-solutions/fleet-tracker/utils"
)

var testStart = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

const testConfig = `
simulator:
  seed: 7
phonebook:
  seed: true
`

func newTestApp(t *testing.T, doc string) (*App, *utils.MockClock) {
	t.Helper()
	cfg, err := config.Parse([]byte(doc))
	require.NoError(t, err)
	clock := utils.NewMockClock(testStart)
	app, err := NewApp(context.Background(), cfg, clock)
	require.NoError(t, err)
	t.Cleanup(app.Close)
	return app, clock
}

func newTestServer(t *testing.T) (*App, *httptest.Server) {
	t.Helper()
	app, _ := newTestApp(t, testConfig)
	srv := httptest.NewServer(NewServer(app).Handler())
	t.Cleanup(srv.Close)
	return app, srv
}

func get(t *testing.T, url string) (*http.Response, []byte) {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, body
}

func post(t *testing.T, url, body string) (*http.Response, []byte) {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, b
}

func errorMessage(t *testing.T, body []byte) string {
	t.Helper()
	var e errorResponse
	require.NoError(t, json.Unmarshal(body, &e))
	return e.Error
}

func TestHealth(t *testing.T) {
	_, srv := newTestServer(t)
	resp, body := get(t, srv.URL+"/api/health")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"status":"ok","seq":0,"taken_at":"2024-05-01T12:00:00Z","devices":5,"tick_interval":"5s"}`, string(body))
}

func TestDevices(t *testing.T) {
	_, srv := newTestServer(t)

	resp, body := get(t, srv.URL+"/api/devices")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var snap tracking.Snapshot
	require.NoError(t, json.Unmarshal(body, &snap))
	assert.Equal(t, 5, snap.Len())

	_, body = get(t, srv.URL+"/api/devices?q=HELSINKI")
	require.NoError(t, json.Unmarshal(body, &snap))
	require.Equal(t, 1, snap.Len())
	assert.Equal(t, "device-1", snap.Devices()[0].ID)

	_, body = get(t, srv.URL+"/api/devices?status=online")
	require.NoError(t, json.Unmarshal(body, &snap))
	for _, d := range snap.Devices() {
		assert.Equal(t, tracking.StatusOnline, d.Status)
	}

	resp, body = get(t, srv.URL+"/api/devices?status=parked")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, errorMessage(t, body), "parked")
}

func TestDevice(t *testing.T) {
	_, srv := newTestServer(t)

	resp, body := get(t, srv.URL+"/api/devices/device-2")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var d struct {
		ID      string  `json:"id"`
		Lat     float64 `json:"latitude"`
		Address string  `json:"address"`
	}
	require.NoError(t, json.Unmarshal(body, &d))
	assert.Equal(t, "device-2", d.ID)
	assert.InDelta(t, 61.4978, d.Lat, 0.001)
	assert.Contains(t, d.Address, "Tampere")

	resp, body = get(t, srv.URL+"/api/devices/device-42")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "No such device: device-42", errorMessage(t, body))
}

func TestDeviceRoute(t *testing.T) {
	_, srv := newTestServer(t)

	resp, body := get(t, srv.URL+"/api/devices/device-1/route")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var route tracking.Route
	require.NoError(t, json.Unmarshal(body, &route))
	assert.Equal(t, "device-1", route.DeviceID)
	assert.Len(t, route.Points, tracking.DefaultRoutePoints)

	resp, _ = get(t, srv.URL+"/api/devices/nope/route")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestSummary(t *testing.T) {
	_, srv := newTestServer(t)
	resp, body := get(t, srv.URL+"/api/summary")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var s tracking.Summary
	require.NoError(t, json.Unmarshal(body, &s))
	assert.Equal(t, 5, s.Total)
	assert.Equal(t, 5, s.Online+s.Idle+s.Offline)
}

func TestVehicleMonitoringJSON(t *testing.T) {
	_, srv := newTestServer(t)

	resp, body := get(t, srv.URL+"/api/siri/vehicle-monitoring.json")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
	var res siri.SiriResponse
	require.NoError(t, json.Unmarshal(body, &res))
	vm := res.Siri.ServiceDelivery.VehicleMonitoringDelivery[0]
	assert.Len(t, vm.VehicleActivity, 5)
	assert.Equal(t, "2024-05-01T12:00:05Z", vm.ValidUntil)

	_, body = get(t, srv.URL+"/api/siri/vehicle-monitoring.json?VehicleRef=FLEET:VehicleRef:device-3")
	require.NoError(t, json.Unmarshal(body, &res))
	vm = res.Siri.ServiceDelivery.VehicleMonitoringDelivery[0]
	require.Len(t, vm.VehicleActivity, 1)
	assert.Equal(t, "FLEET:VehicleRef:device-3", vm.VehicleActivity[0].MonitoredVehicleJourney.VehicleRef)

	resp, _ = get(t, srv.URL+"/api/siri/vehicle-monitoring.json?status=lost")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestVehicleMonitoringXML(t *testing.T) {
	_, srv := newTestServer(t)
	resp, body := get(t, srv.URL+"/api/siri/vehicle-monitoring.xml")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/xml", resp.Header.Get("Content-Type"))
	assert.Contains(t, string(body), "<Siri xmlns=\"http://www.siri.org.uk/siri\"")
	assert.Equal(t, 5, strings.Count(string(body), "<VehicleActivity>"))
}

func TestVehiclePositions(t *testing.T) {
	_, srv := newTestServer(t)

	resp, body := get(t, srv.URL+"/api/gtfsrt/vehicle-positions.pb")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/x-protobuf", resp.Header.Get("Content-Type"))
	fm, err := gtfsrt.Decode(body)
	require.NoError(t, err)
	assert.Len(t, fm.Entity, 5)

	resp, body = get(t, srv.URL+"/api/gtfsrt/vehicle-positions.json")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `"gtfs_realtime_version"`)
}

func TestResponsesMemoizedPerSnapshot(t *testing.T) {
	app, _ := newTestApp(t, testConfig)

	first, err := app.VehiclePositions("pb")
	require.NoError(t, err)
	again, err := app.VehiclePositions("pb")
	require.NoError(t, err)
	assert.Equal(t, first, again)
	_, err = app.VehicleMonitoring(converter.Filter{}, "xml")
	require.NoError(t, err)
	assert.Equal(t, 2, app.cache.Len())

	app.Tracker.Step(context.Background())
	next, err := app.VehiclePositions("pb")
	require.NoError(t, err)
	assert.NotEqual(t, first, next)
	assert.Equal(t, 1, app.cache.Len(), "older entries are dropped")

	_, err = app.VehiclePositions("csv")
	assert.Error(t, err)
	_, err = app.VehicleMonitoring(converter.Filter{}, "csv")
	assert.Error(t, err)
}

func TestGeocode(t *testing.T) {
	_, srv := newTestServer(t)

	resp, body := get(t, srv.URL+"/api/geocode/reverse?lat=60.1699&lng=24.9384")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var rev reverseResponse
	require.NoError(t, json.Unmarshal(body, &rev))
	assert.Equal(t, "Pohjoisranta 2, Helsinki, Finland", rev.Address)
	assert.Equal(t, "Helsinki", rev.City)

	resp, body = get(t, srv.URL+"/api/geocode/reverse?lat=60.1")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Missing parameter: lng.", errorMessage(t, body))

	resp, _ = get(t, srv.URL+"/api/geocode/reverse?lat=91&lng=0")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp, _ = get(t, srv.URL+"/api/geocode/reverse?lat=north&lng=0")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	_, body = get(t, srv.URL+"/api/geocode/search?q=kuo")
	assert.JSONEq(t, `[{"name":"Kuopio","latitude":62.8921,"longitude":27.6787,"address":"Kuopio, Finland"}]`, string(body))
}

func TestPersons(t *testing.T) {
	_, srv := newTestServer(t)

	resp, body := get(t, srv.URL+"/persons")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var persons []phonebook.Person
	require.NoError(t, json.Unmarshal(body, &persons))
	assert.Len(t, persons, 4)

	_, body = get(t, srv.URL+"/persons?filter=ADA")
	require.NoError(t, json.Unmarshal(body, &persons))
	require.Len(t, persons, 1)
	assert.Equal(t, "Ada Lovelace", persons[0].Name)

	resp, body = post(t, srv.URL+"/persons", `{"name":"Ada Lovelace","number":"39-44-5323523"}`)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "Ada Lovelace is already added to phonebook", errorMessage(t, body))

	resp, body = post(t, srv.URL+"/persons", `{"name":"  Ada Lovelace\t","number":"1"}`)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "Ada Lovelace is already added to phonebook", errorMessage(t, body))

	resp, _ = post(t, srv.URL+"/persons", `{"name":"","number":"1"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp, _ = post(t, srv.URL+"/persons", `{"name":`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, body = post(t, srv.URL+"/persons", `{"name":"Grace Hopper","number":"555-0100"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var created phonebook.Person
	require.NoError(t, json.Unmarshal(body, &created))
	assert.Equal(t, "Grace Hopper", created.Name)
	assert.NotEmpty(t, created.ID)

	_, body = get(t, srv.URL+"/persons")
	require.NoError(t, json.Unmarshal(body, &persons))
	assert.Len(t, persons, 5)
}

func TestRouting(t *testing.T) {
	_, srv := newTestServer(t)

	resp, body := get(t, srv.URL+"/api/unknown")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "not found", errorMessage(t, body))

	resp, _ = post(t, srv.URL+"/api/devices", `{}`)
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestCORS(t *testing.T) {
	_, srv := newTestServer(t)

	req, err := http.NewRequest(http.MethodOptions, srv.URL+"/persons", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, "http://localhost:5173", resp.Header.Get("Access-Control-Allow-Origin"))

	req, err = http.NewRequest(http.MethodGet, srv.URL+"/api/health", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://evil.example")
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Empty(t, resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestServer_ServeShutsDownOnCancel(t *testing.T) {
	orig := internal.Logf
	defer func() { internal.Logf = orig }()
	internal.SetLogger(nil)

	app, _ := newTestApp(t, testConfig)
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- NewServer(app).Serve(ctx, ln) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + ln.Addr().String() + "/api/health")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}

func TestNewApp_SQLitePhonebook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "phonebook.db")
	app, _ := newTestApp(t, "phonebook:\n  driver: sqlite\n  sqlitePath: "+path+"\n  seed: true\n")

	persons, err := app.Persons.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, persons, len(phonebook.SeedPersons))

	_, err = app.Persons.Add(context.Background(), phonebook.Person{Name: "Arto Hellas"})
	assert.ErrorIs(t, err, phonebook.ErrDuplicateEntry)
}

func TestApp_RunStopsOnCancel(t *testing.T) {
	orig := internal.Logf
	defer func() { internal.Logf = orig }()
	internal.SetLogger(nil)

	app, clock := newTestApp(t, "simulator:\n  deviceCount: 2\n  tickIntervalMS: 1000\n")
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.Run(ctx) }()

	require.Eventually(t, func() bool { return clock.Tickers() == 1 }, time.Second, time.Millisecond)
	clock.Advance(time.Second)
	require.Eventually(t, func() bool { return app.Tracker.Snapshot().Seq() == 1 }, time.Second, time.Millisecond)

	cancel()
	require.NoError(t, <-done)
}
