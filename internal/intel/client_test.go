package intel_test

import (
	"context"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/August26/ipintel-go/internal/intel"
	"github.com/August26/ipintel-go/internal/transport"
)

// fakeInvoker is a deterministic in-memory transport. It returns the
// scripted response or error and records what it was asked to send.
type fakeInvoker struct {
	resp    *transport.Response
	err     error
	calls   int
	lastReq transport.Request
}

func (f *fakeInvoker) Invoke(ctx context.Context, req transport.Request, timeout time.Duration) (*transport.Response, error) {
	f.calls++
	f.lastReq = req
	if f.err != nil {
		return nil, f.err
	}
	return f.resp, nil
}

func jsonResponse(status int, body string) *transport.Response {
	return &transport.Response{
		StatusCode: status,
		Headers:    map[string]string{"Content-Type": "application/json"},
		Body:       body,
		Complete:   true,
	}
}

func newTestClient(t *testing.T, inv transport.Invoker) *intel.Client {
	t.Helper()
	c, err := intel.New(intel.WithInvoker(inv))
	require.NoError(t, err)
	return c
}

func TestQuery_Success(t *testing.T) {
	f := &fakeInvoker{resp: jsonResponse(200, `{"status":"success","result":"0.99","queryIP":"185.94.111.1","BadIP":1,"Country":"DE"}`)}
	c := newTestClient(t, f)

	res, err := c.Query(context.Background(), "185.94.111.1")
	require.NoError(t, err)

	assert.Equal(t, "success", res.Status)
	assert.Equal(t, "0.99", res.Score)
	assert.Equal(t, "185.94.111.1", res.QueryIP)
	assert.Equal(t, "DE", res.Country)
	assert.Equal(t, 1, res.BadIP)

	score, err := res.ScoreValue()
	require.NoError(t, err)
	assert.InDelta(t, 0.99, score, 1e-9)

	assert.Equal(t, 200, c.LastStatus().Code)
	assert.NoError(t, c.LastStatus().Err)
}

func TestQuery_NormalizesAlternateNotations(t *testing.T) {
	for _, in := range []string{"185:94:111:1", "185-94-111-1"} {
		f := &fakeInvoker{resp: jsonResponse(200, `{"status":"success"}`)}
		c := newTestClient(t, f)

		_, err := c.Query(context.Background(), in)
		require.NoError(t, err)
		assert.Contains(t, f.lastReq.Path, "ip=185.94.111.1", "input %q", in)
	}
}

func TestQuery_EmptyIP(t *testing.T) {
	f := &fakeInvoker{resp: jsonResponse(200, `{"status":"success"}`)}
	c := newTestClient(t, f)

	_, err := c.Query(context.Background(), "")
	require.ErrorIs(t, err, intel.ErrEmptyIP)

	// no request went out, state untouched
	assert.Equal(t, 0, f.calls)
	assert.Equal(t, intel.LastStatus{}, c.LastStatus())
}

func TestQuery_FlagsPassThrough(t *testing.T) {
	f := &fakeInvoker{resp: jsonResponse(200, `{"status":"success"}`)}
	c := newTestClient(t, f)

	_, err := c.QueryWithFlags(context.Background(), "1.2.3.4", "m")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(f.lastReq.Path, "&flags=m"), "path %q", f.lastReq.Path)
}

func TestQuery_HTTPStatusError(t *testing.T) {
	f := &fakeInvoker{resp: jsonResponse(404, "not found")}
	c := newTestClient(t, f)

	_, err := c.Query(context.Background(), "185.94.111.1")

	var hse *intel.HTTPStatusError
	require.ErrorAs(t, err, &hse)
	assert.Equal(t, 404, hse.StatusCode)
	assert.Equal(t, 404, c.LastStatus().Code)
}

func TestQuery_UnexpectedContentType(t *testing.T) {
	f := &fakeInvoker{resp: &transport.Response{
		StatusCode: 200,
		Headers:    map[string]string{"Content-Type": "text/html"},
		Body:       "<html>nope</html>",
		Complete:   true,
	}}
	c := newTestClient(t, f)

	_, err := c.Query(context.Background(), "185.94.111.1")

	var cte *intel.UnexpectedContentTypeError
	require.ErrorAs(t, err, &cte)
	assert.Equal(t, "text/html", cte.Received)
	assert.Equal(t, 200, c.LastStatus().Code)
}

func TestQuery_ServiceError(t *testing.T) {
	body := `{"status":"error","message":"invalid contact"}`
	f := &fakeInvoker{resp: jsonResponse(200, body)}
	c := newTestClient(t, f)

	_, err := c.Query(context.Background(), "185.94.111.1")

	var se *intel.ServiceError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, body, se.RawBody, "raw body must be preserved verbatim")
}

func TestQuery_ServiceErrorOnBareNumber(t *testing.T) {
	// Some rejections come back as a bare JSON number with no status.
	f := &fakeInvoker{resp: jsonResponse(200, `-1`)}
	c := newTestClient(t, f)

	_, err := c.Query(context.Background(), "185.94.111.1")

	var se *intel.ServiceError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "-1", se.RawBody)
}

func TestQuery_MalformedBody(t *testing.T) {
	f := &fakeInvoker{resp: jsonResponse(200, `{"status":`)}
	c := newTestClient(t, f)

	_, err := c.Query(context.Background(), "185.94.111.1")

	var mbe *intel.MalformedBodyError
	require.ErrorAs(t, err, &mbe)
	assert.Error(t, mbe.Unwrap())
}

func TestQuery_TransportErrorRecorded(t *testing.T) {
	terr := &transport.TimeoutError{After: 50 * time.Millisecond}
	f := &fakeInvoker{err: terr}
	c := newTestClient(t, f)

	_, err := c.Query(context.Background(), "185.94.111.1")

	var te *transport.TimeoutError
	require.ErrorAs(t, err, &te)

	last := c.LastStatus()
	assert.Equal(t, 0, last.Code)
	assert.ErrorAs(t, last.Err, &te)
}

func TestQuery_UntypedInvokerErrorBecomesConnectionError(t *testing.T) {
	f := &fakeInvoker{err: errors.New("boom")}
	c := newTestClient(t, f)

	_, err := c.Query(context.Background(), "185.94.111.1")

	var ce *transport.ConnectionError
	require.ErrorAs(t, err, &ce)
	assert.ErrorContains(t, ce.Cause, "boom")
}

func TestQuery_IncompleteResponse(t *testing.T) {
	f := &fakeInvoker{resp: &transport.Response{
		StatusCode: 200,
		Headers:    map[string]string{"Content-Type": "application/json"},
		Body:       `{"status":"succ`,
		Complete:   false,
	}}
	c := newTestClient(t, f)

	_, err := c.Query(context.Background(), "185.94.111.1")

	var ie *transport.IncompleteResponseError
	require.ErrorAs(t, err, &ie)
	assert.Equal(t, 0, c.LastStatus().Code)
	assert.Error(t, c.LastStatus().Err)
}

func TestQuery_Idempotent(t *testing.T) {
	f := &fakeInvoker{resp: jsonResponse(200, `{"status":"success","result":"0.50"}`)}
	c := newTestClient(t, f)

	first, err1 := c.Query(context.Background(), "185.94.111.1")
	second, err2 := c.Query(context.Background(), "185.94.111.1")

	require.NoError(t, err1)
	require.NoError(t, err2)
	assert.Equal(t, first, second)
	assert.Equal(t, 2, f.calls)

	// Same check for a failing transport: identical classified outcome
	// on both calls.
	ferr := &fakeInvoker{err: &transport.ConnectionError{Cause: errors.New("refused")}}
	cerr := newTestClient(t, ferr)

	_, e1 := cerr.Query(context.Background(), "185.94.111.1")
	_, e2 := cerr.Query(context.Background(), "185.94.111.1")
	assert.Equal(t, e1, e2)
}

func TestLastStatus_TracksMostRecentCall(t *testing.T) {
	f := &fakeInvoker{resp: jsonResponse(200, `{"status":"success"}`)}
	c := newTestClient(t, f)

	_, err := c.Query(context.Background(), "185.94.111.1")
	require.NoError(t, err)
	assert.Equal(t, 200, c.LastStatus().Code)

	f.resp = jsonResponse(404, "gone")
	_, err = c.Query(context.Background(), "185.94.111.1")
	require.Error(t, err)
	assert.Equal(t, 404, c.LastStatus().Code)
}

// TestQuery_TimeoutAgainstRealTransport exercises the whole stack: a
// server that answers after 100ms against a 50ms budget must surface
// a TimeoutError at roughly the configured delay.
func TestQuery_TimeoutAgainstRealTransport(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(100 * time.Millisecond)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"success"}`))
	}))
	defer srv.Close()

	host, port := splitURL(t, srv.URL)
	c, err := intel.New(
		intel.WithHost(host),
		intel.WithPort(port),
		intel.WithTimeout(50*time.Millisecond),
	)
	require.NoError(t, err)

	start := time.Now()
	_, err = c.Query(context.Background(), "185.94.111.1")
	elapsed := time.Since(start)

	var te *transport.TimeoutError
	require.ErrorAs(t, err, &te)
	assert.GreaterOrEqual(t, elapsed, 45*time.Millisecond, "timed out too early")
	assert.Less(t, elapsed, 95*time.Millisecond, "timed out too late")
}

func TestPing(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	port := ln.Addr().(*net.TCPAddr).Port
	c, err := intel.New(
		intel.WithHost("127.0.0.1"),
		intel.WithPort(port),
		intel.WithTimeout(time.Second),
	)
	require.NoError(t, err)
	require.NoError(t, c.Ping(context.Background()))

	// A closed port must fail.
	ln.Close()
	assert.Error(t, c.Ping(context.Background()))
}

func splitURL(t *testing.T, raw string) (string, int) {
	t.Helper()
	u, err := url.Parse(raw)
	require.NoError(t, err)
	host, portStr, err := net.SplitHostPort(u.Host)
	require.NoError(t, err)
	port, err := strconv.Atoi(portStr)
	require.NoError(t, err)
	return host, port
}
