package statushttp

import (
	"errors"
	"io"
	"log/slog"
	"math/big"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	gojson "github.com/goccy/go-json"

	"github.com/oldnick85/func-wander/search"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeTask struct {
	status  *search.Status
	stopped bool
	stopErr error
}

func (f *fakeTask) Status() *search.Status { return f.status }
func (f *fakeTask) Done() bool             { return f.status.Done }
func (f *fakeTask) Stop() error {
	f.stopped = true
	return f.stopErr
}

func newFakeTask() *fakeTask {
	return &fakeTask{
		status: &search.Status{
			Iterations:      1234,
			SerialNumber:    big.NewInt(5000),
			MaxSerialNumber: big.NewInt(10000),
			Progress:        50,
			Elapsed:         90 * time.Second,
			Remaining:       90 * time.Second,
			Rate:            13.7,
			Current:         "AND(X;NOT(1))",
			Best: []search.BestEntry{
				{
					Suitability: search.Suitability{Distance: 12, MaxLevel: 2, FunctionsCount: 2, FunctionsUnique: 2},
					Function:    "AND(X;NOT(1))",
					Matches:     "[0,100] 200 ",
				},
			},
		},
	}
}

func newTestServer(task Task) *Server {
	return New(task, "127.0.0.1:0", WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
}

func TestStatusEndpoint(t *testing.T) {
	task := newFakeTask()
	srv := newTestServer(task)

	req, _ := http.NewRequest(http.MethodGet, "/status", nil)
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var st search.Status
	require.NoError(t, gojson.Unmarshal(w.Body.Bytes(), &st))
	assert.Equal(t, uint64(1234), st.Iterations)
	assert.Equal(t, "AND(X;NOT(1))", st.Current)
	require.Len(t, st.Best, 1)
	assert.Equal(t, uint64(12), st.Best[0].Suitability.Distance)
}

func TestPageEndpoint(t *testing.T) {
	task := newFakeTask()
	srv := newTestServer(task)

	req, _ := http.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "AND(X;NOT(1))")
	assert.Contains(t, body, "0:01:30")
	assert.Contains(t, body, "stop search")
}

func TestStopEndpoint(t *testing.T) {
	task := newFakeTask()
	srv := newTestServer(task)

	req, _ := http.NewRequest(http.MethodPost, "/stop", nil)
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, task.stopped)
}

func TestStopEndpointError(t *testing.T) {
	task := newFakeTask()
	task.stopErr = errors.New("boom")
	srv := newTestServer(task)

	req, _ := http.NewRequest(http.MethodPost, "/stop", nil)
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
