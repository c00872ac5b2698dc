package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorder(t *testing.T) {
	r := NewRecorder()
	r.VideoFinished("uploaded")
	r.VideoFinished("uploaded")
	r.VideoFinished("failed")
	r.ObserveStage("assemble", 42*time.Second)
	r.RunSucceeded(time.Unix(1_700_000_000, 0))

	assert.Equal(t, 2.0, testutil.ToFloat64(r.videosTotal.WithLabelValues("uploaded")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.videosTotal.WithLabelValues("failed")))
	assert.Equal(t, 1_700_000_000.0, testutil.ToFloat64(r.lastSuccess))
	assert.Equal(t, 1, testutil.CollectAndCount(r.stageDuration))
}

func TestPush(t *testing.T) {
	var body string
	var path string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		path = req.URL.Path
		data, _ := io.ReadAll(req.Body)
		body = string(data)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	r := NewRecorder()
	r.VideoFinished("uploaded")
	require.NoError(t, r.Push(srv.URL, "dailyshorts"))

	assert.True(t, strings.HasSuffix(path, "/metrics/job/dailyshorts"))
	assert.NotEmpty(t, body)
}

func TestPushDisabled(t *testing.T) {
	assert.NoError(t, NewRecorder().Push("", "dailyshorts"))
}
