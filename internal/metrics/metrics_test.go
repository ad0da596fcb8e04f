package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNilCollectorIsNoop(t *testing.T) {
	var c *Collector

	assert.NotPanics(t, func() {
		c.ObserveRequest("GET", "/ideas", 200, time.Millisecond)
		c.IdeaCreated()
		c.RecordsCreated("scores", 3)
		c.TicketStatusChanged("done")
	})
	assert.Nil(t, c.Registry())

	rr := httptest.NewRecorder()
	c.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestCounters(t *testing.T) {
	c := New("test")

	c.IdeaCreated()
	c.IdeaCreated()
	c.RecordsCreated("scores", 3)
	c.RecordsCreated("scores", 0)
	c.RecordsCreated("features", 1)
	c.TicketStatusChanged("done")

	assert.Equal(t, 2.0, testutil.ToFloat64(c.ideasCreated))
	assert.Equal(t, 3.0, testutil.ToFloat64(c.recordsCreated.WithLabelValues("scores")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.recordsCreated.WithLabelValues("features")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.ticketStatusChanges.WithLabelValues("done")))
}

func TestObserveRequest(t *testing.T) {
	c := New("test")

	c.ObserveRequest("POST", "/api/ideas", 201, 5*time.Millisecond)
	c.ObserveRequest("POST", "/api/ideas", 400, time.Millisecond)

	assert.Equal(t, 1.0, testutil.ToFloat64(c.httpRequests.WithLabelValues("POST", "/api/ideas", "201")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.httpRequests.WithLabelValues("POST", "/api/ideas", "400")))
}

func TestHandlerExposesNamespacedMetrics(t *testing.T) {
	c := New("ideaforge")
	c.IdeaCreated()

	rr := httptest.NewRecorder()
	c.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.True(t, strings.Contains(rr.Body.String(), "ideaforge_ideas_created_total 1"))
}

func TestCollectorsAreIndependent(t *testing.T) {
	a := New("test")
	b := New("test")

	a.IdeaCreated()
	assert.Equal(t, 1.0, testutil.ToFloat64(a.ideasCreated))
	assert.Equal(t, 0.0, testutil.ToFloat64(b.ideasCreated))
}
