package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func counterValue(t *testing.T, c *Collector, name string) float64 {
	t.Helper()
	families, err := c.Registry().Gather()
	require.NoError(t, err)

	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
		var total float64
		for _, m := range mf.GetMetric() {
			total += m.GetCounter().GetValue()
		}
		return total
	}
	return 0
}

func TestCollector_RecordRequest(t *testing.T) {
	c := NewCollector()

	c.RecordRequest(http.MethodGet, 5*time.Millisecond)
	c.RecordRequest(http.MethodGet, 7*time.Millisecond)
	c.RecordRequest(http.MethodPost, 3*time.Millisecond)

	assert.Equal(t, float64(3), counterValue(t, c, "gatekeep_http_requests_total"))
}

func TestCollector_RecordLogin(t *testing.T) {
	c := NewCollector()

	c.RecordLogin(true)
	c.RecordLogin(true)
	c.RecordLogin(false)

	assert.Equal(t, float64(2), counterValue(t, c, "gatekeep_logins_total"))
	assert.Equal(t, float64(1), counterValue(t, c, "gatekeep_login_failures_total"))
}

func TestCollector_RecordRegistration(t *testing.T) {
	c := NewCollector()

	c.RecordRegistration()

	assert.Equal(t, float64(1), counterValue(t, c, "gatekeep_registrations_total"))
}

func TestCollector_Handler_Exposition(t *testing.T) {
	c := NewCollector()
	c.RecordLogin(true)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()

	c.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(body), "gatekeep_logins_total 1"))
}
