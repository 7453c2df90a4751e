package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestCollector_Counters(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordRegistration()
	c.RecordLoginSuccess()
	c.RecordLoginSuccess()
	c.RecordLoginFailure()
	c.RecordTokenRefresh()
	c.RecordPasswordReset()

	assert.Equal(t, float64(1), testutil.ToFloat64(c.registrations))
	assert.Equal(t, float64(2), testutil.ToFloat64(c.loginSuccess))
	assert.Equal(t, float64(1), testutil.ToFloat64(c.loginFailure))
	assert.Equal(t, float64(1), testutil.ToFloat64(c.tokenRefreshes))
	assert.Equal(t, float64(1), testutil.ToFloat64(c.passwordResets))
}

func TestCollector_RegistersWithRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()
	NewCollector(reg)

	families, err := reg.Gather()
	assert.NoError(t, err)
	assert.Len(t, families, 5)
}
