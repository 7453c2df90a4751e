// Package metrics collects and exposes Prometheus metrics for the auth service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"unica/internal/domain/service"
)

// Collector implements service.AuthMetrics backed by Prometheus counters.
type Collector struct {
	registrations  prometheus.Counter
	loginSuccess   prometheus.Counter
	loginFailure   prometheus.Counter
	tokenRefreshes prometheus.Counter
	passwordResets prometheus.Counter
}

// NewCollector creates a Collector and registers its metrics with the given registry.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		registrations: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "unica_registrations_total",
			Help: "Total number of successful account registrations.",
		}),
		loginSuccess: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "unica_login_success_total",
			Help: "Total number of successful logins.",
		}),
		loginFailure: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "unica_login_failure_total",
			Help: "Total number of rejected logins (unknown email or wrong password).",
		}),
		tokenRefreshes: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "unica_token_refresh_total",
			Help: "Total number of session tokens minted from refresh tokens.",
		}),
		passwordResets: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "unica_password_reset_total",
			Help: "Total number of completed password resets.",
		}),
	}

	reg.MustRegister(
		c.registrations,
		c.loginSuccess,
		c.loginFailure,
		c.tokenRefreshes,
		c.passwordResets,
	)

	return c
}

var _ service.AuthMetrics = (*Collector)(nil)

// RecordRegistration increments the registration counter.
func (c *Collector) RecordRegistration() { c.registrations.Inc() }

// RecordLoginSuccess increments the successful login counter.
func (c *Collector) RecordLoginSuccess() { c.loginSuccess.Inc() }

// RecordLoginFailure increments the rejected login counter.
func (c *Collector) RecordLoginFailure() { c.loginFailure.Inc() }

// RecordTokenRefresh increments the token refresh counter.
func (c *Collector) RecordTokenRefresh() { c.tokenRefreshes.Inc() }

// RecordPasswordReset increments the completed reset counter.
func (c *Collector) RecordPasswordReset() { c.passwordResets.Inc() }
