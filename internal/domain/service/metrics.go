package service

// AuthMetrics defines the counters the use cases record. Keeping the
// interface in the domain layer lets tests swap in an isolated registry.
type AuthMetrics interface {
	RecordRegistration()
	RecordLoginSuccess()
	RecordLoginFailure()
	RecordTokenRefresh()
	RecordPasswordReset()
}
