// Package models defines the shared types passed between FedScout packages.
package models

// Service identifies an external service a researcher specializes in.
type Service string

const (
	// ServiceSalary covers GS pay tables and locality adjustments.
	ServiceSalary Service = "salary"
	// ServicePayments covers the payment provider integration.
	ServicePayments Service = "payments"
	// ServiceJobSearch covers the federal job-search API.
	ServiceJobSearch Service = "jobsearch"
	// ServiceOAuth covers login and token flows.
	ServiceOAuth Service = "oauth"
	// ServiceDeploy covers the deployment platform.
	ServiceDeploy Service = "deploy"
)

// Valid returns true if the service is a known value.
func (s Service) Valid() bool {
	switch s {
	case ServiceSalary, ServicePayments, ServiceJobSearch, ServiceOAuth, ServiceDeploy:
		return true
	default:
		return false
	}
}

// AllServices lists every known service in a stable order.
func AllServices() []Service {
	return []Service{ServiceSalary, ServicePayments, ServiceJobSearch, ServiceOAuth, ServiceDeploy}
}
