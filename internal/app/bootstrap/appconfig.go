// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). WAFFLE's CoreConfig handles
// framework-level settings (ports, TLS, log level); everything specific to
// this service lives here.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64
	MongoMinPoolSize uint64

	// Session management configuration
	SessionKey    string // Secret key for signing session cookies (must be strong in production)
	SessionDomain string // Cookie domain (blank means current host)

	// Email/SMTP configuration for manager-change notices
	MailSMTPHost string // SMTP server host (blank disables email entirely)
	MailSMTPPort int
	MailFrom     string // From email address (e.g., noreply@rosterhub.org)

	// Presentation values used in notification emails
	SiteName string
	BaseURL  string // e.g., "https://rosterhub.org"

	// Notification dispatcher tuning
	NotifyQueueSize     int
	NotifyRetryAttempts uint

	// Reconciliation sweep for interrupted cascades
	ReconcileInterval time.Duration
}
