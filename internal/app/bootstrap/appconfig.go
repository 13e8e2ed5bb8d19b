// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). WAFFLE's CoreConfig covers the
// framework-level settings (ports, TLS, logging level); everything the
// dashboard backend itself needs lives here.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64
	MongoMinPoolSize uint64

	// Base URL of the slot-inventory service. The assign workflow reaches
	// {BaseURL}/initialslot/{email} over HTTP; normally this is the app itself.
	BaseURL           string
	SlotClientTimeout time.Duration

	// Razorpay credentials. When either is empty orders are created by an
	// in-memory gateway, which is only useful for local development.
	RazorpayKeyID     string
	RazorpayKeySecret string

	// Upload limits
	MaxUploadBytes int64 // spreadsheet and avatar uploads
	MaxSheetRows   int

	// Allowed CORS origins for the dashboard front end.
	CORSOrigins []string
}
