// internal/app/bootstrap/config.go
package bootstrap

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/dalemusser/pooldash/internal/app/system/slotclient"
	"github.com/dalemusser/pooldash/internal/app/system/spreadsheet"
	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"
)

// appConfigKeys defines the configuration keys for PoolDash.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: mongo_uri, base_url, etc.
//   - Environment variables: POOLDASH_MONGO_URI, POOLDASH_BASE_URL, etc.
//   - Command-line flags: --mongo_uri, --base_url, etc.
var appConfigKeys = []config.AppKey{
	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "pooldash", Desc: "MongoDB database name"},
	{Name: "mongo_max_pool_size", Default: 100, Desc: "MongoDB max connection pool size (default: 100)"},
	{Name: "mongo_min_pool_size", Default: 10, Desc: "MongoDB min connection pool size (default: 10)"},

	// Slot inventory
	{Name: "base_url", Default: "http://localhost:8080", Desc: "Base URL of the /initialslot service used by the assign workflow"},
	{Name: "slot_client_timeout", Default: "10s", Desc: "HTTP timeout for each slot inventory call"},

	// Payments
	{Name: "razorpay_key_id", Default: "", Desc: "Razorpay API key id"},
	{Name: "razorpay_key_secret", Default: "", Desc: "Razorpay API key secret"},

	// Uploads
	{Name: "max_upload_mb", Default: 10, Desc: "Maximum spreadsheet or image upload size in MB"},
	{Name: "max_sheet_rows", Default: spreadsheet.DefaultMaxRows, Desc: "Maximum data rows accepted in a roster spreadsheet"},

	// CORS
	{Name: "cors_allowed_origins", Default: "*", Desc: "Comma-separated list of allowed CORS origins"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// WAFFLE's config.LoadWithAppConfig merges, in order of precedence:
// flags > env (WAFFLE_* for core, POOLDASH_* for app) > files > defaults.
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "POOLDASH", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		MongoURI:         appValues.String("mongo_uri"),
		MongoDatabase:    appValues.String("mongo_database"),
		MongoMaxPoolSize: uint64(appValues.Int("mongo_max_pool_size")),
		MongoMinPoolSize: uint64(appValues.Int("mongo_min_pool_size")),

		BaseURL:           strings.TrimRight(appValues.String("base_url"), "/"),
		SlotClientTimeout: appValues.Duration("slot_client_timeout", slotclient.DefaultTimeout),

		RazorpayKeyID:     appValues.String("razorpay_key_id"),
		RazorpayKeySecret: appValues.String("razorpay_key_secret"),

		MaxUploadBytes: int64(appValues.Int("max_upload_mb")) << 20,
		MaxSheetRows:   appValues.Int("max_sheet_rows"),

		CORSOrigins: splitOrigins(appValues.String("cors_allowed_origins")),
	}

	return coreCfg, appCfg, nil
}

func splitOrigins(s string) []string {
	var out []string
	for _, o := range strings.Split(s, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

// ValidateConfig performs app-specific config validation.
//
// PoolDash validates the MongoDB URI format and the slot-inventory base URL
// to catch configuration errors before attempting to connect.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
		logger.Error("invalid MongoDB URI", zap.Error(err))
		return fmt.Errorf("invalid MongoDB URI: %w", err)
	}
	if err := validateBaseURL(appCfg.BaseURL); err != nil {
		logger.Error("invalid base_url", zap.String("base_url", appCfg.BaseURL), zap.Error(err))
		return err
	}
	if appCfg.MaxUploadBytes <= 0 {
		return errors.New("max_upload_mb must be positive")
	}
	if appCfg.SlotClientTimeout <= 0 || appCfg.SlotClientTimeout > 5*time.Minute {
		return fmt.Errorf("slot_client_timeout %s out of range", appCfg.SlotClientTimeout)
	}
	if (appCfg.RazorpayKeyID == "") != (appCfg.RazorpayKeySecret == "") {
		return errors.New("razorpay_key_id and razorpay_key_secret must be set together")
	}
	return nil
}

func validateBaseURL(raw string) error {
	if raw == "" {
		return errors.New("base_url is required")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("base_url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("base_url must be http or https, got %q", u.Scheme)
	}
	if u.Host == "" {
		return errors.New("base_url has no host")
	}
	return nil
}
