// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	assignusersfeature "github.com/dalemusser/pooldash/internal/app/features/assignusers"
	feedbackfeature "github.com/dalemusser/pooldash/internal/app/features/feedback"
	groupsfeature "github.com/dalemusser/pooldash/internal/app/features/groups"
	healthfeature "github.com/dalemusser/pooldash/internal/app/features/health"
	imagesfeature "github.com/dalemusser/pooldash/internal/app/features/images"
	initialslotsfeature "github.com/dalemusser/pooldash/internal/app/features/initialslots"
	issuesfeature "github.com/dalemusser/pooldash/internal/app/features/issues"
	ordersfeature "github.com/dalemusser/pooldash/internal/app/features/orders"
	preferencesfeature "github.com/dalemusser/pooldash/internal/app/features/preferences"
	slotsfeature "github.com/dalemusser/pooldash/internal/app/features/slots"
	usersfeature "github.com/dalemusser/pooldash/internal/app/features/users"
	"github.com/dalemusser/pooldash/internal/app/system/payment"
	"github.com/dalemusser/pooldash/internal/app/system/slotclient"
	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed. Every feature is a JSON API mounted
// under its own prefix; there is no session layer because the owning email
// travels in each request.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	db := deps.MongoDatabase

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: appCfg.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
		MaxAge:         300,
	}))

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.MongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Accounts
	usersHandler := usersfeature.NewHandler(db, logger)
	r.Mount("/users", usersfeature.Routes(usersHandler))

	prefsHandler := preferencesfeature.NewHandler(db, logger)
	r.Mount("/api/preferences", preferencesfeature.Routes(prefsHandler))

	imagesHandler := imagesfeature.NewHandler(db, appCfg.MaxUploadBytes, logger)
	r.Mount("/upload", imagesfeature.Routes(imagesHandler))

	// Support
	feedbackHandler := feedbackfeature.NewHandler(db, logger)
	r.Mount("/api/feedback", feedbackfeature.Routes(feedbackHandler))

	issuesHandler := issuesfeature.NewHandler(db, logger)
	r.Mount("/api/issues", issuesfeature.Routes(issuesHandler))

	// Payments. The dashboard still calls the /razorpay prefix.
	ordersHandler := ordersfeature.NewHandler(db, paymentGateway(appCfg, logger), logger)
	r.Mount("/order", ordersfeature.Routes(ordersHandler))
	r.Mount("/razorpay", ordersfeature.Routes(ordersHandler))

	// Inventory
	slotsHandler := slotsfeature.NewHandler(db, logger)
	r.Mount("/slots", slotsfeature.Routes(slotsHandler))

	initialHandler := initialslotsfeature.NewHandler(db, logger)
	r.Mount("/initialslot", initialslotsfeature.Routes(initialHandler))

	// Roster
	groupsHandler := groupsfeature.NewHandler(db, logger)
	r.Mount("/group", groupsfeature.Routes(groupsHandler))

	slots := slotclient.New(appCfg.BaseURL, appCfg.SlotClientTimeout, logger)
	assignHandler := assignusersfeature.NewHandler(db, slots, appCfg.MaxUploadBytes, appCfg.MaxSheetRows, logger)
	r.Mount("/assignUsers", assignusersfeature.Routes(assignHandler))

	return r, nil
}

// paymentGateway returns the Razorpay gateway, or an in-memory one when no
// credentials are configured.
func paymentGateway(appCfg AppConfig, logger *zap.Logger) payment.Gateway {
	if appCfg.RazorpayKeyID == "" || appCfg.RazorpayKeySecret == "" {
		return &payment.FakeGateway{}
	}
	return payment.NewRazorpay(appCfg.RazorpayKeyID, appCfg.RazorpayKeySecret, logger)
}
