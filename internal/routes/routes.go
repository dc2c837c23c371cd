package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/dogtrainer-admin/internal/audit"
	"github.com/BruksfildServices01/dogtrainer-admin/internal/config"
	domainClient "github.com/BruksfildServices01/dogtrainer-admin/internal/domain/client"
	"github.com/BruksfildServices01/dogtrainer-admin/internal/handlers"
	infraRepo "github.com/BruksfildServices01/dogtrainer-admin/internal/infra/repository"
	"github.com/BruksfildServices01/dogtrainer-admin/internal/lock"
	"github.com/BruksfildServices01/dogtrainer-admin/internal/middleware"
	ucAnalytics "github.com/BruksfildServices01/dogtrainer-admin/internal/usecase/analytics"
	ucIngest "github.com/BruksfildServices01/dogtrainer-admin/internal/usecase/ingest"
	ucIntake "github.com/BruksfildServices01/dogtrainer-admin/internal/usecase/intake"
	ucReconcile "github.com/BruksfildServices01/dogtrainer-admin/internal/usecase/reconcile"
)

// Deps are the process-wide singletons built in main.
type Deps struct {
	DB        *gorm.DB
	Config    *config.Config
	Locker    lock.Locker
	Audit     *audit.Dispatcher
	History   audit.History
	Overrides domainClient.OverrideTable
	Location  *time.Location
}

func RegisterRoutes(r *gin.Engine, d Deps) {

	// ======================================================
	// MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.CORSMiddleware(d.Config.CORSOrigins))
	r.Use(middleware.Metrics())

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	clientRepo := infraRepo.NewClientGormRepository(d.DB)
	sessionRepo := infraRepo.NewSessionGormRepository(d.DB)
	membershipRepo := infraRepo.NewMembershipGormRepository(d.DB)
	intakeRepo := infraRepo.NewIntakeGormRepository(d.DB)

	now := time.Now
	resolver := ucIngest.NewClientResolver(clientRepo, d.Locker, now)

	// ======================================================
	// USE CASES (INGEST)
	// ======================================================
	paymentUC := ucIngest.NewRecordPayment(resolver, clientRepo, membershipRepo, d.Audit, d.Location)
	orderUC := ucIngest.NewRecordOrder(paymentUC)
	statusUC := ucIngest.NewApplyMembershipStatus(resolver, clientRepo, membershipRepo, d.Audit, d.Location, now)
	newClientUC := ucIngest.NewCreateMemberClient(resolver, membershipRepo, d.Audit, d.Location, now)
	cancelUC := ucIngest.NewCancelMembership(resolver, clientRepo, d.Audit)

	// ======================================================
	// USE CASES (ADMIN)
	// ======================================================
	matchSessionsUC := ucReconcile.NewMatchSessions(clientRepo, sessionRepo, d.Audit)
	analyticsUC := ucAnalytics.NewMembershipAnalytics(membershipRepo, clientRepo, d.Overrides, d.Location, now)
	intakeUC := ucIntake.NewSubmit(resolver, clientRepo, intakeRepo, d.Audit, now)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(d.Config)
	webhookHandler := handlers.NewWebhookHandler(paymentUC, orderUC, statusUC, newClientUC, cancelUC)
	adminHandler := handlers.NewAdminHandler(matchSessionsUC)
	analyticsHandler := handlers.NewAnalyticsHandler(analyticsUC)
	clientHandler := handlers.NewClientHandler(clientRepo, sessionRepo, membershipRepo, intakeRepo, d.Audit)
	intakeHandler := handlers.NewIntakeHandler(intakeUC)
	auditLogsHandler := handlers.NewAuditLogsHandler(d.History, d.Location)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// PUBLIC INTAKE
		// ------------------------------
		publicAPI := api.Group("/public")
		{
			publicAPI.POST("/behavioural-brief", intakeHandler.BehaviouralBrief)
			publicAPI.POST("/behaviour-questionnaire", intakeHandler.BehaviourQuestionnaire)
		}

		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// WEBHOOKS
		// ------------------------------
		webhooks := api.Group("/webhooks")
		webhooks.Use(middleware.WebhookSecret(d.Config.WebhookSecret))
		{
			webhooks.POST("/payment", webhookHandler.Payment)
			webhooks.POST("/order", webhookHandler.Order)
			webhooks.POST("/membership", webhookHandler.Membership)
			webhooks.POST("/new-client", webhookHandler.NewClient)
			webhooks.POST("/cancel", webhookHandler.Cancel)
		}

		// ------------------------------
		// ADMIN
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(d.Config))
		{
			secured.GET("/memberships/analytics", analyticsHandler.Memberships)

			secured.GET("/admin/match-sessions", adminHandler.InspectSessions)
			secured.POST("/admin/match-sessions", adminHandler.MatchSessions)

			secured.GET("/admin/clients", clientHandler.List)
			secured.GET("/admin/clients/match", clientHandler.Match)
			secured.GET("/admin/clients/:id", clientHandler.Get)
			secured.PATCH("/admin/clients/:id", clientHandler.Update)
			secured.DELETE("/admin/clients/:id", clientHandler.Delete)

			secured.GET("/admin/history", auditLogsHandler.List)
		}
	}
}
