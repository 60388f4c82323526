package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/service-scheduler/internal/audit"
	"github.com/BruksfildServices01/service-scheduler/internal/config"
	appointmentDomain "github.com/BruksfildServices01/service-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/service-scheduler/internal/handlers"
	infraRepo "github.com/BruksfildServices01/service-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/service-scheduler/internal/infra/storage"
	"github.com/BruksfildServices01/service-scheduler/internal/middleware"
	"github.com/BruksfildServices01/service-scheduler/internal/payment"
	"github.com/BruksfildServices01/service-scheduler/internal/telemetry"
	ucAppointment "github.com/BruksfildServices01/service-scheduler/internal/usecase/appointment"
	ucDashboard "github.com/BruksfildServices01/service-scheduler/internal/usecase/dashboard"
)

// Dependencies are the process-wide singletons built in main.
// Locker, Store and Payments may be nil when not configured.
type Dependencies struct {
	DB      *gorm.DB
	Config  *config.Config
	Log     zerolog.Logger
	Metrics *telemetry.Metrics
	Audit   *audit.Dispatcher

	Locker   appointmentDomain.Locker
	Store    storage.ObjectStore
	Payments payment.Gateway
}

type Handlers struct {
	Appointment *handlers.AppointmentHandler
	Dashboard   *handlers.DashboardHandler
	AuditLogs   *handlers.AuditLogsHandler
}

func RegisterRoutes(r *gin.Engine, d Dependencies) {

	// ======================================================
	// 🔧 INFRA (SINGLETONS)
	// ======================================================
	appointmentRepo := infraRepo.NewAppointmentGormRepository(d.DB)
	dashboardRepo := infraRepo.NewDashboardGormRepository(d.DB)
	auditRepo := infraRepo.NewAuditLogGormRepository(d.DB)

	rule, err := appointmentDomain.ParseConflictRule(d.Config.ConflictRule)
	if err != nil {
		d.Log.Warn().Str("rule", d.Config.ConflictRule).Msg("unknown booking conflict rule, using start_in_range")
		rule = appointmentDomain.RuleStartInRange
	}

	// ======================================================
	// 🧠 USE CASES
	// ======================================================
	createAppointmentUC := ucAppointment.NewCreateAppointment(
		appointmentRepo,
		d.Locker,
		d.Audit,
		d.Metrics,
		rule,
		d.Log,
	)
	updateStatusUC := ucAppointment.NewUpdateAppointmentStatus(appointmentRepo, d.Audit)
	listAppointmentsUC := ucAppointment.NewListAppointments(appointmentRepo)
	noShowChargeUC := ucAppointment.NewCreateNoShowCharge(appointmentRepo, d.Payments, d.Audit)

	getDashboardUC := ucDashboard.NewGetDashboard(dashboardRepo, d.Config.SlotsPerDay, d.Metrics, d.Log)
	exportDashboardUC := ucDashboard.NewExportDashboard(getDashboardUC, d.Store, d.Audit)

	// ======================================================
	// 🧩 HANDLERS
	// ======================================================
	h := Handlers{
		Appointment: handlers.NewAppointmentHandler(
			createAppointmentUC,
			updateStatusUC,
			listAppointmentsUC,
			noShowChargeUC,
		),
		Dashboard: handlers.NewDashboardHandler(getDashboardUC, exportDashboardUC),
		AuditLogs: handlers.NewAuditLogsHandler(auditRepo),
	}

	Mount(r, d.Config, d.Metrics, h)
}

// Mount attaches the routes; split from RegisterRoutes so tests can pass
// handlers built on fakes.
func Mount(r *gin.Engine, cfg *config.Config, m *telemetry.Metrics, h Handlers) {

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	if m != nil {
		r.GET("/metrics", gin.WrapH(m.Handler()))
	}

	// ======================================================
	// 🔐 ÁREA AUTENTICADA
	// ======================================================
	me := r.Group("/api/me")
	me.Use(middleware.AuthMiddleware(cfg))
	{
		me.POST("/appointments", h.Appointment.Create)
		me.GET("/appointments", h.Appointment.List)
		me.PATCH("/appointments/:id/status", h.Appointment.UpdateStatus)
		me.POST("/appointments/:id/no-show-charge", middleware.RequireOwner(), h.Appointment.CreateNoShowCharge)

		me.GET("/dashboard", h.Dashboard.Get)
		me.POST("/dashboard/export", middleware.RequireOwner(), h.Dashboard.Export)

		me.GET("/audit-logs", middleware.RequireOwner(), h.AuditLogs.List)
	}
}
