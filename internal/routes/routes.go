package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/fitlane/trainer-scheduler/internal/audit"
	"github.com/fitlane/trainer-scheduler/internal/config"
	"github.com/fitlane/trainer-scheduler/internal/handlers"
	infraRepo "github.com/fitlane/trainer-scheduler/internal/infra/repository"
	"github.com/fitlane/trainer-scheduler/internal/infra/redisstore"
	"github.com/fitlane/trainer-scheduler/internal/locks"
	"github.com/fitlane/trainer-scheduler/internal/middleware"
	"github.com/fitlane/trainer-scheduler/internal/notify"
	ucRegistration "github.com/fitlane/trainer-scheduler/internal/usecase/registration"
	ucSchedule "github.com/fitlane/trainer-scheduler/internal/usecase/schedule"
)

// RegisterRoutes wires repositories, use cases and handlers onto the engine.
// It returns the poller and the audit dispatcher so main can run the
// notification sweep and drain the audit queue on shutdown.
func RegisterRoutes(
	r *gin.Engine,
	db *gorm.DB,
	rdb *redis.Client,
	cfg *config.Config,
	log zerolog.Logger,
) (*notify.Poller, *audit.Dispatcher) {

	// ======================================================
	// MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.CORSMiddleware())

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	scheduleRepo := infraRepo.NewScheduleGormRepository(db)
	registrationRepo := infraRepo.NewRegistrationGormRepository(db)

	checkpoints := redisstore.NewCheckpointStore(rdb)
	tokens := redisstore.NewTokenStore(rdb)

	trainerLocks := locks.NewTrainerLocks()

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger, log)

	poller := notify.NewPoller(registrationRepo, checkpoints, log)

	// ======================================================
	// USE CASES — SCHEDULE
	// ======================================================
	addSlotUC := ucSchedule.NewAddSlot(scheduleRepo, trainerLocks, auditDispatcher)
	removeSlotUC := ucSchedule.NewRemoveSlot(scheduleRepo, trainerLocks, auditDispatcher)
	replaceWeekUC := ucSchedule.NewReplaceWeek(scheduleRepo, trainerLocks, auditDispatcher)
	listAvailableUC := ucSchedule.NewListAvailable(scheduleRepo)

	// ======================================================
	// USE CASES — REGISTRATIONS
	// ======================================================
	createBatchUC := ucRegistration.NewCreateBatch(
		registrationRepo,
		tokens,
		trainerLocks,
		auditDispatcher,
		cfg.Timezone,
	)
	createSingleUC := ucRegistration.NewCreateSingle(registrationRepo, auditDispatcher, cfg.Timezone)
	approveUC := ucRegistration.NewApprove(registrationRepo, auditDispatcher)
	rejectUC := ucRegistration.NewReject(registrationRepo, auditDispatcher)
	cancelUC := ucRegistration.NewCancel(registrationRepo, auditDispatcher)
	completeUC := ucRegistration.NewComplete(registrationRepo, auditDispatcher)
	recordProgressUC := ucRegistration.NewRecordProgress(registrationRepo, auditDispatcher)
	listUC := ucRegistration.NewList(registrationRepo)

	// ======================================================
	// HANDLERS
	// ======================================================
	workScheduleHandler := handlers.NewWorkScheduleHandler(
		addSlotUC,
		removeSlotUC,
		replaceWeekUC,
		listAvailableUC,
	)

	registrationHandler := handlers.NewRegistrationHandler(
		createBatchUC,
		createSingleUC,
		approveUC,
		rejectUC,
		cancelUC,
		completeUC,
		recordProgressUC,
		listUC,
		poller,
	)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// PUBLIC
		// ------------------------------
		api.GET("/work-schedules/available/:trainerId", workScheduleHandler.ListAvailable)

		// ------------------------------
		// PRIVATE
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			// ------------------------------
			// TRAINER AVAILABILITY
			// ------------------------------
			trainer := secured.Group("/")
			trainer.Use(middleware.RequireRole(middleware.RoleTrainer))
			{
				trainer.POST("/work-schedules", workScheduleHandler.Create)
				trainer.PUT("/work-schedules", workScheduleHandler.Replace)
				trainer.DELETE("/work-schedules/:id", workScheduleHandler.Delete)

				trainer.GET("/service-registrations/my-customers", registrationHandler.ListCustomers)
				trainer.GET("/service-registrations/my-customers/new", registrationHandler.ListNew)
				trainer.PUT("/service-registrations/:id/status", registrationHandler.UpdateStatus)
				trainer.PUT("/service-registrations/:id/sessions", registrationHandler.UpdateSessions)
			}

			// ------------------------------
			// CUSTOMER REGISTRATIONS
			// ------------------------------
			customer := secured.Group("/")
			customer.Use(middleware.RequireRole(middleware.RoleCustomer))
			{
				customer.POST("/service-registrations", registrationHandler.Create)
				customer.GET("/service-registrations/my-registrations", registrationHandler.ListMine)
				customer.PUT("/service-registrations/:id/cancel", registrationHandler.Cancel)
			}
		}
	}

	return poller, auditDispatcher
}
