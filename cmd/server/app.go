package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/phrazzld/tasks-api/internal/api/middleware"
	"github.com/phrazzld/tasks-api/internal/classification"
	"github.com/phrazzld/tasks-api/internal/config"
	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/phrazzld/tasks-api/internal/events"
	"github.com/phrazzld/tasks-api/internal/job"
	"github.com/phrazzld/tasks-api/internal/notify"
	"github.com/phrazzld/tasks-api/internal/platform/classifier"
	"github.com/phrazzld/tasks-api/internal/platform/fcm"
	"github.com/phrazzld/tasks-api/internal/platform/gemini"
	"github.com/phrazzld/tasks-api/internal/platform/postgres"
	"github.com/phrazzld/tasks-api/internal/platform/redis"
	"github.com/phrazzld/tasks-api/internal/service"
	"github.com/phrazzld/tasks-api/internal/service/auth"
	"github.com/phrazzld/tasks-api/internal/store"
	goredis "github.com/redis/go-redis/v9"
)

const (
	jobReminderSweep    = "reminder_sweep"
	jobTokenExpirySweep = "token_expiry_sweep"
)

// stores groups the persistence dependencies.
type stores struct {
	lists      store.ListStore
	tasks      store.TaskStore
	tokens     store.TokenStore
	pushTokens store.PushTokenStore
	reminders  store.ReminderStore
	users      store.UserStore
	tx         store.Transactor
}

// application holds the shared dependencies and owns their lifecycle.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	jwtService auth.JWTService
	limiter    middleware.Limiter
	redis      *goredis.Client

	gate       *service.MembershipGate
	lists      *service.ListService
	tasks      *service.TaskService
	pushTokens *service.PushTokenService
	profiles   *service.ProfileService

	emitter   events.EventEmitter
	bus       *events.InMemoryEventEmitter
	consumer  *events.KafkaConsumer
	runner    *job.Runner
	scheduler *job.Scheduler
}

// newApplication builds every component from cfg over db.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{config: cfg, logger: logger, db: db}

	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}

	if cfg.Redis.Addr != "" && cfg.Redis.RequestsPerMinute > 0 {
		app.redis, err = redis.NewClient(ctx, cfg.Redis, logger)
		if err != nil {
			return nil, err
		}
		app.limiter = redis.NewLimiter(app.redis, cfg.Redis.RequestsPerMinute)
	} else {
		logger.Info("rate limiting disabled")
	}

	st := stores{
		lists:      postgres.NewPostgresListStore(db, logger),
		tasks:      postgres.NewPostgresTaskStore(db, logger),
		tokens:     postgres.NewPostgresTokenStore(db, logger),
		pushTokens: postgres.NewPostgresPushTokenStore(db, logger),
		reminders:  postgres.NewPostgresReminderStore(db, logger),
		users:      postgres.NewPostgresUserStore(db, logger),
		tx:         store.NewSQLTransactor(db),
	}

	sender, err := newSender(ctx, cfg.Push, logger)
	if err != nil {
		return nil, err
	}
	cls, err := newClassifier(ctx, cfg.Classifier, logger)
	if err != nil {
		return nil, err
	}

	if err := app.wire(st, sender, cls); err != nil {
		return nil, err
	}

	logger.Info("application initialized")
	return app, nil
}

// wire builds the event bus, services, background jobs and their
// subscriptions. cls may be nil to disable category prediction.
func (app *application) wire(st stores, sender notify.Sender, cls classification.Classifier) error {
	cfg, logger := app.config, app.logger

	app.runner = job.NewRunner(job.RunnerConfig{
		WorkerCount: cfg.Jobs.WorkerCount,
		QueueSize:   cfg.Jobs.QueueSize,
		JobTimeout:  cfg.Jobs.JobTimeout,
	}, logger)

	// Handlers always hang off an in-memory bus. With Kafka the bus is fed
	// by the consumer instead of directly by the services.
	app.bus = events.NewInMemoryEventEmitter(logger)
	switch cfg.Events.Backend {
	case "kafka":
		kcfg := events.KafkaConfig{Brokers: cfg.Events.Brokers, Topic: cfg.Events.Topic, GroupID: cfg.Events.GroupID}
		app.emitter = events.NewKafkaEventEmitter(kcfg, logger)
		app.consumer = events.NewKafkaConsumer(kcfg, app.bus, logger)
	default:
		app.emitter = app.bus
	}

	dispatcher := notify.NewDispatcher(sender, st.pushTokens, cfg.Push.BatchSize, logger)
	notifier := notify.NewActionNotifier(st.lists, st.users, st.pushTokens, dispatcher, cfg.Push.IncludeActor, logger)
	app.bus.RegisterHandler(job.NewEventHandler(notifier, app.runner, logger))

	if cls != nil {
		predictor := classification.NewPredictor(cls, st.lists, st.tasks, app.emitter, cfg.Classifier.Timeout, logger)
		app.bus.RegisterHandler(job.NewEventHandler(predictor, app.runner, logger),
			domain.ActionAddTask, domain.ActionEditTask, domain.ActionCompleteTask, domain.ActionStarTask)
	}

	sequencer := service.NewOrdinalSequencer(logger)
	app.gate = service.NewMembershipGate(st.lists, st.tokens, st.tx, sequencer, app.emitter, cfg.Invites.TTL, logger)
	app.lists = service.NewListService(st.lists, st.tx, app.gate, sequencer, logger)
	app.tasks = service.NewTaskService(st.tasks, st.tx, app.gate, sequencer, app.emitter, logger)
	app.pushTokens = service.NewPushTokenService(st.pushTokens, logger)
	app.profiles = service.NewProfileService(st.users, logger)

	app.scheduler = job.NewScheduler(cfg.Jobs.JobTimeout, logger)
	reminders := notify.NewReminderSweeper(st.reminders, st.pushTokens, dispatcher, logger)
	if err := app.scheduler.Register(jobReminderSweep, cfg.Jobs.ReminderInterval, reminders.Sweep); err != nil {
		return err
	}
	expiry := service.NewTokenExpirySweeper(st.tokens, logger)
	if err := app.scheduler.Register(jobTokenExpirySweep, cfg.Jobs.TokenExpiryInterval, expiry.Sweep); err != nil {
		return err
	}
	return nil
}

func newSender(ctx context.Context, cfg config.PushConfig, logger *slog.Logger) (notify.Sender, error) {
	if cfg.Backend == "fcm" {
		s, err := fcm.NewSender(ctx, cfg, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize push sender: %w", err)
		}
		return s, nil
	}
	return fcm.NewLogSender(logger), nil
}

// newClassifier returns nil when category prediction is disabled.
func newClassifier(ctx context.Context, cfg config.ClassifierConfig, logger *slog.Logger) (classification.Classifier, error) {
	switch cfg.Backend {
	case "websocket":
		c, err := classifier.NewClient(cfg.URL, cfg.Timeout, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize classifier client: %w", err)
		}
		return c, nil
	case "gemini":
		c, err := gemini.NewClassifier(ctx, cfg, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize gemini classifier: %w", err)
		}
		return c, nil
	default:
		logger.Info("category prediction disabled")
		return nil, nil
	}
}

// cleanup releases resources in reverse order of startup.
func (app *application) cleanup() {
	if app.scheduler != nil {
		app.scheduler.Stop()
	}
	if app.runner != nil {
		app.runner.Stop()
	}
	if app.consumer != nil {
		if err := app.consumer.Close(); err != nil {
			app.logger.Error("error closing event consumer", "error", err)
		}
	}
	if k, ok := app.emitter.(*events.KafkaEventEmitter); ok {
		if err := k.Close(); err != nil {
			app.logger.Error("error closing event publisher", "error", err)
		}
	}
	if app.redis != nil {
		if err := app.redis.Close(); err != nil {
			app.logger.Error("error closing redis client", "error", err)
		}
	}
	app.logger.Info("application shutdown completed")
}
