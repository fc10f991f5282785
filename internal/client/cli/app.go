// Package cli implements the interactive gymtrack terminal client: a REPL
// over the API services, with the session store deciding which commands are
// available and whether the admin console is shown.
package cli

import (
	"bufio"
	"context"
	"log/slog"
	"os"

	"gymtrack/internal/client/api"
	"gymtrack/internal/client/config"
	"gymtrack/internal/client/repositories/localstore"
	"gymtrack/internal/client/services"
	"gymtrack/internal/client/session"
	"gymtrack/internal/logging"

	_ "modernc.org/sqlite"
)

type App struct {
	config *config.Config
	store  *session.Store
	log    logging.Logger
	reader *bufio.Reader
	status string

	auth      services.AuthService
	exercises services.ExerciseService
	plans     services.PlanService
	schedules services.ScheduleService
	workouts  services.WorkoutService
	stats     services.StatsService
	users     services.UserService
	admin     services.AdminService
}

// NewApp wires the whole client: local database, durable session mirror,
// request pipeline, API services and the session store. The pipeline's
// unauthorized hook is connected to the store so a 401 anywhere drops the
// session immediately.
func NewApp(c *config.Config) (*App, error) {
	ctx := context.Background()

	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	db, err := localstore.Open(ctx, c.LocalDBPath)
	if err != nil {
		logger.Error(ctx, "error initializing local database", "err", err)
		return nil, err
	}

	mirror := session.NewMirror(db)
	apiClient := api.New(c.ServerURL, c.RequestTimeout, mirror, mirror, logger)

	authSvc := services.NewAuthService(apiClient)
	store := session.NewStore(authSvc, db, logger)
	apiClient.OnUnauthorized(func(ctx context.Context) {
		store.Invalidate(ctx)
		printlnFn("Session expired, please log in again.")
	})

	return &App{
		config:    c,
		store:     store,
		log:       logger,
		reader:    bufio.NewReader(os.Stdin),
		auth:      authSvc,
		exercises: services.NewExerciseService(apiClient),
		plans:     services.NewPlanService(apiClient),
		schedules: services.NewScheduleService(apiClient),
		workouts:  services.NewWorkoutService(apiClient),
		stats:     services.NewStatsService(apiClient),
		users:     services.NewUserService(apiClient),
		admin:     services.NewAdminService(apiClient),
	}, nil
}

// Run restores any mirrored session and enters the REPL.
func (a *App) Run(ctx context.Context) {
	if err := a.store.Restore(ctx); err != nil {
		a.log.Error(ctx, "session restore failed", "err", err)
	}

	if snap := a.store.Snapshot(); snap.IsAuthenticated() {
		printlnFn("Welcome back,", snap.User.Email)
	}

	// The prompt tracks the session through a subscription rather than
	// polling, so a 401 during any command is reflected immediately.
	unsubscribe := a.store.Subscribe(func(snap session.Snapshot) {
		a.status = promptStatus(snap)
	})
	defer unsubscribe()
	a.status = promptStatus(a.store.Snapshot())

	a.Root(ctx)
}

func (a *App) isLoggedIn() bool {
	return a.store.IsAuthenticated()
}

func (a *App) isAdmin() bool {
	return session.IsAdmin(a.store.Snapshot().User)
}
