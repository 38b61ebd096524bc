package app

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/campus_bot/internal/config"
	"github.com/Freeeeeet/campus_bot/internal/portal"
	"github.com/Freeeeeet/campus_bot/internal/repository"
	"github.com/Freeeeeet/campus_bot/internal/service"
	"github.com/Freeeeeet/campus_bot/internal/weather"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// App собранные зависимости бота и CLI-команд
type App struct {
	Config *config.Config
	Logger *zap.Logger
	Portal *portal.Portal

	Users    *service.UserService
	Groups   *service.GroupService
	Schedule *service.ScheduleService
	Weather  *service.WeatherService

	pool *pgxpool.Pool
}

// New собирает приложение. С DB_DSN пользователи живут в PostgreSQL
// (миграции применяются здесь же), без него - в YAML-файле.
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	p, err := NewPortal(cfg, logger)
	if err != nil {
		return nil, err
	}

	a := &App{
		Config: cfg,
		Logger: logger,
		Portal: p,
	}

	store, err := a.openUserStore(ctx)
	if err != nil {
		return nil, err
	}

	groups, err := service.NewGroupService(p, logger)
	if err != nil {
		a.Close()
		return nil, err
	}

	a.Users = service.NewUserService(store, logger)
	a.Groups = groups
	a.Schedule = service.NewScheduleService(p, cfg.Location, logger)
	a.Weather = service.NewWeatherService(
		weather.NewClient(weather.DefaultBaseURL, cfg.HTTPTimeout),
		cfg.WeatherLat, cfg.WeatherLon, cfg.Location, logger,
	)

	return a, nil
}

// NewPortal клиент портала с собственной сессией
func NewPortal(cfg *config.Config, logger *zap.Logger) (*portal.Portal, error) {
	client, err := portal.NewClient(cfg.PortalBaseURL, cfg.HTTPTimeout)
	if err != nil {
		return nil, fmt.Errorf("create portal client: %w", err)
	}

	session := portal.NewSession(client, portal.Credentials{
		Login:    cfg.PortalLogin,
		Password: cfg.PortalPassword,
	}, logger)

	return portal.New(client, session, logger), nil
}

func (a *App) openUserStore(ctx context.Context) (service.UserStore, error) {
	if !a.Config.UseDatabase() {
		a.Logger.Info("Using YAML user store", zap.String("file", a.Config.UsersFile))
		return repository.NewYAMLUserRepository(afero.NewOsFs(), a.Config.UsersFile), nil
	}

	pool, err := OpenPool(ctx, a.Config.DBDSN)
	if err != nil {
		return nil, err
	}
	a.pool = pool

	if err := Migrate(ctx, pool, a.Logger); err != nil {
		a.Close()
		return nil, err
	}

	a.Logger.Info("Using PostgreSQL user store")
	return repository.NewUserRepository(pool), nil
}

// Close освобождает соединения с базой и кэш групп
func (a *App) Close() {
	if a.Groups != nil {
		a.Groups.Close()
		a.Groups = nil
	}
	if a.pool != nil {
		a.pool.Close()
		a.pool = nil
	}
}

// OpenPool подключается к PostgreSQL и проверяет соединение
func OpenPool(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("create db pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}
	return pool, nil
}

// Migrate применяет встроенные миграции
func Migrate(ctx context.Context, pool *pgxpool.Pool, logger *zap.Logger) error {
	migrator, err := NewMigrator(pool, logger)
	if err != nil {
		return err
	}
	defer migrator.Close()

	return migrator.Run(ctx)
}
