package app

import (
	"context"
	"fmt"

	"github.com/nguyentranbao-ct/support-desk/internal/config"
	"github.com/nguyentranbao-ct/support-desk/internal/repo"
	"github.com/nguyentranbao-ct/support-desk/internal/repo/memory"
	"github.com/nguyentranbao-ct/support-desk/internal/repo/postgres"
	"github.com/nguyentranbao-ct/support-desk/internal/usecase"
	"go.uber.org/fx"
)

// newRepositories wires the storage backend selected by STORAGE_DRIVER. The
// memory driver has no ticket/chat capability, so its TicketChatRepository
// is nil and the ticket usecase degrades explicitly.
func newRepositories(lc fx.Lifecycle, cfg *config.Config) (
	repo.UserRepository,
	repo.ActivityRepository,
	repo.TicketChatRepository,
	error,
) {
	switch cfg.Storage.Driver {
	case "memory":
		store := memory.NewStore()
		return memory.NewUserRepository(store), memory.NewActivityRepository(store), nil, nil

	case "postgres":
		db, err := postgres.Open(cfg.Storage.DSN())
		if err != nil {
			return nil, nil, nil, fmt.Errorf("storage: %w", err)
		}
		lc.Append(fx.Hook{
			OnStart: func(context.Context) error {
				return db.Migrate()
			},
			OnStop: func(context.Context) error {
				return db.Close()
			},
		})
		return postgres.NewUserRepository(db), postgres.NewActivityRepository(db), postgres.NewTicketChatRepository(db), nil

	default:
		return nil, nil, nil, fmt.Errorf("storage: unknown driver %q", cfg.Storage.Driver)
	}
}

// InitializeSeedData inserts the demo agent and her activities on startup.
func InitializeSeedData(
	lc fx.Lifecycle,
	users repo.UserRepository,
	activities repo.ActivityRepository,
) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return usecase.SeedDemoData(ctx, users, activities)
		},
	})
}
