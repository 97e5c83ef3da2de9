package commands

import (
	"context"

	"kitchen/internal/core/ports"
)

// UoW is the transaction boundary command handlers work against. It mirrors
// ports.UnitOfWork but is declared here so handlers depend only on what
// they use and tests can substitute small mocks.
type UoW interface {
	Begin(ctx context.Context) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
	OrderRepository() ports.OrderRepository
	HistoryRepository() ports.HistoryRepository
	SettingsRepository() ports.SettingsRepository
}

// UoWFactory creates a fresh UoW per handled command.
type UoWFactory interface {
	Create() UoW
}
