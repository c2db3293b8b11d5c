package port

import (
	"context"
	"metahub/internal/core/domain"
)

type ModuleStore interface {
	// Register validates the module record and writes its registry entries
	// (the module record plus one reverse mapping per action id) as one
	// atomic unit, all sharing the store's configured TTL. A re-registration
	// replaces the previous entries wholesale.
	Register(ctx context.Context, module *domain.Module) error
	// GetModule returns the live record or domain.ErrModuleNotFound once the
	// lease has expired.
	GetModule(ctx context.Context, name string) (*domain.Module, error)
	// GetModuleByAction resolves an action id to its owning module, or
	// domain.ErrModuleNotFound if either the mapping or the module expired.
	GetModuleByAction(ctx context.Context, actionID string) (*domain.Module, error)
	// ModuleNames lists the names of all live modules, order unspecified.
	ModuleNames(ctx context.Context) ([]string, error)
	// AllModules fetches every live module; entries expiring mid-enumeration
	// are skipped silently.
	AllModules(ctx context.Context) (map[string]*domain.Module, error)
}
