package components

import (
	"partage/internal/infra/uow"

	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	fx.Provide(
		// NewPostgresUoW already returns the shared.UnitOfWork interface;
		// every repository is reached through it inside a transaction.
		uow.NewPostgresUoW,
	),
)
