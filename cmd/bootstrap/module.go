package bootstrap

import (
	"partage/cmd/bootstrap/components"

	"go.uber.org/fx"
)

var Module = fx.Options(
	ConfigModule,
	DBModule,
	RedisModule,
	JWTModule,
	components.PersistenceModule,
	components.CollaboratorModule,
	components.UseCaseModule,
	components.HandlerModule,
)
