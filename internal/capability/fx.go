package capability

import (
	"context"

	"github.com/casetrail/casetrail/internal/capability/domain"
	"github.com/casetrail/casetrail/internal/capability/repository"
	"github.com/casetrail/casetrail/internal/capability/service"
	"go.uber.org/fx"
)

func seedDefaults(lc fx.Lifecycle, svc domain.Service) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return svc.SeedDefaults(ctx, domain.DefaultGrants)
		},
	})
}

var Module = fx.Module("capability.service",
	fx.Provide(repository.NewRepository),
	fx.Provide(service.NewService),
	fx.Invoke(seedDefaults),
)
