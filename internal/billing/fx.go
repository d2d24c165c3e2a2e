package billing

import (
	"github.com/casetrail/casetrail/internal/billing/repository"
	"github.com/casetrail/casetrail/internal/billing/service"
	"go.uber.org/fx"
)

var Module = fx.Module("billing.service",
	fx.Provide(repository.NewRepository),
	fx.Provide(service.NewService),
)
