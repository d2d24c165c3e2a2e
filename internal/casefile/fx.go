package casefile

import (
	"github.com/casetrail/casetrail/internal/casefile/repository"
	"github.com/casetrail/casetrail/internal/casefile/service"
	"go.uber.org/fx"
)

var Module = fx.Module("casefile.service",
	fx.Provide(repository.NewRepository),
	fx.Provide(service.NewService),
)
