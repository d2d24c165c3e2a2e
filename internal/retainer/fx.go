package retainer

import (
	"github.com/casetrail/casetrail/internal/retainer/repository"
	"github.com/casetrail/casetrail/internal/retainer/service"
	"go.uber.org/fx"
)

var Module = fx.Module("retainer.service",
	fx.Provide(repository.NewRepository),
	fx.Provide(service.NewService),
)
