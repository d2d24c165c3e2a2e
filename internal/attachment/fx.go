package attachment

import (
	"github.com/casetrail/casetrail/internal/attachment/repository"
	"github.com/casetrail/casetrail/internal/attachment/service"
	"go.uber.org/fx"
)

var Module = fx.Module("attachment.service",
	fx.Provide(repository.NewRepository),
	fx.Provide(service.NewService),
)
