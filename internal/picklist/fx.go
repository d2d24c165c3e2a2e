package picklist

import (
	"github.com/casetrail/casetrail/internal/picklist/repository"
	"github.com/casetrail/casetrail/internal/picklist/service"
	"go.uber.org/fx"
)

var Module = fx.Module("picklist.service",
	fx.Provide(repository.NewRepository),
	fx.Provide(service.NewService),
)
