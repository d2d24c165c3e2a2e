package casework

import (
	"github.com/casetrail/casetrail/internal/casework/repository"
	"github.com/casetrail/casetrail/internal/casework/service"
	"go.uber.org/fx"
)

var Module = fx.Module("casework.service",
	fx.Provide(repository.NewRepository),
	fx.Provide(service.NewService),
)
