package enforcement

import (
	"github.com/casetrail/casetrail/internal/enforcement/repository"
	"github.com/casetrail/casetrail/internal/enforcement/service"
	"go.uber.org/fx"
)

var Module = fx.Module("enforcement.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.NewService),
)
