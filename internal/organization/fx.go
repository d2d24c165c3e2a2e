package organization

import (
	"github.com/casetrail/casetrail/internal/organization/repository"
	"github.com/casetrail/casetrail/internal/organization/service"
	"go.uber.org/fx"
)

var Module = fx.Module("organization.service",
	fx.Provide(repository.NewRepository),
	fx.Provide(service.NewService),
)
