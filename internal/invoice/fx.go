package invoice

import (
	"github.com/casetrail/casetrail/internal/invoice/repository"
	"github.com/casetrail/casetrail/internal/invoice/service"
	"go.uber.org/fx"
)

var Module = fx.Module("invoice.service",
	fx.Provide(repository.NewRepository),
	fx.Provide(service.NewService),
)
