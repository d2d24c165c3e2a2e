package branding

import (
	"github.com/casetrail/casetrail/internal/branding/repository"
	"github.com/casetrail/casetrail/internal/branding/service"
	"go.uber.org/fx"
)

var Module = fx.Module("branding.service",
	fx.Provide(repository.NewRepository),
	fx.Provide(service.NewService),
)
