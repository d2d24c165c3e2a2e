package caseupdate

import (
	"github.com/casetrail/casetrail/internal/caseupdate/repository"
	"github.com/casetrail/casetrail/internal/caseupdate/service"
	"go.uber.org/fx"
)

var Module = fx.Module("caseupdate.service",
	fx.Provide(repository.NewRepository),
	fx.Provide(service.NewService),
)
