package subject

import (
	"github.com/casetrail/casetrail/internal/subject/repository"
	"github.com/casetrail/casetrail/internal/subject/service"
	"go.uber.org/fx"
)

var Module = fx.Module("subject.service",
	fx.Provide(repository.NewRepository),
	fx.Provide(service.NewService),
)
