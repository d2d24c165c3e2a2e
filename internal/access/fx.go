package access

import (
	"github.com/casetrail/casetrail/internal/access/resolver"
	"github.com/casetrail/casetrail/internal/access/service"
	"go.uber.org/fx"
)

var Module = fx.Module("access.service",
	fx.Provide(resolver.NewRegistry),
	fx.Provide(service.NewService),
)
