// Package migration applies the schema on startup.
package migration

import (
	"context"

	attachmentdomain "github.com/casetrail/casetrail/internal/attachment/domain"
	billingdomain "github.com/casetrail/casetrail/internal/billing/domain"
	brandingdomain "github.com/casetrail/casetrail/internal/branding/domain"
	capabilitydomain "github.com/casetrail/casetrail/internal/capability/domain"
	casedomain "github.com/casetrail/casetrail/internal/casefile/domain"
	caseworkdomain "github.com/casetrail/casetrail/internal/casework/domain"
	updatedomain "github.com/casetrail/casetrail/internal/caseupdate/domain"
	enforcementdomain "github.com/casetrail/casetrail/internal/enforcement/domain"
	invoicedomain "github.com/casetrail/casetrail/internal/invoice/domain"
	orgdomain "github.com/casetrail/casetrail/internal/organization/domain"
	picklistdomain "github.com/casetrail/casetrail/internal/picklist/domain"
	retainerdomain "github.com/casetrail/casetrail/internal/retainer/domain"
	subjectdomain "github.com/casetrail/casetrail/internal/subject/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Models is every table the platform owns, in dependency order.
func Models() []any {
	return []any{
		&orgdomain.Organization{},
		&orgdomain.OrganizationMember{},
		&orgdomain.GlobalAdminGrant{},
		&orgdomain.Profile{},
		&capabilitydomain.PermissionRule{},
		&picklistdomain.PicklistEntry{},
		&casedomain.Case{},
		&subjectdomain.Subject{},
		&attachmentdomain.Attachment{},
		&updatedomain.CaseUpdate{},
		&billingdomain.BillingItem{},
		&invoicedomain.Invoice{},
		&retainerdomain.RetainerEntry{},
		&caseworkdomain.CaseService{},
		&caseworkdomain.PricingRule{},
		&caseworkdomain.ServiceInstance{},
		&enforcementdomain.EnforcementAction{},
		&brandingdomain.OrganizationSettings{},
		&brandingdomain.CaseRequestForm{},
	}
}

var Module = fx.Module("migration",
	fx.Invoke(run),
)

func run(lc fx.Lifecycle, db *gorm.DB, log *zap.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("applying schema migrations")
			return db.WithContext(ctx).AutoMigrate(Models()...)
		},
	})
}
