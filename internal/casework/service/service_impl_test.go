package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	casedomain "github.com/casetrail/casetrail/internal/casefile/domain"
	caserepo "github.com/casetrail/casetrail/internal/casefile/repository"
	"github.com/casetrail/casetrail/internal/casework/domain"
	"github.com/casetrail/casetrail/internal/casework/repository"
	enforcementdomain "github.com/casetrail/casetrail/internal/enforcement/domain"
	enforcementrepo "github.com/casetrail/casetrail/internal/enforcement/repository"
	enforcementsvc "github.com/casetrail/casetrail/internal/enforcement/service"
	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newTestService(t *testing.T) (domain.Service, *gorm.DB, *snowflake.Node) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&casedomain.Case{},
		&domain.CaseService{},
		&domain.PricingRule{},
		&domain.ServiceInstance{},
		&enforcementdomain.EnforcementAction{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	enforcement := enforcementsvc.NewService(enforcementsvc.Params{
		DB:    db,
		Log:   zap.NewNop(),
		GenID: node,
		Repo:  enforcementrepo.Provide(),
	})
	svc := NewService(Params{
		DB:          db,
		Log:         zap.NewNop(),
		GenID:       node,
		Repo:        repository.NewRepository(db),
		Cases:       caserepo.NewRepository(db),
		Enforcement: enforcement,
	})
	return svc, db, node
}

func seedCaseAndService(t *testing.T, svc domain.Service, db *gorm.DB, node *snowflake.Node) (*casedomain.Case, *domain.CaseService) {
	t.Helper()
	ctx := context.Background()

	c := &casedomain.Case{
		ID:              node.Generate(),
		OrgID:           node.Generate(),
		ReferenceNumber: "REF-" + node.Generate().String(),
		Title:           "field case",
		Status:          "open",
		CreatedBy:       node.Generate(),
	}
	require.NoError(t, db.Create(c).Error)

	created, err := svc.CreateService(ctx, c.OrgID, c.CreatedBy, domain.CreateServiceRequest{
		CaseID: c.ID.String(),
		Name:   "surveillance",
	})
	require.NoError(t, err)
	return c, created
}

func TestCreateInstance_BillableWithoutRuleSucceedsAndDocumentsGap(t *testing.T) {
	svc, db, node := newTestService(t)
	ctx := context.Background()

	c, caseSvc := seedCaseAndService(t, svc, db, node)

	instance, err := svc.CreateInstance(ctx, c.OrgID, c.CreatedBy, domain.CreateInstanceRequest{
		CaseServiceID: caseSvc.ID.String(),
		Billable:      true,
		OccurredAt:    time.Now().UTC(),
	})
	require.NoError(t, err, "a missing pricing rule must not block the write")
	require.NotNil(t, instance)

	var actions []enforcementdomain.EnforcementAction
	require.NoError(t, db.Where("org_id = ?", c.OrgID).Find(&actions).Error)
	require.Len(t, actions, 1, "exactly one enforcement action per gap")
	assert.Equal(t, "pricing_rule_missing", actions[0].EnforcementType)
	assert.False(t, actions[0].WasBlocked)
	require.NotNil(t, actions[0].CaseID)
	assert.Equal(t, c.ID, *actions[0].CaseID)
}

func TestCreateInstance_RuledServiceLeavesNoTrace(t *testing.T) {
	svc, db, node := newTestService(t)
	ctx := context.Background()

	c, caseSvc := seedCaseAndService(t, svc, db, node)

	_, err := svc.CreatePricingRule(ctx, c.OrgID, domain.CreatePricingRuleRequest{
		CaseServiceID: caseSvc.ID.String(),
		PricingModel:  "hourly",
		Rate:          decimal.NewFromInt(95),
	})
	require.NoError(t, err)

	_, err = svc.CreateInstance(ctx, c.OrgID, c.CreatedBy, domain.CreateInstanceRequest{
		CaseServiceID: caseSvc.ID.String(),
		Billable:      true,
		OccurredAt:    time.Now().UTC(),
	})
	require.NoError(t, err)

	var count int64
	db.Model(&enforcementdomain.EnforcementAction{}).Count(&count)
	assert.Zero(t, count)
}

func TestCreateInstance_NonBillableNeverChecksPricing(t *testing.T) {
	svc, db, node := newTestService(t)
	ctx := context.Background()

	c, caseSvc := seedCaseAndService(t, svc, db, node)

	_, err := svc.CreateInstance(ctx, c.OrgID, c.CreatedBy, domain.CreateInstanceRequest{
		CaseServiceID: caseSvc.ID.String(),
		Billable:      false,
		OccurredAt:    time.Now().UTC(),
	})
	require.NoError(t, err)

	var count int64
	db.Model(&enforcementdomain.EnforcementAction{}).Count(&count)
	assert.Zero(t, count)
}
