package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/casetrail/casetrail/internal/enforcement/domain"
	"github.com/casetrail/casetrail/internal/enforcement/repository"
	"github.com/casetrail/casetrail/pkg/db/pagination"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newTestService(t *testing.T) (domain.Service, *gorm.DB, *snowflake.Node) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.EnforcementAction{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	svc := NewService(Params{
		DB:    db,
		Log:   zap.NewNop(),
		GenID: node,
		Repo:  repository.Provide(),
	})
	return svc, db, node
}

func TestRecord_AppendsAction(t *testing.T) {
	svc, db, node := newTestService(t)
	ctx := context.Background()
	orgID := node.Generate()

	id, err := svc.Record(ctx, domain.Entry{
		OrgID:           orgID,
		ActionType:      "pricing.missing_rule",
		EnforcementType: "soft",
		WasBlocked:      false,
		Reason:          "billable instance created without a pricing rule",
		Context:         map[string]any{"service_instance_id": "42"},
	})
	require.NoError(t, err)
	require.NotZero(t, id)

	var stored domain.EnforcementAction
	require.NoError(t, db.First(&stored, "id = ?", id).Error)
	assert.Equal(t, orgID, stored.OrgID)
	assert.False(t, stored.WasBlocked)
	assert.Equal(t, "pricing.missing_rule", stored.ActionType)
}

func TestRecord_RejectsMissingContext(t *testing.T) {
	svc, _, node := newTestService(t)
	ctx := context.Background()

	_, err := svc.Record(ctx, domain.Entry{ActionType: "x"})
	assert.ErrorIs(t, err, domain.ErrInvalidOrganization)

	_, err = svc.Record(ctx, domain.Entry{OrgID: node.Generate()})
	assert.ErrorIs(t, err, domain.ErrInvalidActionType)
}

func TestList_FiltersByOrgAndTimeRange(t *testing.T) {
	svc, db, node := newTestService(t)
	ctx := context.Background()

	orgA := node.Generate()
	orgB := node.Generate()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	for i := 0; i < 3; i++ {
		require.NoError(t, db.Create(&domain.EnforcementAction{
			ID:         node.Generate(),
			OrgID:      orgA,
			ActionType: "access.denied",
			WasBlocked: true,
			CreatedAt:  base.Add(time.Duration(i) * time.Hour),
		}).Error)
	}
	require.NoError(t, db.Create(&domain.EnforcementAction{
		ID:         node.Generate(),
		OrgID:      orgB,
		ActionType: "access.denied",
		WasBlocked: true,
		CreatedAt:  base,
	}).Error)

	start := base.Add(30 * time.Minute)
	end := base.Add(3 * time.Hour)
	resp, err := svc.List(ctx, orgA, domain.ListRequest{StartAt: &start, EndAt: &end})
	require.NoError(t, err)
	assert.Len(t, resp.Actions, 2, "time range and org filter must both apply")
	for _, action := range resp.Actions {
		assert.Equal(t, orgA, action.OrgID)
	}
}

func TestList_CursorPagination(t *testing.T) {
	svc, db, node := newTestService(t)
	ctx := context.Background()
	orgID := node.Generate()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	for i := 0; i < 5; i++ {
		require.NoError(t, db.Create(&domain.EnforcementAction{
			ID:         node.Generate(),
			OrgID:      orgID,
			ActionType: "access.denied",
			CreatedAt:  base.Add(time.Duration(i) * time.Minute),
		}).Error)
	}

	first, err := svc.List(ctx, orgID, domain.ListRequest{
		Pagination: pagination.Pagination{PageSize: 2},
	})
	require.NoError(t, err)
	require.Len(t, first.Actions, 2)
	require.True(t, first.HasMore)
	require.NotEmpty(t, first.NextPageToken)

	second, err := svc.List(ctx, orgID, domain.ListRequest{
		Pagination: pagination.Pagination{PageSize: 2, PageToken: first.NextPageToken},
	})
	require.NoError(t, err)
	require.Len(t, second.Actions, 2)

	// no overlap across pages
	seen := map[snowflake.ID]bool{}
	for _, a := range append(first.Actions, second.Actions...) {
		assert.False(t, seen[a.ID])
		seen[a.ID] = true
	}
}

func TestList_RejectsInvertedRange(t *testing.T) {
	svc, _, node := newTestService(t)
	start := time.Now()
	end := start.Add(-time.Hour)

	_, err := svc.List(context.Background(), node.Generate(), domain.ListRequest{StartAt: &start, EndAt: &end})
	assert.ErrorIs(t, err, domain.ErrInvalidTimeRange)
}

func TestList_CursorKeepsSubSecondNeighbors(t *testing.T) {
	svc, db, node := newTestService(t)
	ctx := context.Background()
	orgID := node.Generate()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	// Four actions inside the same wall-clock second.
	want := map[snowflake.ID]bool{}
	for i := 0; i < 4; i++ {
		action := &domain.EnforcementAction{
			ID:         node.Generate(),
			OrgID:      orgID,
			ActionType: "access.denied",
			CreatedAt:  base.Add(time.Duration(i) * 150 * time.Millisecond),
		}
		require.NoError(t, db.Create(action).Error)
		want[action.ID] = true
	}

	seen := map[snowflake.ID]bool{}
	token := ""
	for i := 0; i < 5; i++ {
		resp, err := svc.List(ctx, orgID, domain.ListRequest{
			Pagination: pagination.Pagination{PageSize: 1, PageToken: token},
		})
		require.NoError(t, err)
		for _, a := range resp.Actions {
			assert.False(t, seen[a.ID], "row %s returned twice", a.ID)
			seen[a.ID] = true
		}
		if !resp.HasMore {
			break
		}
		token = resp.NextPageToken
	}

	assert.Equal(t, want, seen, "page boundaries inside one second must not drop rows")
}
