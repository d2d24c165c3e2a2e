package service

import (
	"context"
	"testing"

	"github.com/bwmarrin/snowflake"
	picklistdomain "github.com/casetrail/casetrail/internal/picklist/domain"
	picklistrepo "github.com/casetrail/casetrail/internal/picklist/repository"
	picklistsvc "github.com/casetrail/casetrail/internal/picklist/service"
	"github.com/casetrail/casetrail/internal/subject/domain"
	"github.com/casetrail/casetrail/internal/subject/repository"
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
	require.NoError(t, db.AutoMigrate(&picklistdomain.PicklistEntry{}, &domain.Subject{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	log := zap.NewNop()

	picklists := picklistsvc.NewService(picklistsvc.Params{
		DB:    db,
		Log:   log,
		GenID: node,
		Repo:  picklistrepo.NewRepository(db),
	})

	svc := NewService(Params{
		DB:        db,
		Log:       log,
		GenID:     node,
		Repo:      repository.NewRepository(db),
		Picklists: picklists,
	})
	return svc, db, node
}

func seedSubjectType(t *testing.T, db *gorm.DB, node *snowflake.Node, orgID snowflake.ID, value string, active bool) {
	t.Helper()
	id := node.Generate()
	require.NoError(t, db.Create(&picklistdomain.PicklistEntry{
		ID:     id,
		OrgID:  orgID,
		Type:   picklistdomain.TypeSubjectType,
		Value:  value,
		Active: active,
	}).Error)
	// The model's default:true tag makes GORM substitute true for a
	// zero-valued Active on INSERT, so set the column explicitly.
	require.NoError(t, db.Model(&picklistdomain.PicklistEntry{}).
		Where("id = ?", id).Update("active", active).Error)
}

func TestCreate_SubjectTypeMustBeRegistered(t *testing.T) {
	svc, db, node := newTestService(t)
	ctx := context.Background()
	orgID := node.Generate()
	seedSubjectType(t, db, node, orgID, "person", true)

	subject, err := svc.Create(ctx, orgID, node.Generate(), domain.CreateRequest{
		CaseID:      node.Generate().String(),
		Name:        "J. Doe",
		SubjectType: "person",
	})
	require.NoError(t, err)
	assert.Equal(t, "person", subject.SubjectType)

	_, err = svc.Create(ctx, orgID, node.Generate(), domain.CreateRequest{
		CaseID:      node.Generate().String(),
		Name:        "unmarked van",
		SubjectType: "cryptid",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidSubjectType)
}

func TestCreate_InactiveSubjectTypeRejected(t *testing.T) {
	svc, db, node := newTestService(t)
	ctx := context.Background()
	orgID := node.Generate()
	seedSubjectType(t, db, node, orgID, "vehicle", false)

	_, err := svc.Create(ctx, orgID, node.Generate(), domain.CreateRequest{
		CaseID:      node.Generate().String(),
		Name:        "unmarked van",
		SubjectType: "vehicle",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidSubjectType, "deactivated registry values no longer validate")
}

func TestCreate_RejectsBlankName(t *testing.T) {
	svc, db, node := newTestService(t)
	ctx := context.Background()
	orgID := node.Generate()
	seedSubjectType(t, db, node, orgID, "person", true)

	_, err := svc.Create(ctx, orgID, node.Generate(), domain.CreateRequest{
		CaseID:      node.Generate().String(),
		Name:        "   ",
		SubjectType: "person",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidName)
}

func TestDelete_SoftDeletesAndHidesFromReads(t *testing.T) {
	svc, db, node := newTestService(t)
	ctx := context.Background()
	orgID := node.Generate()
	seedSubjectType(t, db, node, orgID, "person", true)

	subject, err := svc.Create(ctx, orgID, node.Generate(), domain.CreateRequest{
		CaseID:      node.Generate().String(),
		Name:        "J. Doe",
		SubjectType: "person",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, orgID, subject.ID.String()))

	_, err = svc.Get(ctx, orgID, subject.ID.String())
	assert.ErrorIs(t, err, domain.ErrNotFound)

	var count int64
	db.Unscoped().Model(&domain.Subject{}).Where("id = ?", subject.ID).Count(&count)
	assert.EqualValues(t, 1, count, "the row survives as a tombstone")
}
