package service

import (
	"context"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/casetrail/casetrail/internal/attachment/domain"
	"github.com/casetrail/casetrail/internal/attachment/repository"
	subjectdomain "github.com/casetrail/casetrail/internal/subject/domain"
	subjectrepo "github.com/casetrail/casetrail/internal/subject/repository"
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
	require.NoError(t, db.AutoMigrate(&subjectdomain.Subject{}, &domain.Attachment{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	svc := NewService(Params{
		DB:       db,
		Log:      zap.NewNop(),
		GenID:    node,
		Repo:     repository.NewRepository(db),
		Subjects: subjectrepo.NewRepository(db),
	})
	return svc, db, node
}

func seedSubject(t *testing.T, db *gorm.DB, node *snowflake.Node, orgID snowflake.ID) *subjectdomain.Subject {
	t.Helper()
	subject := &subjectdomain.Subject{
		ID:          node.Generate(),
		OrgID:       orgID,
		CaseID:      node.Generate(),
		Name:        "subject",
		SubjectType: "person",
		CreatedBy:   node.Generate(),
	}
	require.NoError(t, db.Create(subject).Error)
	return subject
}

func TestCreate_DuplicateHashInSameCaseRejected(t *testing.T) {
	svc, db, node := newTestService(t)
	ctx := context.Background()
	orgID := node.Generate()
	subject := seedSubject(t, db, node, orgID)

	req := domain.CreateRequest{
		SubjectID:   subject.ID.String(),
		FileName:    "scene.jpg",
		ContentHash: "abc123",
	}
	_, dups, err := svc.Create(ctx, orgID, node.Generate(), req)
	require.NoError(t, err)
	assert.Empty(t, dups)

	req.FileName = "scene-copy.jpg"
	_, _, err = svc.Create(ctx, orgID, node.Generate(), req)
	assert.ErrorIs(t, err, domain.ErrDuplicateInCase)
}

func TestCreate_DuplicateHashAcrossCasesReported(t *testing.T) {
	svc, db, node := newTestService(t)
	ctx := context.Background()
	orgID := node.Generate()
	first := seedSubject(t, db, node, orgID)
	second := seedSubject(t, db, node, orgID)

	_, _, err := svc.Create(ctx, orgID, node.Generate(), domain.CreateRequest{
		SubjectID:   first.ID.String(),
		FileName:    "report.pdf",
		ContentHash: "deadbeef",
	})
	require.NoError(t, err)

	created, dups, err := svc.Create(ctx, orgID, node.Generate(), domain.CreateRequest{
		SubjectID:   second.ID.String(),
		FileName:    "report.pdf",
		ContentHash: "deadbeef",
	})
	require.NoError(t, err, "a cross-case duplicate never blocks the upload")
	require.Len(t, dups, 1)
	assert.Equal(t, first.CaseID, dups[0].CaseID)
	assert.Equal(t, second.CaseID, created.CaseID)
}

func TestCreate_UnknownSubjectRejected(t *testing.T) {
	svc, _, node := newTestService(t)

	_, _, err := svc.Create(context.Background(), node.Generate(), node.Generate(), domain.CreateRequest{
		SubjectID:   node.Generate().String(),
		FileName:    "report.pdf",
		ContentHash: "deadbeef",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidSubject)
}

func TestCreate_RemovedAttachmentFreesItsHash(t *testing.T) {
	svc, db, node := newTestService(t)
	ctx := context.Background()
	orgID := node.Generate()
	subject := seedSubject(t, db, node, orgID)

	req := domain.CreateRequest{
		SubjectID:   subject.ID.String(),
		FileName:    "scene.jpg",
		ContentHash: "abc123",
	}
	created, _, err := svc.Create(ctx, orgID, node.Generate(), req)
	require.NoError(t, err)

	require.NoError(t, db.Delete(&domain.Attachment{}, "id = ?", created.ID).Error)

	// Removal leaves no tombstone behind, so the hash can come back.
	_, _, err = svc.Create(ctx, orgID, node.Generate(), req)
	require.NoError(t, err)

	var count int64
	db.Model(&domain.Attachment{}).Where("case_id = ? AND content_hash = ?", subject.CaseID, "abc123").Count(&count)
	assert.EqualValues(t, 1, count)
}
