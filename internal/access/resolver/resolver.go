// Package resolver provides the chain resolvers for every protected
// resource type. Lookups go through the models' default scopes, so
// soft-deleted ancestors resolve as missing and break the chain.
package resolver

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/casetrail/casetrail/internal/access/domain"
	attachmentdomain "github.com/casetrail/casetrail/internal/attachment/domain"
	billingdomain "github.com/casetrail/casetrail/internal/billing/domain"
	casedomain "github.com/casetrail/casetrail/internal/casefile/domain"
	caseworkdomain "github.com/casetrail/casetrail/internal/casework/domain"
	updatedomain "github.com/casetrail/casetrail/internal/caseupdate/domain"
	invoicedomain "github.com/casetrail/casetrail/internal/invoice/domain"
	orgdomain "github.com/casetrail/casetrail/internal/organization/domain"
	retainerdomain "github.com/casetrail/casetrail/internal/retainer/domain"
	subjectdomain "github.com/casetrail/casetrail/internal/subject/domain"
	"gorm.io/gorm"
)

// NewRegistry wires a resolver for every resource type the platform
// protects.
func NewRegistry(db *gorm.DB) *domain.Registry {
	registry := domain.NewRegistry()
	registry.Register(domain.TypeOrganization, &organizationResolver{db: db})
	registry.Register(domain.TypeCase, &caseResolver{db: db})
	registry.Register(domain.TypeSubject, &subjectResolver{db: db})
	registry.Register(domain.TypeAttachment, &attachmentResolver{db: db})
	registry.Register(domain.TypeCaseUpdate, &caseUpdateResolver{db: db})
	registry.Register(domain.TypeBillingItem, &billingItemResolver{db: db})
	registry.Register(domain.TypeInvoice, &invoiceResolver{db: db})
	registry.Register(domain.TypeRetainerEntry, &retainerEntryResolver{db: db})
	registry.Register(domain.TypeCaseService, &caseServiceResolver{db: db})
	registry.Register(domain.TypeServiceInstance, &serviceInstanceResolver{db: db})
	return registry
}

// first loads one row by primary key. (nil, nil) means not found or
// soft-deleted.
func first[T any](ctx context.Context, db *gorm.DB, id snowflake.ID) (*T, error) {
	var row T
	err := db.WithContext(ctx).Where("id = ?", id).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

func caseParent(caseID snowflake.ID) *domain.Ref {
	return &domain.Ref{Type: domain.TypeCase, ID: caseID}
}

type organizationResolver struct{ db *gorm.DB }

func (r *organizationResolver) Resolve(ctx context.Context, id snowflake.ID) (*domain.Node, error) {
	org, err := first[orgdomain.Organization](ctx, r.db, id)
	if err != nil || org == nil {
		return nil, err
	}
	return &domain.Node{
		Ref:   domain.Ref{Type: domain.TypeOrganization, ID: org.ID},
		OrgID: org.ID,
	}, nil
}

type caseResolver struct{ db *gorm.DB }

func (r *caseResolver) Resolve(ctx context.Context, id snowflake.ID) (*domain.Node, error) {
	c, err := first[casedomain.Case](ctx, r.db, id)
	if err != nil || c == nil {
		return nil, err
	}
	createdBy := c.CreatedBy
	return &domain.Node{
		Ref:       domain.Ref{Type: domain.TypeCase, ID: c.ID},
		OrgID:     c.OrgID,
		Parent:    &domain.Ref{Type: domain.TypeOrganization, ID: c.OrgID},
		CreatedBy: &createdBy,
	}, nil
}

type subjectResolver struct{ db *gorm.DB }

func (r *subjectResolver) Resolve(ctx context.Context, id snowflake.ID) (*domain.Node, error) {
	subject, err := first[subjectdomain.Subject](ctx, r.db, id)
	if err != nil || subject == nil {
		return nil, err
	}
	createdBy := subject.CreatedBy
	return &domain.Node{
		Ref:       domain.Ref{Type: domain.TypeSubject, ID: subject.ID},
		OrgID:     subject.OrgID,
		Parent:    caseParent(subject.CaseID),
		CreatedBy: &createdBy,
	}, nil
}

type attachmentResolver struct{ db *gorm.DB }

func (r *attachmentResolver) Resolve(ctx context.Context, id snowflake.ID) (*domain.Node, error) {
	attachment, err := first[attachmentdomain.Attachment](ctx, r.db, id)
	if err != nil || attachment == nil {
		return nil, err
	}
	uploadedBy := attachment.UploadedBy
	return &domain.Node{
		Ref:       domain.Ref{Type: domain.TypeAttachment, ID: attachment.ID},
		OrgID:     attachment.OrgID,
		Parent:    &domain.Ref{Type: domain.TypeSubject, ID: attachment.SubjectID},
		CreatedBy: &uploadedBy,
	}, nil
}

type caseUpdateResolver struct{ db *gorm.DB }

func (r *caseUpdateResolver) Resolve(ctx context.Context, id snowflake.ID) (*domain.Node, error) {
	update, err := first[updatedomain.CaseUpdate](ctx, r.db, id)
	if err != nil || update == nil {
		return nil, err
	}
	return &domain.Node{
		Ref:       domain.Ref{Type: domain.TypeCaseUpdate, ID: update.ID},
		OrgID:     update.OrgID,
		Parent:    caseParent(update.CaseID),
		CreatedBy: update.CreatedBy,
	}, nil
}

type billingItemResolver struct{ db *gorm.DB }

func (r *billingItemResolver) Resolve(ctx context.Context, id snowflake.ID) (*domain.Node, error) {
	item, err := first[billingdomain.BillingItem](ctx, r.db, id)
	if err != nil || item == nil {
		return nil, err
	}
	return &domain.Node{
		Ref:       domain.Ref{Type: domain.TypeBillingItem, ID: item.ID},
		OrgID:     item.OrgID,
		Parent:    caseParent(item.CaseID),
		CreatedBy: item.IncurredByUserID,
	}, nil
}

type invoiceResolver struct{ db *gorm.DB }

func (r *invoiceResolver) Resolve(ctx context.Context, id snowflake.ID) (*domain.Node, error) {
	invoice, err := first[invoicedomain.Invoice](ctx, r.db, id)
	if err != nil || invoice == nil {
		return nil, err
	}
	createdBy := invoice.CreatedBy
	return &domain.Node{
		Ref:       domain.Ref{Type: domain.TypeInvoice, ID: invoice.ID},
		OrgID:     invoice.OrgID,
		Parent:    caseParent(invoice.CaseID),
		CreatedBy: &createdBy,
	}, nil
}

type retainerEntryResolver struct{ db *gorm.DB }

func (r *retainerEntryResolver) Resolve(ctx context.Context, id snowflake.ID) (*domain.Node, error) {
	entry, err := first[retainerdomain.RetainerEntry](ctx, r.db, id)
	if err != nil || entry == nil {
		return nil, err
	}
	createdBy := entry.CreatedBy
	return &domain.Node{
		Ref:       domain.Ref{Type: domain.TypeRetainerEntry, ID: entry.ID},
		OrgID:     entry.OrgID,
		Parent:    caseParent(entry.CaseID),
		CreatedBy: &createdBy,
	}, nil
}

type caseServiceResolver struct{ db *gorm.DB }

func (r *caseServiceResolver) Resolve(ctx context.Context, id snowflake.ID) (*domain.Node, error) {
	svc, err := first[caseworkdomain.CaseService](ctx, r.db, id)
	if err != nil || svc == nil {
		return nil, err
	}
	createdBy := svc.CreatedBy
	return &domain.Node{
		Ref:       domain.Ref{Type: domain.TypeCaseService, ID: svc.ID},
		OrgID:     svc.OrgID,
		Parent:    caseParent(svc.CaseID),
		CreatedBy: &createdBy,
	}, nil
}

type serviceInstanceResolver struct{ db *gorm.DB }

func (r *serviceInstanceResolver) Resolve(ctx context.Context, id snowflake.ID) (*domain.Node, error) {
	instance, err := first[caseworkdomain.ServiceInstance](ctx, r.db, id)
	if err != nil || instance == nil {
		return nil, err
	}
	createdBy := instance.CreatedBy
	return &domain.Node{
		Ref:       domain.Ref{Type: domain.TypeServiceInstance, ID: instance.ID},
		OrgID:     instance.OrgID,
		Parent:    &domain.Ref{Type: domain.TypeCaseService, ID: instance.CaseServiceID},
		CreatedBy: &createdBy,
	}, nil
}
