package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/casetrail/casetrail/internal/picklist/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Repo  domain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	repo  domain.Repository
}

func NewService(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("picklist.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *Service) ValuesFor(ctx context.Context, orgID snowflake.ID, entryType string) ([]domain.Value, error) {
	if orgID == 0 {
		return nil, domain.ErrInvalidOrganization
	}
	if !domain.ValidType(entryType) {
		return nil, domain.ErrInvalidType
	}

	entries, err := s.repo.ListByType(ctx, orgID, entryType)
	if err != nil {
		return nil, err
	}

	values := make([]domain.Value, 0, len(entries))
	for _, entry := range entries {
		values = append(values, domain.Value{
			Value:      entry.Value,
			Active:     entry.Active,
			SortOrder:  entry.SortOrder,
			StatusType: entry.StatusType,
		})
	}
	return values, nil
}

func (s *Service) Contains(ctx context.Context, orgID snowflake.ID, entryType, value string) (bool, error) {
	values, err := s.ValuesFor(ctx, orgID, entryType)
	if err != nil {
		return false, err
	}
	for _, v := range values {
		if v.Active && v.Value == value {
			return true, nil
		}
	}
	return false, nil
}

func (s *Service) Create(ctx context.Context, orgID snowflake.ID, createdBy snowflake.ID, req domain.CreateRequest) (*domain.PicklistEntry, error) {
	if orgID == 0 {
		return nil, domain.ErrInvalidOrganization
	}
	if !domain.ValidType(req.Type) {
		return nil, domain.ErrInvalidType
	}
	value := strings.TrimSpace(req.Value)
	if value == "" {
		return nil, domain.ErrInvalidValue
	}
	statusType, err := normalizeStatusType(req.Type, req.StatusType)
	if err != nil {
		return nil, err
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	now := time.Now().UTC()
	entry := &domain.PicklistEntry{
		ID:         s.genID.Generate(),
		OrgID:      orgID,
		Type:       req.Type,
		Value:      value,
		Active:     active,
		SortOrder:  req.SortOrder,
		StatusType: statusType,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if createdBy != 0 {
		entry.CreatedBy = &createdBy
	}

	if err := s.repo.Create(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *Service) Update(ctx context.Context, orgID snowflake.ID, req domain.UpdateRequest) (*domain.PicklistEntry, error) {
	if orgID == 0 {
		return nil, domain.ErrInvalidOrganization
	}
	id, err := snowflake.ParseString(strings.TrimSpace(req.ID))
	if err != nil || id == 0 {
		return nil, domain.ErrInvalidID
	}

	entry, err := s.repo.FindByID(ctx, orgID, id)
	if err != nil {
		return nil, err
	}

	if req.Active != nil {
		entry.Active = *req.Active
	}
	if req.SortOrder != nil {
		entry.SortOrder = *req.SortOrder
	}
	if req.StatusType != nil {
		statusType, err := normalizeStatusType(entry.Type, req.StatusType)
		if err != nil {
			return nil, err
		}
		entry.StatusType = statusType
	}
	entry.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *Service) MigrateLegacy(ctx context.Context, entryType string, fixtures []domain.LegacyFixture) error {
	if !domain.ValidType(entryType) {
		return domain.ErrInvalidType
	}

	orgIDs, err := s.repo.ListOrganizationIDs(ctx)
	if err != nil {
		return err
	}

	for _, orgID := range orgIDs {
		if err := s.migrateOrg(ctx, orgID, entryType, fixtures); err != nil {
			// one organization's failure does not abort the migration
			s.log.Warn("legacy picklist migration failed for org",
				zap.String("org_id", orgID.String()),
				zap.String("type", entryType),
				zap.Error(err),
			)
		}
	}
	return nil
}

func (s *Service) migrateOrg(ctx context.Context, orgID snowflake.ID, entryType string, fixtures []domain.LegacyFixture) error {
	count, err := s.repo.CountByType(ctx, orgID, entryType)
	if err != nil {
		return err
	}
	if count > 0 {
		// already migrated
		return nil
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		now := time.Now().UTC()
		for _, fixture := range fixtures {
			statusType, err := normalizeStatusType(entryType, fixture.StatusType)
			if err != nil {
				return err
			}

			owner, err := s.resolveLegacyOwner(ctx, repo, orgID, fixture.CreatorUserID)
			if err != nil {
				return err
			}

			entry := &domain.PicklistEntry{
				ID:         s.genID.Generate(),
				OrgID:      orgID,
				Type:       entryType,
				Value:      fixture.Value,
				Active:     true,
				SortOrder:  fixture.SortOrder,
				StatusType: statusType,
				CreatedBy:  owner,
				CreatedAt:  now,
				UpdatedAt:  now,
			}
			if err := repo.Create(ctx, entry); err != nil {
				return err
			}
		}
		return nil
	})
}

// resolveLegacyOwner applies the inherited fallback chain: original creator,
// then any existing picklist owner in the org, then any profile in the system.
// The chain is a heuristic carried over from the predecessor, not a guaranteed
// correct ownership assignment.
func (s *Service) resolveLegacyOwner(ctx context.Context, repo domain.Repository, orgID snowflake.ID, creator *snowflake.ID) (*snowflake.ID, error) {
	if creator != nil && *creator != 0 {
		return creator, nil
	}

	owner, err := repo.AnyOwnerInOrg(ctx, orgID)
	if err != nil {
		return nil, err
	}
	if owner != nil {
		return owner, nil
	}

	return repo.AnyProfile(ctx)
}

func normalizeStatusType(entryType string, statusType *string) (*string, error) {
	if entryType != domain.TypeCaseStatus {
		if statusType != nil && strings.TrimSpace(*statusType) != "" {
			return nil, domain.ErrInvalidStatusType
		}
		return nil, nil
	}

	if statusType == nil {
		return nil, domain.ErrInvalidStatusType
	}
	value := strings.TrimSpace(*statusType)
	if value != domain.StatusTypeOpen && value != domain.StatusTypeClosed {
		return nil, domain.ErrInvalidStatusType
	}
	return &value, nil
}
