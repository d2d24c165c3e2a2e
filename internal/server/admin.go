package server

import (
	"net/http"
	"strings"
	"time"

	accessdomain "github.com/casetrail/casetrail/internal/access/domain"
	capabilitydomain "github.com/casetrail/casetrail/internal/capability/domain"
	enforcementdomain "github.com/casetrail/casetrail/internal/enforcement/domain"
	picklistdomain "github.com/casetrail/casetrail/internal/picklist/domain"
	"github.com/casetrail/casetrail/pkg/db/pagination"
	"github.com/gin-gonic/gin"
)

func (s *Server) ListPermissionRules(c *gin.Context) {
	if !s.authorize(c, s.orgRef(c), accessdomain.Action{Feature: capabilitydomain.FeaturePermissionManage}) {
		return
	}
	rules, err := s.capabilitySvc.ListRules(c.Request.Context(), s.currentOrgID(c))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"rules": rules})
}

type permissionOverrideRequest struct {
	Role       string `json:"role"`
	FeatureKey string `json:"feature_key"`
	Allowed    bool   `json:"allowed"`
}

func (s *Server) SetPermissionOverride(c *gin.Context) {
	if !s.authorize(c, s.orgRef(c), accessdomain.Action{Feature: capabilitydomain.FeaturePermissionManage, Mutation: true}) {
		return
	}
	var req permissionOverrideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}
	err := s.capabilitySvc.SetOverride(c.Request.Context(), s.currentOrgID(c), capabilitydomain.Grant{
		Role:       strings.TrimSpace(req.Role),
		FeatureKey: strings.TrimSpace(req.FeatureKey),
		Allowed:    req.Allowed,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) CreatePicklistEntry(c *gin.Context) {
	if !s.authorize(c, s.orgRef(c), accessdomain.Action{Feature: capabilitydomain.FeaturePicklistManage, Mutation: true}) {
		return
	}
	var req picklistdomain.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}
	entry, err := s.picklistSvc.Create(c.Request.Context(), s.currentOrgID(c), s.currentUserID(c), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, entry)
}

func (s *Server) UpdatePicklistEntry(c *gin.Context) {
	if !s.authorize(c, s.orgRef(c), accessdomain.Action{Feature: capabilitydomain.FeaturePicklistManage, Mutation: true}) {
		return
	}
	var req picklistdomain.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}
	req.ID = c.Param("id")
	entry, err := s.picklistSvc.Update(c.Request.Context(), s.currentOrgID(c), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, entry)
}

type listEnforcementQuery struct {
	PageToken       string `form:"page_token"`
	PageSize        int    `form:"page_size"`
	ActionType      string `form:"action_type"`
	EnforcementType string `form:"enforcement_type"`
	WasBlocked      *bool  `form:"was_blocked"`
	StartAt         string `form:"start_at"`
	EndAt           string `form:"end_at"`
}

func (s *Server) ListEnforcementActions(c *gin.Context) {
	if !s.authorize(c, s.orgRef(c), accessdomain.Action{Feature: capabilitydomain.FeatureEnforcementView}) {
		return
	}
	var query listEnforcementQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	var startAt, endAt *time.Time
	if v := strings.TrimSpace(query.StartAt); v != "" {
		parsed, err := time.Parse(time.RFC3339, v)
		if err != nil {
			AbortWithError(c, ErrInvalidRequest)
			return
		}
		startAt = &parsed
	}
	if v := strings.TrimSpace(query.EndAt); v != "" {
		parsed, err := time.Parse(time.RFC3339, v)
		if err != nil {
			AbortWithError(c, ErrInvalidRequest)
			return
		}
		endAt = &parsed
	}

	resp, err := s.enforcementSvc.List(c.Request.Context(), s.currentOrgID(c), enforcementdomain.ListRequest{
		Pagination: pagination.Pagination{
			PageToken: strings.TrimSpace(query.PageToken),
			PageSize:  query.PageSize,
		},
		ActionType:      strings.TrimSpace(query.ActionType),
		EnforcementType: strings.TrimSpace(query.EnforcementType),
		WasBlocked:      query.WasBlocked,
		StartAt:         startAt,
		EndAt:           endAt,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ReconcileLegacyBilling runs a bounded backfill pass over historic billing
// rows. Safe to call repeatedly; linked rows are skipped.
func (s *Server) ReconcileLegacyBilling(c *gin.Context) {
	if !s.authorize(c, s.orgRef(c), accessdomain.Action{Feature: capabilitydomain.FeatureBillingManage, Mutation: true}) {
		return
	}
	report, err := s.billingSvc.ReconcileLegacyBilling(c.Request.Context(), s.cfg.BackfillBatchSize)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}
