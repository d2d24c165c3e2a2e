package server

import (
	"net/http"
	"strings"

	"github.com/bwmarrin/snowflake"
	accessdomain "github.com/casetrail/casetrail/internal/access/domain"
	brandingdomain "github.com/casetrail/casetrail/internal/branding/domain"
	capabilitydomain "github.com/casetrail/casetrail/internal/capability/domain"
	"github.com/gin-gonic/gin"
)

func (s *Server) GetSettings(c *gin.Context) {
	if !s.authorize(c, s.orgRef(c), accessdomain.Action{Feature: capabilitydomain.FeatureSettingsManage}) {
		return
	}
	settings, err := s.brandingSvc.GetSettings(c.Request.Context(), s.currentOrgID(c))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, settings)
}

func (s *Server) UpdateSettings(c *gin.Context) {
	if !s.authorize(c, s.orgRef(c), accessdomain.Action{Feature: capabilitydomain.FeatureSettingsManage, Mutation: true}) {
		return
	}
	var req brandingdomain.UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}
	settings, err := s.brandingSvc.UpdateSettings(c.Request.Context(), s.currentOrgID(c), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, settings)
}

func (s *Server) CreateCaseRequestForm(c *gin.Context) {
	if !s.authorize(c, s.orgRef(c), accessdomain.Action{Feature: capabilitydomain.FeatureSettingsManage, Mutation: true}) {
		return
	}
	var req brandingdomain.CreateFormRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}
	form, err := s.brandingSvc.CreateForm(c.Request.Context(), s.currentOrgID(c), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, form)
}

func (s *Server) ListCaseRequestForms(c *gin.Context) {
	if !s.authorize(c, s.orgRef(c), accessdomain.Action{Feature: capabilitydomain.FeatureSettingsManage}) {
		return
	}
	forms, err := s.brandingSvc.ListForms(c.Request.Context(), s.currentOrgID(c))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"forms": forms})
}

// GetPublicBranding is the only tenant data readable without a principal.
// The service answers with four fields or not at all.
func (s *Server) GetPublicBranding(c *gin.Context) {
	orgID, err := snowflake.ParseString(strings.TrimSpace(c.Param("org_id")))
	if err != nil || orgID == 0 {
		AbortWithError(c, ErrNotFound)
		return
	}
	branding, err := s.brandingSvc.PublicBranding(c.Request.Context(), orgID)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, branding)
}
