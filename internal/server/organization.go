package server

import (
	"net/http"
	"strings"

	"github.com/bwmarrin/snowflake"
	orgdomain "github.com/casetrail/casetrail/internal/organization/domain"
	"github.com/gin-gonic/gin"
)

type signupRequest struct {
	OrganizationName string `json:"organization_name"`
}

// Signup provisions a tenant for a first-time user. The organization, owner
// membership and global admin grant are created atomically by the service.
func (s *Server) Signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	resp, err := s.organizationSvc.ProvisionSignup(c.Request.Context(), s.currentUserID(c), orgdomain.ProvisionRequest{
		Name: strings.TrimSpace(req.OrganizationName),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (s *Server) GetOrganization(c *gin.Context) {
	resp, err := s.organizationSvc.GetByID(c.Request.Context(), s.currentOrgID(c).String())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

type checkoutWebhookRequest struct {
	OrgID     string `json:"org_id"`
	ProductID string `json:"product_id"`
}

// CheckoutWebhook records the plan implied by a completed checkout. Unknown
// products fall back to the lowest tier rather than failing the webhook.
func (s *Server) CheckoutWebhook(c *gin.Context) {
	var req checkoutWebhookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}
	orgID, err := snowflake.ParseString(strings.TrimSpace(req.OrgID))
	if err != nil || orgID == 0 {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	if err := s.organizationSvc.ApplyCheckoutProduct(c.Request.Context(), orgID, strings.TrimSpace(req.ProductID)); err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
