package server

import (
	"net/http"

	accessdomain "github.com/casetrail/casetrail/internal/access/domain"
	capabilitydomain "github.com/casetrail/casetrail/internal/capability/domain"
	caseworkdomain "github.com/casetrail/casetrail/internal/casework/domain"
	"github.com/gin-gonic/gin"
)

func (s *Server) CreateCaseService(c *gin.Context) {
	var req caseworkdomain.CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}
	ref, ok := refFromString(accessdomain.TypeCase, req.CaseID)
	if !ok {
		AbortWithError(c, ErrInvalidRequest)
		return
	}
	if !s.authorize(c, ref, accessdomain.Action{Feature: capabilitydomain.FeatureBillingManage, Mutation: true}) {
		return
	}
	svc, err := s.caseworkSvc.CreateService(c.Request.Context(), s.currentOrgID(c), s.currentUserID(c), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, svc)
}

func (s *Server) ListCaseServices(c *gin.Context) {
	ref, ok := s.caseRefFromParam(c)
	if !ok {
		return
	}
	if !s.authorize(c, ref, accessdomain.Action{Feature: capabilitydomain.FeatureBillingView}) {
		return
	}
	services, err := s.caseworkSvc.ListServicesByCase(c.Request.Context(), s.currentOrgID(c), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"case_services": services})
}

func (s *Server) CreatePricingRule(c *gin.Context) {
	var req caseworkdomain.CreatePricingRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}
	ref, ok := refFromString(accessdomain.TypeCaseService, req.CaseServiceID)
	if !ok {
		AbortWithError(c, ErrInvalidRequest)
		return
	}
	if !s.authorize(c, ref, accessdomain.Action{Feature: capabilitydomain.FeatureBillingManage, Mutation: true}) {
		return
	}
	rule, err := s.caseworkSvc.CreatePricingRule(c.Request.Context(), s.currentOrgID(c), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, rule)
}

func (s *Server) ListPricingRules(c *gin.Context) {
	ref, ok := refFromString(accessdomain.TypeCaseService, c.Param("id"))
	if !ok {
		AbortWithError(c, ErrInvalidRequest)
		return
	}
	if !s.authorize(c, ref, accessdomain.Action{Feature: capabilitydomain.FeatureBillingView}) {
		return
	}
	rules, err := s.caseworkSvc.ListPricingRules(c.Request.Context(), s.currentOrgID(c), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"pricing_rules": rules})
}

func (s *Server) CreateServiceInstance(c *gin.Context) {
	var req caseworkdomain.CreateInstanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}
	ref, ok := refFromString(accessdomain.TypeCaseService, req.CaseServiceID)
	if !ok {
		AbortWithError(c, ErrInvalidRequest)
		return
	}
	if !s.authorize(c, ref, accessdomain.Action{Feature: capabilitydomain.FeatureBillingManage, Mutation: true}) {
		return
	}
	instance, err := s.caseworkSvc.CreateInstance(c.Request.Context(), s.currentOrgID(c), s.currentUserID(c), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, instance)
}

func (s *Server) ListServiceInstances(c *gin.Context) {
	ref, ok := s.caseRefFromParam(c)
	if !ok {
		return
	}
	if !s.authorize(c, ref, accessdomain.Action{Feature: capabilitydomain.FeatureBillingView}) {
		return
	}
	instances, err := s.caseworkSvc.ListInstancesByCase(c.Request.Context(), s.currentOrgID(c), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"service_instances": instances})
}
