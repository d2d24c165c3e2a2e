package server

import (
	"net/http"
	"strings"

	"github.com/bwmarrin/snowflake"
	accessdomain "github.com/casetrail/casetrail/internal/access/domain"
	capabilitydomain "github.com/casetrail/casetrail/internal/capability/domain"
	casedomain "github.com/casetrail/casetrail/internal/casefile/domain"
	"github.com/gin-gonic/gin"
)

func (s *Server) caseRefFromParam(c *gin.Context) (accessdomain.Ref, bool) {
	id, err := snowflake.ParseString(strings.TrimSpace(c.Param("id")))
	if err != nil || id == 0 {
		AbortWithError(c, ErrInvalidRequest)
		return accessdomain.Ref{}, false
	}
	return accessdomain.Ref{Type: accessdomain.TypeCase, ID: id}, true
}

func (s *Server) CreateCase(c *gin.Context) {
	if !s.authorize(c, s.orgRef(c), accessdomain.Action{Feature: capabilitydomain.FeatureCaseCreate, Mutation: true}) {
		return
	}
	var req casedomain.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}
	created, err := s.caseSvc.Create(c.Request.Context(), s.currentOrgID(c), s.currentUserID(c), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (s *Server) ListCases(c *gin.Context) {
	if !s.authorize(c, s.orgRef(c), accessdomain.Action{Feature: capabilitydomain.FeatureCaseView}) {
		return
	}
	cases, err := s.caseSvc.List(c.Request.Context(), s.currentOrgID(c))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"cases": cases})
}

func (s *Server) GetCase(c *gin.Context) {
	ref, ok := s.caseRefFromParam(c)
	if !ok {
		return
	}
	if !s.authorize(c, ref, accessdomain.Action{Feature: capabilitydomain.FeatureCaseView}) {
		return
	}
	found, err := s.caseSvc.Get(c.Request.Context(), s.currentOrgID(c), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, found)
}

func (s *Server) UpdateCase(c *gin.Context) {
	ref, ok := s.caseRefFromParam(c)
	if !ok {
		return
	}
	if !s.authorize(c, ref, accessdomain.Action{Feature: capabilitydomain.FeatureCaseUpdate, Mutation: true}) {
		return
	}
	var req casedomain.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}
	req.ID = c.Param("id")
	updated, err := s.caseSvc.Update(c.Request.Context(), s.currentOrgID(c), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (s *Server) DeleteCase(c *gin.Context) {
	ref, ok := s.caseRefFromParam(c)
	if !ok {
		return
	}
	if !s.authorize(c, ref, accessdomain.Action{Feature: capabilitydomain.FeatureCaseDelete, Mutation: true}) {
		return
	}
	if err := s.caseSvc.Delete(c.Request.Context(), s.currentOrgID(c), c.Param("id")); err != nil {
		AbortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) ListPicklistValues(c *gin.Context) {
	if !s.authorize(c, s.orgRef(c), accessdomain.Action{Feature: capabilitydomain.FeatureCaseView}) {
		return
	}
	values, err := s.picklistSvc.ValuesFor(c.Request.Context(), s.currentOrgID(c), c.Param("type"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"values": values})
}
