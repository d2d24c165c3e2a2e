package server

import (
	"net/http"
	"strings"

	"github.com/bwmarrin/snowflake"
	accessdomain "github.com/casetrail/casetrail/internal/access/domain"
	attachmentdomain "github.com/casetrail/casetrail/internal/attachment/domain"
	capabilitydomain "github.com/casetrail/casetrail/internal/capability/domain"
	updatedomain "github.com/casetrail/casetrail/internal/caseupdate/domain"
	subjectdomain "github.com/casetrail/casetrail/internal/subject/domain"
	"github.com/gin-gonic/gin"
)

func refFromString(t accessdomain.ResourceType, raw string) (accessdomain.Ref, bool) {
	id, err := snowflake.ParseString(strings.TrimSpace(raw))
	if err != nil || id == 0 {
		return accessdomain.Ref{}, false
	}
	return accessdomain.Ref{Type: t, ID: id}, true
}

func (s *Server) CreateSubject(c *gin.Context) {
	var req subjectdomain.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}
	ref, ok := refFromString(accessdomain.TypeCase, req.CaseID)
	if !ok {
		AbortWithError(c, ErrInvalidRequest)
		return
	}
	if !s.authorize(c, ref, accessdomain.Action{Feature: capabilitydomain.FeatureSubjectManage, Mutation: true}) {
		return
	}
	subject, err := s.subjectSvc.Create(c.Request.Context(), s.currentOrgID(c), s.currentUserID(c), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, subject)
}

func (s *Server) ListSubjects(c *gin.Context) {
	ref, ok := s.caseRefFromParam(c)
	if !ok {
		return
	}
	if !s.authorize(c, ref, accessdomain.Action{Feature: capabilitydomain.FeatureCaseView}) {
		return
	}
	subjects, err := s.subjectSvc.ListByCase(c.Request.Context(), s.currentOrgID(c), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"subjects": subjects})
}

func (s *Server) DeleteSubject(c *gin.Context) {
	ref, ok := refFromString(accessdomain.TypeSubject, c.Param("id"))
	if !ok {
		AbortWithError(c, ErrInvalidRequest)
		return
	}
	if !s.authorize(c, ref, accessdomain.Action{Feature: capabilitydomain.FeatureSubjectManage, Mutation: true}) {
		return
	}
	if err := s.subjectSvc.Delete(c.Request.Context(), s.currentOrgID(c), c.Param("id")); err != nil {
		AbortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) CreateAttachment(c *gin.Context) {
	var req attachmentdomain.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}
	ref, ok := refFromString(accessdomain.TypeSubject, req.SubjectID)
	if !ok {
		AbortWithError(c, ErrInvalidRequest)
		return
	}
	if !s.authorize(c, ref, accessdomain.Action{Feature: capabilitydomain.FeatureAttachmentManage, Mutation: true}) {
		return
	}
	attachment, duplicates, err := s.attachmentSvc.Create(c.Request.Context(), s.currentOrgID(c), s.currentUserID(c), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"attachment":        attachment,
		"duplicates_in_org": duplicates,
		"has_duplicates":    len(duplicates) > 0,
	})
}

func (s *Server) ListAttachments(c *gin.Context) {
	ref, ok := refFromString(accessdomain.TypeSubject, c.Param("id"))
	if !ok {
		AbortWithError(c, ErrInvalidRequest)
		return
	}
	if !s.authorize(c, ref, accessdomain.Action{Feature: capabilitydomain.FeatureCaseView}) {
		return
	}
	attachments, err := s.attachmentSvc.ListBySubject(c.Request.Context(), s.currentOrgID(c), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"attachments": attachments})
}

func (s *Server) CreateCaseUpdate(c *gin.Context) {
	var req updatedomain.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}
	ref, ok := refFromString(accessdomain.TypeCase, req.CaseID)
	if !ok {
		AbortWithError(c, ErrInvalidRequest)
		return
	}
	if !s.authorize(c, ref, accessdomain.Action{Feature: capabilitydomain.FeatureUpdateCreate, Mutation: true}) {
		return
	}
	update, err := s.updateSvc.Create(c.Request.Context(), s.currentOrgID(c), s.currentUserID(c), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, update)
}

func (s *Server) EditCaseUpdate(c *gin.Context) {
	ref, ok := refFromString(accessdomain.TypeCaseUpdate, c.Param("id"))
	if !ok {
		AbortWithError(c, ErrInvalidRequest)
		return
	}
	if !s.authorize(c, ref, accessdomain.Action{Feature: capabilitydomain.FeatureUpdateEdit, Mutation: true}) {
		return
	}
	var req updatedomain.EditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}
	req.ID = c.Param("id")
	update, err := s.updateSvc.Edit(c.Request.Context(), s.currentOrgID(c), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, update)
}

func (s *Server) ListCaseUpdates(c *gin.Context) {
	ref, ok := s.caseRefFromParam(c)
	if !ok {
		return
	}
	if !s.authorize(c, ref, accessdomain.Action{Feature: capabilitydomain.FeatureCaseView}) {
		return
	}
	updates, err := s.updateSvc.ListByCase(c.Request.Context(), s.currentOrgID(c), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"updates": updates})
}
