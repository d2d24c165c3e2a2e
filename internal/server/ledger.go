package server

import (
	"net/http"

	accessdomain "github.com/casetrail/casetrail/internal/access/domain"
	billingdomain "github.com/casetrail/casetrail/internal/billing/domain"
	capabilitydomain "github.com/casetrail/casetrail/internal/capability/domain"
	invoicedomain "github.com/casetrail/casetrail/internal/invoice/domain"
	retainerdomain "github.com/casetrail/casetrail/internal/retainer/domain"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

func (s *Server) CreateBillingItem(c *gin.Context) {
	var req billingdomain.CreateRequest
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
	item, err := s.billingSvc.Create(c.Request.Context(), s.currentOrgID(c), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (s *Server) ListBillingItems(c *gin.Context) {
	ref, ok := s.caseRefFromParam(c)
	if !ok {
		return
	}
	if !s.authorize(c, ref, accessdomain.Action{Feature: capabilitydomain.FeatureBillingView}) {
		return
	}
	items, err := s.billingSvc.ListByCase(c.Request.Context(), s.currentOrgID(c), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"billing_items": items})
}

func (s *Server) GetBudgetSummary(c *gin.Context) {
	ref, ok := s.caseRefFromParam(c)
	if !ok {
		return
	}
	if !s.authorize(c, ref, accessdomain.Action{Feature: capabilitydomain.FeatureBillingView}) {
		return
	}
	summary, err := s.billingSvc.ComputeBudgetSummary(c.Request.Context(), s.currentOrgID(c), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (s *Server) CreateInvoice(c *gin.Context) {
	var req invoicedomain.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}
	ref, ok := refFromString(accessdomain.TypeCase, req.CaseID)
	if !ok {
		AbortWithError(c, ErrInvalidRequest)
		return
	}
	if !s.authorize(c, ref, accessdomain.Action{Feature: capabilitydomain.FeatureInvoiceManage, Mutation: true}) {
		return
	}
	invoice, err := s.invoiceSvc.Create(c.Request.Context(), s.currentOrgID(c), s.currentUserID(c), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, invoice)
}

func (s *Server) GetInvoice(c *gin.Context) {
	ref, ok := refFromString(accessdomain.TypeInvoice, c.Param("id"))
	if !ok {
		AbortWithError(c, ErrInvalidRequest)
		return
	}
	if !s.authorize(c, ref, accessdomain.Action{Feature: capabilitydomain.FeatureInvoiceView}) {
		return
	}
	invoice, err := s.invoiceSvc.Get(c.Request.Context(), s.currentOrgID(c), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, invoice)
}

func (s *Server) ListInvoices(c *gin.Context) {
	ref, ok := s.caseRefFromParam(c)
	if !ok {
		return
	}
	if !s.authorize(c, ref, accessdomain.Action{Feature: capabilitydomain.FeatureInvoiceView}) {
		return
	}
	invoices, err := s.invoiceSvc.ListByCase(c.Request.Context(), s.currentOrgID(c), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"invoices": invoices})
}

type applyPaymentRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

func (s *Server) ApplyInvoicePayment(c *gin.Context) {
	ref, ok := refFromString(accessdomain.TypeInvoice, c.Param("id"))
	if !ok {
		AbortWithError(c, ErrInvalidRequest)
		return
	}
	if !s.authorize(c, ref, accessdomain.Action{Feature: capabilitydomain.FeatureInvoiceManage, Mutation: true}) {
		return
	}
	var req applyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}
	invoice, err := s.invoiceSvc.ApplyPayment(c.Request.Context(), s.currentOrgID(c), c.Param("id"), req.Amount)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, invoice)
}

func (s *Server) DeleteInvoice(c *gin.Context) {
	ref, ok := refFromString(accessdomain.TypeInvoice, c.Param("id"))
	if !ok {
		AbortWithError(c, ErrInvalidRequest)
		return
	}
	if !s.authorize(c, ref, accessdomain.Action{Feature: capabilitydomain.FeatureInvoiceManage, Mutation: true}) {
		return
	}
	if err := s.invoiceSvc.Delete(c.Request.Context(), s.currentOrgID(c), c.Param("id")); err != nil {
		AbortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) CreateRetainerDeposit(c *gin.Context) {
	var req retainerdomain.DepositRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}
	ref, ok := refFromString(accessdomain.TypeCase, req.CaseID)
	if !ok {
		AbortWithError(c, ErrInvalidRequest)
		return
	}
	if !s.authorize(c, ref, accessdomain.Action{Feature: capabilitydomain.FeatureRetainerManage, Mutation: true}) {
		return
	}
	entry, err := s.retainerSvc.Deposit(c.Request.Context(), s.currentOrgID(c), s.currentUserID(c), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, entry)
}

func (s *Server) CreateRetainerDeduction(c *gin.Context) {
	var req retainerdomain.DeductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}
	ref, ok := refFromString(accessdomain.TypeCase, req.CaseID)
	if !ok {
		AbortWithError(c, ErrInvalidRequest)
		return
	}
	if !s.authorize(c, ref, accessdomain.Action{Feature: capabilitydomain.FeatureRetainerManage, Mutation: true}) {
		return
	}
	entry, err := s.retainerSvc.Deduct(c.Request.Context(), s.currentOrgID(c), s.currentUserID(c), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, entry)
}

func (s *Server) GetRetainerLedger(c *gin.Context) {
	ref, ok := s.caseRefFromParam(c)
	if !ok {
		return
	}
	if !s.authorize(c, ref, accessdomain.Action{Feature: capabilitydomain.FeatureRetainerView}) {
		return
	}
	entries, err := s.retainerSvc.ListByCase(c.Request.Context(), s.currentOrgID(c), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	balance, err := s.retainerSvc.Balance(c.Request.Context(), s.currentOrgID(c), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"entries": entries,
		"balance": balance,
	})
}
