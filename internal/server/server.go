package server

import (
	"context"
	"net/http"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/casetrail/casetrail/internal/access"
	accessdomain "github.com/casetrail/casetrail/internal/access/domain"
	"github.com/casetrail/casetrail/internal/attachment"
	attachmentdomain "github.com/casetrail/casetrail/internal/attachment/domain"
	"github.com/casetrail/casetrail/internal/billing"
	billingdomain "github.com/casetrail/casetrail/internal/billing/domain"
	"github.com/casetrail/casetrail/internal/branding"
	brandingdomain "github.com/casetrail/casetrail/internal/branding/domain"
	"github.com/casetrail/casetrail/internal/capability"
	capabilitydomain "github.com/casetrail/casetrail/internal/capability/domain"
	"github.com/casetrail/casetrail/internal/casefile"
	casedomain "github.com/casetrail/casetrail/internal/casefile/domain"
	"github.com/casetrail/casetrail/internal/casework"
	caseworkdomain "github.com/casetrail/casetrail/internal/casework/domain"
	"github.com/casetrail/casetrail/internal/caseupdate"
	updatedomain "github.com/casetrail/casetrail/internal/caseupdate/domain"
	"github.com/casetrail/casetrail/internal/config"
	"github.com/casetrail/casetrail/internal/enforcement"
	enforcementdomain "github.com/casetrail/casetrail/internal/enforcement/domain"
	"github.com/casetrail/casetrail/internal/invoice"
	invoicedomain "github.com/casetrail/casetrail/internal/invoice/domain"
	"github.com/casetrail/casetrail/internal/organization"
	orgdomain "github.com/casetrail/casetrail/internal/organization/domain"
	"github.com/casetrail/casetrail/internal/picklist"
	picklistdomain "github.com/casetrail/casetrail/internal/picklist/domain"
	"github.com/casetrail/casetrail/internal/retainer"
	retainerdomain "github.com/casetrail/casetrail/internal/retainer/domain"
	"github.com/casetrail/casetrail/internal/subject"
	subjectdomain "github.com/casetrail/casetrail/internal/subject/domain"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var Module = fx.Module("http.server",
	fx.Provide(NewHTTPMetrics),
	fx.Provide(registerGin),
	organization.Module,
	capability.Module,
	access.Module,
	picklist.Module,
	casefile.Module,
	subject.Module,
	attachment.Module,
	caseupdate.Module,
	billing.Module,
	invoice.Module,
	retainer.Module,
	casework.Module,
	enforcement.Module,
	branding.Module,
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(log *zap.Logger, httpMetrics *HTTPMetrics) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestID())
	r.Use(requestLogger(log))
	r.Use(MetricsMiddleware(httpMetrics))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func registerGin(log *zap.Logger, httpMetrics *HTTPMetrics) *gin.Engine {
	return NewEngine(log, httpMetrics)
}

// RequestID tags every request with an identifier for log correlation.
// An inbound X-Request-ID from the fronting proxy is kept as-is.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(HeaderRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(ctxKeyRequestID, id)
		c.Writer.Header().Set(HeaderRequestID, id)
		c.Next()
	}
}

func requestLogger(log *zap.Logger) gin.HandlerFunc {
	log = log.Named("http")
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Info("request",
			zap.String("request_id", c.GetString(ctxKeyRequestID)),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
		)
	}
}

func run(lc fx.Lifecycle, cfg config.Config, r *gin.Engine, log *zap.Logger) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("http server starting", zap.String("addr", cfg.HTTPAddr))
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					panic(err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine *gin.Engine
	cfg    config.Config
	db     *gorm.DB
	log    *zap.Logger
	genID  *snowflake.Node

	organizationSvc orgdomain.Service
	capabilitySvc   capabilitydomain.Service
	accessSvc       accessdomain.Service
	picklistSvc     picklistdomain.Service
	caseSvc         casedomain.Service
	subjectSvc      subjectdomain.Service
	attachmentSvc   attachmentdomain.Service
	updateSvc       updatedomain.Service
	billingSvc      billingdomain.Service
	invoiceSvc      invoicedomain.Service
	retainerSvc     retainerdomain.Service
	caseworkSvc     caseworkdomain.Service
	enforcementSvc  enforcementdomain.Service
	brandingSvc     brandingdomain.Service
}

type ServerParams struct {
	fx.In

	Gin   *gin.Engine
	Cfg   config.Config
	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node

	OrganizationSvc orgdomain.Service
	CapabilitySvc   capabilitydomain.Service
	AccessSvc       accessdomain.Service
	PicklistSvc     picklistdomain.Service
	CaseSvc         casedomain.Service
	SubjectSvc      subjectdomain.Service
	AttachmentSvc   attachmentdomain.Service
	UpdateSvc       updatedomain.Service
	BillingSvc      billingdomain.Service
	InvoiceSvc      invoicedomain.Service
	RetainerSvc     retainerdomain.Service
	CaseworkSvc     caseworkdomain.Service
	EnforcementSvc  enforcementdomain.Service
	BrandingSvc     brandingdomain.Service
}

func NewServer(p ServerParams) *Server {
	s := &Server{
		engine:          p.Gin,
		cfg:             p.Cfg,
		db:              p.DB,
		log:             p.Log.Named("server"),
		genID:           p.GenID,
		organizationSvc: p.OrganizationSvc,
		capabilitySvc:   p.CapabilitySvc,
		accessSvc:       p.AccessSvc,
		picklistSvc:     p.PicklistSvc,
		caseSvc:         p.CaseSvc,
		subjectSvc:      p.SubjectSvc,
		attachmentSvc:   p.AttachmentSvc,
		updateSvc:       p.UpdateSvc,
		billingSvc:      p.BillingSvc,
		invoiceSvc:      p.InvoiceSvc,
		retainerSvc:     p.RetainerSvc,
		caseworkSvc:     p.CaseworkSvc,
		enforcementSvc:  p.EnforcementSvc,
		brandingSvc:     p.BrandingSvc,
	}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	r := s.engine

	// Unauthenticated surface. Public branding is the only tenant data
	// reachable without a principal.
	r.GET("/public/organizations/:org_id/branding", s.GetPublicBranding)
	r.POST("/webhooks/checkout", s.CheckoutWebhook)

	authed := r.Group("/api/v1", s.AuthRequired())
	authed.POST("/signup", s.Signup)

	api := authed.Group("", s.OrgContext())
	api.GET("/organization", s.GetOrganization)

	api.POST("/cases", s.CreateCase)
	api.GET("/cases", s.ListCases)
	api.GET("/cases/:id", s.GetCase)
	api.PATCH("/cases/:id", s.UpdateCase)
	api.DELETE("/cases/:id", s.DeleteCase)
	api.GET("/cases/:id/budget-summary", s.GetBudgetSummary)
	api.GET("/cases/:id/subjects", s.ListSubjects)
	api.GET("/cases/:id/updates", s.ListCaseUpdates)
	api.GET("/cases/:id/billing-items", s.ListBillingItems)
	api.GET("/cases/:id/invoices", s.ListInvoices)
	api.GET("/cases/:id/retainer", s.GetRetainerLedger)
	api.GET("/cases/:id/case-services", s.ListCaseServices)
	api.GET("/cases/:id/service-instances", s.ListServiceInstances)

	api.POST("/subjects", s.CreateSubject)
	api.DELETE("/subjects/:id", s.DeleteSubject)
	api.GET("/subjects/:id/attachments", s.ListAttachments)
	api.POST("/attachments", s.CreateAttachment)

	api.POST("/updates", s.CreateCaseUpdate)
	api.PATCH("/updates/:id", s.EditCaseUpdate)

	api.POST("/billing-items", s.CreateBillingItem)
	api.POST("/invoices", s.CreateInvoice)
	api.GET("/invoices/:id", s.GetInvoice)
	api.POST("/invoices/:id/payments", s.ApplyInvoicePayment)
	api.DELETE("/invoices/:id", s.DeleteInvoice)

	api.POST("/retainer/deposits", s.CreateRetainerDeposit)
	api.POST("/retainer/deductions", s.CreateRetainerDeduction)

	api.POST("/case-services", s.CreateCaseService)
	api.POST("/pricing-rules", s.CreatePricingRule)
	api.GET("/case-services/:id/pricing-rules", s.ListPricingRules)
	api.POST("/service-instances", s.CreateServiceInstance)

	api.GET("/picklists/:type", s.ListPicklistValues)

	api.GET("/settings", s.GetSettings)
	api.PATCH("/settings", s.UpdateSettings)
	api.POST("/case-request-forms", s.CreateCaseRequestForm)
	api.GET("/case-request-forms", s.ListCaseRequestForms)

	admin := api.Group("/admin")
	admin.GET("/permissions", s.ListPermissionRules)
	admin.PUT("/permissions", s.SetPermissionOverride)
	admin.POST("/picklists", s.CreatePicklistEntry)
	admin.PATCH("/picklists/:id", s.UpdatePicklistEntry)
	admin.GET("/enforcement-actions", s.ListEnforcementActions)
	admin.POST("/billing/reconcile-legacy", s.ReconcileLegacyBilling)
}
