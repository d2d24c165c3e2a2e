package domain

// DefaultGrants is the platform default capability matrix, seeded at startup.
// Anything absent here is denied unless an organization override grants it.
var DefaultGrants = []Grant{
	// owner: full surface
	{Role: "owner", FeatureKey: FeatureCaseView, Allowed: true},
	{Role: "owner", FeatureKey: FeatureCaseCreate, Allowed: true},
	{Role: "owner", FeatureKey: FeatureCaseUpdate, Allowed: true},
	{Role: "owner", FeatureKey: FeatureCaseDelete, Allowed: true},
	{Role: "owner", FeatureKey: FeatureBillingView, Allowed: true},
	{Role: "owner", FeatureKey: FeatureBillingManage, Allowed: true},
	{Role: "owner", FeatureKey: FeatureInvoiceView, Allowed: true},
	{Role: "owner", FeatureKey: FeatureInvoiceManage, Allowed: true},
	{Role: "owner", FeatureKey: FeatureRetainerView, Allowed: true},
	{Role: "owner", FeatureKey: FeatureRetainerManage, Allowed: true},
	{Role: "owner", FeatureKey: FeatureUpdateCreate, Allowed: true},
	{Role: "owner", FeatureKey: FeatureUpdateEdit, Allowed: true},
	{Role: "owner", FeatureKey: FeatureSubjectManage, Allowed: true},
	{Role: "owner", FeatureKey: FeatureAttachmentManage, Allowed: true},
	{Role: "owner", FeatureKey: FeaturePicklistManage, Allowed: true},
	{Role: "owner", FeatureKey: FeatureSettingsManage, Allowed: true},
	{Role: "owner", FeatureKey: FeaturePermissionManage, Allowed: true},
	{Role: "owner", FeatureKey: FeatureEnforcementView, Allowed: true},

	// admin: everything but permission management
	{Role: "admin", FeatureKey: FeatureCaseView, Allowed: true},
	{Role: "admin", FeatureKey: FeatureCaseCreate, Allowed: true},
	{Role: "admin", FeatureKey: FeatureCaseUpdate, Allowed: true},
	{Role: "admin", FeatureKey: FeatureCaseDelete, Allowed: true},
	{Role: "admin", FeatureKey: FeatureBillingView, Allowed: true},
	{Role: "admin", FeatureKey: FeatureBillingManage, Allowed: true},
	{Role: "admin", FeatureKey: FeatureInvoiceView, Allowed: true},
	{Role: "admin", FeatureKey: FeatureInvoiceManage, Allowed: true},
	{Role: "admin", FeatureKey: FeatureRetainerView, Allowed: true},
	{Role: "admin", FeatureKey: FeatureRetainerManage, Allowed: true},
	{Role: "admin", FeatureKey: FeatureUpdateCreate, Allowed: true},
	{Role: "admin", FeatureKey: FeatureUpdateEdit, Allowed: true},
	{Role: "admin", FeatureKey: FeatureSubjectManage, Allowed: true},
	{Role: "admin", FeatureKey: FeatureAttachmentManage, Allowed: true},
	{Role: "admin", FeatureKey: FeaturePicklistManage, Allowed: true},
	{Role: "admin", FeatureKey: FeatureSettingsManage, Allowed: true},
	{Role: "admin", FeatureKey: FeatureEnforcementView, Allowed: true},

	// manager: case and billing work, no invoice/retainer mutation
	{Role: "manager", FeatureKey: FeatureCaseView, Allowed: true},
	{Role: "manager", FeatureKey: FeatureCaseCreate, Allowed: true},
	{Role: "manager", FeatureKey: FeatureCaseUpdate, Allowed: true},
	{Role: "manager", FeatureKey: FeatureBillingView, Allowed: true},
	{Role: "manager", FeatureKey: FeatureBillingManage, Allowed: true},
	{Role: "manager", FeatureKey: FeatureInvoiceView, Allowed: true},
	{Role: "manager", FeatureKey: FeatureRetainerView, Allowed: true},
	{Role: "manager", FeatureKey: FeatureUpdateCreate, Allowed: true},
	{Role: "manager", FeatureKey: FeatureUpdateEdit, Allowed: true},
	{Role: "manager", FeatureKey: FeatureSubjectManage, Allowed: true},
	{Role: "manager", FeatureKey: FeatureAttachmentManage, Allowed: true},

	// investigator: field work on assigned cases
	{Role: "investigator", FeatureKey: FeatureCaseView, Allowed: true},
	{Role: "investigator", FeatureKey: FeatureBillingView, Allowed: true},
	{Role: "investigator", FeatureKey: FeatureBillingManage, Allowed: true},
	{Role: "investigator", FeatureKey: FeatureUpdateCreate, Allowed: true},
	{Role: "investigator", FeatureKey: FeatureSubjectManage, Allowed: true},
	{Role: "investigator", FeatureKey: FeatureAttachmentManage, Allowed: true},

	// vendor: narrow read/write surface
	{Role: "vendor", FeatureKey: FeatureCaseView, Allowed: true},
	{Role: "vendor", FeatureKey: FeatureUpdateCreate, Allowed: true},
	{Role: "vendor", FeatureKey: FeatureAttachmentManage, Allowed: true},
}
