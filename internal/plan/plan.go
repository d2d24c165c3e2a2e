// Package plan maps payment-provider product identifiers to internal plan keys.
package plan

// Key identifies a subscription plan tier.
type Key string

const (
	KeyBasic        Key = "basic"
	KeyProfessional Key = "professional"
	KeyAgency       Key = "agency"
	KeyEnterprise   Key = "enterprise"
)

// productPlans maps provider product identifiers to plan keys. Checkout
// completion supplies the product identifier; membership here is the only
// trust boundary.
var productPlans = map[string]Key{
	"prod_basic_monthly":        KeyBasic,
	"prod_basic_annual":         KeyBasic,
	"prod_professional_monthly": KeyProfessional,
	"prod_professional_annual":  KeyProfessional,
	"prod_agency_monthly":       KeyAgency,
	"prod_agency_annual":        KeyAgency,
	"prod_enterprise_monthly":   KeyEnterprise,
	"prod_enterprise_annual":    KeyEnterprise,
}

// FromProductID resolves a provider product identifier to a plan key.
// Unmapped identifiers fall back to the lowest tier so a checkout never fails
// on an unknown product.
func FromProductID(productID string) Key {
	if key, ok := productPlans[productID]; ok {
		return key
	}
	return KeyBasic
}
