package domain

// ruleKey identifies one cell of the capability matrix.
type ruleKey struct {
	Role       string
	FeatureKey string
}

// Matrix is an immutable capability snapshot. Lookups are fail-closed: a
// (role, feature_key) pair with no entry is denied.
type Matrix struct {
	Version int64
	grants  map[ruleKey]bool
}

// NewMatrix builds a matrix from rules. Later rules win on duplicate keys.
func NewMatrix(version int64, rules []PermissionRule) Matrix {
	grants := make(map[ruleKey]bool, len(rules))
	for _, rule := range rules {
		grants[ruleKey{Role: rule.Role, FeatureKey: rule.FeatureKey}] = rule.Allowed
	}
	return Matrix{Version: version, grants: grants}
}

// Can reports whether role may use featureKey. Absent rules deny.
func (m Matrix) Can(role, featureKey string) bool {
	allowed, ok := m.grants[ruleKey{Role: role, FeatureKey: featureKey}]
	if !ok {
		return false
	}
	return allowed
}

// Len returns the number of distinct grants in the matrix.
func (m Matrix) Len() int { return len(m.grants) }

// Merge resolves overrides against defaults as a pure last-write-wins merge.
// The result carries the higher of the two versions.
func Merge(defaults, overrides Matrix) Matrix {
	grants := make(map[ruleKey]bool, len(defaults.grants)+len(overrides.grants))
	for key, allowed := range defaults.grants {
		grants[key] = allowed
	}
	for key, allowed := range overrides.grants {
		grants[key] = allowed
	}

	version := defaults.Version
	if overrides.Version > version {
		version = overrides.Version
	}
	return Matrix{Version: version, grants: grants}
}
