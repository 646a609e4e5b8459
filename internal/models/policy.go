package models

// Verdict is an administrator-supplied override for a governed capability.
type Verdict int

const (
	VerdictUnset Verdict = iota
	VerdictForceEnabled
	VerdictForceDisabled
)

func (v Verdict) String() string {
	switch v {
	case VerdictForceEnabled:
		return "enabled"
	case VerdictForceDisabled:
		return "disabled"
	default:
		return "unset"
	}
}

// IsSet reports whether the verdict overrides user preference.
func (v Verdict) IsSet() bool {
	return v == VerdictForceEnabled || v == VerdictForceDisabled
}

// Policy rule identifiers queried from the policy source.
const (
	RuleAdvancedPasteEnabled = "ConfigureEnabledUtilityAdvancedPaste"
	RuleAllowOnlineAIModels  = "AllowPowerToysAdvancedPasteOnlineAIModels"
)
