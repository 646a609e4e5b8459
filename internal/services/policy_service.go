package services

import (
	"log/slog"

	"pastesync/internal/models"
	"pastesync/internal/policy"
)

// PolicyState is the result of one policy evaluation.
type PolicyState struct {
	FeatureVerdict  models.Verdict
	OnlineAIVerdict models.Verdict
}

// FeatureLocked reports whether the feature toggle is administrator-controlled.
func (p PolicyState) FeatureLocked() bool {
	return p.FeatureVerdict.IsSet()
}

// OnlineModelsDisallowed is true when online models are blocked outright or
// the whole feature is force-disabled.
func (p PolicyState) OnlineModelsDisallowed() bool {
	return p.OnlineAIVerdict == models.VerdictForceDisabled || p.FeatureVerdict == models.VerdictForceDisabled
}

// ShowOnlineModelsWarning is the informational banner state: online models
// are blocked by their own rule while the feature itself is not disabled.
func (p PolicyState) ShowOnlineModelsWarning() bool {
	return p.OnlineAIVerdict == models.VerdictForceDisabled && p.FeatureVerdict != models.VerdictForceDisabled
}

// PolicyResolver polls the policy source and combines verdicts with user
// preference. Source errors are treated as Unset.
type PolicyResolver interface {
	Evaluate() PolicyState
	ResolveFeatureEnabled(userPreference bool) (effective bool, locked bool)
	ResolveOnlineModelsAllowed() (disallowed bool, showWarningBanner bool)
}

type policyResolver struct {
	source policy.Source
	logger *slog.Logger
}

func NewPolicyResolver(source policy.Source, logger *slog.Logger) PolicyResolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &policyResolver{source: source, logger: logger}
}

func (r *policyResolver) Evaluate() PolicyState {
	return PolicyState{
		FeatureVerdict:  r.query(models.RuleAdvancedPasteEnabled),
		OnlineAIVerdict: r.query(models.RuleAllowOnlineAIModels),
	}
}

func (r *policyResolver) ResolveFeatureEnabled(userPreference bool) (bool, bool) {
	return EffectiveEnabled(r.query(models.RuleAdvancedPasteEnabled), userPreference)
}

func (r *policyResolver) ResolveOnlineModelsAllowed() (bool, bool) {
	state := r.Evaluate()
	return state.OnlineModelsDisallowed(), state.ShowOnlineModelsWarning()
}

func (r *policyResolver) query(ruleID string) models.Verdict {
	if r.source == nil {
		return models.VerdictUnset
	}
	v, err := r.source.QueryVerdict(ruleID)
	if err != nil {
		r.logger.Warn("policy query failed, treating as unset", "rule", ruleID, "error", err)
		return models.VerdictUnset
	}
	return v
}

// EffectiveEnabled applies a verdict over user preference.
func EffectiveEnabled(v models.Verdict, userPreference bool) (effective bool, locked bool) {
	switch v {
	case models.VerdictForceEnabled:
		return true, true
	case models.VerdictForceDisabled:
		return false, true
	}
	return userPreference, false
}
