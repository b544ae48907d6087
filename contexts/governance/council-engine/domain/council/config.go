package council

import (
	"time"

	"conclave/contexts/governance/council-engine/domain/entities"
	domainerrors "conclave/contexts/governance/council-engine/domain/errors"
)

// RiskPolicy is the quorum/pass threshold pair for one risk tier.
// PassInclusive selects >= instead of > when comparing the For ratio, so the
// high-tier "at least two thirds" rule fits the same table as the strict
// simple-majority tiers.
type RiskPolicy struct {
	QuorumPct     float64
	PassPct       float64
	PassInclusive bool
}

// Config is the governance policy supplied at council construction.
type Config struct {
	VoteCost            uint64
	AbstainCost         uint64
	DefaultVotingWindow time.Duration
	Policies            map[entities.RiskTier]RiskPolicy
}

// DefaultConfig keeps abstain cost equal to vote cost; the separate knob
// exists so operators can make abstentions cheaper.
func DefaultConfig() Config {
	return Config{
		VoteCost:            10,
		AbstainCost:         10,
		DefaultVotingWindow: 5 * time.Minute,
		Policies: map[entities.RiskTier]RiskPolicy{
			entities.RiskLow:    {QuorumPct: 25, PassPct: 50},
			entities.RiskMedium: {QuorumPct: 40, PassPct: 60},
			entities.RiskHigh:   {QuorumPct: 60, PassPct: 66.7, PassInclusive: true},
		},
	}
}

func (c Config) Validate() error {
	if c.VoteCost == 0 {
		return domainerrors.ErrInvalidConfiguration
	}
	if c.AbstainCost == 0 {
		return domainerrors.ErrInvalidConfiguration
	}
	if c.DefaultVotingWindow <= 0 {
		return domainerrors.ErrInvalidConfiguration
	}
	for _, tier := range []entities.RiskTier{entities.RiskLow, entities.RiskMedium, entities.RiskHigh} {
		policy, ok := c.Policies[tier]
		if !ok {
			return domainerrors.ErrInvalidConfiguration
		}
		if policy.QuorumPct < 0 || policy.QuorumPct > 100 {
			return domainerrors.ErrInvalidConfiguration
		}
		if policy.PassPct < 0 || policy.PassPct > 100 {
			return domainerrors.ErrInvalidConfiguration
		}
	}
	return nil
}

// PolicyFor resolves the threshold entry for a risk tier. Validate guarantees
// presence, so the lookup is total on a constructed council.
func (c Config) PolicyFor(risk entities.RiskTier) RiskPolicy {
	return c.Policies[risk]
}
