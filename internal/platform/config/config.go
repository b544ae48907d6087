package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"conclave/contexts/governance/council-engine/domain/council"
	"conclave/contexts/governance/council-engine/domain/entities"
)

// Config is centralized process configuration.
// Keep infra values here and pass typed config into builders.
type Config struct {
	ServiceName  string
	HTTPPort     string
	PostgresDSN  string
	KafkaBrokers []string

	Council council.Config

	RelayBatchSize    int
	RelayPollInterval time.Duration

	EnableSimulator        bool
	SimulatorParticipation float64
	SimulatorInterval      time.Duration
}

func Load() (Config, error) {
	service := os.Getenv("SERVICE_NAME")
	if service == "" {
		service = "conclave"
	}

	port := os.Getenv("HTTP_PORT")
	if port == "" {
		port = "8080"
	}

	var brokers []string
	for _, value := range strings.Split(os.Getenv("KAFKA_BROKERS"), ",") {
		value = strings.TrimSpace(value)
		if value != "" {
			brokers = append(brokers, value)
		}
	}
	if len(brokers) == 0 {
		brokers = []string{"localhost:9092"}
	}

	councilCfg := council.DefaultConfig()
	councilCfg.VoteCost = envUint("GOVERNANCE_VOTE_COST", councilCfg.VoteCost)
	councilCfg.AbstainCost = envUint("GOVERNANCE_ABSTAIN_COST", councilCfg.AbstainCost)
	if secs := envInt("GOVERNANCE_VOTING_WINDOW_SECS", 0); secs > 0 {
		councilCfg.DefaultVotingWindow = time.Duration(secs) * time.Second
	}
	applyPolicyOverrides(&councilCfg, entities.RiskLow, "LOW")
	applyPolicyOverrides(&councilCfg, entities.RiskMedium, "MEDIUM")
	applyPolicyOverrides(&councilCfg, entities.RiskHigh, "HIGH")

	cfg := Config{
		ServiceName:  service,
		HTTPPort:     port,
		PostgresDSN:  os.Getenv("POSTGRES_DSN"),
		KafkaBrokers: brokers,

		Council: councilCfg,

		RelayBatchSize:    envInt("LEDGER_RELAY_BATCH_SIZE", 100),
		RelayPollInterval: time.Duration(envInt("LEDGER_RELAY_POLL_MS", 500)) * time.Millisecond,

		EnableSimulator:        envBool("ENABLE_VOTE_SIMULATOR", false),
		SimulatorParticipation: envFloat("VOTE_SIMULATOR_PARTICIPATION", 0.5),
		SimulatorInterval:      time.Duration(envInt("VOTE_SIMULATOR_INTERVAL_MS", 2000)) * time.Millisecond,
	}
	if err := cfg.Council.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyPolicyOverrides(cfg *council.Config, tier entities.RiskTier, suffix string) {
	policy := cfg.Policies[tier]
	policy.QuorumPct = envFloat("GOVERNANCE_QUORUM_"+suffix+"_PCT", policy.QuorumPct)
	policy.PassPct = envFloat("GOVERNANCE_PASS_"+suffix+"_PCT", policy.PassPct)
	cfg.Policies[tier] = policy
}

func envBool(name string, fallback bool) bool {
	raw := strings.TrimSpace(strings.ToLower(os.Getenv(name)))
	if raw == "" {
		return fallback
	}
	switch raw {
	case "1", "true", "t", "yes", "y", "on":
		return true
	case "0", "false", "f", "no", "n", "off":
		return false
	default:
		return fallback
	}
}

func envInt(name string, fallback int) int {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}

func envUint(name string, fallback uint64) uint64 {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return fallback
	}
	value, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return fallback
	}
	return value
}

func envFloat(name string, fallback float64) float64 {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return fallback
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fallback
	}
	return value
}
