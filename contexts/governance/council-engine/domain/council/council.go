package council

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"conclave/contexts/governance/council-engine/domain/entities"
	domainerrors "conclave/contexts/governance/council-engine/domain/errors"
)

// ExecutionContext is handed to the caller-supplied hook when a closed
// proposal is executed.
type ExecutionContext struct {
	ProposalID string
	Title      string
	Risk       entities.RiskTier
	Outcome    entities.ProposalOutcome
}

// ExecutionHook applies the proposal's real-world effect. Hook failure is
// recorded in the ledger as data; it never rolls back the close and never
// blocks the status advance to executed.
type ExecutionHook func(ExecutionContext) error

type ExecutionResult struct {
	Success bool
	Error   string
}

// Council is the single-writer decision core. It exclusively owns the member
// registry, every proposal, and the governance ledger; one mutex serializes
// every operation, because Vote touches both a proposal and the shared
// registry in a single read-modify-write.
type Council struct {
	mu sync.Mutex

	cfg           Config
	members       map[string]*entities.Member
	memberOrder   []string
	proposals     map[string]*entities.Proposal
	proposalOrder []string
	ledger        *entities.Ledger
	lastOutcome   *entities.ProposalOutcome

	now   func() time.Time
	newID func() string
}

type Option func(*Council)

// WithClock overrides the time source, for deterministic voting windows in
// tests.
func WithClock(now func() time.Time) Option {
	return func(c *Council) {
		if now != nil {
			c.now = now
		}
	}
}

// WithIDGenerator overrides member/proposal id generation.
func WithIDGenerator(newID func() string) Option {
	return func(c *Council) {
		if newID != nil {
			c.newID = newID
		}
	}
}

func New(cfg Config, opts ...Option) (*Council, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	c := &Council{
		cfg:       cfg,
		members:   make(map[string]*entities.Member),
		proposals: make(map[string]*entities.Proposal),
		ledger:    entities.NewLedger(),
		now:       func() time.Time { return time.Now().UTC() },
		newID:     uuid.NewString,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func (c *Council) Config() Config {
	return c.cfg
}

// AddMember registers a member under a generated id.
func (c *Council) AddMember(name string, initialEnergy uint64) (string, error) {
	return c.RegisterMember("", name, initialEnergy)
}

// RegisterMember registers a member under a caller-supplied id, failing with
// ErrDuplicateMember when the id is already taken. An empty id falls back to
// generation.
func (c *Council) RegisterMember(memberID string, name string, initialEnergy uint64) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", domainerrors.ErrInvalidMemberInput
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	memberID = strings.TrimSpace(memberID)
	if memberID == "" {
		memberID = c.newID()
	} else if _, exists := c.members[memberID]; exists {
		return "", domainerrors.ErrDuplicateMember
	}

	timestamp := c.now()
	c.members[memberID] = &entities.Member{
		MemberID: memberID,
		Name:     name,
		Energy:   initialEnergy,
		JoinedAt: timestamp,
	}
	c.memberOrder = append(c.memberOrder, memberID)
	c.ledger.Append(entities.MemberAdded{
		MemberID:  memberID,
		Name:      name,
		Energy:    initialEnergy,
		Timestamp: timestamp,
	})
	return memberID, nil
}

// Propose opens a proposal whose voting window closes after the given
// duration; a non-positive window falls back to the configured default.
func (c *Council) Propose(title string, risk entities.RiskTier, votingWindow time.Duration) (string, error) {
	title = strings.TrimSpace(title)
	if title == "" || !entities.ValidRiskTier(risk) {
		return "", domainerrors.ErrInvalidProposalInput
	}
	if votingWindow <= 0 {
		votingWindow = c.cfg.DefaultVotingWindow
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	timestamp := c.now()
	proposalID := c.newID()
	c.proposals[proposalID] = &entities.Proposal{
		ProposalID: proposalID,
		Title:      title,
		Risk:       risk,
		Status:     entities.ProposalStatusOpen,
		CreatedAt:  timestamp,
		ClosesAt:   timestamp.Add(votingWindow),
	}
	c.proposalOrder = append(c.proposalOrder, proposalID)
	c.ledger.Append(entities.ProposalCreated{
		ProposalID: proposalID,
		Title:      title,
		Risk:       risk,
		ClosesAt:   timestamp.Add(votingWindow),
		Timestamp:  timestamp,
	})
	return proposalID, nil
}

// Vote deducts the per-vote cost from the member's energy and records the
// choice. The deduction is irreversible: there is no refund path, even when
// the proposal later resolves to NoQuorum. Votes arriving after the
// proposal's window has elapsed are rejected as not-open; only Close fixes
// the outcome.
func (c *Council) Vote(proposalID string, memberID string, choice entities.VoteChoice) (entities.VoteReceipt, error) {
	if !entities.ValidVoteChoice(choice) {
		return entities.VoteReceipt{}, domainerrors.ErrInvalidVoteInput
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	proposal, ok := c.proposals[proposalID]
	if !ok {
		return entities.VoteReceipt{}, domainerrors.ErrUnknownProposal
	}
	timestamp := c.now()
	if proposal.Status != entities.ProposalStatusOpen || timestamp.After(proposal.ClosesAt) {
		return entities.VoteReceipt{}, domainerrors.ErrProposalNotOpen
	}
	member, ok := c.members[memberID]
	if !ok {
		return entities.VoteReceipt{}, domainerrors.ErrUnknownMember
	}
	if proposal.HasVoteFrom(memberID) {
		return entities.VoteReceipt{}, domainerrors.ErrDuplicateVote
	}

	cost := c.cfg.VoteCost
	if choice == entities.VoteChoiceAbstain {
		cost = c.cfg.AbstainCost
	}
	if member.Energy < cost {
		return entities.VoteReceipt{}, domainerrors.ErrInsufficientEnergy
	}

	member.Energy -= cost
	proposal.Votes = append(proposal.Votes, entities.VoteRecord{
		MemberID:   memberID,
		Choice:     choice,
		EnergyCost: cost,
		Timestamp:  timestamp,
	})
	c.ledger.Append(entities.VoteCast{
		ProposalID: proposalID,
		MemberID:   memberID,
		Choice:     choice,
		EnergyCost: cost,
		Timestamp:  timestamp,
	})
	return entities.VoteReceipt{
		ProposalID: proposalID,
		MemberID:   memberID,
		Choice:     choice,
		EnergyCost: cost,
		Timestamp:  timestamp,
	}, nil
}

// Close runs the tally, fixes the outcome forever, and applies dissent
// scarring. A second Close fails with ErrProposalNotOpen: history cannot be
// re-closed.
func (c *Council) Close(proposalID string) (entities.ProposalOutcome, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	proposal, ok := c.proposals[proposalID]
	if !ok {
		return "", domainerrors.ErrUnknownProposal
	}
	if proposal.Status != entities.ProposalStatusOpen {
		return "", domainerrors.ErrProposalNotOpen
	}

	tally := Tally(c.cfg.PolicyFor(proposal.Risk), proposal.Votes, len(c.members))
	outcome := tally.Outcome
	proposal.Outcome = &outcome
	proposal.Status = entities.ProposalStatusClosed
	c.lastOutcome = &outcome

	timestamp := c.now()
	c.ledger.Append(entities.ProposalClosed{
		ProposalID:   proposalID,
		Outcome:      outcome,
		ForVotes:     tally.ForVotes,
		AgainstVotes: tally.AgainstVotes,
		AbstainVotes: tally.AbstainVotes,
		TurnoutPct:   tally.TurnoutPct,
		Timestamp:    timestamp,
	})
	c.applyDissentScarring(proposal, outcome, timestamp)
	return outcome, nil
}

// applyDissentScarring penalizes losing-side voters of high-risk proposals
// with +1 permanent damage. Medium/low tiers never scar and abstainers are
// never on a losing side. Caller holds the lock.
func (c *Council) applyDissentScarring(proposal *entities.Proposal, outcome entities.ProposalOutcome, timestamp time.Time) {
	if proposal.Risk != entities.RiskHigh {
		return
	}
	losing, ok := losingChoice(outcome)
	if !ok {
		return
	}
	for _, vote := range proposal.Votes {
		if vote.Choice != losing {
			continue
		}
		member, ok := c.members[vote.MemberID]
		if !ok {
			continue
		}
		member.Damage++
		c.ledger.Append(entities.DissentScarred{
			ProposalID: proposal.ProposalID,
			MemberID:   vote.MemberID,
			Risk:       proposal.Risk,
			Damage:     member.Damage,
			Timestamp:  timestamp,
		})
	}
}

// Execute invokes the hook exactly once and advances the proposal to
// executed unconditionally: a failed effect is recorded, never retried. A
// nil hook records a successful no-op execution.
func (c *Council) Execute(proposalID string, hook ExecutionHook) (ExecutionResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	proposal, ok := c.proposals[proposalID]
	if !ok {
		return ExecutionResult{}, domainerrors.ErrUnknownProposal
	}
	if proposal.Status != entities.ProposalStatusClosed || proposal.Outcome == nil {
		return ExecutionResult{}, domainerrors.ErrProposalNotClosed
	}

	result := ExecutionResult{Success: true}
	if hook != nil {
		if err := hook(ExecutionContext{
			ProposalID: proposal.ProposalID,
			Title:      proposal.Title,
			Risk:       proposal.Risk,
			Outcome:    *proposal.Outcome,
		}); err != nil {
			result = ExecutionResult{Success: false, Error: err.Error()}
		}
	}

	proposal.Status = entities.ProposalStatusExecuted
	c.ledger.Append(entities.ProposalExecuted{
		ProposalID: proposal.ProposalID,
		Outcome:    *proposal.Outcome,
		Success:    result.Success,
		Error:      result.Error,
		Timestamp:  c.now(),
	})
	return result, nil
}

// ResolveProposalID resolves a full id or unique id prefix, for interactive
// callers that type truncated ids.
func (c *Council) ResolveProposalID(prefix string) (string, error) {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return "", domainerrors.ErrUnknownProposal
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.proposals[prefix]; ok {
		return prefix, nil
	}
	resolved := ""
	for _, proposalID := range c.proposalOrder {
		if !strings.HasPrefix(proposalID, prefix) {
			continue
		}
		if resolved != "" {
			return "", domainerrors.ErrAmbiguousProposal
		}
		resolved = proposalID
	}
	if resolved == "" {
		return "", domainerrors.ErrUnknownProposal
	}
	return resolved, nil
}

// MemberIDs returns member ids in registration order.
func (c *Council) MemberIDs() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.memberOrder...)
}

func (c *Council) MemberName(memberID string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	member, ok := c.members[memberID]
	if !ok {
		return "", false
	}
	return member.Name, true
}

func (c *Council) MemberEnergy(memberID string) (uint64, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	member, ok := c.members[memberID]
	if !ok {
		return 0, false
	}
	return member.Energy, true
}

func (c *Council) MemberDamage(memberID string) (uint64, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	member, ok := c.members[memberID]
	if !ok {
		return 0, false
	}
	return member.Damage, true
}

// MemberStandings snapshots the roster in registration order under one lock
// acquisition.
func (c *Council) MemberStandings() []entities.MemberStanding {
	c.mu.Lock()
	defer c.mu.Unlock()
	standings := make([]entities.MemberStanding, 0, len(c.memberOrder))
	for _, memberID := range c.memberOrder {
		member := c.members[memberID]
		standings = append(standings, entities.MemberStanding{
			MemberID: member.MemberID,
			Name:     member.Name,
			Energy:   member.Energy,
			Damage:   member.Damage,
		})
	}
	return standings
}

func (c *Council) MemberCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.members)
}

// ProposalIDs returns proposal ids in creation order.
func (c *Council) ProposalIDs() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.proposalOrder...)
}

// Proposal returns a deep copy of the proposal state.
func (c *Council) Proposal(proposalID string) (entities.Proposal, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	proposal, ok := c.proposals[proposalID]
	if !ok {
		return entities.Proposal{}, false
	}
	return proposal.Clone(), true
}

// LastOutcome reports the most recently fixed outcome, if any proposal has
// closed.
func (c *Council) LastOutcome() (entities.ProposalOutcome, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.lastOutcome == nil {
		return "", false
	}
	return *c.lastOutcome, true
}

// LedgerEvents snapshots the full ledger; the sequence is replay-order-equal
// to the sequence of successful mutating calls.
func (c *Council) LedgerEvents() []entities.GovernanceEvent {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ledger.Events()
}

// LedgerEventsSince snapshots entries after the given offset, for export
// cursors.
func (c *Council) LedgerEventsSince(offset int) []entities.GovernanceEvent {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ledger.EventsSince(offset)
}

func (c *Council) LedgerLen() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ledger.Len()
}
