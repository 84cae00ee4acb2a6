package application

import (
	"context"
	"fmt"
	"sync"

	"github.com/bnema/chatline-entitlements/internal/domain"
	"github.com/bnema/chatline-entitlements/internal/metrics"
	"github.com/rs/zerolog/log"
)

const (
	checkPersonality = "personality"
	checkStreaming   = "streaming"
	checkQuota       = "quota"
)

// Decision is the outcome of one entitlement check. Message is set only when
// the action is denied.
type Decision struct {
	Allowed bool
	Reason  domain.UpgradeReason
	Message string
	Used    int64
	Quota   int64
}

// Authorization is the result of AuthorizeMessage. Decision reports the
// first failing check, or the quota decision when everything passed.
type Authorization struct {
	Account  domain.Account
	Decision Decision
	Day      domain.Day
}

type EntitlementService struct {
	accounts *AccountService
	ledger   *UsageLedger
	sessions *SessionService

	mu    sync.Mutex
	locks map[domain.AccountID]*accountLock
}

type accountLock struct {
	sync.Mutex
	refs int
}

func NewEntitlementService(accounts *AccountService, ledger *UsageLedger, sessions *SessionService) *EntitlementService {
	return &EntitlementService{
		accounts: accounts,
		ledger:   ledger,
		sessions: sessions,
		locks:    map[domain.AccountID]*accountLock{},
	}
}

func (s *EntitlementService) CheckPersonality(ctx context.Context, id domain.AccountID, personality string) (Decision, error) {
	account, err := s.accounts.Get(ctx, id)
	if err != nil {
		return Decision{}, err
	}

	return record(checkPersonality, personalityDecision(account, personality)), nil
}

func (s *EntitlementService) CheckStreaming(ctx context.Context, id domain.AccountID) (Decision, error) {
	account, err := s.accounts.Get(ctx, id)
	if err != nil {
		return Decision{}, err
	}

	return record(checkStreaming, streamingDecision(account)), nil
}

// CheckQuota evaluates today's usage without recording anything.
func (s *EntitlementService) CheckQuota(ctx context.Context, id domain.AccountID) (Decision, error) {
	account, err := s.accounts.Get(ctx, id)
	if err != nil {
		return Decision{}, err
	}

	day := s.ledger.Today()
	used, err := s.ledger.Peek(ctx, id, &day)
	if err != nil {
		return Decision{}, err
	}

	return record(checkQuota, quotaDecision(account, used)), nil
}

// AuthorizeMessage runs the full request path: session, account, feature
// checks, quota, and finally records the message when it is allowed. The day
// is read once so the peek and the record always hit the same counter.
func (s *EntitlementService) AuthorizeMessage(ctx context.Context, token string, req MessageRequest) (Authorization, error) {
	id, err := s.sessions.Validate(ctx, token)
	if err != nil {
		return Authorization{}, err
	}

	account, err := s.accounts.Get(ctx, id)
	if err != nil {
		return Authorization{}, err
	}

	day := s.ledger.Today()
	auth := Authorization{Account: account, Day: day}

	if req.Personality != "" {
		if d := record(checkPersonality, personalityDecision(account, req.Personality)); !d.Allowed {
			auth.Decision = d
			return auth, nil
		}
	}
	if req.Stream {
		if d := record(checkStreaming, streamingDecision(account)); !d.Allowed {
			auth.Decision = d
			return auth, nil
		}
	}

	unlock := s.lockAccount(id)
	defer unlock()

	used, err := s.ledger.Peek(ctx, id, &day)
	if err != nil {
		return Authorization{}, err
	}

	decision := record(checkQuota, quotaDecision(account, used))
	if !decision.Allowed {
		log.Info().Str("account_id", string(id)).Int64("used", used).Msg("Daily quota exhausted")
		auth.Decision = decision
		return auth, nil
	}

	count, err := s.ledger.RecordOn(ctx, id, day)
	if err != nil {
		return Authorization{}, err
	}
	decision.Used = count
	auth.Decision = decision

	return auth, nil
}

// lockAccount serializes peek+record per account inside this process so two
// requests at quota-1 cannot both pass.
func (s *EntitlementService) lockAccount(id domain.AccountID) func() {
	s.mu.Lock()
	l, ok := s.locks[id]
	if !ok {
		l = &accountLock{}
		s.locks[id] = l
	}
	l.refs++
	s.mu.Unlock()

	l.Lock()

	return func() {
		l.Unlock()

		s.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(s.locks, id)
		}
		s.mu.Unlock()
	}
}

func personalityDecision(account domain.Account, personality string) Decision {
	if domain.CanUsePersonality(account, personality) {
		return Decision{Allowed: true}
	}

	return Decision{
		Reason:  domain.UpgradeReasonPersonality,
		Message: domain.UpgradeMessage(account, domain.UpgradeReasonPersonality),
	}
}

func streamingDecision(account domain.Account) Decision {
	if domain.CanStream(account) {
		return Decision{Allowed: true}
	}

	return Decision{
		Reason:  domain.UpgradeReasonStreaming,
		Message: domain.UpgradeMessage(account, domain.UpgradeReasonStreaming),
	}
}

func quotaDecision(account domain.Account, used int64) Decision {
	decision := Decision{
		Allowed: domain.WithinQuota(account, used),
		Used:    used,
		Quota:   account.Features().DailyMessageQuota,
	}
	if !decision.Allowed {
		decision.Reason = domain.UpgradeReasonQuota
		decision.Message = domain.UpgradeMessage(account, domain.UpgradeReasonQuota)
	}

	return decision
}

func record(check string, d Decision) Decision {
	metrics.EntitlementDecisionsTotal.WithLabelValues(check, metrics.Outcome(d.Allowed)).Inc()
	return d
}

func (d Decision) String() string {
	if d.Allowed {
		return "allowed"
	}
	return fmt.Sprintf("denied (%s)", d.Reason)
}
