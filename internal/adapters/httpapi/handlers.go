package httpapi

import (
	"crypto/subtle"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/bnema/chatline-entitlements/internal/application"
	"github.com/bnema/chatline-entitlements/internal/domain"
	"github.com/bnema/chatline-entitlements/internal/logging"
	"github.com/rs/zerolog/log"
)

const maxBodyBytes = 1 << 16

type credentialsRequest struct {
	Email string `json:"email"`
}

type authResponse struct {
	Token string      `json:"token"`
	User  userPayload `json:"user"`
}

type userPayload struct {
	ID          string         `json:"id"`
	Email       string         `json:"email"`
	Tier        string         `json:"tier"`
	CreatedAt   time.Time      `json:"created_at"`
	LastLoginAt *time.Time     `json:"last_login_at,omitempty"`
	Features    featurePayload `json:"features"`
}

type featurePayload struct {
	DailyMessages          int64    `json:"daily_messages"`
	Personalities          []string `json:"personalities"`
	Streaming              bool     `json:"streaming"`
	PrioritySupport        bool     `json:"priority_support"`
	CustomPersonalitySlots int      `json:"custom_personality_slots"`
}

type usagePayload struct {
	Day       string `json:"day"`
	UsedToday int64  `json:"used_today"`
	Remaining int64  `json:"remaining"`
}

type profileResponse struct {
	User  userPayload  `json:"user"`
	Usage usagePayload `json:"usage"`
}

type planPayload struct {
	Tier              string         `json:"tier"`
	Name              string         `json:"name"`
	Description       string         `json:"description"`
	MonthlyPriceCents int64          `json:"monthly_price_cents"`
	Currency          string         `json:"currency"`
	BillingPeriod     string         `json:"billing_period,omitempty"`
	Features          featurePayload `json:"features"`
}

type authorizeRequest struct {
	Personality string `json:"personality"`
	Stream      bool   `json:"stream"`
}

type decisionPayload struct {
	Allowed bool   `json:"allowed"`
	Reason  string `json:"reason,omitempty"`
	Message string `json:"message,omitempty"`
	Used    int64  `json:"used"`
	Quota   int64  `json:"quota"`
	Day     string `json:"day"`
}

type subscriptionRequest struct {
	Tier string `json:"tier"`
}

type adminStatsResponse struct {
	Users   userStatsPayload    `json:"users"`
	Revenue revenueStatsPayload `json:"revenue"`
	Usage   usageStatsPayload   `json:"usage"`
}

type userStatsPayload struct {
	Total          int            `json:"total"`
	ByTier         map[string]int `json:"by_tier"`
	Paying         int            `json:"paying"`
	ConversionRate float64        `json:"conversion_rate_percent"`
}

type revenueStatsPayload struct {
	Currency   string `json:"currency"`
	MRRCents   int64  `json:"mrr_cents"`
	ARRCents   int64  `json:"arr_cents"`
	ARPPUCents int64  `json:"arppu_cents"`
}

type usageStatsPayload struct {
	Day                             string  `json:"day"`
	MessagesToday                   int64   `json:"messages_today"`
	ActiveAccountsToday             int     `json:"active_accounts_today"`
	AverageMessagesPerActiveAccount float64 `json:"average_messages_per_active_account"`
}

type errorPayload struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func (h *handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	account, err := h.deps.Accounts.Create(r.Context(), req.Email, domain.TierFree)
	if err != nil {
		writeError(w, r, err)
		return
	}

	h.startSession(w, r, account, http.StatusCreated)
}

// handleLogin trusts the identity it is given; credential checks happen
// upstream of this service.
func (h *handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	account, err := h.deps.Accounts.GetByIdentity(r.Context(), req.Email)
	if err != nil {
		writeError(w, r, err)
		return
	}

	h.startSession(w, r, account, http.StatusOK)
}

func (h *handler) startSession(w http.ResponseWriter, r *http.Request, account domain.Account, status int) {
	token, err := h.deps.Sessions.Create(r.Context(), account.ID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	account, err = h.deps.Accounts.Get(r.Context(), account.ID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, status, authResponse{Token: token, User: toUserPayload(account)})
}

func (h *handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	if err := h.deps.Sessions.Terminate(r.Context(), bearerToken(r)); err != nil {
		writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *handler) handleProfile(w http.ResponseWriter, r *http.Request) {
	id, ok := h.authenticate(w, r)
	if !ok {
		return
	}

	status, err := h.deps.Queries.Status(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, profileResponse{
		User: toUserPayload(status.Account),
		Usage: usagePayload{
			Day:       status.Day.String(),
			UsedToday: status.UsedToday,
			Remaining: status.Remaining,
		},
	})
}

func handlePlans(w http.ResponseWriter, _ *http.Request) {
	catalog := domain.Catalog()
	plans := make([]planPayload, 0, len(catalog))
	for _, def := range catalog {
		plans = append(plans, planPayload{
			Tier:              def.Tier.String(),
			Name:              def.Name,
			Description:       def.Description,
			MonthlyPriceCents: def.MonthlyPriceCents,
			Currency:          def.Currency,
			BillingPeriod:     def.BillingPeriod,
			Features:          toFeaturePayload(def),
		})
	}

	writeJSON(w, http.StatusOK, map[string]any{"plans": plans})
}

// handleAuthorize answers 200 when the message may be sent, 403 when a
// feature is locked and 429 when the daily quota is spent.
func (h *handler) handleAuthorize(w http.ResponseWriter, r *http.Request) {
	var req authorizeRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	auth, err := h.deps.Entitlements.AuthorizeMessage(r.Context(), bearerToken(r), application.MessageRequest{
		Personality: req.Personality,
		Stream:      req.Stream,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	status := http.StatusOK
	switch {
	case auth.Decision.Allowed:
	case auth.Decision.Reason == domain.UpgradeReasonQuota:
		status = http.StatusTooManyRequests
	default:
		status = http.StatusForbidden
	}

	writeJSON(w, status, decisionPayload{
		Allowed: auth.Decision.Allowed,
		Reason:  string(auth.Decision.Reason),
		Message: auth.Decision.Message,
		Used:    auth.Decision.Used,
		Quota:   auth.Decision.Quota,
		Day:     auth.Day.String(),
	})
}

func (h *handler) handleUpgrade(w http.ResponseWriter, r *http.Request) {
	id, ok := h.authenticate(w, r)
	if !ok {
		return
	}

	var req subscriptionRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	tier, err := domain.ParseTier(req.Tier)
	if err != nil {
		writeError(w, r, err)
		return
	}

	account, err := h.deps.Subscriptions.Upgrade(r.Context(), id, tier)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"user": toUserPayload(account)})
}

func (h *handler) handleCancel(w http.ResponseWriter, r *http.Request) {
	id, ok := h.authenticate(w, r)
	if !ok {
		return
	}

	account, err := h.deps.Subscriptions.Cancel(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"user": toUserPayload(account)})
}

func (h *handler) handleAdminStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.deps.Queries.Stats(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	byTier := make(map[string]int, len(stats.ByTier))
	for tier, n := range stats.ByTier {
		byTier[tier.String()] = n
	}

	writeJSON(w, http.StatusOK, adminStatsResponse{
		Users: userStatsPayload{
			Total:          stats.TotalAccounts,
			ByTier:         byTier,
			Paying:         stats.PayingAccounts,
			ConversionRate: stats.ConversionRate,
		},
		Revenue: revenueStatsPayload{
			Currency:   stats.Currency,
			MRRCents:   stats.MonthlyRecurringRevenueCents,
			ARRCents:   stats.AnnualRecurringRevenueCents,
			ARPPUCents: stats.AverageRevenuePerPayingUserCents,
		},
		Usage: usageStatsPayload{
			Day:                             stats.Day.String(),
			MessagesToday:                   stats.MessagesToday,
			ActiveAccountsToday:             stats.ActiveAccountsToday,
			AverageMessagesPerActiveAccount: stats.AverageMessagesPerActiveAccount,
		},
	})
}

// requireAdmin refuses the request unless X-Admin-Key matches the configured
// key. An unset key refuses everything.
func (h *handler) requireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		given := r.Header.Get(adminKeyHeader)
		if h.deps.AdminKey == "" || subtle.ConstantTimeCompare([]byte(given), []byte(h.deps.AdminKey)) != 1 {
			writeJSON(w, http.StatusUnauthorized, errorPayload{Error: "unauthorized", Message: "admin key required"})
			return
		}
		next(w, r)
	}
}

func (h *handler) authenticate(w http.ResponseWriter, r *http.Request) (domain.AccountID, bool) {
	id, err := h.deps.Sessions.Validate(r.Context(), bearerToken(r))
	if err != nil {
		writeError(w, r, err)
		return "", false
	}
	return id, true
}

func bearerToken(r *http.Request) string {
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	if len(header) > 7 && strings.EqualFold(header[:7], "bearer ") {
		return strings.TrimSpace(header[7:])
	}
	return ""
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		writeJSON(w, http.StatusBadRequest, errorPayload{Error: "bad_request", Message: "invalid JSON body"})
		return false
	}
	return true
}

func writeJSON[T any](w http.ResponseWriter, status int, v T) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Int("status", status).Msg("Failed to encode response")
	}
}

// writeError maps engine errors to statuses. Anything unrecognised is a 500
// so that gating decisions fail closed.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, code := http.StatusInternalServerError, "internal"
	switch {
	case errors.Is(err, domain.ErrInvalidSession):
		status, code = http.StatusUnauthorized, "invalid_session"
	case errors.Is(err, domain.ErrAccountNotFound):
		status, code = http.StatusNotFound, "not_found"
	case errors.Is(err, domain.ErrDuplicateIdentity):
		status, code = http.StatusConflict, "duplicate_identity"
	case errors.Is(err, domain.ErrInvalidIdentity), errors.Is(err, domain.ErrInvalidTier):
		status, code = http.StatusBadRequest, "bad_request"
	case errors.Is(err, domain.ErrSubscriptionFailed):
		status, code = http.StatusPaymentRequired, "subscription_failed"
	}

	message := err.Error()
	if status == http.StatusInternalServerError {
		logger := logging.FromContext(r.Context())
		logger.Error().Err(err).Str("path", r.URL.Path).Msg("Request failed")
		message = "internal error"
	}

	writeJSON(w, status, errorPayload{Error: code, Message: message})
}

func toUserPayload(account domain.Account) userPayload {
	return userPayload{
		ID:          string(account.ID),
		Email:       account.Identity,
		Tier:        account.Tier.String(),
		CreatedAt:   account.CreatedAt,
		LastLoginAt: account.LastLoginAt,
		Features:    toFeaturePayload(account.Features()),
	}
}

func toFeaturePayload(def domain.TierDefinition) featurePayload {
	return featurePayload{
		DailyMessages:          def.DailyMessageQuota,
		Personalities:          def.Personalities,
		Streaming:              def.Streaming,
		PrioritySupport:        def.PrioritySupport,
		CustomPersonalitySlots: def.CustomPersonalitySlots,
	}
}
