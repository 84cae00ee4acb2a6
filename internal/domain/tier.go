package domain

import (
	"fmt"
	"strings"
)

type Tier string

const (
	TierFree    Tier = "free"
	TierPremium Tier = "premium"
	TierVIP     Tier = "vip"
)

// UnlimitedMessages is the DailyMessageQuota sentinel for tiers without a cap.
const UnlimitedMessages int64 = -1

const (
	PersonalityFlirty      = "flirty"
	PersonalityRomantic    = "romantic"
	PersonalityAdventurous = "adventurous"
	PersonalityMysterious  = "mysterious"
	PersonalityPlayful     = "playful"
)

type TierDefinition struct {
	Tier                   Tier
	Name                   string
	DailyMessageQuota      int64
	Personalities          []string
	Streaming              bool
	PrioritySupport        bool
	CustomPersonalitySlots int
	MonthlyPriceCents      int64
	Currency               string
	BillingPeriod          string
	Description            string
}

var allPersonalities = []string{
	PersonalityFlirty,
	PersonalityRomantic,
	PersonalityAdventurous,
	PersonalityMysterious,
	PersonalityPlayful,
}

var tierOrder = []Tier{TierFree, TierPremium, TierVIP}

var tierDefinitions = map[Tier]TierDefinition{
	TierFree: {
		Tier:              TierFree,
		Name:              "Free",
		DailyMessageQuota: 10,
		Personalities:     []string{PersonalityFlirty},
		Currency:          "USD",
		Description:       "Try the basic experience - 10 messages per day with the Flirty operator",
	},
	TierPremium: {
		Tier:              TierPremium,
		Name:              "Premium",
		DailyMessageQuota: 100,
		Personalities:     allPersonalities,
		Streaming:         true,
		PrioritySupport:   true,
		MonthlyPriceCents: 999,
		Currency:          "USD",
		BillingPeriod:     "monthly",
		Description:       "Full access to all 5 operators with streaming - 100 messages per day",
	},
	TierVIP: {
		Tier:                   TierVIP,
		Name:                   "VIP",
		DailyMessageQuota:      UnlimitedMessages,
		Personalities:          allPersonalities,
		Streaming:              true,
		PrioritySupport:        true,
		CustomPersonalitySlots: 3,
		MonthlyPriceCents:      2999,
		Currency:               "USD",
		BillingPeriod:          "monthly",
		Description:            "Unlimited messages, all operators and custom personalities",
	},
}

func (t Tier) Valid() bool {
	_, ok := tierDefinitions[t]
	return ok
}

func (t Tier) String() string {
	return string(t)
}

// ParseTier accepts a tier name in any case. Unlike ResolveTier it rejects
// unknown values, so it belongs on input boundaries only.
func ParseTier(raw string) (Tier, error) {
	tier := Tier(strings.ToLower(strings.TrimSpace(raw)))
	if !tier.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidTier, raw)
	}

	return tier, nil
}

// ResolveTier never fails: unknown tiers get the free definition.
func ResolveTier(t Tier) TierDefinition {
	def, ok := tierDefinitions[t]
	if !ok {
		def = tierDefinitions[TierFree]
	}

	return def.clone()
}

// Catalog returns every tier definition, cheapest first.
func Catalog() []TierDefinition {
	defs := make([]TierDefinition, 0, len(tierOrder))
	for _, tier := range tierOrder {
		defs = append(defs, tierDefinitions[tier].clone())
	}

	return defs
}

func Tiers() []Tier {
	return append([]Tier(nil), tierOrder...)
}

func (d TierDefinition) Unlimited() bool {
	return d.DailyMessageQuota == UnlimitedMessages
}

func (d TierDefinition) HasPersonality(personality string) bool {
	wanted := strings.ToLower(strings.TrimSpace(personality))
	for _, p := range d.Personalities {
		if p == wanted {
			return true
		}
	}

	return false
}

func (d TierDefinition) clone() TierDefinition {
	d.Personalities = append([]string(nil), d.Personalities...)
	return d
}
