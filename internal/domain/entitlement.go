package domain

import (
	"fmt"
	"strings"
)

type UpgradeReason string

const (
	UpgradeReasonPersonality UpgradeReason = "personality"
	UpgradeReasonStreaming   UpgradeReason = "streaming"
	UpgradeReasonQuota       UpgradeReason = "quota"
	UpgradeReasonCustom      UpgradeReason = "custom"
)

func CanUsePersonality(account Account, personality string) bool {
	return ResolveTier(account.Tier).HasPersonality(personality)
}

func CanStream(account Account) bool {
	return ResolveTier(account.Tier).Streaming
}

func WithinQuota(account Account, used int64) bool {
	return WithinQuotaLimit(used, ResolveTier(account.Tier).DailyMessageQuota)
}

// WithinQuotaLimit is a strict less-than check; the unlimited sentinel
// always passes.
func WithinQuotaLimit(used, quota int64) bool {
	if quota == UnlimitedMessages {
		return true
	}

	return used < quota
}

// RemainingMessages returns UnlimitedMessages for uncapped tiers.
func RemainingMessages(account Account, used int64) int64 {
	quota := ResolveTier(account.Tier).DailyMessageQuota
	if quota == UnlimitedMessages {
		return UnlimitedMessages
	}
	if used >= quota {
		return 0
	}

	return quota - used
}

func CanCreateCustomPersonality(account Account, existing int) bool {
	return existing < ResolveTier(account.Tier).CustomPersonalitySlots
}

// UpgradeMessage returns the user-facing prompt for a blocked action. Only the
// quota copy depends on the caller's tier: it names the current limit and the
// tiers above it.
func UpgradeMessage(account Account, reason UpgradeReason) string {
	premium := ResolveTier(TierPremium)
	vip := ResolveTier(TierVIP)

	switch reason {
	case UpgradeReasonPersonality:
		return fmt.Sprintf("This operator is only available to %s and %s subscribers. Upgrade to %s to unlock all %d personalities!",
			premium.Name, vip.Name, premium.Name, len(premium.Personalities))
	case UpgradeReasonStreaming:
		return fmt.Sprintf("Real-time streaming is a %s feature. Upgrade to %s or %s for instant, flowing conversations!",
			premium.Name, premium.Name, vip.Name)
	case UpgradeReasonQuota:
		return quotaMessage(ResolveTier(account.Tier).DailyMessageQuota)
	case UpgradeReasonCustom:
		return fmt.Sprintf("Custom personalities are exclusive to %s members. Upgrade to %s to create up to %d operators of your own!",
			vip.Name, vip.Name, vip.CustomPersonalitySlots)
	default:
		return fmt.Sprintf("Upgrade to %s to unlock this feature!", premium.Name)
	}
}

func quotaMessage(quota int64) string {
	limit := fmt.Sprintf("You've reached your daily limit of %s messages.", quotaLabel(quota))

	var offers []string
	for _, def := range Catalog() {
		if !exceedsQuota(def.DailyMessageQuota, quota) {
			continue
		}
		if def.DailyMessageQuota == UnlimitedMessages {
			offers = append(offers, fmt.Sprintf("%s for unlimited messages", def.Name))
		} else {
			offers = append(offers, fmt.Sprintf("%s for %d messages per day", def.Name, def.DailyMessageQuota))
		}
	}

	if len(offers) == 0 {
		return limit + " Your allowance resets at midnight."
	}
	return fmt.Sprintf("%s Upgrade to %s!", limit, strings.Join(offers, " or "))
}

// exceedsQuota reports whether quota a allows more messages than b.
func exceedsQuota(a, b int64) bool {
	switch {
	case b == UnlimitedMessages:
		return false
	case a == UnlimitedMessages:
		return true
	default:
		return a > b
	}
}

func quotaLabel(quota int64) string {
	if quota == UnlimitedMessages {
		return "unlimited"
	}

	return fmt.Sprintf("%d", quota)
}
