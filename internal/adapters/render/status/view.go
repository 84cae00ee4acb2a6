package status

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/bnema/chatline-entitlements/internal/application"
	"github.com/bnema/chatline-entitlements/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

const barWidth = 24

type RenderOptions struct {
	Now      time.Time
	Location *time.Location
}

func renderView(statuses []application.Status, opts RenderOptions, s styles) string {
	lines := []string{
		s.title.Render("Chatline Accounts"),
		s.header.Render(fmt.Sprintf("accounts: %d", len(statuses))),
	}

	if len(statuses) == 0 {
		lines = append(lines, s.empty.Render("No accounts found."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	for _, status := range statuses {
		lines = append(lines, s.section.Render(renderAccount(status, opts, s)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderAccount(status application.Status, opts RenderOptions, s styles) string {
	features := status.Features

	parts := []string{
		s.account.Render(fmt.Sprintf("Account: %s (%s)", status.Account.Identity, features.Name)),
		s.header.Render(fmt.Sprintf("id: %s", status.Account.ID)),
		quotaLine(status, opts, s),
		s.detail.Render("personalities: " + strings.Join(features.Personalities, ", ")),
		featureFlags(features, s),
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func quotaLine(status application.Status, opts RenderOptions, s styles) string {
	label := s.limitKey.Render("messages today:")
	quota := status.Features.DailyMessageQuota

	if quota == domain.UnlimitedMessages {
		return lipgloss.JoinHorizontal(lipgloss.Top, label, " ", s.detail.Render(fmt.Sprintf("%s used, unlimited", domain.CompactCount(status.UsedToday))))
	}

	usedPercent := 100.0
	if quota > 0 {
		usedPercent = float64(status.UsedToday) / float64(quota) * 100
	}

	meta := s.detail.Render(fmt.Sprintf("%d/%d left", status.Remaining, quota))
	if status.Remaining == 0 {
		meta = s.warning.Render(fmt.Sprintf("0/%d left", quota))
	}

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		label,
		" ",
		renderProgressBar(usedPercent, barWidth, s),
		" ",
		meta,
		" ",
		s.header.Render(fmt.Sprintf("(%s)", formatResetRelative(nextMidnight(opts), opts.Now))),
	)
}

func featureFlags(def domain.TierDefinition, s styles) string {
	flags := []string{
		flag("streaming", def.Streaming, s),
		flag("priority support", def.PrioritySupport, s),
	}
	if def.CustomPersonalitySlots > 0 {
		flags = append(flags, s.detail.Render(fmt.Sprintf("custom personalities: %d", def.CustomPersonalitySlots)))
	} else {
		flags = append(flags, s.locked.Render("custom personalities: locked"))
	}

	return strings.Join(flags, "  ")
}

func flag(name string, on bool, s styles) string {
	if on {
		return s.detail.Render(name + ": yes")
	}
	return s.locked.Render(name + ": locked")
}

func renderPlans(catalog []domain.TierDefinition, s styles) string {
	lines := []string{s.title.Render("Plans")}

	for _, def := range catalog {
		quota := "unlimited messages"
		if !def.Unlimited() {
			quota = fmt.Sprintf("%d messages/day", def.DailyMessageQuota)
		}

		block := lipgloss.JoinVertical(
			lipgloss.Left,
			lipgloss.JoinHorizontal(lipgloss.Top, s.account.Render(def.Name), " ", s.price.Render(formatPrice(def))),
			s.detail.Render(def.Description),
			s.detail.Render(fmt.Sprintf("%s, %d personalities", quota, len(def.Personalities))),
			featureFlags(def, s),
		)
		lines = append(lines, s.section.Render(block))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderStats(stats application.Stats, s styles) string {
	tiers := make([]string, 0, len(stats.ByTier))
	for tier := range stats.ByTier {
		tiers = append(tiers, string(tier))
	}
	sort.Strings(tiers)

	byTier := make([]string, 0, len(tiers))
	for _, tier := range tiers {
		byTier = append(byTier, fmt.Sprintf("%s=%d", tier, stats.ByTier[domain.Tier(tier)]))
	}

	lines := []string{
		s.title.Render("Chatline Stats"),
		s.header.Render(fmt.Sprintf("day: %s", stats.Day)),
		s.section.Render(s.detail.Render(fmt.Sprintf("accounts: %d (%s)", stats.TotalAccounts, strings.Join(byTier, ", ")))),
		s.detail.Render(fmt.Sprintf("paying: %d (%.1f%% conversion)", stats.PayingAccounts, stats.ConversionRate)),
		s.detail.Render(fmt.Sprintf("revenue: %s MRR, %s ARR, %s per paying account",
			formatCents(stats.MonthlyRecurringRevenueCents, stats.Currency),
			formatCents(stats.AnnualRecurringRevenueCents, stats.Currency),
			formatCents(stats.AverageRevenuePerPayingUserCents, stats.Currency))),
		s.detail.Render(fmt.Sprintf("messages today: %s from %d active accounts", domain.CompactCount(stats.MessagesToday), stats.ActiveAccountsToday)),
		s.detail.Render(fmt.Sprintf("avg messages per active account: %.1f", stats.AverageMessagesPerActiveAccount)),
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func formatPrice(def domain.TierDefinition) string {
	if def.MonthlyPriceCents == 0 {
		return "free"
	}

	price := formatCents(def.MonthlyPriceCents, def.Currency)
	if def.BillingPeriod != "" {
		price += " " + def.BillingPeriod
	}
	return price
}

func formatCents(cents int64, currency string) string {
	return strings.TrimSpace(fmt.Sprintf("%d.%02d %s", cents/100, cents%100, currency))
}

func renderProgressBar(usedPercent float64, width int, s styles) string {
	if width <= 0 {
		return ""
	}

	used := clampPercent(usedPercent)
	leftFraction := (100.0 - used) / 100.0
	filled := int(math.Round(float64(width) * leftFraction))
	if filled < 0 {
		filled = 0
	}
	if filled > width {
		filled = width
	}

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		s.barBracket.Render("["),
		s.barFill.Render(strings.Repeat("=", filled)),
		s.barEmpty.Render(strings.Repeat("-", width-filled)),
		s.barBracket.Render("]"),
	)
}

func clampPercent(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// nextMidnight is when today's counter stops applying.
func nextMidnight(opts RenderOptions) time.Time {
	if opts.Now.IsZero() {
		return time.Time{}
	}

	loc := opts.Location
	if loc == nil {
		loc = time.UTC
	}

	now := opts.Now.In(loc)
	year, month, day := now.Date()
	return time.Date(year, month, day+1, 0, 0, 0, 0, loc)
}

func formatResetRelative(resetsAt, now time.Time) string {
	if resetsAt.IsZero() || now.IsZero() {
		return "resets at midnight"
	}

	remaining := resetsAt.Sub(now)
	hours := int(math.Ceil(remaining.Hours()))
	if hours <= 1 {
		minutes := int(math.Ceil(remaining.Minutes()))
		if minutes < 1 {
			minutes = 1
		}
		if minutes < 60 {
			return fmt.Sprintf("resets in %d min", minutes)
		}
		hours = 1
	}

	suffix := "hours"
	if hours == 1 {
		suffix = "hour"
	}
	return fmt.Sprintf("resets in %d %s (%s)", hours, suffix, resetsAt.Format("15:04 MST"))
}
