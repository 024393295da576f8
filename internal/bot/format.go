package bot

import (
	"fmt"
	"strings"
	"time"

	"earnbot/internal/model"
	"earnbot/internal/notify"
)

// Saved listings closer than this to their deadline are flagged urgent.
const urgentWindow = 24 * time.Hour

// FormatPreferences formats a user's filter settings for display.
// A nil prefs means the user never configured any.
func FormatPreferences(prefs *model.UserPreferences) string {
	if prefs == nil {
		return `You have no filters configured yet — you'll receive all new listings.

Use /min, /max, /bounties, /projects and /skills to narrow them down.`
	}

	var b strings.Builder
	b.WriteString("Your notification filters:\n\n")

	fmt.Fprintf(&b, "Reward range: %s\n", rangeLabel(prefs.MinUSDValue, prefs.MaxUSDValue))
	fmt.Fprintf(&b, "Bounties: %s\n", onOffLabel(prefs.Bounties))
	fmt.Fprintf(&b, "Projects: %s\n", onOffLabel(prefs.Projects))
	fmt.Fprintf(&b, "Skills: %s\n", skillsLabel(prefs.Skills))
	return b.String()
}

// FormatSkills formats the current skill filter.
func FormatSkills(skills []string) string {
	return "Skill filter: " + skillsLabel(skills)
}

// FormatLibrary formats a user's saved listings, soonest deadline
// first, flagging entries that expire within a day.
func FormatLibrary(saved []model.SavedListing) string {
	if len(saved) == 0 {
		return `📚 *Your Library*

Your library is empty!

Save notifications using the 💾 button when you receive them to access them later.`
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📚 *Your Library* (%d items)\n", len(saved))

	now := time.Now()
	for _, entry := range saved {
		urgent := ""
		if entry.Deadline != nil && entry.Deadline.Sub(now) < urgentWindow {
			urgent = "🔥 "
		}
		fmt.Fprintf(&b, "\n%s*%s*\n", urgent, entry.Title)
		fmt.Fprintf(&b, "💰 %s | ⏰ %s\n", entry.RewardText, libraryDeadline(entry.Deadline))
		fmt.Fprintf(&b, "🔗 %s\n", entry.URL)
	}
	return b.String()
}

// FormatRunSummary formats the outcome of a manual /check run.
func FormatRunSummary(s notify.RunSummary) string {
	if s.ListingsProcessed == 0 {
		return "No new listings right now. You're all caught up!"
	}
	return fmt.Sprintf("Checked %d listing(s) for %d user(s) — %d notification(s) sent.",
		s.ListingsProcessed, s.UsersConsidered, s.NotificationsSent)
}

func rangeLabel(minUSD, maxUSD *float64) string {
	switch {
	case minUSD == nil && maxUSD == nil:
		return "any amount"
	case minUSD == nil:
		return fmt.Sprintf("up to $%.0f", *maxUSD)
	case maxUSD == nil:
		return fmt.Sprintf("$%.0f and up", *minUSD)
	default:
		return fmt.Sprintf("$%.0f - $%.0f", *minUSD, *maxUSD)
	}
}

func onOffLabel(on bool) string {
	if on {
		return "on"
	}
	return "off"
}

func skillsLabel(skills []string) string {
	if len(skills) == 0 {
		return "any skill"
	}
	return strings.Join(skills, ", ")
}

func libraryDeadline(deadline *time.Time) string {
	if deadline == nil {
		return "no deadline"
	}
	return deadline.Format("Jan 2")
}
