// Package model defines the domain types used across the application.
package model

import "time"

// ListingType distinguishes the two kinds of marketplace listings.
type ListingType string

// Supported listing types.
const (
	TypeBounty  ListingType = "bounty"
	TypeProject ListingType = "project"
)

// CompensationKind defines how a listing's reward is structured.
type CompensationKind string

// Supported compensation kinds.
const (
	CompFixed    CompensationKind = "fixed"
	CompRange    CompensationKind = "range"
	CompVariable CompensationKind = "variable"
)

// Compensation is a tagged variant: exactly one shape is populated,
// determined by Kind. Use the constructors instead of filling fields
// by hand.
type Compensation struct {
	Kind CompensationKind

	// Fixed: a concrete reward with a known USD value.
	USDValue     float64
	Token        string
	RewardAmount float64

	// Range: the sponsor accepts asks between MinAsk and MaxAsk USD.
	MinAsk float64
	MaxAsk float64
}

// FixedCompensation returns a fixed-value compensation. rewardAmount
// is the token-denominated amount; pass zero when it equals the USD value.
func FixedCompensation(usdValue float64, token string, rewardAmount float64) Compensation {
	return Compensation{
		Kind:         CompFixed,
		USDValue:     usdValue,
		Token:        token,
		RewardAmount: rewardAmount,
	}
}

// RangeCompensation returns a min/max ask compensation.
func RangeCompensation(minAsk, maxAsk float64) Compensation {
	return Compensation{Kind: CompRange, MinAsk: minAsk, MaxAsk: maxAsk}
}

// VariableCompensation returns a compensation with no numbers attached.
func VariableCompensation() Compensation {
	return Compensation{Kind: CompVariable}
}

// USD returns the listing's concrete USD value and whether one exists.
// Only fixed compensations carry a concrete value.
func (c Compensation) USD() (float64, bool) {
	if c.Kind == CompFixed && c.USDValue > 0 {
		return c.USDValue, true
	}
	return 0, false
}

// Listing is a single bounty or project opportunity from the marketplace.
type Listing struct {
	ID           string
	Title        string
	Slug         string
	Type         ListingType
	Deadline     *time.Time
	PublishedAt  *time.Time
	Skills       []string
	Sponsor      string
	Region       string
	Compensation Compensation
}

// User is a registered Telegram user. Inactive users receive no
// notifications but keep their preferences and library.
type User struct {
	TelegramID int64
	Username   string
	FirstName  string
	IsActive   bool
	CreatedAt  time.Time
}

// UserPreferences holds a user's notification filter settings.
// Nil USD bounds mean unbounded on that side; an empty skill set
// means "match any skill".
type UserPreferences struct {
	UserID      int64
	MinUSDValue *float64
	MaxUSDValue *float64
	Bounties    bool
	Projects    bool
	Skills      []string
}

// NotifiableUser is an active user as seen by the delivery pipeline.
// Preferences is nil when the user has never configured any; such
// users are skipped by the dispatcher.
type NotifiableUser struct {
	TelegramID  int64
	FirstName   string
	Preferences *UserPreferences
}

// SavedListing is a library entry: a notification the user saved.
type SavedListing struct {
	ID         int64
	UserID     int64
	ListingID  string
	Title      string
	Slug       string
	Sponsor    string
	RewardText string
	Deadline   *time.Time
	URL        string
	SavedAt    time.Time
}
