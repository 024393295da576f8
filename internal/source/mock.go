package source

import (
	"context"
	"time"

	"earnbot/internal/model"
)

// Mock is an in-memory listing source for local development and
// demos. It applies the same staleness window as the real client, so
// one of the seeded listings is deliberately too fresh to notify.
type Mock struct {
	listings []model.Listing
}

// NewMock returns a Mock seeded with representative listings.
func NewMock() *Mock {
	now := time.Now()
	past := func(h float64) *time.Time {
		t := now.Add(-time.Duration(h * float64(time.Hour)))
		return &t
	}
	future := func(days int) *time.Time {
		t := now.AddDate(0, 0, days)
		return &t
	}

	return &Mock{listings: []model.Listing{
		{
			ID:           "1",
			Title:        "Build a React Dashboard for DeFi Analytics",
			Slug:         "react-defi-dashboard",
			Type:         model.TypeBounty,
			Deadline:     future(7),
			PublishedAt:  past(13),
			Skills:       []string{"React", "Javascript", "UI/UX Design"},
			Sponsor:      "SuperteamDAO",
			Region:       "GLOBAL",
			Compensation: model.FixedCompensation(2500, "USDC", 0),
		},
		{
			ID:           "2",
			Title:        "Solana Smart Contract Development",
			Slug:         "solana-smart-contract",
			Type:         model.TypeProject,
			Deadline:     future(14),
			PublishedAt:  past(14),
			Skills:       []string{"Rust", "Solana"},
			Sponsor:      "Phantom Wallet",
			Region:       "GLOBAL",
			Compensation: model.FixedCompensation(5000, "SOL", 15.5),
		},
		{
			ID:           "3",
			Title:        "Community Manager for Vietnamese Market",
			Slug:         "vietnam-community-manager",
			Type:         model.TypeBounty,
			Deadline:     future(10),
			PublishedAt:  past(15),
			Skills:       []string{"Community Manager", "Marketing"},
			Sponsor:      "Solana Foundation",
			Region:       "VIETNAM",
			Compensation: model.FixedCompensation(800, "USDT", 0),
		},
		{
			ID:           "4",
			Title:        "Mobile App UI/UX Design",
			Slug:         "mobile-app-design",
			Type:         model.TypeProject,
			Deadline:     future(5),
			PublishedAt:  past(12.5),
			Skills:       []string{"UI/UX Design", "Mobile"},
			Sponsor:      "Magic Eden",
			Region:       "GLOBAL",
			Compensation: model.VariableCompensation(),
		},
		{
			// Too fresh: inside the staleness window, held back.
			ID:           "5",
			Title:        "Content Writing for Blockchain Blog",
			Slug:         "blockchain-content-writing",
			Type:         model.TypeBounty,
			Deadline:     future(3),
			PublishedAt:  past(6),
			Skills:       []string{"Writing", "Research"},
			Sponsor:      "Solana Labs",
			Region:       "GLOBAL",
			Compensation: model.FixedCompensation(150, "USDC", 0),
		},
		{
			ID:           "6",
			Title:        "TypeScript API Development & Integration",
			Slug:         "typescript-api-development",
			Type:         model.TypeProject,
			Deadline:     future(18),
			PublishedAt:  past(13.2),
			Skills:       []string{"Javascript", "Typescript", "Node.js"},
			Sponsor:      "Drift Protocol",
			Region:       "GLOBAL",
			Compensation: model.RangeCompensation(3500, 7000),
		},
	}}
}

// Fetch returns the seeded listings that are past the staleness window.
func (m *Mock) Fetch(_ context.Context) ([]model.Listing, error) {
	return FilterFresh(m.listings, time.Now()), nil
}

// Add appends a listing to the mock data set.
func (m *Mock) Add(l model.Listing) {
	m.listings = append(m.listings, l)
}
