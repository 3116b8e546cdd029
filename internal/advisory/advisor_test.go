package advisory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/board-panel/internal/types"
)

func testProfile() *types.StartupProfile {
	return &types.StartupProfile{
		ProductTechnology: types.ProductTechnology{
			ProductType:  "SaaS",
			TechStack:    []string{"Go", "PostgreSQL"},
			DataStrategy: "User Data",
			AIUsage:      "Planned",
		},
		MarketingGrowth: types.MarketingGrowth{
			CurrentMarketingChannels: []string{"SEO"},
			MonthlyUsers:             500,
			GrowthProblems:           "Slow organic growth",
		},
		TeamOrganization: types.TeamOrganization{
			TeamSize:     4,
			FounderRoles: []string{"CEO", "CTO"},
		},
		CompetitionMarket: types.CompetitionMarket{
			KnownCompetitors: []string{"Acme"},
			UniqueAdvantage:  "Vertical focus",
		},
		FinanceRunway: types.FinanceRunway{
			MonthlyBurn:   "$20k",
			FundingStatus: "Seed",
			RunwayMonths:  "10",
		},
	}
}

func TestPanel_MatchesCategoryOrder(t *testing.T) {
	panel := Panel()
	categories := types.Categories()

	require.Len(t, panel, len(categories))
	for i, advisor := range panel {
		assert.Equal(t, categories[i], advisor.Category)
		assert.NotEmpty(t, advisor.Role)
		assert.NotEmpty(t, advisor.PromptKey)
	}
}

func TestPanel_PromptKeysResolve(t *testing.T) {
	for _, advisor := range Panel() {
		t.Run(string(advisor.Category), func(t *testing.T) {
			prompt := advisor.BuildPrompt("Team size: 4")
			assert.NotEmpty(t, prompt)
			assert.Contains(t, prompt, "Team size: 4", "rendered profile must be substituted into the prompt")
			assert.NotContains(t, prompt, "{{.Profile}}")
		})
	}
}

func TestRenderProfile(t *testing.T) {
	rendered := RenderProfile(testProfile())

	// Section headers
	assert.Contains(t, rendered, "## Product & Technology")
	assert.Contains(t, rendered, "## Marketing & Growth")
	assert.Contains(t, rendered, "## Team & Organization")
	assert.Contains(t, rendered, "## Competition & Market")
	assert.Contains(t, rendered, "## Finance & Runway")

	// Scalar and list fields
	assert.Contains(t, rendered, "Product type: SaaS")
	assert.Contains(t, rendered, "Tech stack: Go, PostgreSQL")
	assert.Contains(t, rendered, "Monthly users: 500")
	assert.Contains(t, rendered, "Founder roles: CEO, CTO")
	assert.Contains(t, rendered, "Funding status: Seed")
}

func TestRenderProfile_OmitsEmptyFields(t *testing.T) {
	profile := testProfile()
	profile.ProductTechnology.TechChallenges = ""
	profile.CompetitionMarket.KnownCompetitors = nil

	rendered := RenderProfile(profile)

	assert.NotContains(t, rendered, "Tech challenges")
	assert.NotContains(t, rendered, "Known competitors")
}
