// Package advisory defines the five-seat board panel and the external model
// call made for each seat.
package advisory

import (
	"fmt"
	"strings"

	"github.com/jonathan/board-panel/internal/prompts"
	"github.com/jonathan/board-panel/internal/types"
)

// promptFile is the embedded prompt template file for the panel.
const promptFile = "advisory.json"

// Advisor describes one seat on the board panel.
type Advisor struct {
	Category  types.AdvisoryCategory
	Role      string
	PromptKey string
}

// Panel returns the five advisors in fixed evaluation order. The order must
// match types.Categories(): task outputs are mapped back to categories by
// index.
func Panel() []Advisor {
	return []Advisor{
		{Category: types.CategoryMarketing, Role: "Senior Marketing Advisor", PromptKey: "marketing-analysis"},
		{Category: types.CategoryTechnical, Role: "Tech Lead", PromptKey: "tech-analysis"},
		{Category: types.CategoryOrganizational, Role: "Org/HR Strategist", PromptKey: "org-hr-analysis"},
		{Category: types.CategoryCompetitive, Role: "Competitive Analyst", PromptKey: "competitive-analysis"},
		{Category: types.CategoryFinancial, Role: "Finance Advisor", PromptKey: "finance-analysis"},
	}
}

// BuildPrompt renders the advisor's task prompt for a flattened profile.
func (a Advisor) BuildPrompt(renderedProfile string) string {
	template := prompts.MustGet(promptFile, a.PromptKey)
	return prompts.Format(template, map[string]string{
		"Profile": renderedProfile,
	})
}

// RenderProfile flattens a StartupProfile into the plain-text block shared
// by all five advisor prompts.
func RenderProfile(p *types.StartupProfile) string {
	var sb strings.Builder

	sb.WriteString("## Product & Technology\n")
	writeField(&sb, "Product type", p.ProductTechnology.ProductType)
	writeList(&sb, "Current features", p.ProductTechnology.CurrentFeatures)
	writeList(&sb, "Tech stack", p.ProductTechnology.TechStack)
	writeField(&sb, "Data strategy", p.ProductTechnology.DataStrategy)
	writeField(&sb, "AI usage", p.ProductTechnology.AIUsage)
	writeField(&sb, "Tech challenges", p.ProductTechnology.TechChallenges)

	sb.WriteString("\n## Marketing & Growth\n")
	writeList(&sb, "Marketing channels", p.MarketingGrowth.CurrentMarketingChannels)
	writeField(&sb, "Monthly users", fmt.Sprintf("%d", p.MarketingGrowth.MonthlyUsers))
	writeField(&sb, "Customer acquisition cost", p.MarketingGrowth.CustomerAcquisitionCost)
	writeField(&sb, "Retention strategy", p.MarketingGrowth.RetentionStrategy)
	writeField(&sb, "Growth problems", p.MarketingGrowth.GrowthProblems)

	sb.WriteString("\n## Team & Organization\n")
	writeField(&sb, "Team size", fmt.Sprintf("%d", p.TeamOrganization.TeamSize))
	writeList(&sb, "Founder roles", p.TeamOrganization.FounderRoles)
	writeField(&sb, "Hiring plan (next 3 months)", p.TeamOrganization.HiringPlanNext3Months)
	writeField(&sb, "Org challenges", p.TeamOrganization.OrgChallenges)

	sb.WriteString("\n## Competition & Market\n")
	writeList(&sb, "Known competitors", p.CompetitionMarket.KnownCompetitors)
	writeField(&sb, "Unique advantage", p.CompetitionMarket.UniqueAdvantage)
	writeField(&sb, "Pricing model", p.CompetitionMarket.PricingModel)
	writeField(&sb, "Market risks", p.CompetitionMarket.MarketRisks)

	sb.WriteString("\n## Finance & Runway\n")
	writeField(&sb, "Monthly burn", p.FinanceRunway.MonthlyBurn)
	writeField(&sb, "Current revenue", p.FinanceRunway.CurrentRevenue)
	writeField(&sb, "Funding status", p.FinanceRunway.FundingStatus)
	writeField(&sb, "Runway (months)", p.FinanceRunway.RunwayMonths)
	writeField(&sb, "Financial concerns", p.FinanceRunway.FinancialConcerns)

	return sb.String()
}

func writeField(sb *strings.Builder, label, value string) {
	if strings.TrimSpace(value) == "" {
		return
	}
	fmt.Fprintf(sb, "%s: %s\n", label, value)
}

func writeList(sb *strings.Builder, label string, values []string) {
	if len(values) == 0 {
		return
	}
	fmt.Fprintf(sb, "%s: %s\n", label, strings.Join(values, ", "))
}
