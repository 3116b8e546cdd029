// Package types defines the shared data structures exchanged between the
// analysis pipeline, the HTTP API, and the CLI.
package types

import (
	"github.com/go-playground/validator/v10"
)

// validate is the shared validator instance. It is safe for concurrent use.
var validate = validator.New()

// ProductTechnology describes the product and its technical footing.
type ProductTechnology struct {
	ProductType     string   `json:"product_type" validate:"required,oneof=Web Mobile SaaS Hardware AI"`
	CurrentFeatures []string `json:"current_features"`
	TechStack       []string `json:"tech_stack"`
	DataStrategy    string   `json:"data_strategy" validate:"required,oneof=None 'User Data' 'External APIs' Proprietary"`
	AIUsage         string   `json:"ai_usage" validate:"required,oneof=None Planned 'In Production'"`
	TechChallenges  string   `json:"tech_challenges"`
}

// MarketingGrowth describes current marketing efforts and growth metrics.
type MarketingGrowth struct {
	CurrentMarketingChannels []string `json:"current_marketing_channels"`
	MonthlyUsers             int      `json:"monthly_users" validate:"min=0"`
	CustomerAcquisitionCost  string   `json:"customer_acquisition_cost"`
	RetentionStrategy        string   `json:"retention_strategy"`
	GrowthProblems           string   `json:"growth_problems"`
}

// TeamOrganization describes the team composition and hiring outlook.
type TeamOrganization struct {
	TeamSize              int      `json:"team_size" validate:"min=0"`
	FounderRoles          []string `json:"founder_roles"`
	HiringPlanNext3Months string   `json:"hiring_plan_next_3_months"`
	OrgChallenges         string   `json:"org_challenges"`
}

// CompetitionMarket describes the competitive landscape.
type CompetitionMarket struct {
	KnownCompetitors []string `json:"known_competitors"`
	UniqueAdvantage  string   `json:"unique_advantage"`
	PricingModel     string   `json:"pricing_model"`
	MarketRisks      string   `json:"market_risks"`
}

// FinanceRunway describes burn, revenue, and funding position.
type FinanceRunway struct {
	MonthlyBurn       string `json:"monthly_burn"`
	CurrentRevenue    string `json:"current_revenue"`
	FundingStatus     string `json:"funding_status" validate:"required,oneof=Bootstrapped Angel Seed 'Series A'"`
	RunwayMonths      string `json:"runway_months"`
	FinancialConcerns string `json:"financial_concerns"`
}

// StartupProfile is the full startup description submitted for analysis.
// All five sections are required. A profile is immutable once submitted;
// the Job that references it is its sole owner.
type StartupProfile struct {
	ProductTechnology ProductTechnology `json:"product_technology" validate:"required"`
	MarketingGrowth   MarketingGrowth   `json:"marketing_growth" validate:"required"`
	TeamOrganization  TeamOrganization  `json:"team_organization" validate:"required"`
	CompetitionMarket CompetitionMarket `json:"competition_market" validate:"required"`
	FinanceRunway     FinanceRunway     `json:"finance_runway" validate:"required"`
}

// Validate checks the profile against its struct tags, including the closed
// categorical fields. Returns a validator.ValidationErrors on failure.
func (p *StartupProfile) Validate() error {
	return validate.Struct(p)
}
