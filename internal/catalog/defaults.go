package catalog

import "github.com/realworldcase/challenge-engine/internal/models"

var defaultIndustries = []models.CategoryOption{
	{Value: "any_industries", Label: "Any Industries"},
	{Value: "fintech", Label: "Fintech"},
	{Value: "ecommerce", Label: "E-commerce"},
	{Value: "healthcare", Label: "Healthcare"},
	{Value: "edutech", Label: "Edutech"},
	{Value: "banking", Label: "Banking"},
	{Value: "gaming", Label: "Gaming"},
	{Value: "media", Label: "Media"},
	{Value: "logistics", Label: "Logistics"},
	{Value: "travel", Label: "Travel"},
	{Value: "saas", Label: "SaaS"},
	{Value: "real_estate", Label: "Real Estate"},
	{Value: "govtech", Label: "Govtech"},
}

var defaultRoles = []models.CategoryOption{
	{Value: "any_role", Label: "Any Role"},
	{Value: "frontend_engineer", Label: "Frontend Engineer"},
	{Value: "backend_engineer", Label: "Backend Engineer"},
	{Value: "fullstack_engineer", Label: "Fullstack Engineer"},
	{Value: "mobile_engineer", Label: "Mobile Engineer"},
	{Value: "ai_engineer", Label: "AI Engineer"},
}

// The lowercase "medium" label is what existing frontends display.
var defaultDifficulties = []models.CategoryOption{
	{Value: "any_difficulty", Label: "Any Difficulty"},
	{Value: "easy", Label: "Easy"},
	{Value: "medium", Label: "medium"},
	{Value: "hard", Label: "Hard"},
}
