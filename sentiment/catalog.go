// 启发式模板表：分类关键词、改进建议、问题/机会/风险目录。
// 全部以数据表示，便于独立扩展和测试
package sentiment

// CategoryDef 固定维度定义：命中关键词即归入该维度
type CategoryDef struct {
	Name        string
	Keywords    []string
	Suggestions []string
}

// IssueTemplate 关键问题模板。frequency = round(负面记录数 × Ratio)
type IssueTemplate struct {
	Category          string
	Description       string
	Ratio             float64
	SuggestedActions  []string
	TimeToResolve     string
	ResourcesRequired []string
}

// OpportunityTemplate 改进机会模板
type OpportunityTemplate struct {
	Area        string
	Potential   string
	Description string
	Difficulty  string
	Impact      string
}

// RiskTemplate 风险模板。probability/impact 随负面占比上浮
type RiskTemplate struct {
	Risk            string
	BaseProbability float64
	BaseImpact      int
	Mitigations     []string
}

// Catalog 评分引擎用到的全部模板表
type Catalog struct {
	Categories    []CategoryDef
	Issues        []IssueTemplate
	Opportunities []OpportunityTemplate
	Risks         []RiskTemplate
	Advantages    []string
	Owners        map[string]string
}

// 固定的五个维度名
const (
	CategoryFood       = "Food Quality"
	CategoryService    = "Service Quality"
	CategoryAtmosphere = "Atmosphere"
	CategoryValue      = "Value for Money"
	CategoryOverall    = "Overall Experience"
)

// DefaultCatalog 餐饮领域默认模板表
func DefaultCatalog() Catalog {
	return Catalog{
		Categories: []CategoryDef{
			{
				Name:     CategoryFood,
				Keywords: []string{"food", "taste", "meal", "dish", "flavor", "quality", "delicious", "fresh"},
				Suggestions: []string{
					"Review ingredient sourcing and freshness checks",
					"Retrain kitchen staff on plating and consistency",
					"Rotate seasonal menu items based on feedback",
				},
			},
			{
				Name:     CategoryService,
				Keywords: []string{"service", "staff", "waiter", "server", "friendly", "rude", "wait", "attentive"},
				Suggestions: []string{
					"Run a service-recovery training session",
					"Add floor staff during peak hours",
					"Introduce table check-ins within 5 minutes of seating",
				},
			},
			{
				Name:     CategoryAtmosphere,
				Keywords: []string{"atmosphere", "ambiance", "music", "noise", "decor", "clean", "environment"},
				Suggestions: []string{
					"Audit cleaning rota for dining area and restrooms",
					"Adjust background music volume by daypart",
					"Refresh seating layout to reduce crowding",
				},
			},
			{
				Name:     CategoryValue,
				Keywords: []string{"price", "value", "expensive", "cheap", "worth", "cost", "portion"},
				Suggestions: []string{
					"Benchmark menu prices against nearby competitors",
					"Introduce a weekday value set menu",
					"Review portion sizes on flagged dishes",
				},
			},
			{
				Name:     CategoryOverall,
				Keywords: []string{"experience", "overall", "recommend", "visit", "return", "again"},
				Suggestions: []string{
					"Follow up with dissatisfied guests within 48 hours",
					"Launch a post-visit feedback survey",
					"Create a returning-guest recognition program",
				},
			},
		},
		Issues: []IssueTemplate{
			{
				Category:    CategoryService,
				Description: "Service Speed: guests report long waits for seating, ordering or food delivery",
				Ratio:       0.6,
				SuggestedActions: []string{
					"Map peak-hour staffing against order volume",
					"Set kitchen ticket-time targets and track them daily",
					"Enable pre-ordering for repeat guests",
				},
				TimeToResolve:     "2-4 weeks",
				ResourcesRequired: []string{"Shift scheduling review", "Kitchen display system"},
			},
			{
				Category:    CategoryFood,
				Description: "Food Quality: inconsistent preparation and temperature complaints",
				Ratio:       0.4,
				SuggestedActions: []string{
					"Institute line checks before each service",
					"Standardize recipes with photo reference cards",
				},
				TimeToResolve:     "4-6 weeks",
				ResourcesRequired: []string{"Head chef time", "Recipe documentation"},
			},
			{
				Category:    CategoryValue,
				Description: "Perceived Value: guests question pricing relative to portion and quality",
				Ratio:       0.25,
				SuggestedActions: []string{
					"Audit menu engineering for low-value items",
					"Bundle high-margin items into combos",
				},
				TimeToResolve:     "3-5 weeks",
				ResourcesRequired: []string{"Menu cost analysis"},
			},
		},
		Opportunities: []OpportunityTemplate{
			{
				Area:        "Special Dietary Options",
				Potential:   "high",
				Description: "Expand vegetarian, vegan and allergen-friendly menu coverage",
				Difficulty:  "medium",
				Impact:      "Broader guest base and fewer declined visits",
			},
			{
				Area:        "Digital Ordering",
				Potential:   "high",
				Description: "Add QR-code table ordering and pickup pre-ordering",
				Difficulty:  "medium",
				Impact:      "Shorter waits and higher table turnover",
			},
			{
				Area:        "Loyalty Program",
				Potential:   "medium",
				Description: "Reward repeat guests with visit-based perks",
				Difficulty:  "low",
				Impact:      "Higher return-visit rate",
			},
		},
		Risks: []RiskTemplate{
			{
				Risk:            "Negative review momentum on public platforms",
				BaseProbability: 0.2,
				BaseImpact:      50,
				Mitigations: []string{
					"Respond to every public review within 24 hours",
					"Route unhappy guests to a direct recovery channel",
				},
			},
			{
				Risk:            "Staff turnover degrading service consistency",
				BaseProbability: 0.15,
				BaseImpact:      40,
				Mitigations: []string{
					"Run quarterly staff satisfaction checks",
					"Document service standards for fast onboarding",
				},
			},
		},
		Advantages: []string{
			"Established regular-customer base",
			"Location visibility and foot traffic",
		},
		Owners: map[string]string{
			CategoryFood:       "Head Chef",
			CategoryService:    "Front-of-House Manager",
			CategoryAtmosphere: "Operations Manager",
			CategoryValue:      "General Manager",
			CategoryOverall:    "General Manager",
		},
	}
}
