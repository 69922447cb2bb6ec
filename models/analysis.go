package models

// SentimentAnalysisResult 结构化分析结果，所有派生实体每次请求新建
type SentimentAnalysisResult struct {
	OverallSentiment  OverallSentiment         `json:"overallSentiment"`
	CategoryBreakdown map[string]CategoryScore `json:"categoryBreakdown"`
	Trends            TrendBundle              `json:"trends"`
	Insights          InsightBundle            `json:"insights"`
	ActionItems       []ActionItem             `json:"actionItems"`
	Benchmarking      Benchmarking             `json:"benchmarking"`
}

// OverallSentiment 整体情感
type OverallSentiment struct {
	Score      int    `json:"score"`      // -100..100
	Trend      string `json:"trend"`      // improving/declining/stable
	Confidence int    `json:"confidence"` // 0..100
	Summary    string `json:"summary"`
}

// CategoryScore 单个维度的情感细分
type CategoryScore struct {
	Score                  int      `json:"score"` // -100..100
	Volume                 int      `json:"volume"`
	KeyIssues              []string `json:"keyIssues"`
	PositiveHighlights     []string `json:"positiveHighlights"`
	ImprovementSuggestions []string `json:"improvementSuggestions"`
}

// TrendPoint 时间桶聚合
type TrendPoint struct {
	Label  string `json:"label"`
	Score  int    `json:"score"`
	Volume int    `json:"volume"`
}

// TrendBundle 三条并行的趋势序列
type TrendBundle struct {
	Daily   []TrendPoint `json:"daily"`
	Weekly  []TrendPoint `json:"weekly"`
	Monthly []TrendPoint `json:"monthly"`
}

// CriticalIssue 关键问题
type CriticalIssue struct {
	Category          string   `json:"category"`
	Severity          string   `json:"severity"` // high/medium/low
	Description       string   `json:"description"`
	Frequency         int      `json:"frequency"`
	ImpactScore       int      `json:"impactScore"` // 0..100
	SuggestedActions  []string `json:"suggestedActions"`
	TimeToResolve     string   `json:"timeToResolve"`
	ResourcesRequired []string `json:"resourcesRequired"`
}

// Opportunity 改进机会
type Opportunity struct {
	Area                     string   `json:"area"`
	Potential                string   `json:"potential"` // high/medium/low
	Description              string   `json:"description"`
	Evidence                 []string `json:"evidence"`
	ImplementationDifficulty string   `json:"implementationDifficulty"`
	ExpectedImpact           string   `json:"expectedImpact"`
}

// RiskFactor 风险因素
type RiskFactor struct {
	Risk                 string   `json:"risk"`
	Probability          float64  `json:"probability"` // 0..1
	Impact               int      `json:"impact"`      // 0..100
	MitigationStrategies []string `json:"mitigationStrategies"`
}

// InsightBundle 洞察汇总
type InsightBundle struct {
	CriticalIssues        []CriticalIssue `json:"criticalIssues"`
	Opportunities         []Opportunity   `json:"opportunities"`
	CompetitiveAdvantages []string        `json:"competitiveAdvantages"`
	RiskFactors           []RiskFactor    `json:"riskFactors"`
}

// ActionItem 由关键问题或机会派生的待办任务
type ActionItem struct {
	Priority       string   `json:"priority"` // urgent/high/medium/low
	Category       string   `json:"category"`
	Action         string   `json:"action"`
	Owner          string   `json:"owner"`
	Deadline       string   `json:"deadline"`
	SuccessMetrics []string `json:"successMetrics"`
}

// Benchmarking 对比基准。行业/本地为模拟近似值，接入真实数据后应整体替换
type Benchmarking struct {
	IndustryComparison   int `json:"industryComparison"`
	LocalComparison      int `json:"localComparison"`
	HistoricalComparison int `json:"historicalComparison"`
}
