package sentiment

import (
	"math"
	"testing"
	"time"

	"dine-insights/models"
)

// 每条建议动作派生一个行动项，优先级只由严重度决定
func TestActionItemDerivation(t *testing.T) {
	e := fixedEngine()
	issue := models.CriticalIssue{
		Category:         CategoryService,
		Severity:         "high",
		SuggestedActions: []string{"a", "b", "c"},
	}

	items := e.actionItems([]models.CriticalIssue{issue}, nil)
	if len(items) != 3 {
		t.Fatalf("action items = %d, want 3", len(items))
	}
	for _, item := range items {
		if item.Priority != "urgent" {
			t.Errorf("priority = %q, want urgent for high severity", item.Priority)
		}
		if item.Category != CategoryService {
			t.Errorf("category = %q, want %q", item.Category, CategoryService)
		}
		if item.Owner == "" || item.Deadline == "" {
			t.Errorf("owner/deadline not populated: %+v", item)
		}
	}

	issue.Severity = "medium"
	items = e.actionItems([]models.CriticalIssue{issue}, nil)
	for _, item := range items {
		if item.Priority != "high" {
			t.Errorf("priority = %q, want high for medium severity", item.Priority)
		}
	}
}

func TestActionItemsFromOpportunities(t *testing.T) {
	e := fixedEngine()
	opps := []models.Opportunity{
		{Area: "Digital Ordering", Potential: "high", Description: "do it"},
		{Area: "Loyalty Program", Potential: "medium", Description: "maybe"},
	}

	items := e.actionItems(nil, opps)
	if len(items) != 2 {
		t.Fatalf("action items = %d, want 2", len(items))
	}
	if items[0].Priority != "high" {
		t.Errorf("high potential priority = %q, want high", items[0].Priority)
	}
	if items[1].Priority != "medium" {
		t.Errorf("medium potential priority = %q, want medium", items[1].Priority)
	}
}

// frequency = round(负面记录数 × 模板比例)
func TestCriticalIssueFrequency(t *testing.T) {
	e := fixedEngine()

	issues := e.criticalIssues(10, 0)
	if len(issues) == 0 {
		t.Fatal("expected issues for 10 negatives")
	}
	for _, issue := range issues {
		var ratio float64
		for _, tmpl := range e.catalog.Issues {
			if tmpl.Description == issue.Description {
				ratio = tmpl.Ratio
			}
		}
		want := int(math.Round(10 * ratio))
		if issue.Frequency != want {
			t.Errorf("frequency for %q = %d, want %d", issue.Category, issue.Frequency, want)
		}
		if issue.ImpactScore < 0 || issue.ImpactScore > 100 {
			t.Errorf("impact out of range: %d", issue.ImpactScore)
		}
	}

	// 无负面记录时不产出问题
	if issues := e.criticalIssues(0, 50); len(issues) != 0 {
		t.Errorf("expected no issues for zero negatives, got %d", len(issues))
	}
}

func TestRiskFactorBounds(t *testing.T) {
	e := fixedEngine()
	risks := e.riskFactors(8, 10)
	if len(risks) == 0 {
		t.Fatal("expected risk factors")
	}
	for _, risk := range risks {
		if risk.Probability < 0 || risk.Probability > 1 {
			t.Errorf("probability out of range: %v", risk.Probability)
		}
		if risk.Impact < 0 || risk.Impact > 100 {
			t.Errorf("impact out of range: %d", risk.Impact)
		}
	}
}

func TestBenchmarking(t *testing.T) {
	e := fixedEngine()
	overall := 40
	recentAvg, olderAvg := 3.5, 3.0

	b := e.benchmarking(overall, recentAvg, olderAvg)

	if diff := b.IndustryComparison - overall; diff < -10 || diff > 10 {
		t.Errorf("industry jitter out of bounds: %d", diff)
	}
	if diff := b.LocalComparison - overall; diff < -7 || diff > 7 {
		t.Errorf("local jitter out of bounds: %d", diff)
	}
	// historical = overall - round((recent-older)×50)
	if b.HistoricalComparison != overall-25 {
		t.Errorf("historical = %d, want %d", b.HistoricalComparison, overall-25)
	}
}

func TestNormalizeValidation(t *testing.T) {
	valid := models.FeedbackRecord{
		ID:      "1",
		Source:  models.SourceReviews,
		Content: "fine",
		Date:    "2026-08-10",
	}

	cases := []struct {
		name   string
		mutate func(*models.FeedbackRecord)
	}{
		{"missing id", func(r *models.FeedbackRecord) { r.ID = "" }},
		{"missing source", func(r *models.FeedbackRecord) { r.Source = "" }},
		{"unknown source", func(r *models.FeedbackRecord) { r.Source = "carrier_pigeon" }},
		{"missing content", func(r *models.FeedbackRecord) { r.Content = "" }},
		{"bad date", func(r *models.FeedbackRecord) { r.Date = "next tuesday" }},
		{"rating out of range", func(r *models.FeedbackRecord) { r.Rating = ratingPtr(6) }},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			rec := valid
			c.mutate(&rec)
			req := &models.AnalysisRequest{FeedbackData: []models.FeedbackRecord{rec}}
			if _, err := Normalize(req); err == nil {
				t.Error("expected validation error")
			}
		})
	}

	// 合法请求：默认分析类型，日期解析
	req := &models.AnalysisRequest{FeedbackData: []models.FeedbackRecord{valid}}
	records, err := Normalize(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if req.AnalysisType != models.AnalysisComprehensive {
		t.Errorf("analysisType default = %q", req.AnalysisType)
	}
	want := time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC)
	if !records[0].ParsedDate.Equal(want) {
		t.Errorf("parsed date = %v, want %v", records[0].ParsedDate, want)
	}

	// 空反馈集合法
	if _, err := Normalize(&models.AnalysisRequest{}); err != nil {
		t.Errorf("empty feedbackData should be valid, got %v", err)
	}

	if _, err := Normalize(nil); err == nil {
		t.Error("nil request should fail")
	}
}
