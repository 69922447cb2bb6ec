// 结构化评分器：从反馈记录确定性地计算整体情感、分类细分与趋势。
// 数值结果不依赖叙事文本，叙事缺失时照常出分
package sentiment

import (
	"fmt"
	"math"
	"math/rand"
	"sort"
	"strings"
	"time"

	"dine-insights/models"
)

const (
	neutralRating  = 3.0
	trendThreshold = 0.3
	trendWindow    = 10
	maxConfidence  = 95
	baseConfidence = 60
)

// Engine 评分引擎。模板表与随机源在构造时注入，每次请求无共享可变状态
type Engine struct {
	catalog Catalog
	rng     *rand.Rand

	// Now 可注入，测试时固定时钟
	Now func() time.Time
}

// NewEngine 用默认模板表构造引擎。seed 只影响基准对比的模拟抖动
func NewEngine(seed int64) *Engine {
	return &Engine{
		catalog: DefaultCatalog(),
		rng:     rand.New(rand.NewSource(seed)),
		Now:     time.Now,
	}
}

// Score 对归一化记录集计算完整的结构化分析结果。
// narrative 为上游叙事文本，仅用于摘要，可为空
func (e *Engine) Score(recs []Record, narrative string) *models.SentimentAnalysisResult {
	sorted := sortByDate(recs)

	avg := ratedAverage(recs)
	overall := ScoreFromRating(avg)
	recentAvg, olderAvg := trendWindows(sorted)
	trend := TrendDirection(recentAvg, olderAvg)
	confidence := Confidence(len(recs))

	result := &models.SentimentAnalysisResult{
		OverallSentiment: models.OverallSentiment{
			Score:      overall,
			Trend:      trend,
			Confidence: confidence,
			Summary:    e.summarize(narrative, overall, trend, len(recs)),
		},
		CategoryBreakdown: e.categoryBreakdown(recs),
		Trends:            e.trendBundle(recs),
	}

	negatives := negativeCount(recs)
	issues := e.criticalIssues(negatives, overall)
	opportunities := e.opportunities(recs)
	result.Insights = models.InsightBundle{
		CriticalIssues:        issues,
		Opportunities:         opportunities,
		CompetitiveAdvantages: e.advantages(result.CategoryBreakdown),
		RiskFactors:           e.riskFactors(negatives, len(recs)),
	}
	result.ActionItems = e.actionItems(issues, opportunities)
	result.Benchmarking = e.benchmarking(overall, recentAvg, olderAvg)

	return result
}

// ScoreFromRating 将 1-5 平均分映射到 -100..100：round((r-3)×50)
func ScoreFromRating(r float64) int {
	return int(math.Round((r - neutralRating) * 50))
}

// Confidence 置信度：基线 60，每条反馈 +5，封顶 95
func Confidence(feedbackCount int) int {
	c := baseConfidence + feedbackCount*5
	if c > maxConfidence {
		return maxConfidence
	}
	return c
}

// TrendDirection 窗口均分差超过 ±0.3 才视为变化（严格不等）
func TrendDirection(recentAvg, olderAvg float64) string {
	switch {
	case recentAvg > olderAvg+trendThreshold:
		return "improving"
	case recentAvg < olderAvg-trendThreshold:
		return "declining"
	default:
		return "stable"
	}
}

// ratedAverage 只对带评分的记录取均值，全部缺省时为中性 3
func ratedAverage(recs []Record) float64 {
	sum, n := 0.0, 0
	for _, r := range recs {
		if r.Rating != nil {
			sum += *r.Rating
			n++
		}
	}
	if n == 0 {
		return neutralRating
	}
	return sum / float64(n)
}

// windowAverage 窗口均分，缺省评分按中性 3 计
func windowAverage(recs []Record) float64 {
	if len(recs) == 0 {
		return neutralRating
	}
	sum := 0.0
	for _, r := range recs {
		sum += ratingOrNeutral(r)
	}
	return sum / float64(len(recs))
}

func ratingOrNeutral(r Record) float64 {
	if r.Rating != nil {
		return *r.Rating
	}
	return neutralRating
}

// trendWindows 取按时间升序的最近 10 条与最早 10 条。
// 样本数不足 20 时两窗口重叠，保持与线上仪表盘一致的既有口径
func trendWindows(sorted []Record) (recentAvg, olderAvg float64) {
	n := len(sorted)
	if n == 0 {
		return neutralRating, neutralRating
	}
	recent, older := sorted, sorted
	if n > trendWindow {
		recent = sorted[n-trendWindow:]
		older = sorted[:trendWindow]
	}
	return windowAverage(recent), windowAverage(older)
}

func sortByDate(recs []Record) []Record {
	sorted := make([]Record, len(recs))
	copy(sorted, recs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].ParsedDate.Before(sorted[j].ParsedDate)
	})
	return sorted
}

func negativeCount(recs []Record) int {
	n := 0
	for _, r := range recs {
		if r.Rating != nil && *r.Rating <= 2 {
			n++
		}
	}
	return n
}

// categoryBreakdown 按固定五个维度做关键词过滤并分别出分
func (e *Engine) categoryBreakdown(recs []Record) map[string]models.CategoryScore {
	breakdown := make(map[string]models.CategoryScore, len(e.catalog.Categories))
	for _, cat := range e.catalog.Categories {
		subset := filterByKeywords(recs, cat.Keywords)

		cs := models.CategoryScore{
			Score:                  ScoreFromRating(ratedAverage(subset)),
			Volume:                 len(subset),
			KeyIssues:              []string{},
			PositiveHighlights:     []string{},
			ImprovementSuggestions: []string{},
		}
		if len(subset) == 0 {
			cs.Score = 0
		}

		negCount := 0
		for _, r := range subset {
			if r.Rating == nil {
				continue
			}
			switch {
			case *r.Rating >= 4 && len(cs.PositiveHighlights) < 3:
				cs.PositiveHighlights = append(cs.PositiveHighlights, truncate(r.Content, 120))
			case *r.Rating <= 2:
				negCount++
				if len(cs.KeyIssues) < 3 {
					cs.KeyIssues = append(cs.KeyIssues, truncate(r.Content, 120))
				}
			}
		}

		// 建议条数由负面记录数限定，内容来自固定模板表
		n := negCount
		if n > len(cat.Suggestions) {
			n = len(cat.Suggestions)
		}
		cs.ImprovementSuggestions = append(cs.ImprovementSuggestions, cat.Suggestions[:n]...)

		breakdown[cat.Name] = cs
	}
	return breakdown
}

// filterByKeywords 大小写不敏感的关键词匹配，无隐藏随机性
func filterByKeywords(recs []Record, keywords []string) []Record {
	var subset []Record
	for _, r := range recs {
		content := strings.ToLower(r.Content)
		for _, kw := range keywords {
			if strings.Contains(content, kw) {
				subset = append(subset, r)
				break
			}
		}
	}
	return subset
}

// trendBundle 日/周/月三条趋势序列，全部由实际数据分桶计算
func (e *Engine) trendBundle(recs []Record) models.TrendBundle {
	now := e.Now()
	return models.TrendBundle{
		Daily:   e.dailyTrend(recs, now),
		Weekly:  e.weeklyTrend(recs, now),
		Monthly: e.monthlyTrend(recs, now),
	}
}

// dailyTrend 最近 7 个自然日，无记录的日期得分为 0
func (e *Engine) dailyTrend(recs []Record, now time.Time) []models.TrendPoint {
	points := make([]models.TrendPoint, 0, 7)
	for i := 6; i >= 0; i-- {
		day := now.AddDate(0, 0, -i)
		y, m, d := day.Date()
		var bucket []Record
		for _, r := range recs {
			ry, rm, rd := r.ParsedDate.Date()
			if ry == y && rm == m && rd == d {
				bucket = append(bucket, r)
			}
		}
		points = append(points, bucketPoint(day.Format("2006-01-02"), bucket))
	}
	return points
}

// weeklyTrend 最近 4 个 ISO 周
func (e *Engine) weeklyTrend(recs []Record, now time.Time) []models.TrendPoint {
	points := make([]models.TrendPoint, 0, 4)
	for i := 3; i >= 0; i-- {
		ref := now.AddDate(0, 0, -7*i)
		wy, ww := ref.ISOWeek()
		var bucket []Record
		for _, r := range recs {
			ry, rw := r.ParsedDate.ISOWeek()
			if ry == wy && rw == ww {
				bucket = append(bucket, r)
			}
		}
		points = append(points, bucketPoint(fmt.Sprintf("%d-W%02d", wy, ww), bucket))
	}
	return points
}

// monthlyTrend 最近 3 个自然月。
// 参考点锚定到月初，避免月末日期在 AddDate 里归一化串月
func (e *Engine) monthlyTrend(recs []Record, now time.Time) []models.TrendPoint {
	base := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	points := make([]models.TrendPoint, 0, 3)
	for i := 2; i >= 0; i-- {
		ref := base.AddDate(0, -i, 0)
		var bucket []Record
		for _, r := range recs {
			if r.ParsedDate.Year() == ref.Year() && r.ParsedDate.Month() == ref.Month() {
				bucket = append(bucket, r)
			}
		}
		points = append(points, bucketPoint(ref.Format("2006-01"), bucket))
	}
	return points
}

func bucketPoint(label string, bucket []Record) models.TrendPoint {
	p := models.TrendPoint{Label: label, Volume: len(bucket)}
	if len(bucket) > 0 {
		p.Score = ScoreFromRating(ratedAverage(bucket))
	}
	return p
}

// summarize 摘要优先取叙事文本首段，缺失时退回确定性描述
func (e *Engine) summarize(narrative string, overall int, trend string, count int) string {
	if s := firstParagraph(narrative); s != "" {
		return truncate(s, 280)
	}
	return fmt.Sprintf("Overall sentiment score %d across %d feedback records; trend is %s.", overall, count, trend)
}

func firstParagraph(s string) string {
	s = strings.TrimSpace(s)
	if idx := strings.Index(s, "\n\n"); idx > 0 {
		s = s[:idx]
	}
	return strings.TrimSpace(s)
}

// truncate 按字符数截断，避免按字节切分撕裂多字节字符
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}
