// 问题/机会/风险洞察与行动项派生，全部由模板表驱动的启发式
package sentiment

import (
	"fmt"
	"math"

	"dine-insights/models"
)

// criticalIssues 由负面记录数按模板比例生成。frequency 为 0 的模板不输出
func (e *Engine) criticalIssues(negatives, overall int) []models.CriticalIssue {
	issues := make([]models.CriticalIssue, 0, len(e.catalog.Issues))
	for _, t := range e.catalog.Issues {
		freq := int(math.Round(float64(negatives) * t.Ratio))
		if freq == 0 {
			continue
		}
		impact := clampInt(40+freq*8-overall/4, 0, 100)
		issues = append(issues, models.CriticalIssue{
			Category:          t.Category,
			Severity:          severityFromImpact(impact),
			Description:       t.Description,
			Frequency:         freq,
			ImpactScore:       impact,
			SuggestedActions:  t.SuggestedActions,
			TimeToResolve:     t.TimeToResolve,
			ResourcesRequired: t.ResourcesRequired,
		})
	}
	return issues
}

func severityFromImpact(impact int) string {
	switch {
	case impact >= 70:
		return "high"
	case impact >= 40:
		return "medium"
	default:
		return "low"
	}
}

// opportunities 模板目录整体输出，证据字段由正面记录数填充
func (e *Engine) opportunities(recs []Record) []models.Opportunity {
	positives := 0
	for _, r := range recs {
		if r.Rating != nil && *r.Rating >= 4 {
			positives++
		}
	}
	opportunities := make([]models.Opportunity, 0, len(e.catalog.Opportunities))
	for _, t := range e.catalog.Opportunities {
		opportunities = append(opportunities, models.Opportunity{
			Area:        t.Area,
			Potential:   t.Potential,
			Description: t.Description,
			Evidence: []string{
				fmt.Sprintf("%d positive mentions across %d feedback records", positives, len(recs)),
			},
			ImplementationDifficulty: t.Difficulty,
			ExpectedImpact:           t.Impact,
		})
	}
	return opportunities
}

// advantages 得分突出的维度视为竞争优势，没有时退回目录默认值
func (e *Engine) advantages(breakdown map[string]models.CategoryScore) []string {
	var advantages []string
	for _, cat := range e.catalog.Categories {
		if cs, ok := breakdown[cat.Name]; ok && cs.Volume > 0 && cs.Score >= 50 {
			advantages = append(advantages, fmt.Sprintf("Strong guest ratings for %s", cat.Name))
		}
	}
	if len(advantages) == 0 {
		advantages = append(advantages, e.catalog.Advantages...)
	}
	return advantages
}

// riskFactors 概率与影响随负面占比上浮
func (e *Engine) riskFactors(negatives, total int) []models.RiskFactor {
	negShare := 0.0
	if total > 0 {
		negShare = float64(negatives) / float64(total)
	}
	risks := make([]models.RiskFactor, 0, len(e.catalog.Risks))
	for _, t := range e.catalog.Risks {
		risks = append(risks, models.RiskFactor{
			Risk:                 t.Risk,
			Probability:          math.Round(clampFloat(t.BaseProbability+negShare*0.5, 0, 1)*100) / 100,
			Impact:               clampInt(t.BaseImpact+int(negShare*40), 0, 100),
			MitigationStrategies: t.Mitigations,
		})
	}
	return risks
}

// actionItems 每个问题的每条建议动作各派生一个行动项，每个机会派生一个。
// 优先级继承：问题 high→urgent 否则 high；机会 high→high 否则 medium
func (e *Engine) actionItems(issues []models.CriticalIssue, opportunities []models.Opportunity) []models.ActionItem {
	now := e.Now()
	var items []models.ActionItem

	for _, issue := range issues {
		priority := "high"
		deadline := now.AddDate(0, 0, 30)
		if issue.Severity == "high" {
			priority = "urgent"
			deadline = now.AddDate(0, 0, 7)
		}
		owner := e.owner(issue.Category)
		for _, action := range issue.SuggestedActions {
			items = append(items, models.ActionItem{
				Priority: priority,
				Category: issue.Category,
				Action:   action,
				Owner:    owner,
				Deadline: deadline.Format("2006-01-02"),
				SuccessMetrics: []string{
					"Reduction in related negative feedback",
					fmt.Sprintf("%s category score improvement", issue.Category),
				},
			})
		}
	}

	for _, opp := range opportunities {
		priority := "medium"
		if opp.Potential == "high" {
			priority = "high"
		}
		items = append(items, models.ActionItem{
			Priority: priority,
			Category: opp.Area,
			Action:   opp.Description,
			Owner:    e.owner(CategoryOverall),
			Deadline: now.AddDate(0, 0, 45).Format("2006-01-02"),
			SuccessMetrics: []string{
				"Measured uptake after launch",
				"Overall sentiment score improvement",
			},
		})
	}

	return items
}

func (e *Engine) owner(category string) string {
	if owner, ok := e.catalog.Owners[category]; ok {
		return owner
	}
	return "General Manager"
}

// benchmarking 行业/本地对比为整体分加有界随机抖动（±10 / ±7），
// 历史对比用近期与早期均分差（×50）回推。接入真实基准数据后应整体替换
func (e *Engine) benchmarking(overall int, recentAvg, olderAvg float64) models.Benchmarking {
	delta := int(math.Round((recentAvg - olderAvg) * 50))
	return models.Benchmarking{
		IndustryComparison:   overall + e.rng.Intn(21) - 10,
		LocalComparison:      overall + e.rng.Intn(15) - 7,
		HistoricalComparison: overall - delta,
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
