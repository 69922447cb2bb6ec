// 请求归一化：校验字段、填默认值，纯转换无副作用
package sentiment

import (
	"fmt"
	"time"

	"dine-insights/models"
)

// ValidationError 请求字段校验失败
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Message)
}

// Record 归一化后的工作集条目，附带已解析的时间
type Record struct {
	models.FeedbackRecord
	ParsedDate time.Time
}

// 支持的日期格式，按顺序尝试
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// Normalize 校验请求并生成内部工作集。feedbackData 允许为空，
// 但每条记录必须带 id/source/content/date 且 date 可解析
func Normalize(req *models.AnalysisRequest) ([]Record, error) {
	if req == nil {
		return nil, &ValidationError{Field: "body", Message: "request body is required"}
	}

	if req.AnalysisType == "" {
		req.AnalysisType = models.AnalysisComprehensive
	}
	switch req.AnalysisType {
	case models.AnalysisComprehensive, models.AnalysisQuick, models.AnalysisTrend, models.AnalysisCompetitive:
	default:
		return nil, &ValidationError{Field: "analysisType", Message: "unknown analysis type " + req.AnalysisType}
	}

	records := make([]Record, 0, len(req.FeedbackData))
	for i, rec := range req.FeedbackData {
		if rec.ID == "" {
			return nil, &ValidationError{Field: fmt.Sprintf("feedbackData[%d].id", i), Message: "id is required"}
		}
		if rec.Source == "" {
			return nil, &ValidationError{Field: fmt.Sprintf("feedbackData[%d].source", i), Message: "source is required"}
		}
		if !models.ValidSources[rec.Source] {
			return nil, &ValidationError{Field: fmt.Sprintf("feedbackData[%d].source", i), Message: "unknown source " + rec.Source}
		}
		if rec.Content == "" {
			return nil, &ValidationError{Field: fmt.Sprintf("feedbackData[%d].content", i), Message: "content is required"}
		}
		if rec.Rating != nil && (*rec.Rating < 1 || *rec.Rating > 5) {
			return nil, &ValidationError{Field: fmt.Sprintf("feedbackData[%d].rating", i), Message: "rating must be between 1 and 5"}
		}
		parsed, err := ParseDate(rec.Date)
		if err != nil {
			return nil, &ValidationError{Field: fmt.Sprintf("feedbackData[%d].date", i), Message: err.Error()}
		}
		records = append(records, Record{FeedbackRecord: rec, ParsedDate: parsed})
	}

	return records, nil
}

// ParseDate 按支持的格式解析时间戳
func ParseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, fmt.Errorf("date is required")
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable date %q", s)
}
