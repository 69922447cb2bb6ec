package models

import (
	"strconv"
	"time"
)

// 反馈来源枚举
const (
	SourceReviews       = "reviews"
	SourceSurveys       = "surveys"
	SourceSocialMedia   = "social_media"
	SourceComplaints    = "complaints"
	SourceStaffFeedback = "staff_feedback"
)

// ValidSources 合法的反馈来源集合
var ValidSources = map[string]bool{
	SourceReviews:       true,
	SourceSurveys:       true,
	SourceSocialMedia:   true,
	SourceComplaints:    true,
	SourceStaffFeedback: true,
}

// FeedbackRecord 一条顾客或员工反馈，是分析流水线的输入单元
type FeedbackRecord struct {
	ID       string            `json:"id"`
	Source   string            `json:"source"`
	Content  string            `json:"content"`
	Rating   *float64          `json:"rating,omitempty"` // 1-5 分，可缺省
	Date     string            `json:"date"`             // ISO 8601
	Customer *CustomerInfo     `json:"customer,omitempty"`
	Metadata *FeedbackMetadata `json:"metadata,omitempty"`
}

// CustomerInfo 顾客描述信息
type CustomerInfo struct {
	Type         string `json:"type,omitempty"` // regular/new/vip
	Demographics string `json:"demographics,omitempty"`
}

// FeedbackMetadata 平台/门店/订单类型标签
type FeedbackMetadata struct {
	Platform  string `json:"platform,omitempty"`
	Location  string `json:"location,omitempty"`
	OrderType string `json:"orderType,omitempty"`
}

// 分析类型枚举
const (
	AnalysisComprehensive = "comprehensive"
	AnalysisQuick         = "quick"
	AnalysisTrend         = "trend"
	AnalysisCompetitive   = "competitive"
)

// AnalysisRequest 情感分析接口的请求体
type AnalysisRequest struct {
	FeedbackData []FeedbackRecord `json:"feedbackData"`
	AnalysisType string           `json:"analysisType"`
	Timeframe    string           `json:"timeframe"`
	FocusAreas   []string         `json:"focusAreas,omitempty"`
}

// StoredFeedback 数据库中的反馈行（商家端存储）
type StoredFeedback struct {
	FeedbackID   int       `json:"feedback_id"`
	ShopID       int       `json:"shop_id"`
	Source       string    `json:"source"`
	Content      string    `json:"content"`
	Rating       *float64  `json:"rating,omitempty"`
	Platform     string    `json:"platform,omitempty"`
	CustomerType string    `json:"customer_type,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// ToRecord 将存储行转换为流水线输入记录
func (f *StoredFeedback) ToRecord() FeedbackRecord {
	rec := FeedbackRecord{
		ID:      strconv.Itoa(f.FeedbackID),
		Source:  f.Source,
		Content: f.Content,
		Rating:  f.Rating,
		Date:    f.CreatedAt.Format(time.RFC3339),
	}
	if f.Platform != "" {
		rec.Metadata = &FeedbackMetadata{Platform: f.Platform}
	}
	if f.CustomerType != "" {
		rec.Customer = &CustomerInfo{Type: f.CustomerType}
	}
	return rec
}
