package database

import (
	"database/sql"
	"encoding/json"

	"dine-insights/models"
	"dine-insights/monitoring"
)

// InsertAnalysisReport 持久化一次分析结果快照。
// 流水线本身无状态，快照只用于历史回看
func InsertAnalysisReport(db *sql.DB, shopID int, analysisType string, result *models.SentimentAnalysisResult) (int, error) {
	payload, err := json.Marshal(result)
	if err != nil {
		return 0, err
	}

	var reportID int
	err = monitoring.RecordDBTime("InsertAnalysisReport", func() error {
		query := `
			INSERT INTO analysis_reports (shop_id, analysis_type, overall_score, trend, confidence, report)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING report_id
		`
		return db.QueryRow(
			query,
			shopID,
			analysisType,
			result.OverallSentiment.Score,
			result.OverallSentiment.Trend,
			result.OverallSentiment.Confidence,
			payload,
		).Scan(&reportID)
	})
	if err != nil {
		return 0, err
	}
	return reportID, nil
}

// LatestAnalysisReport 查询商家最近一次分析快照
func LatestAnalysisReport(db *sql.DB, shopID int) (*models.SentimentAnalysisResult, error) {
	var payload []byte
	err := monitoring.RecordDBTime("LatestAnalysisReport", func() error {
		query := `
			SELECT report FROM analysis_reports
			WHERE shop_id = $1
			ORDER BY created_at DESC
			LIMIT 1
		`
		return db.QueryRow(query, shopID).Scan(&payload)
	})
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	var result models.SentimentAnalysisResult
	if err := json.Unmarshal(payload, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
