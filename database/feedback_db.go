package database

import (
	"database/sql"

	"dine-insights/models"
	"dine-insights/monitoring"
)

// InsertFeedback 将一条反馈插入数据库。
// CreatedAt 非零时按原始日期落库（历史反馈导入），否则取当前时间
func InsertFeedback(db *sql.DB, fb *models.StoredFeedback) (int, error) {
	createdAt := sql.NullTime{Time: fb.CreatedAt, Valid: !fb.CreatedAt.IsZero()}

	var feedbackID int
	err := monitoring.RecordDBTime("InsertFeedback", func() error {
		query := `
			INSERT INTO feedback (shop_id, source, content, rating, platform, customer_type, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, COALESCE($7, now()))
			RETURNING feedback_id, created_at
		`
		return db.QueryRow(
			query,
			fb.ShopID,
			fb.Source,
			fb.Content,
			fb.Rating,
			fb.Platform,
			fb.CustomerType,
			createdAt,
		).Scan(&feedbackID, &fb.CreatedAt)
	})
	if err != nil {
		return 0, err
	}
	return feedbackID, nil
}

// ListFeedbackByShop 查询商家的反馈，按时间倒序分页
func ListFeedbackByShop(db *sql.DB, shopID, limit, offset int) ([]models.StoredFeedback, error) {
	var list []models.StoredFeedback
	err := monitoring.RecordDBTime("ListFeedbackByShop", func() error {
		query := `
			SELECT feedback_id, shop_id, source, content, rating, platform, customer_type, created_at
			FROM feedback
			WHERE shop_id = $1
			ORDER BY created_at DESC
			LIMIT $2 OFFSET $3
		`
		rows, err := db.Query(query, shopID, limit, offset)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var fb models.StoredFeedback
			var rating sql.NullFloat64
			var platform, customerType sql.NullString
			if err := rows.Scan(&fb.FeedbackID, &fb.ShopID, &fb.Source, &fb.Content,
				&rating, &platform, &customerType, &fb.CreatedAt); err != nil {
				return err
			}
			if rating.Valid {
				v := rating.Float64
				fb.Rating = &v
			}
			fb.Platform = platform.String
			fb.CustomerType = customerType.String
			list = append(list, fb)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	return list, nil
}
