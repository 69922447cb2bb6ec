package handlers

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"dine-insights/database"
	"dine-insights/importer"
	"dine-insights/logging"
	"dine-insights/models"
	"dine-insights/response"
	"dine-insights/sentiment"

	"github.com/sirupsen/logrus"
)

const analyticsCacheTTL = time.Hour

// 分析窗口取最近 500 条反馈，更早的记录不参与评分
const analyticsFeedbackLimit = 500

func analyticsCacheKey(shopID int) string {
	return fmt.Sprintf("review_analytics_%d", shopID)
}

// StartFeedbackConsumer 订阅反馈通道，异步落库并失效分析缓存
func StartFeedbackConsumer(db *sql.DB, rp *database.RedisPool) {
	pubsub := database.SubscribeFeedback(rp)
	ch := pubsub.Channel()

	for msg := range ch {
		var fb models.StoredFeedback
		if err := json.Unmarshal([]byte(msg.Payload), &fb); err != nil {
			logging.Warn("反馈消息解析失败", logrus.Fields{"error": err})
			continue
		}
		if _, err := database.InsertFeedback(db, &fb); err != nil {
			logging.Error("异步反馈落库失败", logrus.Fields{"error": err, "shop_id": fb.ShopID})
			continue
		}
		if err := database.DeleteFromCache(rp, analyticsCacheKey(fb.ShopID)); err != nil {
			logging.Warn("分析缓存失效失败", logrus.Fields{"error": err})
		}
	}
}

// CreateFeedback 商家录入一条反馈
func CreateFeedback(db *sql.DB, rp *database.RedisPool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			response.Error(w, "只支持 POST 请求", http.StatusMethodNotAllowed)
			return
		}

		var fb models.StoredFeedback
		if err := json.NewDecoder(r.Body).Decode(&fb); err != nil {
			response.BadRequest(w, "请求格式错误", "无效的JSON格式")
			return
		}

		// 参数验证
		if fb.Content == "" {
			response.ValidationError(w, "反馈内容不能为空", "content")
			return
		}
		if !models.ValidSources[fb.Source] {
			response.ValidationError(w, "非法的反馈来源", "source")
			return
		}
		if fb.Rating != nil && (*fb.Rating < 1 || *fb.Rating > 5) {
			response.ValidationError(w, "评分必须在 1-5 之间", "rating")
			return
		}
		fb.ShopID = GetShopID(r)

		feedbackID, err := database.InsertFeedback(db, &fb)
		if err != nil {
			response.ServerError(w, err)
			return
		}
		fb.FeedbackID = feedbackID

		// 新反馈使已缓存的分析结果失效
		if err := database.DeleteFromCache(rp, analyticsCacheKey(fb.ShopID)); err != nil {
			logging.Warn("分析缓存失效失败", logrus.Fields{"error": err})
		}

		response.Created(w, fb, "反馈创建成功")
	}
}

// ListFeedback 商家查询反馈，支持分页
func ListFeedback(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
		if limit <= 0 || limit > 200 {
			limit = 20
		}
		offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
		if offset < 0 {
			offset = 0
		}

		list, err := database.ListFeedbackByShop(db, GetShopID(r), limit, offset)
		if err != nil {
			response.ServerError(w, err)
			return
		}
		response.Success(w, list, "查询成功")
	}
}

// ImportFeedback 从 xlsx 表格批量导入反馈。
// 行优先走消息通道异步落库，Redis 不可用时退回同步插入
func ImportFeedback(db *sql.DB, rp *database.RedisPool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			response.Error(w, "只支持 POST 请求", http.StatusMethodNotAllowed)
			return
		}

		if err := r.ParseMultipartForm(32 << 20); err != nil {
			response.BadRequest(w, "上传解析失败", err.Error())
			return
		}
		file, _, err := r.FormFile("file")
		if err != nil {
			response.BadRequest(w, "缺少上传文件", "file")
			return
		}
		defer file.Close()

		shopID := GetShopID(r)
		list, err := importer.LoadFeedback(file, shopID)
		if err != nil {
			response.BadRequest(w, "表格导入失败", err.Error())
			return
		}

		accepted := 0
		for i := range list {
			if rp != nil {
				if err := database.PublishFeedback(rp, &list[i]); err == nil {
					accepted++
					continue
				}
				logging.Warn("反馈消息发布失败，改为同步落库", logrus.Fields{"row": i})
			}
			if _, err := database.InsertFeedback(db, &list[i]); err != nil {
				logging.Error("导入行落库失败", logrus.Fields{"error": err, "row": i})
				continue
			}
			accepted++
		}

		if err := database.DeleteFromCache(rp, analyticsCacheKey(shopID)); err != nil {
			logging.Warn("分析缓存失效失败", logrus.Fields{"error": err})
		}

		response.Created(w, map[string]int{"accepted": accepted, "total": len(list)}, "导入完成")
	}
}

// GetReviewAnalytics 商家评价分析接口：对存量反馈运行确定性评分。
// 此路径不依赖叙事文本，结果缓存 1 小时
func GetReviewAnalytics(db *sql.DB, rp *database.RedisPool, engine *sentiment.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		shopID := GetShopID(r)
		cacheKey := analyticsCacheKey(shopID)

		if cached, err := database.GetFromCache(rp, cacheKey); err == nil {
			response.Success(w, json.RawMessage(cached), "分析完成（缓存）")
			return
		}

		list, err := database.ListFeedbackByShop(db, shopID, analyticsFeedbackLimit, 0)
		if err != nil {
			response.ServerError(w, err)
			return
		}

		feedbackData := make([]models.FeedbackRecord, 0, len(list))
		for i := range list {
			feedbackData = append(feedbackData, list[i].ToRecord())
		}

		req := models.AnalysisRequest{
			FeedbackData: feedbackData,
			AnalysisType: models.AnalysisComprehensive,
		}
		records, err := sentiment.Normalize(&req)
		if err != nil {
			response.ServerError(w, err)
			return
		}

		// 数值评分与叙事文本解耦，这里传空叙事照常出分
		result := engine.Score(records, "")

		if payload, err := json.Marshal(result); err == nil {
			if err := database.SetToCache(rp, cacheKey, string(payload), analyticsCacheTTL); err != nil {
				logging.Warn("分析结果写缓存失败", logrus.Fields{"error": err})
			}
		}

		response.Success(w, result, "分析完成")
	}
}
