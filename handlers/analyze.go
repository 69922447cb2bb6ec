package handlers

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"

	"dine-insights/database"
	"dine-insights/logging"
	"dine-insights/models"
	"dine-insights/monitoring"
	"dine-insights/narrative"
	"dine-insights/response"
	"dine-insights/sentiment"

	"github.com/sirupsen/logrus"
)

// sentimentResponse 情感分析接口的成功响应（前端约定的字段名）
type sentimentResponse struct {
	Success                bool                            `json:"success"`
	Analysis               *models.SentimentAnalysisResult `json:"analysis"`
	AnalysisType           string                          `json:"analysisType"`
	ProcessedFeedbackCount int                             `json:"processedFeedbackCount"`
	AIInsights             string                          `json:"aiInsights"`
}

type aiErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

func writeAIError(w http.ResponseWriter, code int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(aiErrorResponse{Success: false, Error: message})
}

// HandleSentimentAnalysis 反馈情感分析接口。
// 流程：归一化 -> 叙事分析器调用（单次，失败即整体失败）-> 确定性评分
func HandleSentimentAnalysis(analyzer narrative.Analyzer, builder narrative.PromptBuilder, engine *sentiment.Engine, db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeAIError(w, http.StatusMethodNotAllowed, "只支持 POST 请求")
			return
		}

		var req models.AnalysisRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeAIError(w, http.StatusBadRequest, "请求体解析错误: "+err.Error())
			return
		}

		records, err := sentiment.Normalize(&req)
		if err != nil {
			var verr *sentiment.ValidationError
			if errors.As(err, &verr) {
				writeAIError(w, http.StatusBadRequest, verr.Error())
				return
			}
			writeAIError(w, http.StatusInternalServerError, err.Error())
			return
		}

		prompt := builder.Build(&req)
		aiText, err := analyzer.Analyze(r.Context(), prompt)
		if err != nil {
			logging.Error("叙事分析器调用失败", logrus.Fields{"error": err})
			writeAIError(w, http.StatusInternalServerError, err.Error())
			return
		}

		result := engine.Score(records, aiText)
		monitoring.AnalysesTotal.WithLabelValues(req.AnalysisType).Inc()

		// 结果快照落库，失败不影响响应
		if db != nil {
			if _, err := database.InsertAnalysisReport(db, GetShopID(r), req.AnalysisType, result); err != nil {
				logging.Warn("分析快照落库失败", logrus.Fields{"error": err})
			}
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(sentimentResponse{
			Success:                true,
			Analysis:               result,
			AnalysisType:           req.AnalysisType,
			ProcessedFeedbackCount: len(records),
			AIInsights:             aiText,
		})
	}
}

// GetLatestAnalysis 商家查询最近一次持久化的分析快照
func GetLatestAnalysis(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		result, err := database.LatestAnalysisReport(db, GetShopID(r))
		if err != nil {
			response.ServerError(w, err)
			return
		}
		if result == nil {
			response.Error(w, "暂无分析快照", http.StatusNotFound)
			return
		}
		response.Success(w, result, "查询成功")
	}
}
