//程序入口：初始化日志、Redis、数据库与叙事分析器，注册路由并启动服务器
package main

import (
	"database/sql"
	"net/http"
	"os"
	"time"

	"dine-insights/database"
	"dine-insights/handlers"
	"dine-insights/logging"
	"dine-insights/monitoring"
	"dine-insights/narrative"
	"dine-insights/response"
	"dine-insights/sentiment"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

var (
	db *sql.DB
	rp *database.RedisPool
)

func main() {
	var err error
	// 初始化日志
	logging.Init()

	_ = godotenv.Load("config.env")

	// 叙事分析器凭证缺失时直接失败，不做本地降级
	analyzer, err := narrative.NewGeminiClient(narrative.Config{
		Endpoint: os.Getenv("GEMINI_ENDPOINT"),
		APIKey:   os.Getenv("GEMINI_API_KEY"),
		Model:    os.Getenv("GEMINI_MODEL"),
	})
	if err != nil {
		logging.Error("叙事分析器初始化失败", logrus.Fields{"error": err})
		os.Exit(1)
	}

	// 初始化 Redis 连接池
	rp, err = database.InitRedis()
	if err != nil {
		logging.Error("Redis初始化失败", logrus.Fields{"error": err})
	}

	// 初始化数据库连接，失败时指数退避重连
	db, err = database.InitDB()
	if err != nil {
		db, err = database.ConnectWithRetry(30 * time.Second)
		if err != nil {
			logging.Error("数据库连接失败", logrus.Fields{"error": err})
		}
	}
	if db != nil {
		defer db.Close()
		//启动数据库监控
		go database.StartDBMonitor(db, 5*time.Minute) // 每5分钟监控一次
	}

	// 启动后台反馈消费者
	if rp != nil {
		go handlers.StartFeedbackConsumer(db, rp)
	}

	jwtSecret := []byte(os.Getenv("JWT_SECRET_KEY"))
	if len(jwtSecret) == 0 {
		jwtSecret = []byte("your_secret_key") // Fallback for dev
	}

	// 评分引擎，随机种子只影响基准对比的模拟抖动
	engine := sentiment.NewEngine(time.Now().UnixNano())

	// 暴露 /metrics 接口
	http.Handle("/metrics", handlers.LoggingMiddleware(monitoring.MetricsHandler()))

	// 健康检查
	http.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if db == nil || db.Ping() != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte("ok"))
	})

	// AI 分析路由 - 对任意来源开放 CORS，无需认证
	http.Handle("/api/ai/sentiment-analyzer", response.CORSMiddleware(response.RequestIDMiddleware(handlers.LoggingMiddleware(monitoring.PrometheusMiddleware(response.RecoverMiddleware(
		handlers.HandleSentimentAnalysis(analyzer, narrative.FeedbackPromptBuilder{}, engine, db)))))))
	http.Handle("/api/ai/voice-separator", response.CORSMiddleware(response.RequestIDMiddleware(handlers.LoggingMiddleware(monitoring.PrometheusMiddleware(response.RecoverMiddleware(
		handlers.HandleVoiceAnalysis(analyzer, narrative.MeetingPromptBuilder{})))))))

	// 商家路由组 - 需要认证
	shopRoutes := http.NewServeMux()
	shopRoutes.Handle("/feedback", handlers.LoggingMiddleware(monitoring.PrometheusMiddleware(feedbackDispatch(db, rp))))
	shopRoutes.Handle("/feedback/import", handlers.LoggingMiddleware(monitoring.PrometheusMiddleware(handlers.ImportFeedback(db, rp))))
	shopRoutes.Handle("/review/analytics", handlers.LoggingMiddleware(monitoring.PrometheusMiddleware(handlers.GetReviewAnalytics(db, rp, engine))))
	shopRoutes.Handle("/review/analytics/latest", handlers.LoggingMiddleware(monitoring.PrometheusMiddleware(handlers.GetLatestAnalysis(db))))
	http.Handle("/api/shop/", handlers.LoggingMiddleware(response.RecoverMiddleware(handlers.AuthenticateTokenShop(jwtSecret)(http.StripPrefix("/api/shop", shopRoutes)))))

	// 启动服务器
	logging.Info("服务器启动，端口 :8080", nil)
	if err := http.ListenAndServe(":8080", nil); err != nil {
		logging.Error("服务器启动失败", logrus.Fields{"error": err})
	}
}

// feedbackDispatch 同一路径上按方法分发创建/查询
func feedbackDispatch(db *sql.DB, rp *database.RedisPool) http.HandlerFunc {
	create := handlers.CreateFeedback(db, rp)
	list := handlers.ListFeedback(db)
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			create(w, r)
		default:
			list(w, r)
		}
	}
}
