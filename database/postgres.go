//PostgreSQL数据库连接与连接池配置
package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"time"

	"dine-insights/logging"

	"github.com/cenkalti/backoff/v4"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"
)

const (
	pingTimeout = 5 * time.Second
)

//全局数据库连接
var DB *sql.DB

func InitDB() (*sql.DB, error) {
	// 从 .env 文件加载环境变量
	err := godotenv.Load("config.env")
	if err != nil {
		logging.Warn("加载 .env 文件失败", logrus.Fields{"error": err})
	}

	// 从环境变量获取数据库配置
	dbUser := os.Getenv("DB_USER")
	dbPassword := os.Getenv("DB_PASSWORD")
	dbHost := os.Getenv("DB_HOST")
	dbPort := os.Getenv("DB_PORT")
	dbName := os.Getenv("DB_NAME")
	dbSSLMode := os.Getenv("DB_SSLMODE")

	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		dbHost, dbPort, dbUser, dbPassword, dbName, dbSSLMode)

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel() //防止泄露

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("数据库驱动初始化失败:%v", err)
	}
	// 设置数据库连接池的参数
	db.SetMaxOpenConns(100)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(time.Hour)

	//测试连接，超时返回错误
	if err = db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("数据库连接测试失败: %v", err)
	}

	logging.Info("数据库连接成功并已配置连接池", nil)
	DB = db
	return db, nil
}

// ConnectWithRetry 指数退避重连，最长等待 maxElapsed
func ConnectWithRetry(maxElapsed time.Duration) (*sql.DB, error) {
	var db *sql.DB

	b := backoff.NewExponentialBackOff()
	b.MaxElapsedTime = maxElapsed

	attempt := 0
	operation := func() error {
		attempt++
		var err error
		db, err = InitDB()
		if err != nil {
			logging.Warn("重试连接失败", logrus.Fields{"attempt": attempt, "error": err})
		}
		return err
	}

	if err := backoff.Retry(operation, b); err != nil {
		return nil, fmt.Errorf("数据库重连超时: %w", err)
	}

	logDBStats(db)
	return db, nil
}
