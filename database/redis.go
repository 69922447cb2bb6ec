//Redis连接、缓存操作、反馈消息通道
package database

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"sync"
	"time"

	"dine-insights/models"
	"dine-insights/monitoring"

	"github.com/go-redis/redis/v8"
)

var ctx = context.Background()

// ErrRedisUnavailable Redis 启动时连接失败，服务降级运行。
// 调用方按缓存未命中处理，不得中断请求
var ErrRedisUnavailable = errors.New("redis pool is not initialized")

// FeedbackChannel 异步反馈发布通道
const FeedbackChannel = "feedback_channel"

//定义连接池类型
type RedisPool struct {
	pool *sync.Pool
}

func InitRedis() (*RedisPool, error) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}
	rp := &RedisPool{
		pool: &sync.Pool{
			New: func() interface{} {
				return redis.NewClient(&redis.Options{
					Addr:         addr,
					Password:     os.Getenv("REDIS_PASSWORD"),
					DB:           0,
					PoolSize:     100,
					MinIdleConns: 5,
					DialTimeout:  10 * time.Second,
					ReadTimeout:  30 * time.Second,
					WriteTimeout: 30 * time.Second,
				})
			},
		},
	}

	// 启动时确认可达
	rdb := rp.GetClient()
	defer rp.PutClient(rdb)
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, err
	}
	return rp, nil
}

// GetClient 从连接池取一个客户端
func (rp *RedisPool) GetClient() *redis.Client {
	return rp.pool.Get().(*redis.Client)
}

// PutClient 将客户端放回连接池
func (rp *RedisPool) PutClient(rdb *redis.Client) {
	rp.pool.Put(rdb)
}

// GetFromCache 从 Redis 获取数据
func GetFromCache(rp *RedisPool, key string) (string, error) {
	if rp == nil {
		return "", ErrRedisUnavailable
	}
	rdb := rp.GetClient()
	defer rp.PutClient(rdb)
	var val string
	err := monitoring.RecordRedisTime("get", func() error {
		var err error
		val, err = rdb.Get(ctx, key).Result()
		return err
	})
	return val, err
}

// SetToCache 将数据写入 Redis
func SetToCache(rp *RedisPool, key string, value string, expiration time.Duration) error {
	if rp == nil {
		return ErrRedisUnavailable
	}
	rdb := rp.GetClient()
	defer rp.PutClient(rdb)
	return monitoring.RecordRedisTime("set", func() error {
		return rdb.Set(ctx, key, value, expiration).Err()
	})
}

// DeleteFromCache 删除 Redis 中的键
func DeleteFromCache(rp *RedisPool, key string) error {
	if rp == nil {
		return ErrRedisUnavailable
	}
	rdb := rp.GetClient()
	defer rp.PutClient(rdb)
	return monitoring.RecordRedisTime("del", func() error {
		return rdb.Del(ctx, key).Err()
	})
}

// PublishFeedback 将新反馈发布到通道，由后台消费者落库
func PublishFeedback(rp *RedisPool, fb *models.StoredFeedback) error {
	if rp == nil {
		return ErrRedisUnavailable
	}
	payload, err := json.Marshal(fb)
	if err != nil {
		return err
	}
	rdb := rp.GetClient()
	defer rp.PutClient(rdb)
	return monitoring.RecordRedisTime("publish", func() error {
		return rdb.Publish(ctx, FeedbackChannel, payload).Err()
	})
}

// SubscribeFeedback 订阅反馈通道
func SubscribeFeedback(rp *RedisPool) *redis.PubSub {
	rdb := rp.GetClient()
	defer rp.PutClient(rdb)
	return rdb.Subscribe(ctx, FeedbackChannel)
}
