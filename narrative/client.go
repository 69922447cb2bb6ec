// 外部文本生成服务（叙事分析器）的客户端。
// 每次请求恰好调用一次，失败即整体失败，不重试不降级
package narrative

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"dine-insights/monitoring"
)

// ErrMissingCredential 缺少文本生成服务凭证，启动时即失败
var ErrMissingCredential = errors.New("narrative service credential is not configured")

// UpstreamError 上游调用非成功状态或响应缺少预期结构
type UpstreamError struct {
	Status int
	Body   string
}

func (e *UpstreamError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("narrative service returned status %d: %s", e.Status, e.Body)
	}
	return fmt.Sprintf("narrative service response malformed: %s", e.Body)
}

// Config 注入式配置，客户端自身不读环境变量
type Config struct {
	Endpoint string // 形如 https://generativelanguage.googleapis.com/v1beta
	APIKey   string
	Model    string
	Timeout  time.Duration
}

// Analyzer 叙事分析器：输入提示词，返回不透明的自然语言文本
type Analyzer interface {
	Analyze(ctx context.Context, prompt string) (string, error)
}

// GeminiClient 调用 Gemini generateContent 接口的 Analyzer 实现
type GeminiClient struct {
	cfg    Config
	client *http.Client
}

// NewGeminiClient 校验凭证并构造客户端
func NewGeminiClient(cfg Config) (*GeminiClient, error) {
	if cfg.APIKey == "" {
		return nil, ErrMissingCredential
	}
	if cfg.Endpoint == "" {
		cfg.Endpoint = "https://generativelanguage.googleapis.com/v1beta"
	}
	if cfg.Model == "" {
		cfg.Model = "gemini-1.5-flash"
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &GeminiClient{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
	}, nil
}

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []geminiPart `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// Analyze 单次同步往返，无重试无流式
func (c *GeminiClient) Analyze(ctx context.Context, prompt string) (string, error) {
	var text string
	err := monitoring.RecordNarrativeTime(func() error {
		var callErr error
		text, callErr = c.generate(ctx, prompt)
		return callErr
	})
	return text, err
}

func (c *GeminiClient) generate(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: prompt}}}},
	})
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.cfg.Endpoint, c.cfg.Model, c.cfg.APIKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("narrative service call failed: %w", err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if resp.StatusCode != http.StatusOK {
		return "", &UpstreamError{Status: resp.StatusCode, Body: string(raw)}
	}

	var parsed geminiResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", &UpstreamError{Body: err.Error()}
	}
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return "", &UpstreamError{Body: "response missing candidates"}
	}

	return parsed.Candidates[0].Content.Parts[0].Text, nil
}
