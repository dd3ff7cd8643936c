package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"Micro_Social/internal/model"
	"Micro_Social/internal/pkg"
	"Micro_Social/internal/repository/mysql"

	"gorm.io/gorm"
)

type ModerationResult struct {
	IsAppropriate bool    `json:"isAppropriate"`
	Confidence    float64 `json:"confidence"`
	Success       bool    `json:"-"`
}

// ModerationClient 文本审核外部依赖的最小契约
type ModerationClient interface {
	Analyze(ctx context.Context, text string) ModerationResult
}

const moderationPrompt = `You are a content moderation system.
Check whether the text contains inappropriate language
(insults, hate speech, discriminatory language).

Respond ONLY with valid JSON in this format:
{
  "isAppropriate": true|false,
  "confidence": 0.0-1.0
}

Do not add any other text.`

// OpenAIModerationClient 走 chat completion 接口做文本审核
type OpenAIModerationClient struct {
	APIKey  string
	BaseURL string
	Model   string
	http    *http.Client
}

func NewOpenAIModerationClient(apiKey string) *OpenAIModerationClient {
	return &OpenAIModerationClient{
		APIKey:  apiKey,
		BaseURL: "https://api.openai.com/v1",
		Model:   "gpt-4o-mini",
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

func (c *OpenAIModerationClient) Analyze(ctx context.Context, text string) ModerationResult {
	body, _ := json.Marshal(map[string]any{
		"model": c.Model,
		"messages": []map[string]string{
			{"role": "system", "content": moderationPrompt},
			{"role": "user", "content": text},
		},
		"temperature": 0.1,
		"max_tokens":  50,
	})

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.BaseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return ModerationResult{}
	}
	req.Header.Set("Authorization", "Bearer "+c.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		log.Printf("moderation request failed: %v", err)
		return ModerationResult{}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Printf("moderation api status: %s", resp.Status)
		return ModerationResult{}
	}

	var raw struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil || len(raw.Choices) == 0 {
		log.Printf("moderation response decode failed: %v", err)
		return ModerationResult{}
	}

	var result ModerationResult
	if err := json.Unmarshal([]byte(raw.Choices[0].Message.Content), &result); err != nil {
		log.Printf("moderation verdict parse failed: %v", err)
		return ModerationResult{}
	}
	result.Success = true
	return result
}

// ModerationService 内容写入前的审核关卡。
// 调用结果无论放行与否都落库留痕；外部失败按失败关闭处理：拒绝内容。
type ModerationService struct {
	client  ModerationClient
	logRepo *mysql.ModerationLogRepository
}

func NewModerationService(db *gorm.DB, client ModerationClient) *ModerationService {
	return &ModerationService{
		client:  client,
		logRepo: &mysql.ModerationLogRepository{DB: db},
	}
}

// Check 文本不过审或服务不可用时返回错误，内容不得落库
func (s *ModerationService) Check(ctx context.Context, userID uint64, contentType, text string) error {
	result := s.client.Analyze(ctx, text)

	if err := s.logRepo.Create(ctx, &model.ModerationLog{
		Content:       text,
		IsAppropriate: result.IsAppropriate,
		Confidence:    result.Confidence,
		ContentType:   contentType,
		UserID:        userID,
		CheckedAt:     time.Now(),
	}); err != nil {
		log.Printf("moderation log write failed: %v", err)
	}

	if !result.Success {
		return pkg.ErrUpstream
	}
	if !result.IsAppropriate {
		return fmt.Errorf("%w: content contains inappropriate terms", pkg.ErrValidation)
	}
	return nil
}
