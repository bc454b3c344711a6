package service

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"word_duel_backend/internal/util"

	"go.uber.org/zap"
)

// VisionService 从图片（词汇表截图、课本拍照）里提取单词。
// 实现 ImageExtractor。
type VisionService struct {
	AI          *AIClient
	VisionModel string
}

func NewVisionService(ai *AIClient, visionModel string) *VisionService {
	return &VisionService{AI: ai, VisionModel: visionModel}
}

var jsonObjectArrayPattern = regexp.MustCompile(`\[[\s\S]*\]`)

const extractPrompt = "请识别图片中的英语单词表，逐条提取单词、中文释义和例句（没有例句留空）。" +
	"只输出 JSON 数组，不要任何额外文字，每个元素形如：" +
	`[{"term": "apple", "definition": "苹果", "example": ""}]`

// ExtractWords 识别单张图片，返回解析出的单词行
func (s *VisionService) ExtractWords(ctx context.Context, imageData []byte, mimeType string) ([]util.WordRow, error) {
	if s.VisionModel == "" {
		return nil, util.ErrVisionUnconfigured
	}
	if !util.IsImage(mimeType) {
		return nil, fmt.Errorf("不支持的图片类型: %s", mimeType)
	}

	dataURL := fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(imageData))
	content, err := s.AI.Chat(ctx, s.VisionModel, []AIChatMessage{
		{
			Role: "user",
			Content: []map[string]interface{}{
				{"type": "text", "text": extractPrompt},
				{"type": "image_url", "image_url": map[string]string{"url": dataURL}},
			},
		},
	})
	if err != nil {
		return nil, err
	}

	rows, err := parseWordRows(content)
	if err != nil {
		zap.L().Warn("图片识别响应解析失败", zap.String("content", content), zap.Error(err))
		return nil, err
	}
	return rows, nil
}

func parseWordRows(content string) ([]util.WordRow, error) {
	cleaned := strings.TrimSpace(content)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimSpace(cleaned)

	var rows []util.WordRow
	if err := json.Unmarshal([]byte(cleaned), &rows); err != nil {
		match := jsonObjectArrayPattern.FindString(cleaned)
		if match == "" {
			return nil, fmt.Errorf("响应中找不到 JSON 数组: %w", err)
		}
		if err := json.Unmarshal([]byte(match), &rows); err != nil {
			return nil, err
		}
	}

	valid := rows[:0]
	for _, r := range rows {
		if strings.TrimSpace(r.Term) != "" {
			valid = append(valid, r)
		}
	}
	return valid, nil
}
