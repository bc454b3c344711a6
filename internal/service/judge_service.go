package service

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"go.uber.org/zap"
)

// JudgeService 基于大模型的释义语义判题器，实现 DefinitionJudge
type JudgeService struct {
	AI *AIClient
}

func NewJudgeService(ai *AIClient) *JudgeService {
	return &JudgeService{AI: ai}
}

// 模型偶尔把 JSON 包进围栏或夹带说明文字，用正则抢救数组部分
var jsonArrayPattern = regexp.MustCompile(`\[[\s\S]*\]`)

func strictnessHint(strictness string) string {
	switch strictness {
	case "low":
		return "判定从宽：只要答案方向正确、大意相符即可判 correct。"
	case "high":
		return "判定从严：答案必须准确覆盖参考释义的核心含义才能判 correct，只沾边判 partial。"
	default:
		return "判定适中：答案表达了参考释义的主要含义判 correct，部分正确判 partial。"
	}
}

func (s *JudgeService) JudgeDefinitions(ctx context.Context, items []JudgeItem, answers map[string]string, strictness, language string) ([]JudgeVerdict, error) {
	if len(items) == 0 {
		return nil, nil
	}

	var sb strings.Builder
	sb.WriteString("你是一个英语词汇测验的判题助手。学生看到英文单词后写出其释义（目标语言：")
	sb.WriteString(language)
	sb.WriteString("），请对照参考释义逐题裁决。")
	sb.WriteString(strictnessHint(strictness))
	sb.WriteString("\n\n题目列表：\n")
	for _, item := range items {
		fmt.Fprintf(&sb, "- 单词: %s\n  参考释义: %s\n  学生答案: %s\n",
			item.Term, item.Definition, answers[item.Term])
	}
	sb.WriteString("\n只输出 JSON 数组，不要任何额外文字，每个元素形如：\n")
	sb.WriteString(`[{"term": "ability", "is_match": true, "score": 0.9, "verdict": "correct|partial|incorrect", "reason": "一句话理由", "missing_keywords": []}]`)

	content, err := s.AI.Chat(ctx, "", []AIChatMessage{
		{Role: "user", Content: sb.String()},
	})
	if err != nil {
		return nil, err
	}

	verdicts, err := parseVerdicts(content)
	if err != nil {
		zap.L().Warn("判题响应解析失败", zap.String("content", content), zap.Error(err))
		return nil, err
	}
	return verdicts, nil
}

func parseVerdicts(content string) ([]JudgeVerdict, error) {
	cleaned := strings.TrimSpace(content)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimSpace(cleaned)

	var verdicts []JudgeVerdict
	if err := json.Unmarshal([]byte(cleaned), &verdicts); err != nil {
		match := jsonArrayPattern.FindString(cleaned)
		if match == "" {
			return nil, fmt.Errorf("响应中找不到 JSON 数组: %w", err)
		}
		if err := json.Unmarshal([]byte(match), &verdicts); err != nil {
			return nil, err
		}
	}
	if len(verdicts) == 0 {
		return nil, fmt.Errorf("判题响应为空数组")
	}
	return verdicts, nil
}
