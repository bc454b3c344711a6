package service

import (
	"context"
	"strings"
	"unicode"

	"word_duel_backend/internal/model"
	"word_duel_backend/pkg/monitoring"

	"go.uber.org/zap"
)

// 判题时忽略的标点，覆盖 ASCII 与常见中文全角符号
const strippedPunct = ".,;:!?-_'\"()[]{}，。！？；、（）【】《》“”"

// Normalize 答案归一化：小写、去空白（含全角空格）、去标点
func Normalize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range strings.ToLower(s) {
		if unicode.IsSpace(r) {
			continue
		}
		if strings.ContainsRune(strippedPunct, r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// ChooseDirection 决定一次出题的方向。
// requested 为显式方向时直接生效；random 时按比例掷骰，
// 掷出 en2zh 但单词没有释义则回退 zh2en。
func ChooseDirection(requested string, zh2enRatio int, word *model.Word, randInt func(int) int) string {
	direction := requested
	if direction != model.DirectionZh2En && direction != model.DirectionEn2Zh {
		if randInt(100)+1 <= zh2enRatio {
			direction = model.DirectionZh2En
		} else {
			direction = model.DirectionEn2Zh
		}
	}
	if direction == model.DirectionEn2Zh && strings.TrimSpace(word.Definition) == "" {
		direction = model.DirectionZh2En
	}
	return direction
}

// JudgeItem 提交给语义判题器的一道题
type JudgeItem struct {
	Term       string
	Definition string
}

// JudgeVerdict 判题器对单题的裁决，verdict 取 correct/partial/incorrect
type JudgeVerdict struct {
	Term            string   `json:"term"`
	IsMatch         bool     `json:"is_match"`
	Score           float64  `json:"score"`
	Verdict         string   `json:"verdict"`
	Reason          string   `json:"reason"`
	MissingKeywords []string `json:"missing_keywords"`
}

// DefinitionJudge 释义语义判题器，规则判错后的兜底
type DefinitionJudge interface {
	JudgeDefinitions(ctx context.Context, items []JudgeItem, answers map[string]string, strictness, language string) ([]JudgeVerdict, error)
}

// JudgeDetail 一次判题中语义判题器的使用情况，始终随结果返回
type JudgeDetail struct {
	Used            bool     `json:"used"`
	Strictness      string   `json:"strictness,omitempty"`
	Verdict         string   `json:"verdict,omitempty"`
	Score           float64  `json:"score,omitempty"`
	Reason          string   `json:"reason,omitempty"`
	MissingKeywords []string `json:"missing_keywords,omitempty"`
	Error           string   `json:"error,omitempty"`
}

// GradeResult 单次作答的判题结果。记分由调用方根据 Correct 决定。
type GradeResult struct {
	Correct     bool        `json:"correct"`
	JudgeDetail JudgeDetail `json:"judge_detail"`
}

const (
	reasonDirectionNotEn2Zh     = "direction_not_en2zh"
	reasonRuleBasedCorrect      = "rule_based_correct"
	reasonNoReferenceDefinition = "no_reference_definition"
	reasonJudgeDisabled         = "disabled"
	errJudgeFailed              = "llm_judge_failed"
)

// Grader 作答判题引擎。zh2en 方向只做严格匹配；
// en2zh 先走规则（相等或双向包含），规则判错再视配置升级到语义判题器。
type Grader struct {
	Judge                 DefinitionJudge
	JudgeEnabled          bool
	Strictness            string
	TreatPartialAsCorrect bool
}

func NewGrader(judge DefinitionJudge, enabled bool, strictness string, treatPartial bool) *Grader {
	return &Grader{
		Judge:                 judge,
		JudgeEnabled:          enabled,
		Strictness:            strictness,
		TreatPartialAsCorrect: treatPartial,
	}
}

func (g *Grader) Grade(ctx context.Context, direction, answer string, word *model.Word) GradeResult {
	normAnswer := Normalize(answer)

	if direction == model.DirectionZh2En {
		normTerm := Normalize(word.Term)
		correct := normTerm != "" && normAnswer == normTerm
		return GradeResult{Correct: correct, JudgeDetail: JudgeDetail{Used: false, Reason: reasonDirectionNotEn2Zh}}
	}

	// en2zh 规则判题：相等或任一方向包含
	normDef := Normalize(word.Definition)
	if normDef == "" {
		return GradeResult{JudgeDetail: JudgeDetail{Used: false, Reason: reasonNoReferenceDefinition}}
	}
	if normAnswer != "" &&
		(normAnswer == normDef || strings.Contains(normAnswer, normDef) || strings.Contains(normDef, normAnswer)) {
		return GradeResult{Correct: true, JudgeDetail: JudgeDetail{Used: false, Reason: reasonRuleBasedCorrect}}
	}

	if !g.JudgeEnabled || g.Judge == nil {
		return GradeResult{JudgeDetail: JudgeDetail{Used: false, Reason: reasonJudgeDisabled}}
	}

	// 规则判错，升级到语义判题器
	verdicts, err := g.Judge.JudgeDefinitions(ctx,
		[]JudgeItem{{Term: word.Term, Definition: word.Definition}},
		map[string]string{word.Term: answer},
		g.Strictness, "zh")
	if err != nil || len(verdicts) == 0 {
		// 判题器故障不影响作答流程，按规则结论降级
		zap.L().Warn("语义判题失败，降级为规则结论", zap.Error(err))
		monitoring.JudgeCalls.WithLabelValues("error").Inc()
		return GradeResult{JudgeDetail: JudgeDetail{Used: false, Error: errJudgeFailed}}
	}

	v := verdicts[0]
	monitoring.JudgeCalls.WithLabelValues(v.Verdict).Inc()
	correct := v.Verdict == "correct" || (v.Verdict == "partial" && g.TreatPartialAsCorrect)
	return GradeResult{Correct: correct, JudgeDetail: JudgeDetail{
		Used:            true,
		Strictness:      g.Strictness,
		Verdict:         v.Verdict,
		Score:           v.Score,
		Reason:          v.Reason,
		MissingKeywords: v.MissingKeywords,
	}}
}
