package service

import (
	"context"
	"errors"
	"testing"

	"word_duel_backend/internal/model"
)

func TestNormalize(t *testing.T) {
	cases := []struct{ in, want string }{
		{"Apple", "apple"},
		{"  hello world  ", "helloworld"},
		{"don't!", "dont"},
		{"能力。", "能力"},
		{"（很）强　的能力", "很强的能力"},
		{"self-esteem", "selfesteem"},
		{"“引号”和《书名》", "引号和书名"},
		{"", ""},
	}
	for _, c := range cases {
		if got := Normalize(c.in); got != c.want {
			t.Fatalf("Normalize(%q) = %q, want %q", c.in, got, c.want)
		}
		// 幂等
		if got := Normalize(Normalize(c.in)); got != c.want {
			t.Fatalf("Normalize not idempotent for %q", c.in)
		}
	}
}

func fixedRand(v int) func(int) int {
	return func(int) int { return v }
}

func TestChooseDirection(t *testing.T) {
	word := &model.Word{Term: "ability", Definition: "能力"}
	noDef := &model.Word{Term: "ability", Definition: "   "}

	// 显式方向直接生效
	if got := ChooseDirection(model.DirectionZh2En, 0, word, fixedRand(99)); got != model.DirectionZh2En {
		t.Fatalf("explicit zh2en ignored, got %s", got)
	}
	if got := ChooseDirection(model.DirectionEn2Zh, 100, word, fixedRand(0)); got != model.DirectionEn2Zh {
		t.Fatalf("explicit en2zh ignored, got %s", got)
	}

	// 掷骰：roll 为 randInt+1，≤ ratio 时 zh2en
	if got := ChooseDirection(model.DirectionRandom, 50, word, fixedRand(49)); got != model.DirectionZh2En {
		t.Fatalf("roll 50 with ratio 50 should be zh2en, got %s", got)
	}
	if got := ChooseDirection(model.DirectionRandom, 50, word, fixedRand(50)); got != model.DirectionEn2Zh {
		t.Fatalf("roll 51 with ratio 50 should be en2zh, got %s", got)
	}

	// 释义为空白时 en2zh 回退 zh2en
	if got := ChooseDirection(model.DirectionEn2Zh, 50, noDef, fixedRand(0)); got != model.DirectionZh2En {
		t.Fatalf("en2zh without definition should fall back to zh2en, got %s", got)
	}
	if got := ChooseDirection("", 0, noDef, fixedRand(99)); got != model.DirectionZh2En {
		t.Fatalf("random roll en2zh without definition should fall back, got %s", got)
	}
}

type stubJudge struct {
	verdicts []JudgeVerdict
	err      error
	called   bool
}

func (j *stubJudge) JudgeDefinitions(ctx context.Context, items []JudgeItem, answers map[string]string, strictness, language string) ([]JudgeVerdict, error) {
	j.called = true
	return j.verdicts, j.err
}

func TestGradeZh2En(t *testing.T) {
	g := NewGrader(nil, false, "medium", false)
	word := &model.Word{Term: "Ability", Definition: "能力"}

	res := g.Grade(context.Background(), model.DirectionZh2En, " ability! ", word)
	if !res.Correct {
		t.Fatalf("normalized exact match should score, got %+v", res)
	}
	if res.JudgeDetail.Used || res.JudgeDetail.Reason != "direction_not_en2zh" {
		t.Fatalf("zh2en never consults judge, got %+v", res.JudgeDetail)
	}

	res = g.Grade(context.Background(), model.DirectionZh2En, "abilities", word)
	if res.Correct {
		t.Fatalf("zh2en is strict, got %+v", res)
	}

	// 空参考词条不可能判对
	res = g.Grade(context.Background(), model.DirectionZh2En, "", &model.Word{Term: "  "})
	if res.Correct {
		t.Fatal("empty reference term must never match")
	}
}

func TestGradeEn2ZhRuleBased(t *testing.T) {
	g := NewGrader(nil, false, "medium", false)
	word := &model.Word{Term: "ability", Definition: "能力"}

	// 相等
	res := g.Grade(context.Background(), model.DirectionEn2Zh, "能力", word)
	if !res.Correct || res.JudgeDetail.Reason != "rule_based_correct" {
		t.Fatalf("exact definition should pass, got %+v", res)
	}

	// 答案包含参考释义（标点归一化后）
	res = g.Grade(context.Background(), model.DirectionEn2Zh, "的能力", word)
	if !res.Correct || res.JudgeDetail.Reason != "rule_based_correct" {
		t.Fatalf("superstring of definition should pass, got %+v", res)
	}

	// 参考释义包含答案
	longWord := &model.Word{Term: "ability", Definition: "做某事的能力"}
	res = g.Grade(context.Background(), model.DirectionEn2Zh, "能力", longWord)
	if !res.Correct || res.JudgeDetail.Reason != "rule_based_correct" {
		t.Fatalf("substring of definition should pass, got %+v", res)
	}

	// 参考释义为空
	res = g.Grade(context.Background(), model.DirectionEn2Zh, "随便", &model.Word{Term: "ability"})
	if res.Correct || res.JudgeDetail.Reason != "no_reference_definition" {
		t.Fatalf("missing definition should fail without judge, got %+v", res)
	}

	// 规则判错且评审关闭
	res = g.Grade(context.Background(), model.DirectionEn2Zh, "力量", word)
	if res.Correct || res.JudgeDetail.Reason != "disabled" {
		t.Fatalf("rule miss with judge disabled, got %+v", res)
	}

	// 空答案永远不对
	res = g.Grade(context.Background(), model.DirectionEn2Zh, "", word)
	if res.Correct {
		t.Fatal("empty answer must not match by containment")
	}
}

func TestGradeJudgeEscalation(t *testing.T) {
	word := &model.Word{Term: "ability", Definition: "能力"}

	// correct 裁决翻案
	judge := &stubJudge{verdicts: []JudgeVerdict{{Term: "ability", IsMatch: true, Score: 0.9, Verdict: "correct", Reason: "同义表达"}}}
	g := NewGrader(judge, true, "medium", false)
	res := g.Grade(context.Background(), model.DirectionEn2Zh, "本领", word)
	if !judge.called {
		t.Fatal("rule miss should escalate to judge")
	}
	if !res.Correct {
		t.Fatalf("correct verdict should overturn, got %+v", res)
	}
	d := res.JudgeDetail
	if !d.Used || d.Verdict != "correct" || d.Strictness != "medium" || d.Score != 0.9 {
		t.Fatalf("judge detail incomplete, got %+v", d)
	}

	// partial 默认不算对
	judge = &stubJudge{verdicts: []JudgeVerdict{{Term: "ability", Verdict: "partial", Reason: "只沾边"}}}
	g = NewGrader(judge, true, "medium", false)
	res = g.Grade(context.Background(), model.DirectionEn2Zh, "力量", word)
	if res.Correct {
		t.Fatalf("partial must not score by default, got %+v", res)
	}
	if !res.JudgeDetail.Used || res.JudgeDetail.Verdict != "partial" {
		t.Fatalf("partial detail missing, got %+v", res.JudgeDetail)
	}

	// partial 按配置放宽
	g = NewGrader(&stubJudge{verdicts: []JudgeVerdict{{Term: "ability", Verdict: "partial"}}}, true, "medium", true)
	res = g.Grade(context.Background(), model.DirectionEn2Zh, "力量", word)
	if !res.Correct {
		t.Fatalf("partial should score when configured, got %+v", res)
	}

	// 规则已判对时不再调用评审
	judge = &stubJudge{err: errors.New("must not be called")}
	g = NewGrader(judge, true, "medium", false)
	res = g.Grade(context.Background(), model.DirectionEn2Zh, "能力", word)
	if judge.called {
		t.Fatal("rule-based correct must not escalate")
	}
	if !res.Correct {
		t.Fatalf("expected correct, got %+v", res)
	}
}

func TestGradeJudgeFailure(t *testing.T) {
	word := &model.Word{Term: "ability", Definition: "能力"}
	g := NewGrader(&stubJudge{err: errors.New("api down")}, true, "medium", false)

	res := g.Grade(context.Background(), model.DirectionEn2Zh, "本领", word)
	if res.Correct {
		t.Fatalf("judge failure degrades to rule outcome, got %+v", res)
	}
	if res.JudgeDetail.Used {
		t.Fatal("failed judge must report used=false")
	}
	if res.JudgeDetail.Error != "llm_judge_failed" {
		t.Fatalf("expected llm_judge_failed, got %+v", res.JudgeDetail)
	}
}
