package service

import (
	"testing"
	"time"

	"word_duel_backend/internal/model"
)

func attempt(userID, wordID uint, correct bool, points int, at time.Time) model.Attempt {
	a := model.Attempt{UserID: userID, WordID: wordID, Correct: correct, Points: points}
	a.CreatedAt = at
	return a
}

func TestComputeScoreboard(t *testing.T) {
	now := time.Now()
	attempts := []model.Attempt{
		attempt(1, 10, true, 10, now),
		attempt(1, 11, false, 0, now),
		attempt(1, 12, true, 10, now),
		attempt(2, 10, false, 0, now),
	}

	board := ComputeScoreboard(attempts, []uint{1, 2, 3})

	if board.Scores[1] != 20 || board.Scores[2] != 0 || board.Scores[3] != 0 {
		t.Fatalf("scores wrong: %v", board.Scores)
	}
	if board.Totals[1] != 3 || board.Totals[2] != 1 || board.Totals[3] != 0 {
		t.Fatalf("totals wrong: %v", board.Totals)
	}
	wantAcc := 2.0 / 3.0
	if got := board.Accuracy[1]; got < wantAcc-1e-9 || got > wantAcc+1e-9 {
		t.Fatalf("accuracy[1] = %f, want %f", got, wantAcc)
	}
	if board.Accuracy[2] != 0 {
		t.Fatalf("all-wrong user should have accuracy 0, got %f", board.Accuracy[2])
	}
	// 没作答的参与者也要出现在三张表里
	if _, ok := board.Accuracy[3]; !ok {
		t.Fatal("idle participant missing from accuracy map")
	}
}

func TestComputeProgress(t *testing.T) {
	early := time.Date(2026, 8, 20, 9, 0, 0, 0, time.UTC)
	late := time.Date(2026, 8, 21, 18, 30, 0, 0, time.UTC)
	attempts := []model.Attempt{
		attempt(1, 10, true, 10, early),
		attempt(1, 11, false, 0, late),
	}

	progress := ComputeProgress(attempts, []uint{1, 2})

	if progress.Scores[1] != 10 {
		t.Fatalf("progress must embed scoreboard, scores %v", progress.Scores)
	}
	got := progress.LastActivity[1]
	if got == nil || *got != late.Format(time.RFC3339) {
		t.Fatalf("last activity should be latest attempt, got %v", got)
	}
	if v, ok := progress.LastActivity[2]; !ok || v != nil {
		t.Fatalf("idle participant should map to null, got %v (present %v)", v, ok)
	}
}

func TestComputeWrongbook(t *testing.T) {
	now := time.Now()
	attempts := []model.Attempt{
		attempt(1, 10, true, 10, now),
		attempt(1, 11, false, 0, now), // 第一个错词
		attempt(2, 12, false, 0, now), // 第二个错词
		attempt(2, 11, false, 0, now), // 同词不同人
		attempt(1, 11, false, 0, now), // 同词同人，去重
		attempt(1, 11, true, 10, now), // 后来答对也不移除
	}
	words := map[uint]*model.Word{
		11: {Term: "ability", Definition: "能力", Example: "She has the ability."},
		12: {Term: "effort", Definition: "努力"},
	}
	words[11].ID = 11
	words[12].ID = 12

	entries := ComputeWrongbook(attempts, words)

	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d: %+v", len(entries), entries)
	}
	// 首错顺序
	if entries[0].WordID != 11 || entries[1].WordID != 12 {
		t.Fatalf("entries out of first-miss order: %+v", entries)
	}
	first := entries[0]
	if first.Term != "ability" || first.Definition != "能力" || first.Example == "" {
		t.Fatalf("word fields not joined: %+v", first)
	}
	if len(first.WrongBy) != 2 || first.WrongBy[0] != 1 || first.WrongBy[1] != 2 {
		t.Fatalf("wrong_by should dedup in first-miss order, got %v", first.WrongBy)
	}
	if len(entries[1].WrongBy) != 1 || entries[1].WrongBy[0] != 2 {
		t.Fatalf("second entry wrong_by: %v", entries[1].WrongBy)
	}

	// 全对时错词本为空
	if got := ComputeWrongbook([]model.Attempt{attempt(1, 10, true, 10, now)}, words); len(got) != 0 {
		t.Fatalf("all-correct attempts must yield empty wrongbook, got %+v", got)
	}
}

func TestComputeWrongbookSkipsUnresolvedWords(t *testing.T) {
	now := time.Now()
	attempts := []model.Attempt{
		attempt(1, 99, false, 0, now), // 词已不存在
		attempt(1, 11, false, 0, now),
	}
	words := map[uint]*model.Word{
		11: {Term: "ability", Definition: "能力"},
	}
	words[11].ID = 11

	entries := ComputeWrongbook(attempts, words)
	if len(entries) != 1 || entries[0].WordID != 11 {
		t.Fatalf("missing words should be skipped, got %+v", entries)
	}
}

func TestLeaderboardWindow(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	if since := leaderboardWindow("daily", now); since == nil || !since.Equal(now.AddDate(0, 0, -1)) {
		t.Fatalf("daily window: %v", since)
	}
	if since := leaderboardWindow("weekly", now); since == nil || !since.Equal(now.AddDate(0, 0, -7)) {
		t.Fatalf("weekly window: %v", since)
	}
	if since := leaderboardWindow("all", now); since != nil {
		t.Fatalf("all should have no lower bound, got %v", since)
	}
}

func TestClampLeaderboardLimit(t *testing.T) {
	cases := []struct{ in, want int }{
		{0, 20},
		{-3, 20},
		{500, 20},
		{1, 1},
		{100, 100},
	}
	for _, c := range cases {
		if got := clampLeaderboardLimit(c.in); got != c.want {
			t.Fatalf("clampLeaderboardLimit(%d) = %d, want %d", c.in, got, c.want)
		}
	}
}

func TestWeeklyStats(t *testing.T) {
	now := time.Now()
	attempts := []model.Attempt{
		attempt(1, 10, true, 10, now),
		attempt(1, 10, true, 10, now), // 同词两次答对 = 掌握
		attempt(1, 11, true, 10, now),
		attempt(1, 12, false, 0, now),
		attempt(1, 12, false, 0, now), // 错词去重
		attempt(2, 10, true, 10, now), // 别人的作答不计入
	}

	stats := weeklyStats(attempts, 1)

	if stats.Attempts != 5 || stats.Correct != 3 || stats.Points != 30 {
		t.Fatalf("basic counters wrong: %+v", stats)
	}
	if stats.MasteredWords != 1 {
		t.Fatalf("only word 10 is mastered, got %d", stats.MasteredWords)
	}
	if stats.WrongWords != 1 {
		t.Fatalf("wrong words should dedup to 1, got %d", stats.WrongWords)
	}
	wantAcc := 3.0 / 5.0
	if stats.Accuracy < wantAcc-1e-9 || stats.Accuracy > wantAcc+1e-9 {
		t.Fatalf("accuracy = %f, want %f", stats.Accuracy, wantAcc)
	}

	empty := weeklyStats(nil, 9)
	if empty.Attempts != 0 || empty.Accuracy != 0 {
		t.Fatalf("empty stats: %+v", empty)
	}
}
