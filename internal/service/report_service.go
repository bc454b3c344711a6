package service

import (
	"time"

	"word_duel_backend/internal/model"
	"word_duel_backend/internal/repository"
	"word_duel_backend/internal/util"
)

// ReportService 战绩聚合：记分牌、进度、错词本、排行榜、周报
type ReportService struct {
	SessionRepo  *repository.SessionRepository
	WordlistRepo *repository.WordlistRepository
	UserRepo     *repository.UserRepository
	FriendRepo   *repository.FriendshipRepository
}

func NewReportService(sessionRepo *repository.SessionRepository, wordlistRepo *repository.WordlistRepository, userRepo *repository.UserRepository, friendRepo *repository.FriendshipRepository) *ReportService {
	return &ReportService{SessionRepo: sessionRepo, WordlistRepo: wordlistRepo, UserRepo: userRepo, FriendRepo: friendRepo}
}

// Scoreboard 记分牌，三组按用户聚合的数字。
// map 的 uint 键序列化后是字符串键。
type Scoreboard struct {
	Scores   map[uint]int     `json:"scores"`
	Accuracy map[uint]float64 `json:"accuracy"`
	Totals   map[uint]int     `json:"totals"`
}

// ComputeScoreboard 对全部作答按用户聚合得分、作答数与正确率。
// participants 里没有作答的用户也出现在结果里，正确率记 0。
func ComputeScoreboard(attempts []model.Attempt, participants []uint) Scoreboard {
	board := Scoreboard{
		Scores:   make(map[uint]int),
		Accuracy: make(map[uint]float64),
		Totals:   make(map[uint]int),
	}
	correct := make(map[uint]int)
	for _, id := range participants {
		board.Scores[id] = 0
		board.Accuracy[id] = 0
		board.Totals[id] = 0
	}
	for _, a := range attempts {
		board.Scores[a.UserID] += a.Points
		board.Totals[a.UserID]++
		if a.Correct {
			correct[a.UserID]++
		}
	}
	for id, total := range board.Totals {
		if total > 0 {
			board.Accuracy[id] = float64(correct[id]) / float64(total)
		}
	}
	return board
}

// Progress 记分牌加每人最近一次作答时间（没有作答为 null）
type Progress struct {
	Scoreboard
	LastActivity map[uint]*string `json:"last_activity"`
}

// ComputeProgress 在记分牌之上补充每个参与者的最近活跃时间
func ComputeProgress(attempts []model.Attempt, participants []uint) Progress {
	progress := Progress{
		Scoreboard:   ComputeScoreboard(attempts, participants),
		LastActivity: make(map[uint]*string),
	}
	latest := make(map[uint]time.Time)
	for _, a := range attempts {
		if a.CreatedAt.After(latest[a.UserID]) {
			latest[a.UserID] = a.CreatedAt
		}
	}
	for _, id := range participants {
		if t, ok := latest[id]; ok {
			s := t.Format(time.RFC3339)
			progress.LastActivity[id] = &s
		} else {
			progress.LastActivity[id] = nil
		}
	}
	return progress
}

// WrongbookEntry 错词本条目：被答错过的单词和错过它的用户集合
type WrongbookEntry struct {
	WordID     uint   `json:"word_id"`
	Term       string `json:"term"`
	Definition string `json:"definition"`
	Example    string `json:"example"`
	WrongBy    []uint `json:"wrong_by"`
}

// ComputeWrongbook 按单词聚合错误作答；
// wrong_by 去重，没有错误记录的单词不出现。
// words 里查不到的词（比如已被删除）直接跳过。
func ComputeWrongbook(attempts []model.Attempt, words map[uint]*model.Word) []WrongbookEntry {
	type wordMisses struct {
		order   int
		users   []uint
		userSet map[uint]bool
	}
	misses := make(map[uint]*wordMisses)
	var wordOrder []uint
	for _, a := range attempts {
		if a.Correct {
			continue
		}
		m := misses[a.WordID]
		if m == nil {
			m = &wordMisses{order: len(wordOrder), userSet: make(map[uint]bool)}
			misses[a.WordID] = m
			wordOrder = append(wordOrder, a.WordID)
		}
		if !m.userSet[a.UserID] {
			m.userSet[a.UserID] = true
			m.users = append(m.users, a.UserID)
		}
	}

	entries := make([]WrongbookEntry, 0, len(wordOrder))
	for _, wordID := range wordOrder {
		w := words[wordID]
		if w == nil {
			continue
		}
		entries = append(entries, WrongbookEntry{
			WordID:     wordID,
			Term:       w.Term,
			Definition: w.Definition,
			Example:    w.Example,
			WrongBy:    misses[wordID].users,
		})
	}
	return entries
}

func (s *ReportService) participantSession(sessionID, userID uint) (*model.StudySession, error) {
	session, err := s.SessionRepo.FindByID(sessionID)
	if err != nil {
		return nil, util.ErrSessionNotFound
	}
	if !session.IsParticipant(userID) {
		return nil, util.ErrNotParticipant
	}
	return session, nil
}

func (s *ReportService) sessionAttempts(sessionID, userID uint) (*model.StudySession, []model.Attempt, error) {
	session, err := s.participantSession(sessionID, userID)
	if err != nil {
		return nil, nil, err
	}
	attempts, err := s.SessionRepo.ListAttempts(sessionID)
	if err != nil {
		return nil, nil, err
	}
	return session, attempts, nil
}

// SessionScoreboard 会话记分牌
func (s *ReportService) SessionScoreboard(sessionID, userID uint) (*Scoreboard, error) {
	session, attempts, err := s.sessionAttempts(sessionID, userID)
	if err != nil {
		return nil, err
	}
	board := ComputeScoreboard(attempts, []uint{session.UserAID, session.UserBID})
	return &board, nil
}

// SessionProgress 会话进度
func (s *ReportService) SessionProgress(sessionID, userID uint) (*Progress, error) {
	session, attempts, err := s.sessionAttempts(sessionID, userID)
	if err != nil {
		return nil, err
	}
	progress := ComputeProgress(attempts, []uint{session.UserAID, session.UserBID})
	return &progress, nil
}

// SessionWrongbook 会话错词本。只查错误作答和被错过的词，
// 不把整个词表拉进内存。
func (s *ReportService) SessionWrongbook(sessionID, userID uint) ([]WrongbookEntry, error) {
	if _, err := s.participantSession(sessionID, userID); err != nil {
		return nil, err
	}
	attempts, err := s.SessionRepo.ListWrongAttempts(sessionID)
	if err != nil {
		return nil, err
	}

	ids := make([]uint, 0, len(attempts))
	seen := make(map[uint]bool)
	for _, a := range attempts {
		if !seen[a.WordID] {
			seen[a.WordID] = true
			ids = append(ids, a.WordID)
		}
	}
	words, err := s.WordlistRepo.FindWordsByIDs(ids)
	if err != nil {
		return nil, err
	}
	index := make(map[uint]*model.Word, len(words))
	for i := range words {
		index[words[i].ID] = &words[i]
	}
	return ComputeWrongbook(attempts, index), nil
}

// LeaderboardEntry 排行榜条目
type LeaderboardEntry struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
	Points   int    `json:"points"`
	Rank     int    `json:"rank"`
}

// leaderboardWindow period 对应的统计起点，daily 一天、weekly 七天，
// 其余值统计全量
func leaderboardWindow(period string, now time.Time) *time.Time {
	switch period {
	case "daily":
		t := now.AddDate(0, 0, -1)
		return &t
	case "weekly":
		t := now.AddDate(0, 0, -7)
		return &t
	}
	return nil
}

// clampLeaderboardLimit 榜单长度上限 100，非法值回落到 20
func clampLeaderboardLimit(limit int) int {
	if limit <= 0 || limit > 100 {
		return 20
	}
	return limit
}

// Leaderboard 好友圈积分榜，period 取 daily/weekly/all。
// 只统计当前用户和其好友，不做全站榜。
func (s *ReportService) Leaderboard(userID uint, period string, limit int) ([]LeaderboardEntry, error) {
	since := leaderboardWindow(period, time.Now())
	limit = clampLeaderboardLimit(limit)

	friendIDs, err := s.FriendRepo.GetFriendIDsCached(userID)
	if err != nil {
		return nil, err
	}
	scope := append(friendIDs, userID)

	rows, err := s.SessionRepo.TopByPoints(since, scope, limit)
	if err != nil {
		return nil, err
	}

	ids := make([]uint, 0, len(rows))
	for _, r := range rows {
		ids = append(ids, r.UserID)
	}
	users, err := s.UserRepo.FindByIDs(ids)
	if err != nil {
		return nil, err
	}
	names := make(map[uint]string, len(users))
	for _, u := range users {
		names[u.ID] = u.Username
	}

	entries := make([]LeaderboardEntry, 0, len(rows))
	for i, r := range rows {
		entries = append(entries, LeaderboardEntry{
			UserID:   r.UserID,
			Username: names[r.UserID],
			Points:   r.Points,
			Rank:     i + 1,
		})
	}
	return entries, nil
}

// UserWeekly 一周内单人战绩
type UserWeekly struct {
	UserID        uint    `json:"user_id"`
	Username      string  `json:"username"`
	Attempts      int     `json:"attempts"`
	Correct       int     `json:"correct"`
	Accuracy      float64 `json:"accuracy"`
	Points        int     `json:"points"`
	MasteredWords int     `json:"mastered_words"`
	WrongWords    int     `json:"wrong_words"`
}

// WeeklyReport 个人周报，可带一个对照对象
type WeeklyReport struct {
	From    string      `json:"from"`
	To      string      `json:"to"`
	Me      UserWeekly  `json:"me"`
	Partner *UserWeekly `json:"partner,omitempty"`
}

func weeklyStats(attempts []model.Attempt, userID uint) UserWeekly {
	stats := UserWeekly{UserID: userID}
	correctPerWord := make(map[uint]int)
	wrongWords := make(map[uint]bool)
	for _, a := range attempts {
		if a.UserID != userID {
			continue
		}
		stats.Attempts++
		stats.Points += a.Points
		if a.Correct {
			stats.Correct++
			correctPerWord[a.WordID]++
		} else {
			wrongWords[a.WordID] = true
		}
	}
	if stats.Attempts > 0 {
		stats.Accuracy = float64(stats.Correct) / float64(stats.Attempts)
	}
	// 同一个词一周内答对两次以上视为掌握
	for _, c := range correctPerWord {
		if c >= 2 {
			stats.MasteredWords++
		}
	}
	stats.WrongWords = len(wrongWords)
	return stats
}

// Weekly 近七天学习周报，partnerUsername 非空时附带对照数据
func (s *ReportService) Weekly(userID uint, partnerUsername string) (*WeeklyReport, error) {
	me, err := s.UserRepo.FindByID(userID)
	if err != nil {
		return nil, util.ErrUserNotFound
	}

	userIDs := []uint{userID}
	var partner *model.User
	if partnerUsername != "" {
		partner, err = s.UserRepo.FindByUsername(partnerUsername)
		if err != nil {
			return nil, util.ErrUserNotFound
		}
		userIDs = append(userIDs, partner.ID)
	}

	now := time.Now()
	since := now.AddDate(0, 0, -7)
	attempts, err := s.SessionRepo.ListAttemptsSince(since, userIDs)
	if err != nil {
		return nil, err
	}

	report := &WeeklyReport{
		From: since.Format(util.DateFormat),
		To:   now.Format(util.DateFormat),
		Me:   weeklyStats(attempts, userID),
	}
	report.Me.Username = me.Username
	if partner != nil {
		stats := weeklyStats(attempts, partner.ID)
		stats.Username = partner.Username
		report.Partner = &stats
	}
	return report, nil
}
