package service

import (
	"context"
	"math/rand"

	"word_duel_backend/internal/model"
	"word_duel_backend/internal/repository"
	"word_duel_backend/internal/util"

	"go.uber.org/zap"
)

// 每答对一题的固定得分
const pointsPerCorrect = 10

// SessionStore 对战会话与作答记录的存取面
type SessionStore interface {
	Create(session *model.StudySession) error
	FindByID(id uint) (*model.StudySession, error)
	CreateAttempt(attempt *model.Attempt) error
}

// WordStore 词表与词条的只读访问面
type WordStore interface {
	FindListByID(id uint) (*model.WordList, error)
	FindWordByID(id uint) (*model.Word, error)
	ListWords(listID uint, poolIDs []uint) ([]model.Word, error)
	WordIDs(listID uint) ([]uint, error)
}

// UserFinder 按 ID 查用户
type UserFinder interface {
	FindByID(id uint) (*model.User, error)
}

// QuizService 对战会话：建会话、抽题、判题记分
type QuizService struct {
	SessionRepo  SessionStore
	WordlistRepo WordStore
	UserRepo     UserFinder
	Grader       *Grader

	// 可注入的随机源，便于测试固定抽题结果
	randInt func(int) int
}

func NewQuizService(sessionRepo *repository.SessionRepository, wordlistRepo *repository.WordlistRepository, userRepo *repository.UserRepository, grader *Grader) *QuizService {
	return &QuizService{
		SessionRepo:  sessionRepo,
		WordlistRepo: wordlistRepo,
		UserRepo:     userRepo,
		Grader:       grader,
		randInt:      rand.Intn,
	}
}

type CreateSessionInput struct {
	WordlistID    uint `json:"wordlist_id" binding:"required"`
	OpponentID    uint `json:"opponent_id" binding:"required"`
	Zh2EnRatio    *int `json:"zh2en_ratio"`
	PracticeRatio *int `json:"practice_ratio"`
}

func clampRatio(p *int, def int) int {
	if p == nil {
		return def
	}
	v := *p
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// samplePoolSize 练习池大小：按比例四舍五入，比例为正时至少 1 个
func samplePoolSize(total, ratio int) int {
	k := (total*ratio + 50) / 100
	if k < 1 && ratio > 0 {
		k = 1
	}
	return k
}

// CreateSession 创建异步对战会话。practice_ratio < 100 时在建会话时
// 一次性抽样固化练习池，后续抽题只在池内进行。
func (s *QuizService) CreateSession(creatorID uint, input CreateSessionInput) (*model.StudySession, error) {
	if input.OpponentID == creatorID {
		return nil, util.ErrCannotDuelSelf
	}
	if _, err := s.UserRepo.FindByID(input.OpponentID); err != nil {
		return nil, util.ErrUserNotFound
	}
	list, err := s.WordlistRepo.FindListByID(input.WordlistID)
	if err != nil {
		return nil, util.ErrWordlistNotFound
	}
	// 只能用自己的词表发起对战，他人词表按不存在处理
	if list.OwnerID != creatorID {
		return nil, util.ErrWordlistNotFound
	}

	session := &model.StudySession{
		Type:          model.SessionTypeAsync,
		Status:        model.SessionStatusActive,
		WordlistID:    list.ID,
		CreatedBy:     creatorID,
		UserAID:       creatorID,
		UserBID:       input.OpponentID,
		Zh2EnRatio:    clampRatio(input.Zh2EnRatio, 50),
		PracticeRatio: clampRatio(input.PracticeRatio, 100),
	}

	if session.PracticeRatio < 100 {
		ids, err := s.WordlistRepo.WordIDs(list.ID)
		if err != nil {
			return nil, err
		}
		pool := s.samplePool(ids, session.PracticeRatio)
		if err := session.SetPoolIDs(pool); err != nil {
			return nil, err
		}
		zap.L().Info("练习池已固化",
			zap.Uint("session_wordlist", list.ID),
			zap.Int("pool_size", len(pool)),
			zap.Int("total", len(ids)))
	}

	if err := s.SessionRepo.Create(session); err != nil {
		return nil, err
	}
	return session, nil
}

// samplePool 无放回抽样，ratio 为 0 时返回空池（抽题时会报空词表）
func (s *QuizService) samplePool(ids []uint, ratio int) []uint {
	k := samplePoolSize(len(ids), ratio)
	if k >= len(ids) {
		return ids
	}
	pool := make([]uint, 0, k)
	remaining := make([]uint, len(ids))
	copy(remaining, ids)
	for i := 0; i < k; i++ {
		j := s.randInt(len(remaining))
		pool = append(pool, remaining[j])
		remaining[j] = remaining[len(remaining)-1]
		remaining = remaining[:len(remaining)-1]
	}
	return pool
}

// GetSession 取会话详情，非参与者拒绝访问
func (s *QuizService) GetSession(sessionID, userID uint) (*model.StudySession, error) {
	session, err := s.SessionRepo.FindByID(sessionID)
	if err != nil {
		return nil, util.ErrSessionNotFound
	}
	if !session.IsParticipant(userID) {
		return nil, util.ErrNotParticipant
	}
	return session, nil
}

type NextWordOutput struct {
	WordID     uint   `json:"word_id"`
	Term       string `json:"term"`
	Definition string `json:"definition"`
	Direction  string `json:"direction"`
}

// NextWord 在练习池内随机抽一题并按比例定方向
func (s *QuizService) NextWord(sessionID, userID uint, requestedDirection string) (*NextWordOutput, error) {
	session, err := s.GetSession(sessionID, userID)
	if err != nil {
		return nil, err
	}

	words, err := s.WordlistRepo.ListWords(session.WordlistID, session.PoolIDs())
	if err != nil {
		return nil, err
	}
	if len(words) == 0 {
		return nil, util.ErrEmptyWordPool
	}

	word := &words[s.randInt(len(words))]
	direction := ChooseDirection(requestedDirection, session.Zh2EnRatio, word, s.randInt)

	return &NextWordOutput{
		WordID:     word.ID,
		Term:       word.Term,
		Definition: word.Definition,
		Direction:  direction,
	}, nil
}

type SubmitAttemptInput struct {
	WordID    uint   `json:"word_id" binding:"required"`
	Direction string `json:"direction" binding:"required"`
	Answer    string `json:"answer"`
}

type AttemptOutput struct {
	AttemptID     uint        `json:"attempt_id"`
	Correct       bool        `json:"correct"`
	PointsAwarded int         `json:"points_awarded"`
	CorrectAnswer string      `json:"correct_answer"`
	Definition    string      `json:"definition"`
	Example       string      `json:"example"`
	JudgeDetail   JudgeDetail `json:"judge_detail"`
}

// SubmitAttempt 判题并落库一次作答。单词归属和参与者校验都在判题之前。
func (s *QuizService) SubmitAttempt(ctx context.Context, sessionID, userID uint, input SubmitAttemptInput) (*AttemptOutput, error) {
	session, err := s.GetSession(sessionID, userID)
	if err != nil {
		return nil, err
	}

	word, err := s.WordlistRepo.FindWordByID(input.WordID)
	if err != nil || word.ListID != session.WordlistID {
		return nil, util.ErrWordNotFound
	}

	// 没有释义的词即使请求 en2zh 也按 zh2en 判
	direction := ChooseDirection(input.Direction, session.Zh2EnRatio, word, s.randInt)

	result := s.Grader.Grade(ctx, direction, input.Answer, word)
	points := 0
	if result.Correct {
		points = pointsPerCorrect
	}

	attempt := &model.Attempt{
		SessionID:  session.ID,
		UserID:     userID,
		WordID:     word.ID,
		AnswerText: input.Answer,
		Correct:    result.Correct,
		Points:     points,
	}
	if err := s.SessionRepo.CreateAttempt(attempt); err != nil {
		return nil, err
	}

	correctAnswer := word.Term
	if direction == model.DirectionEn2Zh {
		correctAnswer = word.Definition
	}
	return &AttemptOutput{
		AttemptID:     attempt.ID,
		Correct:       result.Correct,
		PointsAwarded: points,
		CorrectAnswer: correctAnswer,
		Definition:    word.Definition,
		Example:       word.Example,
		JudgeDetail:   result.JudgeDetail,
	}, nil
}
