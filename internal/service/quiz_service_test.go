package service

import (
	"errors"
	"testing"

	"word_duel_backend/internal/model"
	"word_duel_backend/internal/util"
)

func TestClampRatio(t *testing.T) {
	cases := []struct {
		in   *int
		def  int
		want int
	}{
		{nil, 50, 50},
		{intPtr(0), 50, 0},
		{intPtr(100), 50, 100},
		{intPtr(-5), 50, 0},
		{intPtr(150), 50, 100},
		{intPtr(30), 100, 30},
	}
	for _, c := range cases {
		if got := clampRatio(c.in, c.def); got != c.want {
			t.Fatalf("clampRatio(%v, %d) = %d, want %d", c.in, c.def, got, c.want)
		}
	}
}

func intPtr(v int) *int { return &v }

func TestSamplePoolSize(t *testing.T) {
	cases := []struct{ total, ratio, want int }{
		{10, 50, 5},
		{10, 25, 3},  // 四舍五入
		{10, 1, 1},   // 比例为正时至少 1
		{3, 10, 1},
		{10, 0, 0},   // 比例为 0 允许空池
		{0, 50, 1},   // 空词表也走最小值，抽样时会整体返回
		{10, 100, 10},
	}
	for _, c := range cases {
		if got := samplePoolSize(c.total, c.ratio); got != c.want {
			t.Fatalf("samplePoolSize(%d, %d) = %d, want %d", c.total, c.ratio, got, c.want)
		}
	}
}

func TestSamplePool(t *testing.T) {
	ids := []uint{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}

	// 固定随机源总选下标 0，无放回抽样不应重复
	s := &QuizService{randInt: func(int) int { return 0 }}
	pool := s.samplePool(ids, 30)
	if len(pool) != 3 {
		t.Fatalf("expected 3 sampled ids got %d", len(pool))
	}
	seen := map[uint]bool{}
	for _, id := range pool {
		if seen[id] {
			t.Fatalf("duplicate id %d in pool %v", id, pool)
		}
		seen[id] = true
	}

	// 比例 0 固化空池
	pool = s.samplePool(ids, 0)
	if pool == nil || len(pool) != 0 {
		t.Fatalf("ratio 0 should produce empty non-nil pool, got %v", pool)
	}

	// 比例 100 原样返回
	pool = s.samplePool(ids, 100)
	if len(pool) != len(ids) {
		t.Fatalf("ratio 100 should keep all ids, got %v", pool)
	}
}

type memSessionStore struct {
	sessions map[uint]*model.StudySession
	attempts []model.Attempt
}

func (m *memSessionStore) Create(session *model.StudySession) error {
	if m.sessions == nil {
		m.sessions = make(map[uint]*model.StudySession)
	}
	session.ID = uint(len(m.sessions) + 1)
	m.sessions[session.ID] = session
	return nil
}

func (m *memSessionStore) FindByID(id uint) (*model.StudySession, error) {
	session, ok := m.sessions[id]
	if !ok {
		return nil, errors.New("record not found")
	}
	return session, nil
}

func (m *memSessionStore) CreateAttempt(attempt *model.Attempt) error {
	attempt.ID = uint(len(m.attempts) + 1)
	m.attempts = append(m.attempts, *attempt)
	return nil
}

type memWordStore struct {
	lists map[uint]*model.WordList
	words []model.Word
}

func (m *memWordStore) FindListByID(id uint) (*model.WordList, error) {
	list, ok := m.lists[id]
	if !ok {
		return nil, errors.New("record not found")
	}
	return list, nil
}

func (m *memWordStore) FindWordByID(id uint) (*model.Word, error) {
	for i := range m.words {
		if m.words[i].ID == id {
			return &m.words[i], nil
		}
	}
	return nil, errors.New("record not found")
}

func (m *memWordStore) ListWords(listID uint, poolIDs []uint) ([]model.Word, error) {
	inPool := func(id uint) bool {
		if poolIDs == nil {
			return true
		}
		for _, p := range poolIDs {
			if p == id {
				return true
			}
		}
		return false
	}
	var out []model.Word
	for _, w := range m.words {
		if w.ListID == listID && inPool(w.ID) {
			out = append(out, w)
		}
	}
	return out, nil
}

func (m *memWordStore) WordIDs(listID uint) ([]uint, error) {
	var ids []uint
	for _, w := range m.words {
		if w.ListID == listID {
			ids = append(ids, w.ID)
		}
	}
	return ids, nil
}

type memUserStore struct {
	users map[uint]*model.User
}

func (m *memUserStore) FindByID(id uint) (*model.User, error) {
	user, ok := m.users[id]
	if !ok {
		return nil, errors.New("record not found")
	}
	return user, nil
}

func listWord(id, listID uint) model.Word {
	w := model.Word{ListID: listID, Term: "word", Definition: "词"}
	w.ID = id
	return w
}

func quizFixture() *QuizService {
	creatorList := &model.WordList{OwnerID: 1}
	creatorList.ID = 5
	otherList := &model.WordList{OwnerID: 3}
	otherList.ID = 6
	return &QuizService{
		SessionRepo: &memSessionStore{},
		WordlistRepo: &memWordStore{
			lists: map[uint]*model.WordList{5: creatorList, 6: otherList},
			words: []model.Word{listWord(11, 5), listWord(12, 5), listWord(13, 5), listWord(14, 5)},
		},
		UserRepo: &memUserStore{users: map[uint]*model.User{
			1: {Username: "alice"},
			2: {Username: "bob"},
		}},
		randInt: func(int) int { return 0 },
	}
}

func TestCreateSessionRejectsSelfOpponent(t *testing.T) {
	// 自己约自己在任何查库之前就该被拒绝
	s := &QuizService{}
	_, err := s.CreateSession(7, CreateSessionInput{WordlistID: 5, OpponentID: 7})
	if !errors.Is(err, util.ErrCannotDuelSelf) {
		t.Fatalf("expected ErrCannotDuelSelf, got %v", err)
	}
}

func TestCreateSessionWordlistOwnership(t *testing.T) {
	s := quizFixture()

	// 他人的词表按不存在处理
	_, err := s.CreateSession(1, CreateSessionInput{WordlistID: 6, OpponentID: 2})
	if !errors.Is(err, util.ErrWordlistNotFound) {
		t.Fatalf("expected ErrWordlistNotFound for foreign list, got %v", err)
	}

	// 自己的词表正常建会话
	session, err := s.CreateSession(1, CreateSessionInput{WordlistID: 5, OpponentID: 2})
	if err != nil {
		t.Fatalf("own list should be accepted: %v", err)
	}
	if session.UserAID != 1 || session.UserBID != 2 {
		t.Fatalf("unexpected participants: %+v", session)
	}
}

func TestCreateSessionUnknownOpponent(t *testing.T) {
	s := quizFixture()
	_, err := s.CreateSession(1, CreateSessionInput{WordlistID: 5, OpponentID: 99})
	if !errors.Is(err, util.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestCreateSessionMaterializesPool(t *testing.T) {
	s := quizFixture()
	ratio := 50
	session, err := s.CreateSession(1, CreateSessionInput{WordlistID: 5, OpponentID: 2, PracticeRatio: &ratio})
	if err != nil {
		t.Fatalf("CreateSession: %v", err)
	}
	pool := session.PoolIDs()
	if len(pool) != 2 {
		t.Fatalf("expected pool of 2 out of 4 words, got %v", pool)
	}
}
