package model

import (
	"encoding/json"
)

// 抽背方向
const (
	DirectionZh2En  = "zh2en" // 展示释义，答单词，严格匹配
	DirectionEn2Zh  = "en2zh" // 展示单词，答释义，包含匹配 + 可选语义评审
	DirectionRandom = "random"
)

const (
	SessionTypeAsync    = "async"
	SessionStatusActive = "active"
)

// StudySession 双人异步抽背会话
// swagger:model StudySession
type StudySession struct {
	BaseModel
	Type       string `gorm:"size:20;default:'async'" json:"type"`
	Status     string `gorm:"size:20;default:'active'" json:"status"`
	WordlistID uint   `gorm:"index;not null" json:"wordlistId"`
	CreatedBy  uint   `gorm:"index;not null" json:"createdBy"`
	UserAID    uint   `gorm:"index;not null" json:"userAId"`
	UserBID    uint   `gorm:"index;not null" json:"userBId"`
	// 随机抽题时 zh2en 方向的概率百分比（0-100）
	Zh2EnRatio int `gorm:"default:50" json:"zh2enRatio"`
	// 练习范围占全量词表的百分比（0-100），低于 100 时会在创建时固化练习池
	PracticeRatio int `gorm:"default:100" json:"practiceRatio"`
	// 固化的练习池（word id 的 JSON 数组），NULL 表示不限制
	PracticePool *string `gorm:"type:text" json:"-"`
}

func (StudySession) TableName() string {
	return "study_sessions"
}

// IsParticipant 判断用户是否为会话参与者
func (s *StudySession) IsParticipant(userID uint) bool {
	return userID == s.UserAID || userID == s.UserBID
}

// PoolIDs 解析练习池。返回 nil 表示未固化练习池（不限制）；
// 返回空切片表示池为空（practice_ratio 为 0 时的边界情况）。
func (s *StudySession) PoolIDs() []uint {
	if s.PracticePool == nil {
		return nil
	}
	ids := []uint{}
	if err := json.Unmarshal([]byte(*s.PracticePool), &ids); err != nil {
		return nil
	}
	return ids
}

// SetPoolIDs 序列化练习池，ids 为 nil 时清空
func (s *StudySession) SetPoolIDs(ids []uint) error {
	if ids == nil {
		s.PracticePool = nil
		return nil
	}
	raw, err := json.Marshal(ids)
	if err != nil {
		return err
	}
	encoded := string(raw)
	s.PracticePool = &encoded
	return nil
}

// Attempt 作答记录，只追加不修改，是所有统计口径的事实来源
// swagger:model Attempt
type Attempt struct {
	BaseModel
	SessionID  uint   `gorm:"index;not null" json:"sessionId"`
	UserID     uint   `gorm:"index;not null" json:"userId"`
	WordID     uint   `gorm:"index;not null" json:"wordId"`
	AnswerText string `gorm:"size:500" json:"answerText"`
	Correct    bool   `gorm:"default:false" json:"correct"`
	Points     int    `gorm:"default:0" json:"points"`
}

func (Attempt) TableName() string {
	return "attempts"
}
