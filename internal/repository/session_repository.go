package repository

import (
	"time"
	"word_duel_backend/internal/model"

	"gorm.io/gorm"
)

type SessionRepository struct {
	DB *gorm.DB
}

func NewSessionRepository(db *gorm.DB) *SessionRepository {
	return &SessionRepository{DB: db}
}

func (r *SessionRepository) Create(sess *model.StudySession) error {
	return r.DB.Create(sess).Error
}

func (r *SessionRepository) FindByID(id uint) (*model.StudySession, error) {
	var sess model.StudySession
	err := r.DB.First(&sess, id).Error
	if err != nil {
		return nil, err
	}
	return &sess, nil
}

// CreateAttempt 追加一条作答记录。作答记录没有更新/删除路径。
func (r *SessionRepository) CreateAttempt(att *model.Attempt) error {
	return r.DB.Create(att).Error
}

func (r *SessionRepository) ListAttempts(sessionID uint) ([]model.Attempt, error) {
	var attempts []model.Attempt
	err := r.DB.Where("session_id = ?", sessionID).Order("created_at ASC").Find(&attempts).Error
	return attempts, err
}

// ListWrongAttempts 只取错误作答，供错词本聚合；按时间序保证首错顺序稳定
func (r *SessionRepository) ListWrongAttempts(sessionID uint) ([]model.Attempt, error) {
	var attempts []model.Attempt
	err := r.DB.Where("session_id = ? AND correct = ?", sessionID, false).
		Order("created_at ASC").Find(&attempts).Error
	return attempts, err
}

// ListAttemptsSince 取指定用户集合在 since 之后的作答记录，用于周报
func (r *SessionRepository) ListAttemptsSince(since time.Time, userIDs []uint) ([]model.Attempt, error) {
	var attempts []model.Attempt
	err := r.DB.Where("created_at >= ? AND user_id IN ?", since, userIDs).Find(&attempts).Error
	return attempts, err
}

// UserPoints 排行榜聚合行
type UserPoints struct {
	UserID uint `json:"userId"`
	Points int  `json:"points"`
}

// TopByPoints 按累计得分排序的用户榜单；since 为 nil 时统计全量，
// userIDs 限定统计范围（好友圈）
func (r *SessionRepository) TopByPoints(since *time.Time, userIDs []uint, limit int) ([]UserPoints, error) {
	var rows []UserPoints
	db := r.DB.Model(&model.Attempt{}).
		Select("user_id, SUM(points) AS points").
		Group("user_id").
		Order("points DESC").
		Limit(limit)
	if since != nil {
		db = db.Where("created_at >= ?", *since)
	}
	if userIDs != nil {
		db = db.Where("user_id IN ?", userIDs)
	}
	err := db.Scan(&rows).Error
	return rows, err
}
