package repository

import (
	"word_duel_backend/internal/model"

	"gorm.io/gorm"
)

// ExtractTaskRepository 批量提取任务的持久化存储
type ExtractTaskRepository struct {
	DB *gorm.DB
}

func NewExtractTaskRepository(db *gorm.DB) *ExtractTaskRepository {
	return &ExtractTaskRepository{DB: db}
}

func (r *ExtractTaskRepository) Create(task *model.ExtractTask) error {
	return r.DB.Create(task).Error
}

func (r *ExtractTaskRepository) FindByID(id string) (*model.ExtractTask, error) {
	var task model.ExtractTask
	err := r.DB.First(&task, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &task, nil
}

func (r *ExtractTaskRepository) Update(task *model.ExtractTask) error {
	return r.DB.Save(task).Error
}
