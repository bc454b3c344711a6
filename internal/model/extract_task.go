package model

import "time"

// 批量图片提取任务状态
const (
	TaskStatusPending    = "pending"
	TaskStatusProcessing = "processing"
	TaskStatusCompleted  = "completed"
	TaskStatusError      = "error"
)

// ExtractTask 批量图片词汇提取任务。
// 以任务表替代进程内的全局注册表，进度与结果都落库。
// swagger:model ExtractTask
type ExtractTask struct {
	UUIDBase
	UserID       uint       `gorm:"index;not null" json:"userId"`
	Total        int        `gorm:"default:0" json:"total"`
	Completed    int        `gorm:"default:0" json:"completed"`
	Errors       int        `gorm:"default:0" json:"errors"`
	CurrentImage string     `gorm:"size:255" json:"currentImage"`
	CurrentIndex int        `gorm:"default:0" json:"currentIndex"`
	Status       string     `gorm:"size:20;default:'pending'" json:"status"`
	// 每张图片的提取结果（JSON 数组），任务完成后写入
	Results    string     `gorm:"type:mediumtext" json:"-"`
	StartedAt  time.Time  `json:"startedAt"`
	FinishedAt *time.Time `json:"finishedAt,omitempty"`
}

func (ExtractTask) TableName() string {
	return "extract_tasks"
}
