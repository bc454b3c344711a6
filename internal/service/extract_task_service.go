package service

import (
	"context"
	"encoding/json"
	"time"

	"word_duel_backend/internal/model"
	"word_duel_backend/internal/util"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ExtractTaskStore 任务存储。生产环境走数据库实现，测试用内存实现。
type ExtractTaskStore interface {
	Create(task *model.ExtractTask) error
	FindByID(id string) (*model.ExtractTask, error)
	Update(task *model.ExtractTask) error
}

// ImageExtractor 单图识别接口，由 VisionService 实现
type ImageExtractor interface {
	ExtractWords(ctx context.Context, imageData []byte, mimeType string) ([]util.WordRow, error)
}

// ImageInput 批量任务里的一张待识别图片
type ImageInput struct {
	Filename string
	MimeType string
	Data     []byte
}

// ImageResult 单张图片的识别结果
type ImageResult struct {
	Filename string         `json:"filename"`
	Words    []util.WordRow `json:"words"`
	Error    string         `json:"error,omitempty"`
}

// ExtractTaskService 批量图片提取：任务落库、后台并发识别、轮询进度
type ExtractTaskService struct {
	Store     ExtractTaskStore
	Extractor ImageExtractor

	// 并发识别的工作协程数
	Workers int
}

func NewExtractTaskService(store ExtractTaskStore, extractor ImageExtractor) *ExtractTaskService {
	return &ExtractTaskService{Store: store, Extractor: extractor, Workers: 3}
}

// StartBatch 创建批量识别任务并启动后台处理，立即返回任务 ID
func (s *ExtractTaskService) StartBatch(userID uint, images []ImageInput) (*model.ExtractTask, error) {
	task := &model.ExtractTask{
		UUIDBase: model.UUIDBase{ID: uuid.New().String()},
		UserID:   userID,
		Total:    len(images),
		Status:   model.TaskStatusPending,
	}
	if err := s.Store.Create(task); err != nil {
		return nil, err
	}

	go s.process(task.ID, images)
	return task, nil
}

func (s *ExtractTaskService) process(taskID string, images []ImageInput) {
	ctx := context.Background()

	task, err := s.Store.FindByID(taskID)
	if err != nil {
		zap.L().Error("批量任务丢失", zap.String("task_id", taskID), zap.Error(err))
		return
	}
	task.Status = model.TaskStatusProcessing
	task.StartedAt = time.Now()
	if err := s.Store.Update(task); err != nil {
		zap.L().Error("批量任务状态更新失败", zap.String("task_id", taskID), zap.Error(err))
	}

	workers := s.Workers
	if workers <= 0 {
		workers = 3
	}
	sem := make(chan struct{}, workers)
	results := make([]ImageResult, len(images))
	done := make(chan int, len(images))

	for i := range images {
		sem <- struct{}{}
		go func(idx int) {
			defer func() { <-sem; done <- idx }()
			img := images[idx]
			words, err := s.Extractor.ExtractWords(ctx, img.Data, img.MimeType)
			if err != nil {
				results[idx] = ImageResult{Filename: img.Filename, Error: err.Error()}
				return
			}
			results[idx] = ImageResult{Filename: img.Filename, Words: words}
		}(i)
	}

	for range images {
		idx := <-done
		task.Completed++
		if results[idx].Error != "" {
			task.Errors++
		}
		task.CurrentImage = images[idx].Filename
		task.CurrentIndex = idx + 1
		if err := s.Store.Update(task); err != nil {
			zap.L().Warn("批量任务进度更新失败", zap.String("task_id", taskID), zap.Error(err))
		}
	}

	payload, err := json.Marshal(results)
	if err != nil {
		task.Status = model.TaskStatusError
	} else {
		task.Results = string(payload)
		if task.Errors == task.Total && task.Total > 0 {
			task.Status = model.TaskStatusError
		} else {
			task.Status = model.TaskStatusCompleted
		}
	}
	finished := time.Now()
	task.FinishedAt = &finished
	if err := s.Store.Update(task); err != nil {
		zap.L().Error("批量任务收尾更新失败", zap.String("task_id", taskID), zap.Error(err))
	}
	zap.L().Info("批量识别完成",
		zap.String("task_id", taskID),
		zap.Int("total", task.Total),
		zap.Int("errors", task.Errors))
}

// TaskStatusOutput 轮询接口返回的任务快照
type TaskStatusOutput struct {
	TaskID       string        `json:"task_id"`
	Status       string        `json:"status"`
	Total        int           `json:"total"`
	Completed    int           `json:"completed"`
	Errors       int           `json:"errors"`
	CurrentImage string        `json:"current_image,omitempty"`
	CurrentIndex int           `json:"current_index"`
	Results      []ImageResult `json:"results,omitempty"`
}

// GetTask 查询任务进度，只允许任务创建者访问；
// 完成后附带全部识别结果。
func (s *ExtractTaskService) GetTask(taskID string, userID uint) (*TaskStatusOutput, error) {
	task, err := s.Store.FindByID(taskID)
	if err != nil {
		return nil, util.ErrTaskNotFound
	}
	if task.UserID != userID {
		return nil, util.ErrTaskAccessDenied
	}

	out := &TaskStatusOutput{
		TaskID:       task.ID,
		Status:       task.Status,
		Total:        task.Total,
		Completed:    task.Completed,
		Errors:       task.Errors,
		CurrentImage: task.CurrentImage,
		CurrentIndex: task.CurrentIndex,
	}
	if task.Results != "" {
		if err := json.Unmarshal([]byte(task.Results), &out.Results); err != nil {
			zap.L().Warn("任务结果反序列化失败", zap.String("task_id", taskID), zap.Error(err))
		}
	}
	return out, nil
}
