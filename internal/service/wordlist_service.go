package service

import (
	"fmt"
	"strings"

	"word_duel_backend/internal/model"
	"word_duel_backend/internal/repository"
	"word_duel_backend/internal/util"
)

// WordlistService 词表管理：建表、导入、查询
type WordlistService struct {
	WordlistRepo *repository.WordlistRepository
}

func NewWordlistService(wordlistRepo *repository.WordlistRepository) *WordlistService {
	return &WordlistService{WordlistRepo: wordlistRepo}
}

type CreateWordlistInput struct {
	Name        string         `json:"name" binding:"required"`
	Description string         `json:"description"`
	Words       []util.WordRow `json:"words"`
}

// CreateList 建词表，可随请求附带初始单词
func (s *WordlistService) CreateList(ownerID uint, input CreateWordlistInput) (*model.WordList, error) {
	list := &model.WordList{
		OwnerID:     ownerID,
		Name:        strings.TrimSpace(input.Name),
		Description: input.Description,
	}
	if list.Name == "" {
		return nil, fmt.Errorf("词表名称不能为空")
	}
	if err := s.WordlistRepo.CreateList(list); err != nil {
		return nil, err
	}
	if len(input.Words) > 0 {
		if _, err := s.appendRows(list.ID, input.Words); err != nil {
			return nil, err
		}
	}
	return list, nil
}

func (s *WordlistService) appendRows(listID uint, rows []util.WordRow) (int, error) {
	words := make([]model.Word, 0, len(rows))
	for _, r := range rows {
		term := strings.TrimSpace(r.Term)
		if term == "" {
			continue
		}
		words = append(words, model.Word{
			ListID:     listID,
			Term:       term,
			Definition: strings.TrimSpace(r.Definition),
			Example:    strings.TrimSpace(r.Example),
		})
	}
	if len(words) == 0 {
		return 0, nil
	}
	if err := s.WordlistRepo.CreateWords(words); err != nil {
		return 0, err
	}
	return len(words), nil
}

// ListByOwner 当前用户的全部词表
func (s *WordlistService) ListByOwner(ownerID uint) ([]model.WordList, error) {
	return s.WordlistRepo.ListByOwner(ownerID)
}

// GetList 词表详情，只允许所有者访问
func (s *WordlistService) GetList(listID, userID uint) (*model.WordList, error) {
	list, err := s.WordlistRepo.FindListByID(listID)
	if err != nil {
		return nil, util.ErrWordlistNotFound
	}
	if list.OwnerID != userID {
		return nil, util.ErrWordlistNotFound
	}
	return list, nil
}

// ListWords 分页取词表里的单词
func (s *WordlistService) ListWords(listID, userID uint, page, pageSize int) ([]model.Word, int64, error) {
	if _, err := s.GetList(listID, userID); err != nil {
		return nil, 0, err
	}
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 200 {
		pageSize = 50
	}
	return s.WordlistRepo.ListWordsPaged(listID, page, pageSize)
}

// ImportResult 文件导入的结果摘要
type ImportResult struct {
	Imported int            `json:"imported"`
	Skipped  int            `json:"skipped"`
	Preview  []util.WordRow `json:"preview"`
}

const importPreviewSize = 5

// ImportFile 从 CSV/JSON 文件导入单词，返回导入摘要和前几行预览
func (s *WordlistService) ImportFile(listID, userID uint, data []byte, filename, contentType string) (*ImportResult, error) {
	if _, err := s.GetList(listID, userID); err != nil {
		return nil, err
	}
	rows, err := util.SniffAndParse(data, filename, contentType)
	if err != nil {
		return nil, fmt.Errorf("文件解析失败: %w", err)
	}

	imported, err := s.appendRows(listID, rows)
	if err != nil {
		return nil, err
	}

	preview := rows
	if len(preview) > importPreviewSize {
		preview = preview[:importPreviewSize]
	}
	return &ImportResult{
		Imported: imported,
		Skipped:  len(rows) - imported,
		Preview:  preview,
	}, nil
}

// PreviewFile 只解析不入库，供前端导入前确认
func (s *WordlistService) PreviewFile(data []byte, filename, contentType string) ([]util.WordRow, error) {
	rows, err := util.SniffAndParse(data, filename, contentType)
	if err != nil {
		return nil, fmt.Errorf("文件解析失败: %w", err)
	}
	return rows, nil
}

// AppendWords 向词表追加单词（图片识别确认后的入库入口）
func (s *WordlistService) AppendWords(listID, userID uint, rows []util.WordRow) (int, error) {
	if _, err := s.GetList(listID, userID); err != nil {
		return 0, err
	}
	return s.appendRows(listID, rows)
}
