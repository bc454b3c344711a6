package repository

import (
	"word_duel_backend/internal/model"

	"gorm.io/gorm"
)

type WordlistRepository struct {
	DB *gorm.DB
}

func NewWordlistRepository(db *gorm.DB) *WordlistRepository {
	return &WordlistRepository{DB: db}
}

func (r *WordlistRepository) CreateList(list *model.WordList) error {
	return r.DB.Create(list).Error
}

func (r *WordlistRepository) FindListByID(id uint) (*model.WordList, error) {
	var list model.WordList
	err := r.DB.First(&list, id).Error
	if err != nil {
		return nil, err
	}
	return &list, nil
}

func (r *WordlistRepository) ListByOwner(ownerID uint) ([]model.WordList, error) {
	var lists []model.WordList
	err := r.DB.Where("owner_id = ?", ownerID).Find(&lists).Error
	return lists, err
}

// CreateWords 批量写入词条，空切片直接返回
func (r *WordlistRepository) CreateWords(words []model.Word) error {
	if len(words) == 0 {
		return nil
	}
	return r.DB.Create(&words).Error
}

func (r *WordlistRepository) FindWordByID(id uint) (*model.Word, error) {
	var word model.Word
	err := r.DB.First(&word, id).Error
	if err != nil {
		return nil, err
	}
	return &word, nil
}

// ListWords 按词表查询词条；poolIDs 非 nil 时限制在练习池内
func (r *WordlistRepository) ListWords(listID uint, poolIDs []uint) ([]model.Word, error) {
	var words []model.Word
	db := r.DB.Where("list_id = ?", listID)
	if poolIDs != nil {
		db = db.Where("id IN ?", poolIDs)
	}
	err := db.Find(&words).Error
	return words, err
}

func (r *WordlistRepository) ListWordsPaged(listID uint, page, pageSize int) ([]model.Word, int64, error) {
	var total int64
	if err := r.DB.Model(&model.Word{}).Where("list_id = ?", listID).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var words []model.Word
	err := r.DB.Where("list_id = ?", listID).
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&words).Error
	return words, total, err
}

func (r *WordlistRepository) FindWordsByIDs(ids []uint) ([]model.Word, error) {
	var words []model.Word
	if len(ids) == 0 {
		return words, nil
	}
	err := r.DB.Where("id IN ?", ids).Find(&words).Error
	return words, err
}

// WordIDs 取词表下全部词条 ID，用于练习池抽样
func (r *WordlistRepository) WordIDs(listID uint) ([]uint, error) {
	var ids []uint
	err := r.DB.Model(&model.Word{}).Where("list_id = ?", listID).Pluck("id", &ids).Error
	return ids, err
}
