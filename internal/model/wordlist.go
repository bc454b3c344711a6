package model

// WordList 单词本，单词归属于唯一的单词本
// swagger:model WordList
type WordList struct {
	BaseModel
	OwnerID     uint   `gorm:"index;not null" json:"ownerId"`
	Name        string `gorm:"size:100;not null" json:"name"`
	Description string `gorm:"size:255" json:"description"`
}

func (WordList) TableName() string {
	return "wordlists"
}

// Word 词条：term 为源语言单词，definition 为目标语言释义
// swagger:model Word
type Word struct {
	BaseModel
	ListID     uint   `gorm:"index;not null" json:"listId"`
	Term       string `gorm:"size:100;index;not null" json:"term"`
	Definition string `gorm:"size:500" json:"definition"`
	Example    string `gorm:"size:500" json:"example"`
}

func (Word) TableName() string {
	return "words"
}
