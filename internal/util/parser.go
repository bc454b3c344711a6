package util

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"io"
	"strings"
)

// WordRow 导入文件中的一行单词数据
type WordRow struct {
	Term       string `json:"term"`
	Definition string `json:"definition"`
	Example    string `json:"example"`
}

// SniffAndParse 按声明的 Content-Type 选择解析器；octet-stream
// 或未声明时回落到文件名后缀，默认按 CSV 处理
func SniffAndParse(data []byte, filename, contentType string) ([]WordRow, error) {
	mediaType := contentType
	if i := strings.IndexByte(mediaType, ';'); i >= 0 {
		mediaType = strings.TrimSpace(mediaType[:i])
	}
	switch mediaType {
	case MimeJSON:
		return ParseWordsJSON(data)
	case MimeCSV:
		return ParseWordsCSV(data)
	case MimeOctetStream, "":
		// 类型不明确，按后缀判断
	}
	if strings.HasSuffix(strings.ToLower(filename), ".json") {
		return ParseWordsJSON(data)
	}
	return ParseWordsCSV(data)
}

// ParseWordsJSON 解析 JSON 数组，字段别名 term/word、definition/meaning、example/sentence
func ParseWordsJSON(data []byte) ([]WordRow, error) {
	var items []map[string]interface{}
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, err
	}

	out := make([]WordRow, 0, len(items))
	for _, it := range items {
		term := stringField(it, "term", "word")
		if term == "" {
			continue
		}
		out = append(out, WordRow{
			Term:       term,
			Definition: stringField(it, "definition", "meaning"),
			Example:    stringField(it, "example", "sentence"),
		})
	}
	return out, nil
}

// ParseWordsCSV 解析带表头的 CSV，列名大小写不敏感
func ParseWordsCSV(data []byte) ([]WordRow, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, err
	}

	index := make(map[string]int, len(header))
	for i, col := range header {
		index[strings.ToLower(strings.TrimSpace(col))] = i
	}

	var out []WordRow
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		term := columnValue(record, index, "term", "word")
		if term == "" {
			continue
		}
		out = append(out, WordRow{
			Term:       term,
			Definition: columnValue(record, index, "definition", "meaning"),
			Example:    columnValue(record, index, "example", "sentence"),
		})
	}
	return out, nil
}

func stringField(item map[string]interface{}, keys ...string) string {
	for _, k := range keys {
		if v, ok := item[k].(string); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}

func columnValue(record []string, index map[string]int, keys ...string) string {
	for _, k := range keys {
		if i, ok := index[k]; ok && i < len(record) {
			if v := strings.TrimSpace(record[i]); v != "" {
				return v
			}
		}
	}
	return ""
}
