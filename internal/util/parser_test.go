package util

import "testing"

func TestParseWordsCSV(t *testing.T) {
	data := []byte("Term,Definition,Example\napple,苹果,I ate an apple.\nbanana,香蕉,\n,空行忽略,\n")
	rows, err := ParseWordsCSV(data)
	if err != nil {
		t.Fatalf("ParseWordsCSV: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows got %d: %+v", len(rows), rows)
	}
	if rows[0].Term != "apple" || rows[0].Definition != "苹果" || rows[0].Example != "I ate an apple." {
		t.Fatalf("bad first row: %+v", rows[0])
	}
	if rows[1].Term != "banana" || rows[1].Example != "" {
		t.Fatalf("bad second row: %+v", rows[1])
	}
}

func TestParseWordsCSVAliasHeaders(t *testing.T) {
	data := []byte("word,meaning,sentence\ncat,猫,The cat sleeps.\n")
	rows, err := ParseWordsCSV(data)
	if err != nil {
		t.Fatalf("ParseWordsCSV: %v", err)
	}
	if len(rows) != 1 || rows[0].Term != "cat" || rows[0].Definition != "猫" || rows[0].Example != "The cat sleeps." {
		t.Fatalf("alias headers not honored: %+v", rows)
	}
}

func TestParseWordsCSVRaggedRows(t *testing.T) {
	// 缺列的行不报错，缺的字段留空
	data := []byte("term,definition,example\ndog,狗\n")
	rows, err := ParseWordsCSV(data)
	if err != nil {
		t.Fatalf("ParseWordsCSV: %v", err)
	}
	if len(rows) != 1 || rows[0].Term != "dog" || rows[0].Example != "" {
		t.Fatalf("ragged row mishandled: %+v", rows)
	}
}

func TestParseWordsJSON(t *testing.T) {
	data := []byte(`[
		{"term": "apple", "definition": "苹果", "example": "I ate an apple."},
		{"word": "banana", "meaning": "香蕉", "sentence": "Yellow."},
		{"definition": "没有单词，忽略"}
	]`)
	rows, err := ParseWordsJSON(data)
	if err != nil {
		t.Fatalf("ParseWordsJSON: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows got %d: %+v", len(rows), rows)
	}
	if rows[1].Term != "banana" || rows[1].Definition != "香蕉" || rows[1].Example != "Yellow." {
		t.Fatalf("alias fields not honored: %+v", rows[1])
	}
}

func TestSniffAndParse(t *testing.T) {
	jsonData := []byte(`[{"term": "apple", "definition": "苹果"}]`)
	csvData := []byte("term,definition\napple,苹果\n")

	cases := []struct {
		name        string
		data        []byte
		filename    string
		contentType string
	}{
		{"json by extension", jsonData, "words.JSON", ""},
		{"csv by extension", csvData, "words.csv", ""},
		{"json by content type", jsonData, "upload.bin", MimeJSON},
		{"csv by content type with charset", csvData, "upload.bin", MimeCSV + "; charset=utf-8"},
		{"octet-stream falls back to extension", jsonData, "words.json", MimeOctetStream},
	}
	for _, tc := range cases {
		rows, err := SniffAndParse(tc.data, tc.filename, tc.contentType)
		if err != nil || len(rows) != 1 {
			t.Fatalf("%s: sniff failed: %v %+v", tc.name, err, rows)
		}
		if rows[0].Term != "apple" {
			t.Fatalf("%s: unexpected row %+v", tc.name, rows[0])
		}
	}
}
