package service

import "testing"

func TestParseVerdicts(t *testing.T) {
	plain := `[{"term": "ability", "is_match": true, "score": 0.9, "verdict": "correct", "reason": "同义", "missing_keywords": []}]`
	got, err := parseVerdicts(plain)
	if err != nil {
		t.Fatalf("plain array: %v", err)
	}
	if len(got) != 1 || got[0].Verdict != "correct" || !got[0].IsMatch || got[0].Score != 0.9 {
		t.Fatalf("bad verdicts: %+v", got)
	}

	// 围栏包裹
	fenced := "```json\n" + plain + "\n```"
	got, err = parseVerdicts(fenced)
	if err != nil {
		t.Fatalf("fenced array: %v", err)
	}
	if len(got) != 1 || got[0].Term != "ability" {
		t.Fatalf("bad fenced verdicts: %+v", got)
	}

	// 夹带说明文字，正则抢救
	chatty := "好的，以下是裁决结果：\n" + plain + "\n希望有帮助。"
	got, err = parseVerdicts(chatty)
	if err != nil {
		t.Fatalf("chatty array: %v", err)
	}
	if len(got) != 1 || got[0].Reason != "同义" {
		t.Fatalf("bad chatty verdicts: %+v", got)
	}

	// 空数组视为失败
	if _, err := parseVerdicts("[]"); err == nil {
		t.Fatal("empty array should error")
	}

	// 完全不是 JSON
	if _, err := parseVerdicts("抱歉，我无法判断。"); err == nil {
		t.Fatal("non-JSON should error")
	}
}

func TestParseWordRows(t *testing.T) {
	content := "```json\n" + `[{"term": "apple", "definition": "苹果", "example": ""}, {"term": "  ", "definition": "空词忽略"}]` + "\n```"
	rows, err := parseWordRows(content)
	if err != nil {
		t.Fatalf("parseWordRows: %v", err)
	}
	if len(rows) != 1 || rows[0].Term != "apple" || rows[0].Definition != "苹果" {
		t.Fatalf("bad rows: %+v", rows)
	}
}
