package util

import (
	"bytes"
	"strings"
	"testing"
)

// PNG 魔数开头的最小字节序列
var pngHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0}

func TestValidateMimeType(t *testing.T) {
	mimeType, err := ValidateMimeType(bytes.NewReader(pngHeader), []string{MimeImage})
	if err != nil {
		t.Fatalf("png header should pass image check: %v", err)
	}
	if !strings.HasPrefix(mimeType, "image/") {
		t.Fatalf("detected type %q, want image/*", mimeType)
	}

	// 声明是什么不重要，按内容嗅探文本不算图片
	if _, err := ValidateMimeType(strings.NewReader("term,definition\napple,苹果\n"), []string{MimeImage}); err == nil {
		t.Fatal("plain text must not pass the image check")
	}
}

func TestIsImage(t *testing.T) {
	if !IsImage("image/png") || IsImage("application/pdf") {
		t.Fatal("IsImage prefix check broken")
	}
}
