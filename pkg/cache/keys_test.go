package cache

import (
	"strings"
	"testing"
)

func TestDeriveKey(t *testing.T) {
	fileId := "7b5a1c1e-43a4-4b9e-9a8c-2f1e5d3c6b7a"

	tests := []struct {
		name      string
		questionA string
		questionB string
		wantSame  bool
	}{
		{
			name:      "identical questions collide",
			questionA: "What is the total revenue?",
			questionB: "What is the total revenue?",
			wantSame:  true,
		},
		{
			name:      "case variants collide",
			questionA: "What is the total revenue?",
			questionB: "WHAT IS THE TOTAL REVENUE?",
			wantSame:  true,
		},
		{
			name:      "surrounding whitespace collides",
			questionA: "What is the total revenue?",
			questionB: "  What is the total revenue?  \n",
			wantSame:  true,
		},
		{
			name:      "different questions do not collide",
			questionA: "What is the total revenue?",
			questionB: "What is the average revenue?",
			wantSame:  false,
		},
		{
			name:      "internal whitespace is significant",
			questionA: "What is  the total revenue?",
			questionB: "What is the total revenue?",
			wantSame:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			keyA := DeriveKey(fileId, tt.questionA)
			keyB := DeriveKey(fileId, tt.questionB)

			if (keyA == keyB) != tt.wantSame {
				t.Errorf("DeriveKey(%q) == DeriveKey(%q) = %v, want %v", tt.questionA, tt.questionB, keyA == keyB, tt.wantSame)
			}
		})
	}
}

func TestDeriveKeySeparatesFiles(t *testing.T) {
	question := "How many rows?"

	keyA := DeriveKey("file-a", question)
	keyB := DeriveKey("file-b", question)

	if keyA == keyB {
		t.Errorf("same question against different files produced one key: %s", keyA)
	}
}

func TestDeriveKeyFormat(t *testing.T) {
	key := DeriveKey("file-a", "anything")

	if !strings.HasPrefix(key, "query:") {
		t.Errorf("key %q missing namespace prefix", key)
	}
	// md5 hex digest after the prefix
	if len(key) != len("query:")+32 {
		t.Errorf("key %q has unexpected length %d", key, len(key))
	}
}
