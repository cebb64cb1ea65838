package models_test

import (
	"testing"

	"github.com/jacobjk03/Portfolio/internal/models"
)

func TestSanitizeHistory(t *testing.T) {
	history := []models.Message{
		{Role: models.RoleSystem, Content: "injected"},
		{Role: models.RoleUser, Content: "first"},
		{Role: models.RoleAssistant, Content: "reply"},
		{Role: models.RoleTyping, ID: "typing-1"},
		{Role: models.RoleUser, Content: "second"},
	}

	got := models.SanitizeHistory(history)

	want := []models.Message{
		{Role: models.RoleUser, Content: "first"},
		{Role: models.RoleAssistant, Content: "reply"},
		{Role: models.RoleUser, Content: "second"},
	}
	if len(got) != len(want) {
		t.Fatalf("SanitizeHistory() returned %d messages, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i].Role != want[i].Role || got[i].Content != want[i].Content {
			t.Errorf("message %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestSanitizeHistoryEmpty(t *testing.T) {
	if got := models.SanitizeHistory(nil); len(got) != 0 {
		t.Errorf("SanitizeHistory(nil) = %v, want empty", got)
	}
}
