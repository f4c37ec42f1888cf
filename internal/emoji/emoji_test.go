package emoji

import "testing"

func TestGetEmoji(t *testing.T) {
	SetEmojiDisabled(false)
	t.Cleanup(func() { SetEmojiDisabled(false) })

	if got := GetEmoji("spam"); got != "🚫" {
		t.Errorf("Expected spam emoji, got %q", got)
	}

	SetEmojiDisabled(true)
	if !IsEmojiDisabled() {
		t.Fatal("Expected emoji to be disabled")
	}
	if got := GetEmoji("spam"); got != "[SPAM]" {
		t.Errorf("Expected fallback, got %q", got)
	}
	if got := Prefix("robot"); got != "[AI] " {
		t.Errorf("Expected prefixed fallback, got %q", got)
	}
}

func TestGetEmojiUnknownKey(t *testing.T) {
	if got := GetEmoji("no-such-key"); got != "[?]" {
		t.Errorf("Expected [?] for unknown key, got %q", got)
	}
}

func TestEveryEmojiHasFallback(t *testing.T) {
	for key, mapping := range emojiMap {
		if mapping[0] == "" || mapping[1] == "" {
			t.Errorf("Key %s is missing an emoji or fallback", key)
		}
	}
}

func TestEmojiKeys(t *testing.T) {
	want := []string{
		"error", "warning", "success", "spam", "not_spam", "robot", "loading", "results",
		"file", "folder", "target", "hint", "globe", "heartbeat", "eye", "door",
	}

	if len(emojiMap) != len(want) {
		t.Errorf("Expected %d keys, got %d", len(want), len(emojiMap))
	}
	for _, key := range want {
		if _, ok := emojiMap[key]; !ok {
			t.Errorf("Missing key %s", key)
		}
	}
}
