package logger

import "testing"

func TestNewLogger(t *testing.T) {
	for _, env := range []string{"prod", "local", "dev", "docker"} {
		if _, err := NewLogger(env, ""); err != nil {
			t.Errorf("NewLogger(%q): %v", env, err)
		}
	}

	if _, err := NewLogger("staging", ""); err == nil {
		t.Error("unknown environment should error")
	}
	if _, err := NewLogger("prod", "verbose"); err == nil {
		t.Error("invalid level should error")
	}
	if _, err := NewLogger("prod", "warn"); err != nil {
		t.Errorf("level override: %v", err)
	}
}
