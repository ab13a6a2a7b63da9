package logger

import "testing"

func TestNewReturnsLogger(t *testing.T) {
	l := New("test")
	if l == nil {
		t.Fatal("nil logger")
	}
	// Must not panic on any level.
	l.Debugf("debug %d", 1)
	l.Debugw("debug", map[string]any{"k": "v"})
	l.Infof("info")
	l.Warnf("warn")
	l.Errorf("error")
}

func TestDevConsoleWriter(t *testing.T) {
	t.Setenv("APP_ENV", "dev")
	l := New("test")
	l.Infof("console output")
}
