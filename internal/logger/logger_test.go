package logger

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestLogger_VerboseGating(t *testing.T) {
	var buf bytes.Buffer
	verbose := false
	log := NewWithWriter("client", &callbackChecker{callback: func() bool { return verbose }}, &buf)

	log.Debug("hidden %d", 1)
	log.Info("hidden too")
	if buf.Len() != 0 {
		t.Fatalf("expected no output when not verbose, got %q", buf.String())
	}

	log.Warn("careful")
	log.Error("broken: %s", "yes")
	out := buf.String()
	if !strings.Contains(out, "WARN [client] careful") {
		t.Errorf("missing warn line in %q", out)
	}
	if !strings.Contains(out, "ERROR [client] broken: yes") {
		t.Errorf("missing error line in %q", out)
	}

	buf.Reset()
	verbose = true
	log.Debug("shown")
	if !strings.Contains(buf.String(), "DEBUG [client] shown") {
		t.Errorf("expected debug line, got %q", buf.String())
	}
}

func TestLogger_Fields(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter("", StaticVerbosity(true), &buf)

	log.ErrorWithFields("analysis failed", []Field{
		Error(errors.New("connection refused")),
		Status(502),
		Submission("abc"),
		Duration(1500 * time.Millisecond),
	})

	out := buf.String()
	want := "ERROR [main] analysis failed [error=connection refused status=502 submission=abc duration=1.5s]"
	if !strings.Contains(out, want) {
		t.Errorf("expected %q in %q", want, out)
	}
}

func TestLogger_PercentWithoutArgs(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter("ui", nil, &buf)
	log.Warn("score was 12%")
	if !strings.Contains(buf.String(), "score was 12%\n") {
		t.Errorf("message without args must be written verbatim, got %q", buf.String())
	}
}

func TestLogger_SetOutputSharedWithComponents(t *testing.T) {
	var first, second bytes.Buffer
	root := NewWithWriter("root", nil, &first)
	child := root.WithComponent("child")

	root.SetOutput(&second)
	child.Error("moved")

	if first.Len() != 0 {
		t.Errorf("expected nothing in the old writer, got %q", first.String())
	}
	if !strings.Contains(second.String(), "[child] moved") {
		t.Errorf("expected child output in new writer, got %q", second.String())
	}
}

func TestNop(t *testing.T) {
	log := Nop()
	log.Error("nothing")
	log.SetOutput(nil)
	log.Warn("still nothing")
}
