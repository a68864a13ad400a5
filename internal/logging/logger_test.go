package logging

import (
	"bytes"
	"strings"
	"testing"

	clog "github.com/charmbracelet/log"
)

func TestLoggingHelpers_WriteToBuffer(t *testing.T) {
	var buf bytes.Buffer
	prev := L
	L = clog.New(&buf)
	L.SetLevel(clog.DebugLevel)
	defer func() { L = prev }()

	Debugf("drag %s", "ignored")
	Infof("plugin %d", 4)
	Warnf("stale handle")
	Errorf("capture %v", "leaked")

	out := buf.String()
	for _, want := range []string{"drag ignored", "plugin 4", "stale handle", "capture leaked"} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in output; got: %s", want, out)
		}
	}
}

func TestSetVerbose(t *testing.T) {
	var buf bytes.Buffer
	prev := L
	L = clog.New(&buf)
	defer func() { L = prev }()

	SetVerbose(true)
	if L.GetLevel() != clog.DebugLevel {
		t.Errorf("level = %v, want debug", L.GetLevel())
	}
	SetVerbose(false)
	if L.GetLevel() != clog.WarnLevel {
		t.Errorf("level = %v, want warn", L.GetLevel())
	}

	Debugf("hidden")
	if strings.Contains(buf.String(), "hidden") {
		t.Errorf("debug message written at warn level: %s", buf.String())
	}
}
