package config

import (
	"bytes"
	"strings"
	"testing"
)

func TestExitfWritesMessageAndExitsWithCode1(t *testing.T) {
	var buf bytes.Buffer
	code := -1
	prevStderr, prevExit := exitStderr, exitFunc
	exitStderr = &buf
	exitFunc = func(c int) { code = c }
	t.Cleanup(func() {
		exitStderr = prevStderr
		exitFunc = prevExit
	})

	Exitf("fatal: %s", "something broke")

	if code != 1 {
		t.Fatalf("exit code = %d, want 1", code)
	}
	if !strings.Contains(buf.String(), "fatal: something broke") {
		t.Fatalf("stderr = %q, want message", buf.String())
	}
}
