package output

import (
	"bytes"
	"strings"
	"testing"
)

func TestProgressBar_NonTTYEmitsOnlyCompletion(t *testing.T) {
	var buf bytes.Buffer

	p := NewProgress(3, "Computing itemset supports...")
	p.SetWriter(&buf)

	p.Increment()
	p.Increment()
	if buf.Len() != 0 {
		t.Errorf("non-TTY writer should stay silent before completion, got %q", buf.String())
	}

	p.Increment()
	out := buf.String()
	if !strings.Contains(out, "100%") {
		t.Errorf("completion output missing 100%%: %q", out)
	}
	if !strings.Contains(out, "Computing itemset supports...") {
		t.Errorf("completion output missing description: %q", out)
	}
	if strings.Count(out, "\n") != 1 {
		t.Errorf("expected exactly one line of output, got %q", out)
	}
}

func TestProgressBar_FinishDoesNotDuplicate(t *testing.T) {
	var buf bytes.Buffer

	p := NewProgress(2, "loading")
	p.SetWriter(&buf)

	p.Increment()
	p.Increment()
	p.Finish()

	if strings.Count(buf.String(), "100%") != 1 {
		t.Errorf("Finish() after completion should not re-emit the bar, got %q", buf.String())
	}
}

func TestProgressBar_IncrementClampsAtTotal(t *testing.T) {
	var buf bytes.Buffer

	p := NewProgress(1, "x")
	p.SetWriter(&buf)

	p.Increment()
	p.Increment() // past total

	if strings.Count(buf.String(), "100%") != 2 {
		// Each post-completion render stays clamped at 100%.
		t.Errorf("unexpected output: %q", buf.String())
	}
}
