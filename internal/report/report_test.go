package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWriter_Finding(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, false)

	w.Finding(Finding{
		File:    "bot.py",
		Line:    14,
		Message: "Do not use 'tree.sync' in your 'on_ready' function (Line 14)",
		Reason:  "- Syncing has a low ratelimit and can easily ratelimit your bot!\n- Use a message command to sync",
	})

	want := "bot.py#14\n" +
		"Do not use 'tree.sync' in your 'on_ready' function (Line 14)\n" +
		"- Syncing has a low ratelimit and can easily ratelimit your bot!\n" +
		"- Use a message command to sync\n" +
		"\n" +
		strings.Repeat("---", 25) + "\n" +
		"\n"
	assert.Equal(t, want, buf.String())
}

func TestWriter_Summary(t *testing.T) {
	t.Run("clean", func(t *testing.T) {
		var buf bytes.Buffer
		NewWriter(&buf, false).Summary(3, 0)
		assert.Equal(t, "checked 3 file(s): no findings\n", buf.String())
	})

	t.Run("with findings", func(t *testing.T) {
		var buf bytes.Buffer
		NewWriter(&buf, false).Summary(2, 7)
		assert.Equal(t, "checked 2 file(s): 7 finding(s)\n", buf.String())
	})
}

func TestWriter_Colored(t *testing.T) {
	// The color package strips escapes when stdout is not a terminal, so
	// only assert the text survives.
	var buf bytes.Buffer
	w := NewWriter(&buf, true)
	w.Finding(Finding{File: "a.py", Line: 3, Message: "msg", Reason: "- r"})
	out := buf.String()
	assert.Contains(t, out, "a.py#3")
	assert.Contains(t, out, "msg")
	assert.Contains(t, out, "- r")
}
