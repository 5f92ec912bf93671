// Package report renders checker findings as advisory text blocks: a
// file#line jump link, the message, the reasoning, then a dashed
// separator.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// Finding is one advisory produced by the checker. Line is 1-based and is
// where the jump link points; when a loop hint applies it names the for
// statement above the flagged line, while the message keeps the flagged
// line itself.
type Finding struct {
	File    string `json:"file"`
	Line    int    `json:"line"`
	Message string `json:"message"`
	Reason  string `json:"reason"`
}

// separator closes every finding block.
var separator = strings.Repeat("---", 25)

var (
	jumpStyle    = color.New(color.FgCyan, color.Bold)
	messageStyle = color.New(color.FgYellow)
	cleanStyle   = color.New(color.FgGreen, color.Bold)
	issueStyle   = color.New(color.FgRed, color.Bold)
)

// Writer prints findings to one destination. Color is an explicit choice
// so piped output and golden tests stay byte-stable.
type Writer struct {
	out     io.Writer
	colored bool
}

// NewWriter returns a Writer printing to out.
func NewWriter(out io.Writer, colored bool) *Writer {
	return &Writer{out: out, colored: colored}
}

// Finding prints one finding block.
func (w *Writer) Finding(f Finding) {
	jump := fmt.Sprintf("%s#%d", f.File, f.Line)
	msg := f.Message
	if w.colored {
		jump = jumpStyle.Sprint(jump)
		msg = messageStyle.Sprint(msg)
	}
	fmt.Fprintln(w.out, jump)
	fmt.Fprintln(w.out, msg)
	fmt.Fprintln(w.out, f.Reason)
	fmt.Fprintln(w.out)
	fmt.Fprintln(w.out, separator)
	fmt.Fprintln(w.out)
}

// Summary prints the run total after all findings.
func (w *Writer) Summary(files, findings int) {
	count := fmt.Sprintf("%d finding(s)", findings)
	if w.colored {
		if findings == 0 {
			count = cleanStyle.Sprint("no findings")
		} else {
			count = issueStyle.Sprint(count)
		}
	} else if findings == 0 {
		count = "no findings"
	}
	fmt.Fprintf(w.out, "checked %d file(s): %s\n", files, count)
}
