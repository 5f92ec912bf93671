package rules

import (
	"fmt"
	"strings"

	"github.com/mkears/pyscout/internal/inspect"
	"github.com/mkears/pyscout/internal/report"
)

// CheckSource applies the catalogue to one parsed unit. Function rules run
// first in catalogue order, then line rules over the raw source. file only
// labels the findings.
func CheckSource(file, src string, sess *inspect.Session, cat *Catalog) []report.Finding {
	findings := checkFunctions(file, sess, cat)
	return append(findings, checkLines(file, src, cat)...)
}

func checkFunctions(file string, sess *inspect.Session, cat *Catalog) []report.Finding {
	var findings []report.Finding
	for _, rule := range cat.FunctionRules {
		q, err := inspect.FromRef(inspect.Ref{Function: rule.Function}, false)
		if err != nil {
			continue
		}

		// A function the file never defines has nothing to check.
		m, found := sess.First(q, inspect.DefaultOptions())
		if !found {
			continue
		}
		line := m.Line + 1

		for _, pat := range rule.Forbid {
			if !strings.Contains(m.Text, pat) {
				continue
			}
			findings = append(findings, report.Finding{
				File:    file,
				Line:    line,
				Message: fmt.Sprintf("Do not use '%s' in your '%s' function (Line %d)", pat, rule.Function, line),
				Reason:  cat.Reason(pat),
			})
		}

		for _, pat := range rule.Require {
			if strings.Contains(m.Text, pat) {
				continue
			}
			findings = append(findings, report.Finding{
				File:    file,
				Line:    line,
				Message: fmt.Sprintf("Did you forget a '%s' in your '%s' function (Line %d)", pat, rule.Function, line),
				Reason:  cat.Reason(pat),
			})
		}
	}
	return findings
}

func checkLines(file, src string, cat *Catalog) []report.Finding {
	var findings []report.Finding
	lines := strings.Split(src, "\n")
	for i, line := range lines {
		num := i + 1
		for _, rule := range cat.LineRules {
			if !strings.Contains(line, rule.Pattern) {
				continue
			}

			jump := num
			if rule.LoopHint && i > 0 && strings.HasPrefix(strings.TrimSpace(lines[i-1]), "for ") {
				jump = num - 1
			}

			findings = append(findings, report.Finding{
				File:    file,
				Line:    jump,
				Message: fmt.Sprintf("Do not use '%s' in this context! (Line %d)", rule.Pattern, num),
				Reason:  cat.Reason(rule.Pattern),
			})
		}
	}
	return findings
}
