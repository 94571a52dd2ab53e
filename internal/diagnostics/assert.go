package diagnostics

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// assertPattern matches a source comment of the form
// "ASSERT: error E1234 at line 42", wherever it appears on a line.
var assertPattern = regexp.MustCompile(`ASSERT:\s*error\s+(\S+)\s+at\s+line\s+(\d+)`)

type assertion struct {
	code Code
	line int
}

// ApplyAssertions scans source for ASSERT comments and reconciles them
// against every diagnostic collected so far: a diagnostic whose code
// and line match an assertion is suppressed rather than reported, the
// same way a golden test silences an expected failure. An assertion
// that matches nothing is itself a failure, since the script claimed
// an error that never fired; it is reported through the returned
// error.
func (l *Logger) ApplyAssertions(source string) error {
	var assertions []assertion
	for _, line := range strings.Split(source, "\n") {
		m := assertPattern.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		lineNum, err := strconv.Atoi(m[2])
		if err != nil {
			continue
		}
		assertions = append(assertions, assertion{code: Code(m[1]), line: lineNum})
	}
	if len(assertions) == 0 {
		return nil
	}

	matched := make([]bool, len(assertions))
	remaining := l.diags[:0:0]
	for _, d := range l.diags {
		hit := -1
		for i, a := range assertions {
			if matched[i] {
				continue
			}
			if a.code == d.Code && a.line == d.Range.Start.Line {
				hit = i
				break
			}
		}
		if hit >= 0 {
			matched[hit] = true
			continue
		}
		remaining = append(remaining, d)
	}
	l.diags = remaining

	for i, ok := range matched {
		if !ok {
			return fmt.Errorf("unmatched assertion: no %s diagnostic at line %d", assertions[i].code, assertions[i].line)
		}
	}
	return nil
}
