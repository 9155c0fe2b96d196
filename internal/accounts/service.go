package accounts

import (
	"strings"

	"github.com/cleared-dev/fundreport/internal/model"
)

// Service provides lookup over the lines of one trial balance after the
// account hierarchy has been resolved.
type Service struct {
	lines     []model.LedgerLine
	byCode    map[string]int
	delimiter string
}

// NewService marks parent lines and indexes lines by account code. When a
// code repeats, Get returns its first occurrence.
func NewService(lines []model.LedgerLine, delimiter string) *Service {
	if delimiter == "" {
		delimiter = DefaultDelimiter
	}
	marked := MarkParents(lines, delimiter)
	byCode := make(map[string]int, len(marked))
	for i, l := range marked {
		code := strings.TrimSpace(l.AccountCode)
		if code == "" {
			continue
		}
		if _, dup := byCode[code]; !dup {
			byCode[code] = i
		}
	}
	return &Service{lines: marked, byCode: byCode, delimiter: delimiter}
}

// All returns every line in input order.
func (s *Service) All() []model.LedgerLine {
	return s.lines
}

// Get returns the first line with the given account code.
func (s *Service) Get(code string) (model.LedgerLine, bool) {
	i, ok := s.byCode[strings.TrimSpace(code)]
	if !ok {
		return model.LedgerLine{}, false
	}
	return s.lines[i], true
}

// Parent returns the nearest line above code in the hierarchy. Levels
// missing from the trial balance are skipped, so the parent of "1.1.1" is
// "1" when "1.1" is absent.
func (s *Service) Parent(code string) (model.LedgerLine, bool) {
	code = strings.TrimSpace(code)
	for i := len(code) - 1; i > 0; i-- {
		if !strings.HasPrefix(code[i:], s.delimiter) {
			continue
		}
		if l, ok := s.Get(code[:i]); ok {
			return l, true
		}
	}
	return model.LedgerLine{}, false
}

// first reports whether lines[i] is the first occurrence of its code.
func (s *Service) first(i int) bool {
	j, ok := s.byCode[strings.TrimSpace(s.lines[i].AccountCode)]
	return ok && j == i
}
