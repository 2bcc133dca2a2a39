package session

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/dkotenko/labelforge/internal/upc"
)

// Entry is one candidate code from the uploaded list. Valid and Error are
// fixed at parse time and only revised when rendering itself fails; Artifact
// is non-nil only while Valid is true.
type Entry struct {
	Number   string        `json:"number"`
	Valid    bool          `json:"valid"`
	Error    string        `json:"error,omitempty"`
	Artifact *upc.Artifact `json:"-"`
}

// ParseEntries reads a plaintext code list: one candidate per line, any
// line-ending convention, surrounding whitespace trimmed, blank lines
// skipped. Every surviving line becomes an Entry, valid or not.
func ParseEntries(r io.Reader) ([]Entry, error) {
	var entries []Entry

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		ok, reason := upc.Validate(line)
		entries = append(entries, Entry{
			Number: line,
			Valid:  ok,
			Error:  reason,
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read code list: %w", err)
	}

	return entries, nil
}

// CountValid returns the number of valid entries.
func CountValid(entries []Entry) int {
	n := 0
	for _, e := range entries {
		if e.Valid {
			n++
		}
	}
	return n
}

// CountRendered returns the number of valid entries holding an artifact.
func CountRendered(entries []Entry) int {
	n := 0
	for _, e := range entries {
		if e.Valid && e.Artifact != nil {
			n++
		}
	}
	return n
}
