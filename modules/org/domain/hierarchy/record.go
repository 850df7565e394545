package hierarchy

import "strings"

// Record is one usable input line: "Name, Title[, Manager]".
type Record struct {
	// Line is the 1-based line number in the submitted text.
	Line    int
	Name    string
	Title   string
	Manager string
}

func (r Record) HasManager() bool {
	return r.Manager != ""
}

// ParseLine tokenizes a single line. ok is false when the line does not carry
// a non-empty name and title; such lines are dropped by every caller.
func ParseLine(line string) (Record, bool) {
	parts := strings.Split(line, ",")
	if len(parts) < 2 {
		return Record{}, false
	}
	name := strings.TrimSpace(parts[0])
	title := strings.TrimSpace(parts[1])
	if name == "" || title == "" {
		return Record{}, false
	}
	rec := Record{Name: name, Title: title}
	if len(parts) >= 3 {
		rec.Manager = strings.TrimSpace(parts[2])
	}
	return rec, true
}

// Scan splits text into usable records and the line numbers of dropped,
// non-blank lines.
func Scan(text string) (records []Record, dropped []int) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}
	for i, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		rec, ok := ParseLine(line)
		if !ok {
			dropped = append(dropped, i+1)
			continue
		}
		rec.Line = i + 1
		records = append(records, rec)
	}
	return records, dropped
}
