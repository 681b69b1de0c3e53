package export

import (
	"bufio"
	"strings"

	"github.com/codebuildervaibhav/meeting-minutes/internal/types"
)

// Headings returns the level-two section headings of a rendered document,
// in order
func Headings(markdown string) []string {
	var out []string
	sc := bufio.NewScanner(strings.NewReader(markdown))
	sc.Buffer(make([]byte, 0, 64*1024), len(markdown)+1)
	for sc.Scan() {
		if h, ok := strings.CutPrefix(sc.Text(), "## "); ok {
			out = append(out, strings.TrimSpace(h))
		}
	}
	return out
}

// ParseActionItems reads the action-item table back out of a rendered
// document, restoring each cell exactly as it was before encoding.
func ParseActionItems(markdown string) []types.ActionItem {
	var (
		items   []types.ActionItem
		inTable bool
		rows    int
	)

	sc := bufio.NewScanner(strings.NewReader(markdown))
	sc.Buffer(make([]byte, 0, 64*1024), len(markdown)+1)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())

		if strings.HasPrefix(line, "## ") {
			if inTable {
				break
			}
			inTable = strings.TrimSpace(line[3:]) == headingActionItems
			continue
		}
		if !inTable || !strings.HasPrefix(line, "|") {
			continue
		}

		rows++
		// header and separator
		if rows <= 2 {
			continue
		}

		cells := splitRow(line)
		if len(cells) != 3 {
			continue
		}
		items = append(items, types.ActionItem{
			Assignee: decodeCell(cells[0], unassigned),
			Task:     decodeCell(cells[1], ""),
			Deadline: decodeCell(cells[2], notSpecified),
		})
	}
	return items
}

// splitRow splits "| a | b \| c | d |" on unescaped pipes. Cells come back
// still encoded, minus the single space of padding on each side.
func splitRow(line string) []string {
	var (
		cells []string
		cur   strings.Builder
	)
	for i := 1; i < len(line); i++ {
		switch {
		case line[i] == '\\' && i+1 < len(line):
			cur.WriteByte(line[i])
			cur.WriteByte(line[i+1])
			i++
		case line[i] == '|':
			cells = append(cells, unpad(cur.String()))
			cur.Reset()
		default:
			cur.WriteByte(line[i])
		}
	}
	if rest := cur.String(); strings.TrimSpace(rest) != "" {
		cells = append(cells, unpad(rest))
	}
	return cells
}

func unpad(s string) string {
	s = strings.TrimPrefix(s, " ")
	return strings.TrimSuffix(s, " ")
}

// decodeCell reverses encodeCell. An unescaped placeholder reads back empty.
func decodeCell(s, placeholder string) string {
	if placeholder != "" && s == placeholder {
		return ""
	}

	var b strings.Builder
	for i := 0; i < len(s); i++ {
		switch {
		case s[i] == '\\' && i+1 < len(s):
			b.WriteByte(s[i+1])
			i++
		case strings.HasPrefix(s[i:], cellBreak):
			b.WriteByte('\n')
			i += len(cellBreak) - 1
		default:
			b.WriteByte(s[i])
		}
	}
	return b.String()
}
