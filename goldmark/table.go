package goldmark

import "strings"

// cellMark replaces every pipe the author wrote until tableRow turns it
// into a cell. It is a private-use rune, stripped from input first, so
// author-written HTML such as <td> is never taken for a delimiter.
const cellMark = "\uE000"

// groupTables turns runs of lines containing cell marks into HTML tables,
// one row per line. The table is set apart by blank lines so goldmark
// treats it as a raw HTML block.
func groupTables(text string) string {
	if !strings.Contains(text, cellMark) {
		return text
	}

	var out, rows []string
	flush := func() {
		if len(rows) == 0 {
			return
		}
		out = append(out, "", "<table>")
		out = append(out, rows...)
		out = append(out, "</table>", "")
		rows = nil
	}

	for _, line := range strings.Split(text, "\n") {
		if strings.Contains(line, cellMark) {
			rows = append(rows, tableRow(line))
			continue
		}
		flush()
		out = append(out, line)
	}
	flush()

	return strings.Join(out, "\n")
}

// tableRow converts a line of marked cells into a closed row. Empty segments
// before the first and after the last delimiter are dropped.
func tableRow(line string) string {
	cells := strings.Split(line, cellMark)

	var b strings.Builder
	b.WriteString("<tr>")
	for i, c := range cells {
		c = strings.TrimSpace(c)
		if c == "" && (i == 0 || i == len(cells)-1) {
			continue
		}
		b.WriteString("<td>")
		b.WriteString(c)
		b.WriteString("</td>")
	}
	b.WriteString("</tr>")
	return b.String()
}
