package goldmark

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	// L#~ and R#~ mark pitches that take no number.
	numberlessPitch = strings.NewReplacer("L#~", "", "R#~", "")

	numberedPitch = regexp.MustCompile(`([LR])#(\d+)`)
	barePitch     = regexp.MustCompile(`[LR]#`)
)

// numberPitches resolves pitch markers. Numberless and explicitly numbered
// markers are handled before bare markers are counted; bare markers are
// numbered per side in document order. Counters live for one call only.
func numberPitches(text string) string {
	text = numberlessPitch.Replace(text)
	text = numberedPitch.ReplaceAllString(text, "<b>${1}${2}</b>")

	var left, right int
	return barePitch.ReplaceAllStringFunc(text, func(m string) string {
		if m[0] == 'L' {
			left++
			return fmt.Sprintf("<b>L%d</b>", left)
		}
		right++
		return fmt.Sprintf("<b>R%d</b>", right)
	})
}
