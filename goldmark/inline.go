package goldmark

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/fwojciec/c2cgpx"
)

// MediaURL is the host path that image references point to.
const MediaURL = "https://media.camptocamp.org/c2corg-active/uploads/images"

var (
	// [[routes/123]], [[routes/123|label]] or [[routes/123/fr/slug|label]]
	linkPattern = regexp.MustCompile(`\[\[(routes|waypoints|outings|articles|images)/(\d+)(?:/[\w-]+)*(?:\|(.*?))?\]\]`)

	// [img=123 right]caption[/img]
	imagePattern = regexp.MustCompile(`\[img=(\d+).*?\](.*?)\[/img\]`)

	// [img=123 right/]
	bareImagePattern = regexp.MustCompile(`\[img=(\d+)[^\]]*/\]`)
)

// rewriteLinks replaces cross-document references with anchors.
func rewriteLinks(text string) string {
	return linkPattern.ReplaceAllStringFunc(text, func(m string) string {
		sub := linkPattern.FindStringSubmatch(m)
		typ, id, label := sub[1], sub[2], sub[3]
		if label == "" {
			label = typ + " " + id
		}
		return fmt.Sprintf(`<a href="%s/%s/%s">%s</a>`, c2cgpx.SiteURL, typ, id, escapePipes(label))
	})
}

// rewriteImages replaces image references with anchors to the media host.
// Attributes after the id are ignored.
func rewriteImages(text string) string {
	text = bareImagePattern.ReplaceAllStringFunc(text, func(m string) string {
		sub := bareImagePattern.FindStringSubmatch(m)
		return fmt.Sprintf(`<a href="%s/%s.jpg">[📸]</a>`, MediaURL, sub[1])
	})
	return imagePattern.ReplaceAllStringFunc(text, func(m string) string {
		sub := imagePattern.FindStringSubmatch(m)
		return fmt.Sprintf(`<a href="%s/%s.jpg">[📸 %s]</a>`, MediaURL, sub[1], escapePipes(sub[2]))
	})
}

// escapePipes keeps author text inside rewritten tokens away from the
// table delimiter pass.
func escapePipes(s string) string {
	return strings.ReplaceAll(s, "|", "&#124;")
}
