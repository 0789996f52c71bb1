package service

import (
	"regexp"
	"strings"
)

var placeholderPattern = regexp.MustCompile(`\{\{(.*?)\}\}`)

// RenderTemplate replaces every {{name}} in template with vars[name].
// Names are trimmed; unknown names render as the empty string. Substituted
// values are not expanded again.
func RenderTemplate(template string, vars map[string]string) string {
	return placeholderPattern.ReplaceAllStringFunc(template, func(match string) string {
		name := strings.TrimSpace(match[2 : len(match)-2])
		return vars[name]
	})
}
