// Package sanitize filters rendered post HTML through a bluemonday policy
// that keeps everything the markdown engine and the TOC builder emit.
package sanitize

import (
	"regexp"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

//nolint:gochecknoglobals // policy is built once and is safe for concurrent use
var (
	policyOnce sync.Once
	policy     *bluemonday.Policy

	classPattern = regexp.MustCompile(`^[\w\s-]+$`)
	idPattern    = regexp.MustCompile(`^[\w-]+$`)
	langPattern  = regexp.MustCompile(`^language-[\w+#.-]+$`)
)

// HTML returns fragment with anything outside the policy removed.
func HTML(fragment string) string {
	if fragment == "" {
		return ""
	}
	return Policy().Sanitize(fragment)
}

// Policy returns the shared content policy. It starts from bluemonday's UGC
// policy and adds figures, task-list checkboxes, table cell alignment, the
// engine's class names and heading ids.
func Policy() *bluemonday.Policy {
	policyOnce.Do(func() {
		p := bluemonday.UGCPolicy()

		p.AllowElements("figure", "figcaption", "mark", "kbd", "del", "sup", "sub", "div", "span")
		p.AllowAttrs("class").Matching(classPattern).Globally()
		p.AllowAttrs("id").Matching(idPattern).Globally()
		p.AllowAttrs("class").Matching(langPattern).OnElements("code")

		p.AllowStyles("text-align").MatchingEnum("left", "center", "right").OnElements("th", "td")

		p.AllowElements("input")
		p.AllowAttrs("type").Matching(regexp.MustCompile(`^checkbox$`)).OnElements("input")
		p.AllowAttrs("checked", "disabled").OnElements("input")

		p.AllowAttrs("aria-label").OnElements("button")
		p.AllowElements("button", "nav")

		p.RequireNoFollowOnLinks(false)
		p.RequireNoFollowOnFullyQualifiedLinks(true)

		policy = p
	})
	return policy
}
