package sanitize_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/gomdsite/pkg/markdown"
	"github.com/yaklabco/gomdsite/pkg/sanitize"
)

func TestHTML_KeepsEngineMarkup(t *testing.T) {
	t.Parallel()

	src := "# Title\n\n" +
		"```go\nx := 1\n```\n\n" +
		"|A|B|\n|:-:|--:|\n|1|2|\n\n" +
		"- [x] done\n\n" +
		"==mark== [[Ctrl]] H~2~O x^2^ ~~old~~\n\n" +
		"![cat](cat.png) *A cat*"

	got := sanitize.HTML(markdown.Render(src, markdown.Options{}))

	assert.Contains(t, got, `<div class="code-block-container">`)
	assert.Contains(t, got, `<div class="code-lang">go</div>`)
	assert.Contains(t, got, `<code class="language-go">`)
	assert.Contains(t, got, `<table class="markdown-table">`)
	assert.Contains(t, got, `style="text-align: center"`)
	assert.Contains(t, got, `class="task-list-item"`)
	assert.Contains(t, got, `type="checkbox"`)
	assert.Contains(t, got, "<mark>mark</mark>")
	assert.Contains(t, got, "<kbd>Ctrl</kbd>")
	assert.Contains(t, got, "<sub>2</sub>")
	assert.Contains(t, got, "<sup>2</sup>")
	assert.Contains(t, got, "<del>old</del>")
	assert.Contains(t, got, `<figure class="image-figure">`)
	assert.Contains(t, got, `<figcaption class="image-caption">A cat</figcaption>`)
}

func TestHTML_KeepsFootnoteAnchors(t *testing.T) {
	t.Parallel()

	got := sanitize.HTML(markdown.Render("claim[^1]\n\n[^1]: source", markdown.Options{}))

	assert.Contains(t, got, `id="fnref-1"`)
	assert.Contains(t, got, `href="#fn-1"`)
	assert.Contains(t, got, `id="fn-1"`)
	assert.NotContains(t, got, "nofollow")
}

func TestHTML_StripsScripts(t *testing.T) {
	t.Parallel()

	got := sanitize.HTML(`<p onclick="x()">hi</p><script>alert(1)</script><a href="javascript:alert(1)">x</a>`)

	assert.NotContains(t, got, "script")
	assert.NotContains(t, got, "onclick")
	assert.NotContains(t, got, "javascript:")
	assert.Contains(t, got, "<p>hi</p>")
}

func TestHTML_ExternalLinksGetNofollow(t *testing.T) {
	t.Parallel()

	got := sanitize.HTML(`<a href="https://example.com">x</a>`)

	assert.Contains(t, got, `rel="nofollow"`)
}

func TestHTML_Empty(t *testing.T) {
	t.Parallel()

	assert.Empty(t, sanitize.HTML(""))
}
