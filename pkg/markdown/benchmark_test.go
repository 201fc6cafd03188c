package markdown

import (
	"strings"
	"testing"
)

// benchmarkPost mixes every construct the renderer handles.
const benchmarkPost = "# Title\n\nSome **bold**, *italic*, ~~struck~~ and `code` text with a [link](https://example.com).\n\n" +
	"## Lists\n\n- one\n- two\n  - nested\n- [x] done\n- [ ] todo\n\n1. first\n2. second\n\n" +
	"> quoted\n> text\n\n| a | b |\n|:--|--:|\n| 1 | 2 |\n\n![cat](images/cat.png)\n\n" +
	"```go\npackage main\n\nfunc main() {}\n```\n\n---\n\nH~2~O and ==marked==.\n"

func BenchmarkRender(b *testing.B) {
	body := strings.Repeat(benchmarkPost, 20)
	opts := Options{AssetPrefix: "../../"}

	b.ResetTimer()
	for range b.N {
		if Render(body, opts) == "" {
			b.Fail()
		}
	}
}

func BenchmarkRenderDetectLanguage(b *testing.B) {
	body := strings.Repeat("```\npackage main\n\nfunc main() {}\n```\n\ntext\n\n", 20)
	opts := Options{DetectLanguage: true}

	b.ResetTimer()
	for range b.N {
		Render(body, opts)
	}
}
