package langdetect

import (
	"testing"
)

func BenchmarkDetectFenceWithoutInfo(b *testing.B) {
	snippets := [][]byte{
		[]byte("package main\n\nimport \"fmt\"\n\nfunc main() {\n\tfmt.Println(\"hi\")\n}"),
		[]byte("def hello():\n    print(\"hi\")\n"),
		[]byte("title: post\ndate: 2024-01-01\ntags:\n  - a\n"),
		[]byte("just prose inside a fence"),
	}
	b.ResetTimer()
	for i := range b.N {
		Detect(snippets[i%len(snippets)])
	}
}
