package langdetect_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/gomdsite/pkg/langdetect"
)

// Snippets are the kind of unlabelled fences that show up in blog posts.
func TestDetect(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		code string
		want string
	}{
		{name: "bash shebang", code: "#!/usr/bin/env bash\nset -euo pipefail\nmake build", want: "bash"},
		{name: "sh shebang maps to bash", code: "#!/bin/sh\nls -la", want: "bash"},
		{name: "python shebang", code: "#!/usr/bin/python3\nimport sys", want: "python"},
		{name: "go file", code: "package blog\n\nimport \"time\"\n", want: "go"},
		{name: "python function", code: "def slug(title):\n    return title.lower()\n", want: "python"},
		{name: "python from import", code: "from pathlib import Path\nprint(Path.cwd())", want: "python"},
		{name: "go import block is not python", code: "import (\n\t\"fmt\"\n)", want: "text"},
		{name: "arrow function", code: "posts.map(p => p.title)", want: "javascript"},
		{name: "front matter as yaml", code: "title: Hello\ndate: 2024-03-05\ntags:\n  - go\n", want: "yaml"},
		{name: "posts json", code: `[{"title": "Hello", "date": "2024-03-05"}]`, want: "json"},
		{name: "rust", code: "let mut count = 0;\ncount += 1;", want: "rust"},
		{name: "lowercase sql", code: "select title from posts order by date desc", want: "sql"},
		{name: "html page", code: "<!doctype html>\n<title>post</title>", want: "html"},
		{name: "dockerfile", code: "FROM node:20\nRUN npm ci", want: "dockerfile"},
		{name: "surrounding blank lines", code: "\n\npackage main\n\n", want: "go"},
		{name: "japanese prose", code: "今日は天気がいいです。", want: "text"},
		{name: "whitespace only", code: " \n\t\n", want: langdetect.LangText},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, testCase.want, langdetect.Detect([]byte(testCase.code)))
		})
	}
}

func TestDetect_ShebangBeatsHints(t *testing.T) {
	t.Parallel()

	// Reads like JavaScript, but the interpreter line decides.
	code := []byte("#!/usr/bin/env python3\nconst = 1\nprint(const)")
	assert.Equal(t, "python", langdetect.Detect(code))
}

func TestNormalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{in: "golang", want: "go"},
		{in: "sh", want: "bash"},
		{in: "Shell", want: "bash"},
		{in: "yml", want: "yaml"},
		{in: "JavaScript", want: "javascript"},
		{in: " python ", want: "python"},
		{in: "MyDSL", want: "mydsl"},
		{in: "", want: langdetect.LangText},
	}

	for _, testCase := range tests {
		t.Run(testCase.in, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, testCase.want, langdetect.Normalize(testCase.in))
		})
	}
}
