package build_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gomdsite/pkg/build"
	"github.com/yaklabco/gomdsite/pkg/frontmatter"
)

const samplePost = `---
title: Hello
date: 2024-03-05
tags: [go, blog]
---
# Intro

Some *text* here.

## Details

![cat](images/cat.png)
`

func TestRender(t *testing.T) {
	t.Parallel()

	rendered := build.Render([]byte(samplePost), build.RenderOptions{AssetPrefix: "../../"})

	assert.Equal(t, "Hello", rendered.Document.Metadata.Get("title"))
	assert.Equal(t, []string{"go", "blog"}, rendered.Document.Metadata.Strings("tags"))

	assert.Contains(t, rendered.HTML, `<h1 id="heading-1">Intro</h1>`)
	assert.Contains(t, rendered.HTML, `<h2 id="heading-2">Details</h2>`)
	assert.Contains(t, rendered.HTML, "<p>Some <em>text</em> here.</p>")
	assert.Contains(t, rendered.HTML, `<img src="../../images/cat.png" alt="cat" />`)

	require.Len(t, rendered.Entries, 2)
	assert.Equal(t, "Details", rendered.Entries[1].Text)
	assert.Contains(t, rendered.TOC, `<a href="#heading-1" class="toc-link">Intro</a>`)

	assert.Equal(t, "Some text here.", rendered.Summary.Text)
}

func TestRender_NoHeadings(t *testing.T) {
	t.Parallel()

	rendered := build.Render([]byte("just a line"), build.RenderOptions{})

	assert.Equal(t, "<p>just a line</p>", rendered.HTML)
	assert.Empty(t, rendered.Entries)
	assert.Empty(t, rendered.TOC)
	assert.False(t, rendered.Document.HasFrontMatter())
}

func TestRender_FrontMatterModes(t *testing.T) {
	t.Parallel()

	src := "---\ntitle: \"Quoted: colon\"\ntags:\n  - a\n  - b\n---\nbody"

	tests := []struct {
		name  string
		mode  frontmatter.Mode
		title string
		tags  []string
	}{
		{name: "yaml", mode: frontmatter.ModeYAML, title: "Quoted: colon", tags: []string{"a", "b"}},
		{name: "invalid mode falls back to simple", mode: "toml", title: "Quoted: colon", tags: []string{}},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			rendered := build.Render([]byte(src), build.RenderOptions{FrontMatter: testCase.mode})
			assert.Equal(t, testCase.title, rendered.Document.Metadata.Get("title"))
			assert.Equal(t, testCase.tags, rendered.Document.Metadata.Strings("tags"))
			assert.Equal(t, "<p>body</p>", rendered.HTML)
		})
	}
}

func TestRender_Sanitize(t *testing.T) {
	t.Parallel()

	src := "# Title\n\n<script>alert(1)</script>\n\n<div class=\"note\">kept</div>"

	raw := build.Render([]byte(src), build.RenderOptions{})
	assert.Contains(t, raw.HTML, "<script>")

	clean := build.Render([]byte(src), build.RenderOptions{Sanitize: true})
	assert.NotContains(t, clean.HTML, "<script>")
	assert.Contains(t, clean.HTML, `<div class="note">kept</div>`)
	assert.Contains(t, clean.HTML, `id="heading-1"`)
}
