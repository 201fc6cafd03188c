package frontmatter_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gomdsite/pkg/frontmatter"
)

func TestSplit(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		src      string
		wantMeta frontmatter.Metadata
		wantBody string
	}{
		{
			name: "title and tags",
			src:  "---\ntitle: Hello\ntags: [a, b]\n---\nBody",
			wantMeta: frontmatter.Metadata{
				"title": frontmatter.Scalar("Hello"),
				"tags":  frontmatter.List("a", "b"),
			},
			wantBody: "Body",
		},
		{
			name:     "no front matter",
			src:      "# Heading\n\ntext",
			wantMeta: frontmatter.Metadata{},
			wantBody: "# Heading\n\ntext",
		},
		{
			name:     "missing closing delimiter",
			src:      "---\ntitle: Hello\nBody",
			wantMeta: frontmatter.Metadata{},
			wantBody: "---\ntitle: Hello\nBody",
		},
		{
			name: "quoted values",
			src:  "---\ntitle: \"Quoted: value\"\nsub: 'single'\nodd: \"mismatched'\n---\n",
			wantMeta: frontmatter.Metadata{
				"title": frontmatter.Scalar("Quoted: value"),
				"sub":   frontmatter.Scalar("single"),
				"odd":   frontmatter.Scalar("\"mismatched'"),
			},
			wantBody: "",
		},
		{
			name: "list items lose embedded quotes",
			src:  "---\ntags: [\"go\", 'web' , plain]\n---\nx",
			wantMeta: frontmatter.Metadata{
				"tags": frontmatter.List("go", "web", "plain"),
			},
			wantBody: "x",
		},
		{
			name: "lines without key are ignored",
			src:  "---\nno colon here\n: leading colon\ndate: 2024-01-02\n---\nx",
			wantMeta: frontmatter.Metadata{
				"date": frontmatter.Scalar("2024-01-02"),
			},
			wantBody: "x",
		},
		{
			name: "crlf input",
			src:  "---\r\ntitle: Win\r\n---\r\nline one\r\nline two",
			wantMeta: frontmatter.Metadata{
				"title": frontmatter.Scalar("Win"),
			},
			wantBody: "line one\nline two",
		},
		{
			name: "empty list",
			src:  "---\ntags: []\n---\nx",
			wantMeta: frontmatter.Metadata{
				"tags": frontmatter.List(),
			},
			wantBody: "x",
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			doc := frontmatter.Split(testCase.src)

			if diff := cmp.Diff(testCase.wantMeta, doc.Metadata); diff != "" {
				t.Errorf("metadata mismatch (-want +got):\n%s", diff)
			}
			assert.Equal(t, testCase.wantBody, doc.Body)
		})
	}
}

func TestMetadataAccessors(t *testing.T) {
	t.Parallel()

	meta := frontmatter.Parse("title: Post\ntags: [x, y]\ncategory: single")

	assert.Equal(t, "Post", meta.Get("title"))
	assert.Equal(t, "x, y", meta.Get("tags"))
	assert.Empty(t, meta.Get("missing"))

	assert.Equal(t, []string{"x", "y"}, meta.Strings("tags"))
	assert.Equal(t, []string{"single"}, meta.Strings("category"))
	assert.Equal(t, []string{}, meta.Strings("missing"))

	assert.True(t, meta.Has("title"))
	assert.False(t, meta.Has("missing"))
}

func TestSplitModeYAML(t *testing.T) {
	t.Parallel()

	src := "---\ntitle: Deep\ndate: 2024-03-05\ntags:\n  - go\n  - yaml\ndraft: true\ncount: 3\n---\nBody"

	doc := frontmatter.SplitMode(src, frontmatter.ModeYAML)

	assert.Equal(t, "Body", doc.Body)
	assert.Equal(t, "Deep", doc.Metadata.Get("title"))
	assert.Equal(t, "2024-03-05", doc.Metadata.Get("date"))
	assert.Equal(t, []string{"go", "yaml"}, doc.Metadata.Strings("tags"))
	assert.Equal(t, "true", doc.Metadata.Get("draft"))
	assert.Equal(t, "3", doc.Metadata.Get("count"))
}

func TestSplitModeYAMLFallsBack(t *testing.T) {
	t.Parallel()

	// Unbalanced flow sequence is invalid YAML but fine for the simple parser.
	src := "---\ntitle: [unterminated\nauthor: me\n---\nBody"

	doc := frontmatter.SplitMode(src, frontmatter.ModeYAML)

	assert.Equal(t, "Body", doc.Body)
	assert.Equal(t, "me", doc.Metadata.Get("author"))
}

func TestParseYAML(t *testing.T) {
	t.Parallel()

	meta, err := frontmatter.ParseYAML("title: 'Hi'\ntags: [a, b]")
	require.NoError(t, err)

	want := frontmatter.Metadata{
		"title": frontmatter.Scalar("Hi"),
		"tags":  frontmatter.List("a", "b"),
	}
	if diff := cmp.Diff(want, meta); diff != "" {
		t.Errorf("metadata mismatch (-want +got):\n%s", diff)
	}

	_, err = frontmatter.ParseYAML("key: [broken")
	require.Error(t, err)
}

func TestModeIsValid(t *testing.T) {
	t.Parallel()

	assert.True(t, frontmatter.ModeSimple.IsValid())
	assert.True(t, frontmatter.ModeYAML.IsValid())
	assert.False(t, frontmatter.Mode("toml").IsValid())
}
