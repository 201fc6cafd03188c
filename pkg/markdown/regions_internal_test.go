package markdown

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegions_ProtectRestoreRoundTrip(t *testing.T) {
	t.Parallel()

	reg := newRegions()
	pattern := regexp.MustCompile(`\*\*[^*]+\*\*`)

	protected := reg.protect("a **b** c **d**", tagCode, pattern)
	assert.NotContains(t, protected, "**")
	assert.True(t, containsTag(protected, tagCode))

	assert.Equal(t, "a **b** c **d**", reg.restore(protected, tagCode))
}

func TestRegions_RestoreLeavesOtherTags(t *testing.T) {
	t.Parallel()

	reg := newRegions()
	code := reg.add(tagCode, "<pre>x</pre>")
	image := reg.add(tagImage, "<img>")

	got := reg.restore(code+" "+image, tagImage)

	assert.Equal(t, code+" <img>", got)
}

func TestRegions_Lookup(t *testing.T) {
	t.Parallel()

	reg := newRegions()
	ph := reg.add(tagTable, "<table></table>")

	original, ok := reg.lookup(ph + " tail")
	require.True(t, ok)
	assert.Equal(t, "<table></table>", original)

	_, ok = reg.lookup("lead " + ph)
	assert.False(t, ok)

	_, ok = reg.lookup(placeholderOpen + "TABLE9" + placeholderClose)
	assert.False(t, ok)
}

func TestRegions_ProtectBlocksNested(t *testing.T) {
	t.Parallel()

	reg := newRegions()
	src := "<div>\n<div>inner</div>\n</div>\ntrailing"

	got := reg.protectBlocks(src)

	assert.Equal(t, placeholderOpen+"BLOCK0"+placeholderClose+"\ntrailing", got)
	assert.Equal(t, src, reg.restore(got, tagBlock))
}

func TestRegions_ProtectBlocksUnclosed(t *testing.T) {
	t.Parallel()

	reg := newRegions()

	assert.Equal(t, "<div>open", reg.protectBlocks("<div>open"))
	assert.Equal(t, placeholderOpen+"BLOCK0"+placeholderClose+"x", reg.protectBlocks("<hr>x"))
}

func TestScrubPlaceholders(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "plain", scrubPlaceholders("plain"))
	assert.Equal(t, "�CODE0�", scrubPlaceholders(placeholderOpen+"CODE0"+placeholderClose))
}
