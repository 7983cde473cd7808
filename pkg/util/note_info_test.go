package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseNoteInfo(t *testing.T) {
	tests := []struct {
		name      string
		content   string
		wantTitle string
		wantTags  []string
	}{
		{
			name:      "heading and hashtag",
			content:   "# Title\n#tag1",
			wantTitle: "Title",
			wantTags:  []string{"tag1"},
		},
		{
			name:      "empty document",
			content:   "",
			wantTitle: DefaultNoteTitle,
			wantTags:  []string{},
		},
		{
			name:      "frontmatter wins over heading",
			content:   "---\ntitle: From Meta\ntags: [a, b]\n---\n# Heading\n#b #c\n",
			wantTitle: "From Meta",
			wantTags:  []string{"a", "b", "c"},
		},
		{
			name:      "comma separated frontmatter tags",
			content:   "---\ntags: x, y\n---\nbody",
			wantTitle: DefaultNoteTitle,
			wantTags:  []string{"x", "y"},
		},
		{
			name:      "tags heading with code spans",
			content:   "# Doc\n###### tags: `go` `notes`\n",
			wantTitle: "Doc",
			wantTags:  []string{"go", "notes"},
		},
		{
			name:      "only first level-1 heading counts",
			content:   "## Second\n# First\n# Other\n",
			wantTitle: "First",
			wantTags:  []string{},
		},
		{
			name:      "hashtags in code are ignored",
			content:   "# T\n```\n#nope\n```\nuse `#nope` but #yes\n",
			wantTitle: "T",
			wantTags:  []string{"yes"},
		},
		{
			name:      "anchors are not tags",
			content:   "see http://example.com/#anchor and a#b",
			wantTitle: DefaultNoteTitle,
			wantTags:  []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := ParseNoteInfo(tt.content)
			assert.Equal(t, tt.wantTitle, info.Title)
			assert.Equal(t, tt.wantTags, info.Tags)
		})
	}
}

func TestParseFrontmatter_Invalid(t *testing.T) {
	meta, body, ok := ParseFrontmatter("---\ntitle: [unclosed\n---\nbody")
	assert.False(t, ok)
	assert.Nil(t, meta)
	assert.Equal(t, "---\ntitle: [unclosed\n---\nbody", body)

	_, body, ok = ParseFrontmatter("no frontmatter")
	assert.False(t, ok)
	assert.Equal(t, "no frontmatter", body)
}

func TestParseDuration(t *testing.T) {
	d, err := ParseDuration("2d")
	assert.NoError(t, err)
	assert.Equal(t, "48h0m0s", d.String())

	d, err = ParseDuration("30")
	assert.NoError(t, err)
	assert.Equal(t, "30s", d.String())

	_, err = ParseDuration("xd")
	assert.Error(t, err)
}
