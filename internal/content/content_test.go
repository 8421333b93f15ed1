package content

import (
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEmbeddedGuides(t *testing.T) {
	lib, err := Load()
	require.NoError(t, err)
	require.Equal(t, 2, lib.Len())

	guide, err := lib.Guide("cura-della-candela")
	require.NoError(t, err)
	assert.Equal(t, "Cura della candela", guide.Title)
	assert.NotEmpty(t, guide.Summary)
	assert.Contains(t, guide.Tags, "sicurezza")
	assert.Contains(t, guide.HTML, "<h2")
	assert.Contains(t, guide.HTML, "stoppino")
	assert.Equal(t, time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC), guide.Updated)
}

func TestGuideUnknownSlug(t *testing.T) {
	lib, err := Load()
	require.NoError(t, err)

	_, err = lib.Guide("no-such-guide")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListOrdersBySlug(t *testing.T) {
	lib, err := Load()
	require.NoError(t, err)

	guides := lib.List()
	require.Len(t, guides, 2)
	assert.Equal(t, "cere-e-profumi", guides[0].Slug)
	assert.Equal(t, "cura-della-candela", guides[1].Slug)
}

func TestRenderedHTMLIsSanitized(t *testing.T) {
	fsys := fstest.MapFS{
		"guides/evil.md": &fstest.MapFile{Data: []byte(`---
slug: evil
title: Evil
---

Testo <script>alert(1)</script> con [link](https://example.com).

<img src="x.png" onerror="alert(1)" loading="lazy">
`)},
	}

	lib, err := LoadFS(fsys, "guides")
	require.NoError(t, err)

	guide, err := lib.Guide("evil")
	require.NoError(t, err)
	assert.NotContains(t, guide.HTML, "<script")
	assert.NotContains(t, guide.HTML, "onerror")
	assert.Contains(t, guide.HTML, `loading="lazy"`)
	assert.Contains(t, guide.HTML, `rel="nofollow"`)
}

func TestLoadRejectsBrokenDocuments(t *testing.T) {
	cases := []struct {
		name string
		data string
	}{
		{"missing front matter", "# just markdown\n"},
		{"unterminated front matter", "---\nslug: a\ntitle: A\n"},
		{"missing slug", "---\ntitle: A\n---\n\nbody\n"},
		{"bad updated date", "---\nslug: a\ntitle: A\nupdated: not-a-date\n---\n\nbody\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			fsys := fstest.MapFS{
				"guides/broken.md": &fstest.MapFile{Data: []byte(tc.data)},
			}
			_, err := LoadFS(fsys, "guides")
			assert.ErrorIs(t, err, ErrInvalidDocument)
		})
	}
}

func TestLoadRejectsDuplicateSlugs(t *testing.T) {
	doc := "---\nslug: dup\ntitle: Dup\n---\n\nbody\n"
	fsys := fstest.MapFS{
		"guides/a.md": &fstest.MapFile{Data: []byte(doc)},
		"guides/b.md": &fstest.MapFile{Data: []byte(doc)},
	}
	_, err := LoadFS(fsys, "guides")
	assert.ErrorIs(t, err, ErrInvalidDocument)
}
