// Package content serves the storefront's editorial guides. Guides are
// markdown documents with YAML front matter, rendered to HTML at load time
// and sanitized before anything reaches a template.
package content

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
	"gopkg.in/yaml.v3"
)

//go:embed seed/*.md
var seedFS embed.FS

// ErrNotFound is returned when no guide carries the requested slug.
var ErrNotFound = errors.New("content: not found")

// ErrInvalidDocument is returned when a guide source cannot be parsed.
var ErrInvalidDocument = errors.New("content: invalid document")

const frontMatterDelimiter = "---"

// Guide is a rendered editorial article.
type Guide struct {
	Slug    string
	Title   string
	Summary string
	Tags    []string
	Updated time.Time
	// HTML is the sanitized rendered body, safe to embed in templates.
	HTML string
}

type frontMatter struct {
	Slug    string   `yaml:"slug"`
	Title   string   `yaml:"title"`
	Summary string   `yaml:"summary"`
	Tags    []string `yaml:"tags"`
	Updated string   `yaml:"updated"`
}

// Library holds the rendered guide set, keyed by slug.
type Library struct {
	guides map[string]Guide
	order  []string
}

// Load renders the embedded guide documents.
func Load() (*Library, error) {
	return LoadFS(seedFS, "seed")
}

// LoadFS renders every *.md document under dir in fsys.
func LoadFS(fsys fs.FS, dir string) (*Library, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("read content dir: %w", err)
	}

	// Raw HTML passes through the renderer so the bluemonday policy is the
	// single place deciding what survives.
	markdown := goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithRendererOptions(html.WithUnsafe()),
	)
	policy := guideHTMLPolicy()

	lib := &Library{guides: map[string]Guide{}}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
			continue
		}
		raw, err := fs.ReadFile(fsys, dir+"/"+entry.Name())
		if err != nil {
			return nil, fmt.Errorf("read guide %s: %w", entry.Name(), err)
		}
		guide, err := renderGuide(raw, markdown, policy)
		if err != nil {
			return nil, fmt.Errorf("guide %s: %w", entry.Name(), err)
		}
		if _, exists := lib.guides[guide.Slug]; exists {
			return nil, fmt.Errorf("%w: duplicate slug %q", ErrInvalidDocument, guide.Slug)
		}
		lib.guides[guide.Slug] = guide
		lib.order = append(lib.order, guide.Slug)
	}
	sort.Strings(lib.order)
	return lib, nil
}

// Guide returns the rendered guide for slug.
func (l *Library) Guide(slug string) (Guide, error) {
	guide, ok := l.guides[strings.TrimSpace(slug)]
	if !ok {
		return Guide{}, ErrNotFound
	}
	return guide, nil
}

// List returns every guide ordered by slug.
func (l *Library) List() []Guide {
	out := make([]Guide, 0, len(l.order))
	for _, slug := range l.order {
		out = append(out, l.guides[slug])
	}
	return out
}

// Len reports the number of loaded guides.
func (l *Library) Len() int { return len(l.guides) }

func renderGuide(raw []byte, markdown goldmark.Markdown, policy *bluemonday.Policy) (Guide, error) {
	meta, body, err := splitFrontMatter(raw)
	if err != nil {
		return Guide{}, err
	}

	var fm frontMatter
	if err := yaml.Unmarshal(meta, &fm); err != nil {
		return Guide{}, fmt.Errorf("%w: front matter: %v", ErrInvalidDocument, err)
	}
	fm.Slug = strings.TrimSpace(fm.Slug)
	fm.Title = strings.TrimSpace(fm.Title)
	if fm.Slug == "" || fm.Title == "" {
		return Guide{}, fmt.Errorf("%w: slug and title are required", ErrInvalidDocument)
	}

	var updated time.Time
	if raw := strings.TrimSpace(fm.Updated); raw != "" {
		updated, err = time.Parse("2006-01-02", raw)
		if err != nil {
			return Guide{}, fmt.Errorf("%w: updated date %q", ErrInvalidDocument, raw)
		}
	}

	var rendered bytes.Buffer
	if err := markdown.Convert(body, &rendered); err != nil {
		return Guide{}, fmt.Errorf("render guide body: %w", err)
	}

	return Guide{
		Slug:    fm.Slug,
		Title:   fm.Title,
		Summary: strings.TrimSpace(fm.Summary),
		Tags:    fm.Tags,
		Updated: updated,
		HTML:    policy.Sanitize(rendered.String()),
	}, nil
}

func splitFrontMatter(raw []byte) (meta, body []byte, err error) {
	text := string(raw)
	if !strings.HasPrefix(text, frontMatterDelimiter+"\n") {
		return nil, nil, fmt.Errorf("%w: missing front matter", ErrInvalidDocument)
	}
	rest := text[len(frontMatterDelimiter)+1:]
	end := strings.Index(rest, "\n"+frontMatterDelimiter+"\n")
	if end < 0 {
		return nil, nil, fmt.Errorf("%w: unterminated front matter", ErrInvalidDocument)
	}
	meta = []byte(rest[:end])
	body = []byte(rest[end+len(frontMatterDelimiter)+2:])
	return meta, body, nil
}

func guideHTMLPolicy() *bluemonday.Policy {
	policy := bluemonday.UGCPolicy()
	policy.AllowElements("figure", "figcaption")
	policy.AllowAttrs("class").OnElements("figure", "figcaption", "p", "span")
	policy.AllowAttrs("loading").OnElements("img")
	policy.RequireNoFollowOnLinks(true)
	return policy
}
