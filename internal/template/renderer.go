// Package template renders skill and command scaffolding templates.
//
// Templates use {{variable}} substitution and {{#if name}}...{{else}}...{{/if}}
// conditional blocks. The syntax is deliberately minimal and regex-driven to
// stay compatible with existing skill template files; nested conditional
// blocks are not supported.
package template

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/klauern/skillkit/internal/logging"
)

// ErrTemplateNotFound is returned when a named template does not exist in
// the override directory or the built-in set.
var ErrTemplateNotFound = errors.New("template not found")

// Ext is the file extension identifying template files.
const Ext = ".template"

var (
	varPattern    = regexp.MustCompile(`\{\{(\w+)\}\}`)
	ifElsePattern = regexp.MustCompile(`(?s)\{\{#if\s+(\w+)\}\}(.*?)\{\{else\}\}(.*?)\{\{/if\}\}`)
	ifPattern     = regexp.MustCompile(`(?s)\{\{#if\s+(\w+)\}\}(.*?)\{\{/if\}\}`)
)

// Renderer loads and renders templates. Templates are looked up first in the
// override root (when set), then in the built-in embedded set.
type Renderer struct {
	root string
}

// New creates a renderer with the given override root. An empty root uses
// only the built-in templates.
func New(root string) *Renderer {
	return &Renderer{root: root}
}

// Render loads the named template and renders it with the given context.
// Template names are relative paths such as "skill/skill.md.template".
func (r *Renderer) Render(name string, ctx Context) (string, error) {
	content, err := r.load(name)
	if err != nil {
		return "", err
	}

	logging.Debug("rendering template",
		logging.Template(name),
		logging.Count(len(ctx)),
	)

	enriched := enrich(ctx)

	rendered := substitute(content, enriched)
	rendered = processConditionals(rendered, enriched)

	return rendered, nil
}

// load reads a template from the override root or the built-in set.
func (r *Renderer) load(name string) (string, error) {
	if r.root != "" {
		p := filepath.Join(r.root, filepath.FromSlash(name))
		// #nosec G304 - template root is operator-configured
		if data, err := os.ReadFile(p); err == nil {
			return string(data), nil
		}
	}

	data, err := fs.ReadFile(builtinTemplates, path.Join("templates", name))
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrTemplateNotFound, name)
	}
	return string(data), nil
}

// substitute replaces {{variable}} tokens with context values. Unknown
// variables render as a visible {{missing:variable}} marker rather than
// failing. The "else" token is reserved for the conditional pass and is
// left untouched.
func substitute(content string, ctx Context) string {
	return varPattern.ReplaceAllStringFunc(content, func(match string) string {
		name := varPattern.FindStringSubmatch(match)[1]
		if name == "else" {
			return match
		}
		value, ok := ctx[name]
		if !ok {
			return "{{missing:" + name + "}}"
		}
		return fmt.Sprintf("%v", value)
	})
}

// processConditionals resolves {{#if}} blocks in two passes: if/else blocks
// first, then bare if blocks. Matching is non-greedy across newlines, so
// nested blocks resolve incorrectly; they are unsupported.
func processConditionals(content string, ctx Context) string {
	content = ifElsePattern.ReplaceAllStringFunc(content, func(match string) string {
		groups := ifElsePattern.FindStringSubmatch(match)
		if truthy(ctx[groups[1]]) {
			return groups[2]
		}
		return groups[3]
	})

	content = ifPattern.ReplaceAllStringFunc(content, func(match string) string {
		groups := ifPattern.FindStringSubmatch(match)
		if truthy(ctx[groups[1]]) {
			return groups[2]
		}
		return ""
	})

	return content
}

// ListTemplates returns the relative paths of available templates,
// optionally filtered to a category subdirectory. Override and built-in
// templates are merged; an unknown category yields an empty list.
func (r *Renderer) ListTemplates(category string) []string {
	seen := make(map[string]bool)

	if r.root != "" {
		searchDir := r.root
		if category != "" {
			searchDir = filepath.Join(r.root, category)
		}
		_ = filepath.WalkDir(searchDir, func(p string, d fs.DirEntry, err error) error {
			if err != nil || d.IsDir() || !strings.HasSuffix(p, Ext) {
				return nil
			}
			rel, relErr := filepath.Rel(r.root, p)
			if relErr != nil {
				return nil
			}
			seen[filepath.ToSlash(rel)] = true
			return nil
		})
	}

	prefix := "templates"
	if category != "" {
		prefix = path.Join("templates", category)
	}
	_ = fs.WalkDir(builtinTemplates, prefix, func(p string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() || !strings.HasSuffix(p, Ext) {
			return nil
		}
		seen[strings.TrimPrefix(p, "templates/")] = true
		return nil
	})

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
