package template

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeTemplate(t *testing.T, root, name, content string) {
	t.Helper()
	p := filepath.Join(root, filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(p), 0o750); err != nil {
		t.Fatalf("failed to create template dir: %v", err)
	}
	if err := os.WriteFile(p, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write template: %v", err)
	}
}

func TestRender_Substitution(t *testing.T) {
	root := t.TempDir()
	writeTemplate(t, root, "skill/greeting.md.template", "Hello {{name}}, version {{version}}")

	r := New(root)
	got, err := r.Render("skill/greeting.md.template", Context{"name": "world", "version": "1.2.3"})
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if got != "Hello world, version 1.2.3" {
		t.Errorf("unexpected output: %q", got)
	}
}

func TestRender_MissingVariable(t *testing.T) {
	root := t.TempDir()
	writeTemplate(t, root, "t.template", "value: {{unknown}}")

	r := New(root)
	got, err := r.Render("t.template", Context{})
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if got != "value: {{missing:unknown}}" {
		t.Errorf("expected visible missing marker, got %q", got)
	}
}

func TestRender_MissingTemplate(t *testing.T) {
	r := New(t.TempDir())
	_, err := r.Render("skill/nope.template", Context{})
	if !errors.Is(err, ErrTemplateNotFound) {
		t.Errorf("expected ErrTemplateNotFound, got %v", err)
	}
}

func TestRender_ConditionalTruthy(t *testing.T) {
	root := t.TempDir()
	writeTemplate(t, root, "c.template", "{{#if flag}}A{{/if}}")

	r := New(root)

	tests := []struct {
		name  string
		value any
		want  string
	}{
		{"true bool", true, "A"},
		{"false bool", false, ""},
		{"non-empty string", "x", "A"},
		{"empty string", "", ""},
		{"nonzero int", 1, "A"},
		{"zero int", 0, ""},
		{"zero float", 0.0, ""},
		{"nonzero float", 0.5, "A"},
		{"empty slice", []string{}, ""},
		{"non-empty slice", []string{"a"}, "A"},
		{"empty map", map[string]string{}, ""},
		{"nil", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := Context{}
			if tt.value != nil {
				ctx["flag"] = tt.value
			}
			got, err := r.Render("c.template", ctx)
			if err != nil {
				t.Fatalf("Render failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("flag=%v: got %q, want %q", tt.value, got, tt.want)
			}
		})
	}
}

func TestRender_ConditionalElse(t *testing.T) {
	root := t.TempDir()
	writeTemplate(t, root, "e.template", "{{#if flag}}yes{{else}}no{{/if}}")

	r := New(root)

	got, err := r.Render("e.template", Context{"flag": true})
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if got != "yes" {
		t.Errorf("expected 'yes', got %q", got)
	}

	got, err = r.Render("e.template", Context{"flag": false})
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if got != "no" {
		t.Errorf("expected 'no', got %q", got)
	}
}

func TestRender_ConditionalMultiline(t *testing.T) {
	root := t.TempDir()
	writeTemplate(t, root, "m.template", "start\n{{#if flag}}\nline1\nline2\n{{/if}}\nend")

	r := New(root)
	got, err := r.Render("m.template", Context{"flag": "on"})
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if !strings.Contains(got, "line1\nline2") {
		t.Errorf("expected multiline block to survive, got %q", got)
	}

	got, err = r.Render("m.template", Context{})
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if strings.Contains(got, "line1") {
		t.Errorf("expected block to be removed, got %q", got)
	}
}

func TestRender_SubstitutionInsideConditional(t *testing.T) {
	root := t.TempDir()
	writeTemplate(t, root, "s.template", "{{#if name}}Hello {{name}}{{/if}}")

	r := New(root)
	got, err := r.Render("s.template", Context{"name": "sam"})
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if got != "Hello sam" {
		t.Errorf("got %q, want %q", got, "Hello sam")
	}
}

func TestRender_EnrichesContext(t *testing.T) {
	root := t.TempDir()
	writeTemplate(t, root, "d.template",
		"{{skill_display_name}}|{{repository_url}}|{{version}}")

	r := New(root)
	got, err := r.Render("d.template", Context{
		"skill_name":  "my-cool-skill",
		"github_user": "octocat",
	})
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	parts := strings.Split(got, "|")
	if parts[0] != "My Cool Skill" {
		t.Errorf("expected display name 'My Cool Skill', got %q", parts[0])
	}
	if parts[1] != "https://github.com/octocat/my-cool-skill" {
		t.Errorf("unexpected repository url: %q", parts[1])
	}
	if parts[2] != "0.1.0" {
		t.Errorf("expected default version 0.1.0, got %q", parts[2])
	}
}

func TestRender_ExplicitValuesWin(t *testing.T) {
	root := t.TempDir()
	writeTemplate(t, root, "v.template", "{{skill_display_name}} {{version}}")

	r := New(root)
	got, err := r.Render("v.template", Context{
		"skill_name":         "my-skill",
		"skill_display_name": "Custom Name",
		"version":            "2.0.0",
	})
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if got != "Custom Name 2.0.0" {
		t.Errorf("expected explicit values preserved, got %q", got)
	}
}

func TestRender_Timestamp(t *testing.T) {
	root := t.TempDir()
	writeTemplate(t, root, "ts.template", "{{timestamp}}")

	r := New(root)
	got, err := r.Render("ts.template", Context{})
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if !strings.HasSuffix(got, " UTC") {
		t.Errorf("expected UTC timestamp, got %q", got)
	}
}

func TestRender_BuiltinFallback(t *testing.T) {
	// Empty override root, built-in template set
	r := New("")
	got, err := r.Render("skill/skill.md.template", Context{
		"skill_name":        "demo-skill",
		"skill_description": "A demo",
		"author_name":       "Tester",
	})
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if !strings.Contains(got, "name: demo-skill") {
		t.Errorf("expected rendered frontmatter, got %q", got)
	}
	if !strings.Contains(got, "# Demo Skill") {
		t.Errorf("expected display-name heading, got %q", got)
	}
	// No github_user: the repository block must be dropped
	if strings.Contains(got, "Repository:") {
		t.Errorf("expected repository block removed, got %q", got)
	}
}

func TestRender_OverrideShadowsBuiltin(t *testing.T) {
	root := t.TempDir()
	writeTemplate(t, root, "skill/skill.md.template", "custom {{skill_name}}")

	r := New(root)
	got, err := r.Render("skill/skill.md.template", Context{"skill_name": "x"})
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if got != "custom x" {
		t.Errorf("expected override template, got %q", got)
	}
}

func TestDisplayName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"my-cool-skill", "My Cool Skill"},
		{"a", "A"},
		{"", ""},
		{"single", "Single"},
	}

	for _, tt := range tests {
		if got := DisplayName(tt.in); got != tt.want {
			t.Errorf("DisplayName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestListTemplates(t *testing.T) {
	root := t.TempDir()
	writeTemplate(t, root, "skill/extra.md.template", "x")
	writeTemplate(t, root, "command/other.md.template", "y")
	writeTemplate(t, root, "skill/notes.txt", "not a template")

	r := New(root)

	all := r.ListTemplates("")
	if len(all) == 0 {
		t.Fatal("expected templates to be listed")
	}
	found := map[string]bool{}
	for _, name := range all {
		found[name] = true
	}
	if !found["skill/extra.md.template"] {
		t.Errorf("expected override template in listing, got %v", all)
	}
	if !found["skill/skill.md.template"] {
		t.Errorf("expected built-in template in listing, got %v", all)
	}
	if found["skill/notes.txt"] {
		t.Error("non-template files must not be listed")
	}

	skillOnly := r.ListTemplates("skill")
	for _, name := range skillOnly {
		if !strings.HasPrefix(name, "skill/") {
			t.Errorf("category filter leaked %q", name)
		}
	}

	if got := r.ListTemplates("no-such-category"); len(got) != 0 {
		t.Errorf("expected empty list for unknown category, got %v", got)
	}
}
