package template

import (
	"fmt"
	"reflect"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Context holds the variables available to a template. Values are stringified
// with %v during substitution; booleans and numbers participate in
// conditional truthiness.
type Context map[string]any

// titleCaser converts kebab-case words to Title Case display names.
var titleCaser = cases.Title(language.English)

// enrich returns a copy of ctx with derived variables filled in.
// The input context is never mutated.
func enrich(ctx Context) Context {
	enriched := make(Context, len(ctx)+5)
	for k, v := range ctx {
		enriched[k] = v
	}

	if name, ok := stringValue(ctx, "skill_name"); ok {
		if _, present := ctx["skill_display_name"]; !present {
			enriched["skill_display_name"] = DisplayName(name)
		}
	}

	if name, ok := stringValue(ctx, "command_name"); ok {
		if _, present := ctx["command_display_name"]; !present {
			enriched["command_display_name"] = DisplayName(name)
		}
	}

	if user, ok := stringValue(ctx, "github_user"); ok {
		if skill, ok := stringValue(ctx, "skill_name"); ok {
			if _, present := ctx["repository_url"]; !present {
				enriched["repository_url"] = fmt.Sprintf("https://github.com/%s/%s", user, skill)
			}
		}
	}

	if _, present := ctx["timestamp"]; !present {
		enriched["timestamp"] = time.Now().UTC().Format("2006-01-02 15:04:05") + " UTC"
	}

	if _, present := ctx["version"]; !present {
		enriched["version"] = "0.1.0"
	}

	return enriched
}

// stringValue fetches a context value as a string.
func stringValue(ctx Context, key string) (string, bool) {
	v, ok := ctx[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// DisplayName converts a kebab-case name to Title Case.
// "my-cool-skill" becomes "My Cool Skill".
func DisplayName(kebab string) string {
	if kebab == "" {
		return ""
	}
	return titleCaser.String(strings.ReplaceAll(kebab, "-", " "))
}

// truthy reports whether a context value enables a conditional block.
// Nil, false, empty strings, numeric zero, and empty containers are falsy;
// everything else is truthy.
func truthy(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	case string:
		return x != ""
	case int:
		return x != 0
	case int32:
		return x != 0
	case int64:
		return x != 0
	case uint:
		return x != 0
	case uint64:
		return x != 0
	case float32:
		return x != 0
	case float64:
		return x != 0
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Map, reflect.Array:
		return rv.Len() > 0
	default:
		return true
	}
}
