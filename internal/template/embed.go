package template

import "embed"

// builtinTemplates holds the default skill and command templates compiled
// into the binary. Operators can shadow any of them by placing a file with
// the same relative path under the configured template directory.
//
//go:embed templates
var builtinTemplates embed.FS
