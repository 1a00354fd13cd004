package theme

import "embed"

// Built-in palettes shipped inside the binary.
//
//go:embed defaults/*.theme
var embeddedThemes embed.FS
