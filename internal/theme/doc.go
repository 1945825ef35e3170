// Package theme supplies the colors toasts are drawn with.
// Themes are small TOML palettes loaded from ~/.config/imtricks/themes/,
// falling back to the palettes embedded in the binary. A theme may inherit
// from another theme and override only some of its colors.
package theme
