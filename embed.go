package paperblog

import "embed"

// EmbeddedAssets contains static assets shipped with the engine:
// styles.css and toggle-theme.js.
//
//go:embed embedded/*
var EmbeddedAssets embed.FS
