// Copyright © 2024 The col authors

// Package docs embeds the col language guide for use by the CLI.
package docs

import _ "embed"

//go:embed lang.md
var LangGuide string
