package canstudy

import "embed"

// GuidesFS contains the markdown guides served at /api/guides.
//
//go:embed content/guides/*.md
var GuidesFS embed.FS
