package site

import "embed"

// Assets contains the static files shipped with the binary: the stylesheet
// and the favicon. They are served under /public/.
//
//go:embed public
var Assets embed.FS
