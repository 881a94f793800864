// Package content bundles the blog posts shipped with the binary. The embed
// backend serves them when no content directory is deployed.
package content

import "embed"

// Blog holds blog/*.md.
//
//go:embed blog/*.md
var Blog embed.FS

// BlogDir is the directory inside Blog that holds the posts.
const BlogDir = "blog"
