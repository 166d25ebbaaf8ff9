// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package slug derives URL- and filename-friendly slugs from arbitrary
// strings.
package slug

import (
	"regexp"
	"strings"
)

var (
	// nonAlphanumeric matches anything that isn't a letter, digit, or space.
	nonAlphanumeric = regexp.MustCompile(`[^a-z0-9\s-]`)
	// whitespace matches runs of any whitespace, tabs and newlines included.
	whitespace = regexp.MustCompile(`\s+`)
	// multipleHyphens collapses consecutive hyphens into one.
	multipleHyphens = regexp.MustCompile(`-{2,}`)
)

const (
	// DefaultFilename is used when a name yields an empty slug.
	DefaultFilename = "index.html"

	// maxFilenameSlug caps the slug part of a download filename.
	maxFilenameSlug = 64
)

// Generate creates a URL-friendly slug from the given string.
// Example: "Hello, World! 2026" → "hello-world-2026"
func Generate(s string) string {
	result := strings.ToLower(strings.TrimSpace(s))
	result = nonAlphanumeric.ReplaceAllString(result, "")
	result = whitespace.ReplaceAllString(result, "-")
	result = multipleHyphens.ReplaceAllString(result, "-")
	result = strings.Trim(result, "-")
	return result
}

// Filename returns the download filename for a site named name:
// "My Site!" becomes "my-site.html". Names with no usable characters get
// DefaultFilename.
func Filename(name string) string {
	s := Generate(name)
	if len(s) > maxFilenameSlug {
		s = strings.TrimRight(s[:maxFilenameSlug], "-")
	}
	if s == "" {
		return DefaultFilename
	}
	return s + ".html"
}
