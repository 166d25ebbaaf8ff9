// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"unicode/utf8"

	"pagecraft/internal/models"
)

// Validation limits for panel inputs.
const (
	maxNameLen     = 120
	maxDocumentLen = 500_000
	maxBodyBytes   = 1 << 20
)

// validateConfigFields checks the replaceable fields of a configuration and
// returns the first error found. Empty type and styling mean "unselected".
func validateConfigFields(name, siteType, styling string) string {
	if utf8.RuneCountInString(name) > maxNameLen {
		return "Site name is too long (max 120 characters)."
	}
	if siteType != "" && !models.ValidSiteType(models.SiteType(siteType)) {
		return "Unknown site type."
	}
	if styling != "" && !models.ValidStyling(models.Styling(styling)) {
		return "Unknown styling preset."
	}
	return ""
}

// validateDocument checks an edit buffer.
func validateDocument(text string) string {
	if utf8.RuneCountInString(text) > maxDocumentLen {
		return "Document is too long (max 500,000 characters)."
	}
	return ""
}
