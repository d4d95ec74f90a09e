package export

import (
	"strings"
)

// CheckCompatibility lists what in an exported component may render poorly
// in email clients. An empty result means no issue was found.
func CheckCompatibility(html string) []string {
	var issues []string
	lower := strings.ToLower(html)

	if !strings.Contains(lower, "doctype html") {
		issues = append(issues, "Missing DOCTYPE declaration")
	}

	if !strings.Contains(html, `xmlns:v="urn:schemas-microsoft-com:vml"`) {
		issues = append(issues, "Missing VML namespace for Outlook compatibility")
	}

	if !strings.Contains(html, "<!--[if mso") {
		issues = append(issues, "Missing Outlook conditional comments")
	}

	if strings.Contains(lower, "display: flex") || strings.Contains(lower, "display:flex") {
		issues = append(issues, "WARNING: CSS flexbox not supported in many email clients")
	}

	// Uploaded images are inlined as background images or data URLs.
	if strings.Contains(lower, "background-image") && !strings.Contains(lower, "mso-hide") {
		issues = append(issues, "WARNING: Background images not supported in Outlook")
	}

	if strings.Contains(lower, "src=\"data:") {
		issues = append(issues, "WARNING: Inline data: images are blocked by several email clients")
	}

	return issues
}
