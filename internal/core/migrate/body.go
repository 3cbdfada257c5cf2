// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/Kavirubc
// Created: 2026-10-19
// Last Modified: 2026-10-19

package migrate

import (
	"fmt"
	"strings"

	"github.com/similigh/shadowissues/internal/utils/text"
)

const (
	// TitlePrefix marks every issue created by this tool.
	TitlePrefix = "[shadow] "

	// DefaultProfileBaseURL prefixes site-relative author profile URIs.
	DefaultProfileBaseURL = "http://code.google.com"

	// PublishedLayout is the source feed's own timestamp format.
	PublishedLayout = "2006-01-02T15:04:05.000Z"
)

// ShadowTitle returns the title of the shadow issue for issue.
func ShadowTitle(issue SourceIssue) string {
	return TitlePrefix + issue.Title
}

// ShadowBody renders the shadow issue body. The output depends only on issue
// and profileBaseURL.
func ShadowBody(issue SourceIssue, profileBaseURL string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "*This is a **shadow issue** for [Issue %d on Google Code](%s) (from which this project was moved).\n",
		issue.ID, issue.URL)
	fmt.Fprintf(&sb, "Added %s by [%s](%s).%s\n",
		issue.Published.UTC().Format(PublishedLayout),
		issue.Author.Name,
		profileLink(issue.Author.URI, profileBaseURL),
		trailer(issue))
	fmt.Fprintf(&sb, "Please make updates to the bug [there](%s).*\n", issue.URL)
	sb.WriteString("\n# Original description\n\n")
	// Source content is not Markdown; a pre block keeps it verbatim.
	sb.WriteString(text.Indent(issue.Content, "    "))
	sb.WriteString("\n")
	return sb.String()
}

func trailer(issue SourceIssue) string {
	var extra string
	if issue.IsClosed() {
		extra += fmt.Sprintf(" Closed (%s).", issue.Status)
	}
	if len(issue.Labels) > 0 {
		extra += fmt.Sprintf("\nLabels: %s.", strings.Join(issue.Labels, ", "))
	}
	return extra
}

func profileLink(uri, base string) string {
	if strings.HasPrefix(uri, "http://") || strings.HasPrefix(uri, "https://") {
		return uri
	}
	if base == "" {
		base = DefaultProfileBaseURL
	}
	return strings.TrimSuffix(base, "/") + uri
}
