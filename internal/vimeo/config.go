package vimeo

import (
	"fmt"
	"html"
	"regexp"
)

// configURLPattern matches the embedded player config reference in the
// event page markup. The attribute value is HTML-escaped in the source.
var configURLPattern = regexp.MustCompile(`data-config-url="([^"]+)"`)

// ResolveConfigURL fetches the event page with the given Referer header and
// extracts the embedded player config URL. Only the first marker in the
// page is used. The captured value is entity-decoded before being returned.
func (c *Client) ResolveConfigURL(pageURL, referer string) (string, error) {
	c.logger.Debugf("Fetching event page: %s", pageURL)

	body, _, err := c.fetch(pageURL, referer)
	if err != nil {
		return "", fmt.Errorf("failed to fetch event page: %w", err)
	}

	match := configURLPattern.FindSubmatch(body)
	if match == nil {
		return "", ErrConfigURLNotFound
	}

	configURL := html.UnescapeString(string(match[1]))
	c.logger.Debugf("Extracted config URL: %s", configURL)
	return configURL, nil
}
