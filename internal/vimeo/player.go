package vimeo

import (
	"encoding/json"
	"fmt"
)

// playerConfig maps the parts of the player config document the pipeline
// needs. Only the "dash" delivery scheme is supported; other schemes in
// the document are ignored. Pointer fields distinguish an absent branch
// from an empty one.
type playerConfig struct {
	Request *struct {
		Files *struct {
			Dash *dashFiles `json:"dash"`
		} `json:"files"`
	} `json:"request"`
}

type dashFiles struct {
	DefaultCDN *string             `json:"default_cdn"`
	CDNs       map[string]cdnEntry `json:"cdns"`
}

type cdnEntry struct {
	URL string `json:"url"`
}

// LocateManifest fetches the player config document and returns the
// manifest URL of the default delivery endpoint.
func (c *Client) LocateManifest(configURL string) (string, error) {
	c.logger.Debugf("Fetching player config: %s", configURL)

	body, _, err := c.fetch(configURL, "")
	if err != nil {
		return "", fmt.Errorf("failed to fetch player config: %w", err)
	}

	var cfg playerConfig
	if err := json.Unmarshal(body, &cfg); err != nil {
		return "", formatErrf("player config", "not a JSON document: %v", err)
	}

	if cfg.Request == nil || cfg.Request.Files == nil {
		return "", formatErrf("player config", "missing request.files")
	}
	dash := cfg.Request.Files.Dash
	if dash == nil {
		return "", formatErrf("player config", "missing request.files.dash")
	}
	if dash.DefaultCDN == nil || *dash.DefaultCDN == "" {
		return "", formatErrf("player config", "missing default_cdn")
	}
	if dash.CDNs == nil {
		return "", formatErrf("player config", "missing cdns")
	}

	cdn, ok := dash.CDNs[*dash.DefaultCDN]
	if !ok {
		return "", formatErrf("player config", "default cdn %q not present in cdns", *dash.DefaultCDN)
	}
	if cdn.URL == "" {
		return "", formatErrf("player config", "cdn %q has no url", *dash.DefaultCDN)
	}

	c.logger.Debugf("Default CDN %q resolved to manifest URL: %s", *dash.DefaultCDN, cdn.URL)
	return cdn.URL, nil
}
