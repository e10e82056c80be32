package vimeo

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/url"

	"vimeodl/internal/models"
)

// rawManifest is the intermediate structure that maps directly to the
// master manifest JSON. Fields are processed into models.Variant values;
// pointer fields distinguish absent from zero.
type rawManifest struct {
	BaseURL *string      `json:"base_url"`
	Video   []rawVariant `json:"video"`
}

type rawVariant struct {
	// id and codecs are opaque: any JSON scalar is accepted and rendered
	// as its textual form.
	ID          json.RawMessage `json:"id"`
	Codecs      json.RawMessage `json:"codecs"`
	Bitrate     *json.Number    `json:"bitrate"`
	Duration    *json.Number    `json:"duration"`
	Width       *json.Number    `json:"width"`
	Height      *json.Number    `json:"height"`
	InitSegment *string         `json:"init_segment"`
	Segments    []rawSegment    `json:"segments"`
}

type rawSegment struct {
	URL  *string      `json:"url"`
	Size *json.Number `json:"size"`
}

// FetchManifest fetches the master manifest and decodes it into the list
// of video variants it describes. The manifest's base_url is resolved as a
// relative reference against the manifest's own effective URL, so every
// variant shares one absolute base URL for segment resolution.
func (c *Client) FetchManifest(manifestURL string) ([]*models.Variant, error) {
	c.logger.Debugf("Fetching manifest: %s", manifestURL)

	body, finalURL, err := c.fetch(manifestURL, "")
	if err != nil {
		return nil, fmt.Errorf("failed to fetch manifest: %w", err)
	}

	return parseManifest(body, finalURL)
}

func parseManifest(body []byte, manifestURL string) ([]*models.Variant, error) {
	var raw rawManifest
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, formatErrf("manifest", "decode error: %v", err)
	}

	if raw.BaseURL == nil {
		return nil, formatErrf("manifest", "missing base_url")
	}
	if raw.Video == nil {
		return nil, formatErrf("manifest", "missing video list")
	}

	docURL, err := url.Parse(manifestURL)
	if err != nil {
		return nil, formatErrf("manifest", "manifest URL %q is not parseable: %v", manifestURL, err)
	}
	baseRef, err := url.Parse(*raw.BaseURL)
	if err != nil {
		return nil, formatErrf("manifest", "base_url %q is not parseable: %v", *raw.BaseURL, err)
	}
	baseURL := docURL.ResolveReference(baseRef)

	variants := make([]*models.Variant, 0, len(raw.Video))
	for i, rv := range raw.Video {
		v, err := processVariant(&rv, baseURL)
		if err != nil {
			return nil, formatErrf("manifest", "video[%d]: %v", i, err)
		}
		variants = append(variants, v)
	}

	return variants, nil
}

func processVariant(rv *rawVariant, baseURL *url.URL) (*models.Variant, error) {
	bitrate, err := intField("bitrate", rv.Bitrate)
	if err != nil {
		return nil, err
	}
	width, err := intField("width", rv.Width)
	if err != nil {
		return nil, err
	}
	height, err := intField("height", rv.Height)
	if err != nil {
		return nil, err
	}
	duration, err := floatField("duration", rv.Duration)
	if err != nil {
		return nil, err
	}

	if rv.InitSegment == nil {
		return nil, fmt.Errorf("missing init_segment")
	}
	initSegment, err := base64.RawStdEncoding.DecodeString(*rv.InitSegment)
	if err != nil {
		return nil, fmt.Errorf("init_segment is not valid base64: %v", err)
	}

	if rv.Segments == nil {
		return nil, fmt.Errorf("missing segments list")
	}
	segments := make([]models.Segment, 0, len(rv.Segments))
	for i, rs := range rv.Segments {
		if rs.URL == nil {
			return nil, fmt.Errorf("segments[%d]: missing url", i)
		}
		size, err := intField(fmt.Sprintf("segments[%d].size", i), rs.Size)
		if err != nil {
			return nil, err
		}
		segments = append(segments, models.Segment{Path: *rs.URL, Size: size})
	}

	return &models.Variant{
		ID:          scalarText(rv.ID),
		Codecs:      scalarText(rv.Codecs),
		Bitrate:     bitrate,
		Duration:    duration,
		Width:       width,
		Height:      height,
		BaseURL:     baseURL,
		InitSegment: initSegment,
		Segments:    segments,
	}, nil
}

// scalarText renders a JSON value as its textual form: strings keep their
// decoded text, any other scalar keeps its literal representation.
func scalarText(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}

func intField(name string, n *json.Number) (int64, error) {
	if n == nil {
		return 0, fmt.Errorf("missing %s", name)
	}
	v, err := n.Int64()
	if err != nil {
		return 0, fmt.Errorf("%s is not an integer: %v", name, err)
	}
	if v < 0 {
		return 0, fmt.Errorf("%s is negative: %d", name, v)
	}
	return v, nil
}

func floatField(name string, n *json.Number) (float64, error) {
	if n == nil {
		return 0, fmt.Errorf("missing %s", name)
	}
	v, err := n.Float64()
	if err != nil {
		return 0, fmt.Errorf("%s is not a number: %v", name, err)
	}
	if v < 0 {
		return 0, fmt.Errorf("%s is negative: %g", name, v)
	}
	return v, nil
}
