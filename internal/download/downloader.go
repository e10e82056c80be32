package download

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"

	"vimeodl/internal/logger"
	"vimeodl/internal/models"
	"vimeodl/internal/vimeo"
)

// IntegrityError reports a segment whose transferred byte count does not
// equal its manifest-declared size. Segment sizes are the only end-to-end
// corruption detector in this format, so any mismatch is fatal.
type IntegrityError struct {
	Index    int
	Path     string
	Expected int64
	Got      int64
}

// Error returns the string representation of the integrity error.
func (e *IntegrityError) Error() string {
	return fmt.Sprintf("segment %d (%s): invalid byte count: read=%d, expected=%d",
		e.Index, e.Path, e.Got, e.Expected)
}

// Downloader writes a variant's initialization block and media segments,
// in manifest order, into a single output file.
type Downloader struct {
	httpClient *http.Client
	logger     logger.Logger
	userAgent  string
}

// NewDownloader creates a new downloader sharing the pipeline's transport.
func NewDownloader(client *http.Client, log logger.Logger, userAgent string) *Downloader {
	return &Downloader{
		httpClient: client,
		logger:     log,
		userAgent:  userAgent,
	}
}

// Download reconstructs the variant at outputPath: the init block first,
// then every segment streamed in order, each verified against its declared
// size before progress advances. The first failing segment aborts the run;
// the partially written output is left on disk for diagnosis.
func (d *Downloader) Download(outputPath string, variant *models.Variant, progress Progress) error {
	if len(variant.Segments) == 0 {
		return fmt.Errorf("variant %s has no segments", variant.ID)
	}
	if variant.BaseURL == nil {
		return fmt.Errorf("variant %s has no base URL", variant.ID)
	}

	out, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer out.Close()

	if _, err := out.Write(variant.InitSegment); err != nil {
		return fmt.Errorf("failed to write init segment: %w", err)
	}
	d.logger.Debugf("Wrote init segment (%d bytes) to %s", len(variant.InitSegment), outputPath)

	for i, segment := range variant.Segments {
		if err := d.downloadSegment(out, variant.BaseURL, i, segment); err != nil {
			return err
		}
		if err := progress.Add64(segment.Size); err != nil {
			return fmt.Errorf("progress update failed: %w", err)
		}
	}

	if err := progress.Finish(); err != nil {
		return fmt.Errorf("progress finalization failed: %w", err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("failed to finalize output file: %w", err)
	}

	d.logger.Infof("Downloaded %d segments to %s", len(variant.Segments), outputPath)
	return nil
}

// downloadSegment fetches one segment and streams it into the output,
// counting transferred bytes and requiring an exact match with the
// declared size.
func (d *Downloader) downloadSegment(out io.Writer, baseURL *url.URL, index int, segment models.Segment) error {
	ref, err := url.Parse(segment.Path)
	if err != nil {
		return fmt.Errorf("segment %d: path %q is not parseable: %w", index, segment.Path, err)
	}
	segmentURL := baseURL.ResolveReference(ref).String()

	req, err := http.NewRequest(http.MethodGet, segmentURL, nil)
	if err != nil {
		return fmt.Errorf("segment %d: failed to create request: %w", index, err)
	}
	if d.userAgent != "" {
		req.Header.Set("User-Agent", d.userAgent)
	}

	d.logger.Debugf("Downloading segment %d/%s from %s", index, segment.Path, segmentURL)
	resp, err := d.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("segment %d: download failed: %w", index, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		return fmt.Errorf("segment %d: %w", index, &vimeo.StatusError{URL: segmentURL, StatusCode: resp.StatusCode})
	}

	count, err := io.Copy(out, resp.Body)
	if err != nil {
		return fmt.Errorf("segment %d: copy failed after %d bytes: %w", index, count, err)
	}

	if count != segment.Size {
		return &IntegrityError{Index: index, Path: segment.Path, Expected: segment.Size, Got: count}
	}

	return nil
}
