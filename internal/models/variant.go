package models

import (
	"fmt"
	"net/url"
)

// Segment is one contiguous byte range of a variant. Path is resolved against
// the variant's base URL; Size is the declared byte count used as the
// post-transfer integrity check.
type Segment struct {
	Path string
	Size int64
}

// Variant represents one encoded rendition of the source video, decoded
// from the master manifest. All fields come straight from the manifest;
// nothing is defaulted.
type Variant struct {
	ID       string
	Codecs   string
	Bitrate  int64
	Duration float64
	Width    int64
	Height   int64
	// BaseURL is shared by all variants of a manifest: the manifest's
	// base_url resolved against the manifest's own URL.
	BaseURL *url.URL
	// InitSegment is the decoded initialization block, written to the
	// output before any segment.
	InitSegment []byte
	// Segments in playback order, which is also byte order in the output.
	Segments []Segment
}

// TotalSize returns the sum of all declared segment sizes. The init
// segment does not count toward this total.
func (v *Variant) TotalSize() int64 {
	var sum int64
	for _, s := range v.Segments {
		sum += s.Size
	}
	return sum
}

func (v *Variant) String() string {
	return fmt.Sprintf("%s: %s, %dx%d, %g seconds, %d bitrate",
		v.ID, v.Codecs, v.Width, v.Height, v.Duration, v.Bitrate)
}

// BestByWidth picks the variant with the largest frame width. Ties go to
// the earliest variant in manifest order. Returns nil for an empty list.
func BestByWidth(variants []*Variant) *Variant {
	var best *Variant
	for _, v := range variants {
		if best == nil || v.Width > best.Width {
			best = v
		}
	}
	return best
}
