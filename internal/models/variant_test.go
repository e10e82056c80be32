package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestBestByWidth verifies the selection policy: maximum width, ties
// broken by first occurrence in manifest order.
func TestBestByWidth(t *testing.T) {
	low := &Variant{ID: "low", Width: 640}
	high := &Variant{ID: "high", Width: 1920}
	mid := &Variant{ID: "mid", Width: 1280}

	assert.Same(t, high, BestByWidth([]*Variant{low, high, mid}))
	assert.Same(t, high, BestByWidth([]*Variant{high, mid, low}))
}

func TestBestByWidth_TieGoesToFirst(t *testing.T) {
	first := &Variant{ID: "first", Width: 1920}
	second := &Variant{ID: "second", Width: 1920}

	assert.Same(t, first, BestByWidth([]*Variant{first, second}))
	assert.Same(t, second, BestByWidth([]*Variant{second, first}))
}

func TestBestByWidth_Empty(t *testing.T) {
	assert.Nil(t, BestByWidth(nil))
	assert.Nil(t, BestByWidth([]*Variant{}))
}

func TestVariant_TotalSize(t *testing.T) {
	v := &Variant{
		InitSegment: []byte{1, 2, 3, 4},
		Segments: []Segment{
			{Path: "a", Size: 100},
			{Path: "b", Size: 250},
		},
	}
	// The init segment does not count toward the total.
	assert.Equal(t, int64(350), v.TotalSize())
}

func TestVariant_String(t *testing.T) {
	v := &Variant{
		ID:       "1",
		Codecs:   "avc1.640028",
		Bitrate:  500,
		Duration: 10.5,
		Width:    1920,
		Height:   1080,
	}
	assert.Equal(t, "1: avc1.640028, 1920x1080, 10.5 seconds, 500 bitrate", v.String())
}
