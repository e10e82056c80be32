package download

// Progress receives byte-level download progress. Add64 is called with the
// verified byte count of each completed segment; Finish is called exactly
// once, after all segments have passed their size check.
//
// *progressbar.ProgressBar satisfies this interface directly.
type Progress interface {
	Add64(n int64) error
	Finish() error
}

// NopProgress discards all progress updates.
type NopProgress struct{}

func (NopProgress) Add64(int64) error { return nil }
func (NopProgress) Finish() error     { return nil }
