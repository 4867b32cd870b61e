package reportio

import "errors"

// Sentinel kinds for report I/O errors.
var (
	ErrReadInput   = errors.New("read input document failed")
	ErrWriteReport = errors.New("write report failed")
)
