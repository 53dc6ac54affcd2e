// Copyright 2025 The speedstat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchcsv

import (
	"encoding/csv"
	"io"
	"strconv"
)

// A Writer writes measurements in CSV form.
type Writer struct {
	w           *csv.Writer
	wroteHeader bool
}

// NewWriter returns a Writer that writes to w. If header is false the
// header row is assumed to be present already, as when appending to
// an existing file.
func NewWriter(w io.Writer, header bool) *Writer {
	return &Writer{w: csv.NewWriter(w), wroteHeader: !header}
}

// Write writes a single measurement. The Impl field is not written;
// it is carried by the file name.
func (w *Writer) Write(m *Measurement) error {
	if !w.wroteHeader {
		if err := w.w.Write(Header); err != nil {
			return err
		}
		w.wroteHeader = true
	}
	rec := []string{
		m.File,
		strconv.Itoa(m.N),
		strconv.Itoa(m.A),
		strconv.FormatFloat(m.Time, 'g', -1, 64),
		strconv.FormatInt(m.RecursionCalls, 10),
	}
	return w.w.Write(rec)
}

// Flush flushes buffered rows and returns any write error.
func (w *Writer) Flush() error {
	w.w.Flush()
	return w.w.Error()
}
