// SPDX-License-Identifier: MIT
//
// Binary path-table format (little endian):
//
//	magic   [4]byte  "APSP"
//	version uint16   1
//	n       uint32
//	dist    n² × float64 (IEEE-754 bits, +Inf preserved)
//	next    n² × int32   (-1 = no hop)
//	crc     uint32   CRC-32 (IEEE) of every preceding byte
//
// Decoding is all-or-nothing: the receiver is replaced only after the whole
// payload has been read and validated.

package apsp

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"io"
	"math"

	"github.com/katalvlaran/idpnet/matrix"
)

const (
	formatVersion uint16 = 1
	headerSize           = 4 + 2 + 4
	trailerSize          = 4

	// MaxOrder bounds n accepted from a serialized header.
	MaxOrder = 1 << 14
)

var magic = [4]byte{'A', 'P', 'S', 'P'}

// EncodedSize returns the byte length of a serialized table of order n.
func EncodedSize(n int) int64 {
	return int64(headerSize) + 12*int64(n)*int64(n) + trailerSize
}

// checkOrder rejects tables that decode would refuse.
func (t *Table) checkOrder() error {
	if t.n > MaxOrder {
		return fmt.Errorf("%w: order %d exceeds %d", ErrFormat, t.n, MaxOrder)
	}

	return nil
}

// MarshalBinary implements encoding.BinaryMarshaler.
// Errors: ErrFormat when the order exceeds MaxOrder.
func (t *Table) MarshalBinary() ([]byte, error) {
	if err := t.checkOrder(); err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	buf.Grow(int(EncodedSize(t.n)))
	if _, err := t.WriteTo(&buf); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler. On failure the
// receiver is left untouched.
func (t *Table) UnmarshalBinary(data []byte) error {
	r := bytes.NewReader(data)
	got, _, err := decode(r, -1)
	if err != nil {
		return err
	}
	if r.Len() != 0 {
		return fmt.Errorf("%w: %d trailing bytes", ErrFormat, r.Len())
	}
	*t = *got

	return nil
}

// WriteTo implements io.WriterTo.
// Errors: ErrFormat when the order exceeds MaxOrder; nothing is written.
func (t *Table) WriteTo(w io.Writer) (int64, error) {
	if err := t.checkOrder(); err != nil {
		return 0, err
	}
	h := crc32.NewIEEE()
	cw := &countWriter{w: io.MultiWriter(w, h)}

	var hdr [headerSize]byte
	copy(hdr[:4], magic[:])
	binary.LittleEndian.PutUint16(hdr[4:6], formatVersion)
	binary.LittleEndian.PutUint32(hdr[6:10], uint32(t.n))
	if _, err := cw.Write(hdr[:]); err != nil {
		return cw.n, err
	}

	row := make([]byte, 8*t.n)
	data := t.dist.Data()
	for i := 0; i < t.n; i++ {
		for j := 0; j < t.n; j++ {
			binary.LittleEndian.PutUint64(row[8*j:], math.Float64bits(data[i*t.n+j]))
		}
		if _, err := cw.Write(row); err != nil {
			return cw.n, err
		}
	}
	row = row[:4*t.n]
	for i := 0; i < t.n; i++ {
		for j := 0; j < t.n; j++ {
			binary.LittleEndian.PutUint32(row[4*j:], uint32(t.next[i*t.n+j]))
		}
		if _, err := cw.Write(row); err != nil {
			return cw.n, err
		}
	}

	var sum [trailerSize]byte
	binary.LittleEndian.PutUint32(sum[:], h.Sum32())
	m, err := w.Write(sum[:])

	return cw.n + int64(m), err
}

// ReadFrom implements io.ReaderFrom, accepting any order n.
func (t *Table) ReadFrom(r io.Reader) (int64, error) {
	got, read, err := decode(r, -1)
	if err != nil {
		return read, err
	}
	*t = *got

	return read, nil
}

// Load decodes a table and requires its order to equal n, the node count of
// the live graph. A negative n accepts any order.
//
// Errors: ErrSizeMismatch (also ErrFormat) when orders differ, ErrFormat for
// any other decoding failure.
func Load(r io.Reader, n int) (*Table, error) {
	t, _, err := decode(r, n)

	return t, err
}

// decode reads one table. want < 0 disables the order check.
func decode(r io.Reader, want int) (*Table, int64, error) {
	h := crc32.NewIEEE()
	cr := &countReader{r: io.TeeReader(r, h)}

	var hdr [headerSize]byte
	if _, err := io.ReadFull(cr, hdr[:]); err != nil {
		return nil, cr.n, fmt.Errorf("%w: header: %v", ErrFormat, err)
	}
	if !bytes.Equal(hdr[:4], magic[:]) {
		return nil, cr.n, fmt.Errorf("%w: bad magic %q", ErrFormat, hdr[:4])
	}
	if v := binary.LittleEndian.Uint16(hdr[4:6]); v != formatVersion {
		return nil, cr.n, fmt.Errorf("%w: unsupported version %d", ErrFormat, v)
	}
	n64 := binary.LittleEndian.Uint32(hdr[6:10])
	if n64 > MaxOrder {
		return nil, cr.n, fmt.Errorf("%w: order %d exceeds %d", ErrFormat, n64, MaxOrder)
	}
	n := int(n64)
	if want >= 0 && n != want {
		return nil, cr.n, &sizeMismatchError{got: n, want: want}
	}

	// Rows are read one at a time so a truncated stream never forces the
	// full n² allocation.
	grow := min(n*n, 1<<16)
	row := make([]byte, 8*n)
	data := make([]float64, 0, grow)
	for i := 0; i < n; i++ {
		if _, err := io.ReadFull(cr, row); err != nil {
			return nil, cr.n, fmt.Errorf("%w: distance row %d: %v", ErrFormat, i, err)
		}
		for j := 0; j < n; j++ {
			data = append(data, math.Float64frombits(binary.LittleEndian.Uint64(row[8*j:])))
		}
	}
	row = row[:4*n]
	next := make([]int32, 0, grow)
	for i := 0; i < n; i++ {
		if _, err := io.ReadFull(cr, row); err != nil {
			return nil, cr.n, fmt.Errorf("%w: next row %d: %v", ErrFormat, i, err)
		}
		for j := 0; j < n; j++ {
			next = append(next, int32(binary.LittleEndian.Uint32(row[4*j:])))
		}
	}

	expect := h.Sum32()
	var sum [trailerSize]byte
	if _, err := io.ReadFull(r, sum[:]); err != nil {
		return nil, cr.n, fmt.Errorf("%w: checksum: %v", ErrFormat, err)
	}
	read := cr.n + trailerSize
	if got := binary.LittleEndian.Uint32(sum[:]); got != expect {
		return nil, read, fmt.Errorf("%w: checksum %08x, want %08x", ErrFormat, got, expect)
	}

	for idx, v := range data {
		if math.IsNaN(v) || math.IsInf(v, -1) || v < 0 {
			return nil, read, fmt.Errorf("%w: distance[%d][%d]=%g", ErrFormat, idx/n, idx%n, v)
		}
	}
	if err := matrix.ValidateNext(n, next); err != nil {
		return nil, read, fmt.Errorf("%w: %v", ErrFormat, err)
	}
	dist, err := matrix.FromRowMajor(n, data)
	if err != nil {
		return nil, read, fmt.Errorf("%w: %v", ErrFormat, err)
	}

	return &Table{n: n, dist: dist, next: next}, read, nil
}

type countWriter struct {
	w io.Writer
	n int64
}

func (c *countWriter) Write(p []byte) (int, error) {
	m, err := c.w.Write(p)
	c.n += int64(m)

	return m, err
}

type countReader struct {
	r io.Reader
	n int64
}

func (c *countReader) Read(p []byte) (int, error) {
	m, err := c.r.Read(p)
	c.n += int64(m)

	return m, err
}
