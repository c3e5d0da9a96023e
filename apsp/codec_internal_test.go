package apsp

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWriteTo_RejectsOversizedOrder(t *testing.T) {
	t.Parallel()
	tab := &Table{n: MaxOrder + 1}

	var buf bytes.Buffer
	n, err := tab.WriteTo(&buf)
	assert.ErrorIs(t, err, ErrFormat)
	assert.Zero(t, n)
	assert.Zero(t, buf.Len())

	_, err = tab.MarshalBinary()
	assert.ErrorIs(t, err, ErrFormat)
}
