package apsp_test

import (
	"bytes"
	"encoding/binary"
	"hash/crc32"
	"math"
	"math/rand"
	"runtime"
	"testing"

	"github.com/katalvlaran/idpnet/apsp"
	"github.com/katalvlaran/idpnet/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// encodeRaw writes a well-formed blob around arbitrary matrices.
func encodeRaw(n int, dist []float64, next []int32) []byte {
	var buf bytes.Buffer
	buf.WriteString("APSP")
	_ = binary.Write(&buf, binary.LittleEndian, uint16(1))
	_ = binary.Write(&buf, binary.LittleEndian, uint32(n))
	for _, v := range dist {
		_ = binary.Write(&buf, binary.LittleEndian, math.Float64bits(v))
	}
	for _, v := range next {
		_ = binary.Write(&buf, binary.LittleEndian, v)
	}
	_ = binary.Write(&buf, binary.LittleEndian, crc32.ChecksumIEEE(buf.Bytes()))

	return buf.Bytes()
}

func TestCodec_RoundTripBitIdentical(t *testing.T) {
	t.Parallel()
	tab, err := apsp.Build(chain(t))
	require.NoError(t, err)

	blob, err := tab.MarshalBinary()
	require.NoError(t, err)
	assert.Len(t, blob, int(apsp.EncodedSize(5)))

	var back apsp.Table
	require.NoError(t, back.UnmarshalBinary(blob))
	assert.True(t, tab.Equal(&back))
	assert.True(t, math.IsInf(back.PathLength(A, E), 1))

	path, ok := back.Path(A, D)
	require.True(t, ok)
	assert.Equal(t, []int{B, C}, path)
}

func TestCodec_WriteToReadFrom(t *testing.T) {
	t.Parallel()
	g := randomGraph(rand.New(rand.NewSource(5)), 20, 0.2, true)
	tab, err := apsp.Build(g)
	require.NoError(t, err)

	var buf bytes.Buffer
	wn, err := tab.WriteTo(&buf)
	require.NoError(t, err)
	assert.Equal(t, apsp.EncodedSize(20), wn)

	var back apsp.Table
	rn, err := back.ReadFrom(&buf)
	require.NoError(t, err)
	assert.Equal(t, wn, rn)
	assert.True(t, tab.Equal(&back))
}

func TestCodec_EmptyTable(t *testing.T) {
	t.Parallel()
	tab, err := apsp.Build(core.NewGraph(0))
	require.NoError(t, err)
	blob, err := tab.MarshalBinary()
	require.NoError(t, err)

	back, err := apsp.Load(bytes.NewReader(blob), 0)
	require.NoError(t, err)
	assert.True(t, tab.Equal(back))
}

func TestLoad_SizeMismatch(t *testing.T) {
	t.Parallel()
	tab, err := apsp.Build(chain(t))
	require.NoError(t, err)
	blob, err := tab.MarshalBinary()
	require.NoError(t, err)

	_, err = apsp.Load(bytes.NewReader(blob), 6)
	assert.ErrorIs(t, err, apsp.ErrSizeMismatch)
	assert.ErrorIs(t, err, apsp.ErrFormat)

	got, err := apsp.Load(bytes.NewReader(blob), 5)
	require.NoError(t, err)
	assert.True(t, tab.Equal(got))
}

func TestLoad_Corruption(t *testing.T) {
	t.Parallel()
	tab, err := apsp.Build(chain(t))
	require.NoError(t, err)
	blob, err := tab.MarshalBinary()
	require.NoError(t, err)

	mutate := func(f func(b []byte) []byte) []byte {
		c := append([]byte(nil), blob...)
		return f(c)
	}
	cases := map[string][]byte{
		"empty":       {},
		"bad magic":   mutate(func(b []byte) []byte { b[0] = 'X'; return b }),
		"bad version": mutate(func(b []byte) []byte { b[4] = 9; return b }),
		"flipped bit": mutate(func(b []byte) []byte { b[20] ^= 0x01; return b }),
		"truncated":   mutate(func(b []byte) []byte { return b[:len(b)-7] }),
		"no trailer":  mutate(func(b []byte) []byte { return b[:len(b)-4] }),
		"huge order": mutate(func(b []byte) []byte {
			binary.LittleEndian.PutUint32(b[6:10], 1<<30)
			return b
		}),
	}
	for name, data := range cases {
		data := data
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			_, err := apsp.Load(bytes.NewReader(data), -1)
			assert.ErrorIs(t, err, apsp.ErrFormat)

			var tab apsp.Table
			assert.ErrorIs(t, tab.UnmarshalBinary(data), apsp.ErrFormat)
		})
	}
}

// A bare header claiming the largest order must fail on the missing rows
// without first allocating the full matrices (about 3 GB).
func TestLoad_TruncatedLargeOrderAllocatesLittle(t *testing.T) {
	hdr := []byte("APSP")
	hdr = binary.LittleEndian.AppendUint16(hdr, 1)
	hdr = binary.LittleEndian.AppendUint32(hdr, apsp.MaxOrder)
	hdr = append(hdr, make([]byte, 64)...)

	var before, after runtime.MemStats
	runtime.ReadMemStats(&before)
	_, err := apsp.Load(bytes.NewReader(hdr), -1)
	runtime.ReadMemStats(&after)

	assert.ErrorIs(t, err, apsp.ErrFormat)
	assert.Less(t, after.TotalAlloc-before.TotalAlloc, uint64(64<<20))
}

func TestLoad_RejectsBadContent(t *testing.T) {
	t.Parallel()
	inf := math.Inf(1)

	outOfRange := encodeRaw(2, []float64{0, 1, 1, 0}, []int32{-1, 5, -1, -1})
	_, err := apsp.Load(bytes.NewReader(outOfRange), 2)
	assert.ErrorIs(t, err, apsp.ErrFormat)

	nan := encodeRaw(2, []float64{0, math.NaN(), inf, 0}, []int32{-1, -1, -1, -1})
	_, err = apsp.Load(bytes.NewReader(nan), 2)
	assert.ErrorIs(t, err, apsp.ErrFormat)

	var tab apsp.Table
	trailing := append(encodeRaw(1, []float64{0}, []int32{-1}), 0)
	assert.ErrorIs(t, tab.UnmarshalBinary(trailing), apsp.ErrFormat)
}

func TestPath_CorruptNextPanics(t *testing.T) {
	t.Parallel()
	// next[0][2]=1 and next[0][1]=2 point at each other.
	blob := encodeRaw(3,
		[]float64{0, 1, 2, 1, 0, 1, 2, 1, 0},
		[]int32{-1, 2, 1, -1, -1, -1, -1, -1, -1})
	tab, err := apsp.Load(bytes.NewReader(blob), 3)
	require.NoError(t, err)

	assert.PanicsWithValue(t, apsp.ErrCorruptNext, func() { tab.Path(0, 2) })
	assert.PanicsWithValue(t, apsp.ErrCorruptNext, func() { tab.FirstHop(0, 2) })
}

func TestFingerprint(t *testing.T) {
	t.Parallel()
	g := chain(t)
	fp := apsp.Fingerprint(g)
	assert.Len(t, fp, 64)
	assert.Equal(t, fp, apsp.Fingerprint(g.Clone()))

	require.NoError(t, g.SetWeight(A, D, 9))
	assert.NotEqual(t, fp, apsp.Fingerprint(g))
	assert.NotEqual(t, apsp.Fingerprint(core.NewGraph(3)), apsp.Fingerprint(core.NewGraph(4)))
}
