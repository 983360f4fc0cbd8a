package bitdex

import (
	"bytes"
	"encoding/binary"
	"errors"
	"log/slog"
	"testing"

	"github.com/hupe1980/bitdex/codec"
	"github.com/hupe1980/bitdex/snapshot"
	"github.com/hupe1980/bitdex/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFixture(optFns ...Option) *Index {
	ix := New(optFns...)
	ix.BatchInsert("pending", []uint32{1, 3, 5, 7, 9})
	ix.BatchInsert("admin", []uint32{7, 256, 512, 1024})
	return ix
}

func TestIndex_InsertGet(t *testing.T) {
	rng := testutil.NewRNG(4711)
	ix := New()

	for _, id := range rng.IDs(500, 1<<14) {
		ix.Insert("flag", id)
		assert.True(t, ix.Get("flag", id))
	}
}

func TestIndex_ListMatchesInserted(t *testing.T) {
	rng := testutil.NewRNG(7)
	ids := rng.IDs(1000, 1<<12)

	ix := New()
	ix.BatchInsert("flag", ids)
	ix.BatchInsert("flag", ids)

	assert.Equal(t, testutil.SortedUnique(ids), ix.List("flag"))
}

func TestIndex_Scenario(t *testing.T) {
	ix := newFixture()

	assert.Equal(t, []uint32{1, 3, 5, 7, 9}, ix.List("pending"))
	assert.True(t, ix.Get("admin", 512))
	assert.False(t, ix.Get("admin", 511))

	and, err := ix.And("pending", "admin")
	require.NoError(t, err)
	assert.Equal(t, []uint32{7}, and)

	assert.Equal(t, []uint32{1, 3, 5, 7, 9, 256, 512, 1024}, ix.Or("admin", "pending"))

	bin, err := ix.GetAsBinary("pending")
	require.NoError(t, err)
	assert.Equal(t, []string{"00000000000000000000001010101010"}, bin)

	assert.Equal(t, []uint32{682}, ix.ListRawWords("pending"))
}

func TestIndex_AbsentKey(t *testing.T) {
	ix := newFixture()

	_, err := ix.GetAsBinary("ghost")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrKeyNotFound))

	var km *ErrKeyMissing
	require.ErrorAs(t, err, &km)
	assert.Equal(t, "get_as_binary", km.Op)
	assert.Equal(t, "ghost", km.Key)

	_, err = ix.And("pending", "ghost")
	require.ErrorAs(t, err, &km)
	assert.Equal(t, "and", km.Op)
	assert.Equal(t, "ghost", km.Key)

	_, err = ix.AndCount("ghost", "pending")
	assert.ErrorIs(t, err, ErrKeyNotFound)

	assert.Equal(t, []uint32{}, ix.Or("pending", "ghost"))
	assert.Equal(t, 0, ix.OrCount("pending", "ghost"))
	assert.Equal(t, []uint32{}, ix.List("ghost"))
	assert.Equal(t, []uint32{}, ix.ListRawWords("ghost"))
	assert.False(t, ix.Get("ghost", 1))
	assert.False(t, ix.Has("ghost"))
}

func TestIndex_Introspection(t *testing.T) {
	ix := newFixture()

	assert.Equal(t, 2, ix.Len())
	assert.Equal(t, []string{"admin", "pending"}, ix.Keys())
	assert.Equal(t, 5, ix.Cardinality("pending"))
	assert.True(t, ix.Has("admin"))

	n, err := ix.AndCount("pending", "admin")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, 8, ix.OrCount("pending", "admin"))
}

func TestIndex_Metrics(t *testing.T) {
	metrics := &BasicMetricsCollector{}
	ix := newFixture(WithMetricsCollector(metrics))

	ix.Insert("pending", 11)
	ix.Get("pending", 11)
	ix.List("pending")
	_, _ = ix.GetAsBinary("ghost")
	_, _ = ix.And("pending", "admin")
	_, _ = ix.And("pending", "ghost")
	ix.Or("pending", "admin")

	stats := metrics.GetStats()
	assert.Equal(t, int64(1), stats.InsertCount)
	assert.Equal(t, int64(2), stats.BatchInsertCount)
	assert.Equal(t, int64(9), stats.BatchInsertItems)
	assert.Equal(t, int64(3), stats.LookupCount)
	assert.Equal(t, int64(1), stats.LookupErrors)
	assert.Equal(t, int64(3), stats.SetOpCount)
	assert.Equal(t, int64(1), stats.SetOpErrors)
	assert.Equal(t, int64(1+9), stats.SetOpResults)
}

func TestIndex_CountMetrics(t *testing.T) {
	metrics := &BasicMetricsCollector{}
	var buf bytes.Buffer
	logger := NewLogger(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	ix := newFixture(WithMetricsCollector(metrics), WithLogger(logger))

	n, err := ix.AndCount("pending", "admin")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	_, err = ix.AndCount("pending", "ghost")
	assert.ErrorIs(t, err, ErrKeyNotFound)
	assert.Equal(t, 8, ix.OrCount("pending", "admin"))

	stats := metrics.GetStats()
	assert.Equal(t, int64(3), stats.SetOpCount)
	assert.Equal(t, int64(1), stats.SetOpErrors)
	assert.Equal(t, int64(1+8), stats.SetOpResults)

	out := buf.String()
	assert.Contains(t, out, `"msg":"and_count completed"`)
	assert.Contains(t, out, `"msg":"and_count failed"`)
	assert.Contains(t, out, `"msg":"or_count completed"`)
}

func TestIndex_Logger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	ix := New(WithLogger(logger))

	ix.Insert("admin", 7)
	_, _ = ix.And("admin", "ghost")

	out := buf.String()
	assert.Contains(t, out, `"msg":"insert completed"`)
	assert.Contains(t, out, `"key_created":true`)
	assert.Contains(t, out, `"msg":"and failed"`)
	assert.Contains(t, out, `"key2":"ghost"`)
}

func TestIndex_NilOptions(t *testing.T) {
	ix := New(nil, WithLogger(nil), WithMetricsCollector(nil), WithCodec(nil))
	ix.Insert("k", 1)

	_, err := ix.Dump()
	require.NoError(t, err)
}

func TestIndex_SnapshotRoundTrip(t *testing.T) {
	for _, c := range []snapshot.Compression{snapshot.CompressionNone, snapshot.CompressionLZ4, snapshot.CompressionZSTD} {
		t.Run(c.String(), func(t *testing.T) {
			rng := testutil.NewRNG(4711)
			ix := newFixture(WithCompression(c))
			ix.BatchInsert("bulk", rng.IDs(5000, 1<<16))

			var buf bytes.Buffer
			written, err := ix.WriteTo(&buf)
			require.NoError(t, err)

			restored := New()
			read, err := restored.ReadFrom(&buf)
			require.NoError(t, err)
			assert.Equal(t, written, read)

			assert.Equal(t, ix.Keys(), restored.Keys())
			for _, k := range ix.Keys() {
				assert.Equal(t, ix.ListRawWords(k), restored.ListRawWords(k))
			}
		})
	}
}

func TestIndex_ReadFromCorrupt(t *testing.T) {
	ix := newFixture()
	var buf bytes.Buffer
	_, err := ix.WriteTo(&buf)
	require.NoError(t, err)

	data := buf.Bytes()
	data[len(data)-1] ^= 0xFF

	target := New()
	target.Insert("keep", 1)

	_, err = target.ReadFrom(bytes.NewReader(data))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCorruptSnapshot)
	assert.ErrorIs(t, err, snapshot.ErrChecksumMismatch)

	assert.Equal(t, []string{"keep"}, target.Keys())
}

func TestIndex_ReadFromUnbackedLength(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(slog.NewJSONHandler(&buf, nil))

	hdr := append([]byte(snapshot.Magic), snapshot.Version, byte(snapshot.CompressionNone))
	hdr = binary.LittleEndian.AppendUint64(hdr, 1<<36)
	hdr = binary.LittleEndian.AppendUint64(hdr, 1<<36)
	hdr = binary.LittleEndian.AppendUint64(hdr, 0)
	require.Len(t, hdr, snapshot.HeaderSize)

	target := New(WithLogger(logger))
	target.Insert("keep", 1)

	n, err := target.ReadFrom(bytes.NewReader(hdr))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCorruptSnapshot)
	assert.ErrorIs(t, err, snapshot.ErrInvalidData)
	assert.Equal(t, int64(snapshot.HeaderSize), n)
	assert.Equal(t, []string{"keep"}, target.Keys())

	out := buf.String()
	assert.Contains(t, out, `"msg":"restore failed"`)
	assert.NotContains(t, out, `"keys"`)
}

func TestIndex_WriteToUnsupportedCompression(t *testing.T) {
	ix := newFixture(WithCompression(snapshot.Compression(42)))

	_, err := ix.WriteTo(&bytes.Buffer{})
	assert.ErrorIs(t, err, snapshot.ErrUnsupportedCompression)
}

func TestIndex_DumpLoad(t *testing.T) {
	for _, c := range []codec.Codec{codec.JSON{}, codec.IndentJSON{}, codec.GoJSON{}} {
		t.Run(c.Name(), func(t *testing.T) {
			ix := newFixture(WithCodec(c))

			data, err := ix.Dump()
			require.NoError(t, err)

			loaded, err := Load(data, WithCodec(c))
			require.NoError(t, err)
			assert.Equal(t, ix.Keys(), loaded.Keys())
			for _, k := range ix.Keys() {
				assert.Equal(t, ix.List(k), loaded.List(k))
			}
		})
	}
}

func TestLoad_InvalidData(t *testing.T) {
	_, err := Load([]byte("{not json"))
	assert.Error(t, err)
}
