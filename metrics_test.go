package bitdex

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBasicMetricsCollector_GetStats(t *testing.T) {
	var mc BasicMetricsCollector

	assert.Equal(t, BasicMetricsStats{}, mc.GetStats())

	mc.RecordInsert(10 * time.Nanosecond)
	mc.RecordInsert(30 * time.Nanosecond)
	mc.RecordBatchInsert(5, time.Microsecond)
	mc.RecordLookup("get_as_binary", 40*time.Nanosecond, nil)
	mc.RecordLookup("get_as_binary", 60*time.Nanosecond, ErrKeyNotFound)
	mc.RecordSetOp("and", 3, 100*time.Nanosecond, nil)
	mc.RecordSetOp("and", 0, 300*time.Nanosecond, errors.New("boom"))

	stats := mc.GetStats()
	assert.Equal(t, int64(2), stats.InsertCount)
	assert.Equal(t, int64(20), stats.InsertAvgNanos)
	assert.Equal(t, int64(1), stats.BatchInsertCount)
	assert.Equal(t, int64(5), stats.BatchInsertItems)
	assert.Equal(t, int64(1000), stats.BatchInsertAvgNanos)
	assert.Equal(t, int64(2), stats.LookupCount)
	assert.Equal(t, int64(1), stats.LookupErrors)
	assert.Equal(t, int64(50), stats.LookupAvgNanos)
	assert.Equal(t, int64(2), stats.SetOpCount)
	assert.Equal(t, int64(1), stats.SetOpErrors)
	assert.Equal(t, int64(3), stats.SetOpResults)
	assert.Equal(t, int64(200), stats.SetOpAvgNanos)
}

func TestBasicMetricsCollector_SharedAcrossIndexes(t *testing.T) {
	mc := &BasicMetricsCollector{}

	var wg sync.WaitGroup
	for w := 0; w < 4; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ix := New(WithMetricsCollector(mc))
			for i := uint32(0); i < 100; i++ {
				ix.Insert("k", i)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(400), mc.GetStats().InsertCount)
}
