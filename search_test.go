package streamedit

import (
	"bytes"
	"context"
	"fmt"
	"testing"

	"github.com/hupe1980/streamedit/resource"
	"github.com/hupe1980/streamedit/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collect(t *testing.T, ed *Editor, pattern []byte, optFns ...FindOption) []int64 {
	t.Helper()
	var offs []int64
	for off, err := range ed.FindAll(context.Background(), pattern, optFns...) {
		require.NoError(t, err)
		offs = append(offs, off)
	}
	return offs
}

func TestFind(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		data    string
		pattern string
		want    int64
	}{
		{"Start", "abcdef", "abc", 0},
		{"Middle", "abcdef", "cd", 2},
		{"End", "abcdef", "ef", 4},
		{"WholeStream", "abcdef", "abcdef", 0},
		{"Absent", "abcdef", "xyz", NotFound},
		{"LongerThanStream", "abc", "abcd", NotFound},
		{"PartialAtEnd", "abcab", "abc", 0},
		{"MismatchConsumesByte", "aab", "ab", NotFound},
		{"MismatchConsumesPartialMatch", "aaaab", "aab", NotFound},
		{"RepeatedPrefix", "11112", "112", NotFound},
		{"RestartAfterMismatch", "xab", "ab", 1},
		{"RestartAfterPartialMatch", "abxabc", "abc", 3},
		{"Empty", "abc", "", NotFound},
		{"EmptyStream", "", "a", NotFound},
	}

	for _, tt := range tests {
		for _, size := range []int{1, 2, 4, DefaultBufferSize} {
			t.Run(fmt.Sprintf("%s/buffer=%d", tt.name, size), func(t *testing.T) {
				ed, _ := newEditor(t, []byte(tt.data), WithBufferSize(size))
				off, err := ed.Find(ctx, []byte(tt.pattern))
				require.NoError(t, err)
				assert.Equal(t, tt.want, off)
			})
		}
	}
}

func TestFind_IgnoresBufferSize(t *testing.T) {
	ed, _ := newEditor(t, scenario, WithBufferSize(0))
	off, err := ed.Find(context.Background(), []byte{9, 10})
	require.NoError(t, err)
	assert.Equal(t, int64(8), off)
}

func TestFind_PatternTooLong(t *testing.T) {
	data := bytes.Repeat([]byte{7}, MaxPatternLength+10)
	ed, _ := newEditor(t, data)

	off, err := ed.Find(context.Background(), data[:MaxPatternLength+1])
	require.NoError(t, err)
	assert.Equal(t, NotFound, off)

	off, err = ed.Find(context.Background(), data[:MaxPatternLength])
	require.NoError(t, err)
	assert.Equal(t, int64(0), off)
}

func TestFindAll(t *testing.T) {
	t.Run("NonOverlapping", func(t *testing.T) {
		ed, _ := newEditor(t, []byte("aaaaa"), WithBufferSize(2))
		assert.Equal(t, []int64{0, 2}, collect(t, ed, []byte("aa")))
	})

	t.Run("ForwardOnly", func(t *testing.T) {
		ed, _ := newEditor(t, []byte("aababxab"), WithBufferSize(3))
		assert.Equal(t, []int64{3, 6}, collect(t, ed, []byte("ab")))
	})

	t.Run("MaxCount", func(t *testing.T) {
		ed, _ := newEditor(t, []byte("xaxaxaxa"))
		assert.Equal(t, []int64{1, 3}, collect(t, ed, []byte("a"), WithMaxCount(2)))
		assert.Empty(t, collect(t, ed, []byte("a"), WithMaxCount(0)))
		assert.Len(t, collect(t, ed, []byte("a"), WithMaxCount(-1)), 4)
	})

	t.Run("MaxPosition", func(t *testing.T) {
		ed, _ := newEditor(t, []byte("abcabcabc"), WithBufferSize(3))
		assert.Equal(t, []int64{0, 3}, collect(t, ed, []byte("abc"), WithMaxPosition(4)))
		assert.Equal(t, []int64{0}, collect(t, ed, []byte("abc"), WithMaxPosition(3)))
		assert.Empty(t, collect(t, ed, []byte("abc"), WithMaxPosition(0)))
	})

	t.Run("MatchMayExtendPastMaxPosition", func(t *testing.T) {
		ed, _ := newEditor(t, []byte("xxabcd"))
		assert.Equal(t, []int64{2}, collect(t, ed, []byte("abcd"), WithMaxPosition(3)))
	})

	t.Run("EarlyBreak", func(t *testing.T) {
		mc := &BasicMetricsCollector{}
		ed, _ := newEditor(t, bytes.Repeat([]byte("ab"), 100), WithMetricsCollector(mc))

		var got []int64
		for off, err := range ed.FindAll(context.Background(), []byte("b")) {
			require.NoError(t, err)
			got = append(got, off)
			if len(got) == 3 {
				break
			}
		}
		assert.Equal(t, []int64{1, 3, 5}, got)
		assert.Equal(t, int64(1), mc.GetStats().FindCount)
		assert.Equal(t, int64(3), mc.GetStats().FindMatches)
	})

	t.Run("Rescan", func(t *testing.T) {
		ed, _ := newEditor(t, scenario)
		seq := ed.FindAll(context.Background(), []byte{1, 2})

		count := 0
		for range 2 {
			for _, err := range seq {
				require.NoError(t, err)
				count++
			}
		}
		assert.Equal(t, 4, count)
	})
}

func TestFindAll_MatchesModel(t *testing.T) {
	rng := testutil.NewRNG(99)
	alphabet := []byte("ab")

	for _, size := range []int{1, 2, 5, 64} {
		t.Run(fmt.Sprintf("buffer=%d", size), func(t *testing.T) {
			for i := 0; i < 50; i++ {
				data := rng.BytesFrom(rng.Intn(120), alphabet)
				pattern := rng.BytesFrom(1+rng.Intn(4), alphabet)

				ed, _ := newEditor(t, data, WithBufferSize(size))
				assert.Equal(t, testutil.FindAll(data, pattern), collect(t, ed, pattern),
					"data=%q pattern=%q", data, pattern)
			}
		})
	}
}

func TestFindAllSet(t *testing.T) {
	ed, _ := newEditor(t, scenario)
	set, err := ed.FindAllSet(context.Background(), []byte{3, 4, 5})
	require.NoError(t, err)
	assert.Equal(t, []uint64{2, 13}, set.ToArray())

	set, err = ed.FindAllSet(context.Background(), []byte{42})
	require.NoError(t, err)
	assert.True(t, set.IsEmpty())
}

func TestFindAll_MemoryLimit(t *testing.T) {
	rc := resource.NewController(resource.Config{MemoryLimitBytes: 4})
	ed, _ := newEditor(t, scenario, WithBufferSize(8), WithResourceController(rc))

	var errs []error
	for off, err := range ed.FindAll(context.Background(), []byte{1}) {
		assert.Equal(t, NotFound, off)
		errs = append(errs, err)
	}
	require.Len(t, errs, 1)
	assert.ErrorIs(t, errs[0], resource.ErrMemoryLimitExceeded)
}
