package navigator

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ytget/audiobook-reader/internal/model"
	"github.com/ytget/audiobook-reader/internal/store"
)

func testCatalog(n int) *model.Catalog {
	catalog := &model.Catalog{Title: "Test Book"}
	for i := 1; i <= n; i++ {
		catalog.Chapters = append(catalog.Chapters, model.Chapter{
			ID:       i,
			Title:    fmt.Sprintf("Chapter %d", i),
			AudioURL: fmt.Sprintf("https://cdn.example.com/audio/ch%02d.mp3", i),
		})
	}
	return catalog
}

type recordingFader struct {
	pending []func()
	calls   int
}

func (f *recordingFader) FadeOut(onComplete func()) bool {
	f.calls++
	if len(f.pending) > 0 {
		return false
	}
	f.pending = append(f.pending, onComplete)
	return true
}

func (f *recordingFader) finish() {
	for _, fn := range f.pending {
		fn()
	}
	f.pending = nil
}

func TestNextPrevious(t *testing.T) {
	nav := New(testCatalog(3), store.New(nil, nil), nil)

	tests := []struct {
		id       int
		next     int
		previous int
	}{
		{1, 2, 0},
		{2, 3, 1},
		{3, 0, 2},
		{42, 0, 0},
	}

	for _, tt := range tests {
		next, ok := nav.Next(tt.id)
		if (tt.next != 0) != ok || next.ID != tt.next {
			t.Errorf("Next(%d) = %d, %v, want %d", tt.id, next.ID, ok, tt.next)
		}
		prev, ok := nav.Previous(tt.id)
		if (tt.previous != 0) != ok || prev.ID != tt.previous {
			t.Errorf("Previous(%d) = %d, %v, want %d", tt.id, prev.ID, ok, tt.previous)
		}
	}
}

func TestNextPreviousSymmetry(t *testing.T) {
	catalog := testCatalog(7)
	nav := New(catalog, store.New(nil, nil), nil)

	for i, ch := range catalog.Chapters {
		if prev, ok := nav.Previous(ch.ID); ok {
			back, ok := nav.Next(prev.ID)
			assert.True(t, ok)
			assert.Equal(t, ch.ID, back.ID)
		} else {
			assert.Zero(t, i, "only the first chapter has no previous")
		}

		if next, ok := nav.Next(ch.ID); ok {
			back, ok := nav.Previous(next.ID)
			assert.True(t, ok)
			assert.Equal(t, ch.ID, back.ID)
		} else {
			assert.Equal(t, len(catalog.Chapters)-1, i, "only the last chapter has no next")
		}
	}
}

func TestGoToNextWhilePlayingKeepsPlaying(t *testing.T) {
	catalog := testCatalog(3)
	st := store.New(nil, nil)
	nav := New(catalog, st, nil)
	st.PlayChapter(catalog.Chapters[1])

	require.True(t, nav.GoToNext())
	snap := st.Snapshot()
	assert.Equal(t, 3, snap.CurrentChapter.ID())
	assert.True(t, snap.IsPlaying)
	assert.False(t, nav.HasNext())

	assert.False(t, nav.GoToNext())
	assert.Equal(t, snap, st.Snapshot())
}

func TestGoToWhilePausedOnlyBrowses(t *testing.T) {
	catalog := testCatalog(3)
	st := store.New(nil, nil)
	nav := New(catalog, st, nil)
	st.SelectChapter(catalog.Chapters[0])

	var raised bool
	st.Subscribe(func(prev, next model.PlaybackState) {
		if next.IsPlaying && !prev.IsPlaying {
			raised = true
		}
	})

	require.True(t, nav.GoToNext())
	require.True(t, nav.GoToChapter(3))
	require.True(t, nav.GoToPrevious())

	assert.False(t, raised)
	assert.Equal(t, 2, st.Snapshot().CurrentChapter.ID())
	assert.False(t, st.Snapshot().IsPlaying)
}

func TestGoToPreviousAtFirstIsNoop(t *testing.T) {
	catalog := testCatalog(3)
	st := store.New(nil, nil)
	nav := New(catalog, st, nil)
	st.SelectChapter(catalog.Chapters[0])

	assert.False(t, nav.HasPrevious())
	assert.False(t, nav.GoToPrevious())
	assert.Equal(t, 1, st.Snapshot().CurrentChapter.ID())
}

func TestGoToChapterUnknownOrCurrent(t *testing.T) {
	catalog := testCatalog(3)
	st := store.New(nil, nil)
	nav := New(catalog, st, nil)
	st.SelectChapter(catalog.Chapters[1])

	assert.False(t, nav.GoToChapter(99))
	assert.False(t, nav.GoToChapter(2))
	assert.Equal(t, 2, st.Snapshot().CurrentChapter.ID())
}

func TestNothingSelected(t *testing.T) {
	nav := New(testCatalog(3), store.New(nil, nil), nil)

	_, ok := nav.Current()
	assert.False(t, ok)
	assert.Equal(t, -1, nav.Index())
	assert.Equal(t, 3, nav.Total())
	assert.False(t, nav.HasNext())
	assert.False(t, nav.HasPrevious())
	assert.False(t, nav.GoToNext())
	assert.False(t, nav.AdvanceOnEnded())
}

func TestSelectInitial(t *testing.T) {
	catalog := testCatalog(3)
	st := store.New(nil, nil)
	nav := New(catalog, st, nil)

	require.True(t, nav.SelectInitial())
	assert.Equal(t, 1, st.Snapshot().CurrentChapter.ID())
	assert.False(t, st.Snapshot().IsPlaying)

	nav.GoToNext()
	assert.False(t, nav.SelectInitial())
	assert.Equal(t, 2, st.Snapshot().CurrentChapter.ID())
}

func TestAdvanceOnEnded(t *testing.T) {
	catalog := testCatalog(2)
	st := store.New(nil, nil)
	nav := New(catalog, st, nil)
	fader := &recordingFader{}
	nav.SetFader(fader)
	st.PlayChapter(catalog.Chapters[0])

	require.True(t, nav.AdvanceOnEnded())
	assert.Equal(t, 2, st.Snapshot().CurrentChapter.ID())
	assert.True(t, st.Snapshot().IsPlaying)
	assert.Zero(t, fader.calls, "natural end switches without a fade")

	assert.False(t, nav.AdvanceOnEnded())
}

func TestSwitchWhilePlayingRunsInsideFade(t *testing.T) {
	catalog := testCatalog(3)
	st := store.New(nil, nil)
	nav := New(catalog, st, nil)
	fader := &recordingFader{}
	nav.SetFader(fader)
	st.PlayChapter(catalog.Chapters[0])

	require.True(t, nav.GoToNext())
	assert.Equal(t, 1, st.Snapshot().CurrentChapter.ID(), "switch waits for the fade")

	assert.False(t, nav.GoToNext(), "second switch during a fade is rejected")

	fader.finish()
	assert.Equal(t, 2, st.Snapshot().CurrentChapter.ID())
	assert.True(t, st.Snapshot().IsPlaying)
}

func TestPauseDuringFadeBrowses(t *testing.T) {
	catalog := testCatalog(3)
	st := store.New(nil, nil)
	nav := New(catalog, st, nil)
	fader := &recordingFader{}
	nav.SetFader(fader)
	st.PlayChapter(catalog.Chapters[0])

	require.True(t, nav.GoToNext())
	st.SetPlaying(false)
	fader.finish()

	assert.Equal(t, 2, st.Snapshot().CurrentChapter.ID())
	assert.False(t, st.Snapshot().IsPlaying)
}

func TestSwitchWhilePausedSkipsFade(t *testing.T) {
	catalog := testCatalog(3)
	st := store.New(nil, nil)
	nav := New(catalog, st, nil)
	fader := &recordingFader{}
	nav.SetFader(fader)
	st.SelectChapter(catalog.Chapters[0])

	require.True(t, nav.GoToNext())
	assert.Zero(t, fader.calls)
	assert.Equal(t, 2, st.Snapshot().CurrentChapter.ID())
}
