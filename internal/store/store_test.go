package store

import (
	"sync"
	"testing"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ytget/audiobook-reader/internal/config"
	"github.com/ytget/audiobook-reader/internal/model"
)

func chapter(id int) model.Chapter {
	return model.Chapter{ID: id, Title: "Chapter", AudioURL: "https://cdn.example.com/chapter" + string(rune('0'+id)) + ".mp3"}
}

func TestNewUsesDefaults(t *testing.T) {
	s := New(nil, nil)
	st := s.Snapshot()

	assert.False(t, st.IsPlaying)
	assert.Equal(t, model.DefaultVolume, st.Volume)
	assert.Equal(t, model.DefaultPlaybackRate, st.PlaybackRate)
	assert.False(t, st.CurrentChapter.IsSet())
}

func TestRestoresPersistedVolumeAndRate(t *testing.T) {
	prefs := test.NewApp().Preferences()
	settings := config.NewSettings(prefs, config.PlayerNamespace)

	first := New(settings, nil)
	first.SetVolume(0.4)
	first.SetPlaybackRate(1.25)
	first.PlayChapter(chapter(2))
	first.SetCurrentTime(12)

	second := New(settings, nil)
	st := second.Snapshot()
	assert.Equal(t, 0.4, st.Volume)
	assert.Equal(t, 1.25, st.PlaybackRate)
	assert.False(t, st.IsPlaying, "playing intent must not be restored")
	assert.False(t, st.CurrentChapter.IsSet())
	assert.Zero(t, st.CurrentTime)
}

func TestSelectChapterKeepsIntent(t *testing.T) {
	s := New(nil, nil)
	s.SetCurrentTime(5)

	s.SelectChapter(chapter(1))
	st := s.Snapshot()
	assert.False(t, st.IsPlaying)
	assert.Equal(t, 1, st.CurrentChapter.ID())
	assert.Equal(t, chapter(1).AudioURL, st.CurrentChapter.AudioURL)
	assert.Zero(t, st.CurrentTime)
	assert.Zero(t, st.Duration)

	s.SetPlaying(true)
	s.SelectChapter(chapter(2))
	assert.True(t, s.Snapshot().IsPlaying)
}

func TestPlayChapterRaisesIntent(t *testing.T) {
	s := New(nil, nil)
	s.PlayChapter(chapter(3))

	st := s.Snapshot()
	assert.True(t, st.IsPlaying)
	assert.Equal(t, 3, st.CurrentChapter.ID())
}

func TestCurrentTimeClampedToDuration(t *testing.T) {
	s := New(nil, nil)

	s.SetCurrentTime(500)
	assert.Equal(t, 500.0, s.Snapshot().CurrentTime, "unknown duration only clamps below")

	s.SetDuration(120)
	assert.Equal(t, 120.0, s.Snapshot().CurrentTime)

	s.SetCurrentTime(-3)
	assert.Zero(t, s.Snapshot().CurrentTime)

	s.SetCurrentTime(130)
	assert.Equal(t, 120.0, s.Snapshot().CurrentTime)
}

func TestVolumeAndRateClamped(t *testing.T) {
	s := New(nil, nil)

	s.SetVolume(1.5)
	assert.Equal(t, 1.0, s.Snapshot().Volume)
	s.SetVolume(-0.2)
	assert.Equal(t, 0.0, s.Snapshot().Volume)

	s.SetPlaybackRate(3)
	assert.Equal(t, 2.0, s.Snapshot().PlaybackRate)
	s.SetPlaybackRate(0.6)
	assert.Equal(t, 0.5, s.Snapshot().PlaybackRate)
}

func TestSetDurationIgnoresNonFinite(t *testing.T) {
	s := New(nil, nil)
	s.SetDuration(60)
	s.SetDuration(-1)
	assert.Zero(t, s.Snapshot().Duration)
}

func TestResetKeepsChapter(t *testing.T) {
	s := New(nil, nil)
	s.PlayChapter(chapter(1))
	s.SetDuration(60)
	s.SetCurrentTime(30)

	s.Reset()
	st := s.Snapshot()
	assert.False(t, st.IsPlaying)
	assert.Zero(t, st.CurrentTime)
	assert.Equal(t, 1, st.CurrentChapter.ID())
}

func TestSubscribeReceivesPrevAndNext(t *testing.T) {
	s := New(nil, nil)
	var got []model.PlaybackState
	unsubscribe := s.Subscribe(func(prev, next model.PlaybackState) {
		got = append(got, prev, next)
	})

	s.SetPlaying(true)
	require.Len(t, got, 2)
	assert.False(t, got[0].IsPlaying)
	assert.True(t, got[1].IsPlaying)

	s.SetPlaying(true)
	assert.Len(t, got, 2, "no-op mutations are not broadcast")

	unsubscribe()
	unsubscribe()
	s.SetPlaying(false)
	assert.Len(t, got, 2)
}

func TestReentrantMutationDeliveredInOrder(t *testing.T) {
	s := New(nil, nil)
	var order []string

	s.Subscribe(func(prev, next model.PlaybackState) {
		if !prev.IsPlaying && next.IsPlaying {
			order = append(order, "a:playing")
			s.SetCurrentTime(7)
			order = append(order, "a:done")
			return
		}
		order = append(order, "a:time")
	})
	s.Subscribe(func(prev, next model.PlaybackState) {
		if next.CurrentTime == 7 {
			order = append(order, "b:time")
			return
		}
		order = append(order, "b:playing")
	})

	s.SetPlaying(true)
	assert.Equal(t, []string{"a:playing", "a:done", "b:playing", "a:time", "b:time"}, order)
	assert.Equal(t, 7.0, s.Snapshot().CurrentTime)
}

func TestListenerPanicDoesNotStopDelivery(t *testing.T) {
	s := New(nil, nil)
	calls := 0
	s.Subscribe(func(prev, next model.PlaybackState) { panic("boom") })
	s.Subscribe(func(prev, next model.PlaybackState) { calls++ })

	s.SetPlaying(true)
	s.SetPlaying(false)
	assert.Equal(t, 2, calls)
}

func TestConcurrentMutations(t *testing.T) {
	s := New(nil, nil)
	var mu sync.Mutex
	count := 0
	s.Subscribe(func(prev, next model.PlaybackState) {
		mu.Lock()
		count++
		mu.Unlock()
	})

	var wg sync.WaitGroup
	for i := 1; i <= 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			s.SetCurrentTime(float64(n))
		}(i)
	}
	wg.Wait()

	mu.Lock()
	defer mu.Unlock()
	assert.GreaterOrEqual(t, count, 1)
	assert.LessOrEqual(t, count, 50)
}
