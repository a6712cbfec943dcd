package notify

import (
	"strings"
	"testing"
	"time"

	"github.com/ytget/audiobook-reader/internal/eventloop"
)

func TestKindDuration(t *testing.T) {
	tests := []struct {
		kind     Kind
		expected time.Duration
		alarm    bool
	}{
		{KindSuccess, 2 * time.Second, false},
		{KindError, 5 * time.Second, true},
		{KindWarning, 4 * time.Second, true},
		{KindInfo, 3 * time.Second, false},
		{KindLoading, 0, false},
	}

	for _, tt := range tests {
		if got := tt.kind.Duration(); got != tt.expected {
			t.Errorf("%s.Duration() = %v, want %v", tt.kind, got, tt.expected)
		}
		if got := tt.kind.IsAlarm(); got != tt.alarm {
			t.Errorf("%s.IsAlarm() = %v, want %v", tt.kind, got, tt.alarm)
		}
	}
}

func TestNotifyExpiresAfterKindDuration(t *testing.T) {
	clock := eventloop.NewManual()
	center := NewCenter(clock, nil)

	n := center.Warning("Buffering...", "Downloading audio content")
	if !strings.HasPrefix(n.ID, IDPrefix) {
		t.Errorf("Expected id prefix %s, got %s", IDPrefix, n.ID)
	}
	if len(center.Active()) != 1 {
		t.Fatalf("Expected 1 active notification, got %d", len(center.Active()))
	}

	clock.Advance(WarningDuration - time.Millisecond)
	if len(center.Active()) != 1 {
		t.Fatal("Warning expired too early")
	}
	clock.Advance(time.Millisecond)
	if len(center.Active()) != 0 {
		t.Fatal("Warning should have expired")
	}
}

func TestLoadingStaysUntilDismissed(t *testing.T) {
	clock := eventloop.NewManual()
	center := NewCenter(clock, nil)

	n := center.Loading("Loading...", "")
	clock.Advance(time.Minute)
	if len(center.Active()) != 1 {
		t.Fatal("Loading notification should not expire")
	}
	if !center.Dismiss(n.ID) {
		t.Fatal("Dismiss should report true for active notification")
	}
	if center.Dismiss(n.ID) {
		t.Error("Second Dismiss should report false")
	}
}

func TestMaxVisibleDropsOldest(t *testing.T) {
	clock := eventloop.NewManual()
	center := NewCenter(clock, nil)

	first := center.Info("one", "")
	center.Info("two", "")
	center.Info("three", "")
	center.Info("four", "")

	active := center.Active()
	if len(active) != MaxVisible {
		t.Fatalf("Expected %d notifications, got %d", MaxVisible, len(active))
	}
	for _, n := range active {
		if n.ID == first.ID {
			t.Error("Oldest notification should have been dropped")
		}
	}
	if clock.Pending() != MaxVisible {
		t.Errorf("Dropped notification timer should be cancelled, pending=%d", clock.Pending())
	}
}

func TestTranslatorAndUpdateCallback(t *testing.T) {
	clock := eventloop.NewManual()
	center := NewCenter(clock, nil)
	center.SetTranslator(strings.ToUpper)

	var updates [][]Notification
	center.SetUpdateCallback(func(list []Notification) {
		updates = append(updates, list)
	})

	n := center.Error("playback_error", "error_decode")
	if n.Title != "PLAYBACK_ERROR" || n.Message != "ERROR_DECODE" {
		t.Errorf("Expected translated text, got %q / %q", n.Title, n.Message)
	}
	center.DismissAll()

	if len(updates) != 2 {
		t.Fatalf("Expected 2 updates, got %d", len(updates))
	}
	if len(updates[0]) != 1 || len(updates[1]) != 0 {
		t.Errorf("Unexpected update sizes %d, %d", len(updates[0]), len(updates[1]))
	}
}

func TestCloseCancelsTimers(t *testing.T) {
	clock := eventloop.NewManual()
	center := NewCenter(clock, nil)
	center.Success("Saved", "")

	center.Close()
	if clock.Pending() != 0 {
		t.Errorf("Expected no pending timers after Close, got %d", clock.Pending())
	}
}
