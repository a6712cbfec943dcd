package model

import (
	"math"
	"testing"
)

func TestClampVolume(t *testing.T) {
	tests := []struct {
		input    float64
		expected float64
	}{
		{-0.5, 0},
		{0, 0},
		{0.42, 0.42},
		{1, 1},
		{1.7, 1},
		{math.NaN(), 0},
	}

	for _, test := range tests {
		result := ClampVolume(test.input)
		if result != test.expected {
			t.Errorf("ClampVolume(%v) = %v, expected %v", test.input, result, test.expected)
		}
	}
}

func TestClampPlaybackRate(t *testing.T) {
	tests := []struct {
		input    float64
		expected float64
	}{
		{1, 1},
		{0.1, 0.5},
		{0.8, 0.75},
		{1.3, 1.25},
		{1.9, 2},
		{5, 2},
		{math.Inf(1), 1},
	}

	for _, test := range tests {
		result := ClampPlaybackRate(test.input)
		if result != test.expected {
			t.Errorf("ClampPlaybackRate(%v) = %v, expected %v", test.input, result, test.expected)
		}
	}
}

func TestClampPosition(t *testing.T) {
	tests := []struct {
		t        float64
		duration float64
		expected float64
	}{
		{-3, 100, 0},
		{50, 100, 50},
		{150, 100, 100},
		{150, 0, 150},
		{-1, 0, 0},
		{20, math.Inf(1), 20},
	}

	for _, test := range tests {
		result := ClampPosition(test.t, test.duration)
		if result != test.expected {
			t.Errorf("ClampPosition(%v, %v) = %v, expected %v", test.t, test.duration, result, test.expected)
		}
	}
}

func TestFormatTime(t *testing.T) {
	tests := []struct {
		seconds  float64
		expected string
	}{
		{-1, "0:00"},
		{0, "0:00"},
		{math.NaN(), "0:00"},
		{5, "0:05"},
		{90.9, "1:30"},
		{3600, "1:00:00"},
		{3661, "1:01:01"},
	}

	for _, test := range tests {
		result := FormatTime(test.seconds)
		if result != test.expected {
			t.Errorf("FormatTime(%v) = %s, expected %s", test.seconds, result, test.expected)
		}
	}
}

func TestPlaybackState_Progress(t *testing.T) {
	state := NewPlaybackState()
	if state.Progress() != 0 {
		t.Error("Progress with unknown duration should be 0")
	}

	state.Duration = 200
	state.CurrentTime = 50
	if state.Progress() != 0.25 {
		t.Errorf("Expected progress 0.25, got %v", state.Progress())
	}

	if state.Volume != DefaultVolume || state.PlaybackRate != DefaultPlaybackRate {
		t.Errorf("Unexpected defaults: volume=%v rate=%v", state.Volume, state.PlaybackRate)
	}
}

func TestCurrentChapter(t *testing.T) {
	var empty CurrentChapter
	if empty.IsSet() || empty.ID() != 0 {
		t.Error("Zero CurrentChapter should be unset with id 0")
	}

	cc := CurrentChapter{Chapter: &Chapter{ID: 4}, AudioURL: "u"}
	if !cc.IsSet() || cc.ID() != 4 {
		t.Errorf("Expected set chapter 4, got %v", cc.ID())
	}
}
