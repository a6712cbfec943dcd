package model

import "testing"

func TestMediaState_CanBuffer(t *testing.T) {
	tests := []struct {
		state    MediaState
		expected bool
	}{
		{MediaStateIdle, false},
		{MediaStateLoading, false},
		{MediaStateReady, true},
		{MediaStatePlaying, true},
		{MediaStatePaused, false},
		{MediaStateError, false},
	}

	for _, test := range tests {
		result := test.state.CanBuffer()
		if result != test.expected {
			t.Errorf("MediaState(%s).CanBuffer() = %v, expected %v", test.state, result, test.expected)
		}
	}
}

func TestMediaState_HasSource(t *testing.T) {
	tests := []struct {
		state    MediaState
		expected bool
	}{
		{MediaStateIdle, false},
		{MediaStateLoading, false},
		{MediaStateReady, true},
		{MediaStatePlaying, true},
		{MediaStatePaused, true},
		{MediaStateError, false},
	}

	for _, test := range tests {
		result := test.state.HasSource()
		if result != test.expected {
			t.Errorf("MediaState(%s).HasSource() = %v, expected %v", test.state, result, test.expected)
		}
	}
}

func TestMediaState_IsFatal(t *testing.T) {
	if !MediaStateError.IsFatal() {
		t.Error("Error state should be fatal")
	}
	if MediaStatePaused.IsFatal() {
		t.Error("Paused state should not be fatal")
	}
}

func TestParseReadingMode(t *testing.T) {
	tests := []struct {
		input    string
		expected ReadingMode
		ok       bool
	}{
		{"single", ReadingModeSingle, true},
		{"continuous", ReadingModeContinuous, true},
		{"Single", "", false},
		{"", "", false},
		{"double", "", false},
	}

	for _, test := range tests {
		mode, ok := ParseReadingMode(test.input)
		if mode != test.expected || ok != test.ok {
			t.Errorf("ParseReadingMode(%q) = (%q, %v), expected (%q, %v)", test.input, mode, ok, test.expected, test.ok)
		}
	}
}
