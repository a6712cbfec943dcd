package ebitenaudio

import (
	"bytes"
	"fmt"
	"io"

	"github.com/hajimehoshi/ebiten/v2/audio/mp3"
	"github.com/hajimehoshi/ebiten/v2/audio/vorbis"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"

	"github.com/ytget/audiobook-reader/internal/media"
)

// bytesPerFrame is the size of one 16-bit stereo PCM frame
const bytesPerFrame = 4

type pcmStream interface {
	io.ReadSeeker
	Length() int64
}

// decode turns an encoded source into a seekable PCM stream at sampleRate
func decode(format Format, sampleRate int, data []byte) (pcmStream, error) {
	reader := bytes.NewReader(data)

	var (
		stream pcmStream
		err    error
	)
	switch format {
	case FormatMP3:
		stream, err = mp3.DecodeWithSampleRate(sampleRate, reader)
	case FormatWAV:
		stream, err = wav.DecodeWithSampleRate(sampleRate, reader)
	case FormatVorbis:
		stream, err = vorbis.DecodeWithSampleRate(sampleRate, reader)
	default:
		return nil, &media.Error{Code: media.ErrorCodeSrcNotSupported, Message: "unrecognized audio format"}
	}
	if err != nil {
		return nil, &media.Error{Code: media.ErrorCodeDecode, Message: fmt.Sprintf("decode %s: %v", format, err)}
	}
	if stream.Length() <= 0 {
		return nil, &media.Error{Code: media.ErrorCodeDecode, Message: fmt.Sprintf("decode %s: empty stream", format)}
	}
	return stream, nil
}
