package engine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/llehouerou/alac"
	"github.com/llehouerou/go-faad2"
	"github.com/llehouerou/go-m4a"
)

// m4bStream decodes MPEG-4 audio (m4a, m4b audiobooks, mp4) sample by sample.
// The container is read with go-m4a; samples are decoded with faad2 (AAC)
// or alac depending on the track codec.
type m4bStream struct {
	box      *m4a.Reader
	closer   io.Closer
	codec    m4a.CodecType
	channels int
	bits     int
	length   int
	next     int
	err      error

	aac  *faad2.Decoder
	alac *alac.Alac

	pending [][2]float64
}

func decodeM4B(rc io.ReadSeekCloser) (beep.StreamSeekCloser, beep.Format, error) {
	box, err := m4a.Open(rc)
	if err != nil {
		return nil, beep.Format{}, err
	}

	rate := box.SampleRate()
	s := &m4bStream{
		box:      box,
		closer:   rc,
		codec:    box.Codec(),
		channels: int(box.Channels()),
		bits:     int(box.SampleSize()),
		length:   int(box.Duration().Seconds() * float64(rate)),
	}

	precision := 2
	switch s.codec {
	case m4a.CodecAAC:
		ctx := context.Background()
		dec, err := faad2.NewDecoder(ctx)
		if err != nil {
			return nil, beep.Format{}, err
		}
		if err := dec.Init(ctx, box.CodecConfig()); err != nil {
			dec.Close(ctx)
			return nil, beep.Format{}, err
		}
		s.aac = dec
	case m4a.CodecALAC:
		dec, err := alac.NewWithConfig(alac.Config{
			SampleRate:  int(rate),
			SampleSize:  s.bits,
			NumChannels: s.channels,
			FrameSize:   4096,
		})
		if err != nil {
			return nil, beep.Format{}, err
		}
		s.alac = dec
		if s.bits == 24 {
			precision = 3
		}
	default:
		return nil, beep.Format{}, fmt.Errorf("m4b: unsupported codec %s", s.codec)
	}

	format := beep.Format{
		SampleRate:  beep.SampleRate(rate),
		NumChannels: 2,
		Precision:   precision,
	}
	return s, format, nil
}

func (s *m4bStream) Stream(samples [][2]float64) (n int, ok bool) {
	if s.err != nil {
		return 0, false
	}
	for n < len(samples) {
		if len(s.pending) > 0 {
			c := copy(samples[n:], s.pending)
			s.pending = s.pending[c:]
			n += c
			continue
		}
		if s.next >= s.box.SampleCount() {
			return n, n > 0
		}
		frames, err := s.decodeNext()
		if err != nil {
			s.err = err
			return n, n > 0
		}
		s.pending = frames
	}
	return n, true
}

func (s *m4bStream) decodeNext() ([][2]float64, error) {
	data, err := s.box.ReadSample(s.next)
	if err != nil {
		return nil, err
	}
	s.next++

	switch s.codec {
	case m4a.CodecAAC:
		pcm, err := s.aac.Decode(context.Background(), data)
		if err != nil {
			return nil, err
		}
		return pcm16ToFrames(pcm, s.channels), nil
	case m4a.CodecALAC:
		return alacToFrames(s.alac.Decode(data), s.channels, s.bits), nil
	default:
		return nil, errors.New("m4b: unsupported codec")
	}
}

func pcm16ToFrames(pcm []int16, channels int) [][2]float64 {
	if channels < 1 {
		return nil
	}
	frames := make([][2]float64, len(pcm)/channels)
	for i := range frames {
		l := float64(pcm[i*channels]) / 32768
		r := l
		if channels > 1 {
			r = float64(pcm[i*channels+1]) / 32768
		}
		frames[i] = [2]float64{l, r}
	}
	return frames
}

// alacToFrames converts little-endian interleaved ALAC output (16 or 24 bit).
func alacToFrames(data []byte, channels, bits int) [][2]float64 {
	width := bits / 8
	if channels < 1 || width < 2 {
		return nil
	}
	scale := float64(int64(1) << (bits - 1))
	stride := width * channels
	frames := make([][2]float64, len(data)/stride)
	for i := range frames {
		off := i * stride
		l := signed(data[off:off+width]) / scale
		r := l
		if channels > 1 {
			r = signed(data[off+width:off+2*width]) / scale
		}
		frames[i] = [2]float64{l, r}
	}
	return frames
}

func signed(b []byte) float64 {
	var v int32
	for i := len(b) - 1; i >= 0; i-- {
		v = v<<8 | int32(b[i])
	}
	shift := 32 - 8*len(b)
	return float64(v << shift >> shift)
}

func (s *m4bStream) Err() error { return s.err }

func (s *m4bStream) Len() int { return s.length }

func (s *m4bStream) Position() int {
	t := s.box.SampleTime(s.next)
	return int(t.Seconds() * float64(s.box.SampleRate()))
}

func (s *m4bStream) Seek(p int) error {
	p = min(max(p, 0), s.length)
	at := time.Duration(float64(p) / float64(s.box.SampleRate()) * float64(time.Second))
	s.next = s.box.SeekToTime(at)
	s.pending = nil
	s.err = nil
	return nil
}

func (s *m4bStream) Close() error {
	if s.aac != nil {
		s.aac.Close(context.Background())
	}
	return s.closer.Close()
}
