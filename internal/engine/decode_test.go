package engine

import (
	"bytes"
	"encoding/binary"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/audiobook/internal/media"
)

// pcmWAV builds a 16-bit stereo PCM WAV file with frames silent frames.
func pcmWAV(rate uint32, frames int) []byte {
	data := frames * 4
	var buf bytes.Buffer
	buf.WriteString("RIFF")
	binary.Write(&buf, binary.LittleEndian, uint32(36+data))
	buf.WriteString("WAVE")
	buf.WriteString("fmt ")
	binary.Write(&buf, binary.LittleEndian, uint32(16))
	binary.Write(&buf, binary.LittleEndian, uint16(1)) // PCM
	binary.Write(&buf, binary.LittleEndian, uint16(2))
	binary.Write(&buf, binary.LittleEndian, rate)
	binary.Write(&buf, binary.LittleEndian, rate*4)
	binary.Write(&buf, binary.LittleEndian, uint16(4))
	binary.Write(&buf, binary.LittleEndian, uint16(16))
	buf.WriteString("data")
	binary.Write(&buf, binary.LittleEndian, uint32(data))
	buf.Write(make([]byte, data))
	return buf.Bytes()
}

func TestOpen_WAV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chapter.wav")
	require.NoError(t, os.WriteFile(path, pcmWAV(8000, 16000), 0o644))

	s, format, err := open(&media.Ref{Path: path})
	require.NoError(t, err)
	defer s.Close()

	assert.Equal(t, 8000, int(format.SampleRate))
	assert.Equal(t, 16000, s.Len())
	assert.Equal(t, "2s", format.SampleRate.D(s.Len()).String())

	require.NoError(t, s.Seek(8000))
	assert.Equal(t, 8000, s.Position())
}

func TestOpen_Unsupported(t *testing.T) {
	_, _, err := open(&media.Ref{Path: "/tmp/book.ogg"})
	assert.ErrorIs(t, err, media.ErrUnsupported)
}

func TestOpen_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.flac")
	require.NoError(t, os.WriteFile(path, []byte("definitely not flac"), 0o644))

	_, _, err := open(&media.Ref{Path: path})
	assert.Error(t, err)
}

func TestSkipID3v2(t *testing.T) {
	t.Run("no tag rewinds", func(t *testing.T) {
		r := bytes.NewReader([]byte("fLaC0123456789"))
		require.NoError(t, skipID3v2(r))
		pos, _ := r.Seek(0, io.SeekCurrent)
		assert.Equal(t, int64(0), pos)
	})

	t.Run("tag is skipped", func(t *testing.T) {
		// Syncsafe size 0x0101 = 129 bytes.
		header := []byte{'I', 'D', '3', 4, 0, 0, 0, 0, 1, 1}
		data := append(header, make([]byte, 129)...)
		data = append(data, []byte("fLaC")...)
		r := bytes.NewReader(data)

		require.NoError(t, skipID3v2(r))
		rest, _ := io.ReadAll(r)
		assert.Equal(t, "fLaC", string(rest))
	})

	t.Run("short input rewinds", func(t *testing.T) {
		r := bytes.NewReader([]byte("ID3"))
		require.NoError(t, skipID3v2(r))
		pos, _ := r.Seek(0, io.SeekCurrent)
		assert.Equal(t, int64(0), pos)
	})
}

func TestPCM16ToFrames(t *testing.T) {
	stereo := pcm16ToFrames([]int16{16384, -16384, 0, 32767}, 2)
	require.Len(t, stereo, 2)
	assert.InDelta(t, 0.5, stereo[0][0], 1e-9)
	assert.InDelta(t, -0.5, stereo[0][1], 1e-9)

	mono := pcm16ToFrames([]int16{-32768}, 1)
	require.Len(t, mono, 1)
	assert.InDelta(t, -1.0, mono[0][0], 1e-9)
	assert.Equal(t, mono[0][0], mono[0][1])

	assert.Nil(t, pcm16ToFrames([]int16{1}, 0))
}

func TestALACToFrames(t *testing.T) {
	// 16-bit stereo: 0x4000 (0.5) and 0xC000 (-0.5).
	frames := alacToFrames([]byte{0x00, 0x40, 0x00, 0xC0}, 2, 16)
	require.Len(t, frames, 1)
	assert.InDelta(t, 0.5, frames[0][0], 1e-9)
	assert.InDelta(t, -0.5, frames[0][1], 1e-9)

	// 24-bit mono: 0xC00000 (-0.5).
	frames = alacToFrames([]byte{0x00, 0x00, 0xC0}, 1, 24)
	require.Len(t, frames, 1)
	assert.InDelta(t, -0.5, frames[0][0], 1e-9)
	assert.Equal(t, frames[0][0], frames[0][1])
}
