package engine

import (
	"fmt"
	"io"
	"os"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/flac"
	"github.com/gopxl/beep/v2/wav"

	"github.com/llehouerou/audiobook/internal/media"
)

// open decodes the referenced file. The returned streamer owns the file
// and closes it on Close.
func open(ref *media.Ref) (beep.StreamSeekCloser, beep.Format, error) {
	ext := ref.Ext()
	if !media.IsSupported(ref.Path) {
		return nil, beep.Format{}, fmt.Errorf("%w: %s", media.ErrUnsupported, ext)
	}

	f, err := os.Open(ref.Path)
	if err != nil {
		return nil, beep.Format{}, err
	}

	var (
		streamer beep.StreamSeekCloser
		format   beep.Format
	)
	switch ext {
	case media.ExtMP3:
		streamer, format, err = decodeMP3(f)
	case media.ExtM4A, media.ExtM4B, media.ExtMP4:
		streamer, format, err = decodeM4B(f)
	case media.ExtFLAC:
		if err = skipID3v2(f); err == nil {
			streamer, format, err = flac.Decode(f)
		}
	case media.ExtWAV:
		streamer, format, err = wav.Decode(f)
	}
	if err != nil {
		f.Close()
		return nil, beep.Format{}, fmt.Errorf("decode %s: %w", ref.Name(), err)
	}
	return streamer, format, nil
}

// skipID3v2 positions r after a leading ID3v2 tag, or at the start if there is none.
// Some taggers prepend ID3v2 to FLAC files, which the FLAC decoder rejects.
func skipID3v2(r io.ReadSeeker) error {
	var header [10]byte
	n, err := io.ReadFull(r, header[:])
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return err
	}
	if n < len(header) || string(header[:3]) != "ID3" {
		_, err = r.Seek(0, io.SeekStart)
		return err
	}

	// Tag size is a syncsafe integer: 7 significant bits per byte.
	size := int64(header[6])<<21 | int64(header[7])<<14 | int64(header[8])<<7 | int64(header[9])
	_, err = r.Seek(int64(len(header))+size, io.SeekStart)
	return err
}
