package formats

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/Faultbox/midgard-anim/pkg/denseclip"
)

// DCLIP format errors.
var (
	ErrInvalidDClipMagic       = errors.New("invalid DCLIP magic: expected 'DC'")
	ErrUnsupportedDClipVersion = errors.New("unsupported DCLIP version")
	ErrTruncatedDClipData      = errors.New("truncated DCLIP data")
	ErrInvalidDClipLayout      = errors.New("invalid DCLIP layout")
)

// DClipVersion is the only layout version written and read.
const DClipVersion uint16 = 0x0100

// dclipHeaderSize is magic(2) + version(2) + frameCount(4) + curveCount(4) +
// sampleRate(4) + beginTime(4).
const dclipHeaderSize = 20

// DClipHeader is the fixed header of a persisted dense clip.
type DClipHeader struct {
	Version    uint16
	FrameCount uint32
	CurveCount uint32
	SampleRate float32
	BeginTime  float32
}

// ParseDClipHeader decodes the header without touching the sample data.
func ParseDClipHeader(data []byte) (DClipHeader, error) {
	if len(data) < dclipHeaderSize {
		return DClipHeader{}, ErrTruncatedDClipData
	}
	if data[0] != 'D' || data[1] != 'C' {
		return DClipHeader{}, ErrInvalidDClipMagic
	}

	h := DClipHeader{
		Version:    binary.LittleEndian.Uint16(data[2:4]),
		FrameCount: binary.LittleEndian.Uint32(data[4:8]),
		CurveCount: binary.LittleEndian.Uint32(data[8:12]),
		SampleRate: math.Float32frombits(binary.LittleEndian.Uint32(data[12:16])),
		BeginTime:  math.Float32frombits(binary.LittleEndian.Uint32(data[16:20])),
	}
	if h.Version != DClipVersion {
		return DClipHeader{}, fmt.Errorf("%w: 0x%X", ErrUnsupportedDClipVersion, h.Version)
	}
	if h.FrameCount == 0 || !(h.SampleRate > 0) {
		return DClipHeader{}, fmt.Errorf("%w: %d frames at %v Hz", ErrInvalidDClipLayout, h.FrameCount, h.SampleRate)
	}
	return h, nil
}

// ParseDenseClip decodes a persisted dense clip. The sample array is
// allocated from alloc; the caller owns the returned clip.
func ParseDenseClip(data []byte, alloc denseclip.Allocator) (*denseclip.DenseClip, error) {
	h, err := ParseDClipHeader(data)
	if err != nil {
		return nil, err
	}

	count := uint64(h.FrameCount) * uint64(h.CurveCount)
	if count > uint64(len(data)-dclipHeaderSize)/4 {
		return nil, fmt.Errorf("%w: need %d samples", ErrTruncatedDClipData, count)
	}
	if uint64(h.FrameCount) > math.MaxInt || uint64(h.CurveCount) > math.MaxInt {
		return nil, fmt.Errorf("%w: %dx%d exceeds addressable size", ErrInvalidDClipLayout, h.FrameCount, h.CurveCount)
	}

	clip, err := denseclip.Restore(int(h.FrameCount), int(h.CurveCount), h.SampleRate, h.BeginTime, alloc)
	if err != nil {
		return nil, fmt.Errorf("restoring clip: %w", err)
	}

	r := bytes.NewReader(data[dclipHeaderSize:])
	if err := binary.Read(r, binary.LittleEndian, clip.Samples()); err != nil {
		_ = clip.Destroy(alloc)
		return nil, fmt.Errorf("reading samples: %w", err)
	}
	return clip, nil
}

// LoadDenseClip reads and parses a .dclip file.
func LoadDenseClip(path string, alloc denseclip.Allocator) (*denseclip.DenseClip, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseDenseClip(data, alloc)
}

// WriteDenseClip encodes clip in the persisted layout.
func WriteDenseClip(w io.Writer, clip *denseclip.DenseClip) error {
	if clip.Released() {
		return denseclip.ErrAlreadyReleased
	}

	var hdr [dclipHeaderSize]byte
	hdr[0], hdr[1] = 'D', 'C'
	binary.LittleEndian.PutUint16(hdr[2:4], DClipVersion)
	binary.LittleEndian.PutUint32(hdr[4:8], uint32(clip.FrameCount()))
	binary.LittleEndian.PutUint32(hdr[8:12], uint32(clip.CurveCount()))
	binary.LittleEndian.PutUint32(hdr[12:16], math.Float32bits(clip.SampleRate()))
	binary.LittleEndian.PutUint32(hdr[16:20], math.Float32bits(clip.BeginTime()))

	if _, err := w.Write(hdr[:]); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	if err := binary.Write(w, binary.LittleEndian, clip.Samples()); err != nil {
		return fmt.Errorf("writing samples: %w", err)
	}
	return nil
}

// SaveDenseClip writes clip to path.
func SaveDenseClip(path string, clip *denseclip.DenseClip) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	bw := bufio.NewWriter(f)
	if err := WriteDenseClip(bw, clip); err != nil {
		f.Close()
		return err
	}
	if err := bw.Flush(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
