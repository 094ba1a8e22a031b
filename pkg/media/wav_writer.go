package media

import (
	"encoding/binary"
	"errors"
	"io"
)

const (
	wavHeaderSize = 44
	bitsPerSample = 16
	// sizes used while the total length is unknown
	streamingSize = 0xFFFFFFFF
)

var ErrWAVClosed = errors.New("wav writer already closed")

// WAVWriter wraps 16 bit little endian PCM into a RIFF/WAVE stream.
// The header is written first with streaming sizes; when the destination can
// seek, Close patches the real sizes in.
type WAVWriter struct {
	out         io.Writer
	sampleRate  uint32
	numChannels uint16
	numBytes    uint32
	closed      bool
}

func NewWAVWriter(out io.Writer, sampleRate uint32, numChannels uint16) (*WAVWriter, error) {
	w := &WAVWriter{
		out:         out,
		sampleRate:  sampleRate,
		numChannels: numChannels,
	}
	if err := w.writeHeader(); err != nil {
		return nil, err
	}
	return w, nil
}

// Write appends raw PCM bytes.
func (w *WAVWriter) Write(p []byte) (int, error) {
	if w.closed {
		return 0, ErrWAVClosed
	}
	n, err := w.out.Write(p)
	w.numBytes += uint32(n)
	return n, err
}

// DataSize returns the number of PCM bytes written so far.
func (w *WAVWriter) DataSize() uint32 {
	return w.numBytes
}

func (w *WAVWriter) SampleRate() int {
	return int(w.sampleRate)
}

// Close patches the header when possible. It does not close the destination.
func (w *WAVWriter) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true

	ws, ok := w.out.(io.WriteSeeker)
	if !ok {
		return nil
	}
	end, err := ws.Seek(0, io.SeekCurrent)
	if err != nil {
		// pipes and sockets keep the streaming sizes
		return nil
	}
	if err := w.updateHeader(ws); err != nil {
		return err
	}
	_, err = ws.Seek(end, io.SeekStart)
	return err
}

func (w *WAVWriter) writeHeader() error {
	byteRate := w.sampleRate * uint32(w.numChannels) * bitsPerSample / 8
	blockAlign := w.numChannels * bitsPerSample / 8

	header := make([]byte, 0, wavHeaderSize)
	header = append(header, "RIFF"...)
	header = binary.LittleEndian.AppendUint32(header, streamingSize)
	header = append(header, "WAVE"...)

	header = append(header, "fmt "...)
	header = binary.LittleEndian.AppendUint32(header, 16) // PCM sub-chunk size
	header = binary.LittleEndian.AppendUint16(header, 1)  // PCM
	header = binary.LittleEndian.AppendUint16(header, w.numChannels)
	header = binary.LittleEndian.AppendUint32(header, w.sampleRate)
	header = binary.LittleEndian.AppendUint32(header, byteRate)
	header = binary.LittleEndian.AppendUint16(header, blockAlign)
	header = binary.LittleEndian.AppendUint16(header, bitsPerSample)

	header = append(header, "data"...)
	header = binary.LittleEndian.AppendUint32(header, streamingSize)

	_, err := w.out.Write(header)
	return err
}

func (w *WAVWriter) updateHeader(ws io.WriteSeeker) error {
	if _, err := ws.Seek(4, io.SeekStart); err != nil {
		return err
	}
	if err := binary.Write(ws, binary.LittleEndian, w.numBytes+wavHeaderSize-8); err != nil {
		return err
	}

	if _, err := ws.Seek(40, io.SeekStart); err != nil {
		return err
	}
	return binary.Write(ws, binary.LittleEndian, w.numBytes)
}
