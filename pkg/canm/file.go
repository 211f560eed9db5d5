package canm

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/sys/unix"
)

// ReadFile decodes the container at path with the default codec.
func ReadFile(path string) (*Animation, error) {
	return defaultCodec.ReadFile(path)
}

// WriteFile encodes a to path with the default codec.
func WriteFile(path string, a *Animation) error {
	return defaultCodec.WriteFile(path, a)
}

// ReadFile maps the file read-only and decodes it. If mmap is unavailable it
// falls back to ReadAt-based loading. The mapping is released before
// returning; the Animation holds no reference to it.
func (c *Codec) ReadFile(path string) (*Animation, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIO, err)
	}
	defer func() { _ = f.Close() }()

	stat, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIO, err)
	}
	size64 := stat.Size()
	if size64 > int64(int(^uint(0)>>1)) {
		return nil, fmt.Errorf("%w: file too large (%d bytes)", ErrFormat, size64)
	}
	size := int(size64)
	if size < HeaderSize {
		return nil, fmt.Errorf("%w: file is %d bytes", ErrTruncated, size)
	}

	data, err := unix.Mmap(int(f.Fd()), 0, size, unix.PROT_READ, unix.MAP_SHARED)
	if err == nil {
		a, decErr := c.Decode(data)
		if unmapErr := unix.Munmap(data); unmapErr != nil && decErr == nil {
			return nil, fmt.Errorf("%w: %w", ErrIO, unmapErr)
		}
		return a, decErr
	}

	data, err = readAllAt(f, size)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIO, err)
	}
	return c.Decode(data)
}

// WriteFile encodes a and writes it to path, replacing any existing file.
func (c *Codec) WriteFile(path string, a *Animation) error {
	_, err := c.WriteFileWithStats(path, a)
	return err
}

// WriteFileWithStats is WriteFile plus the layout summary of EncodeWithStats.
// Nothing is created when encoding fails.
func (c *Codec) WriteFileWithStats(path string, a *Animation) (EncodeStats, error) {
	data, stats, err := c.EncodeWithStats(a)
	if err != nil {
		return EncodeStats{}, err
	}
	f, err := os.Create(path)
	if err != nil {
		return EncodeStats{}, fmt.Errorf("%w: %w", ErrIO, err)
	}
	if err := writeFull(f, data); err != nil {
		_ = f.Close()
		return EncodeStats{}, fmt.Errorf("%w: %w", ErrIO, err)
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		return EncodeStats{}, fmt.Errorf("%w: %w", ErrIO, err)
	}
	if err := f.Close(); err != nil {
		return EncodeStats{}, fmt.Errorf("%w: %w", ErrIO, err)
	}
	return stats, nil
}

func readAllAt(r io.ReaderAt, size int) ([]byte, error) {
	out := make([]byte, size)
	var off int64
	for off < int64(size) {
		n, err := r.ReadAt(out[off:], off)
		off += int64(n)
		if err == nil {
			continue
		}
		if err == io.EOF && off == int64(size) {
			break
		}
		return nil, err
	}
	return out, nil
}

func writeFull(w io.Writer, p []byte) error {
	for len(p) > 0 {
		n, err := w.Write(p)
		if err != nil {
			return err
		}
		p = p[n:]
	}
	return nil
}
