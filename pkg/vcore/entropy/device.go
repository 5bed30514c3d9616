package entropy

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"runtime"
	"sync"
)

// DefaultDevicePath is the OS random device vcore reads from when no path is
// supplied.
const DefaultDevicePath = "/dev/urandom"

// Device reads random bytes from a buffered OS device.
// Every GetBytes call fills the destination buffer fully; it blocks or
// errors on EOF rather than fabricating randomness on a short read.
//
// Applications are warned to create few Device instances: each
// one holds an open file handle and a buffered reader for its lifetime.
// Close releases the handle deterministically; a finalizer is a backstop for
// callers who forget.
type Device struct {
	mu   sync.Mutex
	path string
	f    *os.File
	r    *bufio.Reader
}

// NewDevice opens path as a buffered random source.
func NewDevice(path string) (*Device, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &IoError{Cause: fmt.Errorf("open random device %q: %w", path, err)}
	}
	d := &Device{path: path, f: f, r: bufio.NewReader(f)}
	runtime.SetFinalizer(d, (*Device).Close)
	return d, nil
}

// NewDefaultDevice opens DefaultDevicePath.
func NewDefaultDevice() (*Device, error) {
	return NewDevice(DefaultDevicePath)
}

// GetBytes fills dest completely from the device, serialized against
// concurrent callers on the same Device.
func (d *Device) GetBytes(dest []byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.r == nil {
		return &IoError{Cause: fmt.Errorf("random device %q is closed", d.path)}
	}
	if _, err := io.ReadFull(d.r, dest); err != nil {
		return &IoError{Cause: fmt.Errorf("read %d bytes from %q: %w", len(dest), d.path, err)}
	}
	return nil
}

// Close releases the underlying file handle. It is safe to call more than
// once.
func (d *Device) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.f == nil {
		return nil
	}
	err := d.f.Close()
	d.f = nil
	d.r = nil
	runtime.SetFinalizer(d, nil)
	return err
}
