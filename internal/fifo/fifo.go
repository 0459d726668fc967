// ABOUTME: Non-blocking named pipe plumbing for the control and status channels
// ABOUTME: Raw-syscall reads so an empty channel polls instead of parking
package fifo

import (
	"errors"
	"fmt"
	"os"
	"syscall"
)

// ErrNoReader reports a best-effort write with nobody on the other end
var ErrNoReader = errors.New("fifo: no reader")

// Ensure creates the named pipe if it does not already exist
func Ensure(path string) error {
	if err := syscall.Mkfifo(path, 0666); err != nil && !errors.Is(err, os.ErrExist) {
		return fmt.Errorf("failed to create fifo %s: %w", path, err)
	}
	return nil
}

// Reader polls a command FIFO without ever blocking the engine loop.
// Raw syscalls are used deliberately: an *os.File in non-blocking mode is
// routed through the runtime poller, which turns reads back into
// goroutine-blocking waits.
type Reader struct {
	path string
	fd   int
}

// NewReader creates a reader; the FIFO is opened lazily on first poll
func NewReader(path string) *Reader {
	return &Reader{path: path, fd: -1}
}

// Poll reads whatever bytes are available right now. No data is not an
// error: the return is (0, nil). A writer disconnect (zero-byte read)
// reopens the channel rather than failing, since the controller may
// restart at any time.
func (r *Reader) Poll(p []byte) (int, error) {
	if r.fd < 0 && !r.open() {
		return 0, nil
	}

	n, err := syscall.Read(r.fd, p)
	if n > 0 {
		return n, nil
	}
	if err == syscall.EAGAIN || err == syscall.EINTR {
		return 0, nil
	}
	if err != nil {
		r.closeFd()
		return 0, fmt.Errorf("control read failed: %w", err)
	}

	// Writer closed; reopen for the next one
	r.closeFd()
	r.open()
	return 0, nil
}

func (r *Reader) open() bool {
	fd, err := syscall.Open(r.path, syscall.O_RDONLY|syscall.O_NONBLOCK, 0)
	if err != nil {
		return false
	}
	r.fd = fd
	return true
}

func (r *Reader) closeFd() {
	if r.fd >= 0 {
		syscall.Close(r.fd)
		r.fd = -1
	}
}

// Close releases the FIFO
func (r *Reader) Close() error {
	r.closeFd()
	return nil
}

// Writer emits one record per write, opening the FIFO fresh each time so
// reader absence is detected instead of blocking the loop.
type Writer struct {
	path string
}

// NewWriter creates a best-effort writer
func NewWriter(path string) *Writer {
	return &Writer{path: path}
}

// Write opens the FIFO non-blocking, writes the record and closes. With
// no reader on the channel it returns ErrNoReader; callers drop the
// record silently.
func (w *Writer) Write(p []byte) error {
	fd, err := syscall.Open(w.path, syscall.O_WRONLY|syscall.O_NONBLOCK, 0)
	if err != nil {
		if err == syscall.ENXIO {
			return ErrNoReader
		}
		return fmt.Errorf("status open failed: %w", err)
	}
	defer syscall.Close(fd)

	if _, err := syscall.Write(fd, p); err != nil {
		return fmt.Errorf("status write failed: %w", err)
	}
	return nil
}
