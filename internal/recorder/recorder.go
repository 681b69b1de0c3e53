package recorder

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"
)

// State of a recorder
type State int

const (
	StateIdle State = iota
	StateRecording
)

func (s State) String() string {
	if s == StateRecording {
		return "recording"
	}
	return "idle"
}

var (
	ErrAlreadyRecording = errors.New("recorder: already recording")
	ErrNotRecording     = errors.New("recorder: not recording")
	ErrEmptyRecording   = errors.New("recorder: no audio captured")
	ErrTooLarge         = errors.New("recorder: recording exceeds size limit")
)

// DefaultMIMEType is used when the client does not announce one
const DefaultMIMEType = "audio/webm"

// Recording is the immutable output of Stop
type Recording struct {
	Name      string
	MIMEType  string
	Data      []byte
	Chunks    int
	StartedAt time.Time
	StoppedAt time.Time
}

// Duration is the wall-clock length of the capture
func (r *Recording) Duration() time.Duration {
	return r.StoppedAt.Sub(r.StartedAt)
}

// Recorder accumulates ordered binary chunks during one bounded recording.
// idle -> recording -> idle, either through Stop (produces a Recording) or
// Cancel (discards everything). There is no pause.
type Recorder struct {
	mu        sync.Mutex
	state     State
	chunks    [][]byte
	size      int64
	maxSize   int64
	mimeType  string
	startedAt time.Time
	now       func() time.Time
}

// New creates an idle recorder. maxSize <= 0 disables the size check.
func New(maxSize int64) *Recorder {
	return &Recorder{maxSize: maxSize, now: time.Now}
}

// State reports the current state
func (r *Recorder) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Size is the number of buffered bytes
func (r *Recorder) Size() int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.size
}

// Start begins a new recording
func (r *Recorder) Start(mimeType string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state == StateRecording {
		return ErrAlreadyRecording
	}
	if mimeType == "" {
		mimeType = DefaultMIMEType
	}

	r.state = StateRecording
	r.chunks = nil
	r.size = 0
	r.mimeType = mimeType
	r.startedAt = r.now()
	return nil
}

// Append buffers one chunk. Empty chunks are ignored. The chunk is copied
// so callers may reuse their buffer.
func (r *Recorder) Append(chunk []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state != StateRecording {
		return ErrNotRecording
	}
	if len(chunk) == 0 {
		return nil
	}
	if r.maxSize > 0 && r.size+int64(len(chunk)) > r.maxSize {
		return ErrTooLarge
	}

	cp := make([]byte, len(chunk))
	copy(cp, chunk)
	r.chunks = append(r.chunks, cp)
	r.size += int64(len(cp))
	return nil
}

// Stop flushes every chunk, in order, into one blob and returns to idle
func (r *Recorder) Stop() (*Recording, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state != StateRecording {
		return nil, ErrNotRecording
	}

	stopped := r.now()
	rec := &Recording{
		Name:      FileName(r.mimeType, stopped),
		MIMEType:  r.mimeType,
		Data:      bytes.Join(r.chunks, nil),
		Chunks:    len(r.chunks),
		StartedAt: r.startedAt,
		StoppedAt: stopped,
	}
	r.reset()

	if len(rec.Data) == 0 {
		return nil, ErrEmptyRecording
	}
	return rec, nil
}

// Cancel discards buffered chunks without producing output
func (r *Recorder) Cancel() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state != StateRecording {
		return ErrNotRecording
	}
	r.reset()
	return nil
}

func (r *Recorder) reset() {
	r.state = StateIdle
	r.chunks = nil
	r.size = 0
	r.mimeType = ""
	r.startedAt = time.Time{}
}

// FileName is recording_<unix ms>.<ext>, webm unless the MIME type says mp4
func FileName(mimeType string, at time.Time) string {
	ext := "webm"
	if !strings.Contains(mimeType, "webm") && strings.Contains(mimeType, "mp4") {
		ext = "mp4"
	}
	return fmt.Sprintf("recording_%d.%s", at.UnixMilli(), ext)
}
