package service

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"

	"github.com/timmy/dailyreel/internal/domain"
	"github.com/timmy/dailyreel/internal/sink"
)

type fakeCompleter struct {
	content string
	err     error
	calls   int
	system  string
	user    string
}

func (f *fakeCompleter) Complete(_ context.Context, system, user string) (string, error) {
	f.calls++
	f.system, f.user = system, user
	return f.content, f.err
}

// fakeSource is an in-memory candidate source and processed marker.
type fakeSource struct {
	mu         sync.Mutex
	files      []domain.CandidateFile
	listErr    error
	streamErr  error
	opened     []string
	closed     int
	marks      map[string]domain.ProcessedMark
	markErr    error
	archiveErr error
	archived   []string
	archiveOn  bool
}

func (f *fakeSource) ListPending(context.Context) ([]domain.CandidateFile, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	var pending []domain.CandidateFile
	for _, file := range f.files {
		if _, done := f.marks[file.ID]; !done {
			pending = append(pending, file)
		}
	}
	return pending, nil
}

func (f *fakeSource) OpenStream(_ context.Context, id string) (io.ReadCloser, error) {
	if f.streamErr != nil {
		return nil, f.streamErr
	}
	f.mu.Lock()
	f.opened = append(f.opened, id)
	f.mu.Unlock()
	return &trackedReader{Reader: strings.NewReader("bytes of " + id), onClose: func() {
		f.mu.Lock()
		f.closed++
		f.mu.Unlock()
	}}, nil
}

func (f *fakeSource) MarkProcessed(_ context.Context, id string, mark domain.ProcessedMark) error {
	if f.markErr != nil {
		return f.markErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.marks == nil {
		f.marks = map[string]domain.ProcessedMark{}
	}
	f.marks[id] = mark
	return nil
}

func (f *fakeSource) Archive(_ context.Context, id string) (bool, error) {
	if !f.archiveOn {
		return false, nil
	}
	if f.archiveErr != nil {
		return false, f.archiveErr
	}
	f.mu.Lock()
	f.archived = append(f.archived, id)
	f.mu.Unlock()
	return true, nil
}

type trackedReader struct {
	io.Reader
	onClose func()
}

func (r *trackedReader) Close() error {
	r.onClose()
	return nil
}

type fakePublisher struct {
	mu      sync.Mutex
	err     error
	noID    bool
	nextID  int
	uploads []sink.VideoMetadata
	arrived chan struct{}
	gate    chan struct{}
}

func (p *fakePublisher) Publish(_ context.Context, media io.Reader, meta sink.VideoMetadata) (string, error) {
	if p.arrived != nil {
		p.arrived <- struct{}{}
	}
	if p.gate != nil {
		<-p.gate
	}
	if p.err != nil {
		return "", p.err
	}
	if _, err := io.ReadAll(media); err != nil {
		return "", err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.nextID++
	p.uploads = append(p.uploads, meta)
	if p.noID {
		return "", nil
	}
	return "vid-" + string(rune('0'+p.nextID)), nil
}

var errTransport = errors.New("connection reset by peer")
