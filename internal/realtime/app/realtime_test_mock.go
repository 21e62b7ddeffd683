package app

import (
	"context"
	"encoding/json"
	"sync"

	"taskflow_realtime/internal/realtime/domain"

	"github.com/stretchr/testify/mock"
)

// FrameLog records frames of several connections in global delivery order
type FrameLog struct {
	mu      sync.Mutex
	entries []LoggedFrame
}

// LoggedFrame one delivered frame
type LoggedFrame struct {
	Owner string
	Frame domain.WSResponse
}

// Entries copy of the log
func (l *FrameLog) Entries() []LoggedFrame {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]LoggedFrame(nil), l.entries...)
}

// RecordingSender Sender that keeps every frame, Full makes it drop
type RecordingSender struct {
	mu     sync.Mutex
	name   string
	frames []domain.WSResponse
	full   bool
	log    *FrameLog
}

// NewRecordingSender create RecordingSender, log may be nil
func NewRecordingSender(name string, log *FrameLog) *RecordingSender {
	return &RecordingSender{name: name, log: log}
}

// Enqueue record frame
func (r *RecordingSender) Enqueue(resp domain.WSResponse) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.full {
		return false
	}
	r.frames = append(r.frames, resp)
	if r.log != nil {
		r.log.mu.Lock()
		r.log.entries = append(r.log.entries, LoggedFrame{Owner: r.name, Frame: resp})
		r.log.mu.Unlock()
	}
	return true
}

// SetFull make later Enqueue calls fail
func (r *RecordingSender) SetFull(full bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.full = full
}

// Frames copy of received frames
func (r *RecordingSender) Frames() []domain.WSResponse {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.WSResponse(nil), r.frames...)
}

// Events event names of received frames
func (r *RecordingSender) Events() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.frames))
	for _, f := range r.frames {
		out = append(out, f.Event)
	}
	return out
}

// Last last frame with event name, false when none
func (r *RecordingSender) Last(event domain.Event) (domain.WSResponse, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := len(r.frames) - 1; i >= 0; i-- {
		if r.frames[i].Event == string(event) {
			return r.frames[i], true
		}
	}
	return domain.WSResponse{}, false
}

// Count frames with event name
func (r *RecordingSender) Count(event domain.Event) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, f := range r.frames {
		if f.Event == string(event) {
			n++
		}
	}
	return n
}

// Reset drop recorded frames
func (r *RecordingSender) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.frames = nil
}

// DecodeData round trip frame data through json into v
func DecodeData(resp domain.WSResponse, v interface{}) error {
	b, err := json.Marshal(resp.Data)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, v)
}

// MockEventBus Mock EventBus
type MockEventBus struct {
	mock.Mock
}

// Publish mock publish
func (m *MockEventBus) Publish(ctx context.Context, channel string, resp domain.WSResponse) error {
	args := m.Called(ctx, channel, resp)
	return args.Error(0)
}

// Subscribe mock subscribe
func (m *MockEventBus) Subscribe(ctx context.Context, handler func(channel string, env domain.Envelope)) error {
	args := m.Called(ctx, handler)
	return args.Error(0)
}
