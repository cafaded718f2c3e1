// Package mocks has otel doubles for tests. NewOtel drops everything, while a
// Recorder keeps span names and traced errors so a test can assert on them.
package mocks

import (
	"context"
	"resort/infras/otel"
	"sync"
)

type discard struct{}

func (discard) NewScope(ctx context.Context, _, _ string) (context.Context, otel.Scope) {
	return ctx, &scope{}
}

func NewOtel() otel.Otel {
	return discard{}
}

type Recorder struct {
	mu     sync.Mutex
	spans  []string
	events []string
	errs   []error
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) NewScope(ctx context.Context, _, spanName string) (context.Context, otel.Scope) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.spans = append(r.spans, spanName)

	return ctx, &scope{recorder: r}
}

// Spans lists span names in the order they were opened.
func (r *Recorder) Spans() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]string(nil), r.spans...)
}

func (r *Recorder) Events() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]string(nil), r.events...)
}

func (r *Recorder) Errors() []error {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]error(nil), r.errs...)
}

func (r *Recorder) add(event string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if event != "" {
		r.events = append(r.events, event)
	}

	if err != nil {
		r.errs = append(r.errs, err)
	}
}

type scope struct {
	recorder *Recorder
}

func (s *scope) End() {}

func (s *scope) TraceError(err error) {
	if s.recorder != nil && err != nil {
		s.recorder.add("", err)
	}
}

func (s *scope) TraceIfError(err error) {
	s.TraceError(err)
}

func (s *scope) AddEvent(name string) {
	if s.recorder != nil {
		s.recorder.add(name, nil)
	}
}

func (s *scope) SetAttribute(string, any) {}

func (s *scope) SetAttributes(map[string]any) {}
