package data

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/Akashdeep-Patra/tabula/internal/grid"
)

type recordingService struct {
	countingService

	mu     sync.Mutex
	writes []string
	fail   map[string]error
}

func (s *recordingService) Update(_ context.Context, id grid.RowID, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.writes = append(s.writes, key+"="+value)
	return s.fail[value]
}

func TestWriteQueuePreservesOrder(t *testing.T) {
	svc := &recordingService{}
	q := NewWriteQueue(svc, 2, nil)
	for _, v := range []string{"a", "b", "c", "d", "e"} {
		q.Submit(1, "location", v)
	}
	q.Close()

	want := []string{"location=a", "location=b", "location=c", "location=d", "location=e"}
	if len(svc.writes) != len(want) {
		t.Fatalf("writes = %v, want %v", svc.writes, want)
	}
	for i := range want {
		if svc.writes[i] != want[i] {
			t.Fatalf("writes = %v, want %v", svc.writes, want)
		}
	}
}

func TestWriteQueueReportsErrors(t *testing.T) {
	svc := &recordingService{fail: map[string]error{"bad": ErrNotFound}}
	q := NewWriteQueue(svc, 4, nil)
	q.Submit(7, "model", "ok")
	q.Submit(7, "model", "bad")
	q.Close()

	var errs []error
	for err := range q.Errors() {
		errs = append(errs, err)
	}
	if len(errs) != 1 || !errors.Is(errs[0], ErrNotFound) {
		t.Fatalf("errors = %v, want one ErrNotFound", errs)
	}
}

func TestWriteQueueSubmitAfterClose(t *testing.T) {
	svc := &recordingService{}
	q := NewWriteQueue(svc, 1, nil)
	q.Close()
	q.Submit(1, "model", "late")
	q.Close()
	if len(svc.writes) != 0 {
		t.Fatalf("writes after close = %v", svc.writes)
	}
}
