package grid

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// gridLocator lays every cell out on a fixed 100x30 lattice, with rows
// outside [first, last] treated as not materialized.
type gridLocator struct {
	first, last int
}

func (g gridLocator) Locate(row, col int) (Rect, bool) {
	if row < g.first || row > g.last {
		return Rect{}, false
	}
	return Rect{Top: row * 30, Left: col * 100, Width: 100, Height: 30, Visible: true}, true
}

func allVisible() gridLocator { return gridLocator{first: 0, last: 1 << 30} }

type fakeContainer struct {
	top, left     int
	height, width int
}

func (c *fakeContainer) ScrollTop() int      { return c.top }
func (c *fakeContainer) SetScrollTop(v int)  { c.top = v }
func (c *fakeContainer) ScrollLeft() int     { return c.left }
func (c *fakeContainer) SetScrollLeft(v int) { c.left = v }
func (c *fakeContainer) ClientHeight() int   { return c.height }
func (c *fakeContainer) ClientWidth() int    { return c.width }

type fakePlatform struct {
	mu       sync.Mutex
	written  []string
	text     string
	writeErr error
	readErr  error
}

func (p *fakePlatform) WriteText(_ context.Context, text string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.writeErr != nil {
		return p.writeErr
	}
	p.written = append(p.written, text)
	return nil
}

func (p *fakePlatform) ReadText(_ context.Context) (string, error) {
	if p.readErr != nil {
		return "", p.readErr
	}
	return p.text, nil
}

var errDenied = errors.New("permission denied")

// numberedRows builds n rows whose field k<c> holds "<row*cols+c+1>".
func numberedRows(n int, keys []string) Rows {
	rows := make(Rows, n)
	for i := range rows {
		fields := make(map[string]string, len(keys))
		for c, k := range keys {
			fields[k] = fmt.Sprint(i*len(keys) + c + 1)
		}
		rows[i] = &Row{ID: RowID(i + 1), Fields: fields}
	}
	return rows
}

func syncClipboard(c *Clipboard) { c.async = func(f func()) { f() } }
