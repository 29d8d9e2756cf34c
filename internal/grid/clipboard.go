package grid

import (
	"context"
	"log/slog"
	"strings"

	"github.com/atotto/clipboard"
)

// Platform is the system clipboard. Both calls may fail (no clipboard
// utility, permission denied); failures are never fatal.
type Platform interface {
	WriteText(ctx context.Context, text string) error
	ReadText(ctx context.Context) (string, error)
}

// SystemClipboard is the Platform backed by the OS clipboard.
type SystemClipboard struct{}

// WriteText writes text to the OS clipboard.
func (SystemClipboard) WriteText(_ context.Context, text string) error {
	return clipboard.WriteAll(text)
}

// ReadText reads text from the OS clipboard.
func (SystemClipboard) ReadText(_ context.Context) (string, error) {
	return clipboard.ReadAll()
}

// CopiedItem is an internal clipboard entry, relative to the top-left of the
// copied rectangle.
type CopiedItem struct {
	RelRow int
	RelCol int
	Value  string
}

// Clipboard marshals the rectangular selection to an internal snapshot and a
// tab/newline delimited text block, and pastes platform text back into cells.
type Clipboard struct {
	platform Platform
	log      *slog.Logger
	internal []CopiedItem

	// async runs the platform write off the event loop.
	async func(func())
}

// NewClipboard creates a bridge over a platform clipboard. A nil platform
// keeps the snapshot internal only.
func NewClipboard(platform Platform, logger *slog.Logger) *Clipboard {
	return &Clipboard{
		platform: platform,
		log:      orDiscard(logger),
		async:    func(f func()) { go f() },
	}
}

// Internal returns the internal snapshot.
func (c *Clipboard) Internal() []CopiedItem { return c.internal }

// HasData reports whether a snapshot exists.
func (c *Clipboard) HasData() bool { return len(c.internal) > 0 }

// Copy snapshots the selection. The internal snapshot is available as soon as
// Copy returns; the platform write happens asynchronously. ok is false when
// there is no selection.
func (c *Clipboard) Copy(sel *Selection, rows Rows, keys []string) (text string, ok bool) {
	sel.SnapshotAsCopied()

	b, ok := sel.Bounds()
	if !ok {
		return "", false
	}

	items := make([]CopiedItem, 0, b.Rows()*b.Cols())
	lines := make([]string, 0, b.Rows())
	fields := make([]string, 0, b.Cols())

	for r := b.MinRow; r <= b.MaxRow; r++ {
		fields = fields[:0]
		row := rows.At(r)
		for col := b.MinCol; col <= b.MaxCol; col++ {
			var v string
			if col < len(keys) {
				v = row.Get(keys[col])
			}
			items = append(items, CopiedItem{RelRow: r - b.MinRow, RelCol: col - b.MinCol, Value: v})
			fields = append(fields, v)
		}
		lines = append(lines, strings.Join(fields, "\t"))
	}

	c.internal = items
	text = strings.Join(lines, "\n")

	if c.platform != nil {
		c.async(func() {
			if err := c.platform.WriteText(context.Background(), text); err != nil {
				c.log.Warn("clipboard write failed", "err", err)
			}
		})
	}
	return text, true
}

// ReadPlatform reads the platform clipboard. Failures are logged and reported
// as ok=false.
func (c *Clipboard) ReadPlatform(ctx context.Context) (string, bool) {
	if c.platform == nil {
		return "", false
	}
	text, err := c.platform.ReadText(ctx)
	if err != nil {
		c.log.Warn("clipboard read failed", "err", err)
		return "", false
	}
	return text, true
}

// ApplyPaste writes text verbatim into the single target cell and records the
// prior value.
func (c *Clipboard) ApplyPaste(target Cell, rows Rows, keys []string, history *History, text string) bool {
	row := rows.At(target.Row)
	if row == nil || target.Col < 0 || target.Col >= len(keys) {
		return false
	}
	key := keys[target.Col]
	old := row.Get(key)
	row.Set(key, text)
	if history != nil {
		history.Record(row.ID, key, old, text)
	}
	c.log.Debug("pasted", "row", target.Row, "key", key, "bytes", len(text))
	return true
}

// Paste reads the platform clipboard and applies it to the target cell. A
// denied or unavailable clipboard is a no-op.
func (c *Clipboard) Paste(ctx context.Context, target Cell, rows Rows, keys []string, history *History) bool {
	if target.IsNone() || rows.At(target.Row) == nil {
		return false
	}
	text, ok := c.ReadPlatform(ctx)
	if !ok {
		return false
	}
	return c.ApplyPaste(target, rows, keys, history, text)
}

func orDiscard(l *slog.Logger) *slog.Logger {
	if l == nil {
		return slog.New(slog.DiscardHandler)
	}
	return l
}
