package blobclient

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
)

const (
	progressBarWidth     = 32
	progressRenderPeriod = 120 * time.Millisecond
)

// progressBar рисует ASCII-индикатор передачи в out. Все методы допускают nil-получатель.
type progressBar struct {
	mu         sync.Mutex
	out        io.Writer
	prefix     string
	total      int64
	current    int64
	lastRender time.Time
	lastWidth  int
	finished   bool
}

func newProgressBar(out io.Writer, prefix string, total int64) *progressBar {
	return &progressBar{out: out, prefix: prefix, total: total}
}

func (p *progressBar) AddBytes(n int64) {
	if p == nil || n <= 0 {
		return
	}
	p.mu.Lock()
	if !p.finished {
		p.current += n
	}
	p.mu.Unlock()
	p.render(false, "")
}

// render перерисовывает строку не чаще progressRenderPeriod, если не force.
func (p *progressBar) render(force bool, suffix string) {
	if p == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	now := time.Now()
	if p.finished || (!force && now.Sub(p.lastRender) < progressRenderPeriod) {
		return
	}
	p.lastRender = now
	p.writeLocked(p.line()+suffix, "")
}

func (p *progressBar) Finish() {
	p.complete(" ✓")
}

func (p *progressBar) Fail(err error) {
	if err == nil {
		p.complete(" ✗")
		return
	}
	p.complete(fmt.Sprintf(" ✗ %v", err))
}

func (p *progressBar) complete(suffix string) {
	if p == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.finished {
		return
	}
	p.finished = true
	p.writeLocked(p.line()+suffix, "\n")
}

// writeLocked затирает хвост предыдущей, более длинной строки пробелами.
func (p *progressBar) writeLocked(line, end string) {
	pad := ""
	if p.lastWidth > len(line) {
		pad = strings.Repeat(" ", p.lastWidth-len(line))
	}
	p.lastWidth = len(line)
	fmt.Fprintf(p.out, "\r%s%s%s", line, pad, end)
}

func (p *progressBar) line() string {
	if p.total <= 0 {
		return fmt.Sprintf("%s %s transferred", p.prefix, humanize.IBytes(uint64(p.current)))
	}

	ratio := min(float64(p.current)/float64(p.total), 1)
	filled := min(int(ratio*progressBarWidth+0.5), progressBarWidth)

	return fmt.Sprintf("%s [%s%s] %3d%% %s/%s",
		p.prefix,
		strings.Repeat("=", filled),
		strings.Repeat(" ", progressBarWidth-filled),
		int(ratio*100+0.5),
		humanize.IBytes(uint64(p.current)),
		humanize.IBytes(uint64(p.total)),
	)
}

type progressWriter struct {
	bar *progressBar
}

func (w progressWriter) Write(b []byte) (int, error) {
	w.bar.AddBytes(int64(len(b)))
	return len(b), nil
}

type progressReadCloser struct {
	inner io.ReadCloser
	bar   *progressBar
}

func newProgressReadCloser(inner io.ReadCloser, bar *progressBar) io.ReadCloser {
	if bar == nil || inner == nil {
		return inner
	}
	return &progressReadCloser{inner: inner, bar: bar}
}

func (p *progressReadCloser) Read(b []byte) (int, error) {
	n, err := p.inner.Read(b)
	p.bar.AddBytes(int64(n))
	return n, err
}

func (p *progressReadCloser) Close() error {
	return p.inner.Close()
}
