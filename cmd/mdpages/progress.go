package main

import (
	"fmt"
	"io"
	"strings"
	"sync"
)

// progressLine draws "[####    ] 3/8 pages" on one terminal line.
// Increment is called from worker goroutines.
type progressLine struct {
	mu    sync.Mutex
	w     io.Writer
	width int
	total int
	done  int
}

// defaultBarWidth is used when the terminal width is unknown.
const defaultBarWidth = 30

func newProgressLine(w io.Writer, termWidth int) *progressLine {
	width := defaultBarWidth
	if termWidth > 0 && termWidth/3 < width {
		width = max(termWidth/3, 10)
	}
	return &progressLine{w: w, width: width}
}

func (p *progressLine) Start(total int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.total = total
	p.done = 0
	p.draw()
}

func (p *progressLine) Increment() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.done++
	p.draw()
}

// Done clears the line so reports start at column 0.
func (p *progressLine) Done() {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintf(p.w, "\r%s\r", strings.Repeat(" ", p.width+24))
}

func (p *progressLine) draw() {
	filled := 0
	if p.total > 0 {
		filled = p.done * p.width / p.total
	}
	bar := strings.Repeat("#", filled) + strings.Repeat(" ", p.width-filled)
	fmt.Fprintf(p.w, "\r[%s] %d/%d pages", bar, p.done, p.total)
}
