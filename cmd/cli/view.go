package main

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/schollz/progressbar/v3"

	"booksearch/internal/render"
	"booksearch/internal/search"
)

// termView prints statuses and results. While the "searching" status is
// up, a spinner runs on errOut instead.
type termView struct {
	out       io.Writer
	errOut    io.Writer
	searching string

	mu      sync.Mutex
	spinner *progressbar.ProgressBar
	stop    chan struct{}
	done    chan struct{}
}

func newTermView(out, errOut io.Writer, searching string) *termView {
	return &termView{out: out, errOut: errOut, searching: searching}
}

func (v *termView) SetStatus(text string) {
	v.stopSpinner()
	if text == v.searching {
		v.startSpinner(text)
		return
	}
	if text != "" {
		fmt.Fprintln(v.out, text)
	}
}

func (v *termView) RenderList(records []search.BookRecord) {
	v.stopSpinner()
	if len(records) == 0 {
		return
	}
	if err := render.Text(v.out, records); err != nil {
		fmt.Fprintf(v.errOut, "render: %v\n", err)
	}
}

func (v *termView) startSpinner(desc string) {
	v.mu.Lock()
	defer v.mu.Unlock()

	bar := progressbar.NewOptions(-1,
		progressbar.OptionSetWriter(v.errOut),
		progressbar.OptionSetDescription(desc),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionClearOnFinish(),
	)
	stop, done := make(chan struct{}), make(chan struct{})
	go func() {
		defer close(done)
		t := time.NewTicker(100 * time.Millisecond)
		defer t.Stop()
		for {
			select {
			case <-stop:
				_ = bar.Finish()
				return
			case <-t.C:
				_ = bar.Add(1)
			}
		}
	}()
	v.spinner, v.stop, v.done = bar, stop, done
}

func (v *termView) stopSpinner() {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.spinner == nil {
		return
	}
	close(v.stop)
	<-v.done
	v.spinner, v.stop, v.done = nil, nil, nil
}
