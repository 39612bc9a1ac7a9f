// Package widget drives one search box: it validates the query, runs the
// search and pushes status text and results into a View.
package widget

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"

	"booksearch/internal/i18n"
	"booksearch/internal/logger"
	"booksearch/internal/search"
)

// Outcome classifies one Submit.
type Outcome string

const (
	EmptyQuery Outcome = "empty_query"
	NoResults  Outcome = "no_results"
	Found      Outcome = "found"
	Failed     Outcome = "failed"
	Superseded Outcome = "superseded"
)

// Searcher is satisfied by *search.Service.
type Searcher interface {
	Search(ctx context.Context, query string) ([]search.BookRecord, error)
}

// View is where the widget writes. RenderList(nil) clears the list.
type View interface {
	SetStatus(text string)
	RenderList(records []search.BookRecord)
}

// Widget serializes all View calls and renders only the latest submit.
type Widget struct {
	searcher Searcher
	view     View
	msgs     *i18n.Messages
	onDone   func(Outcome)

	mu     sync.Mutex
	seq    uint64
	cancel context.CancelFunc
}

// Option configures a Widget.
type Option func(*Widget)

// OnOutcome registers a callback run after every Submit.
func OnOutcome(fn func(Outcome)) Option {
	return func(w *Widget) { w.onDone = fn }
}

func New(searcher Searcher, view View, msgs *i18n.Messages, opts ...Option) *Widget {
	w := &Widget{searcher: searcher, view: view, msgs: msgs}
	for _, o := range opts {
		o(w)
	}
	return w
}

// Submit runs one search. A later Submit cancels this one, and this one's
// result is then dropped.
func (w *Widget) Submit(ctx context.Context, query string) Outcome {
	return w.Begin(ctx).Run(query)
}

// Pending is a submit whose place in the ordering is already fixed but whose
// search has not run yet. Hosts that run searches on their own goroutines
// call Begin on the reader goroutine so that arrival order, not scheduling
// order, decides which submit is the latest.
type Pending struct {
	w    *Widget
	ctx  context.Context
	seq  uint64
	done func()
}

// Begin supersedes every earlier submit and reserves the next sequence
// number. Run must be called exactly once on the result.
func (w *Widget) Begin(ctx context.Context) *Pending {
	ctx, seq, done := w.begin(ctx)
	return &Pending{w: w, ctx: ctx, seq: seq, done: done}
}

// Run performs the reserved submit.
func (p *Pending) Run(query string) (out Outcome) {
	w, ctx, seq := p.w, p.ctx, p.seq
	if w.onDone != nil {
		defer func() { w.onDone(out) }()
	}
	defer p.done()

	query = strings.TrimSpace(query)
	if query == "" {
		return w.commit(seq, EmptyQuery, func() {
			w.view.RenderList(nil)
			w.view.SetStatus(w.msgs.EmptyQuery())
		})
	}

	if !w.apply(seq, func() {
		w.view.RenderList(nil)
		w.view.SetStatus(w.msgs.Searching())
	}) {
		return Superseded
	}

	records, err := w.searcher.Search(ctx, query)
	if err != nil {
		if w.stale(seq) && errors.Is(err, context.Canceled) {
			return Superseded
		}
		res := w.commit(seq, Failed, func() {
			w.view.RenderList(nil)
			w.view.SetStatus(w.msgs.NetworkError())
		})
		if res == Failed {
			logger.For(ctx).WithError(err).WithField("query", query).Error("Search error")
		}
		return res
	}

	if len(records) == 0 {
		return w.commit(seq, NoResults, func() {
			w.view.RenderList(nil)
			w.view.SetStatus(w.msgs.NoResults())
		})
	}
	return w.commit(seq, Found, func() {
		w.view.SetStatus("")
		w.view.RenderList(records)
	})
}

// Close cancels the in-flight submit, if any.
func (w *Widget) Close() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.seq++
	if w.cancel != nil {
		w.cancel()
		w.cancel = nil
	}
}

func (w *Widget) begin(parent context.Context) (context.Context, uint64, func()) {
	ctx, cancel := context.WithCancel(parent)

	w.mu.Lock()
	if w.cancel != nil {
		w.cancel()
	}
	w.seq++
	seq := w.seq
	w.cancel = cancel
	w.mu.Unlock()

	return ctx, seq, func() {
		w.mu.Lock()
		if w.seq == seq {
			w.cancel = nil
		}
		w.mu.Unlock()
		cancel()
	}
}

// apply runs fn if seq is still the latest submit.
func (w *Widget) apply(seq uint64, fn func()) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.seq != seq {
		logrus.WithField("seq", seq).Debug("dropping superseded result")
		return false
	}
	fn()
	return true
}

func (w *Widget) commit(seq uint64, out Outcome, fn func()) Outcome {
	if !w.apply(seq, fn) {
		return Superseded
	}
	return out
}

func (w *Widget) stale(seq uint64) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.seq != seq
}
