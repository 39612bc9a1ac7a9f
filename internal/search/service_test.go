package search

import (
	"context"
	"errors"
	"testing"

	"booksearch/internal/openlibrary"
)

type fakeClient struct {
	resp  *openlibrary.SearchResponse
	err   error
	query string
}

func (f *fakeClient) Search(_ context.Context, query string) (*openlibrary.SearchResponse, error) {
	f.query = query
	return f.resp, f.err
}

func TestServiceSearch(t *testing.T) {
	fc := &fakeClient{resp: &openlibrary.SearchResponse{Docs: []openlibrary.Doc{
		{Title: "Dune", AuthorName: []string{"Frank Herbert"}, FirstPublishYear: 1965, CoverI: 98765},
	}}}
	svc := New(fc, testMapper())

	got, err := svc.Search(context.Background(), "dune")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fc.query != "dune" {
		t.Errorf("query = %q", fc.query)
	}
	if len(got) != 1 || got[0].Title != "Dune" || got[0].Year != "1965" {
		t.Fatalf("unexpected records: %+v", got)
	}
}

func TestServiceSearchError(t *testing.T) {
	boom := errors.New("boom")
	svc := New(&fakeClient{err: boom}, testMapper())
	if _, err := svc.Search(context.Background(), "x"); !errors.Is(err, boom) {
		t.Fatalf("err = %v", err)
	}
}

func TestServiceSearchEmpty(t *testing.T) {
	svc := New(&fakeClient{resp: &openlibrary.SearchResponse{}}, testMapper())
	got, err := svc.Search(context.Background(), "x")
	if err != nil || len(got) != 0 {
		t.Fatalf("got %v, %v", got, err)
	}
}
