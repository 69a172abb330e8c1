package output

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/require"
)

type item struct {
	Name  string `json:"name"  yaml:"name"`
	Count int    `json:"count" yaml:"count"`
}

// fakePrinter writes one line per item and fails on errOn.
type fakePrinter struct {
	errOn string
}

func (p *fakePrinter) Header(w io.Writer, count int) { _, _ = fmt.Fprintf(w, "HEADER %d\n", count) }

func (p *fakePrinter) SetHeader(_ WriteFunc[item]) {}

func (p *fakePrinter) Item(w io.Writer, it item) error {
	_, _ = fmt.Fprintf(w, "ITEM %s=%d\n", it.Name, it.Count)
	if it.Name == p.errOn {
		return errors.New("item error")
	}
	return nil
}

func (p *fakePrinter) Footer(w io.Writer, count int) { _, _ = fmt.Fprintf(w, "FOOTER %d\n", count) }

func (p *fakePrinter) SetFooter(_ WriteFunc[item]) {}

func TestJSONHandler(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		handle   func(h Handler[item]) error
		expected string
	}{
		{
			name:     "result is written without wrapper",
			handle:   func(h Handler[item]) error { return h.HandleResult(item{Name: "a", Count: 1}) },
			expected: `{"name":"a","count":1}`,
		},
		{
			name:     "results are wrapped",
			handle:   func(h Handler[item]) error { return h.HandleResults(item{Name: "a"}, item{Name: "b", Count: 2}) },
			expected: `{"results":[{"name":"a","count":0},{"name":"b","count":2}]}`,
		},
		{
			name:     "no results is an empty list",
			handle:   func(h Handler[item]) error { return h.HandleResults() },
			expected: `{"results":[]}`,
		},
		{
			name:     "error",
			handle:   func(h Handler[item]) error { return h.HandleError(errors.New("boom")) },
			expected: `{"error":"boom"}`,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			h := NewJSONHandler[item](&buf, 2)
			require.Same(t, &buf, h.Writer())
			require.NoError(t, tc.handle(h))
			require.JSONEq(t, tc.expected, buf.String())
		})
	}
}

func TestYAMLHandler(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		handle   func(h Handler[item]) error
		expected string
	}{
		{
			name:     "result",
			handle:   func(h Handler[item]) error { return h.HandleResult(item{Name: "a", Count: 1}) },
			expected: "name: a\ncount: 1\n",
		},
		{
			name:     "results",
			handle:   func(h Handler[item]) error { return h.HandleResults(item{Name: "a"}) },
			expected: "results:\n  - name: a\n    count: 0\n",
		},
		{
			name:     "no results",
			handle:   func(h Handler[item]) error { return h.HandleResults() },
			expected: "results: []\n",
		},
		{
			name:     "error",
			handle:   func(h Handler[item]) error { return h.HandleError(errors.New("boom")) },
			expected: "error: boom\n",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			require.NoError(t, tc.handle(NewYAMLHandler[item](&buf, 2)))
			require.Equal(t, tc.expected, buf.String())
		})
	}
}

func TestTextHandler(t *testing.T) {
	t.Parallel()

	t.Run("results", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		h := NewTextHandler[item](&buf, &fakePrinter{})
		require.NoError(t, h.HandleResults(item{Name: "a", Count: 1}, item{Name: "b", Count: 2}))
		require.Equal(t, "HEADER 2\nITEM a=1\nITEM b=2\nFOOTER 2\n", buf.String())
	})

	t.Run("single result", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		require.NoError(t, NewTextHandler[item](&buf, &fakePrinter{}).HandleResult(item{Name: "a"}))
		require.Equal(t, "HEADER 1\nITEM a=0\nFOOTER 1\n", buf.String())
	})

	t.Run("empty", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		require.NoError(t, NewTextHandler[item](&buf, &fakePrinter{}).HandleResults())
		require.Equal(t, "No items found\n", buf.String())
	})

	t.Run("item error stops output", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		err := NewTextHandler[item](&buf, &fakePrinter{errOn: "a"}).HandleResults(item{Name: "a"}, item{Name: "b"})
		require.EqualError(t, err, "item error")
		require.Equal(t, "HEADER 2\nITEM a=0\n", buf.String())
	})

	t.Run("error is returned", func(t *testing.T) {
		t.Parallel()

		boom := errors.New("boom")
		require.ErrorIs(t, NewTextHandler[item](io.Discard, &fakePrinter{}).HandleError(boom), boom)
	})
}
