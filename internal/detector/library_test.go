package detector

import (
	"context"
	"errors"
	"testing"

	"github.com/getlawrence/antiplag/internal/domain"
	"github.com/getlawrence/antiplag/internal/similarity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedReport(percentLine similarity.FuncDiffInfo) CompareFunc {
	return func(ctx context.Context, sources []string, opts similarity.Options) ([]similarity.Report, error) {
		return []similarity.Report{{Index: 1, Diffs: []similarity.FuncDiffInfo{percentLine}}}, nil
	}
}

func TestLibraryBackend_CallsLibraryOncePerCandidate(t *testing.T) {
	var calls [][]string
	var gotOpts []similarity.Options
	compare := func(ctx context.Context, sources []string, opts similarity.Options) ([]similarity.Report, error) {
		calls = append(calls, sources)
		gotOpts = append(gotOpts, opts)
		return []similarity.Report{{Index: 1, Diffs: []similarity.FuncDiffInfo{
			{Ref: similarity.FuncInfo{Name: "__main__", Row: 1}, Candidate: similarity.FuncInfo{Name: "__main__", Row: 1}, PlagiarismCount: 1, TotalCount: 2},
		}}}, nil
	}
	b := NewLibraryBackendWith(compare, nil)

	candidates := []domain.Candidate{
		{UUID: "1dfa1", Code: "a = 1"},
		{UUID: "53a75", Code: "b = 2"},
		{UUID: "9asd2", Code: "c = 3"},
	}
	scores, err := b.Detect(context.Background(), "ref = 0", candidates)
	require.NoError(t, err)

	require.Len(t, calls, 3)
	for i, c := range candidates {
		assert.Equal(t, []string{"ref = 0", c.Code}, calls[i])
		assert.True(t, gotOpts[i].ModuleLevel)
		assert.True(t, gotOpts[i].KeepPrints)
	}
	assert.Equal(t, []string{"1dfa1", "53a75", "9asd2"}, scores.Keys())
	v, _ := scores.Get("9asd2")
	assert.InDelta(t, 0.5, v, 1e-9)
}

func TestLibraryBackend_RealLibrary(t *testing.T) {
	b := NewLibraryBackend(nil)
	ref := "def f(a):\n    return a * 2\n"

	scores, err := b.Detect(context.Background(), ref, []domain.Candidate{
		{UUID: "copy", Code: "def g(b):\n    return b * 2\n"},
		{UUID: "empty", Code: ""},
	})
	require.NoError(t, err)

	copied, _ := scores.Get("copy")
	empty, _ := scores.Get("empty")
	assert.InDelta(t, 1.0, copied, 1e-9)
	assert.InDelta(t, 0.0, empty, 1e-9)
}

func TestLibraryBackend_SyntaxErrorAborts(t *testing.T) {
	tests := []struct {
		name string
		code string
	}{
		{"broken signature", "def broken(:\n"},
		{"missing indent", "def f():\nreturn 1\n"},
		{"unaligned dedent", "if True:\n    pass\n  y = 1\n"},
		{"print statement", "print \"hi\"\n"},
		{"exec statement", "exec 'x'\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewLibraryBackend(nil)

			scores, err := b.Detect(context.Background(), "x = 1\n", []domain.Candidate{
				{UUID: "ok", Code: "y = 2\n"},
				{UUID: "bad", Code: tt.code},
			})
			require.Error(t, err)
			assert.Nil(t, scores)

			var de *domain.Error
			require.ErrorAs(t, err, &de)
			assert.Equal(t, domain.KindChecker, de.Kind)
			assert.Equal(t, domain.MsgChecker, de.Message)
			assert.Contains(t, de.Details, "candidate bad")
		})
	}
}

func TestLibraryBackend_ReferenceSyntaxError(t *testing.T) {
	b := NewLibraryBackend(nil)

	_, err := b.Detect(context.Background(), "34f£al(", []domain.Candidate{{UUID: "ok", Code: "y = 2\n"}})

	var de *domain.Error
	require.ErrorAs(t, err, &de)
	assert.Equal(t, domain.KindChecker, de.Kind)
	assert.Contains(t, de.Details, "reference")
}

func TestLibraryBackend_LibraryFailure(t *testing.T) {
	boom := errors.New("boom")
	b := NewLibraryBackendWith(func(ctx context.Context, sources []string, opts similarity.Options) ([]similarity.Report, error) {
		return nil, boom
	}, nil)

	_, err := b.Detect(context.Background(), "x", []domain.Candidate{{UUID: "1", Code: "y"}})
	assert.Equal(t, domain.KindChecker, domain.KindOf(err))
	assert.ErrorIs(t, err, boom)
}

func TestLibraryBackend_NoDiffRecord(t *testing.T) {
	b := NewLibraryBackendWith(func(ctx context.Context, sources []string, opts similarity.Options) ([]similarity.Report, error) {
		return []similarity.Report{{Index: 1}}, nil
	}, nil)

	_, err := b.Detect(context.Background(), "x", []domain.Candidate{{UUID: "1", Code: "y"}})
	assert.Equal(t, domain.KindParsing, domain.KindOf(err))
}

func TestLibraryBackend_ParsesFirstRecord(t *testing.T) {
	b := NewLibraryBackendWith(fixedReport(similarity.FuncDiffInfo{
		Ref:             similarity.FuncInfo{Name: "__main__", Row: 1},
		Candidate:       similarity.FuncInfo{Name: "__main__", Row: 1},
		PlagiarismCount: 3542,
		TotalCount:      10000,
	}), nil)

	scores, err := b.Detect(context.Background(), "x", []domain.Candidate{{UUID: "9asd2", Code: "y"}})
	require.NoError(t, err)
	v, _ := scores.Get("9asd2")
	assert.InDelta(t, 0.3542, v, 1e-9)
}
