// Package similarity compares Python sources in-process.
//
// Every source is parsed with tree-sitter and reduced to a sequence of
// anonymised AST lines (node types only, names and literals dropped), so
// renaming variables or reformatting code does not hide copied structure.
// Reference units are then matched line by line against candidate units.
package similarity

import (
	"context"
	"fmt"
	"sort"

	"github.com/pmezard/go-difflib/difflib"
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"
)

// ModuleName names the unit covering a whole module.
const ModuleName = "__main__"

// Options controls how sources are split and normalized.
type Options struct {
	// ModuleLevel compares whole modules instead of individual functions.
	ModuleLevel bool
	// KeepPrints keeps print(...) calls in the normalized form.
	KeepPrints bool
}

// FuncInfo is one comparable unit of a source: a function or a module.
type FuncInfo struct {
	Name   string
	Row    uint32
	Column uint32
	Lines  []string
}

func (f FuncInfo) String() string {
	return fmt.Sprintf("%s<%d:%d>", f.Name, f.Row, f.Column)
}

// FuncDiffInfo records how much of a reference unit reappears in the best
// matching candidate unit.
type FuncDiffInfo struct {
	Ref             FuncInfo
	Candidate       FuncInfo
	PlagiarismCount int
	TotalCount      int
}

// Percent returns the share of reference lines found in the candidate, 0-100.
func (d FuncDiffInfo) Percent() float64 {
	if d.TotalCount == 0 {
		return 0
	}
	return float64(d.PlagiarismCount) * 100 / float64(d.TotalCount)
}

func (d FuncDiffInfo) String() string {
	return fmt.Sprintf("%.2f: ref %s, candidate %s", d.Percent(), d.Ref, d.Candidate)
}

// Report holds the diff records of one candidate, most similar first.
type Report struct {
	// Index is the candidate's position in the sources passed to Detect.
	Index int
	Diffs []FuncDiffInfo
}

// SyntaxError reports a source tree-sitter could not parse cleanly.
type SyntaxError struct {
	Index  int
	Row    uint32
	Column uint32
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("invalid syntax in source %d at line %d, column %d", e.Index, e.Row, e.Column)
}

// Detect compares sources[0] (the reference) with every other source and
// returns one report per candidate, in input order.
func Detect(ctx context.Context, sources []string, opts Options) ([]Report, error) {
	if len(sources) < 2 {
		return nil, fmt.Errorf("at least 2 sources are required, got %d", len(sources))
	}

	units := make([][]FuncInfo, len(sources))
	for i, src := range sources {
		u, err := extract(ctx, i, []byte(src), opts)
		if err != nil {
			return nil, err
		}
		units[i] = u
	}

	reports := make([]Report, 0, len(sources)-1)
	for i := 1; i < len(sources); i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		diffs := make([]FuncDiffInfo, 0, len(units[0]))
		for _, ref := range units[0] {
			diffs = append(diffs, bestMatch(ref, units[i]))
		}
		sort.SliceStable(diffs, func(a, b int) bool {
			return diffs[a].Percent() > diffs[b].Percent()
		})
		reports = append(reports, Report{Index: i, Diffs: diffs})
	}
	return reports, nil
}

// bestMatch finds the candidate unit sharing the most lines with ref.
func bestMatch(ref FuncInfo, candidates []FuncInfo) FuncDiffInfo {
	best := FuncDiffInfo{Ref: ref, TotalCount: len(ref.Lines), PlagiarismCount: -1}
	for _, cand := range candidates {
		count := commonLines(ref.Lines, cand.Lines)
		if count > best.PlagiarismCount {
			best.Candidate = cand
			best.PlagiarismCount = count
		}
	}
	if best.PlagiarismCount < 0 {
		best.PlagiarismCount = 0
	}
	return best
}

// commonLines counts reference lines inside equal blocks of the diff.
func commonLines(a, b []string) int {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	m := difflib.NewMatcherWithJunk(a, b, false, nil)
	count := 0
	for _, op := range m.GetOpCodes() {
		if op.Tag == 'e' {
			count += op.I2 - op.I1
		}
	}
	return count
}

func extract(ctx context.Context, index int, content []byte, opts Options) ([]FuncInfo, error) {
	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(python.GetLanguage())

	tree, err := parser.ParseCtx(ctx, nil, content)
	if err != nil {
		return nil, fmt.Errorf("failed to parse source %d: %w", index, err)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() {
		row, col := errorPosition(root)
		return nil, &SyntaxError{Index: index, Row: row + 1, Column: col}
	}
	if bad := layoutError(root); bad != nil {
		p := bad.StartPoint()
		return nil, &SyntaxError{Index: index, Row: p.Row + 1, Column: p.Column}
	}

	n := &normalizer{content: content, keepPrints: opts.KeepPrints}
	module := FuncInfo{Name: ModuleName, Row: 1, Column: 0, Lines: n.body(root)}
	if opts.ModuleLevel {
		return []FuncInfo{module}, nil
	}

	var funcs []FuncInfo
	collectFunctions(root, func(fn *sitter.Node) {
		name := "<lambda>"
		if id := fn.ChildByFieldName("name"); id != nil {
			name = id.Content(content)
		}
		start := fn.StartPoint()
		funcs = append(funcs, FuncInfo{
			Name:   name,
			Row:    start.Row + 1,
			Column: start.Column,
			Lines:  n.body(fn),
		})
	})
	if len(funcs) == 0 {
		// nothing to split on: fall back to the whole module
		return []FuncInfo{module}, nil
	}
	return funcs, nil
}

func collectFunctions(node *sitter.Node, visit func(*sitter.Node)) {
	if node.Type() == "function_definition" {
		visit(node)
	}
	for i := 0; i < int(node.NamedChildCount()); i++ {
		collectFunctions(node.NamedChild(i), visit)
	}
}

// errorPosition returns the start of the first ERROR or MISSING node.
func errorPosition(node *sitter.Node) (uint32, uint32) {
	if node.Type() == "ERROR" || node.IsMissing() {
		p := node.StartPoint()
		return p.Row, p.Column
	}
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		if child.HasError() || child.IsMissing() {
			return errorPosition(child)
		}
	}
	p := node.StartPoint()
	return p.Row, p.Column
}
