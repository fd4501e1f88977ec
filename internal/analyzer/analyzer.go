// Package analyzer walks a parsed Value tree once, depth-first and
// pre-order, accumulating per-kind statistics, the maximum nesting depth,
// and a recursive structure summary of the document's shape.
package analyzer

import (
	"fmt"
	"sort"

	"github.com/mcncl/jsonlens/internal/errors"
	"github.com/mcncl/jsonlens/internal/models"
)

// Result holds everything one traversal produces.
type Result struct {
	RootType   models.Kind
	MaxDepth   int
	Statistics models.TypeStatistics
	Structure  *models.StructureSummary
}

// Analyzer computes the structural fingerprint of one document. Instances
// are single-use; Analyze must be called at most once.
type Analyzer struct {
	stats    models.TypeStatistics
	maxDepth int
}

// NewAnalyzer creates a new Analyzer instance.
func NewAnalyzer() *Analyzer {
	return &Analyzer{}
}

// Analyze traverses the tree rooted at root. The root itself sits at depth
// 0; every object or array descent adds one. Every node, including empty
// containers, counts toward exactly one statistics bucket plus the total.
func (a *Analyzer) Analyze(root *models.Value) (*Result, error) {
	if root == nil {
		return nil, errors.NewAnalysisError("no value to analyze", nil)
	}
	structure, err := a.walk(root, 0)
	if err != nil {
		return nil, err
	}
	return &Result{
		RootType:   root.Kind,
		MaxDepth:   a.maxDepth,
		Statistics: a.stats,
		Structure:  structure,
	}, nil
}

func (a *Analyzer) walk(node *models.Value, depth int) (*models.StructureSummary, error) {
	a.stats.TotalValues++
	if depth > a.maxDepth {
		a.maxDepth = depth
	}

	switch node.Kind {
	case models.KindString:
		a.stats.Strings++
		return &models.StructureSummary{Type: node.Kind}, nil
	case models.KindNumber:
		a.stats.Numbers++
		return &models.StructureSummary{Type: node.Kind}, nil
	case models.KindBoolean:
		a.stats.Booleans++
		return &models.StructureSummary{Type: node.Kind}, nil
	case models.KindNull:
		a.stats.Nulls++
		return &models.StructureSummary{Type: node.Kind}, nil
	case models.KindObject:
		a.stats.Objects++
		return a.walkObject(node.Object, depth)
	case models.KindArray:
		a.stats.Arrays++
		return a.walkArray(node.Array, depth)
	default:
		return nil, errors.NewAnalysisError(fmt.Sprintf("unexpected value kind %q", node.Kind), nil)
	}
}

func (a *Analyzer) walkObject(obj *models.Object, depth int) (*models.StructureSummary, error) {
	summary := &models.StructureSummary{
		Type:    models.KindObject,
		IsEmpty: obj.Len() == 0,
		Keys:    make([]models.KeyedSummary, 0, obj.Len()),
	}
	for _, m := range obj.Members() {
		child, err := a.walk(m.Value, depth+1)
		if err != nil {
			return nil, err
		}
		summary.Keys = append(summary.Keys, models.KeyedSummary{Key: m.Key, Summary: child})
	}
	return summary, nil
}

// walkArray summarizes an array with the three-way element policy: a full
// representative summary when all elements are structurally equal, a
// minimal {type, is_empty:false} summary when they share a base type but
// differ in shape, and no element summary at all when types are mixed.
func (a *Analyzer) walkArray(elems []*models.Value, depth int) (*models.StructureSummary, error) {
	summary := &models.StructureSummary{
		Type:         models.KindArray,
		IsEmpty:      len(elems) == 0,
		ElementTypes: []models.Kind{},
	}
	if len(elems) == 0 {
		return summary, nil
	}

	children := make([]*models.StructureSummary, len(elems))
	for i, elem := range elems {
		child, err := a.walk(elem, depth+1)
		if err != nil {
			return nil, err
		}
		children[i] = child
	}

	summary.ElementTypes = uniqueKinds(children)

	uniform := true
	for _, child := range children[1:] {
		if !children[0].Equal(child) {
			uniform = false
			break
		}
	}
	switch {
	case uniform:
		summary.ElementSummary = children[0]
	case len(summary.ElementTypes) == 1:
		// All elements share one base type but not one shape; keep only
		// the type so downstream consumers can tell this apart from both
		// the uniform and the mixed case.
		summary.ElementSummary = &models.StructureSummary{Type: summary.ElementTypes[0]}
	}
	return summary, nil
}

// uniqueKinds returns the sorted set of element types.
func uniqueKinds(summaries []*models.StructureSummary) []models.Kind {
	seen := make(map[models.Kind]bool, len(summaries))
	kinds := make([]models.Kind, 0, len(summaries))
	for _, s := range summaries {
		if !seen[s.Type] {
			seen[s.Type] = true
			kinds = append(kinds, s.Type)
		}
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}
