package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"narratr/internal/ast"
)

// FormatTree prints n and its descendants as "kind (label)", four spaces
// of indentation per level.
func FormatTree(w io.Writer, n ast.Node) error {
	var b strings.Builder
	writeTree(&b, n, 0)
	_, err := io.WriteString(w, b.String())
	return err
}

func writeTree(b *strings.Builder, n ast.Node, depth int) {
	if isNilNode(n) {
		return
	}
	b.WriteString(strings.Repeat("    ", depth))
	b.WriteString(n.Kind())
	if label := ast.Label(n); label != "" {
		fmt.Fprintf(b, " (%s)", label)
	}
	b.WriteByte('\n')
	for _, c := range ast.Children(n) {
		writeTree(b, c, depth+1)
	}
}

// TreeNode is the JSON form of a syntax tree node.
type TreeNode struct {
	Kind     string      `json:"kind"`
	Label    string      `json:"label,omitempty"`
	Line     int         `json:"line,omitempty"`
	Type     string      `json:"type,omitempty"`
	Children []*TreeNode `json:"children,omitempty"`
}

// BuildTree converts n for JSON output.
func BuildTree(n ast.Node) *TreeNode {
	if isNilNode(n) {
		return nil
	}
	out := &TreeNode{Kind: n.Kind(), Label: ast.Label(n), Line: n.Line()}
	if e, ok := n.(ast.Expr); ok {
		out.Type = e.ValueType().String()
	}
	for _, c := range ast.Children(n) {
		if child := BuildTree(c); child != nil {
			out.Children = append(out.Children, child)
		}
	}
	return out
}

// FormatTreeJSON writes BuildTree(n) as indented JSON.
func FormatTreeJSON(w io.Writer, n ast.Node) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(BuildTree(n))
}

func isNilNode(n ast.Node) bool {
	switch n := n.(type) {
	case nil:
		return true
	case *ast.Suite:
		return n == nil
	case *ast.TestList:
		return n == nil
	}
	return false
}
