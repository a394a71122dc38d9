package syntax

import (
	"context"
	"fmt"
	"strconv"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/golang"
)

// GoParser parses Go source with the tree-sitter grammar. It is not
// safe for concurrent use; the store invokes it from a single loop.
type GoParser struct {
	parser *sitter.Parser
}

// NewGoParser creates a parser bound to the Go grammar.
func NewGoParser() *GoParser {
	p := sitter.NewParser()
	p.SetLanguage(golang.GetLanguage())
	return &GoParser{parser: p}
}

// Close releases the underlying tree-sitter parser.
func (p *GoParser) Close() {
	p.parser.Close()
}

// Parse parses src and collects syntax errors from ERROR and missing
// nodes. The returned tree owns C-side memory; the caller must Close it.
func (p *GoParser) Parse(src []byte, path string) (*Result, error) {
	tree, err := p.parser.ParseCtx(context.Background(), nil, src)
	if err != nil {
		return nil, fmt.Errorf("syntax: parse %s: %w", path, err)
	}

	root := tree.RootNode()
	res := &Result{Tree: tree}
	collectErrors(root, path, &res.Errors)
	res.Package, res.Imports = extractMetadata(root, src)
	return res, nil
}

// collectErrors walks the tree gathering one Error per ERROR region and
// per missing node. Subtrees without errors are pruned via HasError.
func collectErrors(n *sitter.Node, path string, out *[]Error) {
	if n == nil || (!n.HasError() && !n.IsMissing()) {
		return
	}

	point := n.StartPoint()
	switch {
	case n.IsMissing():
		*out = append(*out, Error{
			Message: fmt.Sprintf("missing %s", n.Type()),
			Line:    int(point.Row) + 1,
			Column:  int(point.Column),
			File:    path,
			Offset:  int(n.StartByte()),
		})
		return
	case n.Type() == "ERROR":
		*out = append(*out, Error{
			Message: "syntax error",
			Line:    int(point.Row) + 1,
			Column:  int(point.Column),
			File:    path,
			Offset:  int(n.StartByte()),
		})
		// One report per ERROR region; nested errors add noise.
		return
	}

	for i := 0; i < int(n.ChildCount()); i++ {
		collectErrors(n.Child(i), path, out)
	}
}

// extractMetadata pulls the package clause name and import paths from
// the root node. Best effort: anything the grammar could not shape is
// simply absent.
func extractMetadata(root *sitter.Node, src []byte) (string, []string) {
	var pkg string
	var imports []string

	for i := 0; i < int(root.NamedChildCount()); i++ {
		n := root.NamedChild(i)
		switch n.Type() {
		case "package_clause":
			if id := firstChildOfType(n, "package_identifier"); id != nil {
				pkg = id.Content(src)
			}
		case "import_declaration":
			imports = append(imports, importSpecs(n, src)...)
		}
	}
	return pkg, imports
}

// importSpecs collects the unquoted path of every import_spec under a
// single import declaration (grouped or not).
func importSpecs(decl *sitter.Node, src []byte) []string {
	var paths []string
	var walk func(n *sitter.Node)
	walk = func(n *sitter.Node) {
		if n.Type() == "import_spec" {
			if p := n.ChildByFieldName("path"); p != nil {
				if unquoted, err := strconv.Unquote(p.Content(src)); err == nil {
					paths = append(paths, unquoted)
				}
			}
			return
		}
		for i := 0; i < int(n.NamedChildCount()); i++ {
			walk(n.NamedChild(i))
		}
	}
	walk(decl)
	return paths
}

func firstChildOfType(n *sitter.Node, typ string) *sitter.Node {
	for i := 0; i < int(n.NamedChildCount()); i++ {
		if c := n.NamedChild(i); c.Type() == typ {
			return c
		}
	}
	return nil
}
