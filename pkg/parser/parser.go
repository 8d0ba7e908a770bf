// Package parser provides structural parsing of brainfuck source using
// Participle v2. The execution engine interprets raw bytes directly and
// never needs this; the parser backs the -check and -dump tooling,
// where a parse error means the program's brackets do not balance.
package parser

import (
	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// AST node types

// Program is the top-level AST node
type Program struct {
	Nodes []*Node `parser:"@@*"`
}

// Node is a single instruction or a loop
type Node struct {
	Op   *string `parser:"  @Op"`
	Loop *Loop   `parser:"| @@"`
}

// Loop: [ node* ]
type Loop struct {
	Body []*Node `parser:"'[' @@* ']'"`
}

// Brainfuck lexer definition. Everything outside the eight command
// characters is a comment.
var bfLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Comment", Pattern: `[^+\-<>.,\[\]]+`},
	{Name: "Op", Pattern: `[+\-<>.,]`},
	{Name: "Bracket", Pattern: `[\[\]]`},
})

// Parser is the brainfuck parser
var Parser = participle.MustBuild[Program](
	participle.Lexer(bfLexer),
	participle.Elide("Comment"),
)

// Parse parses brainfuck source into a Program AST.
// The only way source can fail to parse is unbalanced brackets.
func Parse(source string) (*Program, error) {
	return Parser.ParseString("", source)
}

// Ops flattens the Program back to its executable command bytes,
// stripping all comments.
func (p *Program) Ops() []byte {
	return appendOps(nil, p.Nodes)
}

func appendOps(out []byte, nodes []*Node) []byte {
	for _, n := range nodes {
		switch {
		case n.Op != nil:
			out = append(out, (*n.Op)[0])
		case n.Loop != nil:
			out = append(out, '[')
			out = appendOps(out, n.Loop.Body)
			out = append(out, ']')
		}
	}
	return out
}

// Count returns the number of executable command bytes, brackets included.
func (p *Program) Count() int {
	return len(p.Ops())
}

// Loops returns the number of loops in the program.
func (p *Program) Loops() int {
	return countLoops(p.Nodes)
}

func countLoops(nodes []*Node) int {
	n := 0
	for _, node := range nodes {
		if node.Loop != nil {
			n += 1 + countLoops(node.Loop.Body)
		}
	}
	return n
}

// Depth returns the deepest loop nesting level (0 for a loop-free program).
func (p *Program) Depth() int {
	return maxDepth(p.Nodes)
}

func maxDepth(nodes []*Node) int {
	max := 0
	for _, node := range nodes {
		if node.Loop != nil {
			if d := 1 + maxDepth(node.Loop.Body); d > max {
				max = d
			}
		}
	}
	return max
}
