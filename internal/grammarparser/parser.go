package grammarparser

import (
	"github.com/alecthomas/participle/v2"

	"github.com/go-recli/recli/internal/rerr"
)

var syntaxParser = participle.MustBuild[AltGroup](
	participle.Lexer(syntaxLexer),
	participle.UseLookahead(2),
)

// parseLine parses one grammar-source line into its participle AST, without
// lowering it to the hash-consed DAG yet.
func parseLine(text string) (*AltGroup, error) {
	ast, err := syntaxParser.ParseString("", text)
	if err != nil {
		return nil, &rerr.GrammarParseError{Reason: err.Error()}
	}
	return ast, nil
}
