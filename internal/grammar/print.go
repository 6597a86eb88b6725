package grammar

import (
	"fmt"
	"strings"
)

// Print renders n back into grammar source text, the inverse of what
// internal/grammarparser builds: parsing Print(n) reproduces a node
// structurally equivalent to n (§8's round-trip property).
func Print(n *Node) string {
	var b strings.Builder
	printNode(&b, n, 0)
	return b.String()
}

// precedence levels, low to high, controlling when printNode parenthesizes
// an ALTERNATE or CONCAT child.
const (
	precAlternate = 1
	precConcat    = 2
	precAtom      = 3
)

func printNode(b *strings.Builder, n *Node, parentPrec int) {
	if n == nil {
		return
	}
	switch n.kind {
	case KLiteral:
		printLiteral(b, n)
	case KVarargs:
		b.WriteString("...")
	case KConcat:
		open := precConcat < parentPrec
		if open {
			b.WriteByte('(')
		}
		printConcatChain(b, n)
		if open {
			b.WriteByte(')')
		}
	case KAlternate:
		open := precAlternate < parentPrec
		if open {
			b.WriteByte('(')
		}
		printAlternateChain(b, n)
		if open {
			b.WriteByte(')')
		}
	case KOptional:
		b.WriteByte('[')
		printNode(b, n.inner, precAlternate)
		b.WriteByte(']')
	case KPlus:
		printNode(b, n.inner, precAtom)
		switch {
		case n.min == 0 && n.max == 0:
			b.WriteByte('*')
		case n.min == 1 && n.max == 0:
			b.WriteByte('+')
		default:
			fmt.Fprintf(b, "{%d,%d}", n.min, n.max)
		}
	case KMacro:
		b.WriteByte('$')
		b.WriteString(n.macroName)
	}
}

func printLiteral(b *strings.Builder, n *Node) {
	if n.helpRank != HelpNone {
		fmt.Fprintf(b, "%%help%d{\"%s\"}", int(n.helpRank), strings.ReplaceAll(n.helpText, `"`, `\"`))
		return
	}
	if n.validator != "" {
		fmt.Fprintf(b, "%s=%s", n.name, n.validator)
	} else {
		b.WriteString(n.name)
	}
	if n.caseInsensitive {
		b.WriteString("/i")
	}
	if n.ttyRequired {
		b.WriteString("/t")
	}
}

func printConcatChain(b *strings.Builder, n *Node) {
	first := true
	for cur := n; cur != nil; {
		if !first {
			b.WriteByte(' ')
		}
		first = false
		if cur.kind == KConcat {
			printNode(b, cur.first, precConcat+1)
			cur = cur.rest
			continue
		}
		printNode(b, cur, precConcat+1)
		break
	}
}

func printAlternateChain(b *strings.Builder, n *Node) {
	first := true
	for cur := n; cur != nil; {
		if !first {
			b.WriteByte('|')
		}
		first = false
		if cur.kind == KAlternate {
			printNode(b, cur.first, precAlternate+1)
			cur = cur.rest
			continue
		}
		printNode(b, cur, precAlternate+1)
		break
	}
}
