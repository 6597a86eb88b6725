// Package bootstrap wires together recli's startup sequence: load D/ENV,
// seed the datatype registry, load the compiled grammar (from cache or by
// walking D/bin/**), load D/help.md and D/banner.txt, and load the
// invoking user's permission file — exiting immediately if that file's
// sole rule denies everything (§3.4, §6).
package bootstrap

import (
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"strings"

	"github.com/go-recli/recli/internal/cache"
	"github.com/go-recli/recli/internal/config"
	"github.com/go-recli/recli/internal/datatype"
	"github.com/go-recli/recli/internal/dispatch"
	"github.com/go-recli/recli/internal/grammar"
	"github.com/go-recli/recli/internal/grammarparser"
	"github.com/go-recli/recli/internal/permission"
	"github.com/go-recli/recli/internal/rerr"
)

// Result bundles everything a session needs to start running.
type Result struct {
	Engine      *grammar.Engine
	Builder     *grammarparser.Builder
	Config      *config.Manager
	Permissions *permission.Set
	// ExitImmediately is true when the invoking user's permission file's
	// sole rule is "!*": the session must print nothing further and exit.
	ExitImmediately bool
}

// Run executes the full startup sequence rooted at dir (recli's "D"
// install directory).
func Run(dir string) (*Result, error) {
	cfg := config.New(dir)
	if err := cfg.LoadEnvFile(filepath.Join(dir, "ENV")); err != nil {
		return nil, &rerr.ConfigError{Reason: "loading D/ENV", Err: err}
	}

	types := datatype.NewRegistry()
	engine := grammar.NewEngine(types)
	builder := grammarparser.NewBuilder(engine)

	syntax, inode, err := loadSyntax(dir, builder)
	if err != nil {
		return nil, &rerr.ConfigError{Reason: "loading grammar", Err: err}
	}
	cfg.SetSyntax(syntax, inode)

	if helpText, err := os.ReadFile(filepath.Join(dir, "help.md")); err == nil {
		parseHelpMarkdown(cfg, string(helpText))
	}

	if banner, err := os.ReadFile(filepath.Join(dir, "banner.txt")); err == nil {
		cfg.SetBanner(string(banner))
	}

	perms, exitNow, err := loadUserPermissions(dir)
	if err != nil {
		return nil, &rerr.ConfigError{Reason: "loading permissions", Err: err}
	}
	cfg.SetPermissions(perms)

	return &Result{
		Engine: engine, Builder: builder, Config: cfg,
		Permissions: perms, ExitImmediately: exitNow,
	}, nil
}

// loadSyntax returns the compiled grammar either from D/cache/syntax.txt
// (if its stamped inode still matches D/bin) or by walking D/bin/** and
// querying every executable's self-reported syntax, refreshing the cache
// afterward.
func loadSyntax(dir string, b *grammarparser.Builder) (*grammar.Node, uint64, error) {
	binDir := filepath.Join(dir, "bin")
	inode, err := cache.InodeOf(binDir)
	if err != nil {
		return nil, 0, err
	}

	c := &cache.Cache{Dir: filepath.Join(dir, "cache")}
	if body, ok := c.Load(inode); ok {
		node, err := parseGrammarLines(b, body)
		if err == nil {
			return node, inode, nil
		}
		// fall through to a fresh walk on any parse error from a stale cache
	}

	body, node, err := walkBin(binDir, b)
	if err != nil {
		return nil, 0, err
	}
	_ = c.Store(inode, body) // a cache write failure is not fatal to startup
	return node, inode, nil
}

func parseGrammarLines(b *grammarparser.Builder, body string) (*grammar.Node, error) {
	var nodes []*grammar.Node
	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		n, err := b.ParseLine(line)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, n)
	}
	return b.Engine.Alternate(nodes)
}

// walkBin discovers every executable under binDir and asks each for its
// own syntax via --config syntax, merging the results into one grammar and
// returning the raw text so the caller can stamp the cache with it.
func walkBin(binDir string, b *grammarparser.Builder) (string, *grammar.Node, error) {
	var lines []string
	var nodes []*grammar.Node

	err := filepath.Walk(binDir, func(path string, info os.FileInfo, err error) error {
		if err != nil || info.IsDir() {
			return err
		}
		if info.Mode()&0o111 == 0 {
			return nil
		}
		name := filepath.Base(path)
		if strings.HasPrefix(name, ".") || strings.Contains(name, "~") {
			return nil // editor backup files and dotfiles never report their own syntax
		}
		prefix := dispatch.CommandPrefix(binDir, path)
		text, err := dispatch.DiscoverSyntax(path, prefix)
		if err != nil {
			return nil // a handler that can't report its own syntax is simply excluded
		}
		for _, line := range strings.Split(text, "\n") {
			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}
			n, err := b.ParseLine(line)
			if err != nil {
				continue
			}
			lines = append(lines, line)
			nodes = append(nodes, n)
		}
		return nil
	})
	if err != nil {
		return "", nil, err
	}

	node, err := b.Engine.Alternate(nodes)
	if err != nil {
		return "", nil, err
	}
	return strings.Join(lines, "\n"), node, nil
}

// loadUserPermissions loads D/permission/{username}.txt for the invoking
// user.
func loadUserPermissions(dir string) (*permission.Set, bool, error) {
	u, err := user.Current()
	if err != nil {
		return &permission.Set{}, false, nil // no identifiable user: allow-all, matching an absent file
	}
	path := filepath.Join(dir, "permission", fmt.Sprintf("%s.txt", u.Username))
	set, err := permission.LoadFile(path)
	if err != nil {
		return nil, false, err
	}
	return set, set.ExitImmediately, nil
}
