// Command recli is a restricted command-line interpreter: it loads a
// grammar describing exactly the commands a deployment wants to expose,
// drives an interactive read-check-dispatch loop against it, and forks the
// matching executable under D/bin/** rather than handing the user a real
// shell (§6).
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/term"

	"github.com/go-recli/recli/internal/bootstrap"
	"github.com/go-recli/recli/internal/dispatch"
	"github.com/go-recli/recli/internal/lexer"
	"github.com/go-recli/recli/internal/metrics"
	"github.com/go-recli/recli/internal/rlog"
	"github.com/go-recli/recli/internal/session"
	"github.com/go-recli/recli/internal/version"
	"go.uber.org/zap"
)

func main() {
	os.Exit(run(os.Args))
}

func run(argv []string) int {
	fs := flag.NewFlagSet(filepath.Base(argv[0]), flag.ContinueOnError)
	var (
		dirFlag        = fs.String("d", "", "configuration directory")
		helpFileFlag   = fs.String("H", "", "load help markdown from FILE (testing)")
		permFileFlag   = fs.String("p", "", "load permission file from FILE")
		quitAfterParse = fs.Bool("q", false, "parse grammar then quit")
		grammarFlag    = fs.String("s", "", "load grammar from FILE (testing)")
		promptFlag     = fs.String("P", "", "override prompt text")
		xFlag          = fs.String("X", "", "debug action to run instead of the interactive loop (e.g. syntax)")
		versionFlag    = fs.Bool("version", false, "print version and exit")
	)
	fs.Usage = func() { printUsage(fs) }

	if err := fs.Parse(argv[1:]); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 1
	}

	if *versionFlag {
		fmt.Println(version.Get().String())
		return 0
	}

	progName := filepath.Base(argv[0])
	dir := *dirFlag
	if dir == "" {
		dir = defaultConfigDir(progName)
	}

	logger, err := rlog.New()
	if err != nil {
		fmt.Fprintln(os.Stderr, "recli: logger init:", err)
		return 1
	}
	defer logger.Sync()

	boot, err := bootstrap.Run(dir)
	if err != nil {
		logger.Error("bootstrap failed", zap.Error(err))
		fmt.Fprintln(os.Stderr, "recli:", err)
		return 1
	}

	if *grammarFlag != "" {
		if err := boot.OverrideGrammar(*grammarFlag); err != nil {
			fmt.Fprintln(os.Stderr, "recli: -s:", err)
			return 1
		}
	}
	if *helpFileFlag != "" {
		if err := boot.OverrideHelp(*helpFileFlag); err != nil {
			fmt.Fprintln(os.Stderr, "recli: -H:", err)
			return 1
		}
	}
	if *permFileFlag != "" {
		exitNow, err := boot.OverridePermission(*permFileFlag)
		if err != nil {
			fmt.Fprintln(os.Stderr, "recli: -p:", err)
			return 1
		}
		boot.ExitImmediately = exitNow
	}
	if *promptFlag != "" {
		boot.Config.SetPrompt(*promptFlag)
	}

	if boot.ExitImmediately {
		return 0
	}
	if *quitAfterParse {
		return 0
	}
	if *xFlag != "" {
		return runDebugAction(boot, *xFlag)
	}

	sess := session.New(boot.Engine, boot.Builder, boot.Config, progName)
	sess.History = session.NewHistory(progName)

	r := &runner{sess: sess, boot: boot, logger: logger, ctx: context.Background()}

	if term.IsTerminal(int(os.Stdin.Fd())) {
		r.runInteractive()
	} else {
		r.runBatch()
	}
	return 0
}

// runDebugAction implements "-X syntax": it prints the loaded grammar with
// the same grammar.Print rendering the "help syntax" built-in uses.
func runDebugAction(boot *bootstrap.Result, action string) int {
	switch action {
	case "syntax":
		root, _ := boot.Config.Syntax()
		fmt.Println(bootstrap.DumpSyntax(root))
		return 0
	default:
		fmt.Fprintf(os.Stderr, "recli: unknown -X action %q\n", action)
		return 1
	}
}

// defaultConfigDir mirrors "-d"'s documented default: a fixed install
// location when invoked as "recli", or /etc/recli/{progname} when invoked
// under any other name (a deployment symlinking multiple restricted shells
// to one binary, each finding its own configuration by its own name).
func defaultConfigDir(progName string) string {
	if progName == "recli" {
		return "/etc/recli"
	}
	return filepath.Join("/etc/recli", progName)
}

// runner closes over the state a submitted line needs to be checked and
// dispatched, shared between the interactive (go-prompt) and batch
// (bufio.Scanner, for piped/non-tty input) front-ends.
type runner struct {
	sess   *session.Session
	boot   *bootstrap.Result
	logger *zap.Logger
	ctx    context.Context
}

// runInteractive drives the raw-mode, tab-completing editor for a real
// terminal.
func (r *runner) runInteractive() {
	editor := session.NewLineEditor(r.sess, r.evalLine)
	editor.Run()
}

// runBatch drives a plain line-at-a-time reader for piped or redirected
// input, where go-prompt's raw-mode terminal handling doesn't apply.
func (r *runner) runBatch() {
	sc := bufio.NewScanner(os.Stdin)
	for sc.Scan() {
		r.evalLine(sc.Text())
	}
}

// evalLine tokenizes and runs one submitted line: built-ins are handled
// directly; everything else is checked against the current context's
// grammar and either pushes a new context, reports a failure, or dispatches
// the matched command (§4.4, §6).
func (r *runner) evalLine(line string) {
	if strings.TrimSpace(line) == "" {
		return
	}

	words, err := lexer.Tokenize(line)
	if err != nil {
		fmt.Fprintln(os.Stderr, "recli:", err)
		return
	}
	if len(words) == 0 {
		return
	}

	if r.sess.History != nil {
		_ = r.sess.History.Append(line)
	}

	if session.Builtin(words) {
		outcome := r.sess.RunBuiltin(words)
		if outcome.Output != "" {
			fmt.Println(outcome.Output)
		}
		if outcome.Exit {
			os.Exit(0)
		}
		return
	}

	r.checkAndDispatch(words)
}

func (r *runner) checkAndDispatch(words []string) {
	metrics.CommandsChecked.Inc()
	node := r.sess.Current()
	verdict := r.sess.Engine.Check(node, words)

	switch {
	case verdict < 0:
		idx := -verdict - 1
		fmt.Fprintf(os.Stderr, "%% Unrecognized command at word %d: %q\n", idx, safeWord(words, idx))

	case verdict < len(words):
		// the grammar matched only the first verdict words; the rest are unrecognized
		fmt.Fprintf(os.Stderr, "%% Unrecognized command at word %d: %q\n", verdict, safeWord(words, verdict))

	case verdict > len(words):
		residual, err := r.sess.Engine.Skip(node, words)
		if err != nil {
			fmt.Fprintln(os.Stderr, "recli:", err)
			return
		}
		if err := r.sess.Push(residual, words); err != nil {
			fmt.Fprintln(os.Stderr, "recli:", err)
		}

	default:
		r.dispatch(words)
	}
}

func (r *runner) dispatch(words []string) {
	full := r.sess.FullArgv(words)
	if !r.boot.Config.Permissions().Allowed(full) {
		metrics.PermissionDenials.Inc()
		fmt.Fprintln(os.Stderr, "%% Permission denied")
		return
	}

	resolved, err := dispatch.Resolve(filepath.Join(r.boot.Config.Dir(), "bin"), full)
	if err != nil {
		fmt.Fprintln(os.Stderr, "%% No handler for that command")
		return
	}

	childStdin, err := os.Open(os.DevNull)
	if err != nil {
		fmt.Fprintln(os.Stderr, "recli:", err)
		return
	}
	defer childStdin.Close()

	metrics.Dispatches.Inc()
	result, err := dispatch.Run(r.ctx, resolved.ExecPath, resolved.Args, r.boot.Config.Envp(), childStdin, os.Stdout, os.Stderr)
	if err != nil {
		r.logger.Warn("dispatch failed", zap.Strings("argv", full), zap.Error(err))
		fmt.Fprintln(os.Stderr, "recli:", err)
		return
	}
	metrics.ChildExitCodes.WithLabelValues(fmt.Sprintf("%d", result.ExitCode)).Inc()
	r.sess.Reset()
}

func safeWord(words []string, idx int) string {
	if idx < 0 || idx >= len(words) {
		return ""
	}
	return words[idx]
}

func printUsage(fs *flag.FlagSet) {
	fmt.Fprintf(os.Stderr, "usage: %s [flags]\n", fs.Name())
	fs.PrintDefaults()
}
