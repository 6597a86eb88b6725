package dispatch

import (
	"os/exec"
	"strings"

	"github.com/go-recli/recli/internal/rerr"
)

// DiscoverSyntax invokes execPath with "--config syntax" and returns the
// grammar-source text it prints (§6's syntax-discovery sub-mode). When
// execPath was reached as a DEFAULT/run fallback handler, it has no way to
// know its own real mount point and always advertises itself with a
// literal "DEFAULT " command prefix; DiscoverSyntax rewrites that prefix to
// commandPrefix, the words actually typed to reach it, via CommandPrefix.
func DiscoverSyntax(execPath, commandPrefix string) (string, error) {
	out, err := exec.Command(execPath, "--config", "syntax").Output()
	if err != nil {
		return "", &rerr.DispatchError{Stage: rerr.StageExec, Err: err}
	}
	text := string(out)
	if commandPrefix != "" {
		text = rewriteDefaultPrefix(text, commandPrefix)
	}
	return text, nil
}

func rewriteDefaultPrefix(text, commandPrefix string) string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		if rest, ok := strings.CutPrefix(line, "DEFAULT "); ok {
			line = commandPrefix + " " + rest
		} else if line == "DEFAULT" {
			line = commandPrefix
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}
