package bootstrap

import (
	"strings"

	"github.com/go-recli/recli/internal/config"
)

// parseHelpMarkdown splits D/help.md into per-command entries and files
// each into cfg's long-help table, keyed by its command prefix. Each entry
// begins with a "# " heading naming the space-joined command prefix the
// entry documents; everything up to the next heading (or end of file) is
// that command's help body. The first line of the body, if non-blank, also
// becomes the short-help entry, matching the "one line for completion
// listings, full body for help <cmd>" convention (§3.4).
func parseHelpMarkdown(cfg *config.Manager, text string) {
	var key string
	var body strings.Builder
	flush := func() {
		if key == "" && body.Len() == 0 {
			return
		}
		full := strings.TrimSpace(body.String())
		cfg.SetLongHelp(key, full)
		if line := firstLine(full); line != "" {
			cfg.SetShortHelp(key, line)
		}
		body.Reset()
	}

	for _, line := range strings.Split(text, "\n") {
		if rest, ok := strings.CutPrefix(line, "# "); ok {
			flush()
			key = strings.TrimSpace(rest)
			continue
		}
		body.WriteString(line)
		body.WriteByte('\n')
	}
	flush()
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
