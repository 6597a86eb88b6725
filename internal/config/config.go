// Package config centralizes the session-wide configuration state recli
// loads once at bootstrap and occasionally reloads: the bin/ directory
// location, the prompt and banner text, the compiled syntax grammar (and
// the inode it was derived from, for cache invalidation), the long/short
// help bodies, the active user's permission set, and the environment to
// pass dispatched children (§3.4). It follows the mutex-guarded singleton
// shape the ambient config layer it's grounded on uses, generalized from a
// flat string-keyed map to a typed struct since recli's configuration
// surface is fixed and small rather than an open-ended set of provider
// knobs.
package config

import (
	"sync"

	"github.com/joho/godotenv"

	"github.com/go-recli/recli/internal/grammar"
	"github.com/go-recli/recli/internal/permission"
)

// Manager holds recli's session-wide configuration state.
type Manager struct {
	mu sync.RWMutex

	dir           string
	prompt        string
	banner        string
	syntax        *grammar.Node
	syntaxInode   uint64
	longHelp      map[string]string
	shortHelp     map[string]string
	permissions   *permission.Set
	envp          []string
}

// New returns an empty Manager rooted at dir (recli's "D" install
// directory, §3.4).
func New(dir string) *Manager {
	return &Manager{
		dir:       dir,
		longHelp:  make(map[string]string),
		shortHelp: make(map[string]string),
	}
}

// Dir returns the install root.
func (m *Manager) Dir() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.dir
}

// SetPrompt / Prompt store and retrieve the synthesized prompt text.
func (m *Manager) SetPrompt(p string) { m.mu.Lock(); defer m.mu.Unlock(); m.prompt = p }
func (m *Manager) Prompt() string     { m.mu.RLock(); defer m.mu.RUnlock(); return m.prompt }

// SetBanner / Banner store and retrieve the startup banner text.
func (m *Manager) SetBanner(b string) { m.mu.Lock(); defer m.mu.Unlock(); m.banner = b }
func (m *Manager) Banner() string     { m.mu.RLock(); defer m.mu.RUnlock(); return m.banner }

// SetSyntax / Syntax store and retrieve the compiled top-level grammar plus
// the bin/ inode it was derived from.
func (m *Manager) SetSyntax(n *grammar.Node, inode uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.syntax = n
	m.syntaxInode = inode
}

func (m *Manager) Syntax() (*grammar.Node, uint64) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.syntax, m.syntaxInode
}

// SetLongHelp / LongHelp and SetShortHelp / ShortHelp manage the help.md
// derived per-command help bodies, keyed by the command's space-joined
// prefix.
func (m *Manager) SetLongHelp(key, text string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.longHelp[key] = text
}

func (m *Manager) LongHelp(key string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.longHelp[key]
	return v, ok
}

func (m *Manager) SetShortHelp(key, text string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.shortHelp[key] = text
}

func (m *Manager) ShortHelp(key string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.shortHelp[key]
	return v, ok
}

// SetPermissions / Permissions store and retrieve the active user's rule
// set.
func (m *Manager) SetPermissions(p *permission.Set) { m.mu.Lock(); defer m.mu.Unlock(); m.permissions = p }
func (m *Manager) Permissions() *permission.Set {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.permissions == nil {
		return &permission.Set{}
	}
	return m.permissions
}

// maxEnvpEntries bounds the environment handed to a dispatched child: D/ENV
// is operator-controlled but still untrusted input, and an unbounded envp
// is an unbounded fork-time allocation for every command a session runs.
const maxEnvpEntries = 127

// LoadEnvFile reads D/ENV (if present) and merges it into the environment
// passed to dispatched children, then appends RECLI_DIR (pointing
// children back at the install directory that dispatched them) and caps the
// result at maxEnvpEntries. Both the append and the cap apply whether or not
// D/ENV itself was found, since a child must always be able to find
// RECLI_DIR regardless of whether the deployment ships an ENV file.
func (m *Manager) LoadEnvFile(path string) error {
	envMap, err := godotenv.Read(path)
	if err != nil {
		envMap = nil // D/ENV is optional; absence is not an error
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	for k, v := range envMap {
		if len(m.envp) >= maxEnvpEntries-1 { // keep the last slot for RECLI_DIR
			break
		}
		m.envp = append(m.envp, k+"="+v)
	}
	m.envp = append(m.envp, "RECLI_DIR="+m.dir)
	return nil
}

// Envp returns the environment slice to pass to dispatched children.
func (m *Manager) Envp() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]string, len(m.envp))
	copy(out, m.envp)
	return out
}
