// Package metrics exposes prometheus counters for a recli session's core
// events. recli never opens an HTTP listener itself (there is no reason
// for a restricted command interpreter to serve its own /metrics); an
// embedding process that does run one can register these with its own
// registry via Register.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// CommandsChecked counts submitted command lines checked against the
	// grammar (one per line, not one per recursive Check call).
	CommandsChecked = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "recli_commands_checked_total",
		Help: "Total number of command lines checked against the grammar.",
	})

	// PermissionDenials counts commands rejected by the active permission set.
	PermissionDenials = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "recli_permission_denials_total",
		Help: "Total number of commands rejected by the permission engine.",
	})

	// Dispatches counts commands that were forked and executed.
	Dispatches = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "recli_dispatches_total",
		Help: "Total number of commands dispatched to an executable.",
	})

	// ChildExitCodes counts dispatched children by their exit code.
	ChildExitCodes = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "recli_child_exit_codes_total",
		Help: "Dispatched child process exit codes, labeled by code.",
	}, []string{"code"})
)

// Register adds all of this package's collectors to reg.
func Register(reg prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{CommandsChecked, PermissionDenials, Dispatches, ChildExitCodes} {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}
