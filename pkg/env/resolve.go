package env

import (
	"os"
	"sort"

	"github.com/rs/zerolog"

	"github.com/gibfahn/dot/pkg/errors"
	"github.com/gibfahn/dot/pkg/logging"
)

// Resolver expands a raw config environment mapping to a fixed point.
// Process state (the real environment, the home directory) is injected
// so resolution stays deterministic and testable.
type Resolver struct {
	lookupEnv func(string) (string, bool)
	homeDir   string
	logger    zerolog.Logger
}

// NewResolver creates a Resolver backed by the process environment
func NewResolver() (*Resolver, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrEnvLookup, "failed to determine home directory")
	}
	return NewResolverWith(os.LookupEnv, home), nil
}

// NewResolverWith creates a Resolver with an explicit environment lookup
// and home directory
func NewResolverWith(lookupEnv func(string) (string, bool), homeDir string) *Resolver {
	return &Resolver{
		lookupEnv: lookupEnv,
		homeDir:   homeDir,
		logger:    logging.GetLogger("env"),
	}
}

// Resolve builds the full environment mapping from the inherited variable
// names and the raw config values. Inherited names absent from the process
// environment are skipped. Raw values may reference inherited variables or
// other raw keys; references to anything else fail with ENV_LOOKUP, and a
// resolution pass that makes no progress fails with ENV_CYCLE.
func (r *Resolver) Resolve(inherit []string, rawEnv map[string]string) (map[string]string, error) {
	env := make(map[string]string, len(inherit)+len(rawEnv))
	for _, name := range inherit {
		if value, ok := r.lookupEnv(name); ok {
			env[name] = value
		}
	}

	// First pass in sorted key order so the queue (and with it the log
	// output) is deterministic. The final mapping does not depend on it.
	keys := make([]string, 0, len(rawEnv))
	for key := range rawEnv {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var unresolved []string
	calculated := make(map[string]string, len(rawEnv))
	for _, key := range keys {
		raw := ExpandTilde(rawEnv[key], r.homeDir)
		expanded, deferred, err := Expand(raw, func(name string) (string, bool, error) {
			if value, ok := env[name]; ok {
				return value, true, nil
			}
			if _, ok := rawEnv[name]; ok {
				// Another config key, not computed yet.
				return "", false, nil
			}
			return "", false, errors.Newf(errors.ErrEnvLookup,
				"value %q not found in inherited environment or config env", name).
				WithDetail("var", name)
		})
		if err != nil {
			return nil, err
		}
		if deferred > 0 {
			unresolved = append(unresolved, key)
		}
		calculated[key] = expanded
	}
	for key, value := range calculated {
		env[key] = value
	}

	r.logger.Debug().Strs("keys", unresolved).Msg("Unresolved env after first pass")

	for len(unresolved) > 0 {
		queued := make(map[string]bool, len(unresolved))
		for _, key := range unresolved {
			queued[key] = true
		}

		var remaining []string
		for _, key := range unresolved {
			expanded, deferred, err := Expand(env[key], func(name string) (string, bool, error) {
				if queued[name] {
					return "", false, nil
				}
				if value, ok := env[name]; ok {
					return value, true, nil
				}
				// First-pass validation means every reference is either
				// queued or already in the mapping.
				return "", false, errors.Newf(errors.ErrInternal,
					"reference %q vanished during resolution", name)
			})
			if err != nil {
				return nil, err
			}
			env[key] = expanded
			if deferred > 0 {
				remaining = append(remaining, key)
			}
		}

		if len(remaining) == len(unresolved) {
			sort.Strings(remaining)
			return nil, errors.Newf(errors.ErrEnvCycle,
				"no progress resolving env, do you have cycles? unresolved: %v", remaining).
				WithDetail("keys", remaining)
		}
		unresolved = remaining
	}

	r.logger.Trace().Interface("env", env).Msg("Expanded config env")
	return env, nil
}

// ExpandHome expands only the ~ shorthand in s
func (r *Resolver) ExpandHome(s string) string {
	return ExpandTilde(s, r.homeDir)
}

// ExpandValue expands the ~ shorthand and variable references in s
// against an already resolved mapping. References to names outside the
// mapping fail with ENV_LOOKUP.
func (r *Resolver) ExpandValue(s string, resolved map[string]string) (string, error) {
	expanded, _, err := Expand(ExpandTilde(s, r.homeDir), func(name string) (string, bool, error) {
		if value, ok := resolved[name]; ok {
			return value, true, nil
		}
		return "", false, errors.Newf(errors.ErrEnvLookup,
			"value %q not found in resolved environment", name).
			WithDetail("var", name)
	})
	return expanded, err
}
