// Package env resolves the environment mapping from a dot config.
//
// Raw config values may reference inherited environment variables or
// other keys of the same mapping ($NAME or ${NAME}), and may start with
// the ~ home shorthand. Resolution runs to a fixed point: values whose
// references are not yet available are queued and re-expanded each pass
// until the queue empties or a pass makes no progress, which proves a
// reference cycle.
package env
