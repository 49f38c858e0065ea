// Package command defines the hashgen command line.
//
// Invoked without a subcommand hashgen runs the benchmark, taking the same
// short flags as the classic tool (-f -s -t -o -i -m). The verify, history,
// config and algorithms subcommands inspect outputs, past runs and the
// effective configuration.
package command
