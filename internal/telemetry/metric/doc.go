// Package metric records pipeline stage timings as Prometheus metrics.
//
// hashgen is a one-shot process, so nothing is served over HTTP. The
// registry is written once per run in the node_exporter textfile format
// (see Registry.WriteTextfile) for collection by a textfile collector.
package metric
