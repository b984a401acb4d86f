// Package metrics records build and stage measurements.
//
// Components receive a Recorder through their constructor and default to
// NoopRecorder, so metrics collection never requires nil checks:
//
//	driver := &pipeline.Driver{Recorder: metrics.NoopRecorder{}}
//
// When a metrics file is requested on the command line the CLI swaps in a
// PrometheusRecorder and writes its registry in the Prometheus text
// exposition format after the build (see WriteTextfile), ready for the node
// exporter textfile collector.
package metrics
