/*
Package observability reports what flattening does.

Metrics exposes Prometheus counters and a histogram of listing sizes; Logger reports the
same events through a structured logger. Both satisfy flatten.Recorder and can be
combined with Multi.
*/
package observability
