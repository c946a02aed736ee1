// Package metric records Prometheus metrics for linearcli runs.
//
// A CLI process is too short-lived to be scraped, so metrics are written
// in the text exposition format to a file for the node_exporter textfile
// collector:
//
//   - linearcli_graphql_requests_total{operation,outcome}
//   - linearcli_graphql_request_duration_seconds{operation}
//   - linearcli_avatar_downloads_total{outcome}
//   - linearcli_avatar_download_duration_seconds
//   - linearcli_last_run_timestamp_seconds{command}
package metric
