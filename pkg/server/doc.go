// Package server exposes the dump pipeline over HTTP.
//
// # Routes
//
//	POST   /dump                     snapshot body → dump text
//	GET    /baselines                list baseline names
//	GET    /baselines/{name}         baseline record (JSON)
//	PUT    /baselines/{name}         dump snapshot body and store it as a baseline
//	DELETE /baselines/{name}         remove a baseline
//	POST   /baselines/{name}/check   dump snapshot body and compare with the baseline
//	GET    /healthz                  liveness and build version
//
// Snapshot bodies are JSON unless the format query parameter says otherwise
// (format=yaml or format=toml). The legacy and sort query parameters map to
// [dump.Options]. Nested baseline names are passed with escaped slashes,
// e.g. /baselines/designs%2Falu.
//
// Errors are returned as {"error": "...", "code": "..."} with a status
// derived from the error code.
//
// [dump.Options]: github.com/matzehuels/stadump/pkg/dump#Options
package server
