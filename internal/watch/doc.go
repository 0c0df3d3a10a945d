// Package watch follows Kodi's JSON-RPC websocket feed and turns library
// scans into batches of movie paths to process.
//
// Movie additions are collected as they are announced; when Kodi reports the
// scan finished, each collected movie is resolved to its file path and the
// whole batch is handed to the caller.
package watch
