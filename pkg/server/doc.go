// Package server serves retain apps over HTTP.
//
// Routes (chi):
//
//	GET /           server-side rendered page of a fresh tree
//	GET /live       WebSocket upgrade into a live session (path configurable)
//	GET /metrics    Prometheus exposition, when metrics are enabled
//	GET /healthz    liveness and session count
//
// Each live session owns a scheduler.Loop goroutine, a retain.App and a
// remote.Document. The read loop decodes Event frames and schedules them
// onto the session loop; after every render pass the App's commit hook
// flushes the queued mutations as Patches frames. Nothing outside the loop
// goroutine touches the App.
package server
