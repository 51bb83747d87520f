// Package telemetry carries run traces out of the controller: to the
// structured log, to websocket subscribers, or to several sinks at once.
//
// What
//
//   - LogReporter writes each trace record as one structured log line,
//     tagged with a fresh run id so interleaved runs stay separable.
//   - Hub is an http.Handler that upgrades subscribers to websockets
//     and broadcasts trace records to them as JSON. A slow subscriber
//     loses records; Report never blocks the control loop.
//   - MultiReporter fans a single trace out to several reporters.
//
// Why
//
//   - The controller reports through a fire-and-forget seam and knows
//     nothing about transports. Everything transport-shaped lives here,
//     where it can block, buffer and fail without touching navigation.
//
// Usage
//
//	hub := telemetry.NewHub()
//	defer hub.Close()
//	go http.ListenAndServe(":8080", hub)
//
//	m := mouse.New(mz, drive, rig, prof,
//	    mouse.WithReporter(telemetry.MultiReporter{
//	        telemetry.NewLogReporter(nil),
//	        hub,
//	    }))
package telemetry
