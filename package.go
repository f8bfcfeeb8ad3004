// asynccore is WebCraft's cooperative I/O runtime: a user-space scheduler for
// suspendable tasks, driven by an event-driven runtime, plus the typed
// asynchronous stream abstraction built on top of it.
// This top-level package is just a stub.
// For main functionality, see:
//   - For types and interfaces: [github.com/webcraft-project/async-core/api/types]
//   - For suspendable tasks: [github.com/webcraft-project/async-core/task]
//   - For lazy sequences: [github.com/webcraft-project/async-core/generator]
//   - For the runtime provider and timers: [github.com/webcraft-project/async-core/runtime]
//   - For bounded worker pools: [github.com/webcraft-project/async-core/threadpool]
//   - For streams and pipeline adaptors: [github.com/webcraft-project/async-core/stream] and [github.com/webcraft-project/async-core/pipeline]
//   - For the MPSC channel: [github.com/webcraft-project/async-core/channel]
//   - For file/TCP/UDP backends: [github.com/webcraft-project/async-core/netio]
//   - For examples: the Example functions in this package's examples_test.go
package asynccore
