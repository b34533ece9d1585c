// Package retain is a retained-mode UI runtime.
//
// Components describe their output as Html on every render. The runtime keeps
// component instances alive across renders, assembles nested components by
// position, and reconciles the produced nodes against a live Document with
// minimal mutations.
//
// # Quick Start
//
//	doc, root := memdom.NewWithRoot("body")
//	q := scheduler.NewQueue(nil)
//	app := retain.New(doc, q, retain.DefaultConfig())
//	app.Mount(root, component.Root[counter.Msg, counter.Event](counter.New, counter.Props{}))
//	q.Flush()
//
// # Packages
//
//   - pkg/node: the node model produced each pass
//   - pkg/reconcile: the reconciliation engine
//   - pkg/component: component instances, commands and prefabs
//   - pkg/html: builders for component Html
//   - pkg/dom: the Document boundary, with in-memory and remote implementations
//   - pkg/scheduler: the single-goroutine scheduler
//   - pkg/server: live sessions over WebSocket
//   - pkg/export: static HTML export
package retain
