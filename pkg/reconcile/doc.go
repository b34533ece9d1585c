// Package reconcile implements the reconciliation engine.
//
// A Renderer compares the node list committed for a parent handle on the
// previous call ("befores") against a freshly rendered list ("afters") and
// mutates the live Document minimally:
//
//   - Children are matched strictly by index. Reordering siblings is
//     reconciled as independent replacements, never as moves.
//   - An element whose tag is unchanged is diffed in place: attributes,
//     events, then children.
//   - A text node whose content is unchanged keeps its live resource and
//     only has its events rediffed.
//   - Anything else gets a brand-new live resource that replaces the old one
//     wholesale.
//   - Trailing befores beyond the length of afters are removed in order.
//
// Attributes are rewritten only when their (values, delimiter) pair changed.
// Handler ids are carried forward into positionally matching slots so live
// listeners are attached once per resource and never re-registered.
//
// Live mutations are best-effort. A failing call is logged and skipped, and a
// handle is committed only once its resource is attached. When creating or
// attaching a replacement fails, the old resource stays committed in its slot.
// A slot with nothing live is committed without a handle; the next pass
// creates it again and inserts it before the next live sibling, so committed
// handles always match the parent's children in order.
package reconcile
