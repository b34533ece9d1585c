// Package node provides the committed output model consumed by the
// reconciler.
//
// A Node is either an element (tag, attributes, events, ordered children) or
// a text node (content, events). Node lists are produced fresh for every
// render pass. The reconciler writes live Handles and handler ids into the
// list it returns, so the returned list doubles as the "befores" of the next
// pass.
package node
