// Package component implements the component instance tree.
//
// A component is any type implementing Component: it updates on messages of
// its own type M, emits outbound events of type S to its parent, and renders
// Html from its props. Components never know their parent's message type; a
// Mapper supplied when the component is packed translates S into the
// parent's message type, and may reject events it does not care about.
//
// Rendering goes through Prefabs. A Prefab describes how to construct or
// refresh one component at one tree position. When a parent renders, each
// Prefab in its output is assembled against whatever instance occupied the
// same position on the previous pass. The instance is reused when the
// component type and optional index id both match; otherwise a fresh
// instance is constructed and the old one is released.
//
// Instances live in an Arena and refer to each other by generation-counted
// Refs. A parent owns its children's Refs and releases them when they are
// replaced. A child only remembers its demiroot (the ancestor that receives
// its events). Deferred work resolving after its instance was released is
// dropped, which is the only form of cancellation.
//
// Commands returned by Update are resolved immediately. Commands returned by
// the OnAssemble and OnLoad hooks are queued and drained by the parent while
// it renders, so events raised during tree construction reach a parent that
// is ready for them.
package component
