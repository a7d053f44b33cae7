// Package albums builds the hierarchical album tree served to tree and grid views.
//
// The photo library stores albums flat, each carrying a slash-delimited Path
// describing its placement (e.g. "Public/Events"). [BuildTree] groups a
// [Collection] into a [TreeNode] hierarchy: one folder node per distinct path
// segment (get-or-create, never duplicated), with albums attached to the node
// their path resolves to. Empty segments produced by leading, trailing, or
// doubled slashes are dropped, so "", "/", and "//" all attach an album
// directly to the root.
//
// After insertion every node's children are sorted by name and its albums by
// title using a locale-aware comparator. The comparator is injectable via
// [BuildTreeWith] so callers (and tests) are independent of host locale
// configuration; [BuildTree] uses an x/text collation under [language.Und].
//
// The tree is a derived, ephemeral view: it is rebuilt from scratch on every
// call, never mutates the input collection, and holds no state between calls.
// Concurrent calls over the same collection are safe because each call
// allocates its own collator and output nodes.
package albums
