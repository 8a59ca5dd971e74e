// Package hierarchy derives target distance matrices from class
// hierarchies.
//
// A hierarchy is parsed from parent-child edge pairs. The semantic
// distance between two classes is the height of their lowest common
// subsumer, normalized by the hierarchy height: identical classes have
// distance zero, classes related only through a root have distance one.
//
//	h, err := hierarchy.FromFile("wordnet.parent-child.txt")
//	classes, _ := hierarchy.SortClasses(h.Leaves(), true)
//	dm, err := h.Distances(classes)
//
// The resulting matrix satisfies the strict triangle inequality for
// typical hierarchies and feeds directly into hierembed.Embed.
package hierarchy
