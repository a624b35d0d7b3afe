// Package page models a rendered web page as a tree of elements carrying
// tag, attributes, inner text and a vertical position.
//
// Documents come from static HTML (parsed with goquery, inner text rendered
// from the node tree) or from a JSON element dump exported by a page
// renderer. Extraction code works only against this model.
package page
