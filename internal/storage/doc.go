// Package storage provides JSON-based persistence for standings snapshots and
// playoff picture documents.
//
// The storage package manages the files a run reads and writes: the
// authoritative standings snapshot (standings.json) and the assembled output
// document (playoff-picture.json). The default storage location is
// ~/.local/share/playoff-picture/.
package storage
