// Package show implements the "show" command, which prints the version declared in the
// manifest of the working tree.
package show
