// Package render defines the renderer contract shared by the HTML and
// terminal front ends, the View they consume and a name-keyed registry of
// renderers.
package render
