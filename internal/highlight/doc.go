// Package highlight renders generated PHP code with syntax highlighting.
// It uses the Chroma library to do this work.
//
// Code blocks are represented as [Code] values,
// which are comprised of multiple [Span]s.
// Spans carry rendering instructions
// such as highlighting a region of code
// or marking it as an addressable anchor.
//
// A [Highlighter] renders code blocks as HTML
// or writes source code as ANSI-colored terminal text.
package highlight
