/*
Package preview implements the request-handling core of the QuillPress theme
preview server.

A theme is a directory of Tera/Jinja-style HTML templates plus static assets.
This package maps a fixed set of canonical URL paths to template files, strips
the templating directives from a matched template so the raw markup can be
viewed without a rendering engine, and delegates every other path to a generic
static file server rooted at the theme directory.

Templates are read from disk on every request, so edits to a theme are visible
on the next page load without restarting the server.
*/
package preview
