// Package assets implements the asset pipeline stages: verbatim copying of
// static files and Sass compilation through the Dart Sass embedded protocol.
package assets
