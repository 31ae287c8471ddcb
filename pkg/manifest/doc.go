// Package manifest reads and writes package manifests.
//
// A manifest is a plain text file in the store directory named after the
// package (name or name#version). It lists one path relative to the install
// root per line, each terminated by a newline, in archive order. Directory
// entries keep their trailing slash. An empty line makes the whole manifest
// malformed.
package manifest
