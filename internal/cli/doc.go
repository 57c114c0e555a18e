// Package cli implements the numstr command line.
//
//	numstr check schema.yaml document.json --locale de
//	numstr serve --schema schema.yaml --addr :8080
//	numstr version
package cli
