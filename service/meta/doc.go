// Package meta loads YAML or JSON documents through afs, expanding
// ${env.KEY} expressions first.
package meta
