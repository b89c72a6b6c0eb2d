// Package execmodel defines the data types shared by the execution cache and
// its sub-caches: object identity and versioning, package and marker values,
// transaction digests, and the bundle of outputs one transaction execution
// produces.
//
// execmodel has no dependency on the cache packages that consume it, so it
// can be imported by internal sub-caches and by the public execcache package
// without creating an import cycle.
package execmodel
