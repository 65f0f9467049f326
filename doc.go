// Package forGoSearch provides parallel interpolation search over sorted,
// immutable integer arrays.
//
// Search is the entry point; it runs one of three strategies selected with
// WithStrategy and reports the index of the key, or NotFound.
//
// It provides the following subpackages:
//
// forGoSearch/interpolation provides the sequential interpolation search that
// every strategy runs, with a guard for ranges whose endpoint values are
// equal.
//
// forGoSearch/parallel divides the array into one contiguous range per
// worker, searches all ranges concurrently, and merges hits into a single
// lock-guarded result after every worker has terminated.
//
// forGoSearch/speculative does the same, but stops the remaining workers as
// soon as one of them has found the key.
//
// forGoSearch/cooperative keeps one sequential loop and hands each probe
// computation to a worker pool.
//
// forGoSearch/pool and forGoSearch/gsync provide the pool, the future and
// the result slot those strategies are built on.
//
// forGoSearch/sorted and forGoSearch/source load an array from a local file
// or an S3-compatible object store, optionally zstd or lz4 compressed.
package forGoSearch
