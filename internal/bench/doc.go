// Package bench runs the patch size benchmark.
//
// The Driver walks a work matrix in order. For each item it moves through a
// fixed sequence of states:
//
//	Pending          compressed patch present? -> Done
//	NeedsPatch       patch present? reuse it : run the diff generator
//	NeedsCompression run the archiver
//	Done             log the compressed size
//
// Completion is read back from the output directory, so a second run over
// the same directory invokes no tools, and a run interrupted between the two
// tools resumes at compression. Existing outputs are trusted as-is: a file
// truncated by a killed run will be treated as complete. A freshly generated
// patch that fails verification is removed, so the next run regenerates it.
//
// Any error aborts the run. Items are never retried or skipped.
package bench
