// Package resolve produces parent→children dependency mappings for the
// active Python environment.
//
// The primary resolver shells out to pipdeptree and parses its JSON
// output. Resolution never fails from the caller's point of view: any
// underlying problem (missing tool, non-zero exit, malformed output,
// timeout) substitutes the bundled fallback dataset and is reported
// through [Outcome.Err] so the caller can log the degradation.
//
//	r := resolve.NewPipdeptree(resolve.DefaultData(), logger)
//	out := r.Resolve(ctx)
//	if out.Err != nil {
//	    logger.Warn("using fallback dependency data", "err", out.Err)
//	}
//	mapping := out.Mapping
package resolve
