// Package pipeline models the case configuration procedure as an ordered
// list of step descriptors and executes it strictly sequentially, stopping
// at the first failure. There is no rollback and no retry: a failed step
// leaves the case directory in whatever state the external toolchain left
// it, exactly as the interactive workflow would.
package pipeline
