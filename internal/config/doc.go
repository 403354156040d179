// Package config defines the format-agnostic run configuration model. The
// HCL front end in internal/hcl translates case files into these structs;
// everything downstream of the loader (machine lookup, pipeline building,
// history recording) works only with this model.
package config
