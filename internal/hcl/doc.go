// Package hcl implements the HCL case file loader. It parses the file with
// hclparse, decodes it into internal/schema structs under an evaluation
// context exposing the process environment, and translates the result into
// the format-agnostic model in internal/config.
package hcl
