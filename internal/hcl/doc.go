// Package hcl provides the HCL implementation of config.Loader. It parses
// schema files with hashicorp/hcl, decodes them into the block structs of
// schema.go and translates those into the format-agnostic config model,
// converting cty defaults into plain Go values.
package hcl
