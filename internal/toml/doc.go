// Package toml loads argstore schema files written in TOML. It uses the same
// keys as the HCL schema, with arrays of tables in place of blocks, and
// translates them into the format-agnostic config.Model.
package toml
