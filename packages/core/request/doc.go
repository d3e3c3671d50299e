// Package request turns loosely-typed tabular input (parameter rows, header
// rows, a body selector) into a canonical, ready-to-send request descriptor.
//
// Materialization happens in three steps:
//   - path placeholders ({id} or :id) in the URL template are substituted
//     from matching parameter rows,
//   - remaining usable rows become the query and header maps,
//   - for POST/PUT/PATCH the body is built as a parsed JSON value or a
//     form-field map with an optional multipart file attachment.
package request
