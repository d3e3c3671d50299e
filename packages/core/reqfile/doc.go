// Package reqfile loads YAML request-definition files into the tabular
// input shape the materializer consumes.
package reqfile
