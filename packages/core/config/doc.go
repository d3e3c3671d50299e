// Package config handles configuration loading for apiprobe.
//
// Configuration is read from an .apiprobe.config.json (or .apiproberc)
// file and covers transport settings (timeout, redirects, TLS, proxy,
// default headers) and diagnostic defaults (expected status, performance
// iterations and pacing).
package config
