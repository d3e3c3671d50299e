package request

import "errors"

// ErrBodyParse marks a request body that was declared JSON but does not
// parse. Callers match it with errors.Is.
var ErrBodyParse = errors.New("invalid JSON body")
