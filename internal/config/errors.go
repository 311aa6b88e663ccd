package config

import "errors"

// ErrMissingCredentials indicates that upstream credentials are absent
// from both the config file and the environment.
var ErrMissingCredentials = errors.New("missing upstream credentials")
