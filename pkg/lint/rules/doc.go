// Package rules implements the built-in gdlint rule catalog (§4.E). Each
// rule registers itself against lint.DefaultRegistry during init() so that
// importing this package for its side effects is enough to make every
// rule available to an Engine.
package rules
