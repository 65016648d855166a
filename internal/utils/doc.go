// Package utils contains small internal helpers shared by the provider
// implementations, most notably the generic JSON-over-HTTP request helper
// used to call hosted model APIs.
package utils
