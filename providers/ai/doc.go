// Package ai defines the provider-agnostic chat types — messages, tool-call
// requests, tool results, requests and responses — together with the
// [Provider] interface that concrete hosted-model clients implement.
package ai
