// Package memory defines the conversation-state storage interface.
// The default implementation lives in the inmemory subpackage.
package memory
