// Package inmemory provides the default memory.Provider implementation: a
// mutex-guarded, append-only slice of messages held in process memory.
package inmemory
