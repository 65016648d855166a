// Package gemini implements the ai.Provider interface against Google's Gemini
// generateContent API over raw HTTP. It converts the generic chat types to the
// Gemini wire format (user/model roles, functionCall and functionResponse
// parts) and mints tool-call identifiers for function calls, which Gemini
// returns without IDs.
package gemini
