package cli

import "github.com/julianstephens/habitual/internal/storage"

// Context carries the shared store handle into every command. The handle is
// constructed once at startup.
type Context struct {
	Store storage.Provider
}
