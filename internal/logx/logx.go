// Package logx provides the minimal bracketed-tag logging idiom used
// throughout the core, matching the teacher's own fmt.Printf convention
// (no external logging library is wired anywhere in the retrieval pack).
package logx

import (
	"fmt"
	"os"
)

// Infof prints an informational line tagged with the component name.
func Infof(component, format string, args ...any) {
	fmt.Fprintf(os.Stderr, "[%s] %s\n", component, fmt.Sprintf(format, args...))
}

// Errorf prints an error line tagged with the component name.
func Errorf(component, format string, args ...any) {
	fmt.Fprintf(os.Stderr, "[%s] error: %s\n", component, fmt.Sprintf(format, args...))
}
