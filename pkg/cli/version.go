package cli

import (
	"fmt"
	"io"
	"reflect"
)

// BuildInfo identifies the binary. Fields are normally stamped with -ldflags.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// String renders the build as "version (commit, date)", leaving out empty parts.
func (b BuildInfo) String() string {
	switch {
	case b.Commit != "" && b.Date != "":
		return fmt.Sprintf("%s (%s, %s)", b.Version, b.Commit, b.Date)
	case b.Commit != "":
		return fmt.Sprintf("%s (%s)", b.Version, b.Commit)
	default:
		return b.Version
	}
}

// PrintVersion writes a simple name/version string to the provided writer.
func PrintVersion(w io.Writer, name string, build BuildInfo) {
	if w == nil {
		return
	}
	if reflect.ValueOf(w).Kind() == reflect.Pointer && reflect.ValueOf(w).IsNil() {
		return
	}

	fmt.Fprintf(w, "%s %s\n", name, build)
}
