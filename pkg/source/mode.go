package source

import "os"

// Mode is how the watched path is turned into update messages.
type Mode int

const (
	// ModePlainFile parses the path once as a single JSON document.
	ModePlainFile Mode = iota
	// ModeExecutable runs the path as a subprocess emitting one JSON
	// document per stdout line.
	ModeExecutable
)

// String returns the mode name.
func (m Mode) String() string {
	if m == ModeExecutable {
		return "executable"
	}
	return "plain-file"
}

// SelectMode inspects the executable permission bits of path at the moment
// of the call. It is re-evaluated on every reload, so a chmod between
// reloads changes the selected mode.
//
// A stat failure selects ModePlainFile: the generation then falls through
// to static-load semantics, which report the underlying error themselves.
func SelectMode(path string) Mode {
	info, err := os.Stat(path)
	if err != nil {
		return ModePlainFile
	}
	if info.Mode().Perm()&0o111 != 0 {
		return ModeExecutable
	}
	return ModePlainFile
}
