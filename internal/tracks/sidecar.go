package tracks

import "kodisubs/internal/fileutil"

// SidecarPaths returns the two candidate names for an external subtitle next
// to path: the full name with ".srt" appended (movie.mkv.srt) and the name
// with its final three bytes swapped for "srt" (movie.srt). Paths shorter
// than a three-letter extension only yield the appended form.
func SidecarPaths(path string) []string {
	candidates := []string{path + ".srt"}
	if len(path) > 3 {
		candidates = append(candidates, path[:len(path)-3]+"srt")
	}
	return candidates
}

// DetectSidecar reports whether a sidecar subtitle exists for path.
func DetectSidecar(path string) bool {
	for _, candidate := range SidecarPaths(path) {
		if fileutil.IsRegular(candidate) {
			return true
		}
	}
	return false
}
