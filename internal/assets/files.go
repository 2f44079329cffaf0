package assets

import "strings"

// FileList is an ordered list of asset names. It replaces the
// "single string or list, comma separated" argument convention.
type FileList []string

// Files builds a FileList from explicit names, dropping blank entries.
func Files(names ...string) FileList {
	out := make(FileList, 0, len(names))
	for _, name := range names {
		if name = strings.TrimSpace(name); name != "" {
			out = append(out, name)
		}
	}
	return out
}

// ParseFiles splits a comma separated list. ParseFiles("a.css, b.css") is
// equivalent to Files("a.css", "b.css").
func ParseFiles(csv string) FileList {
	return Files(strings.Split(csv, ",")...)
}
