package blobstore

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// windowsDeviceNames cannot be used as file names on Windows regardless of extension.
var windowsDeviceNames = map[string]bool{
	"CON": true, "PRN": true, "AUX": true, "NUL": true,
	"COM1": true, "COM2": true, "COM3": true, "COM4": true, "COM5": true,
	"COM6": true, "COM7": true, "COM8": true, "COM9": true,
	"LPT1": true, "LPT2": true, "LPT3": true,
}

// SecureFilename reduces a client supplied file name to a safe ASCII basename.
//
// The name is NFKD-normalized and stripped to ASCII, path separators become
// word breaks, whitespace runs are joined with underscores, everything other
// than letters, digits, '_', '.', and '-' is dropped, and leading or trailing
// dots and underscores are trimmed. The result may be empty, meaning nothing
// usable was left.
//
//	SecureFilename("My cool movie.mov")     == "My_cool_movie.mov"
//	SecureFilename("../../../etc/passwd")   == "etc_passwd"
//	SecureFilename("i contain cool ümläuts.txt") == "i_contain_cool_umlauts.txt"
func SecureFilename(name string) string {
	name = norm.NFKD.String(name)

	var ascii strings.Builder
	for _, r := range name {
		if r < 0x80 {
			ascii.WriteRune(r)
		}
	}
	name = strings.NewReplacer("/", " ", `\`, " ").Replace(ascii.String())
	name = strings.Join(strings.Fields(name), "_")

	var kept strings.Builder
	for _, r := range name {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') ||
			r == '_' || r == '.' || r == '-' {
			kept.WriteRune(r)
		}
	}
	name = strings.Trim(kept.String(), "._")

	if name != "" && windowsDeviceNames[strings.ToUpper(strings.SplitN(name, ".", 2)[0])] {
		name = "_" + name
	}
	return name
}

// validName reports whether name is usable as a flat blob key.
func validName(name string) bool {
	return name != "" && name != "." && name != ".." && !strings.ContainsAny(name, `/\`+"\x00")
}
