// Package rules implements the reject rule set.
//
// Reject rules protect paths from ever being recorded in a manifest or
// touched by removal. The rule file (etc/pkgtools/reject.conf below the
// install root) holds one POSIX extended regular expression per line.
// Blank lines and lines starting with '#' are ignored.
//
// A path is rejected when any rule matches anywhere in it, after a leading
// "./" is removed:
//
//	# keep local configuration
//	^etc/(passwd|shadow|group)$
//	^var/log/
//
// A missing rule file yields an empty set which rejects nothing.
package rules
