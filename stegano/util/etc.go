package util

import (
	"golang.org/x/text/unicode/norm"
)

func FixUnicode(in string) string {
	return norm.NFC.String(in)
}

func lowerASCII(b byte) byte {
	if b >= 'A' && b <= 'Z' {
		return b + ('a' - 'A')
	}
	return b
}

// IndexFold returns the index of the first occurrence of sub in s, folding
// ASCII letters only, or -1. Bytes above 0x7f are compared as-is so indices
// stay valid for s.
func IndexFold(s, sub []byte) int {
	n := len(sub)
	if n == 0 {
		return 0
	}
	for i := 0; i+n <= len(s); i++ {
		j := 0
		for ; j < n; j++ {
			if lowerASCII(s[i+j]) != lowerASCII(sub[j]) {
				break
			}
		}
		if j == n {
			return i
		}
	}
	return -1
}

func ContainsFold(s, sub []byte) bool {
	return IndexFold(s, sub) >= 0
}

// HasSuffixFold is the ASCII case-insensitive version of bytes.HasSuffix.
func HasSuffixFold(s, suffix []byte) bool {
	if len(suffix) > len(s) {
		return false
	}
	tail := s[len(s)-len(suffix):]
	for i := range suffix {
		if lowerASCII(tail[i]) != lowerASCII(suffix[i]) {
			return false
		}
	}
	return true
}
