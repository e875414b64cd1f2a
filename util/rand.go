package util

import (
	"crypto/rand"
	"math/big"
	"strconv"
)

func GenFilename(prefix string, ext string) string {
	return prefix + strconv.Itoa(RandInt(100000)) + "." + ext
}

func RandInt(max int) int {
	if max <= 0 {
		return 0
	}
	integer, err := rand.Int(rand.Reader, big.NewInt(int64(max)))
	if err != nil {
		return 0
	}
	return int(integer.Int64())
}
