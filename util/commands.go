package util

import (
	"encoding/base64"
	"fmt"
	"io"
	"os"
	"strconv"
	"unicode/utf8"

	"pixsteg/cryptography"
)

const (
	ShredCount = 10
)

// ReadLog prints the log to w, decrypting it when key is given.
func ReadLog(log string, key []byte, w io.Writer) error {
	data, err := os.ReadFile(log)
	if err != nil {
		return fmt.Errorf("failed to read file: %s", err.Error())
	}
	if key != nil {
		logs, err := cryptography.Decrypt(data, key)
		if err == nil {
			_, err = fmt.Fprintln(w, string(logs))
			return err
		}
	}
	// logs are unencrypted?
	// checking for plaintext
	if !utf8.Valid(data) {
		return fmt.Errorf("failed to decrypt logs: invalid password")
	}
	for _, r := range string(data) {
		if r != '\n' && r != '\t' && !strconv.IsPrint(r) {
			return fmt.Errorf("failed to decrypt logs: invalid password")
		}
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

func GenSalt() (string, error) {
	saltBytes, err := cryptography.GenRandom(cryptography.SaltSize)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(saltBytes), nil
}

// overwrite the file with random bytes a few times, then remove it
func ShredFile(filename string) error {
	info, err := os.Stat(filename)
	if err != nil {
		return err
	}
	var finalError error
	if info.Size() > 0 {
		for i := 0; i < ShredCount; i++ {
			content, err := cryptography.GenRandom(uint(info.Size()))
			if err == nil {
				err = os.WriteFile(filename, content, 0600)
			}
			if err != nil {
				finalError = err
			}
		}
	}
	if err = os.Remove(filename); err != nil {
		finalError = err
	}
	return finalError
}
