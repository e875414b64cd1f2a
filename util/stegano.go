package util

import (
	"os"
	"path/filepath"
	"strings"
)

var SupportedExtensions = []string{"png", "bmp", "gif", "jpg", "jpeg"}

func PickFileAtRandom(files []string) string {
	return files[RandInt(len(files))]
}

func ReadFiles(folder string, supportedExtensions []string) ([]string, error) {
	allFiles, err := os.ReadDir(folder)
	if err != nil {
		return nil, err
	}
	result := []string{}
	for _, f := range allFiles {
		if f.IsDir() {
			continue
		}
		name := strings.ToLower(f.Name())
		for _, ext := range supportedExtensions {
			if strings.HasSuffix(name, "."+ext) {
				result = append(result, filepath.Join(folder, f.Name()))
				break
			}
		}
	}
	return result, nil
}

// OutputFilename derives a fresh file name next to input with extension ext.
func OutputFilename(input string, ext string) string {
	dir := filepath.Dir(input)
	base := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	return filepath.Join(dir, GenFilename(base+"-", ext))
}
