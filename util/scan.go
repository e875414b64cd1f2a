package util

import (
	"os"
	"runtime"
	"sync"
)

type ScanResult struct {
	Filename   string
	HasData    bool
	Duplicates []string // other files with the very same content
	Err        error
}

/*
 * ScanFiles runs check over every file with a bounded amount of workers.
 * Images are independent of each other, so the order of processing does not
 * matter, results keep the order of files.
 */
func ScanFiles(files []string, workers int, check func(data []byte) bool) []ScanResult {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	results := make([]ScanResult, len(files))
	hashes := make([]string, len(files))
	storage := NewStorage()

	jobs := make(chan int)
	wg := sync.WaitGroup{}
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i].Filename = files[i]
				data, err := os.ReadFile(files[i])
				if err != nil {
					results[i].Err = err
					continue
				}
				hashes[i] = storage.Add(files[i], data)
				results[i].HasData = check(data)
				DebugPrintf("scan: %s has data: %v", files[i], results[i].HasData)
			}
		}()
	}
	for i := range files {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	for i := range results {
		if hashes[i] == "" {
			continue
		}
		for _, name := range storage.FindHash(hashes[i]) {
			if name != files[i] {
				results[i].Duplicates = append(results[i].Duplicates, name)
			}
		}
	}
	return results
}
