// Package serviceability checks whether a delivery postal code is covered
// by any of the configured courier pincode lists.
package serviceability

import (
	"bufio"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/bits-and-blooms/bloom/v3"
)

// falsePositiveRate is acceptable here: a false positive only lets an order
// through to manual fulfilment, it never rejects a serviceable pincode.
const falsePositiveRate = 0.0001

// Checker holds the serviceable pincode sets loaded from courier files.
type Checker struct {
	mu      sync.RWMutex
	filters []*bloom.BloomFilter
	counts  []int
}

// fileLoadResult holds the result of loading a single file
type fileLoadResult struct {
	index int
	pins  []string
	err   error
}

// NewChecker creates an empty checker. Until LoadFromURLs succeeds every
// pincode is treated as serviceable.
func NewChecker() *Checker {
	return &Checker{}
}

// LoadFromURLs loads pincode lists from gzipped URLs concurrently.
// Returns error if any file fails to load.
func (c *Checker) LoadFromURLs(ctx context.Context, urls []string) error {
	if len(urls) == 0 {
		return fmt.Errorf("no URLs provided")
	}

	resultChan := make(chan fileLoadResult, len(urls))

	var wg sync.WaitGroup
	for i, url := range urls {
		wg.Add(1)
		go func(index int, fileURL string) {
			defer wg.Done()

			pins, err := loadFromURL(ctx, fileURL)
			resultChan <- fileLoadResult{
				index: index,
				pins:  pins,
				err:   err,
			}
		}(i, url)
	}

	go func() {
		wg.Wait()
		close(resultChan)
	}()

	// Collect results maintaining order
	results := make([]fileLoadResult, len(urls))
	for result := range resultChan {
		results[result.index] = result
	}

	for i, result := range results {
		if result.err != nil {
			return fmt.Errorf("failed to load file %d: %w", i+1, result.err)
		}
	}

	filters := make([]*bloom.BloomFilter, len(results))
	counts := make([]int, len(results))
	for i, result := range results {
		n := uint(len(result.pins))
		if n == 0 {
			n = 1
		}
		f := bloom.NewWithEstimates(n, falsePositiveRate)
		for _, pin := range result.pins {
			f.AddString(pin)
		}
		filters[i] = f
		counts[i] = len(result.pins)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.filters = filters
	c.counts = counts

	return nil
}

// loadFromURL downloads and parses a gzipped pincode file from a URL
func loadFromURL(ctx context.Context, url string) ([]string, error) {
	client := &http.Client{
		Timeout: 5 * time.Minute, // courier exports can be large
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to download file: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	gzReader, err := gzip.NewReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to create gzip reader: %w", err)
	}
	defer gzReader.Close()

	return parsePins(gzReader)
}

// parsePins reads one pincode per line, skipping blanks.
func parsePins(r io.Reader) ([]string, error) {
	var pins []string
	scanner := bufio.NewScanner(r)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			pins = append(pins, line)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading file: %w", err)
	}

	return pins, nil
}

// Loaded reports whether any pincode lists have been loaded.
func (c *Checker) Loaded() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.filters) > 0
}

// IsServiceable reports whether any courier covers the pincode. With no
// lists loaded the check is inactive and everything is serviceable.
func (c *Checker) IsServiceable(pin string) bool {
	pin = strings.TrimSpace(pin)
	if pin == "" {
		return false
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	if len(c.filters) == 0 {
		return true
	}

	for _, f := range c.filters {
		if f.TestString(pin) {
			return true
		}
	}

	return false
}

// Stats returns statistics about loaded pincode lists.
func (c *Checker) Stats() map[string]interface{} {
	c.mu.RLock()
	defer c.mu.RUnlock()

	stats := make(map[string]interface{})
	stats["total_files"] = len(c.filters)

	fileSizes := make([]int, len(c.counts))
	totalPins := 0
	for i, n := range c.counts {
		fileSizes[i] = n
		totalPins += n
	}

	stats["file_sizes"] = fileSizes
	stats["total_pins"] = totalPins

	return stats
}
