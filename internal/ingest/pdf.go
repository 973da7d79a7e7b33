package ingest

import (
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// ReadPDFPages extracts the text of each page of a PDF.
// It shells out to pdftotext (from poppler-utils). A page that fails to
// extract yields an empty string so one bad page does not sink the
// document.
func ReadPDFPages(path string) ([]string, error) {
	if _, err := exec.LookPath("pdftotext"); err != nil {
		return nil, fmt.Errorf("pdftotext not found: install poppler-utils (brew install poppler on macOS)")
	}

	count, err := pageCount(path)
	if err != nil {
		return nil, err
	}

	pages := make([]string, count)
	for i := 0; i < count; i++ {
		text, err := extractPage(path, i+1)
		if err != nil {
			text = ""
		}
		pages[i] = strings.TrimSpace(text)
	}

	return pages, nil
}

// pageCount returns the number of pages in a PDF via pdfinfo.
func pageCount(path string) (int, error) {
	cmd := exec.Command("pdfinfo", path)
	output, err := cmd.Output()
	if err != nil {
		// Works without pdfinfo, just slower.
		return pageCountFallback(path)
	}

	// Parse "Pages: N" from output
	for _, line := range strings.Split(string(output), "\n") {
		if strings.HasPrefix(line, "Pages:") {
			parts := strings.Fields(line)
			if len(parts) >= 2 {
				count, err := strconv.Atoi(parts[1])
				if err != nil {
					continue
				}
				return count, nil
			}
		}
	}

	return 0, fmt.Errorf("could not determine page count from pdfinfo")
}

// pageCountFallback binary-searches for the last extractable page.
func pageCountFallback(path string) (int, error) {
	low, high := 1, 10000

	for low < high {
		mid := (low + high + 1) / 2

		cmd := exec.Command("pdftotext", "-f", strconv.Itoa(mid), "-l", strconv.Itoa(mid), path, "-")
		if err := cmd.Run(); err != nil {
			high = mid - 1
		} else {
			low = mid
		}
	}

	if low == 0 {
		return 0, fmt.Errorf("could not determine page count")
	}

	return low, nil
}

// extractPage extracts text from a single page of a PDF.
func extractPage(path string, pageNum int) (string, error) {
	cmd := exec.Command("pdftotext", "-f", strconv.Itoa(pageNum), "-l", strconv.Itoa(pageNum), "-layout", path, "-")
	output, err := cmd.Output()
	if err != nil {
		return "", err
	}

	return string(output), nil
}
