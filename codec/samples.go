package codec

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ParseSamples reads one decimal sample per line. Blank lines and lines
// starting with '#' are skipped.
func ParseSamples(r io.Reader) ([]int32, error) {
	var samples []int32

	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}

		v, err := strconv.ParseInt(text, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		samples = append(samples, int32(v))
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return samples, nil
}

// WriteSamples writes one decimal sample per line.
func WriteSamples(w io.Writer, samples []int32) error {
	bw := bufio.NewWriter(w)
	for _, s := range samples {
		if _, err := bw.WriteString(strconv.FormatInt(int64(s), 10)); err != nil {
			return err
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}
