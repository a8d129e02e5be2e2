// Package lyrics fetches and parses timed lyric files in the LRC line
// format `[mm:ss.xx]text`.
package lyrics

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/vinhngba2704/Tunify-SongPlayerWebApp/model"
)

// fetchTimeout bounds the lyric file download.
const fetchTimeout = 30 * time.Second

// ErrFetchFailed means the lyric file could not be downloaded.
var ErrFetchFailed = errors.New("lyric fetch failed")

// linePattern matches a timed lyric line. The fractional part is
// centiseconds (two digits) or milliseconds (three digits).
var linePattern = regexp.MustCompile(`^\[(\d{1,2}):(\d{2})\.(\d{2,3})\](.*)$`)

var fetchClient = &http.Client{Timeout: fetchTimeout}

// Parse converts LRC text into an ordered sequence of timed lines.
// Lines that do not match the timed format are skipped, not errors;
// original line order is preserved.
func Parse(content string) []model.LyricLine {
	lines := make([]model.LyricLine, 0)
	for _, raw := range strings.Split(content, "\n") {
		raw = strings.TrimRight(raw, "\r")
		m := linePattern.FindStringSubmatch(raw)
		if m == nil {
			continue
		}

		minutes, _ := strconv.ParseInt(m[1], 10, 64)
		seconds, _ := strconv.ParseInt(m[2], 10, 64)
		frac, _ := strconv.ParseInt(m[3], 10, 64)
		if len(m[3]) == 2 {
			frac *= 10 // centiseconds to milliseconds
		}

		lines = append(lines, model.LyricLine{
			TimestampMs: minutes*60_000 + seconds*1_000 + frac,
			Text:        strings.TrimSpace(m[4]),
		})
	}
	return lines
}

// FetchText downloads the lyric file body from a signed URL.
func FetchText(ctx context.Context, rawURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}

	resp, err := fetchClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: status %d", ErrFetchFailed, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}
	return string(body), nil
}
