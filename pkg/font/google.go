package font

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"regexp"
)

var fontSrcPattern = regexp.MustCompile(`url\((https://fonts\.gstatic\.com/[^)]+)\)`)

// ErrFontNotFound means the CSS2 API has no file for the family and weight.
var ErrFontNotFound = errors.New("font not found")

// downloadGoogleFont resolves the file URL through the CSS2 API, downloads it
// to path and returns the CDN URL and the byte count.
func downloadGoogleFont(ctx context.Context, client *http.Client, f Font, path string) (string, int64, error) {
	css, err := fetchStylesheet(ctx, client, StylesheetURL(f.Family, []int{f.Weight}), f.Format)
	if err != nil {
		return "", 0, err
	}
	fontURL, err := extractFontURLFromCSS(css, f.Format)
	if err != nil {
		return "", 0, err
	}
	size, err := downloadFontFile(ctx, client, fontURL, path)
	if err != nil {
		return "", 0, err
	}
	return fontURL, size, nil
}

// getUserAgentForFormat picks a user agent that makes the CSS2 API answer
// with the wanted file format.
func getUserAgentForFormat(format string) string {
	if format == "ttf" {
		// Very old agents get TrueType sources.
		return "Mozilla/3.0 (X11; U; SunOS 5.4 sun4c)"
	}
	return "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"
}

func fetchStylesheet(ctx context.Context, client *http.Client, cssURL, format string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, cssURL, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", getUserAgentForFormat(format))

	resp, err := client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusBadRequest || resp.StatusCode == http.StatusNotFound:
		return "", fmt.Errorf("%w: stylesheet request returned status: %s", ErrFontNotFound, resp.Status)
	case resp.StatusCode != http.StatusOK:
		return "", fmt.Errorf("stylesheet request returned status: %s", resp.Status)
	}

	css, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	return string(css), nil
}

// extractFontURLFromCSS returns the first gstatic source in a stylesheet.
func extractFontURLFromCSS(css, format string) (string, error) {
	matches := fontSrcPattern.FindStringSubmatch(css)
	if len(matches) < 2 {
		return "", fmt.Errorf("%w: no %s font URL in CSS", ErrFontNotFound, format)
	}
	return matches[1], nil
}

func downloadFontFile(ctx context.Context, client *http.Client, url, path string) (int64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("failed to download font: %s", resp.Status)
	}

	file, err := os.Create(path)
	if err != nil {
		return 0, err
	}
	defer file.Close()

	return io.Copy(file, resp.Body)
}

// GetFontCSS renders an @font-face rule for a cached font, preferring the CDN
// source so exported markup works outside this server.
func GetFontCSS(info FontInfo) string {
	src := info.Path
	if info.CDNURL != "" {
		src = info.CDNURL
	}
	format := info.Format
	if format == "ttf" {
		format = "truetype"
	}
	return fmt.Sprintf(`@font-face {
  font-family: '%s';
  font-style: %s;
  font-weight: %d;
  font-display: swap;
  src: url('%s') format('%s');
}`, info.Family, info.Style, info.Weight, src, format)
}
