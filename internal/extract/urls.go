package extract

import (
	"errors"
	"fmt"
	"strings"

	"mvdan.cc/xurls/v2"
)

// FindArticleURL pulls the first https URL out of free text, so the tool
// accepts both a bare URL and a pasted sentence containing one.
func FindArticleURL(text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", errors.New("input is empty")
	}

	httpsURLRe, err := xurls.StrictMatchingScheme("https://")
	if err != nil {
		return "", fmt.Errorf("create regexp: %w", err)
	}

	match := httpsURLRe.FindString(text)
	if match == "" {
		return "", fmt.Errorf("no https URL found in input %q", text)
	}

	return strings.TrimSpace(match), nil
}
