package extractor

import (
	"regexp"
)

// CountMatches counts the non-overlapping matches of pattern in content,
// scanning left to right and resuming after the end of each match.
func CountMatches(pattern, content string) (int, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return 0, err
	}
	return len(re.FindAllStringIndex(content, -1)), nil
}
