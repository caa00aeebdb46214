package extractor

import (
	"bufio"
	"io"
	"strings"
)

// ContentLoader turns a file's bytes into the single string a worker searches
type ContentLoader interface {
	Load(reader io.Reader) (string, error)
}

// TextLoader reads plain text line by line and joins the lines with no
// separator. Only '\n' is dropped; a trailing '\r' stays part of the line.
type TextLoader struct{}

func (l *TextLoader) Load(reader io.Reader) (string, error) {
	var sb strings.Builder
	br := bufio.NewReaderSize(reader, 64*1024)

	for {
		line, err := br.ReadString('\n')
		sb.WriteString(strings.TrimSuffix(line, "\n"))
		if err != nil {
			if err == io.EOF {
				break
			}
			return "", err
		}
	}

	return sb.String(), nil
}

// stripLineBreaks is shared by the structured loaders so their text has the
// same shape as TextLoader output.
func stripLineBreaks(s string) string {
	return strings.ReplaceAll(s, "\n", "")
}
