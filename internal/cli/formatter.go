package cli

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/idelchi/dirsizes/internal/dirsizes"
)

// SeparatorWidth is the number of dashes between the results and the errors.
const SeparatorWidth = 50

// errorSeparator returns the filler between a failed path and its message.
func errorSeparator(source dirsizes.ErrorSource) string {
	if source == dirsizes.SourceWalk {
		return " ...... "
	}

	return " ... "
}

// PrintReport outputs the scanned entries, aligned in two columns, followed by the errors.
func PrintReport(report *dirsizes.Report, writer io.Writer) error {
	sizes := make([]string, len(report.Entries))

	pathWidth, sizeWidth := 0, 0

	for i, entry := range report.Entries {
		sizes[i] = dirsizes.FormatSize(entry.Size)

		pathWidth = max(pathWidth, utf8.RuneCountInString(entry.Path))
		sizeWidth = max(sizeWidth, len(sizes[i]))
	}

	var out strings.Builder

	for i, entry := range report.Entries {
		fmt.Fprintf(&out, "%-*s ... %*s\n", pathWidth, entry.Path, sizeWidth, sizes[i])
	}

	fmt.Fprintf(&out, "\n%s\n", strings.Repeat("-", SeparatorWidth))

	for _, record := range report.Errors {
		fmt.Fprintf(&out, "%s%sFAILED: %s\n", record.Path, errorSeparator(record.Source), record.Message)
	}

	out.WriteString("\nDone.\n")

	_, err := io.WriteString(writer, out.String())

	return err
}
