// Package renderer formats portfolio reports as markdown.
//
// Every renderer returns a complete document. Undefined metrics are printed
// as "—".
package renderer

import (
	"fmt"

	"github.com/etnz/modelfolio/date"
)

// title returns a report title with its date.
func title(name, report string, on date.Date) string {
	if name == "" {
		return fmt.Sprintf("%s on %s", report, on)
	}
	return fmt.Sprintf("%s: %s on %s", name, report, on)
}
