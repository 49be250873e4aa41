package usage

import (
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"
)

// WriteReport prints the summary followed by one line per entry.
func (t *Tracker) WriteReport(w io.Writer) error {
	s := t.Summary()
	if _, err := fmt.Fprintf(w,
		"Total Characters: %s\nTotal Requests: %s\nAvg. Characters/Request: %.2f\n\n",
		humanize.Comma(int64(s.TotalCharacters)),
		humanize.Comma(int64(s.TotalRequests)),
		s.AverageCharactersPerRequest,
	); err != nil {
		return err
	}

	for _, e := range t.Entries() {
		when := e.Timestamp
		if ts, err := time.ParseInLocation(TimeLayout, e.Timestamp, time.Local); err == nil {
			when = fmt.Sprintf("%s (%s)", e.Timestamp, humanize.RelTime(ts, t.now(), "ago", "from now"))
		}
		engine := e.Engine
		if engine == "" {
			engine = "-"
		}
		if _, err := fmt.Fprintf(w, "%s - %s chars, Voice: %s, Engine: %s\n",
			when, humanize.Comma(int64(e.Characters)), e.VoiceID, engine); err != nil {
			return err
		}
	}
	return nil
}
