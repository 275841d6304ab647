package main

import (
	"fmt"
	"io"

	"github.com/mattn/go-runewidth"

	"github.com/devtalk/devtalk"
)

const (
	idWidth     = 12
	statusWidth = 8
	titleWidth  = 50
)

// writeSessions prints sessions as an aligned table. Columns are measured in
// terminal cells so wide titles line up.
func writeSessions(w io.Writer, sessions []devtalk.Session) error {
	if len(sessions) == 0 {
		_, err := fmt.Fprintln(w, "No sessions.")
		return err
	}
	if _, err := fmt.Fprintf(w, "%s  %s  %-16s  %s\n",
		runewidth.FillRight("ID", idWidth),
		runewidth.FillRight("STATUS", statusWidth),
		"UPDATED", "TITLE"); err != nil {
		return err
	}
	for _, s := range sessions {
		updated := "-"
		if !s.LastUpdatedAt.IsZero() {
			updated = s.LastUpdatedAt.Local().Format("2006-01-02 15:04")
		}
		title := s.Title
		if title == "" {
			title = "Untitled"
		}
		if _, err := fmt.Fprintf(w, "%s  %s  %-16s  %s\n",
			runewidth.FillRight(runewidth.Truncate(s.ID, idWidth, "…"), idWidth),
			runewidth.FillRight(string(s.Status), statusWidth),
			updated,
			runewidth.Truncate(title, titleWidth, "…")); err != nil {
			return err
		}
	}
	return nil
}
