package bot

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/ppiankov/postpan/internal/twitter"
)

// DryRunPublisher prints each call instead of sending it.
type DryRunPublisher struct {
	w    io.Writer
	next int
}

// NewDryRun creates a publisher that writes to w.
func NewDryRun(w io.Writer) *DryRunPublisher {
	return &DryRunPublisher{w: w}
}

func (p *DryRunPublisher) UpdateStatus(_ context.Context, u twitter.StatusUpdate) (twitter.Tweet, error) {
	p.next++
	line := fmt.Sprintf("[dry-run] status (%d chars): %s", len([]rune(u.Text)), u.Text)
	if u.InReplyToID != "" {
		line += fmt.Sprintf(" (reply to %s)", u.InReplyToID)
	}
	if len(u.MediaIDs) > 0 {
		line += " (with image)"
	}
	fmt.Fprintln(p.w, line)
	return twitter.Tweet{ID: "dry-run-" + strconv.Itoa(p.next), Text: u.Text}, nil
}

func (p *DryRunPublisher) Retweet(_ context.Context, id string) error {
	fmt.Fprintf(p.w, "[dry-run] retweet %s\n", id)
	return nil
}

// UploadMedia only checks that the image is readable.
func (p *DryRunPublisher) UploadMedia(_ context.Context, path string) (string, error) {
	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("image: %w", err)
	}
	return "dry-run-media", nil
}
