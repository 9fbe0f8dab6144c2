package bot

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/ppiankov/postpan/internal/config"
	"github.com/ppiankov/postpan/internal/twitter"
)

// Publisher performs the outbound calls. *twitter.Client implements it.
type Publisher interface {
	UpdateStatus(ctx context.Context, u twitter.StatusUpdate) (twitter.Tweet, error)
	Retweet(ctx context.Context, id string) error
	UploadMedia(ctx context.Context, path string) (string, error)
}

// Report summarizes one dispatch.
type Report struct {
	StatusType config.StatusType
	Planned    int
	Posted     int
	Failed     int
	Skipped    int
}

// Dispatcher publishes a candidate list through a Publisher.
type Dispatcher struct {
	pub Publisher
	log logrus.FieldLogger
}

// NewDispatcher creates a dispatcher for pub.
func NewDispatcher(pub Publisher, log logrus.FieldLogger) *Dispatcher {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Dispatcher{pub: pub, log: log}
}

// Send plans and executes the actions for tweet against list. Planning
// errors and a failed image upload abort before any status is posted.
// The image is uploaded once and its media ID reused for every post.
// A failed post is logged and the remaining posts still go out; the
// returned error then wraps ErrUpstream.
func (d *Dispatcher) Send(ctx context.Context, tweet config.Tweet, list List) (Report, error) {
	log := d.log.WithFields(logrus.Fields{
		"status_type": tweet.StatusType,
		"source":      list.Source,
	})

	plan, err := NewPlan(tweet, list)
	if err != nil {
		log.WithError(err).Error("dispatch aborted before posting")
		return Report{StatusType: tweet.StatusType}, err
	}

	report := Report{
		StatusType: plan.StatusType,
		Planned:    len(plan.Actions),
		Skipped:    len(plan.Skipped),
	}
	for _, s := range plan.Skipped {
		log.WithFields(logrus.Fields{"item": s.Index, "missing": s.Missing.String()}).
			Warn("candidate skipped: required field is empty")
	}
	if len(plan.Actions) == 0 {
		log.Info("nothing to post")
		return report, nil
	}

	var mediaID string
	if tweet.Image != "" && plan.StatusType != config.StatusRetweet {
		mediaID, err = d.pub.UploadMedia(ctx, tweet.Image)
		if err != nil {
			log.WithError(err).WithField("image", tweet.Image).Error("image upload failed, nothing was posted")
			return report, fmt.Errorf("%w: upload image: %w", ErrUpstream, err)
		}
	}

	for i, a := range plan.Actions {
		if err := d.execute(ctx, a, mediaID); err != nil {
			report.Failed++
			log.WithError(err).WithField("item", i).Warn("publish failed")
			continue
		}
		report.Posted++
	}

	log.WithFields(logrus.Fields{
		"posted": report.Posted,
		"failed": report.Failed,
	}).Info("dispatch finished")

	if report.Failed > 0 {
		return report, fmt.Errorf("%w: %d of %d posts failed", ErrUpstream, report.Failed, report.Planned)
	}
	return report, nil
}

// execute publishes one action. mediaID is attached to every status when set.
func (d *Dispatcher) execute(ctx context.Context, a Action, mediaID string) error {
	if r, ok := a.(Repost); ok {
		return d.pub.Retweet(ctx, r.ID)
	}

	u := twitter.StatusUpdate{Text: Message(a)}
	if r, ok := a.(ReplyPost); ok {
		u.InReplyToID = r.TargetID
	}
	if mediaID != "" {
		u.MediaIDs = []string{mediaID}
	}

	_, err := d.pub.UpdateStatus(ctx, u)
	return err
}
