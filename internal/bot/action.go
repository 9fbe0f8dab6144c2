package bot

import (
	"github.com/ppiankov/postpan/internal/config"
)

// MaxMessageLen is the hard limit applied to every composed message.
const MaxMessageLen = 140

// Action is one publish call. The concrete types below are the only
// implementations; each carries exactly the fields its mode needs.
type Action interface {
	Kind() config.StatusType
	action()
}

// LinkPost shares an article: "{url} {title}".
type LinkPost struct {
	Title string
	URL   string
}

// SingleMessage posts the configured status text once.
type SingleMessage struct {
	Text string
}

// ReplyPost answers TargetID, mentioning its author.
type ReplyPost struct {
	User     string
	TargetID string
	Text     string
}

// MentionPost mentions User in a new status. It is not threaded as a reply.
type MentionPost struct {
	User string
	Text string
}

// Repost retweets ID verbatim.
type Repost struct {
	ID string
}

func (LinkPost) Kind() config.StatusType      { return config.StatusLink }
func (SingleMessage) Kind() config.StatusType { return config.StatusSingleMsg }
func (ReplyPost) Kind() config.StatusType     { return config.StatusReply }
func (MentionPost) Kind() config.StatusType   { return config.StatusAt }
func (Repost) Kind() config.StatusType        { return config.StatusRetweet }

func (LinkPost) action()      {}
func (SingleMessage) action() {}
func (ReplyPost) action()     {}
func (MentionPost) action()   {}
func (Repost) action()        {}

func (a LinkPost) Message() string      { return Truncate(a.URL + " " + a.Title) }
func (a SingleMessage) Message() string { return Truncate(a.Text) }
func (a ReplyPost) Message() string     { return mention(a.User, a.Text) }
func (a MentionPost) Message() string   { return mention(a.User, a.Text) }

func mention(user, text string) string {
	return Truncate(".@" + user + " " + text)
}

// Message returns the text an action would post, or "" for reposts.
func Message(a Action) string {
	if m, ok := a.(interface{ Message() string }); ok {
		return m.Message()
	}
	return ""
}

// Truncate cuts s to the first MaxMessageLen characters.
func Truncate(s string) string {
	n := 0
	for i := range s {
		if n == MaxMessageLen {
			return s[:i]
		}
		n++
	}
	return s
}
