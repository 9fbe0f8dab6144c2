package bot

import (
	"fmt"
	"strings"

	"github.com/ppiankov/postpan/internal/config"
	"github.com/ppiankov/postpan/internal/source"
)

// Plan is the validated set of actions for one dispatch.
type Plan struct {
	StatusType config.StatusType
	Actions    []Action
	Skipped    []Skip
}

// Skip records a candidate left out because a required value was empty.
type Skip struct {
	Index   int
	Missing source.Fields
}

// Required returns the list fields a status type reads.
func Required(st config.StatusType) source.Fields {
	switch st {
	case config.StatusLink:
		return source.FieldTitle | source.FieldURL
	case config.StatusReply:
		return source.FieldUser | source.FieldID
	case config.StatusAt:
		return source.FieldUser
	case config.StatusRetweet:
		return source.FieldID
	}
	return 0
}

// NewPlan maps the tweet configuration onto typed actions for list.
// It checks the whole list before anything is posted: an unknown status
// type or a list schema lacking required fields yields no actions.
func NewPlan(tweet config.Tweet, list List) (Plan, error) {
	st := tweet.StatusType
	if !st.Valid() {
		return Plan{}, fmt.Errorf("%w: unknown status type %q (want link, single_msg, reply, at, or rt)", ErrInvalidConfig, st)
	}

	plan := Plan{StatusType: st}

	if st == config.StatusSingleMsg {
		if strings.TrimSpace(tweet.Status) == "" {
			return Plan{}, fmt.Errorf("%w: single_msg needs a status text", ErrInvalidConfig)
		}
		plan.Actions = []Action{SingleMessage{Text: tweet.Status}}
		return plan, nil
	}

	need := Required(st)
	if missing := list.Fields.Missing(need); missing != 0 {
		return Plan{}, &SchemaError{
			StatusType: st,
			Source:     list.Source,
			Have:       list.Fields,
			Missing:    missing,
			Suggest:    source.ForFields(need),
		}
	}

	for i, it := range list.Items {
		if missing := emptyFields(it, need); missing != 0 {
			plan.Skipped = append(plan.Skipped, Skip{Index: i, Missing: missing})
			continue
		}
		plan.Actions = append(plan.Actions, actionFor(st, it, tweet.Status))
	}
	return plan, nil
}

func actionFor(st config.StatusType, it source.Item, status string) Action {
	switch st {
	case config.StatusLink:
		return LinkPost{Title: it.Title, URL: it.URL}
	case config.StatusReply:
		return ReplyPost{User: it.User, TargetID: it.ID, Text: status}
	case config.StatusAt:
		return MentionPost{User: it.User, Text: status}
	default:
		return Repost{ID: it.ID}
	}
}

func emptyFields(it source.Item, need source.Fields) source.Fields {
	var missing source.Fields
	check := func(f source.Fields, v string) {
		if need.Has(f) && strings.TrimSpace(v) == "" {
			missing |= f
		}
	}
	check(source.FieldTitle, it.Title)
	check(source.FieldURL, it.URL)
	check(source.FieldID, it.ID)
	check(source.FieldUser, it.User)
	return missing
}
