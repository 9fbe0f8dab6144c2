package config

import (
	"errors"
	"fmt"
	"strings"
)

// StatusType selects how a candidate list is published.
type StatusType string

const (
	StatusLink      StatusType = "link"
	StatusSingleMsg StatusType = "single_msg"
	StatusReply     StatusType = "reply"
	StatusAt        StatusType = "at"
	StatusRetweet   StatusType = "rt"

	DefaultStatusType = StatusLink
)

// ErrInvalidStatusType is returned for status types outside the known set.
var ErrInvalidStatusType = errors.New("invalid status type")

// Tweet is the publish configuration: what kind of status to send and
// what to attach.
type Tweet struct {
	StatusType StatusType `yaml:"status_type"`
	Status     string     `yaml:"status"`
	Image      string     `yaml:"image"`
}

// ParseStatusType maps a configured string onto a StatusType.
func ParseStatusType(s string) (StatusType, error) {
	st := StatusType(strings.TrimSpace(s))
	if !st.Valid() {
		return "", fmt.Errorf("%w %q (want link, single_msg, reply, at, or rt)", ErrInvalidStatusType, s)
	}
	return st, nil
}

// Valid reports whether st is one of the known status types.
func (st StatusType) Valid() bool {
	switch st {
	case StatusLink, StatusSingleMsg, StatusReply, StatusAt, StatusRetweet:
		return true
	}
	return false
}

// UsesStatusText reports whether the configured status text is part of
// the composed message.
func (st StatusType) UsesStatusText() bool {
	return st == StatusSingleMsg || st == StatusReply || st == StatusAt
}

func validateTweet(t *Tweet) error {
	st, err := ParseStatusType(string(t.StatusType))
	if err != nil {
		return fmt.Errorf("tweet.status_type: %w", err)
	}
	t.StatusType = st

	if st == StatusSingleMsg && strings.TrimSpace(t.Status) == "" {
		return errors.New("tweet.status: single_msg requires a status text")
	}
	return nil
}
