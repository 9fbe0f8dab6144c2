package privacy

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// Hook is a logrus hook that masks secrets in messages and string or
// error fields before the entry is formatted.
type Hook struct {
	secrets *Secrets
}

// NewHook creates a hook masking values.
func NewHook(values ...string) *Hook {
	return &Hook{secrets: NewSecrets(values...)}
}

func (h *Hook) Levels() []logrus.Level {
	return logrus.AllLevels
}

func (h *Hook) Fire(entry *logrus.Entry) error {
	entry.Message = h.secrets.Apply(entry.Message)

	if len(entry.Data) == 0 {
		return nil
	}
	// Data may be shared with the parent entry; replace rather than mutate.
	data := make(logrus.Fields, len(entry.Data))
	for k, v := range entry.Data {
		switch val := v.(type) {
		case string:
			data[k] = h.secrets.Apply(val)
		case error:
			data[k] = h.secrets.Apply(val.Error())
		case fmt.Stringer:
			data[k] = h.secrets.Apply(val.String())
		default:
			data[k] = v
		}
	}
	entry.Data = data
	return nil
}
