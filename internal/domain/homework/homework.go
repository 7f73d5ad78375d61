// internal/domain/homework/homework.go
package homework

import (
	"fmt"
	"sort"

	"github.com/samber/lo"
)

// Status is the review status code reported by the homework API.
type Status string

const (
	StatusApproved  Status = "approved"
	StatusReviewing Status = "reviewing"
	StatusRejected  Status = "rejected"
)

// Homework is a single submission taken from the "homeworks" list.
type Homework struct {
	Name   string
	Status Status
}

var verdicts = map[Status]string{
	StatusApproved:  "Работа проверена: ревьюеру всё понравилось. Ура!",
	StatusReviewing: "Работа взята на проверку ревьюером.",
	StatusRejected:  "Работа проверена: у ревьюера есть замечания.",
}

// Verdict returns the human-readable verdict for a status code.
func Verdict(s Status) (string, bool) {
	v, ok := verdicts[s]
	return v, ok
}

// Statuses returns the recognized status codes in lexical order.
func Statuses() []Status {
	keys := lo.Keys(verdicts)
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// StatusMessage renders the notification text for a status change.
func StatusMessage(name, verdict string) string {
	return fmt.Sprintf("Изменился статус проверки работы \"%s\". %s", name, verdict)
}
