package notify

import (
	"fmt"

	"github.com/BuzzLyutic/collabtask-api/internal/model"
)

func messageFor(kind, taskTitle string) string {
	switch kind {
	case model.EventTaskCreated:
		return fmt.Sprintf("A new task '%s' was created.", taskTitle)
	case model.EventCollaboratorsAdded:
		return fmt.Sprintf("You were added as a collaborator on '%s'.", taskTitle)
	case model.EventCommentAdded:
		return fmt.Sprintf("New comment on task '%s'.", taskTitle)
	case model.EventTaskCompleted:
		return fmt.Sprintf("Task '%s' was completed.", taskTitle)
	}
	return fmt.Sprintf("Update on task '%s'.", taskTitle)
}

// dedupExclude убирает дубликаты с сохранением порядка и выкидывает
// исключенных получателей. Пользователь, который одновременно соавтор
// и админ, получит ровно одно уведомление
func dedupExclude(ids []int64, exclude ...int64) []int64 {
	skip := make(map[int64]bool, len(exclude))
	for _, id := range exclude {
		skip[id] = true
	}

	out := make([]int64, 0, len(ids))
	seen := make(map[int64]bool, len(ids))
	for _, id := range ids {
		if skip[id] || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
