// Package activity формирует человекочитаемые описания изменений задачи.
// Вместо отслеживания "грязных" полей ORM — явный дифф двух снимков задачи,
// по одной записи на каждое интересующее нас измененное поле.
package activity

import (
	"fmt"

	"github.com/BuzzLyutic/collabtask-api/internal/model"
)

func Created() string {
	return "created this task."
}

func Deleted(title string) string {
	return fmt.Sprintf("deleted task: %s", title)
}

func CommentAdded() string {
	return "added a comment."
}

func AttachmentAdded(name string) string {
	return fmt.Sprintf("added attachment: '%s'", name)
}

func AttachmentRemoved(name string) string {
	return fmt.Sprintf("removed attachment: '%s'", name)
}

// DiffTask сравнивает снимки до и после обновления и возвращает описания
// в фиксированном порядке: статус, заголовок, описание.
// Значение description в журнал не попадает
func DiffTask(before, after model.Task) []string {
	var out []string
	if before.Status != after.Status {
		out = append(out, fmt.Sprintf("changed status from '%s' to '%s'", before.Status, after.Status))
	}
	if before.Title != after.Title {
		out = append(out, fmt.Sprintf("updated title to '%s'", after.Title))
	}
	if before.Description != after.Description {
		out = append(out, "updated description")
	}
	return out
}
