package repo

import "context"

// Stats — сводка для админского дашборда
type Stats struct {
	ByStatus      map[string]int `json:"by_status"`
	ByPriority    map[string]int `json:"by_priority"`
	TotalTasks    int            `json:"total_tasks"`
	OverdueTasks  int            `json:"overdue_tasks"`
	TotalComments int            `json:"total_comments"`
}

func (r *TaskRepo) GetStats(ctx context.Context) (Stats, error) {
	stats := Stats{
		ByStatus:   make(map[string]int),
		ByPriority: make(map[string]int),
	}

	rows, err := r.pool.Query(ctx, `
		SELECT status, priority, COUNT(*) FROM tasks GROUP BY status, priority
	`)
	if err != nil {
		return stats, err
	}
	defer rows.Close()

	for rows.Next() {
		var status, priority string
		var count int
		if err := rows.Scan(&status, &priority, &count); err != nil {
			return stats, err
		}
		stats.ByStatus[status] += count
		stats.ByPriority[priority] += count
		stats.TotalTasks += count
	}
	if err := rows.Err(); err != nil {
		return stats, err
	}

	if err := r.pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM tasks
		WHERE due_date < CURRENT_DATE AND status NOT IN ('completed', 'cancelled')
	`).Scan(&stats.OverdueTasks); err != nil {
		return stats, err
	}

	err = r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM task_comments").Scan(&stats.TotalComments)
	return stats, err
}
