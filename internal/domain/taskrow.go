package domain

// TaskRow is one task/subtask line of a week sheet with a day record for
// every weekday. Task and subtask never change after creation.
type TaskRow struct {
	Task    string
	Subtask string
	Days    [DaysPerWeek]DayRecord
}

// NewTaskRow returns a row with seven empty day records.
func NewTaskRow(task, subtask string) TaskRow {
	return TaskRow{Task: task, Subtask: subtask}
}

func (r TaskRow) clone() TaskRow {
	out := TaskRow{Task: r.Task, Subtask: r.Subtask}
	for i := range r.Days {
		out.Days[i] = r.Days[i].clone()
	}
	return out
}

// Label renders "task / subtask", or just the task when there is no subtask.
func (r TaskRow) Label() string {
	if r.Subtask == "" {
		return r.Task
	}
	return r.Task + " / " + r.Subtask
}
