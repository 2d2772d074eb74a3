// Package scheduler содержит отложенные задачи сессии с дедлайнами
package scheduler

import "time"

// TaskID идентифицирует отложенную задачу
type TaskID int

const (
	// SetupTask ставит начальный курсор в списке
	SetupTask TaskID = iota
	// RescanTask перечитывает каталог с музыкой
	RescanTask

	numTasks
)

func (id TaskID) String() string {
	switch id {
	case SetupTask:
		return "setup"
	case RescanTask:
		return "rescan"
	default:
		return "unknown"
	}
}

// Task описывает состояние одной задачи
type Task struct {
	Deadline time.Time     // Момент следующего срабатывания, нулевое значение: задача не взведена
	Interval time.Duration // Через сколько задача взводится снова после срабатывания
	Fired    bool          // Срабатывала ли задача с момента последнего Arm
}

// Runner отслеживает дедлайны задач. Не потокобезопасен: используется из цикла сессии.
type Runner struct {
	tasks [numTasks]Task
}

// NewRunner создает планировщик без взведенных задач
func NewRunner() *Runner {
	return &Runner{}
}

// Arm взводит задачу на указанный момент. Interval <= 0 отключает задачу после срабатывания.
func (r *Runner) Arm(id TaskID, deadline time.Time, interval time.Duration) {
	if !valid(id) {
		return
	}
	r.tasks[id] = Task{
		Deadline: deadline,
		Interval: interval,
	}
}

// Task возвращает текущее состояние задачи
func (r *Runner) Task(id TaskID) (Task, bool) {
	if !valid(id) {
		return Task{}, false
	}
	return r.tasks[id], true
}

// Poll возвращает задачи, дедлайн которых наступил, и переносит их дедлайны на now+Interval
func (r *Runner) Poll(now time.Time) []TaskID {
	var fired []TaskID
	for i := range r.tasks {
		task := &r.tasks[i]
		if task.Deadline.IsZero() || now.Before(task.Deadline) {
			continue
		}

		task.Fired = true
		if task.Interval > 0 {
			task.Deadline = now.Add(task.Interval)
		} else {
			task.Deadline = time.Time{}
		}
		fired = append(fired, TaskID(i))
	}
	return fired
}

// Next возвращает ближайший дедлайн среди взведенных задач
func (r *Runner) Next() (time.Time, bool) {
	var next time.Time
	for _, task := range r.tasks {
		if task.Deadline.IsZero() {
			continue
		}
		if next.IsZero() || task.Deadline.Before(next) {
			next = task.Deadline
		}
	}
	return next, !next.IsZero()
}

// Timeout возвращает время ожидания ввода: не больше budget и не дольше ближайшего дедлайна
func (r *Runner) Timeout(now time.Time, budget time.Duration) time.Duration {
	timeout := budget
	if next, ok := r.Next(); ok {
		if until := next.Sub(now); until < timeout {
			timeout = until
		}
	}
	if timeout < 0 {
		return 0
	}
	return timeout
}

func valid(id TaskID) bool {
	return id >= 0 && id < numTasks
}
