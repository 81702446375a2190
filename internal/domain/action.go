package domain

// Action is the kind of change a list member made.
type Action string

const (
	ActionAddTask             Action = "ADD_TASK"
	ActionEditTask            Action = "EDIT_TASK"
	ActionRemoveTask          Action = "REMOVE_TASK"
	ActionCompleteTask        Action = "COMPLETE_TASK"
	ActionStarTask            Action = "STAR_TASK"
	ActionReorderTask         Action = "REORDER_TASK"
	ActionMoveTask            Action = "MOVE_TASK"
	ActionPredictTaskCategory Action = "PREDICT_TASK_CATEGORY"
	ActionClearCompletedTasks Action = "CLEAR_COMPLETED_TASKS"
	ActionJoinList            Action = "JOIN_LIST"
)

// NoTaskID is sent in place of a task id for list-scoped actions.
const NoTaskID = "NIL"

var actionVerbs = map[Action]string{
	ActionAddTask:             "added",
	ActionEditTask:            "edited",
	ActionRemoveTask:          "removed",
	ActionCompleteTask:        "completed",
	ActionStarTask:            "starred",
	ActionReorderTask:         "reordered",
	ActionMoveTask:            "moved",
	ActionClearCompletedTasks: "deleted all completed tasks",
	ActionJoinList:            "joined",
}

// Verb is the past-tense phrase shown after the actor's name.
// PredictTaskCategory has no verb; its summary is built from the task.
func (a Action) Verb() string {
	return actionVerbs[a]
}

// Valid reports whether a is a known action.
func (a Action) Valid() bool {
	_, ok := actionVerbs[a]
	return ok || a == ActionPredictTaskCategory
}
