package convert

import (
	"strconv"

	"github.com/stratushq/stratuswire/pkg/model"
)

// taskLineage is the resubmit chain data carried in the task context.
type taskLineage struct {
	originalID     string
	resubmitOf     *string
	resubmitNumber int
}

// parseTaskLineage reads the required lineage entries from the wire context.
// The system resubmit number is written outbound but never read back; the
// engine owns the canonical count.
func parseTaskLineage(context map[string]string) (taskLineage, error) {
	originalID := context[model.ContextKeyOriginalID]
	if originalID == "" {
		return taskLineage{}, missingField("Task", model.ContextKeyOriginalID)
	}

	raw, ok := context[model.ContextKeyResubmitNumber]
	if !ok {
		return taskLineage{}, missingField("Task", model.ContextKeyResubmitNumber)
	}
	resubmitNumber, err := strconv.Atoi(raw)
	if err != nil {
		return taskLineage{}, unparseable("Task", model.ContextKeyResubmitNumber, raw)
	}

	var resubmitOf *string
	if v, ok := context[model.ContextKeyResubmitOf]; ok {
		resubmitOf = &v
	}

	return taskLineage{
		originalID:     originalID,
		resubmitOf:     resubmitOf,
		resubmitNumber: resubmitNumber,
	}, nil
}

// classifyTask decides the task variant. Presence of the task index entry is
// the sole batch discriminant; the wire schema carries no first-class tag.
func classifyTask(context map[string]string) (model.TaskVariant, error) {
	raw, ok := context[model.ContextKeyTaskIndex]
	if !ok {
		return model.ServiceTask{}, nil
	}
	index, err := strconv.Atoi(raw)
	if err != nil {
		return nil, unparseable("Task", model.ContextKeyTaskIndex, raw)
	}
	return model.BatchTask{Index: index}, nil
}

// encodeTaskContext builds the wire context map: the task's own entries
// first, then the canonical lineage values overwrite the reserved keys, and
// batch tasks get their index written last. Caller-supplied values under
// reserved keys do not survive. The task's map is never mutated.
func encodeTaskContext(task model.Task) map[string]string {
	context := make(map[string]string, len(task.Context)+5)
	for k, v := range task.Context {
		context[k] = v
	}

	context[model.ContextKeyOriginalID] = task.OriginalID
	context[model.ContextKeyResubmitNumber] = strconv.Itoa(task.ResubmitNumber)
	context[model.ContextKeySystemResubmitNumber] = strconv.Itoa(task.SystemResubmitNumber)
	if task.ResubmitOf != nil {
		context[model.ContextKeyResubmitOf] = *task.ResubmitOf
	}
	if batch, ok := task.Variant.(model.BatchTask); ok {
		context[model.ContextKeyTaskIndex] = strconv.Itoa(batch.Index)
	}

	return context
}
