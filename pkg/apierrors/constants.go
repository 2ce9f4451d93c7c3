package apierrors

const (
	MsgFailListTask       = "errorListTask"
	MsgInvalidTaskID      = "invalidTaskID"
	MsgInvalidTaskPayload = "invalidTaskPayload"
	MsgTaskNotFound       = "taskNotFound"
	MsgUserNotFound       = "userNotFound"
	MsgFailCreateTask     = "failCreateTask"
	MsgFailListUsers      = "failListUsers"
	MsgActionNotAllowed   = "actionNotAllowed"
	MsgInvalidTransition  = "invalidTransition"
	MsgDeadlineRequired   = "deadlineRequired"
	MsgMissingActor       = "missingActor"
	MsgFailApplyAction    = "failApplyAction"
)
