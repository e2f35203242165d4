package event

// Type discriminates frames on the wire. Inbound types are pushed by the
// server, outbound types are sent by dashboard clients.
type Type string

// Inbound frame types.
const (
	TypeConnected         Type = "connected"
	TypeOrderStatusChange Type = "order_status_change"
	TypeTaskAssigned      Type = "task_assigned"
	TypeTaskProgress      Type = "task_progress"
	TypePaymentCreated    Type = "payment_created"
	TypeCapacityAlert     Type = "capacity_alert"
)

// Outbound frame types.
const (
	TypePing      Type = "ping"
	TypeJoinRoom  Type = "join_room"
	TypeLeaveRoom Type = "leave_room"
)

// Role names as carried in JWT claims and checked by the routing policy.
const (
	RoleAdmin         = "admin"
	RoleClientManager = "client_manager"
	RoleFinance       = "finance"
	RolePhotographer  = "photographer"
	RoleRetoucher     = "retoucher"
)

// Order lifecycle states.
const (
	OrderStatusPending    = 1
	OrderStatusInProgress = 2
	OrderStatusAcceptance = 3
	OrderStatusCompleted  = 4
	OrderStatusCancelled  = 5
)

// Production task states.
const (
	TaskStatusPending    = 1
	TaskStatusInProgress = 2
	TaskStatusCompleted  = 3
	TaskStatusReturned   = 4
)

// Production task kinds.
const (
	TaskTypePhotography = 1
	TaskTypeRetouching  = 2
)

// Capacity alert levels.
const (
	AlertLevelWarning  = "warning"
	AlertLevelCritical = "critical"
)

var orderStatusText = map[int]string{
	OrderStatusPending:    "Pending Confirmation",
	OrderStatusInProgress: "In Progress",
	OrderStatusAcceptance: "Pending Acceptance",
	OrderStatusCompleted:  "Completed",
	OrderStatusCancelled:  "Cancelled",
}

var taskTypeText = map[int]string{
	TaskTypePhotography: "Photography",
	TaskTypeRetouching:  "Retouching",
}

var taskStatusText = map[int]string{
	TaskStatusPending:    "Pending",
	TaskStatusInProgress: "In Progress",
	TaskStatusCompleted:  "Completed",
	TaskStatusReturned:   "Returned",
}

var paymentMethodText = map[int]string{
	1: "Cash",
	2: "WeChat Pay",
	3: "Alipay",
	4: "Bank Transfer",
	5: "Other",
}

// OrderStatusText returns the display label for an order status code.
func OrderStatusText(status int) string {
	if text, ok := orderStatusText[status]; ok {
		return text
	}
	return "Unknown"
}

// TaskTypeText returns the display label for a task type code.
func TaskTypeText(taskType int) string {
	if text, ok := taskTypeText[taskType]; ok {
		return text
	}
	return "Unknown"
}

// TaskStatusText returns the display label for a task status code.
func TaskStatusText(status int) string {
	if text, ok := taskStatusText[status]; ok {
		return text
	}
	return "Unknown"
}

// PaymentMethodText returns the display label for a payment method code.
func PaymentMethodText(method int) string {
	if text, ok := paymentMethodText[method]; ok {
		return text
	}
	return "Unknown"
}
