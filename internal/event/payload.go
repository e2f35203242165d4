package event

import "encoding/json"

// ConnectedData acknowledges a successful WebSocket handshake.
type ConnectedData struct {
	Message string `json:"message"`
	UserID  int64  `json:"userId,omitempty"`
}

// OrderStatusChangeData describes an order lifecycle transition.
type OrderStatusChangeData struct {
	OrderID         int64   `json:"orderId"`
	OrderNo         string  `json:"orderNo"`
	OldStatus       int     `json:"oldStatus"`
	NewStatus       int     `json:"newStatus"`
	StatusText      string  `json:"statusText"`
	ClientName      string  `json:"clientName"`
	UpdatedBy       string  `json:"updatedBy"`
	UpdatedAt       string  `json:"updatedAt,omitempty"`
	CreatedBy       int64   `json:"createdBy"`
	AffectedUserIDs []int64 `json:"affectedUserIds,omitempty"`
}

// TaskAssignedData describes a production task handed to an employee.
type TaskAssignedData struct {
	TaskID       int64  `json:"taskId"`
	TaskType     int    `json:"taskType"`
	OrderNo      string `json:"orderNo"`
	AssigneeID   int64  `json:"assigneeId"`
	AssigneeName string `json:"assigneeName"`
	Deadline     string `json:"deadline,omitempty"`
	Description  string `json:"description,omitempty"`
	AssignedBy   string `json:"assignedBy"`
}

// TaskProgressData describes a progress or state update on a production task.
type TaskProgressData struct {
	TaskID          int64   `json:"taskId"`
	TaskType        int     `json:"taskType"`
	OrderNo         string  `json:"orderNo"`
	Progress        *int    `json:"progress,omitempty"`
	Status          int     `json:"status"`
	StatusText      string  `json:"statusText"`
	UpdatedBy       string  `json:"updatedBy"`
	Remark          string  `json:"remark,omitempty"`
	AffectedUserIDs []int64 `json:"affectedUserIds,omitempty"`
}

// PaymentCreatedData describes a recorded payment against an order.
type PaymentCreatedData struct {
	OrderID       int64   `json:"orderId"`
	OrderNo       string  `json:"orderNo"`
	Amount        float64 `json:"amount"`
	PaymentMethod int     `json:"paymentMethod"`
	ClientName    string  `json:"clientName"`
	CreatedBy     string  `json:"createdBy"`
}

// CapacityAlertData warns that an employee's task load is near or past its limit.
type CapacityAlertData struct {
	EmployeeName   string  `json:"employeeName"`
	CurrentLoad    int     `json:"currentLoad"`
	MaxLoad        int     `json:"maxLoad"`
	LoadPercentage float64 `json:"loadPercentage"`
	AvailableSlots int     `json:"availableSlots"`
	AlertLevel     string  `json:"alertLevel"`
}

// DecodeData unmarshals the frame data into the given payload struct.
func (i *Inbound) DecodeData(v any) error {
	if len(i.Data) == 0 {
		return ErrInvalidFrame
	}
	return json.Unmarshal(i.Data, v)
}
