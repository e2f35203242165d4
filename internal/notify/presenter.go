package notify

import (
	"context"
	"fmt"
	"time"

	"studio-notify/internal/event"
	"studio-notify/pkg/log"
)

// Severity classifies a notification for styling by the toast host.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Notification is one transient UI alert produced from an eligible message.
type Notification struct {
	Severity Severity
	Title    string
	Lines    []string
	Icon     string
	Duration time.Duration
	Navigate string // deep link opened on click
	Sound    bool   // audible alert requested
}

// Sink displays notifications. The dashboard's toast host implements this;
// the terminal client renders to stdout.
type Sink interface {
	Show(n *Notification)
}

// Chime produces the short audible alert. Playback is best-effort: errors are
// swallowed and never surface to the user.
type Chime interface {
	Play() error
}

// Presenter turns eligible inbound messages into notifications and hands them
// to the sink. It is stateless per message: no queueing, no deduplication.
type Presenter struct {
	sink   Sink
	chime  Chime
	logger log.Logger
}

// NewPresenter creates a presenter. chime may be nil to disable audio.
func NewPresenter(sink Sink, chime Chime, logger log.Logger) *Presenter {
	return &Presenter{sink: sink, chime: chime, logger: logger}
}

// Handle routes and renders one inbound message for the given recipient.
// Ineligible and non-visual messages are dropped.
func (p *Presenter) Handle(id Identity, msg *event.Inbound) {
	if !Eligible(id, msg) {
		p.logger.Debugf(context.Background(), "message %s filtered by role policy", msg.Type)
		return
	}
	n := p.Present(id, msg)
	if n == nil {
		return
	}
	p.sink.Show(n)
	if n.Sound {
		p.playChime()
	}
}

// Present builds the notification for one eligible message. It returns nil
// for the handshake acknowledgement and for unrecognized types.
func (p *Presenter) Present(id Identity, msg *event.Inbound) *Notification {
	switch msg.Type {
	case event.TypeConnected:
		// Handshake ack: log only, never a toast.
		var data event.ConnectedData
		if err := msg.DecodeData(&data); err == nil {
			p.logger.Debugf(context.Background(), "notification stream ready: %s", data.Message)
		}
		return nil

	case event.TypeOrderStatusChange:
		return p.presentOrderStatusChange(msg)

	case event.TypeTaskAssigned:
		return p.presentTaskAssigned(id, msg)

	case event.TypeTaskProgress:
		return p.presentTaskProgress(msg)

	case event.TypePaymentCreated:
		return p.presentPaymentCreated(msg)

	case event.TypeCapacityAlert:
		return p.presentCapacityAlert(msg)

	default:
		p.logger.Infof(context.Background(), "unknown message type dropped: %s", msg.Type)
		return nil
	}
}

func (p *Presenter) presentOrderStatusChange(msg *event.Inbound) *Notification {
	var data event.OrderStatusChangeData
	if err := msg.DecodeData(&data); err != nil {
		p.logger.Errorf(context.Background(), "order_status_change payload decode failed: %v", err)
		return nil
	}

	severity := SeverityInfo
	switch data.NewStatus {
	case event.OrderStatusCompleted:
		severity = SeveritySuccess
	case event.OrderStatusCancelled:
		severity = SeverityWarning
	}

	statusText := data.StatusText
	if statusText == "" {
		statusText = event.OrderStatusText(data.NewStatus)
	}

	return &Notification{
		Severity: severity,
		Title:    "Order Status Changed",
		Lines: []string{
			"Order: " + data.OrderNo,
			"Client: " + data.ClientName,
			fmt.Sprintf("Status: %s → %s", event.OrderStatusText(data.OldStatus), statusText),
			"Updated by: " + data.UpdatedBy,
		},
		Icon:     "file-text",
		Duration: 4500 * time.Millisecond,
		Navigate: fmt.Sprintf("/orders?orderId=%d", data.OrderID),
		Sound:    true,
	}
}

func (p *Presenter) presentTaskAssigned(id Identity, msg *event.Inbound) *Notification {
	var data event.TaskAssignedData
	if err := msg.DecodeData(&data); err != nil {
		p.logger.Errorf(context.Background(), "task_assigned payload decode failed: %v", err)
		return nil
	}

	assignedToMe := data.AssigneeID == id.UserID

	title := "Task Assigned"
	if assignedToMe {
		title = "New Task Assigned to You"
	}

	lines := []string{
		"Task: " + event.TaskTypeText(data.TaskType),
		"Order: " + data.OrderNo,
		"Assignee: " + data.AssigneeName,
	}
	if data.Deadline != "" {
		lines = append(lines, "Deadline: "+data.Deadline)
	}
	if data.Description != "" {
		lines = append(lines, "Notes: "+data.Description)
	}
	lines = append(lines, "Assigned by: "+data.AssignedBy)

	return &Notification{
		Severity: SeverityInfo,
		Title:    title,
		Lines:    lines,
		Icon:     "bell",
		Duration: 6 * time.Second,
		Navigate: fmt.Sprintf("/tasks?taskId=%d", data.TaskID),
		Sound:    assignedToMe,
	}
}

func (p *Presenter) presentTaskProgress(msg *event.Inbound) *Notification {
	var data event.TaskProgressData
	if err := msg.DecodeData(&data); err != nil {
		p.logger.Errorf(context.Background(), "task_progress payload decode failed: %v", err)
		return nil
	}

	severity := SeverityInfo
	icon := "file-text"
	switch data.Status {
	case event.TaskStatusCompleted:
		severity = SeveritySuccess
		icon = "check-circle"
	case event.TaskStatusReturned:
		severity = SeverityWarning
		icon = "warning"
	}

	statusText := data.StatusText
	if statusText == "" {
		statusText = event.TaskStatusText(data.Status)
	}

	lines := []string{
		"Task: " + event.TaskTypeText(data.TaskType),
		"Order: " + data.OrderNo,
		"Status: " + statusText,
	}
	if data.Progress != nil {
		lines = append(lines, fmt.Sprintf("Progress: %d%%", *data.Progress))
	}
	if data.Remark != "" {
		lines = append(lines, "Remark: "+data.Remark)
	}
	lines = append(lines, "Updated by: "+data.UpdatedBy)

	return &Notification{
		Severity: severity,
		Title:    "Task Progress Updated",
		Lines:    lines,
		Icon:     icon,
		Duration: 4500 * time.Millisecond,
		Navigate: fmt.Sprintf("/tasks?taskId=%d", data.TaskID),
		Sound:    data.Status == event.TaskStatusCompleted,
	}
}

func (p *Presenter) presentPaymentCreated(msg *event.Inbound) *Notification {
	var data event.PaymentCreatedData
	if err := msg.DecodeData(&data); err != nil {
		p.logger.Errorf(context.Background(), "payment_created payload decode failed: %v", err)
		return nil
	}

	return &Notification{
		Severity: SeveritySuccess,
		Title:    "New Payment Recorded",
		Lines: []string{
			"Order: " + data.OrderNo,
			"Client: " + data.ClientName,
			fmt.Sprintf("Amount: ¥%.2f", data.Amount),
			"Method: " + event.PaymentMethodText(data.PaymentMethod),
			"Recorded by: " + data.CreatedBy,
		},
		Icon:     "dollar",
		Duration: 5 * time.Second,
		Navigate: fmt.Sprintf("/orders?orderId=%d", data.OrderID),
		Sound:    true,
	}
}

func (p *Presenter) presentCapacityAlert(msg *event.Inbound) *Notification {
	var data event.CapacityAlertData
	if err := msg.DecodeData(&data); err != nil {
		p.logger.Errorf(context.Background(), "capacity_alert payload decode failed: %v", err)
		return nil
	}

	severity := SeverityWarning
	summary := "Capacity near saturation"
	if data.AlertLevel == event.AlertLevelCritical {
		severity = SeverityError
		summary = "Capacity critically exceeded"
	}

	return &Notification{
		Severity: severity,
		Title:    "Capacity Alert",
		Lines: []string{
			"Employee: " + data.EmployeeName,
			fmt.Sprintf("Load: %d / %d (%.0f%%)", data.CurrentLoad, data.MaxLoad, data.LoadPercentage),
			fmt.Sprintf("Available slots: %d", data.AvailableSlots),
			summary,
		},
		Icon:     "warning",
		Duration: 8 * time.Second,
		Navigate: "/tasks",
		Sound:    true,
	}
}

func (p *Presenter) playChime() {
	if p.chime == nil {
		return
	}
	if err := p.chime.Play(); err != nil {
		// Audio failure is never surfaced.
		p.logger.Debugf(context.Background(), "notification chime failed: %v", err)
	}
}
