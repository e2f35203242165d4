package notify

import "studio-notify/internal/event"

// Eligible decides whether the given recipient should surface an inbound
// message. It is a pure function of the message and the identity; rendering
// happens only after it returns true.
//
// Administrators receive everything. For everyone else a per-type predicate
// applies, and unrecognized types are denied.
func Eligible(id Identity, msg *event.Inbound) bool {
	if msg == nil {
		return false
	}
	if id.HasRole(event.RoleAdmin) {
		return true
	}

	switch msg.Type {
	case event.TypeOrderStatusChange:
		var data event.OrderStatusChangeData
		if err := msg.DecodeData(&data); err != nil {
			return false
		}
		return id.HasRole(event.RoleClientManager) ||
			data.CreatedBy == id.UserID ||
			containsID(data.AffectedUserIDs, id.UserID)

	case event.TypeTaskAssigned:
		var data event.TaskAssignedData
		if err := msg.DecodeData(&data); err != nil {
			return false
		}
		return data.AssigneeID == id.UserID ||
			id.HasRole(event.RoleClientManager)

	case event.TypeTaskProgress:
		var data event.TaskProgressData
		if err := msg.DecodeData(&data); err != nil {
			return false
		}
		return id.HasRole(event.RoleClientManager) ||
			containsID(data.AffectedUserIDs, id.UserID)

	case event.TypePaymentCreated:
		return id.HasRole(event.RoleFinance) ||
			id.HasRole(event.RoleClientManager)

	case event.TypeCapacityAlert:
		return id.HasRole(event.RoleClientManager)

	default:
		return false
	}
}

func containsID(ids []int64, id int64) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
