package models

// Status is the workflow state of an order. The set is flat: any status may
// move to any other.
type Status string

const (
	StatusReceived  Status = "RECEIVED"
	StatusQuoted    Status = "QUOTED"
	StatusPreparing Status = "PREPARING"
	StatusShipped   Status = "SHIPPED"
	StatusDelivered Status = "DELIVERED"
)

// Statuses lists every status in workflow order.
var Statuses = []Status{
	StatusReceived,
	StatusQuoted,
	StatusPreparing,
	StatusShipped,
	StatusDelivered,
}

func (s Status) Valid() bool {
	for _, v := range Statuses {
		if s == v {
			return true
		}
	}
	return false
}

func (s Status) String() string { return string(s) }
