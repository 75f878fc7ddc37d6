package order

import "time"

type Status string

const (
	StatusPending  Status = "PENDING"
	StatusPaid     Status = "PAID"
	StatusShipped  Status = "SHIPPED"
	StatusDone     Status = "DONE"
	StatusCanceled Status = "CANCELED"
)

// Audit action tags. Audit rows are append-only.
const (
	ActionStatusUpdate = "STATUS_UPDATE"
	ActionTrackingSet  = "TRACKING_SET"
)

type Address struct {
	Name    string `json:"name"`
	Addr1   string `json:"addr1"`
	Addr2   string `json:"addr2"`
	City    string `json:"city"`
	State   string `json:"state"`
	Postal  string `json:"postal"`
	Country string `json:"country"`
}

type Order struct {
	ID             int64      `json:"id"`
	UserID         int64      `json:"userId"`
	TotalCents     int64      `json:"totalCents"`
	Status         Status     `json:"status"`
	Shipping       Address    `json:"shipping"`
	Billing        Address    `json:"billing"`
	Carrier        *string    `json:"carrier,omitempty"`
	TrackingNo     *string    `json:"trackingNo,omitempty"`
	PaymentSession *string    `json:"paymentSession,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
	ShippedAt      *time.Time `json:"shippedAt,omitempty"`
	FulfilledAt    *time.Time `json:"fulfilledAt,omitempty"`

	// Denormalized owner summary, populated on listing paths.
	UserName  string `json:"userName,omitempty"`
	UserEmail string `json:"userEmail,omitempty"`

	Items []OrderItem `json:"items"`
}

// OrderItem snapshots the unit price at order time; later catalog price
// changes never affect it.
type OrderItem struct {
	ID           int64   `json:"id"`
	OrderID      int64   `json:"orderId"`
	ProductID    int64   `json:"productId"`
	Quantity     int     `json:"quantity"`
	UnitCents    int64   `json:"unitCents"`
	ProductTitle string  `json:"title"`
	ProductImage *string `json:"imageUrl,omitempty"`
}

// CartItem is the client-submitted cart line. Only the product reference and
// quantity are trusted; pricing is resolved server-side.
type CartItem struct {
	ProductID int64 `json:"productId"`
	Quantity  int   `json:"quantity"`
}

type CheckoutInput struct {
	Items    []CartItem `json:"items"`
	Shipping Address    `json:"shipping"`
	Billing  Address    `json:"billing"`
}

type ListOptions struct {
	Status   string
	Query    string
	Take     int
	CursorID int64
	From     *time.Time
	To       *time.Time
}

type ListResult struct {
	Orders     []Order `json:"orders"`
	NextCursor *int64  `json:"nextCursor"`
}

func validStatus(s Status) bool {
	switch s {
	case StatusPending, StatusPaid, StatusShipped, StatusDone, StatusCanceled:
		return true
	}
	return false
}
