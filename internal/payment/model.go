package payment

// LineItem is a priced order line passed to the provider. Unit price is in
// minor currency units and comes from the already-persisted order, never from
// the client.
type LineItem struct {
	Title     string
	UnitCents int64
	Quantity  int
	ImageURL  *string
	ProductID int64
}

// CheckoutSession is the provider's hosted payment page reference.
type CheckoutSession struct {
	ID  string
	URL string
}
