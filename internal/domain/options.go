package domain

// Address is a billing address
type Address struct {
	Street  string
	City    string
	State   string
	Zip     string
	Country string
	Phone   string
}

// ShippingAddress is a delivery address. Name is a single "first last" string.
type ShippingAddress struct {
	Name    string
	Street  string
	City    string
	State   string
	Zip     string
	Country string
}

// PaymentOptions are the per-call options recognised by the gateway.
// Zero values mean "not provided".
type PaymentOptions struct {
	Description string
	Email       string
	IP          string

	BillingAddress  *Address
	ShippingAddress *ShippingAddress

	// Store asks the gateway to retain the card for later reuse via a
	// StoredToken. With a StoredToken credential it refreshes the stored
	// customer profile instead.
	Store bool
}
