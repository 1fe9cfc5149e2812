package netbilling

// Request field names
const (
	fieldAccountID   = "account_id"
	fieldSiteTag     = "site_tag"
	fieldPayType     = "pay_type"
	fieldTranType    = "tran_type"
	fieldAmount      = "amount"
	fieldOrigID      = "orig_id"
	fieldDescription = "description"

	fieldBillName1   = "bill_name1"
	fieldBillName2   = "bill_name2"
	fieldCardNumber  = "card_number"
	fieldCardExpire  = "card_expire"
	fieldCardCVV2    = "card_cvv2"
	fieldCISPStorage = "cisp_storage"

	fieldBillStreet  = "bill_street"
	fieldBillCity    = "bill_city"
	fieldBillState   = "bill_state"
	fieldBillZip     = "bill_zip"
	fieldBillCountry = "bill_country"
	fieldCustPhone   = "cust_phone"

	fieldShipName1   = "ship_name1"
	fieldShipName2   = "ship_name2"
	fieldShipStreet  = "ship_street"
	fieldShipCity    = "ship_city"
	fieldShipState   = "ship_state"
	fieldShipZip     = "ship_zip"
	fieldShipCountry = "ship_country"

	fieldCustEmail = "cust_email"
	fieldCustIP    = "cust_ip"
)

// Response field names
const (
	respStatusCode = "status_code"
	respAuthMsg    = "auth_msg"
	respTransID    = "trans_id"
	respAVSCode    = "avs_code"
	respCVV2Code   = "cvv2_code"
)

// FieldSet is an insertion-ordered set of request fields.
// Setting an existing key replaces its value in place.
type FieldSet struct {
	keys   []string
	values map[string]string
}

// NewFieldSet creates an empty FieldSet
func NewFieldSet() *FieldSet {
	return &FieldSet{values: make(map[string]string)}
}

// Set assigns value to key
func (f *FieldSet) Set(key, value string) {
	if _, ok := f.values[key]; !ok {
		f.keys = append(f.keys, key)
	}
	f.values[key] = value
}

// Get returns the value for key and whether it was set
func (f *FieldSet) Get(key string) (string, bool) {
	v, ok := f.values[key]
	return v, ok
}

// has reports whether key was set, even to a blank value
func (f *FieldSet) has(key string) bool {
	_, ok := f.values[key]
	return ok
}

// Keys returns field names in insertion order
func (f *FieldSet) Keys() []string {
	keys := make([]string, len(f.keys))
	copy(keys, f.keys)
	return keys
}

// size returns the number of fields
func (f *FieldSet) size() int {
	return len(f.keys)
}

// Clone returns an independent copy
func (f *FieldSet) Clone() *FieldSet {
	c := &FieldSet{
		keys:   make([]string, len(f.keys)),
		values: make(map[string]string, len(f.values)),
	}
	copy(c.keys, f.keys)
	for k, v := range f.values {
		c.values[k] = v
	}
	return c
}
