// Package schema defines the canonical invoice fields and the header
// vocabulary used to recognize them across accounting-tool exports.
package schema

// Field is a canonical invoice attribute that all inputs are normalized toward.
type Field string

const (
	FieldInvoiceNumber Field = "invoice_number"
	FieldInvoiceDate   Field = "invoice_date"
	FieldDueDate       Field = "due_date"
	FieldClientName    Field = "client_name"
	FieldClientEmail   Field = "client_email"
	FieldClientAddress Field = "client_address"
	FieldDescription   Field = "description"
	FieldQuantity      Field = "quantity"
	FieldRate          Field = "rate"
	FieldAmount        Field = "amount"
	FieldSubtotal      Field = "subtotal"
	FieldTaxRate       Field = "tax_rate"
	FieldTaxAmount     Field = "tax_amount"
	FieldTotal         Field = "total"
	FieldTerms         Field = "terms"
	FieldNotes         Field = "notes"
	FieldCurrency      Field = "currency"
	FieldStatus        Field = "status"
	FieldPONumber      Field = "po_number"
)

// fieldOrder is the registration order, which doubles as allocation priority
// during column mapping. Identity fields come before financial fields so that
// ambiguous headers resolve toward the more selective meaning first.
var fieldOrder = []Field{
	FieldInvoiceNumber,
	FieldInvoiceDate,
	FieldDueDate,
	FieldClientName,
	FieldClientEmail,
	FieldClientAddress,
	FieldDescription,
	FieldQuantity,
	FieldRate,
	FieldAmount,
	FieldSubtotal,
	FieldTaxRate,
	FieldTaxAmount,
	FieldTotal,
	FieldTerms,
	FieldNotes,
	FieldCurrency,
	FieldStatus,
	FieldPONumber,
}

// defaultVocabulary lists the known header variants per field, collected from
// QuickBooks (Online and Desktop), Xero, Harvest, FreshBooks, and Wave
// exports. Synonyms are compared lower-cased by the matcher; order within a
// list breaks confidence ties.
var defaultVocabulary = map[Field][]string{
	FieldInvoiceNumber: {
		"invoice #", "invoice number", "invoice no", "invoicenumber", "invoice_number",
		"ref number", "refnumber", "ref #", "ref", "transaction number", "trans #",
		"num", "number", "doc number", "docnumber", "document number",
		"invoice id", "invoiceid", "reference", "invoice reference",
		"invoice code", "invoice#", "id",
		"invoice_id", "invoicecode",
		"invoice identifier", "bill number",
		"inv #", "inv no", "inv number", "inv_no", "inv_num",
	},
	FieldInvoiceDate: {
		"date", "invoice date", "invoicedate", "invoice_date", "trans date",
		"transaction date", "txn date", "txndate", "billing date",
		"date created", "created date", "creation date", "issue date",
		"sent date", "issued", "issued date", "issued on",
		"inv date", "inv_date", "bill date", "billed date", "billed on",
	},
	FieldDueDate: {
		"due date", "duedate", "due_date", "payment due", "paymentdue",
		"payment due date", "terms date", "termsdate", "due by",
		"payment date", "paymentdate", "pay by date", "expiry date",
		"due on", "payment deadline", "term date",
	},
	FieldClientName: {
		"customer", "customer name", "customername", "customer_name",
		"client", "client name", "clientname", "client_name",
		"bill to", "bill_to", "billto", "bill to name",
		"sold to", "sold_to", "soldto",
		"contact", "contact name", "customer/contact",
		"company", "company name", "companyname", "organization",
		"business name", "business", "account", "account name",
		"customer:company", "customer company", "name",
	},
	FieldClientEmail: {
		"email", "e-mail", "email address", "emailaddress", "email_address",
		"customer email", "customeremail", "customer_email",
		"client email", "clientemail", "client_email",
		"contact email", "contactemail", "contact_email",
		"bill to email", "billing email", "invoice email",
		"primary email", "email 1", "email1", "customer:email",
	},
	FieldClientAddress: {
		"address", "billing address", "billingaddress", "billing_address",
		"bill to address", "customer address", "customeraddress",
		"street address", "street", "ship to", "shipto",
		"address line 1", "addressline1", "address1", "addr1",
		"address line 2", "addressline2", "address2", "addr2",
		"bill addr line 1", "billing addr 1",
		"city", "billing city", "customer city", "town",
		"state", "state/province", "province", "region",
		"billing state", "customer state",
		"zip", "zip code", "zipcode", "postal code", "postalcode",
		"billing zip", "customer zip",
	},
	FieldDescription: {
		"description", "item description", "service description",
		"product/service", "product_service", "product or service",
		"item", "item name", "itemname", "item_name",
		"service", "service name", "servicename",
		"description & qty", "description/qty", "line description",
		"task", "task name", "activity", "service item",
		"product", "product name", "productname", "product description",
		"service type", "memo", "line item", "lineitem", "line_item",
		"details", "item details", "notes", "description/notes",
		"sku", "sku description", "class",
	},
	FieldQuantity: {
		"qty", "quantity", "units", "hours", "amount",
		"qty sold", "qtysold", "quantity sold", "units sold",
		"billable hours", "billable qty", "item qty",
		"num", "count", "volume", "billing quantity",
	},
	FieldRate: {
		"rate", "price", "unit price", "unitprice", "unit_price",
		"sales price", "salesprice", "sales_price",
		"unit cost", "unitcost", "unit_cost", "cost per unit",
		"hourly rate", "hourlyrate", "hourly_rate", "billing rate",
		"price each", "priceeach", "price_each", "each",
		"cost", "rate/price", "rate price", "charge", "fee",
	},
	FieldAmount: {
		"amount", "line amount", "lineamount", "line_amount",
		"line total", "linetotal", "line_total",
		"extended amount", "extendedamount", "extended_amount",
		"line amount tax", "line amount no tax",
		"total", "subtotal", "sum", "price", "charge",
		"item total", "net amount", "line price",
	},
	FieldSubtotal: {
		"subtotal", "sub total", "sub-total", "sub_total",
		"net amount", "netamount", "net_amount",
		"total before tax", "amount before tax",
		"taxable amount", "taxableamount", "pre-tax total",
		"item total", "items total", "line items total",
	},
	FieldTaxRate: {
		"tax rate", "taxrate", "tax_rate", "tax %", "tax percent",
		"tax percentage", "sales tax rate", "salestaxrate",
		"gst rate", "vat rate", "tax code rate",
		"rate of tax", "tax rate %", "rate %",
	},
	FieldTaxAmount: {
		"tax", "tax amount", "taxamount", "tax_amount",
		"sales tax", "salestax", "sales_tax",
		"gst", "gst amount", "vat", "vat amount",
		"tax total", "taxtotal", "total tax",
		"tax charged", "tax applied", "tax value",
	},
	FieldTotal: {
		"total", "grand total", "grandtotal", "grand_total",
		"invoice total", "invoicetotal", "invoice_total",
		"amount due", "amountdue", "amount_due",
		"balance", "balance due", "balancedue",
		"total amount", "totalamount", "final total",
		"amount owing", "total with tax", "final amount",
	},
	FieldTerms: {
		"terms", "payment terms", "paymentterms", "payment_terms",
		"term", "due terms", "invoice terms", "billing terms",
		"net terms", "due net", "payment method",
	},
	FieldNotes: {
		"notes", "memo", "message", "customer message", "customermessage",
		"comments", "description", "remarks", "note to customer",
		"invoice message", "invoice note", "additional info",
		"special instructions", "instructions",
	},
	FieldCurrency: {
		"currency", "currency code", "currencycode", "curr",
		"transaction currency", "billing currency",
		"home currency", "foreign currency",
	},
	FieldStatus: {
		"status", "invoice status", "payment status", "paymentstatus",
		"paid status", "state", "condition", "paid/unpaid",
		"open/closed", "sent/unsent",
	},
	FieldPONumber: {
		"po #", "po number", "ponumber", "po_number",
		"purchase order", "purchase order #", "p.o. number",
		"po", "purchase order number", "client po",
	},
}

// Schema holds the canonical field list and per-field synonym vocabularies.
type Schema struct {
	fields []Field
	vocab  map[Field][]string
}

// Default returns a Schema populated with the built-in vocabulary.
func Default() *Schema {
	s := &Schema{
		fields: fieldOrder,
		vocab:  make(map[Field][]string, len(defaultVocabulary)),
	}
	for f, synonyms := range defaultVocabulary {
		s.vocab[f] = append([]string(nil), synonyms...)
	}
	return s
}

// Fields returns the canonical fields in registration (allocation) order.
func (s *Schema) Fields() []Field {
	return s.fields
}

// Synonyms returns the known header variants for the given field.
func (s *Schema) Synonyms(f Field) []string {
	return s.vocab[f]
}

// Extend appends synonyms to a field's vocabulary. Unknown fields are
// ignored; the canonical field set is fixed.
func (s *Schema) Extend(f Field, synonyms ...string) {
	if _, ok := s.vocab[f]; !ok {
		return
	}
	s.vocab[f] = append(s.vocab[f], synonyms...)
}

// Known reports whether f is a canonical field.
func Known(f Field) bool {
	_, ok := defaultVocabulary[f]
	return ok
}
