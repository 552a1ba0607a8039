package domain

// QuoteSubmission is the transient payload of one "request a quote"
// form post. It lives only for the duration of request processing.
//
// Hours stays a raw string so legacy leniency applies: an absent or
// non-numeric value defaults to a single hour instead of rejecting the
// submission. FieldValues keeps every submitted value per field name
// (checkbox inputs submit more than one). Attachments maps a file
// field's name to the stored file name handed over by the external
// upload handler; content and type are not inspected here.
type QuoteSubmission struct {
	ProductID   string
	Hours       string
	CustomNote  string
	FieldValues map[string][]string
	Attachments map[string]string
}
