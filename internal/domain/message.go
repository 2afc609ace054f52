package domain

// Envelope is a transient chat payload. It is produced on a send request,
// fanned out immediately and then discarded; nothing stores it.
type Envelope struct {
	Sender string
	Body   string
}
