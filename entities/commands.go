package entities

type VoidTicket struct {
	Header EventHeader `json:"header"`

	AsaID  uint64 `json:"asa_id"`
	Reason string `json:"reason"`
}
