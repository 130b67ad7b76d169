package dialog

import "github.com/google/uuid"

// Kind classifies a banner.
type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
)

// Banner is a transient outcome message. The ID lets the auto-dismiss timer
// tell whether the banner it was armed for is still the visible one.
type Banner struct {
	ID   uuid.UUID `json:"id"`
	Text string    `json:"text"`
	Kind Kind      `json:"kind"`
}

func NewBanner(text string, kind Kind) Banner {
	return Banner{ID: uuid.New(), Text: text, Kind: kind}
}
