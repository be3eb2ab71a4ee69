package models

// FrameAction — тело POST от клиента Farcaster (frame signature packet).
// Подпись trustedData не проверяется: используются только untrustedData.
type FrameAction struct {
	UntrustedData UntrustedData `json:"untrustedData"`
	TrustedData   TrustedData   `json:"trustedData"`
}

type UntrustedData struct {
	FID         uint64 `json:"fid"`
	URL         string `json:"url,omitempty"`
	MessageHash string `json:"messageHash,omitempty"`
	Timestamp   int64  `json:"timestamp,omitempty"`
	Network     int    `json:"network,omitempty"`
	ButtonIndex int    `json:"buttonIndex"`
	InputText   string `json:"inputText,omitempty"`
	State       string `json:"state,omitempty"`
	CastID      CastID `json:"castId"`
}

// CastID — каст, на котором нажато действие (для cast action — каст автора).
type CastID struct {
	FID  uint64 `json:"fid"`
	Hash string `json:"hash"`
}

type TrustedData struct {
	MessageBytes string `json:"messageBytes"`
}
