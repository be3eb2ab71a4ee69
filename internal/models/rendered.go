package models

// RenderedProfile — компактная проекция профиля только для отрисовки.
//
// Именно она (а не Profile) кодируется в state-токен, поэтому JSON-ключи короткие,
// а необязательные поля опускаются. Пустая строка означает «поля нет».
// Отсутствие профиля — nil-указатель, а не нулевое значение.
type RenderedProfile struct {
	AvatarURL              string   `json:"a"`
	DisplayName            string   `json:"n"`
	Bio                    string   `json:"b,omitempty"`
	JobTitle               string   `json:"j,omitempty"`
	Location               string   `json:"l,omitempty"`
	NetworkingStatus       string   `json:"s,omitempty"`
	PrimarySkill           string   `json:"k,omitempty"`
	CredentialsCount       int      `json:"c,omitempty"`
	VerifiedChannels       []string `json:"vc,omitempty"`
	VerifiedCompanies      []string `json:"vo,omitempty"`
	HighlightedCredentials []string `json:"hc,omitempty"`
}
