package models

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// Profile — «сырой» профиль Icebreaker в том виде, в каком его отдаёт каталог.
// Обязателен только WalletAddress, всё остальное может отсутствовать.
type Profile struct {
	ProfileID        string           `json:"profileID,omitempty"`
	WalletAddress    string           `json:"walletAddress"`
	AvatarURL        string           `json:"avatarUrl,omitempty"`
	DisplayName      string           `json:"displayName,omitempty"`
	JobTitle         string           `json:"jobTitle,omitempty"`
	Bio              string           `json:"bio,omitempty"`
	Location         string           `json:"location,omitempty"`
	PrimarySkill     string           `json:"primarySkill,omitempty"`
	NetworkingStatus string           `json:"networkingStatus,omitempty"`
	Channels         []Channel        `json:"channels,omitempty"`
	Credentials      []Credential     `json:"credentials,omitempty"`
	Highlights       []Highlight      `json:"highlights,omitempty"`
	WorkExperience   []WorkExperience `json:"workExperience,omitempty"`
}

// Channel — привязанный канал связи (github, farcaster, email, ...).
type Channel struct {
	Type       string            `json:"type"`
	IsVerified bool              `json:"isVerified,omitempty"`
	IsLocked   bool              `json:"isLocked,omitempty"`
	Value      string            `json:"value,omitempty"`
	URL        string            `json:"url,omitempty"`
	Metadata   []ChannelMetadata `json:"metadata,omitempty"`
}

// ChannelMetadata — пара name/value; у farcaster-канала здесь лежит fid.
type ChannelMetadata struct {
	Name  string        `json:"name"`
	Value MetadataValue `json:"value"`
}

// MetadataValue — значение метаданных канала. Каталог присылает его то строкой,
// то числом; храним всегда строкой.
type MetadataValue string

func (v *MetadataValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)

	if bytes.Equal(data, []byte("null")) {
		*v = ""
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = MetadataValue(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		// bool/объект — сохраняем как есть, чтобы не ронять весь профиль.
		*v = MetadataValue(data)
		return nil
	}
	*v = MetadataValue(n.String())

	return nil
}

// Uint64 возвращает значение как беззнаковое число (0, ok=false при ошибке).
func (v MetadataValue) Uint64() (uint64, bool) {
	n, err := strconv.ParseUint(string(v), 10, 64)
	if err != nil {
		return 0, false
	}

	return n, true
}

// Credential — ончейн-удостоверение (например, qBuilder).
type Credential struct {
	Name      string `json:"name"`
	Chain     string `json:"chain"`
	Source    string `json:"source,omitempty"`
	Reference string `json:"reference,omitempty"`
}

type Highlight struct {
	Title string `json:"title,omitempty"`
	URL   string `json:"url,omitempty"`
}

// WorkExperience — запись об опыте работы; OrgWebsite используется как «домен компании».
type WorkExperience struct {
	JobTitle       string `json:"jobTitle,omitempty"`
	OrgWebsite     string `json:"orgWebsite,omitempty"`
	EmploymentType string `json:"employmentType,omitempty"`
	StartDate      string `json:"startDate,omitempty"`
	EndDate        string `json:"endDate,omitempty"`
	Location       string `json:"location,omitempty"`
	IsVerified     bool   `json:"isVerified,omitempty"`
}

// ProfilesResponse — ответ каталога на любой lookup.
type ProfilesResponse struct {
	Profiles []Profile `json:"profiles"`
}
