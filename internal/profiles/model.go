package profiles

import "time"

// Profile carries the socioeconomic data a resident fills in once and the
// analysis pipeline reads to personalize insights. The ID is the owning
// user's ID; there is at most one profile per user.
type Profile struct {
	ID                  string    `json:"id"`
	Nome                string    `json:"nome"`
	Idade               *int      `json:"idade,omitempty"`
	Bairro              string    `json:"bairro,omitempty"`
	Escolaridade        string    `json:"escolaridade,omitempty"`
	Experiencia         string    `json:"experiencia,omitempty"`
	Interesses          []string  `json:"interesses,omitempty"`
	HorariosDisponiveis string    `json:"horarios_disponiveis,omitempty"`
	TemInternet         *bool     `json:"tem_internet,omitempty"`
	TemTransporte       *bool     `json:"tem_transporte,omitempty"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}
