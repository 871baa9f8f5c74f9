package entity

import "time"

const DefaultLeadStatus = "New"

type Lead struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Mobile     string `json:"mobile"`
	Profession string `json:"profession"`
	City       string `json:"city"`
	State      string `json:"state"`
	Status     string `json:"status"` // deve existir em LeadStatuses, mas não é validado
	DateAdded  string `json:"dateAdded"`
}

// AddedAt devolve o instante de criação. Aceita data completa ou só o dia
// ("2023-10-20", como nos dados de exemplo); datas inválidas ou ausentes valem epoch 0.
func (l Lead) AddedAt() time.Time {
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, l.DateAdded); err == nil {
			return t
		}
	}
	return time.Unix(0, 0)
}

type LeadStatusColor string

const (
	ColorSky    LeadStatusColor = "sky"
	ColorBlue   LeadStatusColor = "blue"
	ColorGreen  LeadStatusColor = "green"
	ColorRed    LeadStatusColor = "red"
	ColorAmber  LeadStatusColor = "amber"
	ColorIndigo LeadStatusColor = "indigo"
	ColorSlate  LeadStatusColor = "slate"
)

func (c LeadStatusColor) Valid() bool {
	switch c {
	case ColorSky, ColorBlue, ColorGreen, ColorRed, ColorAmber, ColorIndigo, ColorSlate:
		return true
	}
	return false
}

type LeadStatus struct {
	Name  string          `json:"name"`
	Color LeadStatusColor `json:"color"`
}

func DefaultLeadStatuses() []LeadStatus {
	return []LeadStatus{
		{Name: "New", Color: ColorSky},
		{Name: "Meeting", Color: ColorIndigo},
		{Name: "Qualified", Color: ColorGreen},
		{Name: "Junk", Color: ColorSlate},
	}
}
