package entity

// Snapshot é a cópia completa do tenant num instante. Publicado uma vez, nunca é alterado.
type Snapshot struct {
	TenantID       string            `json:"tenantId"`
	Leads          []Lead            `json:"leads"`
	Templates      []MessageTemplate `json:"templates"`
	Triggers       []Trigger         `json:"triggers"`
	Flow           []FlowStep        `json:"flow"`
	LandingPages   []LandingPage     `json:"landingPages"`
	Meetings       []Meeting         `json:"meetings"`
	LeadStatuses   []LeadStatus      `json:"leadStatuses"`
	AdminUser      *Admin            `json:"adminUser"`
	GreenApiConfig *GreenApiConfig   `json:"greenApiConfig"`
}

func (s *Snapshot) FindLead(id string) (Lead, bool) {
	for _, l := range s.Leads {
		if l.ID == id {
			return l, true
		}
	}
	return Lead{}, false
}

// FindLeadByName compara por igualdade exata; é o único vínculo reunião→lead.
func (s *Snapshot) FindLeadByName(name string) (Lead, bool) {
	for _, l := range s.Leads {
		if l.Name == name {
			return l, true
		}
	}
	return Lead{}, false
}

func (s *Snapshot) FindTemplate(id string) (MessageTemplate, bool) {
	for _, t := range s.Templates {
		if t.ID == id {
			return t, true
		}
	}
	return MessageTemplate{}, false
}

func (s *Snapshot) EnabledTriggers() []Trigger {
	var out []Trigger
	for _, t := range s.Triggers {
		if t.Enabled {
			out = append(out, t)
		}
	}
	return out
}

// FirstEnabled devolve o primeiro trigger habilitado do tipo pedido.
func (s *Snapshot) FirstEnabled(kind TriggerType) (Trigger, bool) {
	for _, t := range s.Triggers {
		if t.Enabled && t.Type == kind {
			return t, true
		}
	}
	return Trigger{}, false
}
