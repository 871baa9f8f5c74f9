package usecase

import (
	"encoding/json"
	"log"
	"sort"
	"strconv"
	"time"

	"github.com/xavierca1/green-crm/internal/entity"
)

type rawMeeting struct {
	Title     string `json:"title"`
	Attendee  string `json:"attendee"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// DecodeSnapshot converte a árvore crua do tenant no Snapshot tipado.
// Devolve nil quando o nó do tenant não existe (ex.: logo após o cadastro).
func DecodeSnapshot(tenantID string, raw any) *entity.Snapshot {
	data, ok := raw.(map[string]any)
	if !ok || data == nil {
		return nil
	}

	snap := &entity.Snapshot{
		TenantID:     tenantID,
		Leads:        decodeCollection[entity.Lead](data[colLeads], func(l *entity.Lead, id string) { l.ID = id }),
		Templates:    decodeCollection[entity.MessageTemplate](data[colTemplates], func(t *entity.MessageTemplate, id string) { t.ID = id }),
		Triggers:     decodeCollection[entity.Trigger](data[colTriggers], func(t *entity.Trigger, id string) { t.ID = id }),
		Flow:         decodeCollection[entity.FlowStep](data[colFlow], func(f *entity.FlowStep, id string) { f.ID = id }),
		LandingPages: decodeCollection[entity.LandingPage](data[colLandingPages], func(p *entity.LandingPage, id string) { p.ID = id }),
		Meetings:     decodeMeetings(data[colMeetings]),
		LeadStatuses: decodeList[entity.LeadStatus](data[colLeadStatuses]),
	}

	sort.SliceStable(snap.Leads, func(i, j int) bool {
		return snap.Leads[i].AddedAt().After(snap.Leads[j].AddedAt())
	})

	var admin entity.Admin
	if decodeValue(data[colAdminUser], &admin) {
		snap.AdminUser = &admin
	}
	var cfg entity.GreenApiConfig
	if decodeValue(data[colGreenApiConfig], &cfg) {
		snap.GreenApiConfig = &cfg
	}
	return snap
}

// entries lista os filhos de um mapa (ordenados pela chave) ou de uma lista (índice como chave).
func entries(raw any) ([]string, map[string]any) {
	children := make(map[string]any)
	switch n := raw.(type) {
	case map[string]any:
		for k, v := range n {
			if v != nil {
				children[k] = v
			}
		}
	case []any:
		for i, v := range n {
			if v != nil {
				children[strconv.Itoa(i)] = v
			}
		}
	}
	keys := make([]string, 0, len(children))
	for k := range children {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, children
}

func decodeCollection[T any](raw any, setID func(*T, string)) []T {
	keys, children := entries(raw)
	out := make([]T, 0, len(keys))
	for _, key := range keys {
		var item T
		if !decodeValue(children[key], &item) {
			log.Printf("⚠️ [Sync] Registro %s ignorado: formato inesperado", key)
			continue
		}
		setID(&item, key)
		out = append(out, item)
	}
	return out
}

func decodeList[T any](raw any) []T {
	keys, children := entries(raw)
	out := make([]T, 0, len(keys))
	if _, isList := raw.([]any); isList {
		sort.Slice(keys, func(i, j int) bool {
			a, _ := strconv.Atoi(keys[i])
			b, _ := strconv.Atoi(keys[j])
			return a < b
		})
	}
	for _, key := range keys {
		var item T
		if decodeValue(children[key], &item) {
			out = append(out, item)
		}
	}
	return out
}

func decodeMeetings(raw any) []entity.Meeting {
	keys, children := entries(raw)
	out := make([]entity.Meeting, 0, len(keys))
	for _, key := range keys {
		var m rawMeeting
		if !decodeValue(children[key], &m) {
			continue
		}
		out = append(out, entity.Meeting{
			ID:        key,
			Title:     m.Title,
			Attendee:  m.Attendee,
			StartTime: parseInstant(m.StartTime),
			EndTime:   parseInstant(m.EndTime),
		})
	}
	return out
}

// parseInstant devolve o zero time para datas inválidas; o agendador trata como "não vence".
func parseInstant(s string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

func decodeValue(raw any, dest any) bool {
	if raw == nil {
		return false
	}
	b, err := json.Marshal(raw)
	if err != nil {
		return false
	}
	return json.Unmarshal(b, dest) == nil
}

// record converte uma entidade para o formato gravado, sem o campo id (a chave já é o id).
func record(v any) map[string]any {
	b, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	var m map[string]any
	if json.Unmarshal(b, &m) != nil {
		return nil
	}
	delete(m, "id")
	return m
}
