package docstore

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

func splitPath(p string) []string {
	raw := strings.Split(p, "/")
	segs := make([]string, 0, len(raw))
	for _, s := range raw {
		if s = strings.TrimSpace(s); s != "" {
			segs = append(segs, s)
		}
	}
	return segs
}

// ValidSegment aceita só um segmento de caminho: não vazio, sem '/' e sem espaços nas pontas.
func ValidSegment(s string) error {
	if s == "" || s != strings.TrimSpace(s) || strings.Contains(s, "/") {
		return fmt.Errorf("%w: segmento %q", ErrInvalidPath, s)
	}
	return nil
}

func joinPath(parts ...string) string {
	var segs []string
	for _, p := range parts {
		segs = append(segs, splitPath(p)...)
	}
	return strings.Join(segs, "/")
}

// splitDocPath separa "users/abc/leads/x" em documento "users/abc" e caminho interno [leads x].
func splitDocPath(p string) (string, []string, error) {
	segs := splitPath(p)
	if len(segs) < 2 {
		return "", nil, fmt.Errorf("%w: %q", ErrInvalidPath, p)
	}
	return segs[0] + "/" + segs[1], segs[2:], nil
}

func decodeDoc(raw []byte) (any, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("documento corrompido: %w", err)
	}
	return doc, nil
}

func encodeDoc(doc any) ([]byte, error) {
	if doc == nil {
		return nil, nil
	}
	return json.Marshal(doc)
}

// normalize converte structs e slices tipados para a forma genérica do JSON,
// descartando mapas vazios como a árvore remota faz.
func normalize(v any) (any, error) {
	if v == nil {
		return nil, nil
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return prune(out), nil
}

func prune(v any) any {
	switch n := v.(type) {
	case map[string]any:
		for k, child := range n {
			if c := prune(child); c == nil {
				delete(n, k)
			} else {
				n[k] = c
			}
		}
		if len(n) == 0 {
			return nil
		}
		return n
	case []any:
		if len(n) == 0 {
			return nil
		}
		for i := range n {
			n[i] = prune(n[i])
		}
		return n
	}
	return v
}

func getIn(node any, segs []string) any {
	for _, seg := range segs {
		switch n := node.(type) {
		case map[string]any:
			node = n[seg]
		case []any:
			i, err := strconv.Atoi(seg)
			if err != nil || i < 0 || i >= len(n) {
				return nil
			}
			node = n[i]
		default:
			return nil
		}
	}
	return node
}

// setIn grava value no caminho e devolve a nova raiz. nil apaga e poda nós vazios.
func setIn(node any, segs []string, value any) any {
	if len(segs) == 0 {
		return value
	}

	var m map[string]any
	switch n := node.(type) {
	case map[string]any:
		m = n
	case []any:
		m = make(map[string]any, len(n))
		for i, child := range n {
			if child != nil {
				m[strconv.Itoa(i)] = child
			}
		}
	default:
		if value == nil {
			return node
		}
		m = make(map[string]any)
	}

	child := setIn(m[segs[0]], segs[1:], value)
	if child == nil {
		delete(m, segs[0])
	} else {
		m[segs[0]] = child
	}
	if len(m) == 0 {
		return nil
	}
	return m
}
