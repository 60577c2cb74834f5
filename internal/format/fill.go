package format

import (
	"fmt"
	"strings"
)

// Fill replaces every "{slot}" in template with fmt.Sprint(values[slot]).
// A placeholder without a value, an unterminated placeholder or a lone "}" is
// an error.
func Fill(template string, values map[string]any) (string, error) {
	var b strings.Builder
	b.Grow(len(template))

	for i := 0; i < len(template); {
		c := template[i]
		switch c {
		case '{':
			if strings.HasPrefix(template[i:], "{{") {
				b.WriteByte('{')
				i += 2
				continue
			}
			end := strings.IndexByte(template[i+1:], '}')
			if end < 0 {
				return "", fmt.Errorf("unterminated placeholder at offset %d", i)
			}
			slot := template[i+1 : i+1+end]
			if slot == "" {
				return "", fmt.Errorf("empty placeholder at offset %d", i)
			}
			if strings.ContainsAny(slot, "{:!") {
				return "", fmt.Errorf("unsupported placeholder %q at offset %d", slot, i)
			}
			v, ok := values[slot]
			if !ok {
				return "", fmt.Errorf("no value for slot %q", slot)
			}
			b.WriteString(fmt.Sprint(v))
			i += end + 2
		case '}':
			if !strings.HasPrefix(template[i:], "}}") {
				return "", fmt.Errorf("single '}' encountered at offset %d", i)
			}
			b.WriteByte('}')
			i += 2
		default:
			b.WriteByte(c)
			i++
		}
	}
	return b.String(), nil
}

// Escape doubles every brace in s so that Fill reproduces s literally.
func Escape(s string) string {
	return strings.NewReplacer("{", "{{", "}", "}}").Replace(s)
}

// Slots returns the slot names referenced by template in order of first use.
func Slots(template string) []string {
	var slots []string
	seen := make(map[string]struct{})
	for i := 0; i < len(template); i++ {
		if template[i] != '{' {
			continue
		}
		if strings.HasPrefix(template[i:], "{{") {
			i++
			continue
		}
		end := strings.IndexByte(template[i+1:], '}')
		if end < 0 {
			break
		}
		slot := template[i+1 : i+1+end]
		if _, ok := seen[slot]; !ok && slot != "" {
			seen[slot] = struct{}{}
			slots = append(slots, slot)
		}
		i += end + 1
	}
	return slots
}
