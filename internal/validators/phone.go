package validators

import "strings"

// IsPhoneValid aceita números no formato E.164 frouxo: dígitos com
// prefixo + opcional, entre 8 e 15 dígitos.
func IsPhoneValid(phone string) bool {
	p := strings.TrimSpace(phone)
	p = strings.TrimPrefix(p, "+")

	if len(p) < 8 || len(p) > 15 {
		return false
	}

	for _, r := range p {
		if r < '0' || r > '9' {
			return false
		}
	}

	return true
}
