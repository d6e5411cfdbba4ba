package validators

import (
	"net"
	"strings"
)

// IsEmailDomainValid checa se o domínio do e-mail resolve (MX ou A).
// E-mail é opcional no cadastro; string vazia passa direto.
func IsEmailDomainValid(email string) bool {
	if strings.TrimSpace(email) == "" {
		return true
	}

	at := strings.LastIndex(email, "@")
	if at < 0 || at == len(email)-1 {
		return false
	}

	domain := strings.ToLower(email[at+1:])

	if mx, err := net.LookupMX(domain); err == nil && len(mx) > 0 {
		return true
	}

	if ips, err := net.LookupIP(domain); err == nil && len(ips) > 0 {
		return true
	}

	return false
}
