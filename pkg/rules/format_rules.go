package rules

import (
	"net"
	"net/mail"
	"net/url"
	"regexp"
	"strings"
)

var (
	// E.164 with an optional leading plus.
	phoneRegex = regexp.MustCompile(`^\+?[1-9]\d{1,14}$`)

	alphanumericRegex = regexp.MustCompile(`^[a-zA-Z0-9]+$`)
)

func email(value any) any {
	s, _ := value.(string)
	if !isEmail(s) {
		return failure("validation.email", "must be a valid email address")
	}
	return nil
}

func isEmail(value string) bool {
	if strings.TrimSpace(value) == "" {
		return false
	}

	addr, err := mail.ParseAddress(value)
	if err != nil {
		return false
	}

	// Display names are accepted by the parser but not here.
	if addr.Address != value {
		return false
	}

	localPart, domain, ok := strings.Cut(addr.Address, "@")
	if !ok || localPart == "" {
		return false
	}

	if !strings.Contains(domain, ".") || strings.HasPrefix(domain, ".") || strings.HasSuffix(domain, ".") {
		return false
	}
	for part := range strings.SplitSeq(domain, ".") {
		if part == "" {
			return false
		}
	}
	return true
}

func validURL(value any) any {
	s, _ := value.(string)
	if strings.TrimSpace(s) == "" {
		return failure("validation.url", "must be a valid URL")
	}

	u, err := url.ParseRequestURI(s)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return failure("validation.url", "must be a valid URL")
	}
	return nil
}

func phone(value any) any {
	s, _ := value.(string)
	cleaned := strings.ReplaceAll(strings.ReplaceAll(s, " ", ""), "-", "")
	if len(cleaned) < 7 || !phoneRegex.MatchString(cleaned) {
		return failure("validation.phone", "must be a valid phone number in international format")
	}
	return nil
}

func ip(value any) any {
	s, _ := value.(string)
	if strings.TrimSpace(s) == "" || net.ParseIP(s) == nil {
		return failure("validation.ip", "must be a valid IP address")
	}
	return nil
}

func alphanumeric(value any) any {
	s, _ := value.(string)
	if !alphanumericRegex.MatchString(s) {
		return failure("validation.alphanumeric", "must contain only letters and numbers")
	}
	return nil
}
