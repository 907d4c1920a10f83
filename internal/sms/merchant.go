package sms

import (
	"regexp"
	"strings"
)

var merchantPatterns = []*regexp.Regexp{
	// at SWIGGY on 08-Feb-26
	regexp.MustCompile(`(?i)(?:at|to|@)\s+([A-Z][A-Za-z0-9\s&'-]+?)(?:\s+on|\s+for|\s+Rs|\.|\s+card|$)`),
	// paid to Ramesh Kumar
	regexp.MustCompile(`(?i)(?:paid to|sent to)\s+([A-Za-z0-9\s&'-]+)`),
}

// ExtractMerchant returns the counterparty named in body, or "" if none.
func ExtractMerchant(body string) string {
	for _, re := range merchantPatterns {
		m := re.FindStringSubmatch(body)
		if m == nil {
			continue
		}
		if name := strings.TrimSpace(m[1]); name != "" {
			return name
		}
	}
	return ""
}
