package vcard

import (
	"strings"

	"github.com/conectlink/conectlink-backend/pkg/db/models"
)

// escapeText applies the vCard 3.0 text escaping rules.
func escapeText(s string) string {
	r := strings.NewReplacer(
		"\\", "\\\\",
		";", "\\;",
		",", "\\,",
		"\r\n", "\\n",
		"\n", "\\n",
	)
	return r.Replace(s)
}

// Render serializes the settings into a vCard 3.0 document with CRLF line
// endings. Empty fields are omitted.
func Render(s *models.VCardSetting) string {
	var b strings.Builder
	writeLine := func(line string) {
		b.WriteString(line)
		b.WriteString("\r\n")
	}

	writeLine("BEGIN:VCARD")
	writeLine("VERSION:3.0")
	writeLine("N:" + escapeText(s.LastName) + ";" + escapeText(s.FirstName) + ";;;")

	fullName := strings.TrimSpace(s.FirstName + " " + s.LastName)
	if fullName != "" {
		writeLine("FN:" + escapeText(fullName))
	}
	if s.Organization != "" {
		writeLine("ORG:" + escapeText(s.Organization))
	}
	if s.JobTitle != "" {
		writeLine("TITLE:" + escapeText(s.JobTitle))
	}
	if s.Phone != "" {
		writeLine("TEL;TYPE=CELL:" + escapeText(s.Phone))
	}
	if s.PhoneWork != "" {
		writeLine("TEL;TYPE=WORK:" + escapeText(s.PhoneWork))
	}
	if s.Email != "" {
		writeLine("EMAIL;TYPE=INTERNET:" + escapeText(s.Email))
	}
	if s.Website != "" {
		writeLine("URL:" + escapeText(s.Website))
	}
	if s.Street != "" || s.City != "" || s.State != "" || s.PostalCode != "" || s.Country != "" {
		writeLine("ADR;TYPE=WORK:;;" +
			escapeText(s.Street) + ";" +
			escapeText(s.City) + ";" +
			escapeText(s.State) + ";" +
			escapeText(s.PostalCode) + ";" +
			escapeText(s.Country))
	}
	if s.Note != "" {
		writeLine("NOTE:" + escapeText(s.Note))
	}
	writeLine("END:VCARD")
	return b.String()
}
