// Package ics generates iCalendar documents for booked appointments so
// customers can add them to their own calendar application.
package ics

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/nursultantorobaev/selfhub-services/internal/models"
)

// ErrExportFailed is returned when an appointment cannot be turned into a
// calendar document (malformed date, end before start).
var ErrExportFailed = errors.New("calendar export failed")

// productID identifies the generator inside produced documents.
const productID = "-//SelfHub//Booking//EN"

// stampLayout is the iCalendar floating local time layout: no timezone and
// no UTC suffix, so the consuming calendar interprets the value in its own
// local zone. Kept deliberately for compatibility with the existing clients.
const stampLayout = "20060102T150405"

// Event holds the fields of a single appointment calendar entry.
// Empty strings mean the field was not supplied and its line is omitted.
type Event struct {
	Title           string    // Event summary line.
	Description     string    // Free-text description, optional.
	Start           time.Time // Event start, floating local time.
	End             time.Time // Event end, must not precede Start.
	Location        string    // Event location, optional.
	BusinessName    string    // Business name, prefixed to the location when both are present.
	BusinessAddress string    // Business street address, used as location fallback.
}

// Generate serializes the event into an iCalendar text document with CRLF
// line endings: one VEVENT carrying a unique identifier, a CONFIRMED status
// and a 15-minute display reminder. Reserved characters in free-text fields
// are escaped per iCalendar TEXT rules. Lines whose content is absent are
// omitted entirely.
func Generate(event Event) (string, error) {
	if event.End.Before(event.Start) {
		return "", fmt.Errorf("%w: event ends before it starts", ErrExportFailed)
	}

	now := time.Now()
	lines := []string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:" + productID,
		"CALSCALE:GREGORIAN",
		"METHOD:PUBLISH",
		"BEGIN:VEVENT",
		"UID:" + newUID(now),
		"DTSTAMP:" + now.Format(stampLayout),
		"DTSTART:" + event.Start.Format(stampLayout),
		"DTEND:" + event.End.Format(stampLayout),
		"SUMMARY:" + escapeText(event.Title),
	}

	if event.Description != "" {
		lines = append(lines, "DESCRIPTION:"+escapeText(event.Description))
	}
	if location := event.location(); location != "" {
		lines = append(lines, "LOCATION:"+escapeText(location))
	}

	lines = append(lines,
		"STATUS:CONFIRMED",
		"SEQUENCE:0",
		"BEGIN:VALARM",
		"TRIGGER:-PT15M",
		"ACTION:DISPLAY",
		"DESCRIPTION:"+escapeText("Reminder: "+event.Title),
		"END:VALARM",
		"END:VEVENT",
		"END:VCALENDAR",
	)

	return strings.Join(lines, "\r\n") + "\r\n", nil
}

// location assembles the LOCATION content: the explicit location wins,
// otherwise the business address, with the business name prefixed when both
// name and a place are present.
func (e Event) location() string {
	place := e.Location
	if place == "" {
		place = e.BusinessAddress
	}

	switch {
	case e.BusinessName != "" && place != "":
		return e.BusinessName + ", " + place
	case place != "":
		return place
	default:
		return e.BusinessName
	}
}

// BuildFromAppointment derives a calendar event from an appointment record.
// Start comes from the record's date and time pair, end is start plus the
// service duration (60 minutes when unspecified). The title falls back to
// "Appointment at {business}" when no service name is present.
func BuildFromAppointment(appt models.Appointment) (Event, error) {
	start, err := time.ParseInLocation("2006-01-02 15:04", appt.Date+" "+appt.StartTime, time.Local)
	if err != nil {
		return Event{}, fmt.Errorf("%w: parse start: %w", ErrExportFailed, err)
	}

	duration := appt.DurationMinutes
	if duration <= 0 {
		duration = 60
	}

	title := "Appointment at " + appt.BusinessName
	if appt.ServiceName != "" {
		title = appt.ServiceName + " at " + appt.BusinessName
	}

	return Event{
		Title:        title,
		Description:  appt.Notes,
		Start:        start,
		End:          start.Add(time.Duration(duration) * time.Minute),
		Location:     joinNonEmpty(appt.BusinessAddress, appt.BusinessCity, appt.BusinessState, appt.BusinessZip),
		BusinessName: appt.BusinessName,
	}, nil
}

// Filename derives a filesystem-safe attachment name from the service name,
// business name and date: lower-cased, with every run of characters outside
// [a-z0-9-] replaced by a single hyphen.
func Filename(serviceName, businessName string, date time.Time) string {
	parts := joinNonEmpty(serviceName, businessName, date.Format("2006-01-02"))

	var builder strings.Builder
	pendingHyphen := false
	for _, r := range strings.ToLower(parts) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-' {
			if pendingHyphen && builder.Len() > 0 {
				builder.WriteByte('-')
			}
			pendingHyphen = false
			builder.WriteRune(r)
			continue
		}
		pendingHyphen = true
	}

	return builder.String() + ".ics"
}

// escapeText escapes reserved characters per iCalendar TEXT rules:
// backslash, semicolon, comma and newline.
func escapeText(text string) string {
	replacer := strings.NewReplacer(
		`\`, `\\`,
		";", `\;`,
		",", `\,`,
		"\r\n", `\n`,
		"\n", `\n`,
	)

	return replacer.Replace(text)
}

// newUID produces an opaque identifier unique per generation call.
func newUID(now time.Time) string {
	return fmt.Sprintf("%d-%s@selfhub.app", now.UnixMilli(), uuid.NewString()[:8])
}

// joinNonEmpty joins the non-empty parts with ", ".
func joinNonEmpty(parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, part := range parts {
		if part != "" {
			kept = append(kept, part)
		}
	}

	return strings.Join(kept, ", ")
}
