package xlsx

import (
	"math"
	"strings"
	"time"
)

// isDateFormatID reports whether a built-in number format displays dates
// or times.
func isDateFormatID(id int) bool {
	switch {
	case id >= 14 && id <= 22:
		return true
	case id >= 27 && id <= 36: // East Asian date formats
		return true
	case id >= 45 && id <= 47:
		return true
	case id >= 50 && id <= 58:
		return true
	}
	return false
}

// isDateFormatCode reports whether a custom number format code displays
// dates or times. Only the first section counts; quoted literals, escaped
// characters and bracketed modifiers other than elapsed time are ignored.
func isDateFormatCode(code string) bool {
	var tokens strings.Builder
	inQuote := false

scan:
	for i := 0; i < len(code); i++ {
		c := code[i]
		switch {
		case inQuote:
			if c == '"' {
				inQuote = false
			}
		case c == '"':
			inQuote = true
		case c == '\\', c == '_', c == '*':
			i++ // skip the escaped, padded or fill character
		case c == '[':
			end := strings.IndexByte(code[i:], ']')
			if end < 0 {
				break scan
			}
			if isElapsedTime(code[i+1 : i+end]) {
				return true
			}
			i += end
		case c == ';':
			break scan
		default:
			tokens.WriteByte(c)
		}
	}

	s := strings.ToLower(tokens.String())
	if strings.Contains(s, "general") {
		return false
	}
	return strings.ContainsAny(s, "dmyhs")
}

// isElapsedTime reports whether a bracketed modifier is an elapsed time
// token such as [h] or [mm].
func isElapsedTime(tok string) bool {
	if tok == "" {
		return false
	}
	tok = strings.ToLower(tok)
	for _, r := range tok {
		if r != rune(tok[0]) {
			return false
		}
	}
	return tok[0] == 'h' || tok[0] == 'm' || tok[0] == 's'
}

// serialToTime converts a spreadsheet date serial number to a UTC time,
// rounded to the millisecond.
func serialToTime(serial float64, date1904 bool) time.Time {
	var base time.Time
	switch {
	case date1904:
		base = time.Date(1904, 1, 1, 0, 0, 0, 0, time.UTC)
	case serial < 61:
		// Serials before the fictitious 29 February 1900 count from 31 December 1899
		base = time.Date(1899, 12, 31, 0, 0, 0, 0, time.UTC)
	default:
		base = time.Date(1899, 12, 30, 0, 0, 0, 0, time.UTC)
	}

	days := math.Floor(serial)
	ms := math.Round((serial - days) * 86400000)
	return base.AddDate(0, 0, int(days)).Add(time.Duration(ms) * time.Millisecond)
}
