package extract

import (
	"regexp"
	"strconv"
	"strings"
)

// Chat exports sometimes prefix lines with direction marks or a BOM.
const leadingNoise = `^[\s\x{200E}\x{200F}\x{FEFF}]*`

var (
	datePattern    = regexp.MustCompile(leadingNoise + `\[(\d{2})/(\d{2})(?:/(\d{4}))?`)
	headerPattern  = regexp.MustCompile(leadingNoise + `\[[^\]]*\]`)
	contentPattern = regexp.MustCompile(`:[\s\p{Zs}]*(.+?)[\s\p{Zs}]*-[\s\p{Zs}]*(\d+)`)
)

// DateToken is the bracketed date at the start of a chat line.
type DateToken struct {
	Day     int
	Month   int
	Year    int  // zero when HasYear is false
	HasYear bool // false for "[DD/MM" tokens
}

// Content is the "<category> - <amount>" payload of a chat message.
type Content struct {
	Category string
	Amount   int64
}

// MatchDate finds a "[DD/MM/YYYY" or "[DD/MM" token at the start of line.
// Anything after the token, such as a time of day, is ignored.
func MatchDate(line string) (DateToken, bool) {
	m := datePattern.FindStringSubmatch(line)
	if m == nil {
		return DateToken{}, false
	}

	day, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	if day < 1 || day > 31 || month < 1 || month > 12 {
		return DateToken{}, false
	}

	tok := DateToken{Day: day, Month: month}
	if m[3] != "" {
		tok.Year, _ = strconv.Atoi(m[3])
		tok.HasYear = true
	}
	return tok, true
}

// MatchContent finds a colon-delimited "<category>-<amount>" payload in the
// message body of line. The bracketed header, if any, is not searched so the
// colon in a time of day never starts a payload.
func MatchContent(line string) (Content, bool) {
	body := line
	if loc := headerPattern.FindStringIndex(line); loc != nil {
		body = line[loc[1]:]
	}

	m := contentPattern.FindStringSubmatch(body)
	if m == nil {
		return Content{}, false
	}

	category := strings.TrimSpace(m[1])
	if category == "" {
		return Content{}, false
	}

	amount, err := strconv.ParseInt(m[2], 10, 64)
	if err != nil {
		// Only reachable on int64 overflow.
		return Content{}, false
	}

	return Content{Category: category, Amount: amount}, true
}
