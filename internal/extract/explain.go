package extract

// Reason says why a line did or did not yield a transaction.
type Reason int

const (
	ReasonMatched Reason = iota
	ReasonNoDate
	ReasonNoContent
	ReasonNoDateOrContent
)

func (r Reason) String() string {
	switch r {
	case ReasonMatched:
		return "matched"
	case ReasonNoDate:
		return "no date"
	case ReasonNoContent:
		return "no content"
	case ReasonNoDateOrContent:
		return "no date or content"
	default:
		return "unknown"
	}
}

// LineResult is the outcome of running both matchers on one line.
type LineResult struct {
	Line    string
	Reason  Reason
	Date    DateToken // valid when the date matcher succeeded
	Content Content   // valid when the content matcher succeeded
}

// Explain runs both matchers on line independently and combines them.
func Explain(line string) LineResult {
	date, dateOK := MatchDate(line)
	content, contentOK := MatchContent(line)

	res := LineResult{Line: line, Date: date, Content: content}
	switch {
	case dateOK && contentOK:
		res.Reason = ReasonMatched
	case contentOK:
		res.Reason = ReasonNoDate
	case dateOK:
		res.Reason = ReasonNoContent
	default:
		res.Reason = ReasonNoDateOrContent
	}
	return res
}
