package services

import (
	"regexp"
	"strings"
)

var BannedWords = []string{
	"fuck", "fucking", "fucker", "shit", "shitty", "bullshit",
	"asshole", "bastard", "bitch", "cunt",
	"nigger", "nigga", "chink", "spic", "kike", "faggot", "fag",
	"retard", "retarded", "tranny",
	"porn", "porno", "nude", "nudes",
	"scam", "scammer", "phishing", "malware",
}

const (
	ReasonInappropriateLanguage = "inappropriate_language"
	ReasonSpam                  = "spam_detected"
	ReasonExcessiveCaps         = "excessive_caps"
)

var rejectionMessages = map[string]string{
	ReasonInappropriateLanguage: "Your text contains inappropriate language.",
	ReasonSpam:                  "Your text appears to be spam.",
	ReasonExcessiveCaps:         "Please avoid using excessive capital letters.",
}

// ContentFilter screens user-written text on posts, comments, notes and
// chat. Links are allowed since posts share study resources. The patterns
// are compiled once and read-only afterwards, so one filter is safe to
// share between goroutines.
type ContentFilter struct {
	bannedWordRegexps   []*regexp.Regexp
	repeatedCharPattern *regexp.Regexp
	allCapsPattern      *regexp.Regexp
}

func NewContentFilter() *ContentFilter {
	f := &ContentFilter{
		bannedWordRegexps: make([]*regexp.Regexp, 0, len(BannedWords)),
		// Go's RE2 has no backreferences, so runs are spelled out per letter.
		repeatedCharPattern: regexp.MustCompile(`(?i)(a{6,}|b{6,}|c{6,}|d{6,}|e{6,}|f{6,}|g{6,}|h{6,}|i{6,}|j{6,}|k{6,}|l{6,}|m{6,}|n{6,}|o{6,}|p{6,}|q{6,}|r{6,}|s{6,}|t{6,}|u{6,}|v{6,}|w{6,}|x{6,}|y{6,}|z{6,})`),
		allCapsPattern:      regexp.MustCompile(`\b[A-Z]{5,}\b`),
	}
	for _, word := range BannedWords {
		re, err := regexp.Compile(`(?i)\b` + regexp.QuoteMeta(word) + `\b`)
		if err == nil {
			f.bannedWordRegexps = append(f.bannedWordRegexps, re)
		}
	}
	return f
}

// Check reports whether text is acceptable and, if not, why.
func (f *ContentFilter) Check(text string) (bool, string) {
	if strings.TrimSpace(text) == "" {
		return true, ""
	}
	for _, re := range f.bannedWordRegexps {
		if re.MatchString(text) {
			return false, ReasonInappropriateLanguage
		}
	}
	if f.repeatedCharPattern.MatchString(text) {
		return false, ReasonSpam
	}
	if len(f.allCapsPattern.FindAllString(text, -1)) > 3 {
		return false, ReasonExcessiveCaps
	}
	return true, ""
}

// Validate checks every text and returns an invalid_input error for the
// first one rejected.
func (f *ContentFilter) Validate(texts ...string) error {
	for _, text := range texts {
		if ok, reason := f.Check(text); !ok {
			return invalidInput(RejectionMessage(reason))
		}
	}
	return nil
}

func RejectionMessage(reason string) string {
	if msg, ok := rejectionMessages[reason]; ok {
		return msg
	}
	return "Your text does not meet our content guidelines."
}
