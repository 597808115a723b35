// Package bot turns chat text into ledger operations and replies. It is
// transport-agnostic: the AMQP consumer (or a test) hands it one message
// and gets back a list of replies to send.
package bot

import (
	"regexp"
	"strings"
)

type Kind int

const (
	// KindNone marks text that is not a command at all; the bot stays quiet.
	KindNone Kind = iota
	KindHelp
	KindAdd
	KindSet
	KindDelete
	KindQuery
	KindUsage // an overtime command that matched no known form
	KindTranslate
	KindCityCode
)

func (k Kind) String() string {
	switch k {
	case KindHelp:
		return "help"
	case KindAdd:
		return "add"
	case KindSet:
		return "set"
	case KindDelete:
		return "delete"
	case KindQuery:
		return "query"
	case KindUsage:
		return "usage"
	case KindTranslate:
		return "translate"
	case KindCityCode:
		return "citycode"
	default:
		return "none"
	}
}

// Command is the raw parse result. Hours and date stay as strings here;
// the handlers run them through core's parsers so that validation errors
// turn into user-facing replies in one place.
type Command struct {
	Kind     Kind
	Hours    string
	Category string
	Date     string
	Arg      string // word for fy, city name for query<name>
}

var (
	helpRe       = regexp.MustCompile(`(?i)^overtime\s+help$`)
	addDefaultRe = regexp.MustCompile(`(?i)^overtime\s+(\d+(?:[.,]\d{1,2})?)$`)
	addTypedRe   = regexp.MustCompile(`(?i)^overtime\s+(G[1-3])\s+(\d+(?:[.,]\d{1,2})?)$`)
	setTypedRe   = regexp.MustCompile(`(?i)^overtime\s+set\s+(G[1-3])\s+(\d{6})\s+(\d+(?:[.,]\d{1,2})?)$`)
	setPlainRe   = regexp.MustCompile(`(?i)^overtime\s+set\s+(\d{6})\s+(\d+(?:[.,]\d{1,2})?)$`)
	deleteRe     = regexp.MustCompile(`(?i)^overtime\s+del(?:ete)?\s+(\d{6})$`)
	queryRe      = regexp.MustCompile(`(?i)^overtime\s+query$`)
	overtimeRe   = regexp.MustCompile(`(?i)^overtime\b`)
	translateRe  = regexp.MustCompile(`(?i)^fy\s*(\S.*)$`)
	cityCodeRe   = regexp.MustCompile(`(?i)^query\s*(\S.*)$`)
)

// Parse classifies one trimmed chat message. The second return value is
// false for plain conversation the bot should ignore.
func Parse(text string) (Command, bool) {
	text = strings.TrimSpace(text)

	switch {
	case helpRe.MatchString(text):
		return Command{Kind: KindHelp}, true
	case queryRe.MatchString(text):
		return Command{Kind: KindQuery}, true
	}

	if m := addTypedRe.FindStringSubmatch(text); m != nil {
		return Command{Kind: KindAdd, Category: m[1], Hours: m[2]}, true
	}
	if m := addDefaultRe.FindStringSubmatch(text); m != nil {
		return Command{Kind: KindAdd, Hours: m[1]}, true
	}
	if m := setTypedRe.FindStringSubmatch(text); m != nil {
		return Command{Kind: KindSet, Category: m[1], Date: m[2], Hours: m[3]}, true
	}
	if m := setPlainRe.FindStringSubmatch(text); m != nil {
		return Command{Kind: KindSet, Date: m[1], Hours: m[2]}, true
	}
	if m := deleteRe.FindStringSubmatch(text); m != nil {
		return Command{Kind: KindDelete, Date: m[1]}, true
	}
	if overtimeRe.MatchString(text) {
		return Command{Kind: KindUsage}, true
	}
	if m := translateRe.FindStringSubmatch(text); m != nil {
		return Command{Kind: KindTranslate, Arg: strings.TrimSpace(m[1])}, true
	}
	if m := cityCodeRe.FindStringSubmatch(text); m != nil {
		return Command{Kind: KindCityCode, Arg: strings.TrimSpace(m[1])}, true
	}

	return Command{Kind: KindNone}, false
}
