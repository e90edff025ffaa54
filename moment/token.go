package moment

import (
	"regexp"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/pgaskin/chrono/locale"
)

type tokenKind int

const (
	tokLiteral tokenKind = iota

	tokMonth            // M
	tokMonthOrdinal     // Mo
	tokMonth2           // MM
	tokMonthShort       // MMM
	tokMonthLong        // MMMM
	tokQuarter          // Q
	tokQuarterOrdinal   // Qo
	tokDate             // D
	tokDateOrdinal      // Do
	tokDate2            // DD
	tokDayOfYear        // DDD
	tokDayOfYearOrdinal // DDDo
	tokDayOfYear3       // DDDD
	tokDay              // d
	tokDayOrdinal       // do
	tokDayMin           // dd
	tokDayShort         // ddd
	tokDayLong          // dddd
	tokWeekday          // e
	tokISOWeekday       // E
	tokWeek             // w
	tokWeekOrdinal      // wo
	tokWeek2            // ww
	tokISOWeek          // W
	tokISOWeekOrdinal   // Wo
	tokISOWeek2         // WW
	tokYear             // Y
	tokYear2            // YY
	tokYear4            // YYYY
	tokYear5            // YYYYY
	tokYear6            // YYYYYY
	tokWeekYear2        // gg
	tokWeekYear4        // gggg
	tokWeekYear5        // ggggg
	tokISOWeekYear2     // GG
	tokISOWeekYear4     // GGGG
	tokISOWeekYear5     // GGGGG
	tokMeridiemLower    // a
	tokMeridiem         // A
	tokHour             // H
	tokHour2            // HH
	tokHour12           // h
	tokHour12Pad        // hh
	tokHour24           // k
	tokHour24Pad        // kk
	tokHmm              // Hmm
	tokHmmss            // Hmmss
	tokhmm              // hmm
	tokhmmss            // hmmss
	tokMinute           // m
	tokMinute2          // mm
	tokSecond           // s
	tokSecond2          // ss
	tokFraction         // S to SSSSSSSSS
	tokZoneAbbr         // z
	tokZoneName         // zz
	tokOffset           // Z
	tokOffsetBasic      // ZZ
	tokUnix             // X
	tokUnixMilli        // x
)

var tokenKinds = map[string]tokenKind{
	"M": tokMonth, "Mo": tokMonthOrdinal, "MM": tokMonth2, "MMM": tokMonthShort, "MMMM": tokMonthLong,
	"Q": tokQuarter, "Qo": tokQuarterOrdinal,
	"D": tokDate, "Do": tokDateOrdinal, "DD": tokDate2,
	"DDD": tokDayOfYear, "DDDo": tokDayOfYearOrdinal, "DDDD": tokDayOfYear3,
	"d": tokDay, "do": tokDayOrdinal, "dd": tokDayMin, "ddd": tokDayShort, "dddd": tokDayLong,
	"e": tokWeekday, "E": tokISOWeekday,
	"w": tokWeek, "wo": tokWeekOrdinal, "ww": tokWeek2,
	"W": tokISOWeek, "Wo": tokISOWeekOrdinal, "WW": tokISOWeek2,
	"Y": tokYear, "YY": tokYear2, "YYYY": tokYear4, "YYYYY": tokYear5, "YYYYYY": tokYear6,
	"gg": tokWeekYear2, "gggg": tokWeekYear4, "ggggg": tokWeekYear5,
	"GG": tokISOWeekYear2, "GGGG": tokISOWeekYear4, "GGGGG": tokISOWeekYear5,
	"a": tokMeridiemLower, "A": tokMeridiem,
	"H": tokHour, "HH": tokHour2, "h": tokHour12, "hh": tokHour12Pad, "k": tokHour24, "kk": tokHour24Pad,
	"Hmm": tokHmm, "Hmmss": tokHmmss, "hmm": tokhmm, "hmmss": tokhmmss,
	"m": tokMinute, "mm": tokMinute2, "s": tokSecond, "ss": tokSecond2,
	"z": tokZoneAbbr, "zz": tokZoneName, "Z": tokOffset, "ZZ": tokOffsetBasic,
	"X": tokUnix, "x": tokUnixMilli,
}

// token is a compiled format token. For literals, text is the literal text.
// For fractions, n is the number of digits.
type token struct {
	kind tokenKind
	text string
	n    int
}

var (
	formattingTokens      = regexp.MustCompile(`(?s)\[[^\[]*\]|\\?(?:[Hh]mm(?:ss)?|Mo|MM?M?M?|Do|DDDo|DD?D?D?|ddd?d?|do?|w[ow]?|W[oW]?|Qo?|YYYYYY|YYYYY|YYYY|YY|gg(?:ggg?)?|GG(?:GGG?)?|e|E|a|A|hh?|HH?|kk?|mm?|ss?|S{1,9}|x|X|zz?|ZZ?|.)`)
	localFormattingTokens = regexp.MustCompile(`(?s)\[[^\[]*\]|\\?(?:LTS|LT|LL?L?L?|l{1,4})`)
)

var tokenCache = func() *lru.Cache[string, []token] {
	c, err := lru.New[string, []token](512)
	if err != nil {
		panic(err)
	}
	return c
}()

// expandFormat replaces long date format tokens (LT, LTS, L, LL, LLL, LLLL
// and the lowercase variants) with the locale's templates. Templates may
// contain other long date format tokens, so this is repeated a few times.
func expandFormat(format string, l *locale.Locale) string {
	for range 6 {
		changed := false
		format = localFormattingTokens.ReplaceAllStringFunc(format, func(s string) string {
			if s[0] == '[' || s[0] == '\\' {
				return s
			}
			if v, ok := l.LongDateFormat(s); ok {
				changed = true
				return v
			}
			return s
		})
		if !changed {
			break
		}
	}
	return format
}

// compileFormat splits an expanded format into tokens.
func compileFormat(format string) []token {
	if toks, ok := tokenCache.Get(format); ok {
		return toks
	}
	var toks []token
	for _, s := range formattingTokens.FindAllString(format, -1) {
		if k, ok := tokenKinds[s]; ok {
			toks = append(toks, token{kind: k, text: s})
			continue
		}
		if s[0] == 'S' {
			toks = append(toks, token{kind: tokFraction, text: s, n: len(s)})
			continue
		}
		toks = append(toks, token{kind: tokLiteral, text: literalText(s)})
	}
	tokenCache.Add(format, toks)
	return toks
}

// literalText removes the brackets around bracketed text, or the escaping
// backslashes from anything else.
func literalText(s string) string {
	if len(s) >= 2 && s[0] == '[' {
		return strings.TrimSuffix(s[1:], "]")
	}
	return strings.ReplaceAll(s, `\`, "")
}
