package wenku

import (
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/text/width"
)

// Date is a possibly partial calendar date. Zero fields are unknown.
type Date struct {
	Year  int `json:"year,omitempty"`
	Month int `json:"month,omitempty"`
	Day   int `json:"day,omitempty"`
}

// String formats the date as YYYY-MM-DD with unknown fields as zeros.
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// DateList is the parsed form of a date string.
type DateList struct {
	Dates       []Date `json:"dates"`
	IsRangeDate bool   `json:"is_range_date"`
}

// DateOptions control ExtractDatesWithOptions.
type DateOptions struct {
	// RemoveUnknowns deletes every character that cannot be part of a date
	// before matching.
	RemoveUnknowns bool
}

const (
	dateTo     = `\-至—`
	dateSep    = `,，、`
	dateDigits = `\d一二三四五六七八九○O〇十廿卅卌`
)

// Date shapes, in matching order. Ranges are tried before lists and single
// dates; Arabic before Chinese numerals.
var (
	// 1911.10.10-1912.12.12, 1911.10.10-12.12, 1911.10.10-12, 1911.10-12
	arabicRange = regexp.MustCompile(`\d+\.\d+(\.\d+)?[` + dateTo + `]+\d+(\.\d+)?(\.\d+)?`)
	// 一九三二年十月二十日至一九三三年十月二十日, 一九三二年十月至十二月
	chineseRange = regexp.MustCompile(`[` + dateDigits + `]+年[` + dateDigits + `]+月([` + dateDigits + `]+日)?[` + dateTo + `]+([` + dateDigits + `]+年)?([` + dateDigits + `]+月)?([` + dateDigits + `]+日)?`)
	// 1911.10.10,11,12, 1911.10.10,11.12,12.23
	arabicList = regexp.MustCompile(`\d+\.\d+(\.\d+)?[` + dateSep + `]+(\d+(\.\d)?[` + dateSep + `]?)+`)
	// 1911.10.10
	arabicDate = regexp.MustCompile(`\d+\.\d+(\.\d+)?[^` + dateSep + dateTo + `]+`)
	// 一九三二年十月二十日，二十一日，二十二日
	chineseList = regexp.MustCompile(`[` + dateDigits + `]+年[` + dateDigits + `]+月([` + dateDigits + `]+日)?[` + dateSep + `]+([` + dateDigits + `]+[月日]+([` + dateDigits + `][月日])?[` + dateSep + `]?)+`)
	// 一九三二年十月二十日, 一九三二年十月, 一九三二年
	chineseDate = regexp.MustCompile(`[` + dateDigits + `]+年([` + dateDigits + `]+月)?([` + dateDigits + `]+日)?`)

	unknownDateChars = regexp.MustCompile(`[^` + dateDigits + dateTo + dateSep + `年月日.]`)
	dateFieldSep     = regexp.MustCompile(`[.年月日]`)
	dateToChars      = regexp.MustCompile(`[` + dateTo + `]`)
	dateSepChars     = regexp.MustCompile(`[` + dateSep + `]`)
	dateZeros        = regexp.MustCompile(`[O○〇]`)
)

// dateReplacements rewrite Chinese numerals to Arabic digits. Order
// matters: compound numerals go before single digits, and the anchored
// rules only apply at the start of the matched text.
var dateReplacements = []struct {
	re  *regexp.Regexp
	old string
	new string
}{
	{old: "卌", new: "四十"},
	{old: "卅", new: "三十"},
	{old: "廿", new: "二十"},
	{old: "——", new: "-"},
	{re: dateToChars, new: "-"},
	{re: dateSepChars, new: ","},
	{re: regexp.MustCompile(`^十年`), new: "10年"},
	{re: regexp.MustCompile(`^一十一`), new: "11"},
	{re: regexp.MustCompile(`^一十二`), new: "12"},
	{re: regexp.MustCompile(`^一十三`), new: "13"},
	{re: regexp.MustCompile(`^一十四`), new: "14"},
	{re: regexp.MustCompile(`^一十五`), new: "15"},
	{re: regexp.MustCompile(`^一十六`), new: "16"},
	{re: regexp.MustCompile(`^一十七`), new: "17"},
	{re: regexp.MustCompile(`^一十八`), new: "18"},
	{re: regexp.MustCompile(`^一十九`), new: "19"},
	{re: regexp.MustCompile(`^二十年`), new: "20年"},
	{re: regexp.MustCompile(`^三十年`), new: "30年"},
	{re: regexp.MustCompile(`^四十年`), new: "40年"},
	{re: regexp.MustCompile(`^五十年`), new: "50年"},
	{re: regexp.MustCompile(`^六十年`), new: "60年"},
	{re: regexp.MustCompile(`^七十年`), new: "70年"},
	{re: regexp.MustCompile(`^八十年`), new: "80年"},
	{re: regexp.MustCompile(`^九十年`), new: "90年"},
	{old: "十月", new: "10月"},
	{old: "二十日", new: "20日"},
	{old: "三十日", new: "30日"},
	{old: "十日", new: "10日"},
	{old: "二十", new: "2"},
	{old: "三十", new: "3"},
	{old: "十", new: "1"},
	{old: "一", new: "1"},
	{old: "二", new: "2"},
	{old: "三", new: "3"},
	{old: "四", new: "4"},
	{old: "五", new: "5"},
	{old: "六", new: "6"},
	{old: "七", new: "7"},
	{old: "八", new: "8"},
	{old: "九", new: "9"},
	{re: dateZeros, new: "0"},
}

// normalizeDate rewrites a matched date to Arabic digits with "-" as the
// range connector and "," as the list separator.
func normalizeDate(s string) string {
	for _, r := range dateReplacements {
		if r.re != nil {
			s = r.re.ReplaceAllLiteralString(s, r.new)
		} else {
			s = strings.ReplaceAll(s, r.old, r.new)
		}
	}
	return s
}

// ExtractDates parses the first date, date list or date range found in s.
// A string without a recognisable date yields a single unknown Date.
func ExtractDates(s string) DateList {
	return ExtractDatesWithOptions(s, DateOptions{})
}

// ExtractDatesWithOptions is like ExtractDates with explicit options.
func ExtractDatesWithOptions(s string, opts DateOptions) DateList {
	s = strings.ReplaceAll(width.Fold.String(s), " ", "")
	if opts.RemoveUnknowns {
		s = unknownDateChars.ReplaceAllString(s, "")
	}

	for _, re := range []*regexp.Regexp{arabicRange, chineseRange} {
		if m := re.FindString(s); m != "" {
			return DateList{
				Dates:       carryForward(strings.Split(normalizeDate(m), "-"), true),
				IsRangeDate: true,
			}
		}
	}
	for _, re := range []*regexp.Regexp{arabicList, arabicDate, chineseList, chineseDate} {
		if m := re.FindString(s); m != "" {
			return DateList{
				Dates: carryForward(strings.Split(normalizeDate(m), ","), false),
			}
		}
	}
	return DateList{Dates: []Date{{}}}
}

// carryForward turns normalized entries into dates. The first entry is
// taken as written and decides whether a lone number in later entries is a
// day (first entry had a day) or a month. Later entries borrow the last
// seen year and month. In lists, an entry with month and day switches lone
// numbers to days from then on.
func carryForward(entries []string, isRange bool) []Date {
	dates := make([]Date, len(entries))
	var lastYear, lastMonth int
	var hasDay bool
	for idx, entry := range entries {
		var t [3]int
		for i, field := range dateFieldSep.Split(entry, -1) {
			if i >= len(t) {
				break
			}
			t[i] = leadingInt(field)
		}

		if idx == 0 {
			hasDay = t[2] != 0
		}
		switch {
		case idx == 0 || (t[0] != 0 && t[1] != 0 && t[2] != 0):
			if t[0] != 0 {
				lastYear = t[0]
			}
			if t[1] != 0 {
				lastMonth = t[1]
			}
			dates[idx] = Date{Year: t[0], Month: t[1], Day: t[2]}
		case t[0] != 0 && t[1] != 0:
			lastMonth = t[0]
			if !isRange {
				hasDay = true
			}
			dates[idx] = Date{Year: lastYear, Month: t[0], Day: t[1]}
		case hasDay:
			dates[idx] = Date{Year: lastYear, Month: lastMonth, Day: t[0]}
		default:
			dates[idx] = Date{Year: lastYear, Month: t[0]}
		}
	}
	return dates
}

// leadingInt parses the decimal digits at the start of s. It returns 0
// when s does not start with a digit.
func leadingInt(s string) int {
	n := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			break
		}
		n = n*10 + int(r-'0')
		if n > 1<<30 {
			return 0
		}
	}
	return n
}
