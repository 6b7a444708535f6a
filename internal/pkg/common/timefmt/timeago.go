package timefmt

import (
	"strconv"
	"strings"
	"time"
)

// Locale holds the phrases used by TimeAgo. Plural phrases carry a %d
// placeholder that receives the whole number of units.
type Locale struct {
	Prefix    string
	Suffix    string
	Separator string

	Seconds string
	Minute  string
	Minutes string
	Hour    string
	Hours   string
	Day     string
	Days    string
	Month   string
	Months  string
	Year    string
	Years   string
}

var locales = map[string]Locale{
	"en": {
		Suffix:  "ago",
		Seconds: "less than a minute",
		Minute:  "about a minute",
		Minutes: "%d minutes",
		Hour:    "about an hour",
		Hours:   "about %d hours",
		Day:     "a day",
		Days:    "%d days",
		Month:   "about a month",
		Months:  "%d months",
		Year:    "about a year",
		Years:   "%d years",
	},
	"fr": {
		Prefix:  "il y a",
		Seconds: "moins d'une minute",
		Minute:  "environ une minute",
		Minutes: "%d minutes",
		Hour:    "environ une heure",
		Hours:   "environ %d heures",
		Day:     "un jour",
		Days:    "%d jours",
		Month:   "environ un mois",
		Months:  "%d mois",
		Year:    "environ un an",
		Years:   "%d ans",
	},
}

// LocaleFor returns the locale registered for lang, falling back to English.
func LocaleFor(lang string) Locale {
	if l, ok := locales[strings.ToLower(lang)]; ok {
		return l
	}
	return locales["en"]
}

// Languages lists the languages TimeAgo can speak.
func Languages() []string {
	return []string{"en", "fr"}
}

type unit struct {
	seconds  int64
	singular func(Locale) string
	plural   func(Locale) string
}

// Largest unit first; the first unit with a whole count of at least one wins.
var units = []unit{
	{31536000, func(l Locale) string { return l.Year }, func(l Locale) string { return l.Years }},
	{2592000, func(l Locale) string { return l.Month }, func(l Locale) string { return l.Months }},
	{86400, func(l Locale) string { return l.Day }, func(l Locale) string { return l.Days }},
	{3600, func(l Locale) string { return l.Hour }, func(l Locale) string { return l.Hours }},
	{60, func(l Locale) string { return l.Minute }, func(l Locale) string { return l.Minutes }},
}

// TimeAgo phrases an elapsed duration in English, e.g. "about 2 hours ago".
func TimeAgo(delta time.Duration) string {
	return LocaleFor("en").TimeAgo(delta)
}

// TimeAgo phrases an elapsed duration with the phrases of l.
func (l Locale) TimeAgo(delta time.Duration) string {
	seconds := delta.Milliseconds() / 1000
	distance := l.Seconds
	for _, u := range units {
		interval := seconds / u.seconds
		if interval > 1 {
			distance = strings.Replace(u.plural(l), "%d", strconv.FormatInt(interval, 10), 1)
			break
		}
		if interval == 1 {
			distance = u.singular(l)
			break
		}
	}

	sep := l.Separator
	if sep == "" {
		sep = " "
	}
	return strings.TrimSpace(l.Prefix + sep + distance + sep + l.Suffix)
}
