package ledger

import (
	"fmt"
	"strings"
	"time"
)

// TypeFacet restricts a view to one entry type or lets both through.
type TypeFacet string

const (
	TypeAll    TypeFacet = "all"
	TypeDebit  TypeFacet = "debit"
	TypeCredit TypeFacet = "credit"
)

// ParseTypeFacet accepts all, debit or credit; blank means all.
func ParseTypeFacet(s string) (TypeFacet, error) {
	switch f := TypeFacet(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return TypeAll, nil
	case TypeAll, TypeDebit, TypeCredit:
		return f, nil
	default:
		return "", fmt.Errorf("unknown type filter %q", s)
	}
}

// Matches reports whether an entry of type t passes the facet.
func (f TypeFacet) Matches(t EntryType) bool {
	return f == TypeAll || f == "" || EntryType(f) == t
}

// CategorySet is the category facet. An empty set lets every category through.
type CategorySet map[string]struct{}

// NewCategorySet builds a set from names. "All" and blanks are ignored, so a
// selection of just "All" means no restriction.
func NewCategorySet(names ...string) CategorySet {
	set := make(CategorySet, len(names))
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" || n == "All" {
			continue
		}
		set[n] = struct{}{}
	}
	return set
}

// Matches reports whether category passes the facet.
func (s CategorySet) Matches(category string) bool {
	if len(s) == 0 {
		return true
	}
	_, ok := s[category]
	return ok
}

// RangeKind names a date-range preset.
type RangeKind string

const (
	RangeToday  RangeKind = "Today"
	RangeWeek   RangeKind = "Week"
	RangeMonth  RangeKind = "Month"
	RangeAll    RangeKind = "All"
	RangeCustom RangeKind = "Custom"
)

// ParseRangeKind accepts the preset names case-insensitively; blank means All.
func ParseRangeKind(s string) (RangeKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all":
		return RangeAll, nil
	case "today":
		return RangeToday, nil
	case "week":
		return RangeWeek, nil
	case "month":
		return RangeMonth, nil
	default:
		return "", fmt.Errorf("unknown date range %q", s)
	}
}

// BillingCycleStartDay is the day of month on which the Month preset rolls
// over. The cycle runs from the 23rd to the 23rd instead of following
// calendar months.
const BillingCycleStartDay = 23

// DateRange is the date facet: a preset or an explicit inclusive span.
type DateRange struct {
	Kind  RangeKind
	Start Date
	End   Date
}

// Preset returns a DateRange for a named preset.
func Preset(kind RangeKind) DateRange {
	return DateRange{Kind: kind}
}

// Between returns an explicit range, inclusive on both ends.
func Between(start, end Date) (DateRange, error) {
	if start.IsZero() || end.IsZero() {
		return DateRange{}, fmt.Errorf("both start and end dates are required")
	}
	if end.Before(start.Time) {
		return DateRange{}, fmt.Errorf("end date %s is before start date %s", end, start)
	}
	return DateRange{Kind: RangeCustom, Start: start, End: end}, nil
}

// MonthOf returns the calendar month of year as an explicit range.
func MonthOf(year int, month time.Month) DateRange {
	return DateRange{
		Kind:  RangeCustom,
		Start: NewDate(year, month, 1),
		End:   NewDate(year, month+1, 0),
	}
}

// Window is a half-open span of days [From, Until). A zero Window is unbounded.
type Window struct {
	From  Date
	Until Date
}

// Unbounded reports whether the window places no restriction.
func (w Window) Unbounded() bool {
	return w.From.IsZero() && w.Until.IsZero()
}

// Contains reports whether d falls in the window.
func (w Window) Contains(d Date) bool {
	if w.Unbounded() {
		return true
	}
	return !d.Before(w.From.Time) && d.Before(w.Until.Time)
}

// BillingCycle returns the billing window containing now: from the 23rd of
// this month to the 23rd of next month when today is on or after the 23rd,
// otherwise from the 23rd of last month to the 23rd of this month.
func BillingCycle(now time.Time) Window {
	today := Today(now)
	y, m, d := today.Date()
	if d >= BillingCycleStartDay {
		return Window{
			From:  NewDate(y, m, BillingCycleStartDay),
			Until: NewDate(y, m+1, BillingCycleStartDay),
		}
	}
	return Window{
		From:  NewDate(y, m-1, BillingCycleStartDay),
		Until: NewDate(y, m, BillingCycleStartDay),
	}
}

// Window resolves the range against now.
func (r DateRange) Window(now time.Time) Window {
	today := Today(now)
	switch r.Kind {
	case RangeToday:
		return Window{From: today, Until: today.AddDays(1)}
	case RangeWeek:
		return Window{From: today.AddDays(-7), Until: today.AddDays(1)}
	case RangeMonth:
		return BillingCycle(now)
	case RangeCustom:
		return Window{From: r.Start, Until: r.End.AddDays(1)}
	default:
		return Window{}
	}
}

// Facets is the full set of active filters for a view.
type Facets struct {
	Type       TypeFacet
	Categories CategorySet
	Range      DateRange
}

func (f Facets) matches(tx Transaction, w Window) bool {
	return f.Type.Matches(tx.Type) && f.Categories.Matches(tx.Category) && w.Contains(tx.Date)
}
