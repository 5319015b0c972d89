package event

// Event is one entry of the fixed set of meetups the site currently offers. The
// registration form submits the slug; the title is what humans see in emails.
type Event struct {
	Slug  string `json:"slug"`
	Title string `json:"title"`
}

// catalog mirrors the options on the landing-page registration form.
var catalog = []Event{
	{Slug: "plateau-jan25", Title: "Sui Nigeria Meetup - Plateau State (Jan 25)"},
	{Slug: "enugu-jan29", Title: "Sui Nigeria Meetup - Enugu State (Jan 29)"},
	{Slug: "ondo-jan30", Title: "Sui Nigeria Meetup - Ondo State (Jan 30)"},
	{Slug: "osun-feb1", Title: "Sui Nigeria DeFi Meetup - Osun State (Feb 1)"},
	{Slug: "oyo-feb15", Title: "Sui Nigeria Meetup - Oyo State (Feb 15)"},
	{Slug: "katsina-feb15", Title: "Sui Nigeria Meetup - Katsina State (Feb 15)"},
	{Slug: "ondo-feb21", Title: "Sui Nigeria DeFi Meetup - Ondo State (Feb 21)"},
	{Slug: "plateau-feb22", Title: "Sui Nigeria Meetup - Plateau State (Feb 22)"},
}

// All returns the offered events in display order.
func All() []Event {
	out := make([]Event, len(catalog))
	copy(out, catalog)
	return out
}

// TitleFor resolves a slug to its display title. Unknown slugs fall back to the raw
// slug so older records still render somewhere sensible.
func TitleFor(slug string) string {
	for _, e := range catalog {
		if e.Slug == slug {
			return e.Title
		}
	}

	return slug
}
